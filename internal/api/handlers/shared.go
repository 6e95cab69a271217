// Package handlers adapts HTTP requests to service calls and maps domain
// errors to status codes.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/request"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/response"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/apperrors"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/validation"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T. Request types carry their own
// UnmarshalJSON, so field aliases are resolved here.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return v, fmt.Errorf("failed to read body: %w", err)
	}
	if len(body) == 0 {
		return v, errors.New("request body is empty")
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return v, err
	}
	return v, nil
}

// queryDate parses an optional date query parameter. Absent means nil.
func queryDate(r *http.Request, key string) (*time.Time, error) {
	d, err := request.ParseOptionalDate(r.URL.Query().Get(key))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

var notFound = []error{
	apperrors.ErrClientNotFound,
	apperrors.ErrPortfolioNotFound,
	apperrors.ErrSecurityNotFound,
	apperrors.ErrMovementNotFound,
	apperrors.ErrPriceListNotFound,
}

// respondServiceError writes the status that matches err. Anything not
// recognised is a 500 with fallback as the message.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
		return
	}

	if available, ok := apperrors.AvailableFrom(err); ok {
		msg := apperrors.ErrInsufficientBalance.Error()
		if errors.Is(err, apperrors.ErrSellCreatesSecurity) {
			msg = apperrors.ErrSellCreatesSecurity.Error()
		}
		response.RespondError(w, http.StatusUnprocessableEntity, msg, map[string]float64{"available": available})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrReferentialMismatch):
		response.RespondError(w, http.StatusConflict, apperrors.ErrReferentialMismatch.Error(), err.Error())
		return
	case errors.Is(err, apperrors.ErrNoPricePairs):
		response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrNoPricePairs.Error(), err.Error())
		return
	case errors.Is(err, apperrors.ErrInvalidDate),
		errors.Is(err, apperrors.ErrInvalidDateRange),
		errors.Is(err, apperrors.ErrInvalidUUID):
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	for _, sentinel := range notFound {
		if errors.Is(err, sentinel) {
			response.RespondError(w, http.StatusNotFound, sentinel.Error(), err.Error())
			return
		}
	}

	response.RespondError(w, http.StatusInternalServerError, fallback, err.Error())
}
