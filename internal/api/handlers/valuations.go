package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/response"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/apperrors"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/service"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/validation"
)

// ValuationHandler serves valuation reads. Holdings whose security is not on
// the price list come back with a null price and value.
type ValuationHandler struct {
	valuationService *service.ValuationService
}

// NewValuationHandler creates a new ValuationHandler.
func NewValuationHandler(valuationService *service.ValuationService) *ValuationHandler {
	return &ValuationHandler{
		valuationService: valuationService,
	}
}

// PortfolioValuation values the holdings of one portfolio.
//
// Endpoint: GET /api/portfolio/{uuid}/valuation?date=
// Response: 200 OK with model.PortfolioValuation
func (h *ValuationHandler) PortfolioValuation(w http.ResponseWriter, r *http.Request) {
	asOf, err := queryDate(r, "date")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	valuation, err := h.valuationService.ValuePortfolio(r.Context(), chi.URLParam(r, "uuid"), asOf)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToValue.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, valuation)
}

// ClientValuation values every portfolio of a client.
//
// Endpoint: GET /api/client/{uuid}/valuation?date=
// Response: 200 OK with model.ClientValuation
func (h *ValuationHandler) ClientValuation(w http.ResponseWriter, r *http.Request) {
	asOf, err := queryDate(r, "date")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	valuation, err := h.valuationService.ValueClient(r.Context(), chi.URLParam(r, "uuid"), asOf)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToValue.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, valuation)
}

// AdvisoryFee applies the client's fee percentage to its valued total.
//
// Endpoint: GET /api/client/{uuid}/fee?date=
// Response: 200 OK with model.AdvisoryFee
func (h *ValuationHandler) AdvisoryFee(w http.ResponseWriter, r *http.Request) {
	asOf, err := queryDate(r, "date")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	fee, err := h.valuationService.AdvisoryFee(r.Context(), chi.URLParam(r, "uuid"), asOf)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToValue.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, fee)
}

// Valuation values every client and adds up a global total.
//
// Endpoint: GET /api/valuation?date=
// Response: 200 OK with model.GlobalValuation
func (h *ValuationHandler) Valuation(w http.ResponseWriter, r *http.Request) {
	asOf, err := queryDate(r, "date")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	valuation, err := h.valuationService.ValueAll(r.Context(), asOf)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToValue.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, valuation)
}

// History returns stored daily snapshots. startDate defaults to 1970-01-01
// and endDate to today; clientId restricts the result to one client.
//
// Endpoint: GET /api/valuation/history?clientId&startDate&endDate
// Response: 200 OK with array of model.ValuationSnapshot
// Error: 400 Bad Request if a date or the range is invalid
func (h *ValuationHandler) History(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientId")
	if clientID != "" {
		if err := validation.ValidateUUID(clientID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid clientId", err.Error())
			return
		}
	}

	start := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Now().UTC()
	if d, err := queryDate(r, "startDate"); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	} else if d != nil {
		start = *d
	}
	if d, err := queryDate(r, "endDate"); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	} else if d != nil {
		end = *d
	}
	if err := validation.ValidateDateRange(start, end); err != nil {
		respondServiceError(w, err, "")
		return
	}

	history, err := h.valuationService.History(r.Context(), clientID, start, end)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToValue.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, history)
}
