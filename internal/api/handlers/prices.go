package handlers

import (
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/response"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/apperrors"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/pricing"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/service"
)

// maxPriceFileBytes bounds an uploaded price export.
const maxPriceFileBytes = 10 << 20

// PriceHandler handles price list uploads and reads.
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// readPriceFile returns the uploaded export either from the multipart "file"
// field or, for any other content type, from the raw body.
func readPriceFile(r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxPriceFileBytes); err != nil {
			return "", err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return "", err
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxPriceFileBytes))
		return pricing.DecodeExport(data), err
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxPriceFileBytes))
	return pricing.DecodeExport(data), err
}

// ImportPrices stores an uploaded broker price export as the price list of
// ?date= (today when absent). A later import for the same day overwrites
// the keys it contains.
//
// Endpoint: POST /api/price/import?date=
// Request Body: multipart "file" field, or the export as text
// Response: 201 Created with model.PriceImportResponse
// Error: 400 Bad Request if no file was sent
// Error: 422 Unprocessable Entity if no (ticker, price) pair was detected
func (h *PriceHandler) ImportPrices(w http.ResponseWriter, r *http.Request) {
	asOf, err := queryDate(r, "date")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	date := time.Now().UTC()
	if asOf != nil {
		date = *asOf
	}

	raw, err := readPriceFile(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid price file", err.Error())
		return
	}
	if strings.TrimSpace(raw) == "" {
		response.RespondError(w, http.StatusBadRequest, "invalid price file", "file is empty")
		return
	}

	result, err := h.priceService.ImportPrices(r.Context(), raw, date)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToImportPrices.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, result)
}

// Prices returns the stored key -> price mapping that serves ?date=.
//
// Endpoint: GET /api/price?date=
// Response: 200 OK with model.PriceMappingResponse
// Error: 404 Not Found if no list was uploaded on or before the date
func (h *PriceHandler) Prices(w http.ResponseWriter, r *http.Request) {
	asOf, err := queryDate(r, "date")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	date := time.Now().UTC()
	if asOf != nil {
		date = *asOf
	}

	mapping, err := h.priceService.GetMapping(r.Context(), date)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePrices.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, mapping)
}
