package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/request"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/response"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/apperrors"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/service"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/validation"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	ledgerService    *service.LedgerService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService, ledgerService *service.LedgerService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		ledgerService:    ledgerService,
	}
}

// Portfolios lists portfolios, optionally for one client.
//
// Endpoint: GET /api/portfolio?clientId=
// Response: 200 OK with array of model.Portfolio
// Error: 400 Bad Request if clientId is not a UUID
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
	filter := model.PortfolioFilter{ClientID: r.URL.Query().Get("clientId")}
	if filter.ClientID != "" {
		if err := validation.ValidateUUID(filter.ClientID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid clientId", err.Error())
			return
		}
	}

	portfolios, err := h.portfolioService.GetPortfolios(r.Context(), filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolios.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolios)
}

// Portfolio returns a single portfolio.
//
// Endpoint: GET /api/portfolio/{uuid}
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.portfolioService.GetPortfolio(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePortfolios.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// CreatePortfolio creates a portfolio for an existing client.
//
// Endpoint: POST /api/portfolio
// Response: 201 Created with model.Portfolio
// Error: 400 Bad Request, 404 Not Found if the client does not exist
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePortfolio(req); err != nil {
		respondServiceError(w, err, "failed to create portfolio")
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to create portfolio")
		return
	}

	response.RespondJSON(w, http.StatusCreated, portfolio)
}

// UpdatePortfolio renames a portfolio or changes its target period.
//
// Endpoint: PUT /api/portfolio/{uuid}
func (h *PortfolioHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePortfolio(req); err != nil {
		respondServiceError(w, err, "failed to update portfolio")
		return
	}

	portfolio, err := h.portfolioService.UpdatePortfolio(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to update portfolio")
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// DeletePortfolio removes a portfolio and its movements.
//
// Endpoint: DELETE /api/portfolio/{uuid}
// Response: 204 No Content
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	if err := h.portfolioService.DeletePortfolio(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete portfolio")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Holdings lists the open positions of a portfolio.
//
// Endpoint: GET /api/portfolio/{uuid}/holdings?date=
// Response: 200 OK with array of model.Holding
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	asOf, err := queryDate(r, "date")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	portfolio, err := h.portfolioService.GetPortfolio(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePortfolios.Error())
		return
	}

	holdings, err := h.ledgerService.Holdings(r.Context(), portfolio.ClientID, portfolio.ID, asOf)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToComputeBalance.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}
