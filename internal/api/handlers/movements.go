package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/request"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/response"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/apperrors"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/service"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/validation"
)

// MovementHandler handles HTTP requests for movement and balance endpoints.
// Every write goes through the ledger service, which enforces the
// non-negative balance rule.
type MovementHandler struct {
	ledgerService *service.LedgerService
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(ledgerService *service.LedgerService) *MovementHandler {
	return &MovementHandler{
		ledgerService: ledgerService,
	}
}

// Movements lists movements matching the query filters, ordered by date.
//
// Endpoint: GET /api/movement?clientId&portfolioId&securityId&dateFrom&dateTo
// Response: 200 OK with array of model.MovementResponse
// Error: 400 Bad Request if a filter is malformed
func (h *MovementHandler) Movements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := request.ParseMovementFilters(
		q.Get("clientId"),
		q.Get("portfolioId"),
		q.Get("securityId"),
		q.Get("dateFrom"),
		q.Get("dateTo"),
	)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	movements, err := h.ledgerService.ListMovements(r.Context(), *filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveMovements.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, movements)
}

// Movement returns a single movement.
//
// Endpoint: GET /api/movement/{uuid}
func (h *MovementHandler) Movement(w http.ResponseWriter, r *http.Request) {
	movement, err := h.ledgerService.GetMovement(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveMovements.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, movement)
}

// CreateMovement records a buy or sell.
//
// Endpoint: POST /api/movement
// Request Body: CreateMovementRequest (camelCase, snake_case or Spanish field names)
// Response: 201 Created with model.MovementResponse
// Error: 400 Bad Request on malformed input
// Error: 409 Conflict if the portfolio does not belong to the client or the security id is unknown
// Error: 422 Unprocessable Entity with {"available": n} if a sell exceeds the holding
func (h *MovementHandler) CreateMovement(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateMovementRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.ledgerService.RecordMovement(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to record movement")
		return
	}

	response.RespondJSON(w, http.StatusCreated, movement)
}

// UpdateMovement edits a movement. The edit is rejected with 422 if it would
// drive any running balance of its holding below zero.
//
// Endpoint: PUT /api/movement/{uuid}
func (h *MovementHandler) UpdateMovement(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateMovementRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.ledgerService.UpdateMovement(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to update movement")
		return
	}

	response.RespondJSON(w, http.StatusOK, movement)
}

// DeleteMovement removes a movement.
//
// Endpoint: DELETE /api/movement/{uuid}
// Response: 204 No Content
func (h *MovementHandler) DeleteMovement(w http.ResponseWriter, r *http.Request) {
	if err := h.ledgerService.DeleteMovement(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete movement")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Balance returns the net quantity held for one (client, portfolio, security).
//
// Endpoint: GET /api/movement/balance?clientId&portfolioId&securityId&date
// Response: 200 OK with model.Balance
// Error: 400 Bad Request if an id is missing or malformed
func (h *MovementHandler) Balance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	triple := model.Triple{
		ClientID:    q.Get("clientId"),
		PortfolioID: q.Get("portfolioId"),
		SecurityID:  q.Get("securityId"),
	}
	fields := map[string]string{}
	for name, value := range map[string]string{
		"clientId":    triple.ClientID,
		"portfolioId": triple.PortfolioID,
		"securityId":  triple.SecurityID,
	} {
		if err := validation.ValidateUUID(value); err != nil {
			fields[name] = name + " must be a valid UUID"
		}
	}
	if len(fields) > 0 {
		respondServiceError(w, &validation.Error{Fields: fields}, "")
		return
	}

	asOf, err := queryDate(r, "date")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	balance, err := h.ledgerService.ComputeBalance(r.Context(), triple, asOf)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToComputeBalance.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, balance)
}

// ValidateSell answers whether a sell would be accepted. A sell that is not
// allowed is still a 200: the answer is in the body.
//
// Endpoint: POST /api/movement/validate-sell
// Response: 200 OK with model.SellCheck
// Error: 400 Bad Request on malformed input
func (h *MovementHandler) ValidateSell(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ValidateSellRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	check, err := h.ledgerService.ValidateSell(r.Context(), req)
	if errors.Is(err, apperrors.ErrInsufficientBalance) {
		available, _ := apperrors.AvailableFrom(err)
		response.RespondJSON(w, http.StatusOK, model.SellCheck{Allowed: false, Available: available})
		return
	}
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToComputeBalance.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, check)
}
