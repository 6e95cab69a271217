package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/request"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/response"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/apperrors"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/service"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/validation"
)

// ClientHandler handles HTTP requests for client endpoints.
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// Clients lists every client ordered by name.
//
// Endpoint: GET /api/client
// Response: 200 OK with array of model.Client
func (h *ClientHandler) Clients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientService.GetClients(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveClients.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, clients)
}

// Client returns a single client.
//
// Endpoint: GET /api/client/{uuid}
// Response: 200 OK with model.Client
// Error: 404 Not Found if the client does not exist
func (h *ClientHandler) Client(w http.ResponseWriter, r *http.Request) {
	client, err := h.clientService.GetClient(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveClients.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, client)
}

// CreateClient creates a client.
//
// Endpoint: POST /api/client
// Request Body: CreateClientRequest (name required; Spanish aliases accepted)
// Response: 201 Created with model.Client
// Error: 400 Bad Request if the body is malformed or fails validation
func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateClientRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateClient(req); err != nil {
		respondServiceError(w, err, "failed to create client")
		return
	}

	client, err := h.clientService.CreateClient(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to create client")
		return
	}

	response.RespondJSON(w, http.StatusCreated, client)
}

// UpdateClient applies the fields present in the body.
//
// Endpoint: PUT /api/client/{uuid}
// Response: 200 OK with model.Client
// Error: 400 Bad Request, 404 Not Found
func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateClientRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateClient(req); err != nil {
		respondServiceError(w, err, "failed to update client")
		return
	}

	client, err := h.clientService.UpdateClient(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to update client")
		return
	}

	response.RespondJSON(w, http.StatusOK, client)
}

// DeleteClient removes a client and everything it owns.
//
// Endpoint: DELETE /api/client/{uuid}
// Response: 204 No Content
// Error: 404 Not Found
func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := h.clientService.DeleteClient(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete client")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
