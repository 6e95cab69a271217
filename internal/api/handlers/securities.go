package handlers

import (
	"net/http"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/request"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/response"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/apperrors"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/service"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/validation"
)

// SecurityHandler handles HTTP requests for security endpoints.
type SecurityHandler struct {
	securityService *service.SecurityService
}

func NewSecurityHandler(securityService *service.SecurityService) *SecurityHandler {
	return &SecurityHandler{securityService: securityService}
}

// Securities lists every known security.
//
// Endpoint: GET /api/security
func (h *SecurityHandler) Securities(w http.ResponseWriter, r *http.Request) {
	securities, err := h.securityService.GetSecurities(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSecurities.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, securities)
}

// ResolveSecurity returns the security matching a name, creating it when
// none matches.
//
// Endpoint: POST /api/security
// Request Body: {"name": "..."} (especie accepted)
// Response: 201 Created for a new security, 200 OK for an existing one
func (h *SecurityHandler) ResolveSecurity(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ResolveSecurityRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateResolveSecurity(req); err != nil {
		respondServiceError(w, err, "failed to resolve security")
		return
	}

	sec, created, err := h.securityService.ResolveOrCreate(r.Context(), req.Name)
	if err != nil {
		respondServiceError(w, err, "failed to resolve security")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.RespondJSON(w, status, sec)
}
