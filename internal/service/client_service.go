package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/request"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/repository"
)

// ClientService handles client-related business logic operations.
type ClientService struct {
	clientRepo *repository.ClientRepository
	log        zerolog.Logger
}

// NewClientService creates a new ClientService with the provided repository dependencies.
func NewClientService(clientRepo *repository.ClientRepository, log zerolog.Logger) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		log:        log.With().Str("component", "client").Logger(),
	}
}

// GetClients retrieves every client ordered by name.
func (s *ClientService) GetClients(ctx context.Context) ([]model.Client, error) {
	return s.clientRepo.GetClients(ctx)
}

// GetClient retrieves a single client.
// Returns apperrors.ErrClientNotFound if the client does not exist.
func (s *ClientService) GetClient(ctx context.Context, clientID string) (model.Client, error) {
	return s.clientRepo.GetClient(ctx, clientID)
}

// CreateClient creates a new client from a validated request.
func (s *ClientService) CreateClient(ctx context.Context, req request.CreateClientRequest) (*model.Client, error) {
	client := &model.Client{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		ServiceType: req.ServiceType,
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		RiskProfile: req.RiskProfile,
		FeePercent:  req.FeePercent,
		Comments:    req.Comments,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.clientRepo.InsertClient(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.log.Info().Str("client_id", client.ID).Msg("client created")
	return client, nil
}

// UpdateClient applies the fields present in req to an existing client.
// Returns apperrors.ErrClientNotFound if the client does not exist.
func (s *ClientService) UpdateClient(ctx context.Context, clientID string, req request.UpdateClientRequest) (*model.Client, error) {
	client, err := s.clientRepo.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.ServiceType != nil {
		client.ServiceType = *req.ServiceType
	}
	if req.Email != nil {
		client.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		client.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.RiskProfile != nil {
		client.RiskProfile = *req.RiskProfile
	}
	if req.FeePercent != nil {
		client.FeePercent = *req.FeePercent
	}
	if req.Comments != nil {
		client.Comments = *req.Comments
	}

	if err := s.clientRepo.UpdateClient(ctx, &client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return &client, nil
}

// DeleteClient removes a client together with its portfolios, movements and snapshots.
// Returns apperrors.ErrClientNotFound if the client does not exist.
func (s *ClientService) DeleteClient(ctx context.Context, clientID string) error {
	if err := s.clientRepo.DeleteClient(ctx, clientID); err != nil {
		return err
	}
	s.log.Info().Str("client_id", clientID).Msg("client deleted")
	return nil
}
