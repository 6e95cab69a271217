package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/request"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/apperrors"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/repository"
)

// PortfolioService handles portfolio-related business logic operations.
// A portfolio always belongs to exactly one existing client.
type PortfolioService struct {
	portfolioRepo *repository.PortfolioRepository
	clientRepo    *repository.ClientRepository
	log           zerolog.Logger
}

// NewPortfolioService creates a new PortfolioService with the provided repository dependencies.
func NewPortfolioService(
	portfolioRepo *repository.PortfolioRepository,
	clientRepo *repository.ClientRepository,
	log zerolog.Logger,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		clientRepo:    clientRepo,
		log:           log.With().Str("component", "portfolio").Logger(),
	}
}

// GetPortfolios retrieves portfolios, optionally restricted to one client.
func (s *PortfolioService) GetPortfolios(ctx context.Context, filter model.PortfolioFilter) ([]model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolios(ctx, filter)
}

// GetPortfolio retrieves a single portfolio.
// Returns apperrors.ErrPortfolioNotFound if the portfolio does not exist.
func (s *PortfolioService) GetPortfolio(ctx context.Context, portfolioID string) (model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolio(ctx, portfolioID)
}

// CreatePortfolio creates a portfolio for an existing client.
// Returns apperrors.ErrClientNotFound if the client does not exist.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, req request.CreatePortfolioRequest) (*model.Portfolio, error) {
	if _, err := s.clientRepo.GetClient(ctx, req.ClientID); err != nil {
		return nil, err
	}

	portfolio := &model.Portfolio{
		ID:           uuid.New().String(),
		ClientID:     req.ClientID,
		Name:         strings.TrimSpace(req.Name),
		TargetPeriod: req.TargetPeriod,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.portfolioRepo.InsertPortfolio(ctx, portfolio); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	s.log.Info().
		Str("portfolio_id", portfolio.ID).
		Str("client_id", portfolio.ClientID).
		Msg("portfolio created")
	return portfolio, nil
}

// UpdatePortfolio applies the fields present in req. The owning client never changes.
// Returns apperrors.ErrPortfolioNotFound if the portfolio does not exist.
func (s *PortfolioService) UpdatePortfolio(ctx context.Context, portfolioID string, req request.UpdatePortfolioRequest) (*model.Portfolio, error) {
	portfolio, err := s.portfolioRepo.GetPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		portfolio.Name = strings.TrimSpace(*req.Name)
	}
	if req.TargetPeriod != nil {
		portfolio.TargetPeriod = *req.TargetPeriod
	}

	if err := s.portfolioRepo.UpdatePortfolio(ctx, &portfolio); err != nil {
		return nil, fmt.Errorf("failed to update portfolio: %w", err)
	}
	return &portfolio, nil
}

// DeletePortfolio removes a portfolio and, by cascade, its movements.
// Returns apperrors.ErrPortfolioNotFound if the portfolio does not exist.
func (s *PortfolioService) DeletePortfolio(ctx context.Context, portfolioID string) error {
	return s.portfolioRepo.DeletePortfolio(ctx, portfolioID)
}

// checkOwnership loads a portfolio and verifies it belongs to clientID.
// A missing portfolio or a portfolio of another client is a referential mismatch.
func checkOwnership(ctx context.Context, repo *repository.PortfolioRepository, clientID, portfolioID string) (model.Portfolio, error) {
	portfolio, err := repo.GetPortfolio(ctx, portfolioID)
	if errors.Is(err, apperrors.ErrPortfolioNotFound) {
		return model.Portfolio{}, fmt.Errorf("%w: portfolio %s does not exist", apperrors.ErrReferentialMismatch, portfolioID)
	}
	if err != nil {
		return model.Portfolio{}, err
	}
	if portfolio.ClientID != clientID {
		return model.Portfolio{}, fmt.Errorf("%w: portfolio %s does not belong to client %s",
			apperrors.ErrReferentialMismatch, portfolioID, clientID)
	}
	return portfolio, nil
}
