package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/request"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/apperrors"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/ledger"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/repository"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/validation"
)

// LedgerService records buy and sell movements and answers balance questions.
//
// Balances are never stored; they are folded from the movements of a
// (client, portfolio, security) triple on every read. Writes that could make
// a balance negative take a per-triple lock and re-check the balance inside
// an immediate transaction before inserting, so two concurrent sells cannot
// both pass against the same stale balance.
type LedgerService struct {
	db            *sql.DB
	movementRepo  *repository.MovementRepository
	portfolioRepo *repository.PortfolioRepository
	securityRepo  *repository.SecurityRepository
	locks         *tripleLocks
	log           zerolog.Logger
}

// NewLedgerService creates a new LedgerService with the provided repository dependencies.
func NewLedgerService(
	db *sql.DB,
	movementRepo *repository.MovementRepository,
	portfolioRepo *repository.PortfolioRepository,
	securityRepo *repository.SecurityRepository,
	log zerolog.Logger,
) *LedgerService {
	return &LedgerService{
		db:            db,
		movementRepo:  movementRepo,
		portfolioRepo: portfolioRepo,
		securityRepo:  securityRepo,
		locks:         newTripleLocks(),
		log:           log.With().Str("component", "ledger").Logger(),
	}
}

// ComputeBalance returns the net quantity of a security held in a portfolio
// on asOf, or over all movements when asOf is nil. An unknown triple has a
// balance of zero.
func (s *LedgerService) ComputeBalance(ctx context.Context, triple model.Triple, asOf *time.Time) (model.Balance, error) {
	movements, err := s.tripleMovements(ctx, s.movementRepo, triple, asOf)
	if err != nil {
		return model.Balance{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToComputeBalance, err)
	}

	b := model.Balance{
		ClientID:    triple.ClientID,
		PortfolioID: triple.PortfolioID,
		SecurityID:  triple.SecurityID,
		Quantity:    ledger.Balance(movements, asOf),
	}
	if asOf != nil {
		b.AsOf = repository.FormatDate(*asOf)
	}
	return b, nil
}

func (s *LedgerService) tripleMovements(
	ctx context.Context,
	repo *repository.MovementRepository,
	triple model.Triple,
	asOf *time.Time,
) ([]model.Movement, error) {
	movements := []model.Movement{}
	err := repo.StreamMovements(ctx, model.MovementFilter{
		ClientID:    triple.ClientID,
		PortfolioID: triple.PortfolioID,
		SecurityID:  triple.SecurityID,
		DateTo:      asOf,
	}, func(m model.Movement) error {
		movements = append(movements, m)
		return nil
	})
	return movements, err
}

// ValidateSell reports whether req.Quantity may be sold. The returned check is
// always filled in; when the sell is not allowed the error is an
// *apperrors.InsufficientBalanceError carrying the available quantity.
// A security that was never bought has nothing available.
func (s *LedgerService) ValidateSell(ctx context.Context, req request.ValidateSellRequest) (model.SellCheck, error) {
	if err := validation.ValidateSellCheck(req); err != nil {
		return model.SellCheck{}, err
	}

	var asOf *time.Time
	if req.Date != "" {
		d, err := validation.ParseTime(req.Date)
		if err != nil {
			return model.SellCheck{}, err
		}
		asOf = &d
	}

	sec, err := findSecurity(ctx, s.securityRepo, req.SecurityID, req.SecurityName)
	if errors.Is(err, apperrors.ErrSecurityNotFound) {
		return model.SellCheck{}, &apperrors.InsufficientBalanceError{Requested: req.Quantity}
	}
	if err != nil {
		return model.SellCheck{}, err
	}

	triple := model.Triple{ClientID: req.ClientID, PortfolioID: req.PortfolioID, SecurityID: sec.ID}
	movements, err := s.tripleMovements(ctx, s.movementRepo, triple, nil)
	if err != nil {
		return model.SellCheck{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToComputeBalance, err)
	}

	check := ledger.CheckSell(movements, req.Quantity, asOf)
	if !check.Allowed {
		return check, &apperrors.InsufficientBalanceError{Requested: req.Quantity, Available: check.Available}
	}
	return check, nil
}

// RecordMovement validates and stores a movement.
//
// The portfolio must belong to the client. The security is given by id or by
// name; a name is matched exactly (case and accents ignored) and created when
// a buy references it for the first time. A sell never creates a security.
// A sell is accepted only if it leaves every running balance of its triple,
// including those after a backdated sell date, at zero or above.
//
// Errors:
//   - *validation.Error for malformed input
//   - apperrors.ErrReferentialMismatch if the portfolio or security id does not fit
//   - *apperrors.InsufficientBalanceError if the sell exceeds the holding
func (s *LedgerService) RecordMovement(ctx context.Context, req request.CreateMovementRequest) (*model.MovementResponse, error) {
	if err := validation.ValidateCreateMovement(req); err != nil {
		return nil, err
	}
	date, err := validation.ParseTime(req.Date)
	if err != nil {
		return nil, err
	}

	if _, err := checkOwnership(ctx, s.portfolioRepo, req.ClientID, req.PortfolioID); err != nil {
		return nil, err
	}

	isSell := req.Type == model.MovementSell

	// A buy by name is resolved inside the transaction so a failed insert
	// does not leave a new security behind.
	var sec model.Security
	switch {
	case req.SecurityID != "":
		sec, err = s.securityRepo.GetSecurity(ctx, req.SecurityID)
		if errors.Is(err, apperrors.ErrSecurityNotFound) {
			return nil, fmt.Errorf("%w: security %s does not exist", apperrors.ErrReferentialMismatch, req.SecurityID)
		}
	case isSell:
		sec, err = findSecurity(ctx, s.securityRepo, "", req.SecurityName)
		if errors.Is(err, apperrors.ErrSecurityNotFound) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrSellCreatesSecurity,
				&apperrors.InsufficientBalanceError{Requested: req.Quantity})
		}
	}
	if err != nil {
		return nil, err
	}

	if isSell {
		unlock := s.locks.lock(model.Triple{ClientID: req.ClientID, PortfolioID: req.PortfolioID, SecurityID: sec.ID})
		defer unlock()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if sec.ID == "" {
		var created bool
		sec, created, err = resolveOrCreateSecurity(ctx, s.securityRepo.WithTx(tx), req.SecurityName)
		if err != nil {
			return nil, err
		}
		if created {
			s.log.Info().Str("security_id", sec.ID).Str("name", sec.Name).Msg("security created by buy")
		}
	}

	movement := model.Movement{
		ID:          uuid.New().String(),
		ClientID:    req.ClientID,
		PortfolioID: req.PortfolioID,
		SecurityID:  sec.ID,
		Type:        req.Type,
		Date:        date,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Note:        strings.TrimSpace(req.Note),
		CreatedAt:   time.Now().UTC(),
	}

	movementRepo := s.movementRepo.WithTx(tx)
	if isSell {
		history, err := s.tripleMovements(ctx, movementRepo, movement.Triple(), nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToComputeBalance, err)
		}
		if check := ledger.CheckSellAt(history, movement.Quantity, date); !check.Allowed {
			s.log.Info().
				Str("portfolio_id", movement.PortfolioID).
				Str("security_id", movement.SecurityID).
				Float64("requested", movement.Quantity).
				Float64("available", check.Available).
				Msg("sell rejected")
			return nil, &apperrors.InsufficientBalanceError{Requested: movement.Quantity, Available: check.Available}
		}
	}

	if err := movementRepo.InsertMovement(ctx, &movement); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit movement: %w", err)
	}

	s.log.Info().
		Str("movement_id", movement.ID).
		Str("type", movement.Type).
		Str("portfolio_id", movement.PortfolioID).
		Str("security_id", movement.SecurityID).
		Float64("quantity", movement.Quantity).
		Msg("movement recorded")

	return &model.MovementResponse{Movement: movement, SecurityName: sec.Name}, nil
}

// UpdateMovement applies the fields present in req to a movement. The edit is
// rejected with an *apperrors.InsufficientBalanceError if it would make the
// running balance of the triple go lower than zero at any date.
// Returns apperrors.ErrMovementNotFound if the movement does not exist.
func (s *LedgerService) UpdateMovement(ctx context.Context, movementID string, req request.UpdateMovementRequest) (*model.MovementResponse, error) {
	if err := validation.ValidateUpdateMovement(req); err != nil {
		return nil, err
	}

	current, err := s.movementRepo.GetMovement(ctx, movementID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(current.Triple())
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	movementRepo := s.movementRepo.WithTx(tx)
	current, err = movementRepo.GetMovement(ctx, movementID)
	if err != nil {
		return nil, err
	}

	edited := current.Movement
	if req.Type != nil {
		edited.Type = *req.Type
	}
	if req.Date != nil {
		if edited.Date, err = validation.ParseTime(*req.Date); err != nil {
			return nil, err
		}
	}
	if req.Quantity != nil {
		edited.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		edited.UnitPrice = req.UnitPrice
	}
	if req.Note != nil {
		edited.Note = strings.TrimSpace(*req.Note)
	}

	history, err := s.tripleMovements(ctx, movementRepo, edited.Triple(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToComputeBalance, err)
	}
	if err := checkEdit(history, edited); err != nil {
		return nil, err
	}

	if err := movementRepo.UpdateMovement(ctx, &edited); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit movement: %w", err)
	}

	s.log.Info().Str("movement_id", edited.ID).Msg("movement updated")

	return &model.MovementResponse{Movement: edited, SecurityName: current.SecurityName}, nil
}

// checkEdit rejects an edit that lowers the minimum running balance of the
// triple below zero. A history that was already negative may be edited as
// long as the edit does not make it worse.
func checkEdit(history []model.Movement, edited model.Movement) error {
	others := make([]model.Movement, 0, len(history))
	for _, m := range history {
		if m.ID != edited.ID {
			others = append(others, m)
		}
	}

	before := min(ledger.MinRunningBalance(history), 0)
	after := ledger.MinRunningBalance(append(others, edited))
	if after >= before {
		return nil
	}

	available := 0.0
	if edited.Type == model.MovementSell {
		available = ledger.CheckSellAt(others, edited.Quantity, edited.Date).Available
	}
	return &apperrors.InsufficientBalanceError{Requested: edited.Quantity, Available: available}
}

// DeleteMovement removes a movement.
// Returns apperrors.ErrMovementNotFound if the movement does not exist.
func (s *LedgerService) DeleteMovement(ctx context.Context, movementID string) error {
	current, err := s.movementRepo.GetMovement(ctx, movementID)
	if err != nil {
		return err
	}

	unlock := s.locks.lock(current.Triple())
	defer unlock()

	if err := s.movementRepo.DeleteMovement(ctx, movementID); err != nil {
		return err
	}

	s.log.Info().Str("movement_id", movementID).Msg("movement deleted")
	return nil
}

// GetMovement retrieves a single movement with its security name.
// Returns apperrors.ErrMovementNotFound if the movement does not exist.
func (s *LedgerService) GetMovement(ctx context.Context, movementID string) (model.MovementResponse, error) {
	return s.movementRepo.GetMovement(ctx, movementID)
}

// ListMovements retrieves the movements matching filter ordered by date.
func (s *LedgerService) ListMovements(ctx context.Context, filter model.MovementFilter) ([]model.MovementResponse, error) {
	movements, err := s.movementRepo.GetMovements(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveMovements, err)
	}
	return movements, nil
}

// Holdings returns the open positions on asOf with security names, ordered
// by portfolio and then by name. An empty clientID or portfolioID widens the
// scope to every client or every portfolio.
func (s *LedgerService) Holdings(ctx context.Context, clientID, portfolioID string, asOf *time.Time) ([]model.Holding, error) {
	movements := []model.Movement{}
	err := s.movementRepo.StreamMovements(ctx, model.MovementFilter{
		ClientID:    clientID,
		PortfolioID: portfolioID,
		DateTo:      asOf,
	}, func(m model.Movement) error {
		movements = append(movements, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToComputeBalance, err)
	}

	holdings := ledger.Holdings(movements, asOf)

	ids := make([]string, 0, len(holdings))
	for _, h := range holdings {
		ids = append(ids, h.SecurityID)
	}
	names, err := s.securityRepo.GetSecurityNames(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveSecurities, err)
	}
	for i := range holdings {
		holdings[i].SecurityName = names[holdings[i].SecurityID]
	}

	sort.SliceStable(holdings, func(i, j int) bool {
		if holdings[i].PortfolioID != holdings[j].PortfolioID {
			return holdings[i].PortfolioID < holdings[j].PortfolioID
		}
		return strings.ToLower(holdings[i].SecurityName) < strings.ToLower(holdings[j].SecurityName)
	})
	return holdings, nil
}
