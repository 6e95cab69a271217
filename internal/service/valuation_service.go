package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/apperrors"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/pricing"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/repository"
)

// ValuationService values holdings against the uploaded price lists and
// rolls the results up per portfolio, per client and across all clients.
type ValuationService struct {
	ledger        *LedgerService
	prices        *PriceService
	clientRepo    *repository.ClientRepository
	portfolioRepo *repository.PortfolioRepository
	snapshotRepo  *repository.SnapshotRepository
	workers       int
	log           zerolog.Logger
}

// NewValuationService creates a new ValuationService. workers bounds how many
// clients ValueAll values at once.
func NewValuationService(
	ledger *LedgerService,
	prices *PriceService,
	clientRepo *repository.ClientRepository,
	portfolioRepo *repository.PortfolioRepository,
	snapshotRepo *repository.SnapshotRepository,
	workers int,
	log zerolog.Logger,
) *ValuationService {
	if workers < 1 {
		workers = 1
	}
	return &ValuationService{
		ledger:        ledger,
		prices:        prices,
		clientRepo:    clientRepo,
		portfolioRepo: portfolioRepo,
		snapshotRepo:  snapshotRepo,
		workers:       workers,
		log:           log.With().Str("component", "valuation").Logger(),
	}
}

// valuationDate returns asOf truncated to the day, or today.
func valuationDate(asOf *time.Time) time.Time {
	if asOf != nil {
		return asOf.UTC().Truncate(24 * time.Hour)
	}
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func portfolioValuation(p model.Portfolio, holdings []model.Holding, table *pricing.Table) model.PortfolioValuation {
	v := pricing.ValuePortfolio(holdings, table)
	return model.PortfolioValuation{
		PortfolioID:   p.ID,
		PortfolioName: p.Name,
		Lines:         v.Lines,
		Subtotal:      v.Subtotal,
		Unresolved:    v.Unresolved,
	}
}

// ValuePortfolio values the open holdings of one portfolio on asOf (today when nil).
// Holdings whose name is not on the price list have a nil price and value.
// Returns apperrors.ErrPortfolioNotFound if the portfolio does not exist.
func (s *ValuationService) ValuePortfolio(ctx context.Context, portfolioID string, asOf *time.Time) (model.PortfolioValuation, error) {
	portfolio, err := s.portfolioRepo.GetPortfolio(ctx, portfolioID)
	if err != nil {
		return model.PortfolioValuation{}, err
	}

	date := valuationDate(asOf)
	holdings, err := s.ledger.Holdings(ctx, portfolio.ClientID, portfolio.ID, &date)
	if err != nil {
		return model.PortfolioValuation{}, err
	}
	table, _, err := s.prices.tableFor(ctx, date)
	if err != nil {
		return model.PortfolioValuation{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToValue, err)
	}

	return portfolioValuation(portfolio, holdings, table), nil
}

// ValueClient values every portfolio of a client on asOf (today when nil).
// Returns apperrors.ErrClientNotFound if the client does not exist.
func (s *ValuationService) ValueClient(ctx context.Context, clientID string, asOf *time.Time) (model.ClientValuation, error) {
	date := valuationDate(asOf)

	client, err := s.clientRepo.GetClient(ctx, clientID)
	if err != nil {
		return model.ClientValuation{}, err
	}
	portfolios, err := s.portfolioRepo.GetPortfolios(ctx, model.PortfolioFilter{ClientID: clientID})
	if err != nil {
		return model.ClientValuation{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrievePortfolios, err)
	}
	holdings, err := s.ledger.Holdings(ctx, clientID, "", &date)
	if err != nil {
		return model.ClientValuation{}, err
	}
	table, priceDate, err := s.prices.tableFor(ctx, date)
	if err != nil {
		return model.ClientValuation{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToValue, err)
	}

	byPortfolio := make(map[string][]model.Holding)
	for _, h := range holdings {
		byPortfolio[h.PortfolioID] = append(byPortfolio[h.PortfolioID], h)
	}

	valuation := model.ClientValuation{
		ClientID:   client.ID,
		ClientName: client.Name,
		Date:       repository.FormatDate(date),
		PriceDate:  priceDate,
		Portfolios: make([]model.PortfolioValuation, 0, len(portfolios)),
	}
	total := decimal.Zero
	for _, p := range portfolios {
		pv := portfolioValuation(p, byPortfolio[p.ID], table)
		total = total.Add(decimal.NewFromFloat(pv.Subtotal))
		valuation.Portfolios = append(valuation.Portfolios, pv)
	}
	valuation.Total = total.Round(2).InexactFloat64()
	return valuation, nil
}

// ValueAll values every client concurrently and adds up a global total.
func (s *ValuationService) ValueAll(ctx context.Context, asOf *time.Time) (model.GlobalValuation, error) {
	date := valuationDate(asOf)

	clients, err := s.clientRepo.GetClients(ctx)
	if err != nil {
		return model.GlobalValuation{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveClients, err)
	}

	results := make([]model.ClientValuation, len(clients))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, c := range clients {
		g.Go(func() error {
			v, err := s.ValueClient(gctx, c.ID, &date)
			if err != nil {
				return fmt.Errorf("client %s: %w", c.ID, err)
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.GlobalValuation{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToValue, err)
	}

	total := decimal.Zero
	for _, v := range results {
		total = total.Add(decimal.NewFromFloat(v.Total))
	}
	return model.GlobalValuation{
		Date:    repository.FormatDate(date),
		Clients: results,
		Total:   total.Round(2).InexactFloat64(),
	}, nil
}

// AdvisoryFee applies the client's fee percentage to its valued total.
func (s *ValuationService) AdvisoryFee(ctx context.Context, clientID string, asOf *time.Time) (model.AdvisoryFee, error) {
	client, err := s.clientRepo.GetClient(ctx, clientID)
	if err != nil {
		return model.AdvisoryFee{}, err
	}
	valuation, err := s.ValueClient(ctx, clientID, asOf)
	if err != nil {
		return model.AdvisoryFee{}, err
	}

	fee := decimal.NewFromFloat(valuation.Total).
		Mul(decimal.NewFromFloat(client.FeePercent)).
		Div(decimal.NewFromInt(100)).
		Round(2)

	return model.AdvisoryFee{
		ClientID:   clientID,
		Date:       valuation.Date,
		TotalValue: valuation.Total,
		FeePercent: client.FeePercent,
		Fee:        fee.InexactFloat64(),
	}, nil
}

// SnapshotAll stores the valuation of every client on date and returns how
// many snapshots were written. Running it twice for the same day replaces
// the earlier snapshots.
func (s *ValuationService) SnapshotAll(ctx context.Context, date time.Time) (int, error) {
	global, err := s.ValueAll(ctx, &date)
	if err != nil {
		return 0, err
	}

	day := valuationDate(&date)
	now := time.Now().UTC()
	for _, cv := range global.Clients {
		snapshot := model.ValuationSnapshot{
			ID:           uuid.New().String(),
			ClientID:     cv.ClientID,
			Date:         day,
			TotalValue:   cv.Total,
			CalculatedAt: now,
		}
		for _, pv := range cv.Portfolios {
			snapshot.ResolvedCount += len(pv.Lines) - pv.Unresolved
			snapshot.UnresolvedCount += pv.Unresolved
		}
		if err := s.snapshotRepo.UpsertSnapshot(ctx, snapshot); err != nil {
			return 0, err
		}
	}

	s.log.Info().
		Str("date", repository.FormatDate(day)).
		Int("clients", len(global.Clients)).
		Float64("total", global.Total).
		Msg("valuation snapshot stored")
	return len(global.Clients), nil
}

// History returns stored snapshots between start and end inclusive, ordered
// by date. An empty clientID returns every client.
func (s *ValuationService) History(ctx context.Context, clientID string, start, end time.Time) ([]model.ValuationSnapshot, error) {
	history := []model.ValuationSnapshot{}
	err := s.snapshotRepo.GetSnapshotHistory(ctx, clientID, start, end, func(record model.ValuationSnapshot) error {
		history = append(history, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}
