package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/apperrors"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/pricing"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/repository"
)

// PriceService imports broker price lists and serves the price table of a day.
//
// Tables are cached per upload day. An import for a day drops that day from
// the cache; the latest upload day on or before a request date is always
// looked up in the database so a new day is seen immediately.
type PriceService struct {
	db           *sql.DB
	priceRepo    *repository.PriceRepository
	securityRepo *repository.SecurityRepository
	tables       *cache.Cache
	log          zerolog.Logger
}

// NewPriceService creates a new PriceService. ttl bounds how long a loaded
// table is kept in memory.
func NewPriceService(
	db *sql.DB,
	priceRepo *repository.PriceRepository,
	securityRepo *repository.SecurityRepository,
	ttl time.Duration,
	log zerolog.Logger,
) *PriceService {
	return &PriceService{
		db:           db,
		priceRepo:    priceRepo,
		securityRepo: securityRepo,
		tables:       cache.New(ttl, 2*ttl),
		log:          log.With().Str("component", "pricing").Logger(),
	}
}

// ImportPrices parses a delimited price export and stores its keys as the
// price list of asOf. Every ticker becomes a security (resolved or created by
// exact name). Keys already stored for that day are overwritten.
//
// A file without a single (ticker, price) pair returns apperrors.ErrNoPricePairs
// and stores nothing.
func (s *PriceService) ImportPrices(ctx context.Context, raw string, asOf time.Time) (model.PriceImportResponse, error) {
	day := asOf.UTC().Truncate(24 * time.Hour)

	table, err := pricing.ParsePriceTable(raw)
	if err != nil {
		return model.PriceImportResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.PriceImportResponse{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	securityRepo := s.securityRepo.WithTx(tx)
	securityIDs := make(map[string]string)
	for _, ticker := range table.Tickers() {
		sec, _, err := resolveOrCreateSecurity(ctx, securityRepo, ticker)
		if err != nil {
			return model.PriceImportResponse{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToImportPrices, err)
		}
		securityIDs[ticker] = sec.ID
	}

	registered := table.Entries()
	entries := make([]model.PriceEntry, 0, len(registered))
	for key, e := range registered {
		entries = append(entries, model.PriceEntry{
			ID:         uuid.New().String(),
			AsOfDate:   day,
			NameKey:    key,
			Price:      e.Price,
			Strong:     e.Strong,
			SecurityID: securityIDs[e.Ticker],
			Label:      e.Label,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].NameKey < entries[j].NameKey })

	if err := s.priceRepo.WithTx(tx).UpsertPriceEntries(ctx, entries); err != nil {
		return model.PriceImportResponse{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToImportPrices, err)
	}
	if err := tx.Commit(); err != nil {
		return model.PriceImportResponse{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToImportPrices, err)
	}

	s.tables.Delete(repository.FormatDate(day))

	s.log.Info().
		Str("as_of", repository.FormatDate(day)).
		Int("entries", len(entries)).
		Int("tickers", len(securityIDs)).
		Msg("price list imported")

	return model.PriceImportResponse{
		AsOfDate: repository.FormatDate(day),
		Entries:  len(entries),
		Tickers:  len(securityIDs),
	}, nil
}

// Mapping returns the price table of the latest upload day on or before
// asOf, together with that day. Returns apperrors.ErrPriceListNotFound if no
// list has been uploaded by then.
func (s *PriceService) Mapping(ctx context.Context, asOf time.Time) (*pricing.Table, time.Time, error) {
	day, err := s.priceRepo.LatestPriceDate(ctx, asOf)
	if err != nil {
		return nil, time.Time{}, err
	}

	key := repository.FormatDate(day)
	if cached, ok := s.tables.Get(key); ok {
		return cached.(*pricing.Table), day, nil
	}

	stored, err := s.priceRepo.GetPriceEntries(ctx, day)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrievePrices, err)
	}

	entries := make(map[string]pricing.Entry, len(stored))
	for _, e := range stored {
		entry := pricing.Entry{Price: e.Price, Strong: e.Strong, Label: e.Label}
		if e.Strong {
			entry.Ticker = e.NameKey
		}
		entries[e.NameKey] = entry
	}
	table := pricing.NewTable(entries)

	s.tables.SetDefault(key, table)
	s.log.Debug().Str("as_of", key).Int("keys", table.Len()).Msg("price table loaded")
	return table, day, nil
}

// GetMapping returns the flattened NameKey -> price list used on asOf.
func (s *PriceService) GetMapping(ctx context.Context, asOf time.Time) (model.PriceMappingResponse, error) {
	table, day, err := s.Mapping(ctx, asOf)
	if err != nil {
		return model.PriceMappingResponse{}, err
	}
	return model.PriceMappingResponse{
		AsOfDate: repository.FormatDate(day),
		Prices:   table.Prices(),
	}, nil
}

// tableFor is Mapping for valuations: a missing price list is not an error,
// every holding is simply unresolved.
func (s *PriceService) tableFor(ctx context.Context, asOf time.Time) (*pricing.Table, string, error) {
	table, day, err := s.Mapping(ctx, asOf)
	if errors.Is(err, apperrors.ErrPriceListNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return table, repository.FormatDate(day), nil
}
