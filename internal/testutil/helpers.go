package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/repository"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/service"
)

// Logger returns a logger that discards everything.
func Logger() zerolog.Logger {
	return zerolog.Nop()
}

func NewTestClientService(t *testing.T, db *sql.DB) *service.ClientService {
	t.Helper()

	return service.NewClientService(repository.NewClientRepository(db, nil), Logger())
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		repository.NewPortfolioRepository(db),
		repository.NewClientRepository(db, nil),
		Logger(),
	)
}

func NewTestSecurityService(t *testing.T, db *sql.DB) *service.SecurityService {
	t.Helper()

	return service.NewSecurityService(repository.NewSecurityRepository(db), Logger())
}

func NewTestLedgerService(t *testing.T, db *sql.DB) *service.LedgerService {
	t.Helper()

	return service.NewLedgerService(
		db,
		repository.NewMovementRepository(db),
		repository.NewPortfolioRepository(db),
		repository.NewSecurityRepository(db),
		Logger(),
	)
}

func NewTestPriceService(t *testing.T, db *sql.DB) *service.PriceService {
	t.Helper()

	return service.NewPriceService(
		db,
		repository.NewPriceRepository(db),
		repository.NewSecurityRepository(db),
		time.Minute,
		Logger(),
	)
}

// NewTestValuationService wires a ValuationService to fresh ledger and price services.
func NewTestValuationService(t *testing.T, db *sql.DB) *service.ValuationService {
	t.Helper()

	return service.NewValuationService(
		NewTestLedgerService(t, db),
		NewTestPriceService(t, db),
		repository.NewClientRepository(db, nil),
		repository.NewPortfolioRepository(db),
		repository.NewSnapshotRepository(db),
		2,
		Logger(),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, map[string]bool{"encryption": false, "scheduler": false})
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeName generates a unique display name for testing.
//
// Example usage:
//
//	name := testutil.MakeName("Retirement")
//	// Returns: "Retirement ABC123"
func MakeName(base string) string {
	if base == "" {
		base = "Test"
	}
	return base + " " + randomAlphanumeric(6)
}

// Day parses a YYYY-MM-DD date in UTC and panics on malformed input.
func Day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
