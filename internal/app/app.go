// Package app wires repositories and services on top of an open database.
// The HTTP server and the command line tool share it.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/config"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/database"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/repository"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/scheduler"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/secret"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/service"
)

// snapshotTimeout bounds a single scheduled snapshot run.
const snapshotTimeout = 10 * time.Minute

// App holds the database and every service built on it.
type App struct {
	DB       *sql.DB
	Services api.Services

	cfg    *config.Config
	log    zerolog.Logger
	ownsDB bool
}

// Open opens the configured database, applies pending migrations and wires
// the services.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if applied > 0 {
		log.Info().Int("applied", applied).Msg("database migrated")
	}

	a, err := New(db, cfg, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	a.ownsDB = true
	return a, nil
}

// New wires the services on an already migrated database. The caller keeps
// ownership of db.
func New(db *sql.DB, cfg *config.Config, log zerolog.Logger) (*App, error) {
	box, err := secret.New(cfg.Security.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to set up client field encryption: %w", err)
	}

	clientRepo := repository.NewClientRepository(db, box)
	portfolioRepo := repository.NewPortfolioRepository(db)
	securityRepo := repository.NewSecurityRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	ledgerService := service.NewLedgerService(db, movementRepo, portfolioRepo, securityRepo, log)
	priceService := service.NewPriceService(db, priceRepo, securityRepo, cfg.Valuation.PriceCacheTTL, log)

	return &App{
		DB: db,
		Services: api.Services{
			System: service.NewSystemService(db, map[string]bool{
				"encryption": cfg.Security.EncryptionKey != "",
				"scheduler":  cfg.Scheduling.Enabled,
			}),
			Client:    service.NewClientService(clientRepo, log),
			Portfolio: service.NewPortfolioService(portfolioRepo, clientRepo, log),
			Security:  service.NewSecurityService(securityRepo, log),
			Ledger:    ledgerService,
			Price:     priceService,
			Valuation: service.NewValuationService(
				ledgerService,
				priceService,
				clientRepo,
				portfolioRepo,
				snapshotRepo,
				cfg.Valuation.Workers,
				log,
			),
		},
		cfg: cfg,
		log: log,
	}, nil
}

// Scheduler returns a scheduler with the background jobs registered, or nil
// when scheduling is disabled.
func (a *App) Scheduler() (*scheduler.Scheduler, error) {
	if !a.cfg.Scheduling.Enabled {
		return nil, nil
	}

	s := scheduler.New(a.log)
	job := scheduler.NewSnapshotJob(a.Services.Valuation, snapshotTimeout)
	if err := s.AddJob(a.cfg.Scheduling.SnapshotSchedule, job); err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_SCHEDULE %q: %w", a.cfg.Scheduling.SnapshotSchedule, err)
	}
	return s, nil
}

// Close closes the database if Open opened it.
func (a *App) Close() error {
	if !a.ownsDB {
		return nil
	}
	return a.DB.Close()
}
