package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/apperrors"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio table.
type PortfolioRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

func (r *PortfolioRepository) WithTx(tx *sql.Tx) *PortfolioRepository {
	return &PortfolioRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *PortfolioRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func scanPortfolio(row interface{ Scan(...any) error }) (model.Portfolio, error) {
	var p model.Portfolio
	var createdAtStr sql.NullString

	if err := row.Scan(&p.ID, &p.ClientID, &p.Name, &p.TargetPeriod, &createdAtStr); err != nil {
		return p, err
	}
	if createdAtStr.Valid {
		var err error
		if p.CreatedAt, err = ParseTime(createdAtStr.String); err != nil {
			return p, err
		}
	}
	return p, nil
}

// GetPortfolios retrieves portfolios, optionally restricted to one client.
// Returns an empty slice if none match.
func (r *PortfolioRepository) GetPortfolios(ctx context.Context, filter model.PortfolioFilter) ([]model.Portfolio, error) {
	query := `SELECT id, client_id, name, target_period, created_at FROM portfolio`

	var args []any
	if filter.ClientID != "" {
		query += ` WHERE client_id = ?`
		args = append(args, filter.ClientID)
	}
	query += ` ORDER BY name COLLATE NOCASE ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}
		portfolios = append(portfolios, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}

// GetPortfolio retrieves a single portfolio.
// Returns apperrors.ErrPortfolioNotFound if no portfolio has the given ID.
func (r *PortfolioRepository) GetPortfolio(ctx context.Context, portfolioID string) (model.Portfolio, error) {
	query := `SELECT id, client_id, name, target_period, created_at FROM portfolio WHERE id = ?`

	p, err := scanPortfolio(r.getQuerier().QueryRowContext(ctx, query, portfolioID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to scan portfolio table results: %w", err)
	}
	return p, nil
}

// InsertPortfolio inserts a new portfolio.
func (r *PortfolioRepository) InsertPortfolio(ctx context.Context, p *model.Portfolio) error {
	query := `
        INSERT INTO portfolio (id, client_id, name, target_period, created_at)
        VALUES (?, ?, ?, ?, ?)
    `
	_, err := r.getQuerier().ExecContext(ctx, query,
		p.ID,
		p.ClientID,
		p.Name,
		p.TargetPeriod,
		p.CreatedAt.UTC().Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}
	return nil
}

// UpdatePortfolio updates name and target period. The owning client never changes.
// Returns apperrors.ErrPortfolioNotFound if no portfolio has the given ID.
func (r *PortfolioRepository) UpdatePortfolio(ctx context.Context, p *model.Portfolio) error {
	query := `UPDATE portfolio SET name = ?, target_period = ? WHERE id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, p.Name, p.TargetPeriod, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}
	return checkAffected(result, apperrors.ErrPortfolioNotFound)
}

// DeletePortfolio deletes a portfolio and, by cascade, its movements.
// Returns apperrors.ErrPortfolioNotFound if no portfolio has the given ID.
func (r *PortfolioRepository) DeletePortfolio(ctx context.Context, portfolioID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM portfolio WHERE id = ?`, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	return checkAffected(result, apperrors.ErrPortfolioNotFound)
}
