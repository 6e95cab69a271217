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

// PriceRepository provides data access methods for the price_entry table.
type PriceRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

func (r *PriceRepository) WithTx(tx *sql.Tx) *PriceRepository {
	return &PriceRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *PriceRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// UpsertPriceEntries writes entries, replacing any entry with the same
// (as_of_date, name_key) unless the stored entry came from a ticker cell and
// the incoming one is derived. Run it inside a transaction to make an upload
// atomic.
func (r *PriceRepository) UpsertPriceEntries(ctx context.Context, entries []model.PriceEntry) error {
	query := `
        INSERT INTO price_entry (id, as_of_date, name_key, price, strong, security_id, label, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (as_of_date, name_key) DO UPDATE SET
            price = excluded.price,
            strong = excluded.strong,
            security_id = excluded.security_id,
            label = excluded.label,
            created_at = excluded.created_at
        WHERE excluded.strong OR NOT price_entry.strong
    `
	now := time.Now().UTC().Format(time.DateTime)

	for _, e := range entries {
		_, err := r.getQuerier().ExecContext(ctx, query,
			e.ID,
			FormatDate(e.AsOfDate),
			e.NameKey,
			e.Price,
			e.Strong,
			nullString(e.SecurityID),
			e.Label,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert price_entry %q: %w", e.NameKey, err)
		}
	}
	return nil
}

// LatestPriceDate returns the most recent upload day on or before asOf.
// Returns apperrors.ErrPriceListNotFound if there is none.
func (r *PriceRepository) LatestPriceDate(ctx context.Context, asOf time.Time) (time.Time, error) {
	var dateStr sql.NullString
	err := r.getQuerier().QueryRowContext(ctx,
		`SELECT MAX(as_of_date) FROM price_entry WHERE as_of_date <= ?`,
		FormatDate(asOf),
	).Scan(&dateStr)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("failed to query price_entry table: %w", err)
	}
	if !dateStr.Valid {
		return time.Time{}, apperrors.ErrPriceListNotFound
	}
	return ParseTime(dateStr.String)
}

// GetPriceEntries retrieves every entry uploaded for one day.
func (r *PriceRepository) GetPriceEntries(ctx context.Context, asOfDate time.Time) ([]model.PriceEntry, error) {
	query := `
        SELECT id, as_of_date, name_key, price, strong, security_id, label
        FROM price_entry
        WHERE as_of_date = ?
        ORDER BY name_key ASC
    `
	rows, err := r.getQuerier().QueryContext(ctx, query, FormatDate(asOfDate))
	if err != nil {
		return nil, fmt.Errorf("failed to query price_entry table: %w", err)
	}
	defer rows.Close()

	entries := []model.PriceEntry{}
	for rows.Next() {
		var e model.PriceEntry
		var dateStr string
		var securityID sql.NullString

		err := rows.Scan(
			&e.ID,
			&dateStr,
			&e.NameKey,
			&e.Price,
			&e.Strong,
			&securityID,
			&e.Label,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price_entry table results: %w", err)
		}

		e.AsOfDate, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		e.SecurityID = securityID.String
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price_entry table: %w", err)
	}

	return entries, nil
}
