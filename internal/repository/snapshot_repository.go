package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
)

// SnapshotRepository provides data access methods for the valuation_snapshot table.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new repository instance.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// UpsertSnapshot stores the valuation of one client for one day, replacing
// an earlier snapshot of the same day.
func (r *SnapshotRepository) UpsertSnapshot(ctx context.Context, s model.ValuationSnapshot) error {
	query := `
        INSERT INTO valuation_snapshot (id, client_id, date, total_value, resolved_count, unresolved_count, calculated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (client_id, date) DO UPDATE SET
            total_value = excluded.total_value,
            resolved_count = excluded.resolved_count,
            unresolved_count = excluded.unresolved_count,
            calculated_at = excluded.calculated_at
    `
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ClientID,
		FormatDate(s.Date),
		s.TotalValue,
		s.ResolvedCount,
		s.UnresolvedCount,
		s.CalculatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert valuation_snapshot: %w", err)
	}
	return nil
}

// GetSnapshotHistory streams stored snapshots between startDate and endDate
// (inclusive), ordered by date. An empty clientID selects every client.
//
// The callback pattern lets callers aggregate long ranges without holding
// every row in memory. Returns an error if the query fails or the callback
// returns one.
func (r *SnapshotRepository) GetSnapshotHistory(
	ctx context.Context,
	clientID string,
	startDate, endDate time.Time,
	callback func(record model.ValuationSnapshot) error,
) error {
	query := `
        SELECT id, client_id, date, total_value, resolved_count, unresolved_count, calculated_at
        FROM valuation_snapshot
        WHERE date >= ? AND date <= ?
    `
	args := []any{FormatDate(startDate), FormatDate(endDate)}
	if clientID != "" {
		query += ` AND client_id = ?`
		args = append(args, clientID)
	}
	query += ` ORDER BY date ASC, client_id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query valuation_snapshot: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var record model.ValuationSnapshot
		var dateStr, calculatedAtStr string

		err := rows.Scan(
			&record.ID,
			&record.ClientID,
			&dateStr,
			&record.TotalValue,
			&record.ResolvedCount,
			&record.UnresolvedCount,
			&calculatedAtStr,
		)
		if err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}

		record.Date, err = ParseTime(dateStr)
		if err != nil {
			return fmt.Errorf("failed to parse date: %w", err)
		}

		record.CalculatedAt, err = ParseTime(calculatedAtStr)
		if err != nil {
			return fmt.Errorf("failed to parse calculated_at: %w", err)
		}

		if err := callback(record); err != nil {
			return err
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}

	return nil
}
