package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/apperrors"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
)

// MovementRepository provides data access methods for the movement table.
// Reads that feed balance computation go through ix_movement_triple and are
// streamed, so there is no cap on the number of movements per triple.
type MovementRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewMovementRepository creates a new MovementRepository with the provided database connection.
func NewMovementRepository(db *sql.DB) *MovementRepository {
	return &MovementRepository{db: db}
}

func (r *MovementRepository) WithTx(tx *sql.Tx) *MovementRepository {
	return &MovementRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *MovementRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// filterClause renders the WHERE clause for f. The m alias refers to movement.
func filterClause(f model.MovementFilter) (string, []any) {
	var conds []string
	var args []any

	if f.ClientID != "" {
		conds = append(conds, "m.client_id = ?")
		args = append(args, f.ClientID)
	}
	if f.PortfolioID != "" {
		conds = append(conds, "m.portfolio_id = ?")
		args = append(args, f.PortfolioID)
	}
	if f.SecurityID != "" {
		conds = append(conds, "m.security_id = ?")
		args = append(args, f.SecurityID)
	}
	if f.DateFrom != nil {
		conds = append(conds, "m.date >= ?")
		args = append(args, FormatDate(*f.DateFrom))
	}
	if f.DateTo != nil {
		conds = append(conds, "m.date <= ?")
		args = append(args, FormatDate(*f.DateTo))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

const movementColumns = `m.id, m.client_id, m.portfolio_id, m.security_id, m.type, m.date, m.quantity, m.unit_price, m.note, m.created_at`

func scanMovement(row interface{ Scan(...any) error }, extra ...any) (model.Movement, error) {
	var m model.Movement
	var dateStr string
	var createdAtStr sql.NullString
	var unitPrice sql.NullFloat64

	dest := []any{
		&m.ID,
		&m.ClientID,
		&m.PortfolioID,
		&m.SecurityID,
		&m.Type,
		&dateStr,
		&m.Quantity,
		&unitPrice,
		&m.Note,
		&createdAtStr,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return m, err
	}

	var err error
	m.Date, err = ParseTime(dateStr)
	if err != nil || m.Date.IsZero() {
		return m, fmt.Errorf("failed to parse date: %w", err)
	}
	if createdAtStr.Valid {
		if m.CreatedAt, err = ParseTime(createdAtStr.String); err != nil {
			return m, err
		}
	}
	if unitPrice.Valid {
		p := unitPrice.Float64
		m.UnitPrice = &p
	}
	return m, nil
}

// StreamMovements calls callback for every movement matching filter, ordered
// by date. The callback must not query the database: with a single
// connection the open result set holds it.
func (r *MovementRepository) StreamMovements(
	ctx context.Context,
	filter model.MovementFilter,
	callback func(m model.Movement) error,
) error {
	where, args := filterClause(filter)
	query := `SELECT ` + movementColumns + ` FROM movement m` + where + ` ORDER BY m.date ASC, m.created_at ASC, m.id ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query movement table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return fmt.Errorf("failed to scan movement table results: %w", err)
		}
		if err := callback(m); err != nil {
			return err
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating movement table: %w", err)
	}
	return nil
}

// GetTripleMovements loads every movement of one (client, portfolio, security) ledger.
func (r *MovementRepository) GetTripleMovements(ctx context.Context, triple model.Triple) ([]model.Movement, error) {
	movements := []model.Movement{}
	err := r.StreamMovements(ctx, model.MovementFilter{
		ClientID:    triple.ClientID,
		PortfolioID: triple.PortfolioID,
		SecurityID:  triple.SecurityID,
	}, func(m model.Movement) error {
		movements = append(movements, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movements, nil
}

// GetMovements retrieves movements matching filter with their security names, ordered by date.
func (r *MovementRepository) GetMovements(ctx context.Context, filter model.MovementFilter) ([]model.MovementResponse, error) {
	where, args := filterClause(filter)
	query := `SELECT ` + movementColumns + `, s.name
        FROM movement m
        JOIN security s ON s.id = m.security_id` + where + `
        ORDER BY m.date ASC, m.created_at ASC, m.id ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movement table: %w", err)
	}
	defer rows.Close()

	movements := []model.MovementResponse{}
	for rows.Next() {
		var name string
		m, err := scanMovement(rows, &name)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement table results: %w", err)
		}
		movements = append(movements, model.MovementResponse{Movement: m, SecurityName: name})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movement table: %w", err)
	}

	return movements, nil
}

// GetMovement retrieves a single movement.
// Returns apperrors.ErrMovementNotFound if no movement has the given ID.
func (r *MovementRepository) GetMovement(ctx context.Context, movementID string) (model.MovementResponse, error) {
	query := `SELECT ` + movementColumns + `, s.name
        FROM movement m
        JOIN security s ON s.id = m.security_id
        WHERE m.id = ?`

	var name string
	m, err := scanMovement(r.getQuerier().QueryRowContext(ctx, query, movementID), &name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.MovementResponse{}, apperrors.ErrMovementNotFound
	}
	if err != nil {
		return model.MovementResponse{}, fmt.Errorf("failed to scan movement table results: %w", err)
	}
	return model.MovementResponse{Movement: m, SecurityName: name}, nil
}

// InsertMovement inserts a new movement.
func (r *MovementRepository) InsertMovement(ctx context.Context, m *model.Movement) error {
	query := `
        INSERT INTO movement (id, client_id, portfolio_id, security_id, type, date, quantity, unit_price, note, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.getQuerier().ExecContext(ctx, query,
		m.ID,
		m.ClientID,
		m.PortfolioID,
		m.SecurityID,
		m.Type,
		FormatDate(m.Date),
		m.Quantity,
		m.UnitPrice,
		m.Note,
		m.CreatedAt.UTC().Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("failed to insert movement: %w", err)
	}
	return nil
}

// UpdateMovement updates the editable fields of a movement: type, date,
// quantity, unit price and note. The triple never changes.
// Returns apperrors.ErrMovementNotFound if no movement has the given ID.
func (r *MovementRepository) UpdateMovement(ctx context.Context, m *model.Movement) error {
	query := `
        UPDATE movement
        SET type = ?, date = ?, quantity = ?, unit_price = ?, note = ?
        WHERE id = ?
    `
	result, err := r.getQuerier().ExecContext(ctx, query,
		m.Type,
		FormatDate(m.Date),
		m.Quantity,
		m.UnitPrice,
		m.Note,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update movement: %w", err)
	}
	return checkAffected(result, apperrors.ErrMovementNotFound)
}

// DeleteMovement deletes a movement.
// Returns apperrors.ErrMovementNotFound if no movement has the given ID.
func (r *MovementRepository) DeleteMovement(ctx context.Context, movementID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM movement WHERE id = ?`, movementID)
	if err != nil {
		return fmt.Errorf("failed to delete movement: %w", err)
	}
	return checkAffected(result, apperrors.ErrMovementNotFound)
}
