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

// SecurityRepository provides data access methods for the security table.
type SecurityRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSecurityRepository creates a new SecurityRepository with the provided database connection.
func NewSecurityRepository(db *sql.DB) *SecurityRepository {
	return &SecurityRepository{db: db}
}

func (r *SecurityRepository) WithTx(tx *sql.Tx) *SecurityRepository {
	return &SecurityRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *SecurityRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func scanSecurity(row interface{ Scan(...any) error }) (model.Security, error) {
	var s model.Security
	var createdAtStr sql.NullString

	if err := row.Scan(&s.ID, &s.Name, &s.NameFold, &createdAtStr); err != nil {
		return s, err
	}
	if createdAtStr.Valid {
		var err error
		if s.CreatedAt, err = ParseTime(createdAtStr.String); err != nil {
			return s, err
		}
	}
	return s, nil
}

// GetSecurities retrieves every security ordered by name.
func (r *SecurityRepository) GetSecurities(ctx context.Context) ([]model.Security, error) {
	rows, err := r.getQuerier().QueryContext(ctx,
		`SELECT id, name, name_fold, created_at FROM security ORDER BY name_fold ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query security table: %w", err)
	}
	defer rows.Close()

	securities := []model.Security{}
	for rows.Next() {
		s, err := scanSecurity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan security table results: %w", err)
		}
		securities = append(securities, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating security table: %w", err)
	}

	return securities, nil
}

// GetSecurity retrieves a security by ID.
// Returns apperrors.ErrSecurityNotFound if it does not exist.
func (r *SecurityRepository) GetSecurity(ctx context.Context, securityID string) (model.Security, error) {
	return r.getOne(ctx, `SELECT id, name, name_fold, created_at FROM security WHERE id = ?`, securityID)
}

// GetSecurityByFold retrieves a security by its folded name.
// Returns apperrors.ErrSecurityNotFound if it does not exist.
func (r *SecurityRepository) GetSecurityByFold(ctx context.Context, nameFold string) (model.Security, error) {
	return r.getOne(ctx, `SELECT id, name, name_fold, created_at FROM security WHERE name_fold = ?`, nameFold)
}

func (r *SecurityRepository) getOne(ctx context.Context, query string, arg string) (model.Security, error) {
	s, err := scanSecurity(r.getQuerier().QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Security{}, apperrors.ErrSecurityNotFound
	}
	if err != nil {
		return model.Security{}, fmt.Errorf("failed to scan security table results: %w", err)
	}
	return s, nil
}

// InsertSecurityIfAbsent inserts s unless a security with the same folded name
// already exists, and returns the stored row either way. created reports
// whether s was the row written.
func (r *SecurityRepository) InsertSecurityIfAbsent(ctx context.Context, s *model.Security) (model.Security, bool, error) {
	query := `
        INSERT INTO security (id, name, name_fold, created_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (name_fold) DO NOTHING
    `
	result, err := r.getQuerier().ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.NameFold,
		s.CreatedAt.UTC().Format(time.DateTime),
	)
	if err != nil {
		return model.Security{}, false, fmt.Errorf("failed to insert security: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return model.Security{}, false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	stored, err := r.GetSecurityByFold(ctx, s.NameFold)
	if err != nil {
		return model.Security{}, false, err
	}
	return stored, n > 0, nil
}

// GetSecurityNames maps security IDs to display names.
func (r *SecurityRepository) GetSecurityNames(ctx context.Context, securityIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(securityIDs))
	if len(securityIDs) == 0 {
		return names, nil
	}

	args := make([]any, len(securityIDs))
	for i, id := range securityIDs {
		args[i] = id
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `SELECT id, name FROM security WHERE id IN (` + placeholders(len(securityIDs)) + `)`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query security table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan security table results: %w", err)
		}
		names[id] = name
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating security table: %w", err)
	}
	return names, nil
}
