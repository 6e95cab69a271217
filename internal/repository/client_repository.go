package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/apperrors"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/secret"
)

// ClientRepository provides data access methods for the client table.
// Email and phone are sealed with the configured secret.Box on write and
// opened on read, so callers only ever see clear text.
type ClientRepository struct {
	db  *sql.DB
	tx  *sql.Tx
	box *secret.Box
}

// NewClientRepository creates a new ClientRepository. A nil box stores contact details as given.
func NewClientRepository(db *sql.DB, box *secret.Box) *ClientRepository {
	return &ClientRepository{db: db, box: box}
}

func (r *ClientRepository) WithTx(tx *sql.Tx) *ClientRepository {
	return &ClientRepository{
		db:  r.db,
		tx:  tx,
		box: r.box,
	}
}

func (r *ClientRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const clientColumns = `id, name, service_type, email, phone, risk_profile, fee_percent, comments, created_at`

func (r *ClientRepository) scanClient(row interface{ Scan(...any) error }) (model.Client, error) {
	var c model.Client
	var createdAtStr sql.NullString

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.ServiceType,
		&c.Email,
		&c.Phone,
		&c.RiskProfile,
		&c.FeePercent,
		&c.Comments,
		&createdAtStr,
	)
	if err != nil {
		return c, err
	}

	if c.Email, err = r.box.Open(c.Email); err != nil {
		return c, fmt.Errorf("failed to open client email: %w", err)
	}
	if c.Phone, err = r.box.Open(c.Phone); err != nil {
		return c, fmt.Errorf("failed to open client phone: %w", err)
	}

	if createdAtStr.Valid {
		c.CreatedAt, err = ParseTime(createdAtStr.String)
		if err != nil {
			return c, err
		}
	}
	return c, nil
}

// GetClients retrieves every client ordered by name.
// Returns an empty slice if there are none.
func (r *ClientRepository) GetClients(ctx context.Context) ([]model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client ORDER BY name COLLATE NOCASE ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query client table: %w", err)
	}
	defer rows.Close()

	clients := []model.Client{}
	for rows.Next() {
		c, err := r.scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client table results: %w", err)
		}
		clients = append(clients, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client table: %w", err)
	}

	return clients, nil
}

// GetClient retrieves a single client.
// Returns apperrors.ErrClientNotFound if no client has the given ID.
func (r *ClientRepository) GetClient(ctx context.Context, clientID string) (model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client WHERE id = ?`

	c, err := r.scanClient(r.getQuerier().QueryRowContext(ctx, query, clientID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Client{}, apperrors.ErrClientNotFound
	}
	if err != nil {
		return model.Client{}, fmt.Errorf("failed to scan client table results: %w", err)
	}
	return c, nil
}

func (r *ClientRepository) sealContact(c *model.Client) (email, phone string, err error) {
	if email, err = r.box.Seal(c.Email); err != nil {
		return "", "", err
	}
	if phone, err = r.box.Seal(c.Phone); err != nil {
		return "", "", err
	}
	return email, phone, nil
}

// InsertClient inserts a new client.
func (r *ClientRepository) InsertClient(ctx context.Context, c *model.Client) error {
	email, phone, err := r.sealContact(c)
	if err != nil {
		return fmt.Errorf("failed to seal client contact: %w", err)
	}

	query := `
        INSERT INTO client (id, name, service_type, email, phone, risk_profile, fee_percent, comments, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err = r.getQuerier().ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.ServiceType,
		email,
		phone,
		c.RiskProfile,
		c.FeePercent,
		c.Comments,
		c.CreatedAt.UTC().Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}
	return nil
}

// UpdateClient updates an existing client.
// Returns apperrors.ErrClientNotFound if no client has the given ID.
func (r *ClientRepository) UpdateClient(ctx context.Context, c *model.Client) error {
	email, phone, err := r.sealContact(c)
	if err != nil {
		return fmt.Errorf("failed to seal client contact: %w", err)
	}

	query := `
        UPDATE client
        SET name = ?, service_type = ?, email = ?, phone = ?, risk_profile = ?, fee_percent = ?, comments = ?
        WHERE id = ?
    `
	result, err := r.getQuerier().ExecContext(ctx, query,
		c.Name,
		c.ServiceType,
		email,
		phone,
		c.RiskProfile,
		c.FeePercent,
		c.Comments,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	return checkAffected(result, apperrors.ErrClientNotFound)
}

// DeleteClient deletes a client. Portfolios, movements and snapshots cascade.
// Returns apperrors.ErrClientNotFound if no client has the given ID.
func (r *ClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM client WHERE id = ?`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return checkAffected(result, apperrors.ErrClientNotFound)
}
