package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/pricing"
)

// ClientBuilder provides a fluent interface for creating test clients.
//
// Example usage:
//
//	// Simple creation with defaults
//	client := testutil.NewClient().Build(t, db)
//
//	// Customized client
//	client := testutil.NewClient().
//	    WithName("Ana Pérez").
//	    WithFeePercent(1.5).
//	    Build(t, db)
type ClientBuilder struct {
	ID          string
	Name        string
	ServiceType string
	Email       string
	Phone       string
	RiskProfile string
	FeePercent  float64
}

// NewClient creates a ClientBuilder with sensible defaults.
func NewClient() *ClientBuilder {
	return &ClientBuilder{
		ID:          MakeID(),
		Name:        MakeName("Test Client"),
		ServiceType: "advisory",
		RiskProfile: "moderate",
		FeePercent:  1,
	}
}

// WithID sets a custom ID.
func (b *ClientBuilder) WithID(id string) *ClientBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *ClientBuilder) WithName(name string) *ClientBuilder {
	b.Name = name
	return b
}

// WithContact sets email and phone. They are stored unsealed.
func (b *ClientBuilder) WithContact(email, phone string) *ClientBuilder {
	b.Email = email
	b.Phone = phone
	return b
}

// WithFeePercent sets the advisory fee percentage.
func (b *ClientBuilder) WithFeePercent(fee float64) *ClientBuilder {
	b.FeePercent = fee
	return b
}

// Build creates the client in the database and returns it.
func (b *ClientBuilder) Build(t *testing.T, db *sql.DB) model.Client {
	t.Helper()

	query := `
		INSERT INTO client (id, name, service_type, email, phone, risk_profile, fee_percent, comments)
		VALUES (?, ?, ?, ?, ?, ?, ?, '')
	`

	_, err := db.Exec(query, b.ID, b.Name, b.ServiceType, b.Email, b.Phone, b.RiskProfile, b.FeePercent)
	if err != nil {
		t.Fatalf("Failed to create test client: %v", err)
	}

	return model.Client{
		ID:          b.ID,
		Name:        b.Name,
		ServiceType: b.ServiceType,
		Email:       b.Email,
		Phone:       b.Phone,
		RiskProfile: b.RiskProfile,
		FeePercent:  b.FeePercent,
	}
}

// CreateClient creates a client with the given name and default values.
func CreateClient(t *testing.T, db *sql.DB, name string) model.Client {
	t.Helper()
	return NewClient().WithName(name).Build(t, db)
}

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	portfolio := testutil.NewPortfolio(client.ID).
//	    WithName("Retirement").
//	    Build(t, db)
type PortfolioBuilder struct {
	ID           string
	ClientID     string
	Name         string
	TargetPeriod string
}

// NewPortfolio creates a PortfolioBuilder for clientID with sensible defaults.
func NewPortfolio(clientID string) *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:       MakeID(),
		ClientID: clientID,
		Name:     MakeName("Test Portfolio"),
	}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// WithTargetPeriod sets the investment horizon.
func (b *PortfolioBuilder) WithTargetPeriod(period string) *PortfolioBuilder {
	b.TargetPeriod = period
	return b
}

// Build creates the portfolio in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	query := `
		INSERT INTO portfolio (id, client_id, name, target_period)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.ClientID, b.Name, b.TargetPeriod)
	if err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}

	return model.Portfolio{
		ID:           b.ID,
		ClientID:     b.ClientID,
		Name:         b.Name,
		TargetPeriod: b.TargetPeriod,
	}
}

// CreatePortfolio creates a portfolio for clientID with the given name.
func CreatePortfolio(t *testing.T, db *sql.DB, clientID, name string) model.Portfolio {
	t.Helper()
	return NewPortfolio(clientID).WithName(name).Build(t, db)
}

// CreateSecurity stores a security under name, folded the way the
// application folds it.
//
// Example usage:
//
//	ypf := testutil.CreateSecurity(t, db, "YPF")
func CreateSecurity(t *testing.T, db *sql.DB, name string) model.Security {
	t.Helper()

	sec := model.Security{
		ID:       MakeID(),
		Name:     name,
		NameFold: pricing.FoldName(name),
	}
	_, err := db.Exec(`INSERT INTO security (id, name, name_fold) VALUES (?, ?, ?)`, sec.ID, sec.Name, sec.NameFold)
	if err != nil {
		t.Fatalf("Failed to create test security: %v", err)
	}
	return sec
}

// MovementBuilder provides a fluent interface for creating test movements.
// Build writes the row directly, without any balance check, so tests can set
// up histories the service would refuse.
//
// Example usage:
//
//	testutil.NewMovement(client.ID, portfolio.ID, ypf.ID).
//	    Buy(100).
//	    WithDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).
//	    Build(t, db)
type MovementBuilder struct {
	ID          string
	ClientID    string
	PortfolioID string
	SecurityID  string
	Type        string
	Date        time.Time
	Quantity    float64
	UnitPrice   *float64
}

// NewMovement creates a MovementBuilder for a buy of 10 dated today.
func NewMovement(clientID, portfolioID, securityID string) *MovementBuilder {
	return &MovementBuilder{
		ID:          MakeID(),
		ClientID:    clientID,
		PortfolioID: portfolioID,
		SecurityID:  securityID,
		Type:        model.MovementBuy,
		Date:        time.Now().UTC().Truncate(24 * time.Hour),
		Quantity:    10,
	}
}

// Buy makes the movement a buy of quantity.
func (b *MovementBuilder) Buy(quantity float64) *MovementBuilder {
	b.Type = model.MovementBuy
	b.Quantity = quantity
	return b
}

// Sell makes the movement a sell of quantity.
func (b *MovementBuilder) Sell(quantity float64) *MovementBuilder {
	b.Type = model.MovementSell
	b.Quantity = quantity
	return b
}

// WithDate sets the movement date.
func (b *MovementBuilder) WithDate(date time.Time) *MovementBuilder {
	b.Date = date
	return b
}

// WithUnitPrice sets the unit price.
func (b *MovementBuilder) WithUnitPrice(price float64) *MovementBuilder {
	b.UnitPrice = &price
	return b
}

// Build creates the movement in the database and returns it.
func (b *MovementBuilder) Build(t *testing.T, db *sql.DB) model.Movement {
	t.Helper()

	query := `
		INSERT INTO movement (id, client_id, portfolio_id, security_id, type, date, quantity, unit_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID,
		b.ClientID,
		b.PortfolioID,
		b.SecurityID,
		b.Type,
		b.Date.Format("2006-01-02"),
		b.Quantity,
		b.UnitPrice,
	)
	if err != nil {
		t.Fatalf("Failed to create test movement: %v", err)
	}

	return model.Movement{
		ID:          b.ID,
		ClientID:    b.ClientID,
		PortfolioID: b.PortfolioID,
		SecurityID:  b.SecurityID,
		Type:        b.Type,
		Date:        b.Date,
		Quantity:    b.Quantity,
		UnitPrice:   b.UnitPrice,
	}
}

// CreatePriceEntry stores one price list key for date.
//
// Example usage:
//
//	testutil.CreatePriceEntry(t, db, date, "ypf", 25000, true)
func CreatePriceEntry(t *testing.T, db *sql.DB, date time.Time, nameKey string, price float64, strong bool) model.PriceEntry {
	t.Helper()

	e := model.PriceEntry{
		ID:       MakeID(),
		AsOfDate: date,
		NameKey:  nameKey,
		Price:    price,
		Strong:   strong,
	}
	_, err := db.Exec(
		`INSERT INTO price_entry (id, as_of_date, name_key, price, strong) VALUES (?, ?, ?, ?, ?)`,
		e.ID, date.Format("2006-01-02"), e.NameKey, e.Price, e.Strong,
	)
	if err != nil {
		t.Fatalf("Failed to create test price entry: %v", err)
	}
	return e
}
