package model

import "time"

// Movement types. Direction is carried by the type, never by the sign of the quantity.
const (
	MovementBuy  = "buy"
	MovementSell = "sell"
)

// Movement is a single dated buy or sell of a security within a client's portfolio.
type Movement struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	PortfolioID string    `json:"portfolioId"`
	SecurityID  string    `json:"securityId"`
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	Quantity    float64   `json:"quantity"`
	UnitPrice   *float64  `json:"unitPrice,omitempty"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// MovementResponse is a movement enriched with the security display name.
type MovementResponse struct {
	Movement
	SecurityName string `json:"securityName"`
}

// MovementFilter selects movements for the movement read boundary.
// Empty fields and nil dates are not applied.
type MovementFilter struct {
	ClientID    string
	PortfolioID string
	SecurityID  string
	DateFrom    *time.Time
	DateTo      *time.Time
}

// Triple identifies the ledger a movement belongs to.
type Triple struct {
	ClientID    string
	PortfolioID string
	SecurityID  string
}

// Triple returns the (client, portfolio, security) key of the movement.
func (m Movement) Triple() Triple {
	return Triple{ClientID: m.ClientID, PortfolioID: m.PortfolioID, SecurityID: m.SecurityID}
}

// Holding is the derived net quantity of a security in a portfolio.
type Holding struct {
	ClientID     string  `json:"clientId"`
	PortfolioID  string  `json:"portfolioId"`
	SecurityID   string  `json:"securityId"`
	SecurityName string  `json:"securityName"`
	Balance      float64 `json:"balance"`
}

// SellCheck is the outcome of validating a proposed sell.
type SellCheck struct {
	Allowed   bool    `json:"allowed"`
	Available float64 `json:"available"`
}

// Balance is the answer to a balance query for one triple.
type Balance struct {
	ClientID    string  `json:"clientId"`
	PortfolioID string  `json:"portfolioId"`
	SecurityID  string  `json:"securityId"`
	AsOf        string  `json:"asOf,omitempty"`
	Quantity    float64 `json:"quantity"`
}
