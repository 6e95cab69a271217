package model

import "time"

// ValuationLine is one valued holding. Price and Value are nil when the
// security name could not be matched to the price list.
type ValuationLine struct {
	Holding
	Price *float64 `json:"price"`
	Value *float64 `json:"value"`
}

// PortfolioValuation is the valuation read for a single portfolio.
type PortfolioValuation struct {
	PortfolioID   string          `json:"portfolioId"`
	PortfolioName string          `json:"portfolioName"`
	Lines         []ValuationLine `json:"lines"`
	Subtotal      float64         `json:"subtotal"`
	Unresolved    int             `json:"unresolved"`
}

// ClientValuation rolls up every portfolio of a client.
type ClientValuation struct {
	ClientID   string               `json:"clientId"`
	ClientName string               `json:"clientName"`
	Date       string               `json:"date"`
	PriceDate  string               `json:"priceDate,omitempty"`
	Portfolios []PortfolioValuation `json:"portfolios"`
	Total      float64              `json:"total"`
}

// GlobalValuation rolls up every client.
type GlobalValuation struct {
	Date    string            `json:"date"`
	Clients []ClientValuation `json:"clients"`
	Total   float64           `json:"total"`
}

// ValuationSnapshot is a stored daily client total.
type ValuationSnapshot struct {
	ID              string    `json:"id"`
	ClientID        string    `json:"clientId"`
	Date            time.Time `json:"date"`
	TotalValue      float64   `json:"totalValue"`
	ResolvedCount   int       `json:"resolvedCount"`
	UnresolvedCount int       `json:"unresolvedCount"`
	CalculatedAt    time.Time `json:"calculatedAt"`
}
