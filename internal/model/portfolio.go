package model

import "time"

// Portfolio (a.k.a. fund or cartera) belongs to exactly one client.
type Portfolio struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"clientId"`
	Name         string    `json:"name"`
	TargetPeriod string    `json:"targetPeriod,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PortfolioFilter for querying portfolios
type PortfolioFilter struct {
	ClientID string
}
