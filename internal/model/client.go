package model

import "time"

// Client represents an advisory customer. Email and Phone are held in clear
// text here; the repository seals them before they reach the database.
type Client struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ServiceType string    `json:"serviceType"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	RiskProfile string    `json:"riskProfile"`
	FeePercent  float64   `json:"feePercent"`
	Comments    string    `json:"comments"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AdvisoryFee is the fee owed by a client on its valued holdings.
type AdvisoryFee struct {
	ClientID   string  `json:"clientId"`
	Date       string  `json:"date"`
	TotalValue float64 `json:"totalValue"`
	FeePercent float64 `json:"feePercent"`
	Fee        float64 `json:"fee"`
}
