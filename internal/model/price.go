package model

import "time"

// PriceEntry is one NameKey -> price pair of an uploaded price list.
// At most one entry exists per (AsOfDate, NameKey).
type PriceEntry struct {
	ID         string    `json:"id"`
	AsOfDate   time.Time `json:"asOfDate"`
	NameKey    string    `json:"nameKey"`
	Price      float64   `json:"price"`
	Strong     bool      `json:"strong"`
	SecurityID string    `json:"securityId,omitempty"`
	Label      string    `json:"label,omitempty"`
}

// PriceImportResponse summarises a price list import.
type PriceImportResponse struct {
	AsOfDate string `json:"asOfDate"`
	Entries  int    `json:"entries"`
	Tickers  int    `json:"tickers"`
}

// PriceMappingResponse is the persisted mapping for one day.
type PriceMappingResponse struct {
	AsOfDate string             `json:"asOfDate"`
	Prices   map[string]float64 `json:"prices"`
}
