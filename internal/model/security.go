package model

import "time"

// Security is a tradable instrument identified by name. NameFold is the
// case- and accent-insensitive form used to enforce uniqueness.
type Security struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NameFold  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
