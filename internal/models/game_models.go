package models

import "time"

// Game lifecycle statuses. Only active games can be purchased.
const (
	GameStatusActive     = "active"
	GameStatusInactive   = "inactive"
	GameStatusComingSoon = "coming_soon"
)

// Game represents a catalog game offered by the club.
type Game struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Genre       string    `json:"genre" db:"genre"`
	Status      string    `json:"status" db:"status"`
	Price       float64   `json:"price" db:"price"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
