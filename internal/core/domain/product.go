package domain

import "time"

type Product struct {
	ID             string
	Name           string
	Price          float64
	Description    string
	Category       string
	InventoryCount int
	Sizes          []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
