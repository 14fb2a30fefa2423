package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalogue item. Price is decimal text ("12.50"); order totals
// are computed from it in integer cents, never in floats.
type Product struct {
	ID           uuid.UUID
	Name         string
	Description  string
	SKU          string
	Category     string
	AvailableQty int64
	Price        string
	ImageOne     string
	ImageTwo     string
	ImageThree   string
	ImageFour    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Favourite marks a product a user has saved. One per (user, product).
type Favourite struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	CreatedAt time.Time
}
