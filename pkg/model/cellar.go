package model

import (
	"time"

	"gorm.io/gorm"
)

// CellarItem is a per-user line item of bottles held for a canonical wine.
// Quantity never rests at zero: consuming the last bottle deletes the row.
type CellarItem struct {
	gorm.Model
	UserID           uint
	WineID           uint
	Quantity         int64
	Vintage          *uint64
	PurchasePrice    *float64
	PurchaseDate     *time.Time
	PurchaseLocation *string

	User User `gorm:"foreignKey:UserID"`
	Wine Wine `gorm:"foreignKey:WineID"`
}

// ConsumptionRecord is an append-only log entry for bottles drunk. The rating
// link is optional and one-directional.
type ConsumptionRecord struct {
	gorm.Model
	UserID     uint
	WineID     uint
	Quantity   int64
	Notes      string
	RatingID   *uint
	ConsumedAt time.Time

	Wine   Wine    `gorm:"foreignKey:WineID"`
	Rating *Rating `gorm:"foreignKey:RatingID"`
}
