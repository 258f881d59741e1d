package model

import (
	"time"

	"gorm.io/gorm"
)

// Rating is a structured tasting note. Score uses the 50-100 scale. All
// descriptor fields are optional; only score and tasting date are required.
type Rating struct {
	gorm.Model
	UserID   uint
	WineID   uint
	Score    int
	Vintage  *uint64
	TastedAt time.Time

	// Appearance
	Clarity             *string
	AppearanceIntensity *string
	Colour              *string

	// Nose
	Condition     *string
	NoseIntensity *string
	AromaNotes    *string

	// Palate
	Sweetness        *string
	Acidity          *string
	Tannin           *string
	Alcohol          *string
	Body             *string
	FlavourIntensity *string
	FlavourNotes     *string
	Finish           *string

	// Conclusions
	Quality        *string
	ReadinessLevel *string
	Notes          *string

	User User `gorm:"foreignKey:UserID"`
	Wine Wine `gorm:"foreignKey:WineID"`
}

const (
	MinScore = 50
	MaxScore = 100
)
