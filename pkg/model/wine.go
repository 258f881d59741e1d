package model

import "gorm.io/gorm"

type WineType string

const (
	WineTypeRed       WineType = "red"
	WineTypeWhite     WineType = "white"
	WineTypeRose      WineType = "rose"
	WineTypeSparkling WineType = "sparkling"
	WineTypeDessert   WineType = "dessert"
	WineTypeFortified WineType = "fortified"
)

func (t WineType) Valid() bool {
	switch t {
	case WineTypeRed, WineTypeWhite, WineTypeRose, WineTypeSparkling, WineTypeDessert, WineTypeFortified:
		return true
	}

	return false
}

// Producer rows are shared master data, resolved by case-insensitive name
// match and created on demand.
type Producer struct {
	gorm.Model
	Name string
}

// Wine is the canonical wine row referenced by cellar items, ratings and
// consumption records. There is no uniqueness constraint on (name, producer):
// repeated manual entry produces duplicate rows, only the search-and-select
// path reuses an existing id.
type Wine struct {
	gorm.Model
	Name          string
	WineType      WineType `gorm:"type:varchar(16)"`
	ProducerID    uint
	CountryID     *uint
	RegionID      *uint
	AppellationID *uint
	ImageURL      string
	Grapes        []WineGrape

	Producer    Producer     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Country     *Country     `gorm:"foreignKey:CountryID"`
	Region      *Region      `gorm:"foreignKey:RegionID"`
	Appellation *Appellation `gorm:"foreignKey:AppellationID"`
}

// WineGrape is one entry of a wine's grape composition. Percentages are
// advisory metadata; they are not required to sum to 100.
type WineGrape struct {
	gorm.Model
	WineID         uint `gorm:"uniqueIndex:idx_wine_grape_unique"`
	GrapeVarietyID uint `gorm:"uniqueIndex:idx_wine_grape_unique"`
	Percent        int64
	Position       int

	GrapeVariety GrapeVariety `gorm:"foreignKey:GrapeVarietyID"`
}
