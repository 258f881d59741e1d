package model

import "gorm.io/gorm"

// Master data: shared reference lists maintained by the import tooling and
// read everywhere else.

type Country struct {
	gorm.Model
	Name string `gorm:"uniqueIndex"`
}

type Region struct {
	gorm.Model
	Name      string `gorm:"uniqueIndex:idx_region_unique"`
	CountryID uint   `gorm:"uniqueIndex:idx_region_unique"`

	Country Country `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

type Appellation struct {
	gorm.Model
	Name     string `gorm:"uniqueIndex:idx_appellation_unique"`
	RegionID uint   `gorm:"uniqueIndex:idx_appellation_unique"`

	Region Region `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

type GrapeType string

const (
	GrapeTypeRed   GrapeType = "red"
	GrapeTypeWhite GrapeType = "white"
)

type GrapeVariety struct {
	gorm.Model
	Name string    `gorm:"uniqueIndex"`
	Type GrapeType `gorm:"type:varchar(8)"`
}
