package taxonomy

import (
	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
)

// Catalog is a read-only snapshot of the location and grape master data,
// loaded once per dialog session. A Catalog built from empty lists is valid
// and simply offers no options.
type Catalog struct {
	countries    []model.Country
	regions      []model.Region
	appellations []model.Appellation
	grapes       []model.GrapeVariety

	countryByID     map[uint]model.Country
	regionByID      map[uint]model.Region
	appellationByID map[uint]model.Appellation
	grapeByID       map[uint]model.GrapeVariety
}

func NewCatalog(countries []model.Country, regions []model.Region, appellations []model.Appellation, grapes []model.GrapeVariety) *Catalog {
	catalog := &Catalog{
		countries:       countries,
		regions:         regions,
		appellations:    appellations,
		grapes:          grapes,
		countryByID:     make(map[uint]model.Country, len(countries)),
		regionByID:      make(map[uint]model.Region, len(regions)),
		appellationByID: make(map[uint]model.Appellation, len(appellations)),
		grapeByID:       make(map[uint]model.GrapeVariety, len(grapes)),
	}

	for _, country := range countries {
		catalog.countryByID[country.ID] = country
	}

	for _, region := range regions {
		catalog.regionByID[region.ID] = region
	}

	for _, appellation := range appellations {
		catalog.appellationByID[appellation.ID] = appellation
	}

	for _, grape := range grapes {
		catalog.grapeByID[grape.ID] = grape
	}

	return catalog
}

func (c *Catalog) Country(id uint) (model.Country, bool) {
	country, found := c.countryByID[id]

	return country, found
}

func (c *Catalog) Region(id uint) (model.Region, bool) {
	region, found := c.regionByID[id]

	return region, found
}

func (c *Catalog) Appellation(id uint) (model.Appellation, bool) {
	appellation, found := c.appellationByID[id]

	return appellation, found
}

func (c *Catalog) HasGrape(id uint) bool {
	_, found := c.grapeByID[id]

	return found
}

func (c *Catalog) Grape(id uint) (model.GrapeVariety, bool) {
	grape, found := c.grapeByID[id]

	return grape, found
}

// Countries returns all countries in load order.
func (c *Catalog) Countries() []model.Country {
	return c.countries
}

// RegionsForCountry returns the region option list narrowed to a country.
// A zero country id returns all regions.
func (c *Catalog) RegionsForCountry(countryID uint) []model.Region {
	if countryID == 0 {
		return c.regions
	}

	regions := make([]model.Region, 0, len(c.regions))

	for _, region := range c.regions {
		if region.CountryID == countryID {
			regions = append(regions, region)
		}
	}

	return regions
}

// AppellationsForRegion returns the appellation option list narrowed to a
// region. A zero region id returns all appellations.
func (c *Catalog) AppellationsForRegion(regionID uint) []model.Appellation {
	if regionID == 0 {
		return c.appellations
	}

	appellations := make([]model.Appellation, 0, len(c.appellations))

	for _, appellation := range c.appellations {
		if appellation.RegionID == regionID {
			appellations = append(appellations, appellation)
		}
	}

	return appellations
}

func (c *Catalog) Grapes() []model.GrapeVariety {
	return c.grapes
}
