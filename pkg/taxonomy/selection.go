package taxonomy

import (
	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
)

// Selection holds the current country/region/appellation choice of a dialog.
// Transitions are pure: each Select method returns the next state and never
// leaves a child pointing at an ancestor it does not belong to. A nil id
// clears the level (and any children that would be orphaned by it).
type Selection struct {
	CountryID     *uint
	RegionID      *uint
	AppellationID *uint
}

// SelectCountry sets the country and drops region/appellation selections
// that no longer belong to it. Selecting an unknown country clears all
// levels.
func (s Selection) SelectCountry(catalog *Catalog, countryID *uint) Selection {
	if countryID == nil {
		return Selection{}
	}

	if _, found := catalog.Country(*countryID); !found {
		return Selection{}
	}

	next := Selection{CountryID: countryID}

	if s.RegionID != nil {
		if region, found := catalog.Region(*s.RegionID); found && region.CountryID == *countryID {
			next.RegionID = s.RegionID
			next.AppellationID = s.retainedAppellation(catalog, *s.RegionID)
		}
	}

	return next
}

// SelectRegion sets the region and forces the country to the region's
// parent, overwriting any prior country choice. The appellation is kept only
// if it belongs to the new region.
func (s Selection) SelectRegion(catalog *Catalog, regionID *uint) Selection {
	if regionID == nil {
		return Selection{CountryID: s.CountryID}
	}

	region, found := catalog.Region(*regionID)
	if !found {
		return Selection{CountryID: s.CountryID}
	}

	countryID := region.CountryID

	return Selection{
		CountryID:     &countryID,
		RegionID:      regionID,
		AppellationID: s.retainedAppellation(catalog, *regionID),
	}
}

// SelectAppellation sets the appellation and re-derives region and country
// from its ancestry, overwriting prior selections. This makes convergence
// idempotent: selecting appellation A always yields {A's country, A's
// region, A} regardless of prior state.
func (s Selection) SelectAppellation(catalog *Catalog, appellationID *uint) Selection {
	if appellationID == nil {
		return Selection{CountryID: s.CountryID, RegionID: s.RegionID}
	}

	appellation, found := catalog.Appellation(*appellationID)
	if !found {
		return Selection{CountryID: s.CountryID, RegionID: s.RegionID}
	}

	regionID := appellation.RegionID

	next := Selection{RegionID: &regionID, AppellationID: appellationID}

	if region, found := catalog.Region(regionID); found {
		countryID := region.CountryID
		next.CountryID = &countryID
	}

	return next
}

// RegionOptions lists the regions selectable in the current state.
func (s Selection) RegionOptions(catalog *Catalog) []model.Region {
	if s.CountryID == nil {
		return catalog.RegionsForCountry(0)
	}

	return catalog.RegionsForCountry(*s.CountryID)
}

// AppellationOptions lists the appellations selectable in the current state.
func (s Selection) AppellationOptions(catalog *Catalog) []model.Appellation {
	if s.RegionID == nil {
		return catalog.AppellationsForRegion(0)
	}

	return catalog.AppellationsForRegion(*s.RegionID)
}

func (s Selection) retainedAppellation(catalog *Catalog, regionID uint) *uint {
	if s.AppellationID == nil {
		return nil
	}

	if appellation, found := catalog.Appellation(*s.AppellationID); found && appellation.RegionID == regionID {
		return s.AppellationID
	}

	return nil
}
