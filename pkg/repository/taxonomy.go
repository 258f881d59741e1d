package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
)

func (r *Repository) GetCountries(ctx context.Context) ([]model.Country, error) {
	var countries []model.Country

	if result := r.DB.WithContext(ctx).Order("name").Find(&countries); result.Error != nil {
		return nil, result.Error
	}

	return countries, nil
}

func (r *Repository) GetRegions(ctx context.Context) ([]model.Region, error) {
	var regions []model.Region

	if result := r.DB.WithContext(ctx).Order("name").Find(&regions); result.Error != nil {
		return nil, result.Error
	}

	return regions, nil
}

func (r *Repository) GetAppellations(ctx context.Context) ([]model.Appellation, error) {
	var appellations []model.Appellation

	if result := r.DB.WithContext(ctx).Order("name").Find(&appellations); result.Error != nil {
		return nil, result.Error
	}

	return appellations, nil
}

func (r *Repository) GetGrapeVarieties(ctx context.Context) ([]model.GrapeVariety, error) {
	var grapes []model.GrapeVariety

	if result := r.DB.WithContext(ctx).Order("name").Find(&grapes); result.Error != nil {
		return nil, result.Error
	}

	return grapes, nil
}

// AddCountry upserts a country by name, used by the import job.
func (r *Repository) AddCountry(ctx context.Context, name string) (*model.Country, error) {
	country := model.Country{Name: name}
	if result := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&country); result.Error != nil {
		return nil, result.Error
	}

	if country.ID == 0 {
		if result := r.DB.WithContext(ctx).Where("name = ?", name).First(&country); result.Error != nil {
			return nil, result.Error
		}
	}

	return &country, nil
}

func (r *Repository) AddRegion(ctx context.Context, name string, countryID uint) (*model.Region, error) {
	region := model.Region{Name: name, CountryID: countryID}
	if result := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&region); result.Error != nil {
		return nil, result.Error
	}

	if region.ID == 0 {
		if result := r.DB.WithContext(ctx).Where("name = ? AND country_id = ?", name, countryID).First(&region); result.Error != nil {
			return nil, result.Error
		}
	}

	return &region, nil
}

func (r *Repository) AddAppellation(ctx context.Context, name string, regionID uint) (*model.Appellation, error) {
	appellation := model.Appellation{Name: name, RegionID: regionID}
	if result := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&appellation); result.Error != nil {
		return nil, result.Error
	}

	if appellation.ID == 0 {
		if result := r.DB.WithContext(ctx).Where("name = ? AND region_id = ?", name, regionID).First(&appellation); result.Error != nil {
			return nil, result.Error
		}
	}

	return &appellation, nil
}

func (r *Repository) AddGrapeVariety(ctx context.Context, name string, grapeType model.GrapeType) (*model.GrapeVariety, error) {
	grape := model.GrapeVariety{Name: name, Type: grapeType}
	if result := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&grape); result.Error != nil {
		return nil, result.Error
	}

	if grape.ID == 0 {
		if result := r.DB.WithContext(ctx).Where("name = ?", name).First(&grape); result.Error != nil {
			return nil, result.Error
		}
	}

	return &grape, nil
}
