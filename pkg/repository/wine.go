package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
)

var ErrProducerNotFound = errors.New("producer not found")

// FindProducerByName matches a producer by case-insensitive exact name.
func (r *Repository) FindProducerByName(ctx context.Context, name string) (*model.Producer, error) {
	producer := &model.Producer{}
	result := r.DB.WithContext(ctx).Model(&producer).
		Where("LOWER(name) = LOWER(?)", name).
		First(&producer)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProducerNotFound
		}

		return nil, result.Error
	}

	return producer, nil
}

func (r *Repository) AddProducer(ctx context.Context, name string) (*model.Producer, error) {
	producer := model.Producer{Name: name}

	if result := r.DB.WithContext(ctx).Create(&producer); result.Error != nil {
		return nil, result.Error
	}

	return &producer, nil
}

// AddWine always inserts a new canonical row. There is deliberately no
// conflict clause: duplicate (name, producer) rows are the documented
// behavior of manual entry, only search-and-select reuses ids.
func (r *Repository) AddWine(ctx context.Context, wine model.Wine) (*model.Wine, error) {
	if result := r.DB.WithContext(ctx).Create(&wine); result.Error != nil {
		return nil, result.Error
	}

	return &wine, nil
}

func (r *Repository) GetWineByID(ctx context.Context, wineID uint) (*model.Wine, error) {
	var wine model.Wine

	result := r.DB.WithContext(ctx).
		Joins("Producer").
		Joins("Country").
		Joins("Region").
		Joins("Appellation").
		Preload("Grapes", func(db *gorm.DB) *gorm.DB { return db.Order("wine_grapes.position ASC") }).
		Preload("Grapes.GrapeVariety").
		First(&wine, wineID)
	if result.Error != nil {
		return nil, result.Error
	}

	return &wine, nil
}

// SearchWines matches the query as a case-insensitive substring of wine or
// producer name.
func (r *Repository) SearchWines(ctx context.Context, query string, limit int) ([]*model.Wine, error) {
	var wines []*model.Wine

	pattern := "%" + query + "%"

	result := r.DB.WithContext(ctx).
		Joins("Producer").
		Joins("Country").
		Joins("Region").
		Joins("Appellation").
		Where(`wines.name ILIKE ? OR "Producer".name ILIKE ?`, pattern, pattern).
		Order("wines.name").
		Limit(limit).
		Find(&wines)
	if result.Error != nil {
		return nil, result.Error
	}

	return wines, nil
}

func (r *Repository) UpdateWineImage(ctx context.Context, wineID uint, imageURL string) error {
	result := r.DB.WithContext(ctx).Model(&model.Wine{}).
		Where("id = ?", wineID).
		Update("image_url", imageURL)

	return result.Error
}
