package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
)

var ErrInvalidQuantity = errors.New("invalid quantity")

type CellarRepository interface {
	AddCellarItem(ctx context.Context, item model.CellarItem) (*model.CellarItem, error)
	GetCellarItems(ctx context.Context, userID uint) ([]*model.CellarItem, error)
	GetCellarItemByID(ctx context.Context, itemID uint) (*model.CellarItem, error)
	UpdateCellarItemQuantity(ctx context.Context, itemID uint, quantity int64) error
	DeleteCellarItem(ctx context.Context, itemID uint) error
	Consume(ctx context.Context, item *model.CellarItem, quantity int64, notes string, ratingID *uint) (*model.ConsumptionRecord, error)
	GetConsumptionRecords(ctx context.Context, userID uint) ([]*model.ConsumptionRecord, error)
	DeleteConsumptionRecord(ctx context.Context, userID uint, recordID uint) error
}

func (r *Repository) AddCellarItem(ctx context.Context, item model.CellarItem) (*model.CellarItem, error) {
	if result := r.DB.WithContext(ctx).Create(&item); result.Error != nil {
		return nil, result.Error
	}

	return &item, nil
}

func (r *Repository) GetCellarItems(ctx context.Context, userID uint) ([]*model.CellarItem, error) {
	var items []*model.CellarItem

	result := r.DB.WithContext(ctx).
		Joins("Wine").
		Preload("Wine.Producer").
		Preload("Wine.Country").
		Preload("Wine.Region").
		Preload("Wine.Appellation").
		Where("cellar_items.user_id = ?", userID).
		Order("cellar_items.created_at DESC").
		Find(&items)
	if result.Error != nil {
		r.Logger.Error("error getting cellar items", zap.Uint("user_id", userID), zap.Error(result.Error))

		return nil, result.Error
	}

	return items, nil
}

func (r *Repository) GetCellarItemByID(ctx context.Context, itemID uint) (*model.CellarItem, error) {
	var item model.CellarItem

	result := r.DB.WithContext(ctx).
		Joins("Wine").
		Preload("Wine.Producer").
		First(&item, itemID)
	if result.Error != nil {
		return nil, result.Error
	}

	return &item, nil
}

func (r *Repository) UpdateCellarItemQuantity(ctx context.Context, itemID uint, quantity int64) error {
	result := r.DB.WithContext(ctx).Model(&model.CellarItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity)

	return result.Error
}

func (r *Repository) DeleteCellarItem(ctx context.Context, itemID uint) error {
	result := r.DB.WithContext(ctx).Delete(&model.CellarItem{}, itemID)

	return result.Error
}

// Consume appends a consumption record for quantity units, then updates the
// line item to the remaining quantity or deletes it when nothing remains.
// The two writes are dependent but NOT atomic: if the record insert succeeds
// and the item write fails, the consumption stays recorded while the cellar
// quantity is stale. Callers get the failure of whichever step raised.
func (r *Repository) Consume(ctx context.Context, item *model.CellarItem, quantity int64, notes string, ratingID *uint) (*model.ConsumptionRecord, error) {
	if quantity < 1 || quantity > item.Quantity {
		return nil, ErrInvalidQuantity
	}

	record := model.ConsumptionRecord{
		UserID:     item.UserID,
		WineID:     item.WineID,
		Quantity:   quantity,
		Notes:      notes,
		RatingID:   ratingID,
		ConsumedAt: time.Now().UTC(),
	}

	if result := r.DB.WithContext(ctx).Create(&record); result.Error != nil {
		return nil, result.Error
	}

	remaining := item.Quantity - quantity

	if remaining > 0 {
		if err := r.UpdateCellarItemQuantity(ctx, item.ID, remaining); err != nil {
			r.Logger.Error("consumption recorded but cellar item not updated",
				zap.Uint("item_id", item.ID), zap.Uint("record_id", record.ID), zap.Error(err))

			return nil, err
		}

		return &record, nil
	}

	if err := r.DeleteCellarItem(ctx, item.ID); err != nil {
		r.Logger.Error("consumption recorded but cellar item not deleted",
			zap.Uint("item_id", item.ID), zap.Uint("record_id", record.ID), zap.Error(err))

		return nil, err
	}

	return &record, nil
}

func (r *Repository) GetConsumptionRecords(ctx context.Context, userID uint) ([]*model.ConsumptionRecord, error) {
	var records []*model.ConsumptionRecord

	result := r.DB.WithContext(ctx).
		Joins("Wine").
		Preload("Wine.Producer").
		Where("consumption_records.user_id = ?", userID).
		Order("consumption_records.consumed_at DESC").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

func (r *Repository) DeleteConsumptionRecord(ctx context.Context, userID uint, recordID uint) error {
	result := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.ConsumptionRecord{}, recordID)

	return result.Error
}
