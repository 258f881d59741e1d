package repository

import (
	"context"

	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
)

type RatingRepository interface {
	AddRating(ctx context.Context, rating model.Rating) (*model.Rating, error)
	GetRatingsForUser(ctx context.Context, userID uint) ([]model.Rating, error)
	GetRatingByID(ctx context.Context, ratingID uint) (*model.Rating, error)
	UpdateRating(ctx context.Context, rating *model.Rating) (*model.Rating, error)
	DeleteRating(ctx context.Context, userID uint, ratingID uint) error
}

func (r *Repository) AddRating(ctx context.Context, rating model.Rating) (*model.Rating, error) {
	if result := r.DB.WithContext(ctx).Create(&rating); result.Error != nil {
		return nil, result.Error
	}

	return &rating, nil
}

func (r *Repository) GetRatingsForUser(ctx context.Context, userID uint) ([]model.Rating, error) {
	var ratings []model.Rating

	result := r.DB.WithContext(ctx).
		Joins("Wine").
		Preload("Wine.Producer").
		Preload("Wine.Country").
		Preload("Wine.Region").
		Preload("Wine.Appellation").
		Where("ratings.user_id = ?", userID).
		Order("ratings.tasted_at DESC").
		Find(&ratings)
	if result.Error != nil {
		return nil, result.Error
	}

	return ratings, nil
}

func (r *Repository) GetRatingByID(ctx context.Context, ratingID uint) (*model.Rating, error) {
	var rating model.Rating

	result := r.DB.WithContext(ctx).
		Joins("Wine").
		Preload("Wine.Producer").
		First(&rating, ratingID)
	if result.Error != nil {
		return nil, result.Error
	}

	return &rating, nil
}

func (r *Repository) UpdateRating(ctx context.Context, rating *model.Rating) (*model.Rating, error) {
	if result := r.DB.WithContext(ctx).Save(rating); result.Error != nil {
		return nil, result.Error
	}

	return rating, nil
}

func (r *Repository) DeleteRating(ctx context.Context, userID uint, ratingID uint) error {
	result := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Rating{}, ratingID)

	return result.Error
}
