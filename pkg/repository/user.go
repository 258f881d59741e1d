package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
)

func (r *Repository) GetUserByUUID(ctx context.Context, uuid uuid.UUID) (*model.User, error) {
	var user model.User

	result := r.DB.WithContext(ctx).Where("uuid = ?", uuid).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

func (r *Repository) GetUserByName(ctx context.Context, username string) (*model.User, error) {
	var user *model.User

	result := r.DB.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}

	return user, nil
}

func (r *Repository) GetUserFromEmail(ctx context.Context, email string) (*model.User, error) {
	var user *model.User

	result := r.DB.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}

	return user, nil
}

func (r *Repository) AddUser(ctx context.Context, username string, email string, firstName string, lastName string) (*model.User, error) {
	user := model.User{
		UUID:      uuid.New(),
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}

	if result := r.DB.WithContext(ctx).Create(&user); result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

// UpdateRatingColumns persists the rating-table visible-column preference.
func (r *Repository) UpdateRatingColumns(ctx context.Context, userID uint, columns datatypes.JSON) error {
	result := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("rating_columns", columns)

	return result.Error
}

func (r *Repository) UpdateAvatar(ctx context.Context, userID uint, avatarURL string) error {
	result := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("avatar_url", avatarURL)

	return result.Error
}
