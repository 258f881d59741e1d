package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
)

var ErrFriendshipNotFound = errors.New("friendship not found")

func (r *Repository) AddFriendship(ctx context.Context, userID uint, friendID uint) (*model.Friendship, error) {
	friendship := model.Friendship{
		UserID:   userID,
		FriendID: friendID,
		Status:   model.FriendshipPending,
	}

	if result := r.DB.WithContext(ctx).Create(&friendship); result.Error != nil {
		return nil, result.Error
	}

	return &friendship, nil
}

// AcceptFriendship flips a pending request addressed to userID to accepted.
func (r *Repository) AcceptFriendship(ctx context.Context, userID uint, friendshipID uint) error {
	result := r.DB.WithContext(ctx).Model(&model.Friendship{}).
		Where("id = ? AND friend_id = ? AND status = ?", friendshipID, userID, model.FriendshipPending).
		Update("status", model.FriendshipAccepted)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrFriendshipNotFound
	}

	return nil
}

// GetFriendships returns the accepted and pending friendships involving a
// user, in either direction.
func (r *Repository) GetFriendships(ctx context.Context, userID uint) ([]*model.Friendship, error) {
	var friendships []*model.Friendship

	result := r.DB.WithContext(ctx).
		Joins("User").
		Joins("Friend").
		Where("friendships.user_id = ? OR friendships.friend_id = ?", userID, userID).
		Find(&friendships)
	if result.Error != nil {
		return nil, result.Error
	}

	return friendships, nil
}

// AreFriends reports whether an accepted friendship links the two users in
// either direction.
func (r *Repository) AreFriends(ctx context.Context, userID uint, otherID uint) (bool, error) {
	var friendship model.Friendship

	result := r.DB.WithContext(ctx).
		Where("status = ?", model.FriendshipAccepted).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", userID, otherID, otherID, userID).
		First(&friendship)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, result.Error
	}

	return true, nil
}

func (r *Repository) DeleteFriendship(ctx context.Context, userID uint, friendshipID uint) error {
	result := r.DB.WithContext(ctx).
		Where("user_id = ? OR friend_id = ?", userID, userID).
		Delete(&model.Friendship{}, friendshipID)

	return result.Error
}
