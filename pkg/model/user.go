package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	UUID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4()"`
	Username  string
	FirstName string
	LastName  string
	Email     string
	AvatarURL *string

	// RatingColumns stores the user's visible-column preference for the
	// rating table as a JSON array of column keys.
	RatingColumns datatypes.JSON
}

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

type Friendship struct {
	gorm.Model
	UserID   uint             `gorm:"uniqueIndex:idx_friendship_unique"`
	FriendID uint             `gorm:"uniqueIndex:idx_friendship_unique"`
	Status   FriendshipStatus `gorm:"type:varchar(16)"`

	User   User `gorm:"foreignKey:UserID"`
	Friend User `gorm:"foreignKey:FriendID"`
}
