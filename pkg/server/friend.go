package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
	"github.com/christianolin/cellar-critiques-sub000/pkg/repository"
)

type friendRepository interface {
	AddFriendship(ctx context.Context, userID uint, friendID uint) (*model.Friendship, error)
	AcceptFriendship(ctx context.Context, userID uint, friendshipID uint) error
	GetFriendships(ctx context.Context, userID uint) ([]*model.Friendship, error)
	AreFriends(ctx context.Context, userID uint, otherID uint) (bool, error)
	DeleteFriendship(ctx context.Context, userID uint, friendshipID uint) error
}

type friendUserRepository interface {
	GetUserByName(ctx context.Context, username string) (*model.User, error)
}

// FriendServer handles friendships and the read-only views friends get of
// each other's cellars and ratings.
type FriendServer struct {
	friendRepository friendRepository
	userRepository   friendUserRepository
	cellarRepository repository.CellarRepository
	ratingRepository repository.RatingRepository
	logger           *zap.Logger
}

func NewFriendServer(friendRepo friendRepository, userRepo friendUserRepository, cellarRepo repository.CellarRepository, ratingRepo repository.RatingRepository, logger *zap.Logger) *FriendServer {
	return &FriendServer{
		friendRepository: friendRepo,
		userRepository:   userRepo,
		cellarRepository: cellarRepo,
		ratingRepository: ratingRepo,
		logger:           logger,
	}
}

func (s *FriendServer) Register(router *gin.RouterGroup) {
	router.GET("/friends", s.ListFriendships)
	router.POST("/friends", s.RequestFriendship)
	router.POST("/friends/:id/accept", s.AcceptFriendship)
	router.DELETE("/friends/:id", s.DeleteFriendship)
	router.GET("/friends/:id/cellar", s.FriendCellar)
	router.GET("/friends/:id/ratings", s.FriendRatings)
}

func (s *FriendServer) ListFriendships(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	friendships, err := s.friendRepository.GetFriendships(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusOK, friendships)
}

type friendRequest struct {
	Username string `json:"username" binding:"required"`
}

func (s *FriendServer) RequestFriendship(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var request friendRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	friend, err := s.userRepository.GetUserByName(c.Request.Context(), request.Username)
	if err != nil {
		notFoundOrInternal(c, err)

		return
	}

	if friend.ID == user.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot befriend yourself"})

		return
	}

	friendship, err := s.friendRepository.AddFriendship(c.Request.Context(), user.ID, friend.ID)
	if err != nil {
		s.logger.Error("error creating friendship", zap.Uint("friend_id", friend.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusCreated, friendship)
}

// AcceptFriendship accepts a pending request addressed to the caller.
func (s *FriendServer) AcceptFriendship(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	friendshipID, ok := pathID(c, "id")
	if !ok {
		return
	}

	err := s.friendRepository.AcceptFriendship(c.Request.Context(), user.ID, friendshipID)
	if err != nil {
		if errors.Is(err, repository.ErrFriendshipNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "friendship not found"})

			return
		}

		s.logger.Error("error accepting friendship", zap.Uint("friendship_id", friendshipID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.Status(http.StatusNoContent)
}

func (s *FriendServer) DeleteFriendship(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	friendshipID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := s.friendRepository.DeleteFriendship(c.Request.Context(), user.ID, friendshipID); err != nil {
		s.logger.Error("error deleting friendship", zap.Uint("friendship_id", friendshipID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.Status(http.StatusNoContent)
}

// FriendCellar returns a friend's cellar, read-only. Non-friends get 403.
func (s *FriendServer) FriendCellar(c *gin.Context) {
	friendID, ok := s.acceptedFriend(c)
	if !ok {
		return
	}

	items, err := s.cellarRepository.GetCellarItems(c.Request.Context(), friendID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusOK, items)
}

// FriendRatings returns a friend's ratings as table rows, with the same
// projection query parameters as the caller's own list.
func (s *FriendServer) FriendRatings(c *gin.Context) {
	friendID, ok := s.acceptedFriend(c)
	if !ok {
		return
	}

	ratings, err := s.ratingRepository.GetRatingsForUser(c.Request.Context(), friendID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusOK, projectRatings(ratings, c))
}

func (s *FriendServer) acceptedFriend(c *gin.Context) (uint, bool) {
	user, ok := currentUser(c)
	if !ok {
		return 0, false
	}

	friendID, ok := pathID(c, "id")
	if !ok {
		return 0, false
	}

	friends, err := s.friendRepository.AreFriends(c.Request.Context(), user.ID, friendID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return 0, false
	}

	if !friends {
		c.JSON(http.StatusForbidden, gin.H{"error": "not friends"})

		return 0, false
	}

	return friendID, true
}
