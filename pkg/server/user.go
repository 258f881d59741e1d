package server

import (
	"context"
	"net/http"
	"path"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
	"github.com/christianolin/cellar-critiques-sub000/pkg/storage"
)

type userRepository interface {
	AddUser(ctx context.Context, username string, email string, firstName string, lastName string) (*model.User, error)
	UpdateAvatar(ctx context.Context, userID uint, avatarURL string) error
}

type UserServer struct {
	userRepository userRepository
	store          *storage.Store
	logger         *zap.Logger
}

func NewUserServer(userRepo userRepository, store *storage.Store, logger *zap.Logger) *UserServer {
	return &UserServer{userRepository: userRepo, store: store, logger: logger}
}

// Register wires the authenticated user routes. RegisterPublic wires the
// signup route, which runs without the auth middleware.
func (s *UserServer) Register(router *gin.RouterGroup) {
	router.GET("/users/me", s.GetProfile)
	router.POST("/users/me/avatar", s.UploadAvatar)
}

func (s *UserServer) RegisterPublic(router *gin.RouterGroup) {
	router.POST("/users", s.CreateUser)
}

type createUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (s *UserServer) CreateUser(c *gin.Context) {
	var request createUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	user, err := s.userRepository.AddUser(c.Request.Context(), request.Username, request.Email, request.FirstName, request.LastName)
	if err != nil {
		s.logger.Error("error creating user", zap.String("username", request.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusCreated, user)
}

func (s *UserServer) GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, user)
}

func (s *UserServer) UploadAvatar(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})

		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})

		return
	}

	contentType := header.Header.Get("Content-Type")

	if err = storage.ValidateImage(contentType, header.Size); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image file"})

		return
	}
	defer file.Close()

	key := "avatars/" + strconv.FormatUint(uint64(user.ID), 10) + "/" + uuid.NewString() + path.Ext(header.Filename)

	avatarURL, err := s.store.UploadImage(c.Request.Context(), key, contentType, file, header.Size)
	if err != nil {
		s.logger.Error("error uploading avatar", zap.Uint("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})

		return
	}

	if err = s.userRepository.UpdateAvatar(c.Request.Context(), user.ID, avatarURL); err != nil {
		s.logger.Error("avatar stored but user not updated", zap.Uint("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": avatarURL})
}
