package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/christianolin/cellar-critiques-sub000/configs"
	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
	"github.com/christianolin/cellar-critiques-sub000/pkg/repository"
)

const userContextKey = "auth.user"

type Manager struct {
	conf   *configs.Config
	repo   *repository.Repository
	logger *zap.Logger
}

func NewAuthManager(conf *configs.Config, repo *repository.Repository, logger *zap.Logger) *Manager {
	return &Manager{conf: conf, repo: repo, logger: logger}
}

// Middleware verifies the bearer token, loads the user behind its email
// claim and stores it on the request context. Requests without a valid token
// never reach a handler.
func (a *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		keyFunc := func(token *jwt.Token) (interface{}, error) {
			_, ok := token.Method.(*jwt.SigningMethodHMAC)
			if !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}

			return []byte(a.conf.Auth.SecretKey), nil
		}

		accessToken, found := a.extractTokenFromHeader(c.Request.Header)
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header not found"})

			return
		}

		token, err := jwt.ParseWithClaims(accessToken, jwt.MapClaims{}, keyFunc)
		if err != nil {
			a.logger.Error("error parsing token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})

			return
		}

		claims, found := token.Claims.(jwt.MapClaims)
		if !found || !token.Valid {
			a.logger.Error("invalid token", zap.Any("claims", claims))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})

			return
		}

		email, found := claims["email"].(string)
		if !found {
			a.logger.Error("unable to get user id from token", zap.Any("claims", claims))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})

			return
		}

		user, err := a.repo.GetUserFromEmail(c.Request.Context(), email)
		if err != nil {
			a.logger.Error("error authenticating user", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user not found"})

			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// UserFromContext returns the authenticated user set by Middleware.
func UserFromContext(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*model.User)

	return user, ok
}

// SetUser places a user on the context. Test hook.
func SetUser(c *gin.Context, user *model.User) {
	c.Set(userContextKey, user)
}

func (a *Manager) extractTokenFromHeader(header http.Header) (string, bool) {
	authorization := header.Get("Authorization")
	if len(authorization) == 0 {
		a.logger.Error("No authorization header found")

		return "", false
	}

	prefix := "Bearer "
	if !strings.HasPrefix(authorization, prefix) {
		prefix = "bearer "
	}

	token, found := strings.CutPrefix(authorization, prefix)
	if !found {
		return "", false
	}

	return token, true
}
