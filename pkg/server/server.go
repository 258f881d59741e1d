// Package server exposes the HTTP API. Each server struct owns the handlers
// for one resource and registers its own routes.
package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/christianolin/cellar-critiques-sub000/pkg/auth"
	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
)

// currentUser pulls the authenticated user off the context, aborting with
// 401 when the auth middleware did not run.
func currentUser(c *gin.Context) (*model.User, bool) {
	user, ok := auth.UserFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no user in context"})

		return nil, false
	}

	return user, true
}

// pathID parses a numeric :param, aborting with 400 on garbage.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})

		return 0, false
	}

	return uint(id), true
}

// notFoundOrInternal maps a gorm lookup error onto 404 or 500.
func notFoundOrInternal(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})

		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
