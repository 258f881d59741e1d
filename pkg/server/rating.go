package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
	"github.com/christianolin/cellar-critiques-sub000/pkg/ratingview"
	"github.com/christianolin/cellar-critiques-sub000/pkg/repository"
)

type ratingUserRepository interface {
	UpdateRatingColumns(ctx context.Context, userID uint, columns datatypes.JSON) error
}

type RatingServer struct {
	ratingRepository repository.RatingRepository
	userRepository   ratingUserRepository
	logger           *zap.Logger
}

func NewRatingServer(ratingRepo repository.RatingRepository, userRepo ratingUserRepository, logger *zap.Logger) *RatingServer {
	return &RatingServer{ratingRepository: ratingRepo, userRepository: userRepo, logger: logger}
}

func (s *RatingServer) Register(router *gin.RouterGroup) {
	router.GET("/ratings", s.ListRatings)
	router.POST("/ratings", s.AddRating)
	router.GET("/ratings/columns", s.GetColumns)
	router.PUT("/ratings/columns", s.UpdateColumns)
	router.GET("/ratings/:id", s.GetRating)
	router.PUT("/ratings/:id", s.UpdateRating)
	router.DELETE("/ratings/:id", s.DeleteRating)
}

type ratingRequest struct {
	WineID   uint       `json:"wine_id" binding:"required"`
	Score    int        `json:"score" binding:"required"`
	Vintage  *uint64    `json:"vintage"`
	TastedAt *time.Time `json:"tasted_at"`

	Clarity             *string `json:"clarity"`
	AppearanceIntensity *string `json:"appearance_intensity"`
	Colour              *string `json:"colour"`
	Condition           *string `json:"condition"`
	NoseIntensity       *string `json:"nose_intensity"`
	AromaNotes          *string `json:"aroma_notes"`
	Sweetness           *string `json:"sweetness"`
	Acidity             *string `json:"acidity"`
	Tannin              *string `json:"tannin"`
	Alcohol             *string `json:"alcohol"`
	Body                *string `json:"body"`
	FlavourIntensity    *string `json:"flavour_intensity"`
	FlavourNotes        *string `json:"flavour_notes"`
	Finish              *string `json:"finish"`
	Quality             *string `json:"quality"`
	ReadinessLevel      *string `json:"readiness_level"`
	Notes               *string `json:"notes"`
}

func (s *RatingServer) AddRating(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var request ratingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if request.Score < model.MinScore || request.Score > model.MaxScore {
		c.JSON(http.StatusBadRequest, gin.H{"error": "score must be between 50 and 100"})

		return
	}

	rating := model.Rating{UserID: user.ID}
	applyRatingRequest(&rating, request)

	saved, err := s.ratingRepository.AddRating(c.Request.Context(), rating)
	if err != nil {
		s.logger.Error("error adding rating", zap.Uint("wine_id", request.WineID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusCreated, saved)
}

// ListRatings returns the caller's ratings as flattened table rows, filtered
// and sorted per the query parameters.
func (s *RatingServer) ListRatings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ratings, err := s.ratingRepository.GetRatingsForUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusOK, projectRatings(ratings, c))
}

func (s *RatingServer) GetRating(c *gin.Context) {
	rating, ok := s.ownedRating(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, rating)
}

func (s *RatingServer) UpdateRating(c *gin.Context) {
	rating, ok := s.ownedRating(c)
	if !ok {
		return
	}

	var request ratingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if request.Score < model.MinScore || request.Score > model.MaxScore {
		c.JSON(http.StatusBadRequest, gin.H{"error": "score must be between 50 and 100"})

		return
	}

	applyRatingRequest(rating, request)

	updated, err := s.ratingRepository.UpdateRating(c.Request.Context(), rating)
	if err != nil {
		s.logger.Error("error updating rating", zap.Uint("rating_id", rating.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusOK, updated)
}

func (s *RatingServer) DeleteRating(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ratingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := s.ratingRepository.DeleteRating(c.Request.Context(), user.ID, ratingID); err != nil {
		s.logger.Error("error deleting rating", zap.Uint("rating_id", ratingID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.Status(http.StatusNoContent)
}

// GetColumns returns the caller's visible-column preference; the full column
// set when none is stored yet.
func (s *RatingServer) GetColumns(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	columns := ratingview.Columns

	if len(user.RatingColumns) > 0 {
		var stored []string
		if err := json.Unmarshal(user.RatingColumns, &stored); err == nil {
			columns = stored
		}
	}

	c.JSON(http.StatusOK, gin.H{"columns": columns})
}

type columnsRequest struct {
	Columns []string `json:"columns" binding:"required"`
}

func (s *RatingServer) UpdateColumns(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var request columnsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if !ratingview.ValidColumns(request.Columns) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown column key"})

		return
	}

	payload, err := json.Marshal(request.Columns)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	if err = s.userRepository.UpdateRatingColumns(c.Request.Context(), user.ID, payload); err != nil {
		s.logger.Error("error updating rating columns", zap.Uint("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"columns": request.Columns})
}

func (s *RatingServer) ownedRating(c *gin.Context) (*model.Rating, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, false
	}

	ratingID, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}

	rating, err := s.ratingRepository.GetRatingByID(c.Request.Context(), ratingID)
	if err != nil {
		notFoundOrInternal(c, err)

		return nil, false
	}

	if rating.UserID != user.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})

		return nil, false
	}

	return rating, true
}

func applyRatingRequest(rating *model.Rating, request ratingRequest) {
	rating.WineID = request.WineID
	rating.Score = request.Score
	rating.Vintage = request.Vintage

	if request.TastedAt != nil {
		rating.TastedAt = *request.TastedAt
	} else if rating.TastedAt.IsZero() {
		rating.TastedAt = time.Now().UTC()
	}

	rating.Clarity = request.Clarity
	rating.AppearanceIntensity = request.AppearanceIntensity
	rating.Colour = request.Colour
	rating.Condition = request.Condition
	rating.NoseIntensity = request.NoseIntensity
	rating.AromaNotes = request.AromaNotes
	rating.Sweetness = request.Sweetness
	rating.Acidity = request.Acidity
	rating.Tannin = request.Tannin
	rating.Alcohol = request.Alcohol
	rating.Body = request.Body
	rating.FlavourIntensity = request.FlavourIntensity
	rating.FlavourNotes = request.FlavourNotes
	rating.Finish = request.Finish
	rating.Quality = request.Quality
	rating.ReadinessLevel = request.ReadinessLevel
	rating.Notes = request.Notes
}

// projectRatings flattens ratings and applies the table projection from the
// request's query parameters.
func projectRatings(ratings []model.Rating, c *gin.Context) []ratingview.Row {
	rows := make([]ratingview.Row, 0, len(ratings))

	for _, rating := range ratings {
		rows = append(rows, ratingview.RowFromRating(rating))
	}

	return ratingview.Project(rows, projectionParams(c))
}

//nolint:cyclop // one guard per optional query parameter
func projectionParams(c *gin.Context) ratingview.Params {
	params := ratingview.Params{
		Search:     c.Query("q"),
		SortKey:    ratingview.SortKey(c.Query("sort")),
		Descending: c.Query("order") == "desc",
	}

	if value := c.Query("vintage"); value != "" {
		if vintage, err := strconv.ParseUint(value, 10, 64); err == nil {
			params.Filters.Vintage = &vintage
		}
	}

	if value := c.Query("wine_type"); value != "" {
		wineType := model.WineType(value)
		params.Filters.WineType = &wineType
	}

	if value := queryID(c, "country_id"); value != nil {
		params.Filters.CountryID = value
	}

	if value := queryID(c, "region_id"); value != nil {
		params.Filters.RegionID = value
	}

	if value := queryID(c, "appellation_id"); value != nil {
		params.Filters.AppellationID = value
	}

	if value := queryID(c, "producer_id"); value != nil {
		params.Filters.ProducerID = value
	}

	return params
}

func queryID(c *gin.Context, name string) *uint {
	value := c.Query(name)
	if value == "" {
		return nil
	}

	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil
	}

	converted := uint(id)

	return &converted
}
