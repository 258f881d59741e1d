package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
	"github.com/christianolin/cellar-critiques-sub000/pkg/repository"
)

type CellarServer struct {
	cellarRepository repository.CellarRepository
	logger           *zap.Logger
}

func NewCellarServer(cellarRepo repository.CellarRepository, logger *zap.Logger) *CellarServer {
	return &CellarServer{cellarRepository: cellarRepo, logger: logger}
}

func (s *CellarServer) Register(router *gin.RouterGroup) {
	router.GET("/cellar", s.ListItems)
	router.POST("/cellar", s.AddItem)
	router.PATCH("/cellar/:id", s.UpdateQuantity)
	router.DELETE("/cellar/:id", s.DeleteItem)
	router.POST("/cellar/:id/consume", s.Consume)
	router.GET("/consumption", s.ListConsumption)
	router.DELETE("/consumption/:id", s.DeleteConsumption)
}

func (s *CellarServer) ListItems(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := s.cellarRepository.GetCellarItems(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusOK, items)
}

type addCellarItemRequest struct {
	WineID           uint       `json:"wine_id" binding:"required"`
	Quantity         int64      `json:"quantity" binding:"required,min=1"`
	Vintage          *uint64    `json:"vintage"`
	PurchasePrice    *float64   `json:"purchase_price"`
	PurchaseDate     *time.Time `json:"purchase_date"`
	PurchaseLocation *string    `json:"purchase_location"`
}

func (s *CellarServer) AddItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var request addCellarItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	item, err := s.cellarRepository.AddCellarItem(c.Request.Context(), model.CellarItem{
		UserID:           user.ID,
		WineID:           request.WineID,
		Quantity:         request.Quantity,
		Vintage:          request.Vintage,
		PurchasePrice:    request.PurchasePrice,
		PurchaseDate:     request.PurchaseDate,
		PurchaseLocation: request.PurchaseLocation,
	})
	if err != nil {
		s.logger.Error("error adding cellar item", zap.Uint("wine_id", request.WineID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusCreated, item)
}

type updateQuantityRequest struct {
	Quantity *int64 `json:"quantity" binding:"required"`
}

// UpdateQuantity adjusts a line item's bottle count directly. Setting zero is
// refused: the last bottle leaves the cellar through the consume flow, which
// writes the history entry.
func (s *CellarServer) UpdateQuantity(c *gin.Context) {
	item, ok := s.ownedItem(c)
	if !ok {
		return
	}

	var request updateQuantityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	quantity := *request.Quantity

	if quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity cannot be negative"})

		return
	}

	if quantity == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "consume the last bottle instead of zeroing the quantity"})

		return
	}

	if err := s.cellarRepository.UpdateCellarItemQuantity(c.Request.Context(), item.ID, quantity); err != nil {
		s.logger.Error("error updating cellar quantity", zap.Uint("item_id", item.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	item.Quantity = quantity
	c.JSON(http.StatusOK, item)
}

func (s *CellarServer) DeleteItem(c *gin.Context) {
	item, ok := s.ownedItem(c)
	if !ok {
		return
	}

	if err := s.cellarRepository.DeleteCellarItem(c.Request.Context(), item.ID); err != nil {
		s.logger.Error("error deleting cellar item", zap.Uint("item_id", item.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.Status(http.StatusNoContent)
}

type consumeRequest struct {
	Quantity int64  `json:"quantity" binding:"required"`
	Notes    string `json:"notes"`
	RatingID *uint  `json:"rating_id"`
}

func (s *CellarServer) Consume(c *gin.Context) {
	item, ok := s.ownedItem(c)
	if !ok {
		return
	}

	var request consumeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	record, err := s.cellarRepository.Consume(c.Request.Context(), item, request.Quantity, request.Notes, request.RatingID)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be between 1 and the held amount"})

			return
		}

		s.logger.Error("error consuming cellar item", zap.Uint("item_id", item.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusCreated, record)
}

func (s *CellarServer) ListConsumption(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	records, err := s.cellarRepository.GetConsumptionRecords(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusOK, records)
}

func (s *CellarServer) DeleteConsumption(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	recordID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := s.cellarRepository.DeleteConsumptionRecord(c.Request.Context(), user.ID, recordID); err != nil {
		s.logger.Error("error deleting consumption record", zap.Uint("record_id", recordID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.Status(http.StatusNoContent)
}

// ownedItem loads the :id cellar item and checks it belongs to the caller.
// Items of other users come back 404, not 403, to avoid leaking ids.
func (s *CellarServer) ownedItem(c *gin.Context) (*model.CellarItem, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, false
	}

	itemID, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}

	item, err := s.cellarRepository.GetCellarItemByID(c.Request.Context(), itemID)
	if err != nil {
		notFoundOrInternal(c, err)

		return nil, false
	}

	if item.UserID != user.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})

		return nil, false
	}

	return item, true
}
