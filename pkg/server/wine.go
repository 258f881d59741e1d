package server

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
	"github.com/christianolin/cellar-critiques-sub000/pkg/resolver"
	"github.com/christianolin/cellar-critiques-sub000/pkg/storage"
	"github.com/christianolin/cellar-critiques-sub000/pkg/taxonomy"
)

const searchLimit = 25

type wineRepository interface {
	GetWineByID(ctx context.Context, wineID uint) (*model.Wine, error)
	SearchWines(ctx context.Context, query string, limit int) ([]*model.Wine, error)
	UpdateWineImage(ctx context.Context, wineID uint, imageURL string) error
}

type wineResolver interface {
	Resolve(ctx context.Context, request resolver.Request) (uint, error)
}

type WineServer struct {
	wineRepository     wineRepository
	taxonomyRepository taxonomyRepository
	resolver           wineResolver
	store              *storage.Store
	logger             *zap.Logger
}

func NewWineServer(wineRepo wineRepository, taxonomyRepo taxonomyRepository, wineResolver wineResolver, store *storage.Store, logger *zap.Logger) *WineServer {
	return &WineServer{
		wineRepository:     wineRepo,
		taxonomyRepository: taxonomyRepo,
		resolver:           wineResolver,
		store:              store,
		logger:             logger,
	}
}

func (w *WineServer) Register(router *gin.RouterGroup) {
	router.GET("/wines", w.SearchWines)
	router.GET("/wines/:id", w.GetWine)
	router.POST("/wines", w.CreateWine)
	router.POST("/wines/:id/image", w.UploadImage)
}

func (w *WineServer) SearchWines(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})

		return
	}

	wines, err := w.wineRepository.SearchWines(c.Request.Context(), query, searchLimit)
	if err != nil {
		w.logger.Error("error searching wines", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusOK, wines)
}

func (w *WineServer) GetWine(c *gin.Context) {
	wineID, ok := pathID(c, "id")
	if !ok {
		return
	}

	wine, err := w.wineRepository.GetWineByID(c.Request.Context(), wineID)
	if err != nil {
		notFoundOrInternal(c, err)

		return
	}

	c.JSON(http.StatusOK, wine)
}

type wineGrapeRequest struct {
	GrapeVarietyID uint  `json:"grape_variety_id" binding:"required"`
	Percent        int64 `json:"percent"`
}

type createWineRequest struct {
	ExistingWineID *uint              `json:"existing_wine_id"`
	Name           string             `json:"name"`
	Producer       string             `json:"producer"`
	WineType       model.WineType     `json:"wine_type"`
	CountryID      *uint              `json:"country_id"`
	RegionID       *uint              `json:"region_id"`
	AppellationID  *uint              `json:"appellation_id"`
	Grapes         []wineGrapeRequest `json:"grapes"`
}

// CreateWine resolves the request to a canonical wine id. Validation happens
// before any write; the location selection is normalized so that the deepest
// selected level wins over stale ancestors.
func (w *WineServer) CreateWine(c *gin.Context) {
	var request createWineRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if request.ExistingWineID == nil {
		if request.Name == "" || request.Producer == "" || request.CountryID == nil || !request.WineType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, producer, country and a valid wine type are required"})

			return
		}
	}

	catalog, err := loadCatalog(c.Request.Context(), w.taxonomyRepository)
	if err != nil {
		w.logger.Error("error loading master data", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	selection := taxonomySelection(catalog, request.CountryID, request.RegionID, request.AppellationID)

	grapes := make([]model.WineGrape, 0, len(request.Grapes))
	for index, grape := range request.Grapes {
		if !catalog.HasGrape(grape.GrapeVarietyID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown grape variety %d", grape.GrapeVarietyID)})

			return
		}

		grapes = append(grapes, model.WineGrape{
			GrapeVarietyID: grape.GrapeVarietyID,
			Percent:        grape.Percent,
			Position:       index,
		})
	}

	wineID, err := w.resolver.Resolve(c.Request.Context(), resolver.Request{
		ExistingWineID: request.ExistingWineID,
		WineName:       request.Name,
		ProducerName:   request.Producer,
		WineType:       request.WineType,
		CountryID:      selection.CountryID,
		RegionID:       selection.RegionID,
		AppellationID:  selection.AppellationID,
		Grapes:         grapes,
	})
	if err != nil {
		w.logger.Error("error resolving wine", zap.String("name", request.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusCreated, gin.H{"wine_id": wineID})
}

// taxonomySelection replays the request's location choices deepest-last, so
// a selected appellation or region overwrites whatever ancestors the client
// sent alongside it.
func taxonomySelection(catalog *taxonomy.Catalog, countryID *uint, regionID *uint, appellationID *uint) taxonomy.Selection {
	selection := taxonomy.Selection{}.SelectCountry(catalog, countryID)

	if regionID != nil {
		selection = selection.SelectRegion(catalog, regionID)
	}

	if appellationID != nil {
		selection = selection.SelectAppellation(catalog, appellationID)
	}

	return selection
}

// UploadImage accepts a multipart image, validates it client-side before any
// upload, stores it and points the wine at the stored URL.
func (w *WineServer) UploadImage(c *gin.Context) {
	if w.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})

		return
	}

	wineID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := w.wineRepository.GetWineByID(c.Request.Context(), wineID); err != nil {
		notFoundOrInternal(c, err)

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

	key := "wines/" + strconv.FormatUint(uint64(wineID), 10) + "/" + uuid.NewString() + path.Ext(header.Filename)

	imageURL, err := w.store.UploadImage(c.Request.Context(), key, contentType, file, header.Size)
	if err != nil {
		w.logger.Error("error uploading wine image", zap.Uint("wine_id", wineID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})

		return
	}

	if err = w.wineRepository.UpdateWineImage(c.Request.Context(), wineID, imageURL); err != nil {
		w.logger.Error("image stored but wine not updated", zap.Uint("wine_id", wineID), zap.String("url", imageURL), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": imageURL})
}
