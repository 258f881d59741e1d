package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
	"github.com/christianolin/cellar-critiques-sub000/pkg/taxonomy"
)

type taxonomyRepository interface {
	GetCountries(ctx context.Context) ([]model.Country, error)
	GetRegions(ctx context.Context) ([]model.Region, error)
	GetAppellations(ctx context.Context) ([]model.Appellation, error)
	GetGrapeVarieties(ctx context.Context) ([]model.GrapeVariety, error)
}

// MasterDataServer serves the location and grape master data the dialogs
// cache per session.
type MasterDataServer struct {
	taxonomyRepository taxonomyRepository
	logger             *zap.Logger
}

func NewMasterDataServer(taxonomyRepo taxonomyRepository, logger *zap.Logger) *MasterDataServer {
	return &MasterDataServer{taxonomyRepository: taxonomyRepo, logger: logger}
}

func (m *MasterDataServer) Register(router *gin.RouterGroup) {
	router.GET("/masterdata", m.GetMasterData)
}

type masterDataResponse struct {
	Countries    []model.Country      `json:"countries"`
	Regions      []model.Region       `json:"regions"`
	Appellations []model.Appellation  `json:"appellations"`
	Grapes       []model.GrapeVariety `json:"grapes"`
}

// GetMasterData returns all four master data lists in one payload. Empty
// lists are valid; clients render empty option lists from them.
func (m *MasterDataServer) GetMasterData(c *gin.Context) {
	catalog, err := loadCatalog(c.Request.Context(), m.taxonomyRepository)
	if err != nil {
		m.logger.Error("error loading master data", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusOK, masterDataResponse{
		Countries:    catalog.Countries(),
		Regions:      catalog.RegionsForCountry(0),
		Appellations: catalog.AppellationsForRegion(0),
		Grapes:       catalog.Grapes(),
	})
}

// loadCatalog snapshots the master data into an in-memory catalog.
func loadCatalog(ctx context.Context, repo taxonomyRepository) (*taxonomy.Catalog, error) {
	countries, err := repo.GetCountries(ctx)
	if err != nil {
		return nil, err
	}

	regions, err := repo.GetRegions(ctx)
	if err != nil {
		return nil, err
	}

	appellations, err := repo.GetAppellations(ctx)
	if err != nil {
		return nil, err
	}

	grapes, err := repo.GetGrapeVarieties(ctx)
	if err != nil {
		return nil, err
	}

	return taxonomy.NewCatalog(countries, regions, appellations, grapes), nil
}
