package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/christianolin/cellar-critiques-sub000/pkg/integrations"
	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
)

// IntegrationServer fans a lookup out over the configured external wine
// sources. Results are suggestions only; nothing is written until the client
// submits them through the wine endpoints.
type IntegrationServer struct {
	integrations []integrations.Integration
	logger       *zap.Logger
}

func NewIntegrationServer(names []string, logger *zap.Logger) *IntegrationServer {
	server := &IntegrationServer{logger: logger}

	for _, name := range names {
		integration := integrations.GetIntegration(name, logger)
		if integration == nil {
			logger.Warn("unknown wine integration", zap.String("name", name))

			continue
		}

		server.integrations = append(server.integrations, integration)
	}

	return server
}

func (s *IntegrationServer) Register(router *gin.RouterGroup) {
	router.GET("/external/wines", s.SearchWines)
	router.GET("/external/producers", s.SearchProducers)
}

func (s *IntegrationServer) SearchWines(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})

		return
	}

	var (
		errs    error
		results []model.Wine
	)

	for _, integration := range s.integrations {
		wines, err := integration.FindWine(query)
		multierr.AppendInto(&errs, err)

		results = append(results, wines...)
	}

	if len(results) == 0 && errs != nil {
		s.logger.Error("external wine search failed", zap.String("query", query), zap.Error(errs))
		c.JSON(http.StatusBadGateway, gin.H{"error": "external search failed"})

		return
	}

	c.JSON(http.StatusOK, results)
}

func (s *IntegrationServer) SearchProducers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})

		return
	}

	var (
		errs    error
		results []model.Producer
	)

	for _, integration := range s.integrations {
		producers, err := integration.FindProducer(query)
		multierr.AppendInto(&errs, err)

		results = append(results, producers...)
	}

	if len(results) == 0 && errs != nil {
		s.logger.Error("external producer search failed", zap.String("query", query), zap.Error(errs))
		c.JSON(http.StatusBadGateway, gin.H{"error": "external search failed"})

		return
	}

	c.JSON(http.StatusOK, results)
}
