package integrations

import (
	"go.uber.org/zap"

	"github.com/christianolin/cellar-critiques-sub000/pkg/integrations/winesearcher-web"
	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
)

type Integration interface {
	FindWine(name string) ([]model.Wine, error)
	FindProducer(name string) ([]model.Producer, error)
}

func GetIntegration(name string, logger *zap.Logger) Integration {
	if name == winesearcherweb.IntegrationName {
		return winesearcherweb.NewWineSearcherWebIntegration(logger)
	}

	return nil
}
