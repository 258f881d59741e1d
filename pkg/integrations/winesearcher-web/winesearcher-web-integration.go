package winesearcherweb

import "go.uber.org/zap"

const IntegrationName = "winesearcher_web"

type WineSearcherWebIntegration struct {
	logger *zap.Logger
}

func NewWineSearcherWebIntegration(logger *zap.Logger) *WineSearcherWebIntegration {
	return &WineSearcherWebIntegration{logger: logger}
}
