package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/christianolin/cellar-critiques-sub000/configs"
	"github.com/christianolin/cellar-critiques-sub000/pkg/auth"
	"github.com/christianolin/cellar-critiques-sub000/pkg/repository"
	"github.com/christianolin/cellar-critiques-sub000/pkg/resolver"
	"github.com/christianolin/cellar-critiques-sub000/pkg/server"
	"github.com/christianolin/cellar-critiques-sub000/pkg/storage"
)

const timeout = 5 * time.Second

type ServeCmd struct {
	ConfigFile string `default:".CellarCritiques.toml" help:"Path to config file" short:"c"`
}

func (s *ServeCmd) Run(cliCtx *Context) error {
	logConfig := zap.NewProductionConfig()

	logger, _ := logConfig.Build()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(s.ConfigFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return err
	}

	repo, err := repository.Open(conf, logger)
	if err != nil {
		logger.Error("error connecting to database", zap.Error(err))

		return err
	}
	defer repo.Close()

	store, err := storage.Open(context.Background(), conf, logger)
	if err != nil {
		if !errors.Is(err, storage.ErrNotConfigured) {
			logger.Error("error opening image storage", zap.Error(err))

			return err
		}

		logger.Warn("image storage not configured, uploads disabled")
		store = nil
	}

	if !cliCtx.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	authManager := auth.NewAuthManager(conf, repo, logger)

	public := engine.Group("/api/v1")
	server.NewUserServer(repo, store, logger).RegisterPublic(public)

	private := engine.Group("/api/v1")
	private.Use(authManager.Middleware())

	wineResolver := resolver.NewResolver(repo, repo, logger)

	server.NewMasterDataServer(repo, logger).Register(private)
	server.NewWineServer(repo, repo, wineResolver, store, logger).Register(private)
	server.NewCellarServer(repo, logger).Register(private)
	server.NewRatingServer(repo, repo, logger).Register(private)
	server.NewFriendServer(repo, repo, repo, repo, logger).Register(private)
	server.NewUserServer(repo, store, logger).Register(private)
	server.NewIntegrationServer(conf.Integrations.Wine, logger).Register(private)

	address := fmt.Sprintf(":%d", conf.Server.Port)

	svr := &http.Server{
		Addr:              address,
		ReadHeaderTimeout: timeout,
		Handler:           configureCORS(engine),
	}

	logger.Info("starting server", zap.String("address", address))

	err = svr.ListenAndServe()
	if err != nil {
		logger.Error("failed to start server", zap.Error(err))

		return err
	}

	return nil
}

func configureCORS(handler http.Handler) http.Handler {
	corsOpts := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH"},
		AllowedHeaders: []string{
			"accept",
			"accept-encoding",
			"accept-language",
			"authorization",
			"cache-control",
			"content-encoding",
			"content-length",
			"content-type",
			"date",
			"keep-alive",
			"origin",
			"referer",
			"user-agent",
		},
		MaxAge: 86400, // 24 hours
	})

	return corsOpts.Handler(handler)
}
