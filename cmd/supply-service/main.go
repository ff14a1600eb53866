package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/supply-contracts/internal/auth"
	"github.com/nurpe/supply-contracts/internal/config"
	"github.com/nurpe/supply-contracts/internal/db"
	"github.com/nurpe/supply-contracts/internal/excel"
	httphandler "github.com/nurpe/supply-contracts/internal/http"
	"github.com/nurpe/supply-contracts/internal/http/middleware"
	"github.com/nurpe/supply-contracts/internal/logger"
	"github.com/nurpe/supply-contracts/internal/pdf"
	"github.com/nurpe/supply-contracts/internal/repository"
	"github.com/nurpe/supply-contracts/internal/service"
	"github.com/nurpe/supply-contracts/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	var archive service.Archiver
	if cfg.ArchiveEnabled() {
		database, err := db.New(cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect database")
		}
		archive = repository.NewArchiveRepository(database)
	}

	pdfGenerator, err := pdf.NewGenerator(cfg.Export.PDFFontPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}

	contractService := service.NewContractService(
		repository.NewContractRegistry(),
		storage.NewTextStore(cfg.Data.Dir, log),
		excel.NewGenerator(),
		pdfGenerator,
		archive,
		log,
	)

	if cfg.Data.LoadOnStart {
		notice, err := contractService.Load()
		switch {
		case err == nil:
			log.Info().Str("dir", cfg.Data.Dir).Msg(notice.Message)
		case errors.Is(err, storage.ErrMissingDirectory):
			log.Warn().Str("dir", cfg.Data.Dir).Msg("no saved data, starting empty")
		default:
			log.Error().Err(err).Msg(notice.Message)
		}
	}

	var authMiddleware gin.HandlerFunc
	if cfg.AuthEnabled() {
		authMiddleware = middleware.Auth(auth.NewParser(cfg.Auth.AccessSecret))
	}

	handler := httphandler.NewHandler(contractService, log)
	router := httphandler.NewRouter(handler, authMiddleware, httphandler.RouterConfig{
		Environment:    cfg.Environment,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting supply contracts service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
