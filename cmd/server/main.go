package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/dkeye/Tune/internal/adapters/http"
	wsignal "github.com/dkeye/Tune/internal/adapters/signal"
	"github.com/dkeye/Tune/internal/catalog"
	"github.com/dkeye/Tune/internal/config"
	"github.com/dkeye/Tune/internal/game"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	cat, err := catalog.NewFolderCatalog(cfg.SongsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open songs folder")
	}

	// Wire the coordinator with registry, catalog, clock and transport.
	reg := game.NewRegistry()
	ctl := wsignal.NewController(cfg.ChatLimit, cfg.ChatWindow)
	coord := game.NewCoordinator(reg, cat, game.ClockTickers{}, ctl, game.Options{
		RoundSeconds:     cfg.RoundSeconds,
		ClipSeconds:      cfg.ClipSeconds,
		WinRotateSeconds: cfg.WinDelay,
	})
	ctl.Coord = coord

	r := router.SetupRouter(ctx, cfg, ctl, cat, reg)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Tune server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
