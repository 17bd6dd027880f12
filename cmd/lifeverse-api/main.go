package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"lifeverse/internal/api"
	"lifeverse/internal/catalog"
	"lifeverse/internal/config"
	"lifeverse/internal/game"
	"lifeverse/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()
	cfg := config.LoadAPIFromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cat, err := catalog.Load()
	if err != nil {
		logger.Error("catalog load failed", "err", err)
		os.Exit(1)
	}

	savePath := cfg.SavePath
	if savePath == "" {
		savePath, err = store.DefaultPath()
		if err != nil {
			logger.Error("resolve save path failed", "err", err)
			os.Exit(1)
		}
	}
	saves, err := store.Open(ctx, savePath)
	if err != nil {
		logger.Error("save db open failed", "err", err)
		os.Exit(1)
	}
	defer saves.Close()

	gameSvc := game.NewService(cat, saves, logger, cfg.Seed)
	gameSvc.SetSaveKey(cfg.SaveKey)
	if err := gameSvc.Load(ctx); err != nil {
		logger.Warn("starting from default state", "err", err)
	}

	// One scheduler: the server owns the game clock, so a browser tab and
	// a CLI poking the same API can never double-tick the world.
	go func() {
		ticker := time.NewTicker(cfg.TickEvery)
		autosave := time.NewTicker(cfg.AutosaveEvery)
		defer ticker.Stop()
		defer autosave.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				gameSvc.RunTick(cfg.TickMinutes)
			case <-autosave.C:
				if err := gameSvc.Save(ctx); err != nil {
					logger.Error("autosave failed", "err", err)
				}
			}
		}
	}()

	server := api.New(cfg, logger, gameSvc)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		if err := gameSvc.Save(shutdownCtx); err != nil {
			logger.Error("final save failed", "err", err)
		}
	}()

	logger.Info("lifeverse api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
