// Package cli wires a local play session: it opens the save database,
// loads the current save into a game service, and saves back on close.
package cli

import (
	"context"
	"log/slog"

	"lifeverse/internal/catalog"
	"lifeverse/internal/config"
	"lifeverse/internal/game"
	"lifeverse/internal/store"
)

type Session struct {
	Game  *game.Service
	store *store.SQLite
	key   string
}

// Open builds a ready-to-play session from config. A missing save is not
// an error: the session starts from the default state.
func Open(ctx context.Context, cfg config.CLIConfig, logger *slog.Logger) (*Session, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	path := cfg.SavePath
	if path == "" {
		path, err = store.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	st, err := store.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	svc := game.NewService(cat, st, logger, cfg.Seed)
	svc.SetSaveKey(cfg.SaveKey)
	// A broken save falls back to the default state inside Load; the
	// session still opens so the player can keep playing.
	if err := svc.Load(ctx); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("starting from default state", "err", err)
	}
	return &Session{Game: svc, store: st, key: cfg.SaveKey}, nil
}

// Close persists the session and releases the store. Every CLI command
// runs open/act/close, so progress survives between invocations.
func (s *Session) Close(ctx context.Context) error {
	saveErr := s.Game.Save(ctx)
	closeErr := s.store.Close()
	if saveErr != nil {
		return saveErr
	}
	return closeErr
}

// Wipe deletes the save blob; used by reset to start a fresh life on disk.
func (s *Session) Wipe(ctx context.Context) error {
	return s.store.Delete(ctx, s.key)
}
