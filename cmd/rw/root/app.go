package root

import (
	"context"
	"log/slog"
	"os"

	"github.com/danghaonhien/reword-this/internal/api"
	"github.com/danghaonhien/reword-this/internal/config"
	"github.com/danghaonhien/reword-this/internal/engine"
	"github.com/danghaonhien/reword-this/internal/events"
	"github.com/danghaonhien/reword-this/internal/limits"
	"github.com/danghaonhien/reword-this/internal/store"
)

// app bundles the wired subsystems every command needs.
type app struct {
	cfg *config.Config
	bus *events.Bus
	eng *engine.Engine
	lim *limits.Limiter
	api *api.Client
}

func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.Logging.Level),
	}))

	db, err := store.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	bus := events.NewBus()
	eng := engine.New(ctx, db, bus,
		engine.WithLogger(log),
		engine.WithPremium(cfg.Premium),
	)
	lim := limits.New(ctx, db,
		limits.WithLogger(log),
		limits.WithPremium(cfg.Premium),
	)
	client := api.NewClient(cfg.API.Endpoint,
		api.WithModel(cfg.API.Model),
		api.WithMaxTokens(cfg.API.MaxTokens),
	)

	return &app{cfg: cfg, bus: bus, eng: eng, lim: lim, api: client}, cleanup, nil
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
