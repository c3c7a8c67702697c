// Package bootstrap turns a Config into the engine, chart store and logger
// shared by the kundli binaries.
package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"kundli/internal/adapters/meeus"
	"kundli/internal/adapters/sqlite"
	"kundli/internal/adapters/static"
	"kundli/internal/adapters/swetest"
	"kundli/internal/application"
	"kundli/internal/config"
	"kundli/internal/domain"
	"kundli/internal/ports"
)

// App bundles the wired dependencies
type App struct {
	Config config.Config
	Engine *application.Engine
	Store  ports.ChartStore // nil when the cache is disabled
	Logger *slog.Logger

	index *sqlite.Index
}

// Close releases the chart store
func (a *App) Close() error {
	if a.index == nil {
		return nil
	}
	return a.index.Close()
}

// NewLogger returns a text logger writing to w, at debug level when verbose
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewProvider builds the ephemeris provider named by cfg.Provider
func NewProvider(cfg config.Config) (ports.EphemerisProvider, error) {
	switch cfg.Provider {
	case "", "meeus":
		return meeus.NewProvider(), nil
	case "swetest":
		return swetest.NewProvider(
			swetest.WithBinary(cfg.SwetestPath),
			swetest.WithEphePath(cfg.EphePath),
			swetest.WithTimeout(cfg.Timeout),
		), nil
	case "static":
		p, err := static.Load(cfg.StaticFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load static ephemeris: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// NewEngine builds an engine over provider using the configured ayanamsa and house system
func NewEngine(cfg config.Config, provider ports.EphemerisProvider, logger *slog.Logger) (*application.Engine, error) {
	ayanamsa, err := domain.ParseAyanamsa(cfg.Ayanamsa)
	if err != nil {
		return nil, err
	}
	hsys := domain.HouseSystem(strings.ToUpper(cfg.HouseSystem))
	if hsys == "" {
		hsys = domain.HouseSystemWholeSign
	}
	return application.NewEngine(provider,
		application.WithAyanamsa(ayanamsa),
		application.WithHouseSystem(hsys),
		application.WithLogger(logger),
	), nil
}

// Build wires everything from cfg and installs logger as the slog default.
// Callers must Close the result.
func Build(cfg config.Config, logger *slog.Logger) (*App, error) {
	slog.SetDefault(logger)

	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	engine, err := NewEngine(cfg, provider, logger)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Engine: engine, Logger: logger}
	if !cfg.Cache {
		logger.Debug("chart cache disabled")
		return app, nil
	}

	idx := sqlite.NewIndex()
	if err := idx.Open(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("failed to open chart cache: %w", err)
	}
	logger.Debug("chart cache opened", "path", idx.Path())
	app.index = idx
	app.Store = idx
	return app, nil
}
