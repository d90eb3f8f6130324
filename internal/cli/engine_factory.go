package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/nfasim"
	"github.com/aretw0/nfasim/internal/compiler"
	"github.com/aretw0/nfasim/internal/config"
	"github.com/aretw0/nfasim/internal/logging"
	loamAdapter "github.com/aretw0/nfasim/pkg/adapters/loam"
	"github.com/aretw0/nfasim/pkg/adapters/memory"
	"github.com/aretw0/nfasim/pkg/adapters/redis"
	"github.com/aretw0/nfasim/pkg/domain"
	"github.com/aretw0/nfasim/pkg/observability"
	"github.com/aretw0/nfasim/pkg/ports"
)

// Options are the persistent command-line flags. Non-empty values override the configuration.
type Options struct {
	ConfigPath string
	Dir        string
	RedisURL   string
	Files      []string
	Debug      bool
	Hooks      domain.LifecycleHooks
	// LogEvents adds an info line per simulation and definition load.
	LogEvents bool
}

// App bundles what every command needs.
type App struct {
	Config config.Config
	Logger *slog.Logger
	Engine *nfasim.Engine
	// Store is set when definitions can be written (Redis or in-memory sources).
	Store ports.DefinitionStore

	closers []io.Closer
}

// Close releases backend connections.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewApp loads the configuration, applies flag overrides and builds the engine.
// Definition sources, by precedence: --file documents, Redis, then the Loam directory.
func NewApp(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Dir != "" {
		cfg.Dir = opts.Dir
	}
	if opts.RedisURL != "" {
		cfg.RedisURL = opts.RedisURL
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}

	app := &App{
		Config: cfg,
		Logger: createLogger(cfg),
	}

	hooks := opts.Hooks
	if opts.LogEvents {
		hooks = observability.Combine(hooks, observability.LogHooks(app.Logger))
	}
	engineOpts := []nfasim.Option{
		nfasim.WithLogger(app.Logger),
		nfasim.WithLifecycleHooks(hooks),
	}

	label := cfg.Dir
	switch {
	case len(opts.Files) > 0:
		store, err := LoadFiles(opts.Files...)
		if err != nil {
			return nil, err
		}
		app.Store = store
		engineOpts = append(engineOpts, nfasim.WithLoader(store))
		label = "files"
	case cfg.RedisURL != "":
		var redisOpts []redis.Option
		if cfg.RedisTTL > 0 {
			redisOpts = append(redisOpts, redis.WithTTL(cfg.RedisTTL))
		}
		store, err := redis.NewFromURL(cfg.RedisURL, redisOpts...)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("redis unreachable: %w", err)
		}
		app.Store = store
		app.closers = append(app.closers, store)
		engineOpts = append(engineOpts, nfasim.WithLoader(store))
		label = "redis"
	default:
		loader, err := loamAdapter.Open(cfg.Dir)
		if err != nil {
			return nil, err
		}
		engineOpts = append(engineOpts, nfasim.WithLoader(loader))
	}

	eng, err := nfasim.New(label, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	app.Engine = eng
	app.Logger.Debug("engine ready", "source", label)
	return app, nil
}

// LoadFiles compiles YAML or JSON definition files into an in-memory store.
// A file without a name is registered under its base name without extension.
func LoadFiles(paths ...string) (*memory.Store, error) {
	parser := compiler.NewParser()
	store, err := memory.NewStore()
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		def, err := parser.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if def.Name == "" {
			def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		if err := store.Save(context.Background(), def); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	return store, nil
}

// createLogger configures the application logger on Stderr.
func createLogger(cfg config.Config) *slog.Logger {
	level := logging.ParseLevel(cfg.LogLevel)
	return logging.NewWithWriter(os.Stderr, level, logging.Format(cfg.LogFormat))
}
