package app

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/dshills/sideways/internal/config"
	"github.com/dshills/sideways/internal/engine"
	"github.com/dshills/sideways/internal/engine/profile"
	"github.com/dshills/sideways/internal/plugin"
)

// Application holds the configured engine and the Lua host that share one
// configuration. Both are replaced together on Reload.
type Application struct {
	mu sync.RWMutex

	cfg    *config.Config
	engine *engine.Engine
	host   *plugin.Host

	logger  *Logger
	metrics *Metrics

	closed bool
	opts   Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty means SIDEWAYS_CONFIG or
	// the default path.
	ConfigPath string

	// NoConfig skips reading any configuration file.
	NoConfig bool

	// LogLevel overrides the configured log level.
	LogLevel string

	// Wrap overrides the configured wrap-around setting.
	Wrap *bool

	// Filetypes overrides the configured enabled filetypes.
	Filetypes []string

	// NoScripts skips the configured Lua scripts.
	NoScripts bool

	// Env looks up environment variables. Defaults to os.LookupEnv.
	Env config.LookupFunc

	// Logger receives application logs. Defaults to a stderr logger at
	// the configured level.
	Logger *Logger

	// Stdin is read when no input file is named. Defaults to os.Stdin.
	Stdin io.Reader
}

// New loads the configuration and builds the engine and Lua host.
func New(ctx context.Context, opts Options) (*Application, error) {
	if opts.Env == nil {
		opts.Env = os.LookupEnv
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}

	app := &Application{
		opts:    opts,
		metrics: NewMetrics(),
	}

	cfg, err := app.loadConfig()
	if err != nil {
		return nil, err
	}

	app.logger = opts.Logger
	if app.logger == nil {
		logCfg := DefaultLoggerConfig()
		logCfg.Level = ParseLogLevel(cfg.Logging.Level)
		app.logger = NewLogger(logCfg)
	}

	e, host, err := app.build(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app.cfg = cfg
	app.engine = e
	app.host = host

	app.Logger().Debug("loaded config %q with %d filetypes", cfg.Path(), len(e.Filetypes()))
	return app, nil
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cfg
}

// Engine returns the active engine.
func (app *Application) Engine() *engine.Engine {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.engine
}

// Host returns the active Lua host.
func (app *Application) Host() *plugin.Host {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.host
}

// Reload rereads the configuration and replaces the engine and host.
// On failure the previous configuration stays active.
func (app *Application) Reload(ctx context.Context) error {
	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}
	e, host, err := app.build(ctx, cfg)
	if err != nil {
		return err
	}

	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		_ = host.Close()
		return ErrClosed
	}
	old := app.host
	app.cfg = cfg
	app.engine = e
	app.host = host
	app.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	if app.opts.Logger == nil {
		app.Logger().SetLevel(ParseLogLevel(cfg.Logging.Level))
	}
	app.metrics.RecordReload()
	app.Logger().Info("configuration reloaded")
	return nil
}

// Swap runs a swap on the active engine and notifies script hooks when
// the text changed.
func (app *Application) Swap(ctx context.Context, req engine.Request) (engine.Result, error) {
	app.mu.RLock()
	e, host := app.engine, app.host
	app.mu.RUnlock()

	timer := StartTimer()
	res, err := e.Swap(req)
	app.metrics.RecordRequest(timer.Elapsed())

	switch {
	case err == nil:
		app.metrics.RecordSwap()
	case engine.IsBenign(err):
		app.metrics.RecordNoop()
		return res, err
	default:
		app.metrics.RecordError()
		return res, err
	}

	if res.Changed && host != nil && host.HasHooks() {
		ft := req.Filetype
		if p, perr := e.Profile(req.Filetype, req.Path); perr == nil {
			ft = p.Name
		}
		ev := plugin.SwapEvent{Path: req.Path, Filetype: ft, Result: res}
		if herr := host.NotifySwap(ctx, ev); herr != nil {
			app.logComponentError("plugin", herr)
		}
	}
	return res, nil
}

// Close releases the Lua host. Safe to call more than once.
func (app *Application) Close() error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed {
		return nil
	}
	app.closed = true
	if app.host != nil {
		return app.host.Close()
	}
	return nil
}

func (app *Application) configPath() string {
	if app.opts.NoConfig {
		return ""
	}
	if app.opts.ConfigPath != "" {
		return app.opts.ConfigPath
	}
	if p, ok := app.opts.Env(config.EnvConfig); ok && p != "" {
		return p
	}
	return config.DefaultPath()
}

// loadConfig applies, in order: defaults, the file, the environment, and
// the command-line overrides in Options.
func (app *Application) loadConfig() (*config.Config, error) {
	path := app.configPath()

	cfg, err := config.Load(path)
	if err != nil {
		return nil, NewOperationError("load config", path, err)
	}
	if err := cfg.ApplyEnvFrom(app.opts.Env); err != nil {
		return nil, NewOperationError("load config", path, err).WithContext("environment")
	}

	if app.opts.LogLevel != "" {
		cfg.Logging.Level = app.opts.LogLevel
	}
	if app.opts.Wrap != nil {
		cfg.Swap.Wrap = *app.opts.Wrap
	}
	if app.opts.Filetypes != nil {
		cfg.Swap.Filetypes = app.opts.Filetypes
	}
	if err := cfg.Validate(); err != nil {
		return nil, NewOperationError("load config", path, err).WithContext("flags")
	}
	return cfg, nil
}

// build creates the engine for cfg and a host whose scripts see it.
// Script failures are logged and do not fail the build.
func (app *Application) build(ctx context.Context, cfg *config.Config) (*engine.Engine, *plugin.Host, error) {
	reg, err := BuildRegistry(cfg)
	if err != nil {
		return nil, nil, err
	}
	e := engine.New(reg,
		engine.WithWrap(cfg.Swap.Wrap),
		engine.WithEnabledFiletypes(cfg.Swap.Filetypes...),
	)

	host, err := plugin.NewHost(func() *engine.Engine { return e },
		plugin.WithHostExecutionTimeout(cfg.PluginTimeout()),
	)
	if err != nil {
		return nil, nil, NewOperationError("start lua", "", err)
	}

	if !app.opts.NoScripts {
		if err := host.LoadScripts(ctx, cfg.Scripts()); err != nil {
			app.logComponentError("plugin", err)
		}
	}
	return e, host, nil
}

// BuildRegistry returns the built-in profiles extended by the profile
// files and inline profiles of cfg, applied in that order.
func BuildRegistry(cfg *config.Config) (*profile.Registry, error) {
	reg := profile.NewBuiltinRegistry()

	for _, path := range cfg.ProfileFiles() {
		defs, err := profile.LoadFile(path)
		if err != nil {
			return nil, NewOperationError("load profiles", path, err)
		}
		if err := reg.Apply(defs); err != nil {
			return nil, NewOperationError("load profiles", path, err)
		}
	}

	if err := reg.Apply(cfg.Profiles.Custom); err != nil {
		return nil, NewOperationError("load profiles", cfg.Path(), err).WithContext("profiles.custom")
	}
	return reg, nil
}
