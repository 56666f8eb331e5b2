package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jonathan/portfolio-builder/internal/builder"
	"github.com/jonathan/portfolio-builder/internal/config"
	"github.com/jonathan/portfolio-builder/internal/export"
	"github.com/jonathan/portfolio-builder/internal/form"
	"github.com/jonathan/portfolio-builder/internal/observability"
	"github.com/jonathan/portfolio-builder/internal/persistence"
	"github.com/jonathan/portfolio-builder/internal/rendering"
	"github.com/jonathan/portfolio-builder/internal/store"
)

// resolveConfig layers, in increasing priority: the config file, PORTFOLIO_*
// environment variables and command-line flags, then fills built-in defaults.
func (o *globalOptions) resolveConfig() (config.Config, error) {
	var file config.Config
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
		file = *loaded
	}

	env := config.FromEnv()
	flags := config.Config{Store: o.store, DSN: o.dsn, Verbose: o.verbose}

	cfg := flags.MergeWithDefaults(env.MergeWithDefaults(file))
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// app is one started portfolio session with its store
type app struct {
	cfg     config.Config
	store   store.Store
	source  form.Source
	session *builder.Session
	printer *observability.Printer
}

// openApp opens the configured store and starts a session over source,
// displaying on surface. A nil source uses an in-memory form and a nil
// surface an in-memory pane.
func openApp(ctx context.Context, cfg config.Config, out io.Writer, source form.Source, surface builder.Surface) (*app, error) {
	kv, err := store.Open(ctx, cfg.Store, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	renderer, err := newRenderer(cfg)
	if err != nil {
		kv.Close() //nolint:errcheck
		return nil, err
	}

	if source == nil {
		source = form.NewMapSource(nil)
	}
	if surface == nil {
		surface = builder.NewPane()
	}

	session := builder.NewSession(source, renderer, persistence.NewBridge(kv), surface)
	if err := session.Start(ctx); err != nil {
		kv.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	return &app{
		cfg:     cfg,
		store:   kv,
		source:  source,
		session: session,
		printer: observability.NewPrinter(out),
	}, nil
}

func newRenderer(cfg config.Config) (*rendering.Renderer, error) {
	if cfg.SectionTemplates != "" {
		return rendering.NewRendererFromFile(cfg.SectionTemplates)
	}
	return rendering.NewRenderer()
}

func (a *app) Close() error {
	return a.store.Close()
}

// pdfOptions builds exporter options from the configuration
func (a *app) pdfOptions() *export.PDFOptions {
	opts := export.DefaultPDFOptions()
	opts.ExecPath = a.cfg.ChromePath
	opts.Verbose = a.cfg.Verbose
	if a.cfg.PDFTimeout > 0 {
		opts.Timeout = time.Duration(a.cfg.PDFTimeout)
	}
	return opts
}

// withApp opens an app for the duration of fn
func withApp(ctx context.Context, opts *globalOptions, out io.Writer, fn func(a *app) error) error {
	cfg, err := opts.resolveConfig()
	if err != nil {
		return err
	}
	a, err := openApp(ctx, cfg, out, nil, nil)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck
	return fn(a)
}
