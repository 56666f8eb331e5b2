package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/form"
	"github.com/jonathan/portfolio-builder/internal/server"
)

// formDebounce collapses the burst of events editors emit for one save
const formDebounce = 200 * time.Millisecond

func newServeCmd(opts *globalOptions) *cobra.Command {
	var port string
	var formFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and live preview",
		Long:  "Start an HTTP server exposing the portfolio actions as JSON endpoints, a live preview page at /preview and exports under /export.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts, port, formFile)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (default 8080)")
	cmd.Flags().StringVar(&formFile, "form", "", "YAML or JSON form file to watch and apply on change")
	return cmd
}

func runServe(cmd *cobra.Command, opts *globalOptions, port, formFile string) error {
	ctx := cmd.Context()

	cfg, err := opts.resolveConfig()
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Port = port
	}
	if formFile == "" {
		formFile = cfg.FormFile
	}

	live := server.NewLiveSurface()

	var fileSource *form.FileSource
	var source form.Source
	if formFile != "" {
		fileSource, err = form.OpenFile(formFile)
		if err != nil {
			return err
		}
		source = fileSource
	}

	a, err := openApp(ctx, cfg, cmd.OutOrStdout(), source, live)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck

	if fileSource != nil {
		if err := applyFormFile(ctx, a, fileSource); err != nil {
			return err
		}

		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			err := form.Watch(watchCtx, fileSource.Path(), formDebounce, func() {
				if err := applyFormFile(watchCtx, a, fileSource); err != nil {
					log.Printf("[watch] %v", err)
				}
			})
			if err != nil {
				log.Printf("[watch] stopped: %v", err)
			}
		}()
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		Session:        a.session,
		Live:           live,
		SanitizeExport: cfg.SanitizeExport,
		PDFOptions:     a.pdfOptions(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// applyFormFile re-reads the form file and re-renders from it. Keys that are
// not form fields are logged and otherwise ignored.
func applyFormFile(ctx context.Context, a *app, fs *form.FileSource) error {
	if err := fs.Reload(); err != nil {
		return err
	}
	if unknown := fs.UnknownFields(); len(unknown) > 0 {
		log.Printf("[watch] ignoring unknown fields in %s: %s", fs.Path(), strings.Join(unknown, ", "))
	}
	return a.session.Refresh(ctx)
}
