package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/export"
	"github.com/jonathan/portfolio-builder/internal/form"
)

func newWatchCmd(opts *globalOptions) *cobra.Command {
	var formFile string
	var outFile string
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render whenever a form file changes",
		Long:  "Load field values from a YAML or JSON form file, render and persist them, then repeat on every save until interrupted. With --out the standalone HTML page is rewritten after each render.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, opts, formFile, outFile, debounce)
		},
	}

	cmd.Flags().StringVarP(&formFile, "form", "f", "", "YAML or JSON form file (default from config form_file)")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write the HTML page here after every render")
	cmd.Flags().DurationVar(&debounce, "debounce", formDebounce, "Quiet period before re-rendering")
	return cmd
}

func runWatch(cmd *cobra.Command, opts *globalOptions, formFile, outFile string, debounce time.Duration) error {
	cfg, err := opts.resolveConfig()
	if err != nil {
		return err
	}
	if formFile == "" {
		formFile = cfg.FormFile
	}
	if formFile == "" {
		return fmt.Errorf("--form is required (or set form_file in the config)")
	}

	fileSource, err := form.OpenFile(formFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	a, err := openApp(ctx, cfg, out, fileSource, nil)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck

	update := func() error {
		if err := applyFormFile(ctx, a, fileSource); err != nil {
			return err
		}
		fmt.Fprintf(out, "Rendered %d sections from %s\n", len(a.session.Order()), fileSource.Path())
		if a.cfg.Verbose {
			a.printer.PrintSnapshot(a.session.Snapshot())
		}
		if outFile == "" {
			return nil
		}
		doc, err := a.session.Document(ctx)
		if err != nil {
			return err
		}
		page, err := export.HTMLDocument(doc.Markup, doc.Title, doc.Customizations, &export.HTMLOptions{Sanitize: a.cfg.SanitizeExport})
		if err != nil {
			return err
		}
		return os.WriteFile(outFile, []byte(page), 0644)
	}

	if err := update(); err != nil {
		return err
	}

	return form.Watch(ctx, fileSource.Path(), debounce, func() {
		if err := update(); err != nil {
			log.Printf("[watch] %v", err)
		}
	})
}
