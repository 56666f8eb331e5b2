package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/portfolio-builder/internal/builder"
	"github.com/jonathan/portfolio-builder/internal/export"
)

// Export formats
const (
	formatHTML = "html"
	formatPDF  = "pdf"
	formatText = "text"
	formatAll  = "all"
)

func newExportCmd(opts *globalOptions) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:       "export <html|pdf|text|all>",
		Short:     "Export the portfolio as a downloadable file",
		Long:      "Write portfolio.html, portfolio.pdf (requires Chrome or Chromium) or portfolio.txt, or all three concurrently.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{formatHTML, formatPDF, formatText, formatAll},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.OutOrStdout(), func(a *app) error {
				dir := outDir
				if dir == "" {
					dir = a.cfg.OutputDir
				}
				return runExport(cmd.Context(), a, args[0], dir)
			})
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Directory for exported files (default from config output_dir)")
	return cmd
}

func runExport(ctx context.Context, a *app, format, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Render once so every format sees the same order and fields
	doc, err := a.session.Document(ctx)
	if err != nil {
		return err
	}

	exporters := map[string]func(context.Context) error{
		formatHTML: func(context.Context) error { return a.writeHTML(doc, dir) },
		formatPDF:  func(ctx context.Context) error { return a.writePDF(ctx, doc, dir) },
		formatText: func(context.Context) error { return a.writeText(doc, dir) },
	}

	if format != formatAll {
		return exporters[format](ctx)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range []string{formatHTML, formatPDF, formatText} {
		run := exporters[name]
		g.Go(func() error { return run(gctx) })
	}
	return g.Wait()
}

func (a *app) htmlPage(doc builder.Document) (string, error) {
	return export.HTMLDocument(doc.Markup, doc.Title, doc.Customizations, &export.HTMLOptions{Sanitize: a.cfg.SanitizeExport})
}

func (a *app) writeHTML(doc builder.Document, dir string) error {
	page, err := a.htmlPage(doc)
	if err != nil {
		return err
	}
	return a.writeFile(formatHTML, filepath.Join(dir, export.HTMLFilename), []byte(page))
}

func (a *app) writePDF(ctx context.Context, doc builder.Document, dir string) error {
	page, err := a.htmlPage(doc)
	if err != nil {
		return err
	}
	pdf, err := export.PDF(ctx, page, a.pdfOptions())
	if err != nil {
		return err
	}
	return a.writeFile(formatPDF, filepath.Join(dir, export.PDFFilename), pdf)
}

func (a *app) writeText(doc builder.Document, dir string) error {
	text, err := export.PlainText(doc.Markup)
	if err != nil {
		return err
	}
	return a.writeFile(formatText, filepath.Join(dir, export.TextFilename), []byte(text+"\n"))
}

func (a *app) writeFile(format, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if a.cfg.Verbose {
		a.printer.PrintExport(format, path, len(data))
	}
	return nil
}
