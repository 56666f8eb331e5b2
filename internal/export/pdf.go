package export

import (
	"context"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultPDFTimeout bounds a whole PDF export, browser startup included.
const DefaultPDFTimeout = 30 * time.Second

// PDFOptions configures the headless browser print
type PDFOptions struct {
	Timeout time.Duration
	// ExecPath overrides the Chrome/Chromium binary; empty means auto-detect
	ExecPath string
	// Paper size in inches. Zero values mean US letter.
	PaperWidth  float64
	PaperHeight float64
	Landscape   bool
	Verbose     bool
}

// DefaultPDFOptions returns US letter, portrait, no margins
func DefaultPDFOptions() *PDFOptions {
	return &PDFOptions{
		Timeout:     DefaultPDFTimeout,
		PaperWidth:  8.5,
		PaperHeight: 11,
	}
}

// PDF prints an HTML document to a paginated PDF using headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
func PDF(ctx context.Context, document string, opts *PDFOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultPDFOptions()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	width, height := opts.PaperWidth, opts.PaperHeight
	if width <= 0 || height <= 0 {
		width, height = 8.5, 11
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	if opts.Verbose {
		log.Printf("[export] printing %d bytes of HTML to PDF", len(document))
	}

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, document).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(opts.Landscape).
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &Error{Format: "pdf", Message: "browser rendering failed", Cause: err}
	}

	if opts.Verbose {
		log.Printf("[export] PDF rendered: %d bytes", len(pdf))
	}
	return pdf, nil
}
