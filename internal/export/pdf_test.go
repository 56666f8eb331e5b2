package export

import (
	"bytes"
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-builder/internal/types"
)

func findChrome(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	t.Skip("Chrome/Chromium not installed")
	return ""
}

func TestDefaultPDFOptions(t *testing.T) {
	opts := DefaultPDFOptions()
	assert.Equal(t, 8.5, opts.PaperWidth)
	assert.Equal(t, 11.0, opts.PaperHeight)
	assert.Equal(t, DefaultPDFTimeout, opts.Timeout)
	assert.False(t, opts.Landscape)
}

func TestPDF_RendersDocument(t *testing.T) {
	chrome := findChrome(t)

	doc, err := HTMLDocument(`<div class="section about"><h1>Ada</h1></div>`, "Ada's Portfolio", types.DefaultCustomizations(), nil)
	require.NoError(t, err)

	opts := DefaultPDFOptions()
	opts.ExecPath = chrome
	opts.Timeout = time.Minute

	pdf, err := PDF(context.Background(), doc, opts)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output should be a PDF")
}

func TestPDF_CancelledContext(t *testing.T) {
	chrome := findChrome(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := DefaultPDFOptions()
	opts.ExecPath = chrome
	_, err := PDF(ctx, "<html><body></body></html>", opts)
	require.Error(t, err)

	var exportErr *Error
	assert.ErrorAs(t, err, &exportErr)
	assert.Equal(t, "pdf", exportErr.Format)
}
