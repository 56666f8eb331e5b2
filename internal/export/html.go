package export

import (
	"strings"
	"text/template"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// Default download filenames
const (
	HTMLFilename = "portfolio.html"
	PDFFilename  = "portfolio.pdf"
	TextFilename = "portfolio.txt"
)

// documentTemplate is the standalone page wrapping exported markup. Values are
// inserted as-is, matching the preview.
var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
        body { font-family: {{.FontFamily}}; background: #f4f4f4; color: #333; padding: 20px; }
        .portfolio { max-width: 800px; margin: 0 auto; background: #fff; padding: 20px; border-radius: 8px; }
        img { max-width: 150px; border-radius: 50%; }
        h1, h2 { color: {{.PrimaryColor}}; }
    </style>
</head>
<body>
    <div class="portfolio">{{.Markup}}</div>
</body>
</html>
`))

type documentData struct {
	Title        string
	FontFamily   string
	PrimaryColor string
	Markup       string
}

// HTMLOptions configures the standalone HTML document
type HTMLOptions struct {
	// Sanitize strips scripts and other unsafe markup before embedding
	Sanitize bool
}

// HTMLDocument builds a self-contained HTML page embedding markup, with the
// customizations applied as inline style.
func HTMLDocument(markup, title string, customizations types.Customizations, opts *HTMLOptions) (string, error) {
	if opts != nil && opts.Sanitize {
		markup = Sanitize(markup)
	}

	var sb strings.Builder
	err := documentTemplate.Execute(&sb, documentData{
		Title:        title,
		FontFamily:   customizations.FontFamily,
		PrimaryColor: customizations.PrimaryColor,
		Markup:       markup,
	})
	if err != nil {
		return "", &Error{Format: "html", Message: "failed to execute document template", Cause: err}
	}
	return sb.String(), nil
}
