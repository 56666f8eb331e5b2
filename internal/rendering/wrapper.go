package rendering

import (
	"fmt"
	"html"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// PreviewElementID is the id attribute of the preview container
const PreviewElementID = "portfolio-preview"

// Wrapper holds the styling attributes of the portfolio container. Template
// and customizations only ever reach the markup through these attributes.
type Wrapper struct {
	Class        string
	FontFamily   string
	PrimaryColor string
}

// NewWrapper derives the container attributes for a template and customizations
func NewWrapper(template string, customizations types.Customizations) Wrapper {
	class := "portfolio"
	if t := strings.TrimSpace(template); t != "" {
		class += " " + t
	}
	return Wrapper{
		Class:        class,
		FontFamily:   customizations.FontFamily,
		PrimaryColor: customizations.PrimaryColor,
	}
}

// Style returns the inline style declaration for the container
func (w Wrapper) Style() string {
	var decls []string
	if w.FontFamily != "" {
		decls = append(decls, "font-family: "+w.FontFamily)
	}
	if w.PrimaryColor != "" {
		decls = append(decls, "--primary-color: "+w.PrimaryColor)
	}
	if len(decls) == 0 {
		return ""
	}
	return strings.Join(decls, "; ") + ";"
}

// Wrap places markup inside the styled container element
func (w Wrapper) Wrap(markup string) string {
	return fmt.Sprintf(`<div id="%s" class="%s" style="%s">%s</div>`,
		PreviewElementID, html.EscapeString(w.Class), html.EscapeString(w.Style()), markup)
}
