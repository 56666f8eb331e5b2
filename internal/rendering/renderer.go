package rendering

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/portfolio-builder/internal/types"
)

//go:embed templates/sections.tmpl
var templateFS embed.FS

// sectionTemplates maps each recognized section kind to the template that
// renders it. Section IDs missing from this table render nothing.
var sectionTemplates = map[types.SectionID]string{
	types.SectionAbout:     "about",
	types.SectionSkills:    "skills",
	types.SectionEducation: "education",
	types.SectionProjects:  "projects",
	types.SectionContact:   "contact",
}

// Recognized reports whether id is one of the section kinds that produce markup.
func Recognized(id types.SectionID) bool {
	_, ok := sectionTemplates[id]
	return ok
}

// Renderer produces portfolio markup from section templates. Field values are
// embedded verbatim: no HTML escaping is applied, so markup typed into a field
// (a link in the bio, say) is passed through. Callers that publish the output
// to untrusted viewers should sanitize it.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a Renderer using the built-in section templates.
func NewRenderer() (*Renderer, error) {
	content, err := templateFS.ReadFile("templates/sections.tmpl")
	if err != nil {
		return nil, &TemplateError{Message: "failed to read built-in templates", Cause: err}
	}
	tmpl, err := parseTemplate(string(content))
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// NewRendererFromFile creates a Renderer from a template file that overrides
// some or all of the built-in section templates by name.
func NewRendererFromFile(templatePath string) (*Renderer, error) {
	r, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}

	if _, err := r.tmpl.Parse(string(content)); err != nil {
		return nil, &TemplateError{Message: "failed to parse template overrides", Cause: err}
	}
	return r, nil
}

// parseTemplate parses section template source with the renderer's helper functions
func parseTemplate(content string) (*template.Template, error) {
	tmpl, err := template.New("sections").Funcs(template.FuncMap{
		"splitSkills": SplitSkills,
		"lineBreaks":  LineBreaks,
	}).Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}

	for _, name := range sectionTemplates {
		if tmpl.Lookup(name) == nil {
			return nil, &TemplateError{Message: fmt.Sprintf("missing section template %q", name)}
		}
	}
	return tmpl, nil
}

// Render concatenates the fragment of every section in order. Unrecognized
// IDs contribute nothing and duplicates render once per occurrence.
// Customizations only affect the wrapper (see NewWrapper), never the fragments.
// The output is deterministic for identical inputs.
func (r *Renderer) Render(order []types.SectionID, snapshot types.FormSnapshot, _ types.Customizations) (string, error) {
	var result strings.Builder
	for _, id := range order {
		if err := r.renderSection(&result, id, snapshot); err != nil {
			return "", err
		}
	}
	return result.String(), nil
}

// RenderSection returns the fragment for a single section, or "" when id is
// not a recognized kind.
func (r *Renderer) RenderSection(id types.SectionID, snapshot types.FormSnapshot) (string, error) {
	var result strings.Builder
	if err := r.renderSection(&result, id, snapshot); err != nil {
		return "", err
	}
	return result.String(), nil
}

func (r *Renderer) renderSection(sb *strings.Builder, id types.SectionID, snapshot types.FormSnapshot) error {
	name, ok := sectionTemplates[id]
	if !ok {
		return nil
	}
	if err := r.tmpl.ExecuteTemplate(sb, name, snapshot); err != nil {
		return &RenderError{
			Section: string(id),
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return nil
}

// Preview renders the sections inside the styled portfolio container.
func (r *Renderer) Preview(order []types.SectionID, snapshot types.FormSnapshot, customizations types.Customizations) (string, error) {
	markup, err := r.Render(order, snapshot, customizations)
	if err != nil {
		return "", err
	}
	return NewWrapper(snapshot.Template, customizations).Wrap(markup), nil
}

// SplitSkills splits the comma-separated skills field into trimmed entries.
// Empty entries (from ",," or a trailing comma) are kept so the list mirrors
// exactly what was typed.
func SplitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// LineBreaks replaces literal newlines with <br> tags
func LineBreaks(text string) string {
	return strings.ReplaceAll(text, "\n", "<br>")
}
