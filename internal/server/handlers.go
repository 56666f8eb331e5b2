package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"text/template"

	"github.com/jonathan/portfolio-builder/internal/builder"
	"github.com/jonathan/portfolio-builder/internal/form"
	"github.com/jonathan/portfolio-builder/internal/rendering"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// maxBodyBytes caps request bodies; bios and project lists are the largest fields
const maxBodyBytes = 1 << 20

// StateResponse is the full editable state of the portfolio
type StateResponse struct {
	Fields         types.FormSnapshot   `json:"fields"`
	Sections       []types.SectionID    `json:"sections"`
	Customizations types.Customizations `json:"customizations"`
	Theme          types.Theme          `json:"theme"`
}

// SectionsResponse lists the section order
type SectionsResponse struct {
	Sections []types.SectionID `json:"sections"`
}

// ThemeResponse reports the visual theme
type ThemeResponse struct {
	Theme types.Theme `json:"theme"`
}

func (s *Server) stateResponse() StateResponse {
	state := s.session.State()
	return StateResponse{
		Fields:         s.session.Snapshot(),
		Sections:       state.Order,
		Customizations: state.Customizations,
		Theme:          state.Theme,
	}
}

// decodeJSON decodes a size-limited request body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return &ErrInvalidBody{Cause: err}
	}
	return nil
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.stateResponse())
}

var previewPage = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
        body { background: #f4f4f4; color: #333; padding: 20px; }
        body.dark { background: #222; color: #eee; }
        #portfolio-preview { max-width: 800px; margin: 0 auto; }
        #portfolio-preview img { max-width: 150px; border-radius: 50%; }
        #portfolio-preview h1, #portfolio-preview h2 { color: var(--primary-color); }
    </style>
</head>
<body class="{{.BodyClass}}">
{{.Preview}}
<script>
    const events = new EventSource('/preview/events');
    events.addEventListener('preview', (e) => {
        const data = JSON.parse(e.data);
        document.getElementById('portfolio-preview').outerHTML = data.html;
        document.body.classList.toggle('dark', data.theme === 'dark');
    });
</script>
</body>
</html>
`))

// handlePreview serves the live preview page
func (s *Server) handlePreview(w http.ResponseWriter, _ *http.Request) {
	bodyClass := ""
	if s.session.Theme().IsDark() {
		bodyClass = "dark"
	}

	var sb strings.Builder
	err := previewPage.Execute(&sb, map[string]string{
		"Title":     builder.Title(s.session.Snapshot().Name),
		"BodyClass": bodyClass,
		"Preview":   s.previewHTML(),
	})
	if err != nil {
		s.failure(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(sb.String())) //nolint:errcheck
}

// previewHTML returns the wrapped preview as last shown
func (s *Server) previewHTML() string {
	if s.live != nil {
		return s.live.HTML()
	}
	wrapper := rendering.NewWrapper(s.session.Snapshot().Template, s.session.Customizations())
	return wrapper.Wrap(s.session.Markup())
}

// handlePreviewMarkup returns the bare section markup of the last render
func (s *Server) handlePreviewMarkup(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.session.Markup())) //nolint:errcheck
}

// handlePreviewEvents streams preview updates as Server-Sent Events
func (s *Server) handlePreviewEvents(w http.ResponseWriter, r *http.Request) {
	if s.live == nil {
		s.errorResponse(w, http.StatusNotFound, "live preview is not enabled")
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	events, unsubscribe := s.live.Subscribe()
	defer unsubscribe()

	if err := sse.WriteEvent("preview", s.live.Current()); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				sse.WriteError("preview stream closed")
				return
			}
			if err := sse.WriteEvent("preview", event); err != nil {
				return
			}
		}
	}
}

// handleSetFields sets any number of form fields in one render cycle
func (s *Server) handleSetFields(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := decodeJSON(w, r, &values); err != nil {
		s.failure(w, err)
		return
	}

	for field := range values {
		if !form.IsField(field) {
			s.failure(w, &ErrValidation{Field: field, Message: "unknown field"})
			return
		}
	}

	custom := types.CustomizationsRequest{
		PrimaryColor: values[form.FieldPrimaryColor],
		FontFamily:   values[form.FieldFontFamily],
	}
	if err := custom.Validate(); err != nil {
		s.failure(w, validationError(err))
		return
	}

	if err := s.session.SetFields(r.Context(), values); err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.stateResponse())
}

func (s *Server) handleSetTemplate(w http.ResponseWriter, r *http.Request) {
	var req types.TemplateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, validationError(err))
		return
	}

	if err := s.session.SetTemplate(r.Context(), req.Template); err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.stateResponse())
}

// handleSetCustomizations updates color and/or font; omitted values are kept
func (s *Server) handleSetCustomizations(w http.ResponseWriter, r *http.Request) {
	var req types.CustomizationsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, validationError(err))
		return
	}

	values := map[string]string{}
	if req.PrimaryColor != "" {
		values[form.FieldPrimaryColor] = req.PrimaryColor
	}
	if req.FontFamily != "" {
		values[form.FieldFontFamily] = req.FontFamily
	}
	if len(values) == 0 {
		s.failure(w, &ErrValidation{Field: "customizations", Message: "nothing to update"})
		return
	}

	if err := s.session.SetFields(r.Context(), values); err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.session.Customizations())
}

func (s *Server) handleGetTheme(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, ThemeResponse{Theme: s.session.Theme()})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req types.ThemeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, validationError(err))
		return
	}

	s.session.SetTheme(r.Context(), types.Theme(req.Theme))
	s.jsonResponse(w, http.StatusOK, ThemeResponse{Theme: s.session.Theme()})
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme := s.session.ToggleTheme(r.Context())
	s.jsonResponse(w, http.StatusOK, ThemeResponse{Theme: theme})
}
