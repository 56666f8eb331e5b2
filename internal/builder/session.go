package builder

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/portfolio-builder/internal/form"
	"github.com/jonathan/portfolio-builder/internal/persistence"
	"github.com/jonathan/portfolio-builder/internal/rendering"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// State is everything the session holds besides the form fields
type State struct {
	Order          []types.SectionID
	Customizations types.Customizations
	Theme          types.Theme
}

// Document is the final, order-correct output handed to exporters
type Document struct {
	Markup         string
	Title          string
	Snapshot       types.FormSnapshot
	Customizations types.Customizations
}

// Session owns one portfolio's state. Every mutating method runs the full
// cycle (read form, render, show, save) before it returns, and methods are
// serialized so one action's cycle never interleaves with another's.
type Session struct {
	mu       sync.Mutex
	source   form.Source
	renderer *rendering.Renderer
	bridge   *persistence.Bridge
	surface  Surface

	state    State
	snapshot types.FormSnapshot
	markup   string
}

// NewSession wires a session. It starts from default state; call Start to
// restore what was persisted.
func NewSession(source form.Source, renderer *rendering.Renderer, bridge *persistence.Bridge, surface Surface) *Session {
	return &Session{
		source:   source,
		renderer: renderer,
		bridge:   bridge,
		surface:  surface,
		state: State{
			Order:          types.DefaultSections(),
			Customizations: types.DefaultCustomizations(),
			Theme:          types.ThemeLight,
		},
	}
}

// Start restores persisted state into the form source and the session, applies
// the stored theme and runs one cycle. When nothing was persisted the form
// source is left as it is and the session keeps its defaults.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if persisted, ok := s.bridge.Load(ctx); ok {
		form.Fill(s.source, persisted)
		s.state.Order = persisted.Sections
		s.state.Customizations = persisted.Customizations
	} else if s.source.Get(form.FieldTemplate) == "" {
		s.source.Set(form.FieldTemplate, types.DefaultTemplate)
	}

	s.state.Theme = s.bridge.LoadTheme(ctx)
	s.surface.SetTheme(s.state.Theme)

	return s.cycle(ctx)
}

// Refresh re-reads the form, including the customization controls, and runs
// the cycle. Use it after the source changed underneath the session, such as
// a reloaded form file. Empty controls keep the current customizations.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Customizations = form.ReadCustomizations(s.source, s.state.Customizations)
	return s.cycle(ctx)
}

// cycle reads, renders, shows and saves. Callers hold s.mu.
func (s *Session) cycle(ctx context.Context) error {
	snapshot := form.Read(s.source)
	markup, err := s.renderer.Render(s.state.Order, snapshot, s.state.Customizations)
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}

	s.snapshot = snapshot
	s.markup = markup
	s.surface.Show(markup, rendering.NewWrapper(snapshot.Template, s.state.Customizations))
	s.bridge.Save(ctx, snapshot, s.state.Order, s.state.Customizations)
	return nil
}

// SetField changes one form field. The customization controls are routed to
// the customizations.
func (s *Session) SetField(ctx context.Context, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch field {
	case form.FieldPrimaryColor:
		s.state.Customizations.PrimaryColor = value
	case form.FieldFontFamily:
		s.state.Customizations.FontFamily = value
	}
	s.source.Set(field, value)
	return s.cycle(ctx)
}

// SetFields changes several form fields and runs a single cycle.
func (s *Session) SetFields(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for field, value := range values {
		switch field {
		case form.FieldPrimaryColor:
			s.state.Customizations.PrimaryColor = value
		case form.FieldFontFamily:
			s.state.Customizations.FontFamily = value
		}
		s.source.Set(field, value)
	}
	return s.cycle(ctx)
}

// SetTemplate selects the template identifier.
func (s *Session) SetTemplate(ctx context.Context, template string) error {
	return s.SetField(ctx, form.FieldTemplate, template)
}

// SetPrimaryColor changes the primary color customization.
func (s *Session) SetPrimaryColor(ctx context.Context, color string) error {
	return s.SetField(ctx, form.FieldPrimaryColor, color)
}

// SetFontFamily changes the font customization.
func (s *Session) SetFontFamily(ctx context.Context, font string) error {
	return s.SetField(ctx, form.FieldFontFamily, font)
}

// AddSection appends name to the order. An empty name is ignored.
func (s *Session) AddSection(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	return s.transition(ctx, func(order []types.SectionID) []types.SectionID {
		return AddSection(order, types.SectionID(name))
	})
}

// RemoveSection removes every occurrence of name.
func (s *Session) RemoveSection(ctx context.Context, name string) error {
	return s.transition(ctx, func(order []types.SectionID) []types.SectionID {
		return RemoveSection(order, types.SectionID(name))
	})
}

// MoveSectionUp moves the section at index one place earlier.
func (s *Session) MoveSectionUp(ctx context.Context, index int) error {
	return s.transition(ctx, func(order []types.SectionID) []types.SectionID {
		return MoveSectionUp(order, index)
	})
}

// MoveSectionDown moves the section at index one place later.
func (s *Session) MoveSectionDown(ctx context.Context, index int) error {
	return s.transition(ctx, func(order []types.SectionID) []types.SectionID {
		return MoveSectionDown(order, index)
	})
}

func (s *Session) transition(ctx context.Context, apply func([]types.SectionID) []types.SectionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Order = apply(s.state.Order)
	return s.cycle(ctx)
}

// ToggleTheme flips the light/dark flag and stores it. Sections and markup
// are not touched.
func (s *Session) ToggleTheme(ctx context.Context) types.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyTheme(ctx, s.state.Theme.Toggle())
	return s.state.Theme
}

// SetTheme sets the light/dark flag explicitly.
func (s *Session) SetTheme(ctx context.Context, theme types.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyTheme(ctx, theme)
}

func (s *Session) applyTheme(ctx context.Context, theme types.Theme) {
	s.state.Theme = theme
	s.surface.SetTheme(theme)
	s.bridge.SaveTheme(ctx, theme)
}

// Order returns a copy of the current section order.
func (s *Session) Order() []types.SectionID {
	s.mu.Lock()
	defer s.mu.Unlock()
	order := make([]types.SectionID, len(s.state.Order))
	copy(order, s.state.Order)
	return order
}

// State returns a copy of the session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state
	state.Order = make([]types.SectionID, len(s.state.Order))
	copy(state.Order, s.state.Order)
	return state
}

// Snapshot returns the form snapshot used by the last render.
func (s *Session) Snapshot() types.FormSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Markup returns the section markup produced by the last render.
func (s *Session) Markup() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markup
}

// Section renders one section kind from the last snapshot, whether or not it
// is in the current order. Unrecognized kinds render "".
func (s *Session) Section(id types.SectionID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.RenderSection(id, s.snapshot)
}

// Customizations returns the current color and font.
func (s *Session) Customizations() types.Customizations {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Customizations
}

// Theme returns the current light/dark flag.
func (s *Session) Theme() types.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Theme
}

// Document renders a fresh cycle and returns its output for export, so the
// markup handed to an exporter always reflects the current order and fields.
func (s *Session) Document(ctx context.Context) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cycle(ctx); err != nil {
		return Document{}, err
	}
	return Document{
		Markup:         s.markup,
		Title:          Title(s.snapshot.Name),
		Snapshot:       s.snapshot,
		Customizations: s.state.Customizations,
	}, nil
}

// Title returns the export title for a portfolio owner's name.
func Title(name string) string {
	return name + "'s Portfolio"
}
