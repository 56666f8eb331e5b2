package builder

import (
	"sync"

	"github.com/jonathan/portfolio-builder/internal/rendering"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// Surface is where rendered markup is displayed
type Surface interface {
	Show(markup string, wrapper rendering.Wrapper)
	SetTheme(theme types.Theme)
}

// Pane is an in-memory Surface holding the latest preview
type Pane struct {
	mu      sync.RWMutex
	markup  string
	wrapper rendering.Wrapper
	theme   types.Theme
	renders int
}

// NewPane creates an empty light-themed Pane
func NewPane() *Pane {
	return &Pane{theme: types.ThemeLight}
}

// Show implements Surface.
func (p *Pane) Show(markup string, wrapper rendering.Wrapper) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.markup = markup
	p.wrapper = wrapper
	p.renders++
}

// SetTheme implements Surface.
func (p *Pane) SetTheme(theme types.Theme) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.theme = theme
}

// Markup returns the section markup last shown
func (p *Pane) Markup() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.markup
}

// Wrapper returns the container attributes last shown
func (p *Pane) Wrapper() rendering.Wrapper {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.wrapper
}

// HTML returns the last preview inside its styled container
func (p *Pane) HTML() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.wrapper.Wrap(p.markup)
}

// Theme returns the current visual theme
func (p *Pane) Theme() types.Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

// Renders counts how many times Show has been called
func (p *Pane) Renders() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.renders
}
