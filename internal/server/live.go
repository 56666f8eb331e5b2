package server

import (
	"sync"

	"github.com/jonathan/portfolio-builder/internal/builder"
	"github.com/jonathan/portfolio-builder/internal/rendering"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// PreviewEvent is pushed to live preview subscribers after every render or
// theme change.
type PreviewEvent struct {
	HTML  string      `json:"html"`
	Theme types.Theme `json:"theme"`
}

// LiveSurface is a builder.Surface that keeps the latest preview like a Pane
// and fans every update out to subscribers. Each subscriber only ever holds
// the most recent event; slow readers skip intermediate ones.
type LiveSurface struct {
	*builder.Pane

	mu     sync.Mutex
	subs   map[chan PreviewEvent]struct{}
	closed bool
}

// NewLiveSurface creates an empty light-themed LiveSurface
func NewLiveSurface() *LiveSurface {
	return &LiveSurface{
		Pane: builder.NewPane(),
		subs: make(map[chan PreviewEvent]struct{}),
	}
}

// Show implements builder.Surface.
func (l *LiveSurface) Show(markup string, wrapper rendering.Wrapper) {
	l.Pane.Show(markup, wrapper)
	l.publish()
}

// SetTheme implements builder.Surface.
func (l *LiveSurface) SetTheme(theme types.Theme) {
	l.Pane.SetTheme(theme)
	l.publish()
}

// Current returns the event describing the preview as it is now
func (l *LiveSurface) Current() PreviewEvent {
	return PreviewEvent{HTML: l.Pane.HTML(), Theme: l.Pane.Theme()}
}

// Subscribe registers for preview events. The returned function unsubscribes;
// the channel is closed on unsubscribe or Close.
func (l *LiveSurface) Subscribe() (<-chan PreviewEvent, func()) {
	ch := make(chan PreviewEvent, 1)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		close(ch)
		return ch, func() {}
	}
	l.subs[ch] = struct{}{}

	return ch, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if _, ok := l.subs[ch]; ok {
			delete(l.subs, ch)
			close(ch)
		}
	}
}

// Subscribers returns the number of active subscriptions
func (l *LiveSurface) Subscribers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}

// Close ends every subscription
func (l *LiveSurface) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	for ch := range l.subs {
		close(ch)
		delete(l.subs, ch)
	}
}

func (l *LiveSurface) publish() {
	event := l.Current()

	l.mu.Lock()
	defer l.mu.Unlock()
	for ch := range l.subs {
		// Replace any event the subscriber has not read yet
		select {
		case <-ch:
		default:
		}
		ch <- event
	}
}
