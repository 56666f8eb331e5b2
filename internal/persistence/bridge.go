// Package persistence saves and restores portfolio state through a key-value store.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/schemas"
	"github.com/jonathan/portfolio-builder/internal/store"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// Store keys
const (
	KeyPortfolio = "portfolioData"
	KeyTheme     = "theme"
)

// Bridge writes the combined portfolio record to a store after every change
// and rebuilds it at startup. Store failures never propagate: writes that fail
// are logged and dropped, reads that fail fall back to defaults.
type Bridge struct {
	store store.Store
}

// NewBridge creates a Bridge over s
func NewBridge(s store.Store) *Bridge {
	return &Bridge{store: s}
}

// ErrNoRecord is returned by Decode for an empty or null document
var ErrNoRecord = errors.New("no portfolio record")

// record is the wire shape of PersistedState. Pointers let Load tell an absent
// field from an empty one.
type record struct {
	Name           *string               `json:"name"`
	Bio            *string               `json:"bio"`
	ProfileImage   *string               `json:"profileImage"`
	Skills         *string               `json:"skills"`
	Education      *string               `json:"education"`
	Projects       *string               `json:"projects"`
	SocialLinks    *string               `json:"socialLinks"`
	Template       *string               `json:"template"`
	Sections       []types.SectionID     `json:"sections"`
	Customizations *customizationsRecord `json:"customizations"`
}

type customizationsRecord struct {
	PrimaryColor *string `json:"primaryColor"`
	FontFamily   *string `json:"fontFamily"`
}

// Encode serializes a snapshot, section order and customizations into the
// persisted record format.
func Encode(snapshot types.FormSnapshot, order []types.SectionID, customizations types.Customizations) (string, error) {
	if order == nil {
		order = []types.SectionID{}
	}
	state := types.PersistedState{
		FormSnapshot:   snapshot,
		Sections:       order,
		Customizations: customizations,
	}
	data, err := json.Marshal(state)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses a persisted record, filling every absent or null field with
// its default. Customization values that are present are kept verbatim, even
// when empty. A document that is not valid JSON, or that fails the portfolio
// schema, decodes to the full default state and a non-nil error; an empty or
// null document yields the defaults and ErrNoRecord.
func Decode(document string) (types.PersistedState, error) {
	state := types.DefaultPersistedState()

	trimmed := strings.TrimSpace(document)
	if trimmed == "" || trimmed == "null" {
		return state, ErrNoRecord
	}

	if err := schemas.ValidatePortfolio(trimmed); err != nil {
		return state, err
	}

	var rec record
	if err := json.Unmarshal([]byte(trimmed), &rec); err != nil {
		return state, err
	}

	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&state.Name, rec.Name)
	assign(&state.Bio, rec.Bio)
	assign(&state.ProfileImage, rec.ProfileImage)
	assign(&state.Skills, rec.Skills)
	assign(&state.Education, rec.Education)
	assign(&state.Projects, rec.Projects)
	assign(&state.SocialLinks, rec.SocialLinks)
	if rec.Template != nil && *rec.Template != "" {
		state.Template = *rec.Template
	}

	if rec.Sections != nil {
		state.Sections = rec.Sections
	}

	if rec.Customizations != nil {
		assign(&state.Customizations.PrimaryColor, rec.Customizations.PrimaryColor)
		assign(&state.Customizations.FontFamily, rec.Customizations.FontFamily)
	}

	return state, nil
}

// Save overwrites the persisted record. It fails silently: an unavailable
// store is logged and otherwise ignored.
func (b *Bridge) Save(ctx context.Context, snapshot types.FormSnapshot, order []types.SectionID, customizations types.Customizations) {
	document, err := Encode(snapshot, order, customizations)
	if err != nil {
		log.Printf("[persist] failed to encode portfolio: %v", err)
		return
	}
	if err := b.store.Set(ctx, KeyPortfolio, document); err != nil {
		log.Printf("[persist] failed to save portfolio: %v", err)
	}
}

// Load returns the last saved state. ok is false when nothing usable was
// stored (absent, empty, null, unreadable or malformed), in which case state holds the
// defaults for every field.
func (b *Bridge) Load(ctx context.Context) (state types.PersistedState, ok bool) {
	document, found, err := b.store.Get(ctx, KeyPortfolio)
	if err != nil {
		log.Printf("[persist] failed to read portfolio, using defaults: %v", err)
		return types.DefaultPersistedState(), false
	}
	if !found {
		return types.DefaultPersistedState(), false
	}

	state, err = Decode(document)
	if errors.Is(err, ErrNoRecord) {
		return state, false
	}
	if err != nil {
		log.Printf("[persist] ignoring malformed portfolio record: %v", err)
		return state, false
	}
	return state, true
}

// SaveTheme stores the theme flag under its own key
func (b *Bridge) SaveTheme(ctx context.Context, theme types.Theme) {
	if err := b.store.Set(ctx, KeyTheme, string(theme)); err != nil {
		log.Printf("[persist] failed to save theme: %v", err)
	}
}

// LoadTheme returns dark only when the stored flag is exactly "dark"
func (b *Bridge) LoadTheme(ctx context.Context) types.Theme {
	value, ok, err := b.store.Get(ctx, KeyTheme)
	if err != nil {
		log.Printf("[persist] failed to read theme: %v", err)
		return types.ThemeLight
	}
	if ok && value == string(types.ThemeDark) {
		return types.ThemeDark
	}
	return types.ThemeLight
}
