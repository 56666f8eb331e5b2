// Package form reads portfolio field values from a form source into snapshots.
package form

import (
	"sort"
	"sync"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// Field names exposed by a form source
const (
	FieldName         = "name"
	FieldBio          = "bio"
	FieldProfileImage = "profileImage"
	FieldSkills       = "skills"
	FieldEducation    = "education"
	FieldProjects     = "projects"
	FieldSocialLinks  = "socialLinks"
	FieldTemplate     = "template"
	FieldPrimaryColor = "primaryColor"
	FieldFontFamily   = "fontFamily"
)

// Fields lists every content field in persisted-record order.
var Fields = []string{
	FieldName,
	FieldBio,
	FieldProfileImage,
	FieldSkills,
	FieldEducation,
	FieldProjects,
	FieldSocialLinks,
	FieldTemplate,
}

// IsField reports whether name is a known content or customization field.
func IsField(name string) bool {
	switch name {
	case FieldPrimaryColor, FieldFontFamily:
		return true
	}
	for _, f := range Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Source is a key-value view over the input controls.
// Get returns "" for fields that were never set.
type Source interface {
	Get(field string) string
	Set(field, value string)
}

// Read pulls the current content fields from src. It never fails; absent
// fields surface as empty strings.
func Read(src Source) types.FormSnapshot {
	return types.FormSnapshot{
		Name:         src.Get(FieldName),
		Bio:          src.Get(FieldBio),
		ProfileImage: src.Get(FieldProfileImage),
		Skills:       src.Get(FieldSkills),
		Education:    src.Get(FieldEducation),
		Projects:     src.Get(FieldProjects),
		SocialLinks:  src.Get(FieldSocialLinks),
		Template:     src.Get(FieldTemplate),
	}
}

// ReadCustomizations returns the customization controls from src, keeping
// fallback values for controls that are empty.
func ReadCustomizations(src Source, fallback types.Customizations) types.Customizations {
	c := fallback
	if v := src.Get(FieldPrimaryColor); v != "" {
		c.PrimaryColor = v
	}
	if v := src.Get(FieldFontFamily); v != "" {
		c.FontFamily = v
	}
	return c
}

// Fill writes a persisted state back into src, the inverse of Read plus the
// customization controls.
func Fill(src Source, state types.PersistedState) {
	src.Set(FieldName, state.Name)
	src.Set(FieldBio, state.Bio)
	src.Set(FieldProfileImage, state.ProfileImage)
	src.Set(FieldSkills, state.Skills)
	src.Set(FieldEducation, state.Education)
	src.Set(FieldProjects, state.Projects)
	src.Set(FieldSocialLinks, state.SocialLinks)
	src.Set(FieldTemplate, state.Template)
	src.Set(FieldPrimaryColor, state.Customizations.PrimaryColor)
	src.Set(FieldFontFamily, state.Customizations.FontFamily)
}

// MapSource is an in-memory Source safe for concurrent use.
type MapSource struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMapSource creates a MapSource seeded with values (which may be nil).
func NewMapSource(values map[string]string) *MapSource {
	m := &MapSource{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

// Get implements Source.
func (m *MapSource) Get(field string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[field]
}

// Set implements Source.
func (m *MapSource) Set(field, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[field] = value
}

// Keys returns the set field names in sorted order.
func (m *MapSource) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
