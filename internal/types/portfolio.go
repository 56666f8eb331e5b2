// Package types provides type definitions for structured data used throughout the portfolio builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SectionID names a portfolio section. It is both an entry in the section order
// and the key the renderer dispatches on.
type SectionID string

// Recognized section kinds
const (
	SectionAbout     SectionID = "about"
	SectionSkills    SectionID = "skills"
	SectionEducation SectionID = "education"
	SectionProjects  SectionID = "projects"
	SectionContact   SectionID = "contact"
)

// DefaultTemplate is the template identifier used when none has been chosen
const DefaultTemplate = "minimal"

// DefaultSections returns a fresh copy of the initial section order
func DefaultSections() []SectionID {
	return []SectionID{SectionAbout, SectionSkills, SectionEducation, SectionProjects, SectionContact}
}

// FormSnapshot is a point-in-time read of the form fields
type FormSnapshot struct {
	Name         string `json:"name"`
	Bio          string `json:"bio"`
	ProfileImage string `json:"profileImage"`
	Skills       string `json:"skills"`
	Education    string `json:"education"`
	Projects     string `json:"projects"`
	SocialLinks  string `json:"socialLinks"`
	Template     string `json:"template"`
}

// Customizations holds the user-selected styling parameters
type Customizations struct {
	PrimaryColor string `json:"primaryColor"`
	FontFamily   string `json:"fontFamily"`
}

// DefaultCustomizations returns the customizations used before the user picks any
func DefaultCustomizations() Customizations {
	return Customizations{
		PrimaryColor: "#007bff",
		FontFamily:   "Arial",
	}
}

// PersistedState is the record written to the key-value store after every change
type PersistedState struct {
	FormSnapshot
	Sections       []SectionID    `json:"sections"`
	Customizations Customizations `json:"customizations"`
}

// DefaultPersistedState returns the state a first-time user starts from
func DefaultPersistedState() PersistedState {
	return PersistedState{
		FormSnapshot:   FormSnapshot{Template: DefaultTemplate},
		Sections:       DefaultSections(),
		Customizations: DefaultCustomizations(),
	}
}

// Theme is the light/dark visual flag. It is stored separately from PersistedState.
type Theme string

// Theme values
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// IsDark reports whether the dark flag is active
func (t Theme) IsDark() bool {
	return t == ThemeDark
}
