// Package types provides type definitions for structured data used throughout the portfolio builder.
package types

import (
	"github.com/go-playground/validator/v10"
)

// AddSectionRequest represents the request to append a section to the order.
type AddSectionRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// CustomizationsRequest represents a partial update of the styling parameters.
type CustomizationsRequest struct {
	PrimaryColor string `json:"primaryColor,omitempty" validate:"omitempty,iscolor"`
	FontFamily   string `json:"fontFamily,omitempty" validate:"omitempty,max=200"`
}

// TemplateRequest represents a template selection.
type TemplateRequest struct {
	Template string `json:"template" validate:"required,max=100"`
}

// ThemeRequest represents an explicit theme selection.
type ThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

// Validate validates the AddSectionRequest using the validator.
func (r *AddSectionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CustomizationsRequest using the validator.
func (r *CustomizationsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the TemplateRequest using the validator.
func (r *TemplateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ThemeRequest using the validator.
func (r *ThemeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
