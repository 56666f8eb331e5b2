package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/form"
	"github.com/jonathan/portfolio-builder/internal/types"
)

func newSetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Set a form field",
		Long: fmt.Sprintf("Set one form field and re-render. Fields: %s.\n"+
			"Multi-line fields (education, projects, socialLinks) accept \\n for line breaks.",
			strings.Join(settableFields(), ", ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, value := args[0], strings.ReplaceAll(args[1], `\n`, "\n")
			if err := validateField(field, value); err != nil {
				return err
			}

			return withApp(cmd.Context(), opts, cmd.OutOrStdout(), func(a *app) error {
				if err := a.session.SetField(cmd.Context(), field, value); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", field)
				if a.cfg.Verbose {
					a.printer.PrintSnapshot(a.session.Snapshot())
				}
				return nil
			})
		},
	}
}

// settableFields lists the content fields followed by the customization controls
func settableFields() []string {
	return append(slices.Clone(form.Fields), form.FieldPrimaryColor, form.FieldFontFamily)
}

// validateField rejects unknown fields and malformed customization values
func validateField(field, value string) error {
	if !form.IsField(field) {
		return fmt.Errorf("unknown field %q (expected one of: %s)", field, strings.Join(settableFields(), ", "))
	}

	req := types.CustomizationsRequest{}
	switch field {
	case form.FieldPrimaryColor:
		req.PrimaryColor = value
	case form.FieldFontFamily:
		req.FontFamily = value
	default:
		return nil
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return nil
}
