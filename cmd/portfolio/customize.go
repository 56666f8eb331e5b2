package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/form"
	"github.com/jonathan/portfolio-builder/internal/types"
)

func newCustomizeCmd(opts *globalOptions) *cobra.Command {
	var color, font, template string

	cmd := &cobra.Command{
		Use:   "customize",
		Short: "Change template, primary color or font",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			custom := types.CustomizationsRequest{PrimaryColor: color, FontFamily: font}
			if err := custom.Validate(); err != nil {
				return fmt.Errorf("invalid customization: %w", err)
			}

			values := map[string]string{}
			if color != "" {
				values[form.FieldPrimaryColor] = color
			}
			if font != "" {
				values[form.FieldFontFamily] = font
			}
			if template != "" {
				req := types.TemplateRequest{Template: template}
				if err := req.Validate(); err != nil {
					return fmt.Errorf("invalid template: %w", err)
				}
				values[form.FieldTemplate] = template
			}
			if len(values) == 0 {
				return fmt.Errorf("nothing to change: pass --color, --font or --template")
			}

			return withApp(cmd.Context(), opts, cmd.OutOrStdout(), func(a *app) error {
				if err := a.session.SetFields(cmd.Context(), values); err != nil {
					return err
				}
				a.printer.PrintCustomizations(a.session.Customizations(), a.session.Theme())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Primary color, e.g. #007bff")
	cmd.Flags().StringVar(&font, "font", "", "Font family, e.g. Georgia")
	cmd.Flags().StringVar(&template, "template", "", "Template identifier, e.g. minimal")
	return cmd
}
