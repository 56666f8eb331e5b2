package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/export"
)

func newShowCmd(opts *globalOptions) *cobra.Command {
	var asText bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the saved portfolio",
		Long:  "Print the form fields, section order and customizations from the store, or with --text a plain-text outline of the rendered page.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, cmd.OutOrStdout(), func(a *app) error {
				if asText {
					text, err := export.PlainText(a.session.Markup())
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), text)
					return nil
				}

				state := a.session.State()
				a.printer.PrintSnapshot(a.session.Snapshot())
				a.printer.PrintSections(state.Order)
				a.printer.PrintCustomizations(state.Customizations, state.Theme)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asText, "text", false, "Print a plain-text outline of the rendered sections")
	return cmd
}
