package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/types"
)

func newThemeCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the light/dark theme",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the current theme",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd.Context(), opts, cmd.OutOrStdout(), func(a *app) error {
					fmt.Fprintln(cmd.OutOrStdout(), a.session.Theme())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch between light and dark",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd.Context(), opts, cmd.OutOrStdout(), func(a *app) error {
					fmt.Fprintln(cmd.OutOrStdout(), a.session.ToggleTheme(cmd.Context()))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set <light|dark>",
			Short: "Choose the theme explicitly",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				req := types.ThemeRequest{Theme: args[0]}
				if err := req.Validate(); err != nil {
					return fmt.Errorf("theme must be light or dark, got %q", args[0])
				}
				return withApp(cmd.Context(), opts, cmd.OutOrStdout(), func(a *app) error {
					a.session.SetTheme(cmd.Context(), types.Theme(req.Theme))
					fmt.Fprintln(cmd.OutOrStdout(), a.session.Theme())
					return nil
				})
			},
		},
	)
	return cmd
}
