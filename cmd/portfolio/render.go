package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/rendering"
	"github.com/jonathan/portfolio-builder/internal/types"
)

func newRenderCmd(opts *globalOptions) *cobra.Command {
	var wrap bool
	var outFile string
	var section string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the rendered section markup",
		Long:  "Render the saved portfolio and print the section markup, or with --wrap the markup inside the styled preview container. --section renders a single section kind.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, cmd.OutOrStdout(), func(a *app) error {
				markup := a.session.Markup()
				if section != "" {
					if !rendering.Recognized(types.SectionID(section)) {
						return fmt.Errorf("unknown section %q", section)
					}
					fragment, err := a.session.Section(types.SectionID(section))
					if err != nil {
						return err
					}
					markup = fragment
				}
				if wrap {
					markup = rendering.NewWrapper(a.session.Snapshot().Template, a.session.Customizations()).Wrap(markup)
				}

				if outFile == "" {
					fmt.Fprintln(cmd.OutOrStdout(), markup)
					return nil
				}
				if err := os.WriteFile(outFile, []byte(markup), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", outFile, err)
				}
				if a.cfg.Verbose {
					a.printer.PrintExport("markup", outFile, len(markup))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&wrap, "wrap", false, "Wrap the markup in the styled preview container")
	cmd.Flags().StringVar(&section, "section", "", "Render only this section kind")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write to a file instead of stdout")
	return cmd
}
