package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/builder"
	"github.com/jonathan/portfolio-builder/internal/types"
)

func newSectionsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "List and reorder portfolio sections",
		Long:  "Sections render in list order. Recognized kinds are about, skills, education, projects and contact; other names are kept but render nothing.",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List sections in order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd.Context(), opts, cmd.OutOrStdout(), func(a *app) error {
					a.printer.PrintSections(a.session.Order())
					return nil
				})
			},
		},
		sectionCmd(opts, "add <name>", "Append a section", func(ctx context.Context, s *builder.Session, arg string) error {
			req := types.AddSectionRequest{Name: arg}
			if err := req.Validate(); err != nil {
				return fmt.Errorf("section name is required")
			}
			return s.AddSection(ctx, arg)
		}),
		sectionCmd(opts, "remove <name>", "Remove every occurrence of a section", func(ctx context.Context, s *builder.Session, arg string) error {
			return s.RemoveSection(ctx, arg)
		}),
		sectionCmd(opts, "up <index>", "Move the section at index one place earlier", func(ctx context.Context, s *builder.Session, arg string) error {
			index, err := parseIndex(arg)
			if err != nil {
				return err
			}
			return s.MoveSectionUp(ctx, index)
		}),
		sectionCmd(opts, "down <index>", "Move the section at index one place later", func(ctx context.Context, s *builder.Session, arg string) error {
			index, err := parseIndex(arg)
			if err != nil {
				return err
			}
			return s.MoveSectionDown(ctx, index)
		}),
	)
	return cmd
}

// sectionCmd builds a one-argument subcommand that applies a transition and
// prints the resulting order
func sectionCmd(opts *globalOptions, use, short string, apply func(context.Context, *builder.Session, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.OutOrStdout(), func(a *app) error {
				if err := apply(cmd.Context(), a.session, args[0]); err != nil {
					return err
				}
				printOrder(cmd, a.session.Order())
				return nil
			})
		},
	}
}

func printOrder(cmd *cobra.Command, order []types.SectionID) {
	for i, id := range order {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i, id)
	}
}

// parseIndex accepts any integer; out-of-range moves are no-ops
func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("index must be an integer, got %q", arg)
	}
	return index, nil
}
