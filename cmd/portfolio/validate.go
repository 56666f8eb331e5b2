package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/schemas"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a saved portfolio record against the schema",
		Long:  "Validate a portfolio JSON record, such as a copy of the portfolioData value, against the portfolio schema and list every violation.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := schemas.ValidatePortfolioFile(args[0])
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				fmt.Fprint(cmd.OutOrStdout(), validationErr.Error())
				return fmt.Errorf("%s: %d schema violation(s)", args[0], len(validationErr.Errors))
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid portfolio record\n", args[0])
			return nil
		},
	}
}
