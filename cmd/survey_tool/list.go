package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/huppifluppi/survey-tool-cli/internal/check"
	"github.com/huppifluppi/survey-tool-cli/internal/document"
	"github.com/huppifluppi/survey-tool-cli/internal/observability"
	"github.com/huppifluppi/survey-tool-cli/internal/survey"
)

func newListCmd(_ *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list <file>",
		Aliases: []string{"ls"},
		Short:   "List the pages and items of a survey configuration file",
		Long: `Reads a survey configuration file into the survey model and lists its
pages and content items. Run "check" first for a full report of problems;
list stops at the first one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.FromContext(cmd.Context())

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return &check.FileReadError{Path: args[0], Cause: err}
			}

			docs, err := document.Parse(string(raw))
			if err != nil {
				return err
			}

			s, err := survey.FromDocuments(docs)
			if err != nil {
				return err
			}
			logger.Debug().Str("source", args[0]).Int("pages", len(s.Pages)).Msg("survey loaded")

			printer := observability.NewPrinter(cmd.OutOrStdout())
			if jsonOutput {
				return printer.PrintJSON(s.Summary())
			}
			printer.PrintSurveySummary(s.Summary())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the listing as JSON")

	return cmd
}
