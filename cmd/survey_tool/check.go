package main

import (
	"github.com/spf13/cobra"

	"github.com/huppifluppi/survey-tool-cli/internal/check"
	"github.com/huppifluppi/survey-tool-cli/internal/observability"
	"github.com/huppifluppi/survey-tool-cli/internal/types"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	var (
		schemaPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Check a survey configuration file for correctness",
		Long: `Checks a multi-document YAML survey configuration file.

The first document is the survey header, every further document is a page.
Each document is validated against the survey JSON schema and all problems
are reported together.

Exit codes: 0 when all checks pass, 2 when problems were found and 1 when
the check could not be performed.`,
		Example: `  survey_tool check survey.yaml
  survey_tool check -v survey.yml
  survey_tool check survey.yaml --schema my.schema.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			if schemaPath == "" {
				schemaPath = cfg.Schema
			}

			checker := check.New(check.Options{
				Extensions:   cfg.Extensions,
				MinDocuments: cfg.MinDocuments,
				Parallelism:  cfg.Parallelism,
				SchemaPath:   schemaPath,
			})

			result, err := checker.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return report(cmd, result, cfg.Verbose, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "Validate against this JSON schema instead of the built-in one")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")

	return cmd
}

// report prints result and turns a failed result into a FindingsError.
func report(cmd *cobra.Command, result *types.CheckResult, verbose, jsonOutput bool) error {
	printer := observability.NewPrinter(cmd.OutOrStdout())
	if jsonOutput {
		if err := printer.PrintJSON(result); err != nil {
			return err
		}
	} else {
		printer.PrintCheckResult(result, verbose)
	}

	if !result.AllOK {
		return &FindingsError{Errors: len(result.Errors)}
	}
	return nil
}
