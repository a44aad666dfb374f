package main

import (
	"github.com/spf13/cobra"

	"github.com/huppifluppi/survey-tool-cli/internal/setup"
)

func newSetupCheckCmd(root *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "setup-check",
		Short: "Check the local host for Survey Tool prerequisites",
		Long: `Checks that the operating system is supported and that a Java runtime of
at least the configured minimum version is installed.

Java is looked up on the PATH first and then under JAVA_HOME.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checker := setup.New(setup.Options{MinJavaVersion: root.cfg.MinJavaVersion})

			result, err := checker.Check(cmd.Context())
			if err != nil {
				return err
			}
			return report(cmd, result, root.cfg.Verbose, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")

	return cmd
}
