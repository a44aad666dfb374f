// Package main implements the survey_tool CLI for checking survey tool configuration files.
package main

import (
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/huppifluppi/survey-tool-cli/internal/config"
	"github.com/huppifluppi/survey-tool-cli/internal/observability"
)

// rootOptions holds the persistent flags and the configuration derived from them.
type rootOptions struct {
	verbose    bool
	configPath string
	logLevel   string

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "survey_tool",
		Short:         "Survey Tool configuration helper",
		Long:          "Supports handling Survey Tool configuration files: checks them for correctness, lists their contents and checks the local host for prerequisites.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Increase output")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newSetupCheckCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))

	return rootCmd
}

// setup loads the configuration and attaches the logger to the command context.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.verbose {
		cfg.Verbose = true
	}

	level := cfg.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	} else if cfg.Verbose && level == "info" {
		level = "debug"
	}

	logger, err := observability.NewLogger(observability.LoggingConfig{
		Level:  level,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	o.cfg = cfg
	cmd.SetContext(observability.WithLogger(cmd.Context(), logger))
	return nil
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return 0
	}
	if !reported(err) {
		observability.NewPrinter(stdout).PrintError(err)
	}
	return ExitCodeFromError(err)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
