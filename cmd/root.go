package cmd

import (
	"os"
	"strings"

	"github.com/licethq/licet/pkg/buildinfo"
	"github.com/licethq/licet/pkg/exitcode"
	"github.com/licethq/licet/pkg/logger"
	"github.com/spf13/cobra"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "licet",
		Short: "License compliance scanner for multi-language projects",
		Long: `Licet discovers dependency manifests across a project tree, classifies
each dependency's license into a risk tier, and reports compliance issues.

Examples:
   licet scan .                # Scan the current project
   licet scan . --format json  # Machine-readable report
   licet scan . --fail-on high # Gate CI on high-risk licenses
   licet licenses              # Show the built-in risk table
   licet serve                 # Run the HTTP scanning API`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json-logs", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Wire Cobra's built-in --version using licet's binary version
	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("licet {{.Version}}\n")

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// This is called from init() for production and can be called explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(scanCmd)
	cmd.AddCommand(licensesCmd)
	cmd.AddCommand(serveCmd)
	cmd.AddCommand(serversCmd)
	cmd.AddCommand(versionCmd)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

func init() {
	registerSubcommands(rootCmd)
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	noColor, _ := cmd.Flags().GetBool("no-color")

	logLevel := logger.ParseLevel(strings.ToLower(logLevelStr))

	config := logger.Config{
		Level:     logLevel,
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "licet",
	}

	if err := logger.Initialize(config); err != nil {
		if _, writeErr := os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n"); writeErr != nil {
			_ = writeErr
		}
		os.Exit(exitcode.ConfigError)
	}
}
