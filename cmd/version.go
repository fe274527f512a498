package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/licethq/licet/pkg/buildinfo"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("extended", false, "Show detailed build information")
	versionCmd.Flags().Bool("json", false, "Output version information in JSON format")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	extended, _ := cmd.Flags().GetBool("extended")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	out := cmd.OutOrStdout()

	if jsonOutput {
		info := map[string]string{
			"version": buildinfo.BinaryVersion,
		}
		if extended {
			info["module_version"] = buildinfo.ModuleVersion()
			info["go_version"] = runtime.Version()
			info["platform"] = runtime.GOOS + "/" + runtime.GOARCH
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintf(out, "licet %s\n", buildinfo.BinaryVersion)
	if extended {
		fmt.Fprintf(out, "module:   %s\n", buildinfo.ModuleVersion())
		fmt.Fprintf(out, "go:       %s\n", runtime.Version())
		fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}
	return nil
}
