package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/licethq/licet/pkg/ascii"
	"github.com/licethq/licet/pkg/compliance"
	"github.com/licethq/licet/pkg/compliance/policy"
	"github.com/licethq/licet/pkg/config"
	"github.com/licethq/licet/pkg/exitcode"
	"github.com/licethq/licet/pkg/logger"
	"github.com/licethq/licet/pkg/scan"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [target]",
	Short: "Scan a project tree for license compliance",
	Long: `Scan discovers dependency manifests (package.json, requirements.txt,
pyproject.toml, pom.xml, Cargo.toml, go.mod) under the target directory,
classifies every dependency's license into a risk tier, and prints an
aggregated compliance report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().String("format", "table", "Output format (table, json)")
	scanCmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	scanCmd.Flags().String("policy", "", "Path to an organization policy file")
	scanCmd.Flags().String("fail-on", "", "Exit non-zero when project risk reaches this tier (low, medium, unknown, high)")
	scanCmd.Flags().Int("max-depth", 0, "Maximum directory depth for manifest discovery")
	scanCmd.Flags().Bool("no-resolve", false, "Skip local license resolution (node_modules metadata)")
}

func runScan(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	format := stringFlag(cmd.Flags(), "format")
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown format %q (supported: table, json)", format)
	}

	failOn := stringFlag(cmd.Flags(), "fail-on")
	if failOn != "" && compliance.RiskTier(failOn).SeverityRank() < 0 {
		return fmt.Errorf("invalid fail-on tier %q (supported: low, medium, unknown, high)", failOn)
	}

	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	if maxDepth <= 0 {
		maxDepth = cfg.Scan.MaxDepth
	}

	opts := []scan.Option{scan.WithMaxDepth(maxDepth)}

	if noResolve, _ := cmd.Flags().GetBool("no-resolve"); !noResolve {
		opts = append(opts, scan.WithResolver(scan.NewNodeModulesResolver(target)))
	}

	policyPath := stringFlag(cmd.Flags(), "policy")
	if policyPath == "" {
		policyPath = cfg.Scan.PolicyPath
	}
	if policyPath != "" {
		pol, err := policy.Load(policyPath)
		if err != nil {
			return err
		}
		opts = append(opts, scan.WithPolicy(pol))
		logger.Debug("policy loaded", logger.String("path", policyPath))
	}

	result, err := scan.New(opts...).ScanDirectory(cmd.Context(), target)
	if err != nil {
		logger.Error("scan failed", logger.String("target", target), logger.Err(err))
		os.Exit(exitcode.ScanError)
	}

	out := cmd.OutOrStdout()
	outputPath := stringFlag(cmd.Flags(), "output")
	if outputPath != "" {
		f, err := os.Create(outputPath) // #nosec G304 -- path supplied by operator
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if format == "json" {
		if err := writeJSON(out, result); err != nil {
			return err
		}
	} else {
		renderReport(out, result)
	}

	if failOn != "" && shouldFail(result.RiskLevel, compliance.RiskTier(failOn)) {
		logger.Warn("risk threshold exceeded",
			logger.String("risk_level", string(result.RiskLevel)),
			logger.String("fail_on", failOn))
		os.Exit(exitcode.PolicyViolation)
	}
	return nil
}

// stringFlag reads a string flag, treating lookup errors as empty.
func stringFlag(flags *pflag.FlagSet, name string) string {
	value, _ := flags.GetString(name)
	return value
}

// shouldFail reports whether the project's risk tier meets or exceeds
// the gating threshold.
func shouldFail(level, threshold compliance.RiskTier) bool {
	return level.SeverityRank() >= threshold.SeverityRank()
}

func writeJSON(w io.Writer, result *scan.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func renderReport(w io.Writer, result *scan.Result) {
	summary := []string{
		fmt.Sprintf("Project: %s", result.ProjectName),
		fmt.Sprintf("Scanned: %s", result.ScanDate.Format("2006-01-02 15:04:05 MST")),
		fmt.Sprintf("Dependencies: %d", result.TotalDependencies),
		fmt.Sprintf("Unique licenses: %d", result.UniqueLicenses),
		fmt.Sprintf("Languages: %s", strings.Join(result.Languages, ", ")),
		fmt.Sprintf("Risk level: %s", strings.ToUpper(string(result.RiskLevel))),
	}
	fmt.Fprint(w, ascii.Box(summary))
	fmt.Fprintln(w)

	if len(result.LicenseDistribution) > 0 {
		fmt.Fprintln(w, "License distribution:")
		total := 0
		for _, count := range result.LicenseDistribution {
			total += count
		}
		keys := make([]string, 0, len(result.LicenseDistribution))
		for key := range result.LicenseDistribution {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			count := result.LicenseDistribution[key]
			fmt.Fprintf(w, "  %-24s %3d (%.1f%%)\n", key, count, compliance.Percentage(count, total))
		}
		fmt.Fprintln(w)
	}

	if len(result.Dependencies) > 0 {
		rows := [][]string{{"PACKAGE", "VERSION", "LICENSE", "LANGUAGE", "RISK"}}
		for _, dep := range result.Dependencies {
			license := dep.License
			if license == "" {
				license = "-"
			}
			version := dep.Version
			if version == "" {
				version = "-"
			}
			rows = append(rows, []string{
				ascii.Truncate(dep.Name, 40),
				ascii.Truncate(version, 16),
				ascii.Truncate(license, 24),
				dep.Language,
				string(dep.Risk),
			})
		}
		fmt.Fprint(w, ascii.Table(rows))
		fmt.Fprintln(w)
	}

	if len(result.Issues) > 0 {
		fmt.Fprintln(w, "Issues:")
		for _, issue := range result.Issues {
			fmt.Fprintf(w, "  [%s] %s (%s)\n", issue.Severity, issue.Title, issue.Package)
			fmt.Fprintf(w, "        %s\n", issue.Description)
			fmt.Fprintf(w, "        Recommendation: %s\n", issue.Recommendation)
		}
	}
}
