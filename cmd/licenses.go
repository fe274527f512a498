package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/licethq/licet/pkg/ascii"
	"github.com/licethq/licet/pkg/compliance"
	"github.com/spf13/cobra"
)

// licensesCmd represents the licenses command
var licensesCmd = &cobra.Command{
	Use:   "licenses",
	Short: "Show the built-in license risk table",
	Long: `Licenses prints every license identifier the scanner recognizes along
with its risk tier and the rationale behind the classification.`,
	RunE: runLicenses,
}

func init() {
	licensesCmd.Flags().Bool("json", false, "Output the table in JSON format")
	licensesCmd.Flags().String("tier", "", "Only show licenses in this tier (low, medium, high)")
}

func runLicenses(cmd *cobra.Command, _ []string) error {
	tierFilter, _ := cmd.Flags().GetString("tier")
	if tierFilter != "" && compliance.RiskTier(tierFilter).SeverityRank() < 0 {
		return fmt.Errorf("invalid tier %q (supported: low, medium, unknown, high)", tierFilter)
	}

	table := compliance.DefaultRiskTable()
	out := cmd.OutOrStdout()

	type entry struct {
		License   string              `json:"license"`
		Tier      compliance.RiskTier `json:"tier"`
		Rationale string              `json:"rationale"`
	}

	entries := []entry{}
	for _, identifier := range table.Known() {
		risk, ok := table.Lookup(identifier)
		if !ok {
			continue
		}
		if tierFilter != "" && risk.Tier != compliance.RiskTier(tierFilter) {
			continue
		}
		entries = append(entries, entry{License: identifier, Tier: risk.Tier, Rationale: risk.Rationale})
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	rows := [][]string{{"LICENSE", "TIER", "RATIONALE"}}
	for _, e := range entries {
		rows = append(rows, []string{e.License, string(e.Tier), ascii.Truncate(e.Rationale, 60)})
	}
	fmt.Fprint(out, ascii.Table(rows))
	return nil
}
