package cmd

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	srv "github.com/licethq/licet/internal/server"
	"github.com/spf13/cobra"
)

// serversCmd represents the servers command
var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "Inspect running licet server instances",
	Long: `Servers lists the instances registered under the licet home directory
and can probe each one's /health endpoint to report its state.`,
	RunE: runServersList,
}

var serversStatusCmd = &cobra.Command{
	Use:   "status [name]",
	Short: "Probe registered servers and report their state",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runServersStatus,
}

func init() {
	serversCmd.AddCommand(serversStatusCmd)
}

func runServersList(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	infos, err := srv.List()
	if err != nil {
		return err
	}

	if len(infos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No registered servers found.")
		return nil
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tHOST\tPORT\tPID\tVERSION\tSTARTED")
	for _, info := range infos {
		started := "-"
		if !info.StartedAt.IsZero() {
			started = info.StartedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			info.Name,
			dashIfEmpty(info.Host),
			info.Port,
			info.PID,
			dashIfEmpty(info.Version),
			started,
		)
	}
	return tw.Flush()
}

func runServersStatus(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	var targets []srv.Info

	switch len(args) {
	case 0:
		infos, err := srv.List()
		if err != nil {
			return err
		}
		targets = infos
	case 1:
		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("server name cannot be empty")
		}
		info, err := srv.Load(name)
		if err != nil {
			return err
		}
		if info == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "No metadata found for server %q.\n", name)
			return nil
		}
		targets = append(targets, *info)
	}

	if len(targets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No registered servers found.")
		return nil
	}

	client := &http.Client{Timeout: 2 * time.Second}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPORT\tSTATE\tVERSION\tDETAILS")

	for _, info := range targets {
		state := "unknown"
		version := dashIfEmpty(info.Version)
		details := ""

		if info.Port <= 0 {
			state = "invalid"
			details = "metadata missing port"
		} else {
			health, err := srv.ProbeHealth(info, client)
			if err != nil {
				state = "unreachable"
				details = err.Error()
			} else {
				state = health.Status
				if health.Version != "" {
					version = health.Version
				}
				if !info.StartedAt.IsZero() {
					details = fmt.Sprintf("started %s", info.StartedAt.Format(time.RFC3339))
				}
			}
		}

		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			info.Name,
			info.Port,
			state,
			version,
			dashIfEmpty(details),
		)
	}

	return tw.Flush()
}

func dashIfEmpty(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
