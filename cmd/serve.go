package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/licethq/licet/internal/server"
	"github.com/licethq/licet/pkg/compliance/policy"
	"github.com/licethq/licet/pkg/config"
	"github.com/licethq/licet/pkg/logger"
	"github.com/licethq/licet/pkg/scan"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP scanning API",
	Long: `Serve starts an HTTP server exposing the scanner: GET /health for
liveness, POST /scan/path to scan a server-local directory, and
POST /scan/upload to scan uploaded manifests or a zip archive.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "", "Bind address (overrides config)")
	serveCmd.Flags().Int("port", 0, "Listen port (overrides config)")
	serveCmd.Flags().String("policy", "", "Path to an organization policy file")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Server.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}

	if !server.IsPortAvailable(cfg.Server.Port) {
		return fmt.Errorf("port %d is not available", cfg.Server.Port)
	}

	opts := []scan.Option{scan.WithMaxDepth(cfg.Scan.MaxDepth)}
	policyPath, _ := cmd.Flags().GetString("policy")
	if policyPath == "" {
		policyPath = cfg.Scan.PolicyPath
	}
	if policyPath != "" {
		pol, err := policy.Load(policyPath)
		if err != nil {
			return err
		}
		opts = append(opts, scan.WithPolicy(pol))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting server",
		logger.String("host", cfg.Server.Host),
		logger.Int("port", cfg.Server.Port))
	return server.New(cfg, scan.New(opts...)).Run(ctx)
}
