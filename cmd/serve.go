package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/huangsam/slotpulse/internal/httpapi"
)

// serveCmd starts the read-only HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve productivity reports over HTTP",
	Long: `Start a read-only JSON API over the configured record store.

Endpoints accept the same filters as the CLI as query parameters
(stores, start, end, weekdays, granularity, shift_types, limit):

  GET /slots     per-slot productivity and totals
  GET /heatmap   weekday by slot matrix
  GET /insights  staffing recommendations
  GET /stores    stores ranked by monthly productivity
  GET /daily     most recent calendar days
  GET /summary   headline numbers and dropped record counts
  GET /healthz   record store health and dataset version

Examples:
  # Serve on the default address
  slotpulse serve

  # Serve hourly slots by default on all interfaces
  slotpulse serve --listen 0.0.0.0:8080 --granularity 60`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return httpapi.Serve(ctx, cfg, records, cacheManager)
	},
}
