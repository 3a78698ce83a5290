package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmusapp/cosmus-go/internal/client"
	"github.com/cosmusapp/cosmus-go/internal/metrics"
)

var usageServer string

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show runtime statistics from a running server",
	Long: `Show in-memory runtime statistics from a running cosmus-server instance.

Examples:
  cosmus usage
  cosmus usage --server http://localhost:8787`,
	RunE: runUsage,
}

func init() {
	usageCmd.Flags().StringVar(&usageServer, "server", "", "server base URL (default from COSMUS_SERVER_URL)")
}

func runUsage(cmd *cobra.Command, args []string) error {
	endpoint := usageServer
	if endpoint == "" {
		endpoint = cfg.ServerURL
	}
	api := client.New(endpoint)

	snap, err := api.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("get server stats: %w", err)
	}

	fmt.Printf("Server Statistics (in-memory, since restart)\n")
	fmt.Printf("═══════════════════════════════════════════════\n")
	fmt.Printf("Uptime: %.1f seconds\n", snap.UptimeSeconds)

	printOpStats("Model Turns", snap.LLMSend)
	printOpStats("Greetings", snap.LLMGreet)
	printOpStats("Archive Searches", snap.ArchiveSearch)
	printOpStats("Manifest Fetches", snap.ManifestFetch)
	return nil
}

// printOpStats displays timing statistics for an operation, skipping
// operations that never ran.
func printOpStats(label string, op *metrics.OperationSnapshot) {
	if op == nil {
		return
	}
	fmt.Printf("\n%s:\n", label)
	fmt.Printf("  Calls: %d, Errors: %d, Total: %dms\n", op.Count, op.Errors, op.TotalTimeMs)
	fmt.Printf("  Time: avg %.1fms, min %dms, max %dms\n",
		op.AvgTimeMs, op.MinTimeMs, op.MaxTimeMs)
}
