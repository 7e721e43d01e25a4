package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/shopplan/cmd/shopplan/commands"
	"github.com/teranos/shopplan/logger"
)

var rootCmd = &cobra.Command{
	Use:   "shopplan",
	Short: "shopplan - batch production scheduler for the shop floor",
	Long: `shopplan - deterministic batch scheduling for manufacturing teams.

shopplan assigns pending production tasks to qualified employees and
workstations across a multi-day calendar, then replaces the persisted
schedule wholesale. One invocation is one full-batch computation.

Available commands:
  run     - Compute a schedule and persist it
  db      - Manage the shopplan database
  config  - Show effective configuration
  version - Show version information

Examples:
  shopplan run                  # Load snapshot, schedule, persist
  shopplan run --dry-run        # Schedule without persisting
  shopplan db migrate           # Apply pending schema migrations
  shopplan config show          # Show effective configuration`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json-logs")
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit logs as JSON instead of console output")

	rootCmd.AddCommand(commands.RunCmd)
	rootCmd.AddCommand(commands.DbCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
