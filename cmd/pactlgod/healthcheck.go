package main

import (
	"fmt"
	"os"

	"github.com/sigreer/pactlgod/internal/db"
	"github.com/sigreer/pactlgod/internal/devices"
	"github.com/sigreer/pactlgod/internal/health"
	"github.com/spf13/cobra"
)

var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check the sound server and local database",
	Long: `Perform a health check:
  - Verify pactl can reach the sound server
  - Report null-sink modules whose sink is gone
  - List sinks and sources that match no device
  - Confirm the default sink exists
  - Verify the preset and history database is migrated

Exits non-zero when the status is critical.`,
	Run: runHealthcheck,
}

func init() {
	healthcheckCmd.Flags().Bool("json", false, "Output as JSON")
}

func runHealthcheck(cmd *cobra.Command, args []string) {
	jsonOut, _ := cmd.Flags().GetBool("json")

	cfg, logger := loadEnv()

	// The check still runs without a database
	database, err := db.New(cfg.Database)
	if err != nil {
		logger.Warnw("Could not open database", "path", cfg.Database, "error", err)
		database = nil
	}
	if database != nil {
		closers = append(closers, database)
		defer database.Close()
	}

	result := health.Check(cmd.Context(), newClient(cfg, logger), database, devices.Options{
		ShowSystemModules:  cfg.ShowSystemModules,
		ShowMonitorSources: cfg.ShowMonitorSources,
	})

	if jsonOut {
		if err := health.PrintJSON(os.Stdout, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
			exit(1)
		}
	} else {
		health.PrintText(os.Stdout, result)
	}

	if result.Status == health.StatusCritical {
		exit(2)
	}
}
