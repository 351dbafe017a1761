package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sigreer/pactlgod/internal/db"
	"github.com/sigreer/pactlgod/internal/pactl"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent create and unload operations",
	Run:   runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 50, "Maximum number of events to show")
	historyCmd.Flags().String("action", "", "Filter by action (create, unload, unload_all)")
	historyCmd.Flags().Bool("json", false, "Output as JSON")
}

func runHistory(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	action, _ := cmd.Flags().GetString("action")
	jsonOut, _ := cmd.Flags().GetBool("json")

	cfg, _ := loadEnv()
	database := openDB(cfg)
	defer database.Close()

	var events []*db.MutationEvent
	var err error
	if action != "" {
		events, err = database.GetEventsByAction(action, limit)
	} else {
		events, err = database.GetRecentEvents(limit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error querying history: %v\n", err)
		exit(1)
	}

	if jsonOut {
		if err := pactl.PrintJSON(os.Stdout, events); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
			exit(1)
		}
		return
	}

	if len(events) == 0 {
		fmt.Println("No history recorded yet.")
		return
	}

	fmt.Printf("%-20s %-11s %-24s %-5s %s\n", "TIME", "ACTION", "TARGET", "EXIT", "OUTPUT")
	fmt.Println(strings.Repeat("-", 90))
	for _, e := range events {
		fmt.Printf("%-20s %-11s %-24s %-5d %s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Action, e.Target, e.ExitCode, firstLine(e.Output))
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
