package main

import (
	"fmt"
	"os"

	"github.com/sigreer/pactlgod/internal/devices"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Show modules, sinks and sources grouped by device",
	Long: `Group everything pactl reports into devices.

Virtual devices are null sinks together with their monitor source.
Hardware sinks and sources are grouped by the card their ALSA name points
at and filed under Built-in, USB, Bluetooth or HDMI/DisplayPort. Anything
that cannot be matched is listed on its own.`,
	Run: runDevices,
}

func init() {
	devicesCmd.Flags().Bool("json", false, "Output as JSON")
	devicesCmd.Flags().Bool("show-system", false, "Include modules that belong to no device")
	devicesCmd.Flags().Bool("show-monitors", false, "Include monitor sources of hardware sinks")
}

func runDevices(cmd *cobra.Command, args []string) {
	jsonOut, _ := cmd.Flags().GetBool("json")
	showSystem, _ := cmd.Flags().GetBool("show-system")
	showMonitors, _ := cmd.Flags().GetBool("show-monitors")

	cfg, logger := loadEnv()
	client := newClient(cfg, logger)

	snap := client.Snapshot(cmd.Context())
	tree := devices.Categorize(snap.Modules, snap.Sinks, snap.Sources, devices.Options{
		ShowSystemModules:  cfg.ShowSystemModules || showSystem,
		ShowMonitorSources: cfg.ShowMonitorSources || showMonitors,
	})

	if jsonOut {
		if err := devices.PrintJSON(os.Stdout, tree); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
			exit(1)
		}
		return
	}
	devices.PrintTree(os.Stdout, tree)
}
