package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sigreer/pactlgod/internal/config"
	"github.com/sigreer/pactlgod/internal/pactl"
	"github.com/sigreer/pactlgod/internal/presets"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage virtual device presets",
	Long: `Manage the presets used by 'pactlgod create'.

The built-in presets Stereo, Mono, 5.1 Surround, 7.1 Surround and Custom
are always available and cannot be changed or deleted. User presets are
kept in the database.`,
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all presets",
	Run:   runPresetsList,
}

var presetsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one preset",
	Args:  cobra.ExactArgs(1),
	Run:   runPresetsShow,
}

var presetsSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a user preset",
	Args:  cobra.ExactArgs(1),
	Run:   runPresetsSave,
}

var presetsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a user preset",
	Args:  cobra.ExactArgs(1),
	Run:   runPresetsDelete,
}

var presetsExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Write a preset as JSON",
	Args:  cobra.ExactArgs(1),
	Run:   runPresetsExport,
}

var presetsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a preset written by 'presets export' (- for stdin)",
	Args:  cobra.ExactArgs(1),
	Run:   runPresetsImport,
}

func init() {
	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsShowCmd)
	presetsCmd.AddCommand(presetsSaveCmd)
	presetsCmd.AddCommand(presetsDeleteCmd)
	presetsCmd.AddCommand(presetsExportCmd)
	presetsCmd.AddCommand(presetsImportCmd)

	presetsShowCmd.Flags().Bool("json", false, "Output as JSON")

	presetsSaveCmd.Flags().Int("channels", 2, "number of channels")
	presetsSaveCmd.Flags().String("channel-map", "", "comma separated channel positions")
	presetsSaveCmd.Flags().String("description", "", "device description")
	presetsSaveCmd.Flags().Int("rate", 0, "sample rate in Hz")
	presetsSaveCmd.Flags().String("format", "", "sample format")
	presetsSaveCmd.Flags().String("sink-properties", "", "extra sink properties")

	presetsExportCmd.Flags().StringP("output", "o", "", "file to write (default stdout)")
}

func openStore() (*presets.Store, *config.Config, func()) {
	cfg, _ := loadEnv()
	database := openDB(cfg)
	return presets.NewStore(database), cfg, func() { database.Close() }
}

func runPresetsList(cmd *cobra.Command, args []string) {
	store, _, closeStore := openStore()
	defer closeStore()

	names, err := store.Names()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing presets: %v\n", err)
		exit(1)
	}
	all, err := store.All()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing presets: %v\n", err)
		exit(1)
	}

	fmt.Printf("%-20s %-9s %-9s %s\n", "NAME", "CHANNELS", "BUILTIN", "DESCRIPTION")
	fmt.Println(strings.Repeat("-", 70))
	for _, name := range names {
		p := all[name]
		builtin := ""
		if p.Builtin {
			builtin = "yes"
		}
		fmt.Printf("%-20s %-9d %-9s %s\n", name, p.Channels, builtin, p.Description)
	}
}

func runPresetsShow(cmd *cobra.Command, args []string) {
	jsonOut, _ := cmd.Flags().GetBool("json")
	store, cfg, closeStore := openStore()
	defer closeStore()

	p, err := store.Get(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}

	if jsonOut {
		if err := pactl.PrintJSON(os.Stdout, p); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
			exit(1)
		}
		return
	}

	fmt.Printf("%-20s %s\n", "Name", args[0])
	fmt.Printf("%-20s %d\n", "Channels", p.Channels)
	if p.ChannelMap != "" {
		fmt.Printf("%-20s %s\n", "Channel Map", p.ChannelMap)
	}
	if p.Description != "" {
		fmt.Printf("%-20s %s\n", "Description", p.Description)
	}
	if p.Rate != nil {
		fmt.Printf("%-20s %d\n", "Rate", *p.Rate)
	}
	if p.Format != nil {
		fmt.Printf("%-20s %s\n", "Format", *p.Format)
	}
	if p.Properties != nil {
		fmt.Printf("%-20s %s\n", "Sink Properties", *p.Properties)
	}
	fmt.Printf("%-20s %t\n", "Builtin", p.Builtin)
	fmt.Printf("%-20s %s\n", "Command", pactl.CommandPreview(cfg.PactlPath, p.Spec(presets.BaseName(args[0]))))
}

func runPresetsSave(cmd *cobra.Command, args []string) {
	flags := cmd.Flags()
	var p presets.Preset
	p.Channels, _ = flags.GetInt("channels")
	p.ChannelMap, _ = flags.GetString("channel-map")
	p.Description, _ = flags.GetString("description")
	if flags.Changed("rate") {
		rate, _ := flags.GetInt("rate")
		p.Rate = &rate
	}
	if flags.Changed("format") {
		format, _ := flags.GetString("format")
		p.Format = &format
	}
	if flags.Changed("sink-properties") {
		props, _ := flags.GetString("sink-properties")
		p.Properties = &props
	}

	store, _, closeStore := openStore()
	defer closeStore()

	if err := store.Save(args[0], p); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving preset: %v\n", err)
		exit(1)
	}
	fmt.Printf("Saved preset %s\n", args[0])
}

func runPresetsDelete(cmd *cobra.Command, args []string) {
	store, _, closeStore := openStore()
	defer closeStore()

	if err := store.Delete(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting preset: %v\n", err)
		exit(1)
	}
	fmt.Printf("Deleted preset %s\n", args[0])
}

func runPresetsExport(cmd *cobra.Command, args []string) {
	output, _ := cmd.Flags().GetString("output")
	store, _, closeStore := openStore()
	defer closeStore()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", output, err)
			exit(1)
		}
		defer f.Close()
		w = f
	}

	if err := store.Export(args[0], w); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting preset: %v\n", err)
		exit(1)
	}
}

func runPresetsImport(cmd *cobra.Command, args []string) {
	store, _, closeStore := openStore()
	defer closeStore()

	var r io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", args[0], err)
			exit(1)
		}
		defer f.Close()
		r = f
	}

	name, err := store.Import(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing preset: %v\n", err)
		exit(1)
	}
	fmt.Printf("Imported preset %s\n", name)
}
