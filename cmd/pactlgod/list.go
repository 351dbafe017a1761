package main

import (
	"fmt"
	"os"

	"github.com/sigreer/pactlgod/internal/pactl"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:       "list <sinks|sources|modules>",
	Short:     "List one kind of entity as reported by pactl",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"sinks", "sources", "modules"},
	Run:       runList,
}

var detailCmd = &cobra.Command{
	Use:   "detail <sink|source|module> <id|name>",
	Short: "Show every field of one sink, source or module",
	Long: `Show every field of one sink, source or module.

Examples:
  pactlgod detail sink 52
  pactlgod detail source alsa_input.usb-BEHRINGER_UMC404HD_192k-00.pro-input-0
  pactlgod detail module 536870913 --json`,
	Args: cobra.ExactArgs(2),
	Run:  runDetail,
}

func init() {
	listCmd.Flags().Bool("json", false, "Output as JSON")
	detailCmd.Flags().Bool("json", false, "Output as JSON")
}

func runList(cmd *cobra.Command, args []string) {
	jsonOut, _ := cmd.Flags().GetBool("json")
	cfg, logger := loadEnv()
	client := newClient(cfg, logger)
	ctx := cmd.Context()

	var value any
	switch args[0] {
	case "sinks":
		sinks := client.ListSinks(ctx)
		if !jsonOut {
			pactl.PrintSinks(os.Stdout, sinks)
			return
		}
		value = sinks
	case "sources":
		sources := client.ListSources(ctx)
		if !jsonOut {
			pactl.PrintSources(os.Stdout, sources)
			return
		}
		value = sources
	case "modules":
		modules := client.ListModules(ctx)
		if !jsonOut {
			pactl.PrintModules(os.Stdout, modules)
			return
		}
		value = modules
	default:
		fmt.Fprintf(os.Stderr, "Unknown kind '%s' (expected sinks, sources or modules)\n", args[0])
		exit(1)
	}

	if err := pactl.PrintJSON(os.Stdout, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
		exit(1)
	}
}

func runDetail(cmd *cobra.Command, args []string) {
	kind, query := args[0], args[1]
	jsonOut, _ := cmd.Flags().GetBool("json")
	cfg, logger := loadEnv()
	client := newClient(cfg, logger)
	ctx := cmd.Context()

	var value any
	var show func()
	switch kind {
	case "sink":
		for _, s := range client.ListSinks(ctx) {
			if s.ID == query || s.Name == query {
				sink := &s
				value, show = sink, func() { pactl.PrintSinkDetail(os.Stdout, sink) }
				break
			}
		}
	case "source":
		for _, s := range client.ListSources(ctx) {
			if s.ID == query || s.Name == query {
				source := &s
				value, show = source, func() { pactl.PrintSourceDetail(os.Stdout, source) }
				break
			}
		}
	case "module":
		for _, m := range client.ListModules(ctx) {
			if m.ID == query || m.Name == query {
				module := &m
				value, show = module, func() { pactl.PrintModuleDetail(os.Stdout, module) }
				break
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown kind '%s' (expected sink, source or module)\n", kind)
		exit(1)
	}

	if show == nil {
		fmt.Fprintf(os.Stderr, "Not found: %s %s\n", kind, query)
		exit(1)
	}

	if jsonOut {
		if err := pactl.PrintJSON(os.Stdout, value); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
			exit(1)
		}
		return
	}
	show()
}
