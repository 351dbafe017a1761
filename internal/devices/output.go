package devices

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sigreer/pactlgod/internal/pactl"
)

// PrintJSON outputs the device tree as JSON
func PrintJSON(w io.Writer, tree *Tree) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tree)
}

// PrintTree outputs the device tree as indented text
func PrintTree(w io.Writer, tree *Tree) {
	if len(tree.Virtual) > 0 {
		fmt.Fprintln(w, "Virtual Devices")
		for _, g := range tree.Virtual {
			printGroup(w, g)
		}
		fmt.Fprintln(w)
	}

	for _, cat := range tree.Hardware {
		if len(cat.Groups) == 0 {
			continue
		}
		fmt.Fprintln(w, cat.Title)
		for _, g := range cat.Groups {
			printGroup(w, g)
		}
		fmt.Fprintln(w)
	}

	if len(tree.System) > 0 {
		fmt.Fprintln(w, "System Modules")
		for _, g := range tree.System {
			fmt.Fprintf(w, "  %s (#%s)\n", g.Name, moduleIDs(g.Modules))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Found %d modules, %d sinks, %d sources\n", tree.ModuleCount, tree.SinkCount, tree.SourceCount)
	if tree.HiddenMonitors > 0 {
		fmt.Fprintf(w, "%d monitor sources hidden (use --show-monitors)\n", tree.HiddenMonitors)
	}
}

func printGroup(w io.Writer, g *DeviceGroup) {
	fmt.Fprintf(w, "  %s\n", g.Name)
	for _, m := range g.Modules {
		fmt.Fprintf(w, "    %-10s %s (#%s)\n", "Module:", m.Name, m.ID)
	}
	for _, s := range g.Sinks {
		fmt.Fprintf(w, "    %-10s %s (#%s)\n", "Output:", s.DisplayName(), s.ID)
	}
	for _, s := range g.Sources {
		fmt.Fprintf(w, "    %-10s %s (#%s)\n", sourceLabel(&s), s.DisplayName(), s.ID)
	}
}

func sourceLabel(s *pactl.Source) string {
	if isMonitorName(s.Name) {
		return "Monitor:"
	}
	return "Input:"
}

func moduleIDs(modules []pactl.Module) string {
	ids := make([]string, 0, len(modules))
	for _, m := range modules {
		ids = append(ids, m.ID)
	}
	return strings.Join(ids, ", #")
}
