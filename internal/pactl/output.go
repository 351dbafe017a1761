package pactl

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// PrintJSON outputs v as indented JSON
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintModules outputs modules as a table
func PrintModules(w io.Writer, modules []Module) {
	fmt.Fprintf(w, "%-6s %-28s %s\n", "ID", "NAME", "ARGUMENT")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, m := range modules {
		fmt.Fprintf(w, "%-6s %-28s %s\n", m.ID, m.Name, oneLine(m.Arg()))
	}
}

// PrintSinks outputs sinks as a table
func PrintSinks(w io.Writer, sinks []Sink) {
	fmt.Fprintf(w, "%-6s %-10s %-50s %s\n", "ID", "STATE", "NAME", "DESCRIPTION")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, s := range sinks {
		fmt.Fprintf(w, "%-6s %-10s %-50s %s\n", s.ID, deref(s.State), s.Name, deref(s.Description))
	}
}

// PrintSources outputs sources as a table
func PrintSources(w io.Writer, sources []Source) {
	fmt.Fprintf(w, "%-6s %-10s %-50s %s\n", "ID", "STATE", "NAME", "DESCRIPTION")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, s := range sources {
		fmt.Fprintf(w, "%-6s %-10s %-50s %s\n", s.ID, deref(s.State), s.Name, deref(s.Description))
	}
}

// PrintModuleDetail outputs every parsed field of a module
func PrintModuleDetail(w io.Writer, m *Module) {
	fmt.Fprintf(w, "Module #%s\n", m.ID)
	printField(w, "Name", m.Name)
	printPtrField(w, "Argument", m.Argument)
	printPtrField(w, "Usage Counter", m.UsageCounter)
	printFields(w, m.Fields)
	printProperties(w, m.Properties)
}

// PrintSinkDetail outputs every parsed field of a sink
func PrintSinkDetail(w io.Writer, s *Sink) {
	fmt.Fprintf(w, "Sink #%s\n", s.ID)
	printField(w, "Name", s.Name)
	printPtrField(w, "Description", s.Description)
	printPtrField(w, "Driver", s.Driver)
	printPtrField(w, "State", s.State)
	printPtrField(w, "Sample Spec", s.SampleSpec)
	printPtrField(w, "Channel Map", s.ChannelMap)
	printPtrField(w, "Owner Module", s.OwnerModule)
	printPtrField(w, "Mute", s.Mute)
	printPtrField(w, "Volume", s.Volume)
	printPtrField(w, "Base Volume", s.BaseVolume)
	printPtrField(w, "Monitor Source", s.MonitorSource)
	printPtrField(w, "Latency", s.Latency)
	printPtrField(w, "Flags", s.Flags)
	printFields(w, s.Fields)
	printProperties(w, s.Properties)
	printFormats(w, s.Formats)
}

// PrintSourceDetail outputs every parsed field of a source
func PrintSourceDetail(w io.Writer, s *Source) {
	fmt.Fprintf(w, "Source #%s\n", s.ID)
	printField(w, "Name", s.Name)
	printPtrField(w, "Description", s.Description)
	printPtrField(w, "Driver", s.Driver)
	printPtrField(w, "State", s.State)
	printPtrField(w, "Sample Spec", s.SampleSpec)
	printPtrField(w, "Channel Map", s.ChannelMap)
	printPtrField(w, "Owner Module", s.OwnerModule)
	printPtrField(w, "Mute", s.Mute)
	printPtrField(w, "Volume", s.Volume)
	printPtrField(w, "Base Volume", s.BaseVolume)
	printPtrField(w, "Monitor of Sink", s.MonitorOfSink)
	printPtrField(w, "Latency", s.Latency)
	printPtrField(w, "Flags", s.Flags)
	printFields(w, s.Fields)
	printProperties(w, s.Properties)
	printFormats(w, s.Formats)
}

// printField prints a field if value is non-empty
func printField(w io.Writer, label, value string) {
	if value != "" {
		fmt.Fprintf(w, "  %-20s %s\n", label, value)
	}
}

// printPtrField prints a pointer field if non-nil
func printPtrField(w io.Writer, label string, value *string) {
	if value != nil && *value != "" {
		printField(w, label, oneLine(*value))
	}
}

// printFields prints unmapped keys in sorted order
func printFields(w io.Writer, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		printField(w, k, fields[k])
	}
}

func printProperties(w io.Writer, props Properties) {
	if props.Len() == 0 {
		return
	}
	fmt.Fprintln(w, "  Properties:")
	for _, k := range props.Keys() {
		fmt.Fprintf(w, "    %s = %q\n", k, props.Get(k))
	}
}

func printFormats(w io.Writer, formats []string) {
	if len(formats) == 0 {
		return
	}
	fmt.Fprintln(w, "  Formats:")
	for _, f := range formats {
		fmt.Fprintf(w, "    %s\n", f)
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
