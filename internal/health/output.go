package health

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// PrintJSON outputs the result as indented JSON
func PrintJSON(w io.Writer, result *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// PrintText outputs a human-readable summary of the result
func PrintText(w io.Writer, result *Result) {
	symbol := "✓"
	switch result.Status {
	case StatusWarning:
		symbol = "⚠"
	case StatusCritical:
		symbol = "✗"
	}

	fmt.Fprintf(w, "\n%s Health Check: %s\n", symbol, strings.ToUpper(string(result.Status)))
	fmt.Fprintf(w, "  Timestamp: %s (took %dms)\n", result.Timestamp.Format("2006-01-02 15:04:05"), result.ScanDurationMs)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Sound server:")
	if result.Server != "" {
		fmt.Fprintf(w, "  Server: %s\n", result.Server)
	}
	if result.DefaultSink != "" {
		fmt.Fprintf(w, "  Default sink: %s\n", result.DefaultSink)
	}
	if result.DefaultSource != "" {
		fmt.Fprintf(w, "  Default source: %s\n", result.DefaultSource)
	}
	fmt.Fprintf(w, "  Modules: %d | Sinks: %d | Sources: %d | Virtual devices: %d\n",
		result.Modules, result.Sinks, result.Sources, result.VirtualDevices)
	if len(result.Orphans) > 0 {
		fmt.Fprintf(w, "  ? Unmatched: %s\n", strings.Join(result.Orphans, ", "))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Database:")
	fmt.Fprintf(w, "  Schema version: %d\n", result.SchemaVersion)
	fmt.Fprintln(w)

	for _, a := range result.Alerts {
		if a.Severity == SeverityInfo {
			continue
		}
		fmt.Fprintf(w, "  [%s] %s\n", a.Severity, a.Message)
	}

	if len(result.Alerts) > 0 {
		critical, warning := result.Counts()
		fmt.Fprintf(w, "Alerts: %d critical, %d warnings\n", critical, warning)
	}
}
