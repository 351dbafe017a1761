package health

import (
	"context"
	"fmt"
	"time"

	"github.com/sigreer/pactlgod/internal/db"
	"github.com/sigreer/pactlgod/internal/devices"
	"github.com/sigreer/pactlgod/internal/pactl"
)

// Status is the overall outcome of a health check
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Severity ranks an individual alert
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert is one finding of a health check
type Alert struct {
	Severity Severity `json:"severity"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
	Details  any      `json:"details,omitempty"`
}

// Result contains the complete health check output
type Result struct {
	Timestamp      time.Time `json:"timestamp"`
	Status         Status    `json:"status"`
	Server         string    `json:"server,omitempty"`
	DefaultSink    string    `json:"default_sink,omitempty"`
	DefaultSource  string    `json:"default_source,omitempty"`
	Modules        int       `json:"modules"`
	Sinks          int       `json:"sinks"`
	Sources        int       `json:"sources"`
	VirtualDevices int       `json:"virtual_devices"`
	Orphans        []string  `json:"orphans,omitempty"`
	SchemaVersion  int       `json:"schema_version"`
	Alerts         []Alert   `json:"alerts"`
	ScanDurationMs int64     `json:"scan_duration_ms"`
}

// Lister is the part of the pactl client a health check needs
type Lister interface {
	Info(ctx context.Context) (map[string]string, error)
	Snapshot(ctx context.Context) *pactl.Snapshot
}

func (r *Result) add(a Alert) {
	r.Alerts = append(r.Alerts, a)
	switch a.Severity {
	case SeverityCritical:
		r.Status = StatusCritical
	case SeverityWarning:
		if r.Status == StatusHealthy {
			r.Status = StatusWarning
		}
	}
}

// Check probes the sound server and the local database. A nil database
// is reported as a warning; the remaining checks still run.
func Check(ctx context.Context, lister Lister, database *db.DB, opts devices.Options) *Result {
	start := time.Now()
	result := &Result{
		Timestamp: start,
		Status:    StatusHealthy,
		Alerts:    []Alert{},
	}

	info, err := lister.Info(ctx)
	if err != nil {
		result.add(Alert{
			Severity: SeverityCritical,
			Category: "server_unreachable",
			Message:  fmt.Sprintf("Sound server not reachable: %v", err),
		})
	} else {
		result.Server = info["server_name"]
		result.DefaultSink = info["default_sink"]
		result.DefaultSource = info["default_source"]

		checkListing(result, lister.Snapshot(ctx), opts)
	}

	checkDatabase(result, database)

	result.ScanDurationMs = time.Since(start).Milliseconds()
	return result
}

func checkListing(result *Result, snap *pactl.Snapshot, opts devices.Options) {
	result.Modules = len(snap.Modules)
	result.Sinks = len(snap.Sinks)
	result.Sources = len(snap.Sources)

	if result.Modules == 0 && result.Sinks == 0 && result.Sources == 0 {
		result.add(Alert{
			Severity: SeverityWarning,
			Category: "empty_listing",
			Message:  "Server reachable but no modules, sinks or sources were listed",
		})
		return
	}

	tree := devices.Categorize(snap.Modules, snap.Sinks, snap.Sources, opts)
	result.VirtualDevices = len(tree.Virtual)

	for _, g := range tree.Virtual {
		if len(g.Sinks) == 0 {
			result.add(Alert{
				Severity: SeverityWarning,
				Category: "virtual_incomplete",
				Message:  fmt.Sprintf("Null-sink module for %s has no sink", g.Key),
				Details:  map[string]any{"key": g.Key, "modules": len(g.Modules)},
			})
		}
	}

	for _, cat := range tree.Hardware {
		for _, g := range cat.Groups {
			if g.Kind != devices.KindOrphanedSink && g.Kind != devices.KindOrphanedSource {
				continue
			}
			result.Orphans = append(result.Orphans, g.Name)
			result.add(Alert{
				Severity: SeverityInfo,
				Category: "orphan_device",
				Message:  fmt.Sprintf("%s could not be matched to a device", g.Name),
				Details:  map[string]any{"key": g.Key, "type": g.DeviceType},
			})
		}
	}

	if result.DefaultSink != "" && !hasSink(snap.Sinks, result.DefaultSink) {
		result.add(Alert{
			Severity: SeverityWarning,
			Category: "default_sink_missing",
			Message:  fmt.Sprintf("Default sink %s is not in the sink list", result.DefaultSink),
		})
	}
}

func hasSink(sinks []pactl.Sink, name string) bool {
	for _, s := range sinks {
		if s.Name == name {
			return true
		}
	}
	return false
}

func checkDatabase(result *Result, database *db.DB) {
	if database == nil {
		result.add(Alert{
			Severity: SeverityWarning,
			Category: "database_unavailable",
			Message:  "Database could not be opened; presets and history are unavailable",
		})
		return
	}

	version, err := database.SchemaVersion()
	if err != nil {
		result.add(Alert{
			Severity: SeverityCritical,
			Category: "database_error",
			Message:  fmt.Sprintf("Could not read schema version: %v", err),
		})
		return
	}
	result.SchemaVersion = version

	if version != db.LatestSchemaVersion() {
		result.add(Alert{
			Severity: SeverityWarning,
			Category: "schema_outdated",
			Message:  fmt.Sprintf("Database schema is v%d, expected v%d", version, db.LatestSchemaVersion()),
		})
	}
}

// Counts returns the number of critical and warning alerts
func (r *Result) Counts() (critical, warning int) {
	for _, a := range r.Alerts {
		switch a.Severity {
		case SeverityCritical:
			critical++
		case SeverityWarning:
			warning++
		}
	}
	return critical, warning
}
