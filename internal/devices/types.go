package devices

import "github.com/sigreer/pactlgod/internal/pactl"

// DeviceType is the hardware category a device is filed under
type DeviceType string

const (
	TypeBuiltin   DeviceType = "builtin"
	TypeUSB       DeviceType = "usb"
	TypeBluetooth DeviceType = "bluetooth"
	TypeHDMI      DeviceType = "hdmi"
	TypeUnknown   DeviceType = "unknown"
)

// HardwareOrder is the fixed order hardware categories are presented in
var HardwareOrder = []DeviceType{TypeBuiltin, TypeUSB, TypeBluetooth, TypeHDMI}

// Title returns the heading shown for a hardware category
func (t DeviceType) Title() string {
	switch t {
	case TypeBuiltin:
		return "Built-in Audio"
	case TypeUSB:
		return "USB Audio"
	case TypeBluetooth:
		return "Bluetooth Audio"
	case TypeHDMI:
		return "HDMI/DisplayPort"
	}
	return "Unknown"
}

// GroupKind describes how a DeviceGroup was formed
type GroupKind string

const (
	KindVirtual        GroupKind = "virtual_device"
	KindHardware       GroupKind = "hardware_device_group"
	KindOrphanedSink   GroupKind = "orphaned_sink"
	KindOrphanedSource GroupKind = "orphaned_source"
	KindSystemModule   GroupKind = "system_module"
)

// DeviceGroup correlates the modules, sinks and sources believed to be
// one logical or physical device. Key is only meaningful within the
// Categorize call that produced it.
type DeviceGroup struct {
	Key        string         `json:"key"`
	Name       string         `json:"name"`
	Kind       GroupKind      `json:"kind"`
	DeviceType DeviceType     `json:"device_type"`
	Modules    []pactl.Module `json:"modules,omitempty"`
	Sinks      []pactl.Sink   `json:"sinks,omitempty"`
	Sources    []pactl.Source `json:"sources,omitempty"`

	info *DeviceInfo
}

// Size returns the number of entities in the group
func (g *DeviceGroup) Size() int {
	return len(g.Modules) + len(g.Sinks) + len(g.Sources)
}

// Category holds the hardware groups of one DeviceType
type Category struct {
	Type   DeviceType     `json:"type"`
	Title  string         `json:"title"`
	Groups []*DeviceGroup `json:"groups"`
}

// Options carries the visibility toggles that affect categorization
type Options struct {
	ShowSystemModules  bool
	ShowMonitorSources bool
}

// Tree is the categorized result of one correlation pass
type Tree struct {
	Virtual  []*DeviceGroup `json:"virtual"`
	Hardware []Category     `json:"hardware"`
	System   []*DeviceGroup `json:"system,omitempty"`

	ModuleCount    int `json:"module_count"`
	SinkCount      int `json:"sink_count"`
	SourceCount    int `json:"source_count"`
	HiddenMonitors int `json:"hidden_monitors"`
}

// Category returns the groups filed under t
func (t *Tree) Category(dt DeviceType) []*DeviceGroup {
	for _, c := range t.Hardware {
		if c.Type == dt {
			return c.Groups
		}
	}
	return nil
}

// Groups returns every group in presentation order
func (t *Tree) Groups() []*DeviceGroup {
	var all []*DeviceGroup
	all = append(all, t.Virtual...)
	for _, c := range t.Hardware {
		all = append(all, c.Groups...)
	}
	all = append(all, t.System...)
	return all
}

// Orphans returns the singleton groups of uncorrelated sinks and sources
func (t *Tree) Orphans() []*DeviceGroup {
	var orphans []*DeviceGroup
	for _, g := range t.Groups() {
		if g.Kind == KindOrphanedSink || g.Kind == KindOrphanedSource {
			orphans = append(orphans, g)
		}
	}
	return orphans
}
