package devices

import (
	"sort"
	"strings"

	"github.com/sigreer/pactlgod/internal/pactl"
)

// hardwareModuleTerms mark modules that drive physical devices
var hardwareModuleTerms = []string{"alsa", "bluetooth", "bluez", "usb", "hdmi"}

// claims records which entities of each listing have been placed.
// Entities are tracked by position since tool-assigned IDs are not keys.
type claims struct {
	modules []bool
	sinks   []bool
	sources []bool
}

func newClaims(modules []pactl.Module, sinks []pactl.Sink, sources []pactl.Source) *claims {
	return &claims{
		modules: make([]bool, len(modules)),
		sinks:   make([]bool, len(sinks)),
		sources: make([]bool, len(sources)),
	}
}

// hardwareGroups accumulates hardware device groups in first-seen order
type hardwareGroups struct {
	groups []*DeviceGroup
	byKey  map[string]*DeviceGroup
}

func newHardwareGroups() *hardwareGroups {
	return &hardwareGroups{byKey: make(map[string]*DeviceGroup)}
}

// groupByKey returns the group with info's device key, creating one if
// none exists. Sinks and sources are placed with this only.
func (h *hardwareGroups) groupByKey(info *DeviceInfo) *DeviceGroup {
	if g, ok := h.byKey[info.Key]; ok {
		return g
	}
	return h.add(info)
}

// groupFor is groupByKey with a DevicesMatch fallback, used for modules
func (h *hardwareGroups) groupFor(info *DeviceInfo) *DeviceGroup {
	if g, ok := h.byKey[info.Key]; ok {
		return g
	}

	for _, g := range h.groups {
		if DevicesMatch(info, g.info) {
			h.byKey[info.Key] = g
			return g
		}
	}

	return h.add(info)
}

func (h *hardwareGroups) add(info *DeviceInfo) *DeviceGroup {
	g := &DeviceGroup{
		Key:        info.Key,
		Name:       info.Name,
		Kind:       KindHardware,
		DeviceType: info.Type,
		info:       info,
	}
	h.groups = append(h.groups, g)
	h.byKey[info.Key] = g
	return g
}

// Categorize correlates one snapshot of modules, sinks and sources into
// a device tree. It is a pure function of its arguments: identical input
// always yields identical groups in identical order.
func Categorize(modules []pactl.Module, sinks []pactl.Sink, sources []pactl.Source, opts Options) *Tree {
	tree := &Tree{
		ModuleCount: len(modules),
		SinkCount:   len(sinks),
		SourceCount: len(sources),
	}
	c := newClaims(modules, sinks, sources)

	tree.Virtual = correlateVirtual(modules, sinks, sources, c)

	hw := correlateHardware(modules, sinks, sources, opts, c, tree)
	orphans := collectOrphans(sinks, sources, opts, c)

	for _, dt := range HardwareOrder {
		cat := Category{Type: dt, Title: dt.Title()}
		for _, g := range hw.groups {
			if g.DeviceType == dt {
				cat.Groups = append(cat.Groups, g)
			}
		}
		for _, g := range orphans {
			if g.DeviceType == dt {
				cat.Groups = append(cat.Groups, g)
			}
		}
		tree.Hardware = append(tree.Hardware, cat)
	}

	if opts.ShowSystemModules {
		for i := range modules {
			if c.modules[i] {
				continue
			}
			m := modules[i]
			tree.System = append(tree.System, &DeviceGroup{
				Key:        "module_" + m.ID,
				Name:       ModuleDisplayName(&m),
				Kind:       KindSystemModule,
				DeviceType: TypeUnknown,
				Modules:    []pactl.Module{m},
			})
			c.modules[i] = true
		}
	}

	return tree
}

// correlateVirtual groups null-sink modules with the sink they created
// and that sink's monitor source, keyed by the module's sink_name
func correlateVirtual(modules []pactl.Module, sinks []pactl.Sink, sources []pactl.Source, c *claims) []*DeviceGroup {
	byKey := make(map[string]*DeviceGroup)

	for i := range modules {
		key, ok := VirtualDeviceKey(&modules[i])
		if !ok {
			continue
		}
		g, exists := byKey[key]
		if !exists {
			g = &DeviceGroup{
				Key:        key,
				Name:       "Virtual Device: " + key,
				Kind:       KindVirtual,
				DeviceType: TypeUnknown,
			}
			byKey[key] = g
		}
		g.Modules = append(g.Modules, modules[i])
		c.modules[i] = true
	}

	for i := range sinks {
		if g, ok := byKey[sinks[i].Name]; ok {
			g.Sinks = append(g.Sinks, sinks[i])
			c.sinks[i] = true
		}
	}

	for i := range sources {
		name := sources[i].Name
		g, ok := byKey[name]
		if !ok && strings.HasSuffix(name, ".monitor") {
			g, ok = byKey[strings.TrimSuffix(name, ".monitor")]
		}
		if ok {
			g.Sources = append(g.Sources, sources[i])
			c.sources[i] = true
		}
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]*DeviceGroup, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, byKey[k])
	}
	return groups
}

// correlateHardware groups the remaining ALSA sinks, sources and
// hardware modules by the physical device their names point at
func correlateHardware(modules []pactl.Module, sinks []pactl.Sink, sources []pactl.Source, opts Options, c *claims, tree *Tree) *hardwareGroups {
	hw := newHardwareGroups()

	for i := range sinks {
		s := &sinks[i]
		if c.sinks[i] || isVirtualName(s.Name) || isMonitorName(s.Name) {
			continue
		}
		info := InfoFromName(SinkRecord(s))
		if info == nil {
			continue
		}
		g := hw.groupByKey(info)
		g.Sinks = append(g.Sinks, *s)
		c.sinks[i] = true
	}

	for i := range sources {
		s := &sources[i]
		if c.sources[i] || isVirtualName(s.Name) {
			continue
		}
		if isMonitorName(s.Name) && !opts.ShowMonitorSources {
			// hidden entirely, not even as an orphan
			c.sources[i] = true
			tree.HiddenMonitors++
			continue
		}
		info := InfoFromName(SourceRecord(s))
		if info == nil {
			continue
		}
		g := hw.groupByKey(info)
		g.Sources = append(g.Sources, *s)
		c.sources[i] = true
	}

	for i := range modules {
		m := &modules[i]
		if c.modules[i] || strings.Contains(m.Name, "null-sink") {
			continue
		}
		if !containsAny(strings.ToLower(m.Name), hardwareModuleTerms...) {
			continue
		}
		g := hw.groupFor(InfoFromModule(m))
		g.Modules = append(g.Modules, *m)
		c.modules[i] = true
	}

	return hw
}

// collectOrphans turns every unclaimed sink and source into a singleton
// group filed by the classifier
func collectOrphans(sinks []pactl.Sink, sources []pactl.Source, opts Options, c *claims) []*DeviceGroup {
	var orphans []*DeviceGroup

	for i := range sinks {
		if c.sinks[i] {
			continue
		}
		s := sinks[i]
		orphans = append(orphans, &DeviceGroup{
			Key:        "orphan_sink_" + s.Name,
			Name:       s.DisplayName(),
			Kind:       KindOrphanedSink,
			DeviceType: Classify(SinkRecord(&s)),
			Sinks:      []pactl.Sink{s},
		})
		c.sinks[i] = true
	}

	for i := range sources {
		if c.sources[i] {
			continue
		}
		s := sources[i]
		if isMonitorName(s.Name) && !opts.ShowMonitorSources {
			continue
		}
		orphans = append(orphans, &DeviceGroup{
			Key:        "orphan_source_" + s.Name,
			Name:       s.DisplayName(),
			Kind:       KindOrphanedSource,
			DeviceType: Classify(SourceRecord(&s)),
			Sources:    []pactl.Source{s},
		})
		c.sources[i] = true
	}

	return orphans
}
