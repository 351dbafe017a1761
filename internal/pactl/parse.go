package pactl

import (
	"strings"
)

// section tracks which multi-line block of an entity is being read
type section int

const (
	sectionNone section = iota
	sectionProperties
	sectionFormats
	sectionArgument
)

// fieldMap maps pactl field labels to canonical field names.
// Labels not listed here are folded generically by fieldName.
var fieldMap = map[string]string{
	"State":                "state",
	"Name":                 "name",
	"Description":          "description",
	"Driver":               "driver",
	"Sample Specification": "sample_spec",
	"Channel Map":          "channel_map",
	"Owner Module":         "owner_module",
	"Mute":                 "mute",
	"Volume":               "volume",
	"Base Volume":          "base_volume",
	"Monitor Source":       "monitor_source",
	"Monitor of Sink":      "monitor_of_sink",
	"Latency":              "latency",
	"Flags":                "flags",
	"Argument":             "argument",
	"Usage counter":        "usage_counter",
}

// fieldName returns the canonical name for a pactl field label
func fieldName(label string) string {
	if name, ok := fieldMap[label]; ok {
		return name
	}
	return strings.ReplaceAll(strings.ToLower(label), " ", "_")
}

// block is the untyped result of scraping one "<Kind> #<id>" entry
type block struct {
	id         string
	fields     map[string]string
	properties Properties
	formats    []string
}

func newBlock(id string) *block {
	return &block{
		id:         id,
		fields:     make(map[string]string),
		properties: NewProperties(),
	}
}

// take removes a field from the block and returns it, nil if absent
func (b *block) take(name string) *string {
	v, ok := b.fields[name]
	if !ok {
		return nil
	}
	delete(b.fields, name)
	return &v
}

// takeString is take for fields that are always present in practice
func (b *block) takeString(name string) string {
	if v := b.take(name); v != nil {
		return *v
	}
	return ""
}

// rest returns the fields that were not claimed by a typed record
func (b *block) rest() map[string]string {
	if len(b.fields) == 0 {
		return nil
	}
	return b.fields
}

// parseBlocks splits list output into per-entity blocks.
// It never fails: lines that fit no known shape are dropped.
func parseBlocks(output string, kind EntityKind) []*block {
	header := string(kind) + " #"

	var blocks []*block
	var cur *block
	sec := sectionNone

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(line, header) {
			if cur != nil {
				blocks = append(blocks, cur)
			}
			cur = newBlock(strings.TrimSpace(line[len(header):]))
			sec = sectionNone
			continue
		}
		if cur == nil {
			continue
		}

		// A multi-line argument swallows everything up to its closing brace
		if sec == sectionArgument {
			cur.fields["argument"] += "\n" + line
			if strings.HasSuffix(trimmed, "}") {
				sec = sectionNone
			}
			continue
		}

		switch {
		case kind == KindModule && strings.HasPrefix(trimmed, "Usage counter:"):
			// ends any open section, then parsed as a field below
			sec = sectionNone
		case strings.HasPrefix(trimmed, "Properties:"):
			sec = sectionProperties
			continue
		case strings.HasPrefix(trimmed, "Formats:"):
			sec = sectionFormats
			cur.formats = []string{}
			continue
		}

		switch sec {
		case sectionProperties:
			// key = "value"
			parts := strings.SplitN(trimmed, " = ", 2)
			if len(parts) == 2 {
				key := strings.TrimSpace(parts[0])
				val := strings.Trim(strings.TrimSpace(parts[1]), `"`)
				cur.properties.Set(key, val)
			}
			continue
		case sectionFormats:
			if trimmed != "" {
				cur.formats = append(cur.formats, trimmed)
			}
			continue
		}

		// Key: Value
		parts := strings.SplitN(trimmed, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}

		name := fieldName(key)
		cur.fields[name] = val

		if name == "argument" && strings.HasPrefix(val, "{") && !strings.HasSuffix(val, "}") {
			sec = sectionArgument
		}
	}

	if cur != nil {
		blocks = append(blocks, cur)
	}

	return blocks
}

// ParseModules parses the output of "pactl list modules"
func ParseModules(output string) []Module {
	blocks := parseBlocks(output, KindModule)
	modules := make([]Module, 0, len(blocks))
	for _, b := range blocks {
		modules = append(modules, Module{
			ID:           b.id,
			Name:         b.takeString("name"),
			Argument:     b.take("argument"),
			UsageCounter: b.take("usage_counter"),
			Properties:   b.properties,
			Fields:       b.rest(),
		})
	}
	return modules
}

// ParseSinks parses the output of "pactl list sinks"
func ParseSinks(output string) []Sink {
	blocks := parseBlocks(output, KindSink)
	sinks := make([]Sink, 0, len(blocks))
	for _, b := range blocks {
		sinks = append(sinks, Sink{
			ID:            b.id,
			Name:          b.takeString("name"),
			Description:   b.take("description"),
			Driver:        b.take("driver"),
			State:         b.take("state"),
			SampleSpec:    b.take("sample_spec"),
			ChannelMap:    b.take("channel_map"),
			OwnerModule:   b.take("owner_module"),
			Mute:          b.take("mute"),
			Volume:        b.take("volume"),
			BaseVolume:    b.take("base_volume"),
			MonitorSource: b.take("monitor_source"),
			Latency:       b.take("latency"),
			Flags:         b.take("flags"),
			Properties:    b.properties,
			Formats:       b.formats,
			Fields:        b.rest(),
		})
	}
	return sinks
}

// ParseSources parses the output of "pactl list sources"
func ParseSources(output string) []Source {
	blocks := parseBlocks(output, KindSource)
	sources := make([]Source, 0, len(blocks))
	for _, b := range blocks {
		sources = append(sources, Source{
			ID:            b.id,
			Name:          b.takeString("name"),
			Description:   b.take("description"),
			Driver:        b.take("driver"),
			State:         b.take("state"),
			SampleSpec:    b.take("sample_spec"),
			ChannelMap:    b.take("channel_map"),
			OwnerModule:   b.take("owner_module"),
			Mute:          b.take("mute"),
			Volume:        b.take("volume"),
			BaseVolume:    b.take("base_volume"),
			MonitorOfSink: b.take("monitor_of_sink"),
			Latency:       b.take("latency"),
			Flags:         b.take("flags"),
			Properties:    b.properties,
			Formats:       b.formats,
			Fields:        b.rest(),
		})
	}
	return sources
}

// ParseInfo parses the flat "Key: Value" output of "pactl info"
func ParseInfo(output string) map[string]string {
	info := make(map[string]string)
	for _, line := range strings.Split(output, "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok || strings.TrimSpace(key) == "" {
			continue
		}
		info[fieldName(strings.TrimSpace(key))] = strings.TrimSpace(val)
	}
	return info
}
