package pactl

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// EntityKind names one of the object classes pactl can list
type EntityKind string

const (
	KindModule EntityKind = "Module"
	KindSink   EntityKind = "Sink"
	KindSource EntityKind = "Source"
)

// ListArg returns the argument used with "pactl list"
func (k EntityKind) ListArg() string {
	switch k {
	case KindModule:
		return "modules"
	case KindSink:
		return "sinks"
	case KindSource:
		return "sources"
	}
	return ""
}

// Properties holds the "Properties:" block of an entity in the order pactl printed it
type Properties struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewProperties creates an empty property set
func NewProperties() Properties {
	return Properties{m: orderedmap.New[string, string]()}
}

// Get returns the value for key, or "" if absent
func (p Properties) Get(key string) string {
	if p.m == nil {
		return ""
	}
	v, _ := p.m.Get(key)
	return v
}

// Lookup returns the value for key and whether it was present
func (p Properties) Lookup(key string) (string, bool) {
	if p.m == nil {
		return "", false
	}
	return p.m.Get(key)
}

// Set stores a property, keeping the position of an existing key
func (p *Properties) Set(key, value string) {
	if p.m == nil {
		p.m = orderedmap.New[string, string]()
	}
	p.m.Set(key, value)
}

// Len returns the number of properties
func (p Properties) Len() int {
	if p.m == nil {
		return 0
	}
	return p.m.Len()
}

// Keys returns property keys in source order
func (p Properties) Keys() []string {
	if p.m == nil {
		return nil
	}
	keys := make([]string, 0, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// MarshalJSON emits the properties as a JSON object in source order
func (p Properties) MarshalJSON() ([]byte, error) {
	if p.m == nil {
		return []byte("{}"), nil
	}
	return p.m.MarshalJSON()
}

// Module is one entry of "pactl list modules"
type Module struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Argument     *string           `json:"argument,omitempty"`
	UsageCounter *string           `json:"usage_counter,omitempty"`
	Properties   Properties        `json:"properties"`
	Fields       map[string]string `json:"fields,omitempty"`
}

// Sink is one entry of "pactl list sinks"
type Sink struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   *string           `json:"description,omitempty"`
	Driver        *string           `json:"driver,omitempty"`
	State         *string           `json:"state,omitempty"`
	SampleSpec    *string           `json:"sample_spec,omitempty"`
	ChannelMap    *string           `json:"channel_map,omitempty"`
	OwnerModule   *string           `json:"owner_module,omitempty"`
	Mute          *string           `json:"mute,omitempty"`
	Volume        *string           `json:"volume,omitempty"`
	BaseVolume    *string           `json:"base_volume,omitempty"`
	MonitorSource *string           `json:"monitor_source,omitempty"`
	Latency       *string           `json:"latency,omitempty"`
	Flags         *string           `json:"flags,omitempty"`
	Properties    Properties        `json:"properties"`
	Formats       []string          `json:"formats,omitempty"`
	Fields        map[string]string `json:"fields,omitempty"`
}

// Source is one entry of "pactl list sources"
type Source struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   *string           `json:"description,omitempty"`
	Driver        *string           `json:"driver,omitempty"`
	State         *string           `json:"state,omitempty"`
	SampleSpec    *string           `json:"sample_spec,omitempty"`
	ChannelMap    *string           `json:"channel_map,omitempty"`
	OwnerModule   *string           `json:"owner_module,omitempty"`
	Mute          *string           `json:"mute,omitempty"`
	Volume        *string           `json:"volume,omitempty"`
	BaseVolume    *string           `json:"base_volume,omitempty"`
	MonitorOfSink *string           `json:"monitor_of_sink,omitempty"`
	Latency       *string           `json:"latency,omitempty"`
	Flags         *string           `json:"flags,omitempty"`
	Properties    Properties        `json:"properties"`
	Formats       []string          `json:"formats,omitempty"`
	Fields        map[string]string `json:"fields,omitempty"`
}

// DisplayName returns the description, falling back to the name
func (s *Sink) DisplayName() string {
	if s.Description != nil && *s.Description != "" {
		return *s.Description
	}
	return s.Name
}

// DisplayName returns the description, falling back to the name
func (s *Source) DisplayName() string {
	if s.Description != nil && *s.Description != "" {
		return *s.Description
	}
	return s.Name
}

// Arg returns the module argument text, or "" if none was printed
func (m *Module) Arg() string {
	if m.Argument == nil {
		return ""
	}
	return *m.Argument
}

// Snapshot is one full refresh of the three listings
type Snapshot struct {
	Modules []Module `json:"modules"`
	Sinks   []Sink   `json:"sinks"`
	Sources []Source `json:"sources"`
}
