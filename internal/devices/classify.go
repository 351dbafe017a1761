package devices

import (
	"strings"

	"github.com/sigreer/pactlgod/internal/pactl"
)

// Record is the part of an entity the classifier looks at
type Record struct {
	Name       string
	Properties pactl.Properties
}

// ModuleRecord builds a classifier record from a module
func ModuleRecord(m *pactl.Module) Record {
	return Record{Name: m.Name, Properties: m.Properties}
}

// SinkRecord builds a classifier record from a sink
func SinkRecord(s *pactl.Sink) Record {
	return Record{Name: s.Name, Properties: s.Properties}
}

// SourceRecord builds a classifier record from a source
func SourceRecord(s *pactl.Source) Record {
	return Record{Name: s.Name, Properties: s.Properties}
}

func (r Record) lowerName() string {
	return strings.ToLower(r.Name)
}

func (r Record) description() string {
	return strings.ToLower(r.Properties.Get("device.description"))
}

// Rule maps a predicate over one record to a category
type Rule struct {
	Name     string
	Match    func(r Record) bool
	Category DeviceType
}

// gpuMarkers identify graphics-card audio on a PCI connector name
var gpuMarkers = []string{"nvidia", "amd", "radeon", "intel hd", "hdmi"}

// gpuBusMarkers identify graphics-card audio from device.bus=pci alone
var gpuBusMarkers = []string{"nvidia", "amd", "intel hd", "radeon"}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func nameContains(subs ...string) func(Record) bool {
	return func(r Record) bool {
		return containsAny(r.lowerName(), subs...)
	}
}

func isPCIName(r Record) bool {
	return containsAny(r.lowerName(), "alsa_output.pci-", "alsa_input.pci-")
}

// rules is evaluated top to bottom for each record; first match wins
var rules = []Rule{
	// ALSA connector in the node name
	{"alsa-usb", nameContains("alsa_output.usb-", "alsa_input.usb-"), TypeUSB},
	{"alsa-pci-gpu", func(r Record) bool {
		return isPCIName(r) && containsAny(r.description(), gpuMarkers...)
	}, TypeHDMI},
	{"alsa-pci", isPCIName, TypeBuiltin},
	{"name-bluetooth", nameContains("bluez", "bluetooth"), TypeBluetooth},

	// Generic name substrings
	{"name-usb", nameContains("usb", "usb-audio"), TypeUSB},
	{"name-bluez", nameContains("bluez", "bluetooth"), TypeBluetooth},
	{"name-hdmi", nameContains("hdmi", "displayport"), TypeHDMI},

	// Declared properties
	{"bus-usb", func(r Record) bool {
		return r.Properties.Get("device.bus") == "usb"
	}, TypeUSB},
	{"api-usb", func(r Record) bool {
		return strings.Contains(strings.ToLower(r.Properties.Get("device.api")), "usb")
	}, TypeUSB},
	{"api-bluez5", func(r Record) bool {
		return r.Properties.Get("device.api") == "bluez5"
	}, TypeBluetooth},
	{"description-bluetooth", func(r Record) bool {
		return strings.Contains(r.description(), "bluetooth")
	}, TypeBluetooth},
	{"description-hdmi", func(r Record) bool {
		return containsAny(r.description(), "hdmi", "displayport", "dp")
	}, TypeHDMI},
	{"description-nvidia", func(r Record) bool {
		return strings.Contains(r.description(), "nvidia")
	}, TypeHDMI},
	{"bus-pci-gpu", func(r Record) bool {
		return r.Properties.Get("device.bus") == "pci" && containsAny(r.description(), gpuBusMarkers...)
	}, TypeHDMI},
	{"bus-pci", func(r Record) bool {
		return r.Properties.Get("device.bus") == "pci"
	}, TypeBuiltin},
}

// Rules returns a copy of the classification table in priority order
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// MatchRule returns the first rule that matches r, if any
func MatchRule(r Record) (Rule, bool) {
	for _, rule := range rules {
		if rule.Match(r) {
			return rule, true
		}
	}
	return Rule{}, false
}

// Classify files a bundle of correlated records under one category.
// Records are scanned in order and the first positive signal wins;
// unidentified hardware is treated as built-in.
func Classify(records ...Record) DeviceType {
	for _, r := range records {
		if rule, ok := MatchRule(r); ok {
			return rule.Category
		}
	}
	return TypeBuiltin
}
