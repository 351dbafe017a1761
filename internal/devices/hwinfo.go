package devices

import (
	"regexp"
	"strings"

	"github.com/sigreer/pactlgod/internal/pactl"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DeviceInfo identifies the physical device behind a hardware entity
type DeviceInfo struct {
	Key        string
	Type       DeviceType
	Name       string
	Identifier string
	Connection string
}

// usbEnumeration is the "-00" style suffix pactl appends to USB cards
var usbEnumeration = regexp.MustCompile(`-\d\d$`)

// titleCase upper-cases the first letter of each word.
// Casers are stateful, so one is made per call.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// virtualMarkers flag names that are virtual even without a null-sink module
var virtualMarkers = []string{"test", "voip"}

func isVirtualName(name string) bool {
	return containsAny(name, virtualMarkers...)
}

func isMonitorName(name string) bool {
	return strings.Contains(name, ".monitor")
}

// connectionSegment returns the "<connector>-<identifier>" part of
// an "alsa_<output|input>.<segment>.<suffix>" node name
func connectionSegment(name string) (string, bool) {
	var rest string
	switch {
	case strings.HasPrefix(name, "alsa_output."):
		rest = strings.TrimPrefix(name, "alsa_output.")
	case strings.HasPrefix(name, "alsa_input."):
		rest = strings.TrimPrefix(name, "alsa_input.")
	default:
		return "", false
	}

	segment, _, _ := strings.Cut(rest, ".")
	return segment, segment != ""
}

// infoFromConnection builds device info from a "<connector>-<identifier>"
// segment. Only the usb, pci and bluez connectors are recognised.
func infoFromConnection(segment string, rec Record) *DeviceInfo {
	connector, identifier, ok := strings.Cut(segment, "-")
	if !ok || identifier == "" {
		return nil
	}

	desc := rec.Properties.Get("device.description")
	info := &DeviceInfo{Connection: segment}

	switch connector {
	case "usb":
		identifier = usbEnumeration.ReplaceAllString(identifier, "")
		info.Type = TypeUSB
		info.Name = strings.Join(strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(identifier)), " ")
	case "pci":
		info.Type = Classify(rec)
		info.Name = desc
		if info.Name == "" {
			if info.Type == TypeHDMI {
				info.Name = "GPU Audio"
			} else {
				info.Name = "Built-in Audio"
			}
		}
	case "bluez":
		info.Type = TypeBluetooth
		info.Name = desc
		if info.Name == "" {
			info.Name = "Bluetooth Audio"
		}
	default:
		return nil
	}

	info.Identifier = identifier
	info.Key = string(info.Type) + "_" + connector + "-" + identifier
	return info
}

// InfoFromName parses an ALSA node name such as
// alsa_output.usb-BEHRINGER_UMC404HD_192k-00.pro-output-0.
// It returns nil for names outside that convention.
func InfoFromName(rec Record) *DeviceInfo {
	segment, ok := connectionSegment(rec.Name)
	if !ok {
		return nil
	}
	return infoFromConnection(segment, rec)
}

var (
	moduleNameArg     = regexp.MustCompile(`\bname="?([a-z]+-[^"\s]+)"?`)
	moduleCardArg     = regexp.MustCompile(`\bcard=([^=\s]+)`)
	moduleCardNameArg = regexp.MustCompile(`card_name=([^=\s]+)`)
	moduleDeviceArg   = regexp.MustCompile(`device=([^=\s]+)`)
	sinkNameArg       = regexp.MustCompile(`sink_name=([a-zA-Z0-9_.-]+)`)
)

// InfoFromModule derives device info for a hardware module such as
// module-alsa-card, preferring the card's connection segment
func InfoFromModule(m *pactl.Module) *DeviceInfo {
	rec := ModuleRecord(m)
	args := m.Arg()

	if match := moduleNameArg.FindStringSubmatch(args); match != nil {
		// same cut as connectionSegment
		segment, _, _ := strings.Cut(match[1], ".")
		if info := infoFromConnection(segment, rec); info != nil {
			return info
		}
	}

	desc := m.Properties.Get("device.description")
	if desc == "" {
		desc = m.Properties.Get("alsa.card_name")
	}
	if desc == "" {
		if match := moduleCardArg.FindStringSubmatch(args); match != nil {
			desc = strings.Trim(match[1], `"'`)
		}
	}
	if desc == "" {
		desc = titleCase(strings.ReplaceAll(strings.ReplaceAll(m.Name, "module-", ""), "-", " "))
	}

	devType := Classify(rec)
	deviceString := m.Properties.Get("device.string")

	key := deviceString
	if key == "" {
		bus := m.Properties.Get("device.bus")
		if bus == "" {
			bus = "unknown"
		}
		key = desc + "_" + bus + "_" + string(devType)
	}

	return &DeviceInfo{
		Key:        key,
		Type:       devType,
		Name:       desc,
		Identifier: deviceString,
	}
}

// matchRule is one way two device infos can be recognised as the same device
type matchRule struct {
	name  string
	match func(a, b *DeviceInfo) bool
}

// matchRules are tried in order; any hit merges the two records
var matchRules = []matchRule{
	{"identifier", func(a, b *DeviceInfo) bool {
		return a.Identifier != "" && a.Identifier == b.Identifier
	}},
	{"connection", func(a, b *DeviceInfo) bool {
		return a.Connection != "" && a.Connection == b.Connection
	}},
	{"name", func(a, b *DeviceInfo) bool {
		return a.Name != "" && strings.EqualFold(a.Name, b.Name)
	}},
}

// DevicesMatch reports whether two infos describe the same physical device
func DevicesMatch(a, b *DeviceInfo) bool {
	for _, rule := range matchRules {
		if rule.match(a, b) {
			return true
		}
	}
	return false
}

// VirtualDeviceKey returns the sink_name a null-sink module was loaded with
func VirtualDeviceKey(m *pactl.Module) (string, bool) {
	if !strings.Contains(m.Name, "null-sink") {
		return "", false
	}
	match := sinkNameArg.FindStringSubmatch(m.Arg())
	if match == nil {
		return "", false
	}
	return match[1], true
}

// ModuleDisplayName returns a human-readable label for a module
func ModuleDisplayName(m *pactl.Module) string {
	name := m.Name
	args := m.Arg()

	if strings.Contains(name, "null-sink") {
		if key, ok := VirtualDeviceKey(m); ok {
			return "Virtual Device: " + key
		}
		return "Virtual Audio Device"
	}

	if strings.Contains(name, "alsa-card") {
		if match := moduleCardNameArg.FindStringSubmatch(args); match != nil {
			return "Hardware: " + strings.Trim(match[1], `"'`)
		}
	}

	if containsAny(name, "hdmi", "usb", "bluetooth") {
		for _, prefix := range []string{"module-", "alsa-"} {
			name = strings.TrimPrefix(name, prefix)
		}
		return "Hardware: " + titleCase(strings.ReplaceAll(name, "-", " "))
	}

	if strings.Contains(name, "bluez") {
		if match := moduleDeviceArg.FindStringSubmatch(args); match != nil {
			return "Bluetooth: " + strings.Trim(match[1], `"'`)
		}
	}

	return titleCase(strings.ReplaceAll(strings.ReplaceAll(name, "module-", ""), "-", " "))
}
