package devices

import (
	"testing"

	"github.com/sigreer/pactlgod/internal/pactl"
	"github.com/stretchr/testify/assert"
)

func props(kv ...string) pactl.Properties {
	p := pactl.NewProperties()
	for i := 0; i+1 < len(kv); i += 2 {
		p.Set(kv[i], kv[i+1])
	}
	return p
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		record   Record
		want     DeviceType
		wantRule string
	}{
		{
			name:     "alsa usb",
			record:   Record{Name: "alsa_output.usb-BEHRINGER_UMC404HD_192k-00.pro-output-0"},
			want:     TypeUSB,
			wantRule: "alsa-usb",
		},
		{
			name: "alsa pci gpu",
			record: Record{
				Name:       "alsa_output.pci-0000_01_00.1.hdmi-stereo",
				Properties: props("device.description", "NVIDIA GA102 Digital Stereo"),
			},
			want:     TypeHDMI,
			wantRule: "alsa-pci-gpu",
		},
		{
			name: "alsa pci onboard",
			record: Record{
				Name:       "alsa_input.pci-0000_00_1f.3.analog-stereo",
				Properties: props("device.description", "Built-in Audio Analog Stereo"),
			},
			want:     TypeBuiltin,
			wantRule: "alsa-pci",
		},
		{
			name:     "bluez node",
			record:   Record{Name: "bluez_output.00_11_22_33_44_55.1"},
			want:     TypeBluetooth,
			wantRule: "name-bluetooth",
		},
		{
			name:     "generic usb name",
			record:   Record{Name: "module-usb-audio"},
			want:     TypeUSB,
			wantRule: "name-usb",
		},
		{
			name:     "generic hdmi name",
			record:   Record{Name: "Combined HDMI Out"},
			want:     TypeHDMI,
			wantRule: "name-hdmi",
		},
		{
			name:     "bus usb",
			record:   Record{Name: "sink", Properties: props("device.bus", "usb")},
			want:     TypeUSB,
			wantRule: "bus-usb",
		},
		{
			name:     "api usb",
			record:   Record{Name: "sink", Properties: props("device.api", "USB-Audio")},
			want:     TypeUSB,
			wantRule: "api-usb",
		},
		{
			name:     "api bluez5",
			record:   Record{Name: "sink", Properties: props("device.api", "bluez5")},
			want:     TypeBluetooth,
			wantRule: "api-bluez5",
		},
		{
			name:     "bluetooth description",
			record:   Record{Name: "sink", Properties: props("device.description", "WH-1000XM4 Bluetooth")},
			want:     TypeBluetooth,
			wantRule: "description-bluetooth",
		},
		{
			name:     "displayport description",
			record:   Record{Name: "sink", Properties: props("device.description", "DisplayPort 1")},
			want:     TypeHDMI,
			wantRule: "description-hdmi",
		},
		{
			name:     "pci gpu bus",
			record:   Record{Name: "sink", Properties: props("device.bus", "pci", "device.description", "Radeon Audio")},
			want:     TypeHDMI,
			wantRule: "bus-pci-gpu",
		},
		{
			name:     "pci bus",
			record:   Record{Name: "sink", Properties: props("device.bus", "pci", "device.description", "Onboard")},
			want:     TypeBuiltin,
			wantRule: "bus-pci",
		},
		{
			name:   "no signal",
			record: Record{Name: "sink"},
			want:   TypeBuiltin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Classify(tt.record))

			rule, ok := MatchRule(tt.record)
			if tt.wantRule == "" {
				assert.False(t, ok)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, tt.wantRule, rule.Name)
		})
	}
}

func TestClassify_FirstRecordWithSignalWins(t *testing.T) {
	t.Parallel()

	module := Record{Name: "module-loopback"}
	sink := Record{Name: "alsa_output.usb-Focusrite_Scarlett_2i2-00.analog-stereo"}
	source := Record{Name: "bluez_input.00_11"}

	assert.Equal(t, TypeUSB, Classify(module, sink, source))
	assert.Equal(t, TypeBluetooth, Classify(module, source, sink))
	assert.Equal(t, TypeBuiltin, Classify())
}

func TestClassify_NamePrecedesProperties(t *testing.T) {
	t.Parallel()

	r := Record{
		Name:       "alsa_output.usb-Generic-00.analog-stereo",
		Properties: props("device.api", "bluez5"),
	}
	assert.Equal(t, TypeUSB, Classify(r))
}

func TestRules_ReturnsCopy(t *testing.T) {
	t.Parallel()

	table := Rules()
	assert.Equal(t, "alsa-usb", table[0].Name)
	assert.Equal(t, "bus-pci", table[len(table)-1].Name)

	table[0] = Rule{Name: "changed"}
	assert.Equal(t, "alsa-usb", Rules()[0].Name)
}
