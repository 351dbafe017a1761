package pactl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

var sinksOutput = lines(
	"Sink #52",
	"\tState: SUSPENDED",
	"\tName: alsa_output.usb-BEHRINGER_UMC404HD_192k-00.pro-output-0",
	"\tDescription: UMC404HD 192k Pro",
	"\tDriver: PipeWire",
	"\tSample Specification: s32le 4ch 48000Hz",
	"\tChannel Map: front-left,front-right,rear-left,rear-right",
	"\tOwner Module: 4294967295",
	"\tMute: no",
	"\tVolume: front-left: 65536 / 100% / 0.00 dB,   front-right: 65536 / 100% / 0.00 dB",
	"\t        balance 0.00",
	"\tBase Volume: 65536 / 100% / 0.00 dB",
	"\tMonitor Source: alsa_output.usb-BEHRINGER_UMC404HD_192k-00.pro-output-0.monitor",
	"\tLatency: 0 usec, configured 0 usec",
	"\tFlags: HARDWARE DECIBEL_VOLUME LATENCY ",
	"\tActive Port: analog-output",
	"\tProperties:",
	"\t\tapi.alsa.path = \"hw:2\"",
	"\t\tdevice.description = \"UMC404HD 192k Pro\"",
	"\t\tdevice.bus = \"usb\"",
	"\t\tmedia.name = \"a = b\"",
	"\tFormats:",
	"\t\tpcm",
	"",
	"Sink #60",
	"\tState: RUNNING",
	"\tName: foo",
	"\tDescription: foo",
	"\tDriver: PipeWire",
	"\tProperties:",
	"\t\tmedia.class = \"Audio/Duplex\"",
)

func TestParseSinks(t *testing.T) {
	t.Parallel()

	sinks := ParseSinks(sinksOutput)
	require.Len(t, sinks, 2)

	s := sinks[0]
	assert.Equal(t, "52", s.ID)
	assert.Equal(t, "alsa_output.usb-BEHRINGER_UMC404HD_192k-00.pro-output-0", s.Name)
	require.NotNil(t, s.Description)
	assert.Equal(t, "UMC404HD 192k Pro", *s.Description)
	require.NotNil(t, s.State)
	assert.Equal(t, "SUSPENDED", *s.State)
	require.NotNil(t, s.SampleSpec)
	assert.Equal(t, "s32le 4ch 48000Hz", *s.SampleSpec)
	require.NotNil(t, s.OwnerModule)
	assert.Equal(t, "4294967295", *s.OwnerModule)
	require.NotNil(t, s.Volume)
	assert.Equal(t, "front-left: 65536 / 100% / 0.00 dB,   front-right: 65536 / 100% / 0.00 dB", *s.Volume)
	require.NotNil(t, s.MonitorSource)
	assert.Equal(t, "alsa_output.usb-BEHRINGER_UMC404HD_192k-00.pro-output-0.monitor", *s.MonitorSource)
	require.NotNil(t, s.Flags)
	assert.Equal(t, "HARDWARE DECIBEL_VOLUME LATENCY", *s.Flags)

	assert.Equal(t, map[string]string{"active_port": "analog-output"}, s.Fields)
	assert.Equal(t, []string{"pcm"}, s.Formats)

	second := sinks[1]
	assert.Equal(t, "60", second.ID)
	assert.Equal(t, "foo", second.Name)
	assert.Nil(t, second.Volume)
	assert.Nil(t, second.MonitorSource)
	assert.Nil(t, second.Formats)
	assert.Equal(t, "Audio/Duplex", second.Properties.Get("media.class"))
}

func TestParseSinks_Properties(t *testing.T) {
	t.Parallel()

	s := ParseSinks(sinksOutput)[0]

	assert.Equal(t, []string{"api.alsa.path", "device.description", "device.bus", "media.name"}, s.Properties.Keys())
	assert.Equal(t, "hw:2", s.Properties.Get("api.alsa.path"), "quotes are stripped")
	assert.Equal(t, "a = b", s.Properties.Get("media.name"), "only the first separator splits")

	_, ok := s.Properties.Lookup("missing")
	assert.False(t, ok)
	assert.NotContains(t, s.Fields, "api.alsa.path", "colon lines inside properties are not fields")
}

func TestParseSources(t *testing.T) {
	t.Parallel()

	out := lines(
		"Source #53",
		"\tState: SUSPENDED",
		"\tName: alsa_output.usb-BEHRINGER_UMC404HD_192k-00.pro-output-0.monitor",
		"\tDescription: Monitor of UMC404HD 192k Pro",
		"\tMonitor of Sink: alsa_output.usb-BEHRINGER_UMC404HD_192k-00.pro-output-0",
		"\tProperties:",
		"\t\tdevice.class = \"monitor\"",
		"Source #54",
		"\tName: alsa_input.usb-BEHRINGER_UMC404HD_192k-00.pro-input-0",
		"\tMonitor of Sink: n/a",
	)

	sources := ParseSources(out)
	require.Len(t, sources, 2)

	require.NotNil(t, sources[0].MonitorOfSink)
	assert.Equal(t, "alsa_output.usb-BEHRINGER_UMC404HD_192k-00.pro-output-0", *sources[0].MonitorOfSink)
	assert.Equal(t, "Monitor of UMC404HD 192k Pro", sources[0].DisplayName())
	assert.Equal(t, "monitor", sources[0].Properties.Get("device.class"))

	assert.Equal(t, "54", sources[1].ID)
	assert.Equal(t, "alsa_input.usb-BEHRINGER_UMC404HD_192k-00.pro-input-0", sources[1].DisplayName())
	assert.Equal(t, 0, sources[1].Properties.Len())
}

func TestParseModules(t *testing.T) {
	t.Parallel()

	out := lines(
		"Module #536870912",
		"\tName: module-always-sink",
		"\tArgument: ",
		"\tUsage counter: n/a",
		"\tProperties:",
		"\t\tmodule.author = \"Colin Guthrie\"",
		"",
		"Module #536870913",
		"\tName: module-null-sink",
		"\tArgument: media.class=Audio/Duplex sink_name=foo channels=2",
		"\tUsage counter: n/a",
		"",
		"Module #536870914",
		"\tName: module-loopback",
		"\tArgument: {",
		"\t\tsource=foo.monitor",
		"\t\tsink=bar",
		"\t}",
		"\tUsage counter: n/a",
		"\tProperties:",
		"\t\tmodule.description = \"Loopback from source to sink\"",
	)

	modules := ParseModules(out)
	require.Len(t, modules, 3)

	t.Run("empty argument", func(t *testing.T) {
		m := modules[0]
		assert.Equal(t, "module-always-sink", m.Name)
		require.NotNil(t, m.Argument)
		assert.Equal(t, "", m.Arg())
		require.NotNil(t, m.UsageCounter)
		assert.Equal(t, "n/a", *m.UsageCounter)
		assert.Equal(t, "Colin Guthrie", m.Properties.Get("module.author"))
	})

	t.Run("single line argument", func(t *testing.T) {
		assert.Equal(t, "media.class=Audio/Duplex sink_name=foo channels=2", modules[1].Arg())
		assert.Equal(t, 0, modules[1].Properties.Len())
	})

	t.Run("multi line argument", func(t *testing.T) {
		m := modules[2]
		assert.Equal(t, "{\n\t\tsource=foo.monitor\n\t\tsink=bar\n\t}", m.Arg())
		require.NotNil(t, m.UsageCounter)
		assert.Equal(t, "n/a", *m.UsageCounter)
		assert.Equal(t, "Loopback from source to sink", m.Properties.Get("module.description"))
		assert.Nil(t, m.Fields)
	})
}

func TestParseModules_UsageCounterEndsSection(t *testing.T) {
	t.Parallel()

	out := lines(
		"Module #7",
		"\tName: module-x",
		"\tProperties:",
		"\t\tmodule.author = \"someone\"",
		"\tUsage counter: 3",
		"\tExtra Thing: yes",
	)

	m := ParseModules(out)[0]
	require.NotNil(t, m.UsageCounter)
	assert.Equal(t, "3", *m.UsageCounter)
	assert.Equal(t, map[string]string{"extra_thing": "yes"}, m.Fields)
	assert.Equal(t, 1, m.Properties.Len())
}

func TestParse_EdgeCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string // sink names
	}{
		{name: "empty", input: "", want: nil},
		{name: "garbage only", input: "Connection failure: Connection refused\n", want: nil},
		{name: "text before first header is dropped", input: lines(
			"stray: line",
			"Sink #1",
			"\tName: a",
		), want: []string{"a"}},
		{name: "last block flushed without trailing newline", input: "Sink #1\n\tName: a\nSink #2\n\tName: b", want: []string{"a", "b"}},
		{name: "crlf line endings", input: "Sink #1\r\n\tName: a\r\n", want: []string{"a"}},
		{name: "other kinds are not headers", input: lines(
			"Source #1",
			"\tName: src",
			"Sink #2",
			"\tName: b",
		), want: []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sinks := ParseSinks(tt.input)
			require.NotNil(t, sinks)

			var names []string
			for _, s := range sinks {
				names = append(names, s.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestParse_BlockWithMissingFields(t *testing.T) {
	t.Parallel()

	sinks := ParseSinks("Sink #9\n\tnot a field line\n")
	require.Len(t, sinks, 1)
	assert.Equal(t, "9", sinks[0].ID)
	assert.Equal(t, "", sinks[0].Name)
	assert.Nil(t, sinks[0].Description)
	assert.Empty(t, sinks[0].Fields)
}

func TestParse_UnknownKeysAreFolded(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sample_spec", fieldName("Sample Specification"))
	assert.Equal(t, "monitor_of_sink", fieldName("Monitor of Sink"))
	assert.Equal(t, "active_port", fieldName("Active Port"))
	assert.Equal(t, "card", fieldName("Card"))
}

func TestParseInfo(t *testing.T) {
	t.Parallel()

	info := ParseInfo(lines(
		"Server String: /run/user/1000/pulse/native",
		"Server Name: PulseAudio (on PipeWire 1.0.5)",
		"Default Sink: alsa_output.usb-BEHRINGER_UMC404HD_192k-00.pro-output-0",
		"Default Sample Specification: float32le 2ch 48000Hz",
		"not a field",
	))

	assert.Equal(t, "PulseAudio (on PipeWire 1.0.5)", info["server_name"])
	assert.Equal(t, "/run/user/1000/pulse/native", info["server_string"])
	assert.Equal(t, "alsa_output.usb-BEHRINGER_UMC404HD_192k-00.pro-output-0", info["default_sink"])
	assert.Len(t, info, 4)
}
