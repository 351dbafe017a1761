package presets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sigreer/pactlgod/internal/db"
	"github.com/sigreer/pactlgod/internal/pactl"
)

var (
	ErrBuiltinPreset     = errors.New("builtin preset cannot be modified")
	ErrPresetNotFound    = errors.New("preset not found")
	ErrInvalidPresetFile = errors.New("invalid preset file format")
)

// Preset is a named virtual device configuration
type Preset struct {
	Channels    int       `json:"channels"`
	ChannelMap  string    `json:"channel_map"`
	Description string    `json:"description"`
	Rate        *int      `json:"rate,omitempty"`
	Format      *string   `json:"format,omitempty"`
	Properties  *string   `json:"properties,omitempty"`
	Builtin     bool      `json:"builtin"`
	Created     time.Time `json:"created,omitzero"`
}

// builtinNames lists the built-in presets in presentation order
var builtinNames = []string{"Stereo", "Mono", "5.1 Surround", "7.1 Surround", "Custom"}

var builtins = map[string]Preset{
	"Stereo": {
		Channels:    2,
		ChannelMap:  "front-left,front-right",
		Description: "Stereo Virtual Device",
		Builtin:     true,
	},
	"Mono": {
		Channels:    1,
		ChannelMap:  "mono",
		Description: "Mono Virtual Device",
		Builtin:     true,
	},
	"5.1 Surround": {
		Channels:    6,
		ChannelMap:  "front-left,front-right,front-center,lfe,rear-left,rear-right",
		Description: "5.1 Surround Virtual Device",
		Builtin:     true,
	},
	"7.1 Surround": {
		Channels:    8,
		ChannelMap:  "front-left,front-right,front-center,lfe,rear-left,rear-right,side-left,side-right",
		Description: "7.1 Surround Virtual Device",
		Builtin:     true,
	},
	"Custom": {
		Channels:    2,
		Description: "Custom Virtual Device",
		Builtin:     true,
	},
}

// autoNames are the sink name bases used when a built-in preset is auto-named
var autoNames = map[string]string{
	"Stereo":       "stereo",
	"Mono":         "mono",
	"5.1 Surround": "surround51",
	"7.1 Surround": "surround71",
	"Custom":       "custom",
}

// BaseName returns the sink name base used to auto-name a device
// created from the named preset
func BaseName(name string) string {
	if base, ok := autoNames[name]; ok {
		return base
	}
	return strings.ToLower(name)
}

// IsBuiltin reports whether name is a built-in preset
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// Store combines the built-in presets with user presets kept in the database.
// Built-ins shadow user presets of the same name.
type Store struct {
	db *db.DB
}

// NewStore creates a store over database
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Names returns built-ins in declared order followed by user presets sorted by name
func (s *Store) Names() ([]string, error) {
	names := append([]string(nil), builtinNames...)

	records, err := s.db.ListPresets()
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if !IsBuiltin(r.Name) {
			names = append(names, r.Name)
		}
	}
	return names, nil
}

// All returns every visible preset by name
func (s *Store) All() (map[string]Preset, error) {
	all := make(map[string]Preset, len(builtins))

	records, err := s.db.ListPresets()
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		all[r.Name] = fromRecord(r)
	}
	for name, p := range builtins {
		all[name] = p
	}
	return all, nil
}

// Get returns the named preset
func (s *Store) Get(name string) (Preset, error) {
	if p, ok := builtins[name]; ok {
		return p, nil
	}

	r, err := s.db.GetPreset(name)
	if err != nil {
		return Preset{}, err
	}
	if r == nil {
		return Preset{}, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	return fromRecord(r), nil
}

// Save stores a user preset, replacing any user preset of the same name
func (s *Store) Save(name string, p Preset) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if IsBuiltin(name) {
		return fmt.Errorf("%w: %s", ErrBuiltinPreset, name)
	}
	if p.Channels <= 0 {
		return fmt.Errorf("preset %s: channels must be positive", name)
	}

	return s.db.UpsertPreset(&db.PresetRecord{
		Name:        name,
		Channels:    p.Channels,
		ChannelMap:  p.ChannelMap,
		Description: p.Description,
		Rate:        p.Rate,
		Format:      p.Format,
		Properties:  p.Properties,
	})
}

// Delete removes a user preset
func (s *Store) Delete(name string) error {
	if IsBuiltin(name) {
		return fmt.Errorf("%w: %s", ErrBuiltinPreset, name)
	}

	found, err := s.db.DeletePreset(name)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	return nil
}

// Export writes the named preset as a single-entry JSON object
func (s *Store) Export(name string, w io.Writer) error {
	p, err := s.Get(name)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]Preset{name: p})
}

// Import reads a single-entry JSON object written by Export and saves it.
// It returns the imported preset's name.
func (s *Store) Import(r io.Reader) (string, error) {
	var data map[string]Preset
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPresetFile, err)
	}
	if len(data) != 1 {
		return "", fmt.Errorf("%w: expected exactly one preset, found %d", ErrInvalidPresetFile, len(data))
	}

	for name, p := range data {
		p.Builtin = false
		if err := s.Save(name, p); err != nil {
			return "", err
		}
		return name, nil
	}
	return "", ErrInvalidPresetFile
}

// Spec builds the duplex sink request for a device named name
func (p Preset) Spec(name string) pactl.DuplexSinkSpec {
	spec := pactl.DuplexSinkSpec{
		Name:           name,
		Description:    p.Description,
		Channels:       p.Channels,
		Rate:           p.Rate,
		Format:         p.Format,
		SinkProperties: p.Properties,
	}
	if p.ChannelMap != "" {
		cm := p.ChannelMap
		spec.ChannelMap = &cm
	}
	return spec
}

func fromRecord(r *db.PresetRecord) Preset {
	return Preset{
		Channels:    r.Channels,
		ChannelMap:  r.ChannelMap,
		Description: r.Description,
		Rate:        r.Rate,
		Format:      r.Format,
		Properties:  r.Properties,
		Created:     r.Created,
	}
}
