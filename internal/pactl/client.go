package pactl

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// NullSinkModule is the module that creates virtual devices
const NullSinkModule = "module-null-sink"

// ErrInvalidSinkName is wrapped by ValidateSinkName failures
var ErrInvalidSinkName = errors.New("invalid sink name")

// Client issues list and mutation commands through an Executor.
// Calls block until the command exits and must not overlap.
type Client struct {
	exec   Executor
	logger *zap.SugaredLogger
}

// NewClient creates a client over exec
func NewClient(exec Executor, logger *zap.SugaredLogger) *Client {
	return &Client{
		exec:   exec,
		logger: logger.Named("pactl"),
	}
}

// list runs "list <kind>"; ok is false when the command failed
func (c *Client) list(ctx context.Context, kind EntityKind) (string, bool) {
	output, code := c.exec.Execute(ctx, "list", kind.ListArg())
	if code != 0 {
		c.logger.Warnw("Listing failed", "kind", kind.ListArg(), "exit_code", code)
		return "", false
	}
	return output, true
}

// ListModules returns all loaded modules, or none if the command fails
func (c *Client) ListModules(ctx context.Context) []Module {
	output, ok := c.list(ctx, KindModule)
	if !ok {
		return []Module{}
	}
	return ParseModules(output)
}

// ListSinks returns all sinks, or none if the command fails
func (c *Client) ListSinks(ctx context.Context) []Sink {
	output, ok := c.list(ctx, KindSink)
	if !ok {
		return []Sink{}
	}
	return ParseSinks(output)
}

// ListSources returns all sources, or none if the command fails
func (c *Client) ListSources(ctx context.Context) []Source {
	output, ok := c.list(ctx, KindSource)
	if !ok {
		return []Source{}
	}
	return ParseSources(output)
}

// Snapshot lists modules, sinks and sources one after another
func (c *Client) Snapshot(ctx context.Context) *Snapshot {
	snap := &Snapshot{
		Modules: c.ListModules(ctx),
		Sinks:   c.ListSinks(ctx),
		Sources: c.ListSources(ctx),
	}
	c.logger.Debugw("Refreshed all components",
		"modules", len(snap.Modules), "sinks", len(snap.Sinks), "sources", len(snap.Sources))
	return snap
}

// Info returns the "Key: Value" lines of "pactl info" keyed by folded field name
func (c *Client) Info(ctx context.Context) (map[string]string, error) {
	output, code := c.exec.Execute(ctx, "info")
	if code != 0 {
		return nil, &ExecError{Args: []string{"info"}, ExitCode: code, Output: output}
	}
	return ParseInfo(output), nil
}

// run executes a mutation and converts a non-zero exit into an ExecError
func (c *Client) run(ctx context.Context, args ...string) error {
	output, code := c.exec.Execute(ctx, args...)
	if code != 0 {
		return &ExecError{Args: args, ExitCode: code, Output: output}
	}
	return nil
}

// UnloadModule unloads the module with the given ID
func (c *Client) UnloadModule(ctx context.Context, moduleID string) error {
	return c.run(ctx, "unload-module", moduleID)
}

// DuplexSinkSpec describes a virtual duplex device to create
type DuplexSinkSpec struct {
	Name           string
	Description    string // informational only, not passed to pactl
	Channels       int
	Rate           *int
	Format         *string
	ChannelMap     *string
	SinkProperties *string
}

// Args returns the load-module argument vector for the spec
func (s DuplexSinkSpec) Args() []string {
	channels := s.Channels
	if channels <= 0 {
		channels = 2
	}

	args := []string{
		"load-module",
		NullSinkModule,
		"media.class=Audio/Duplex",
		"sink_name=" + s.Name,
		"channels=" + strconv.Itoa(channels),
	}

	if s.Rate != nil {
		args = append(args, "rate="+strconv.Itoa(*s.Rate))
	}
	if s.Format != nil {
		args = append(args, "format="+*s.Format)
	}
	if s.ChannelMap != nil {
		args = append(args, "channel_map="+*s.ChannelMap)
	}
	if s.SinkProperties != nil {
		args = append(args, "sink_properties="+*s.SinkProperties)
	}

	return args
}

// CommandLine joins binary (DefaultBinary if empty) and args into one line
func CommandLine(binary string, args ...string) string {
	if binary == "" {
		binary = DefaultBinary
	}
	return strings.Join(append([]string{binary}, args...), " ")
}

// CommandPreview returns the full command line that CreateDuplexSink would run with binary
func CommandPreview(binary string, spec DuplexSinkSpec) string {
	return CommandLine(binary, spec.Args()...)
}

// CreateDuplexSink loads a null sink with media.class=Audio/Duplex
func (c *Client) CreateDuplexSink(ctx context.Context, spec DuplexSinkSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidSinkName)
	}
	return c.run(ctx, spec.Args()...)
}

// UnloadAllNullSinks unloads every module-null-sink module.
// It returns how many were unloaded and one message per failure.
func (c *Client) UnloadAllNullSinks(ctx context.Context) (int, []string) {
	var successful int
	var errs []string

	for _, m := range c.ListModules(ctx) {
		if m.Name != NullSinkModule || m.ID == "" {
			continue
		}
		if err := c.UnloadModule(ctx, m.ID); err != nil {
			errs = append(errs, fmt.Sprintf("Failed to unload module #%s", m.ID))
			continue
		}
		successful++
	}

	return successful, errs
}

var invalidNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// AvailableName cleans base into a valid sink name and appends the
// first free counter (starting at 2) if it is already taken
func AvailableName(base string, existing map[string]bool) string {
	clean := invalidNameChars.ReplaceAllString(strings.ToLower(base), "")
	if clean == "" {
		clean = "custom"
	}

	if !existing[clean] {
		return clean
	}

	counter := 2
	for existing[clean+strconv.Itoa(counter)] {
		counter++
	}
	return clean + strconv.Itoa(counter)
}

// NameValidation is the result of ValidateSinkName
type NameValidation struct {
	Name       string // cleaned name when valid
	Suggestion string // replacement to offer when invalid
}

// ValidateSinkName checks a user-supplied sink name against pactl's
// accepted characters and the names already in use
func ValidateSinkName(name string, existing map[string]bool) (NameValidation, error) {
	clean := strings.TrimSpace(strings.ReplaceAll(name, " (auto)", ""))
	if clean == "" {
		return NameValidation{}, fmt.Errorf("%w: sink name cannot be empty", ErrInvalidSinkName)
	}

	if strings.Contains(clean, " ") {
		return NameValidation{}, fmt.Errorf("%w: sink name cannot contain spaces", ErrInvalidSinkName)
	}

	if invalidNameChars.MatchString(clean) {
		valid := invalidNameChars.ReplaceAllString(clean, "")
		return NameValidation{Suggestion: valid}, fmt.Errorf(
			"%w: sink name can only contain letters, numbers, hyphens, and underscores (suggested name: %s)",
			ErrInvalidSinkName, valid)
	}

	if existing[clean] {
		suggested := AvailableName(clean, existing)
		return NameValidation{Suggestion: suggested}, fmt.Errorf(
			"%w: name %q already exists (suggested name: %s)", ErrInvalidSinkName, clean, suggested)
	}

	return NameValidation{Name: clean}, nil
}

// SinkNames returns the set of names used by sinks
func SinkNames(sinks []Sink) map[string]bool {
	names := make(map[string]bool, len(sinks))
	for _, s := range sinks {
		names[s.Name] = true
	}
	return names
}
