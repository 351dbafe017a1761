package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sigreer/pactlgod/internal/db"
	"github.com/sigreer/pactlgod/internal/pactl"
	"github.com/sigreer/pactlgod/internal/presets"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a virtual duplex device",
	Long: `Create a virtual duplex device by loading module-null-sink with
media.class=Audio/Duplex.

Settings come from a preset (Stereo by default) and can be overridden with
flags. Without a name, one is derived from the preset and the first free
counter is appended when it is taken (stereo, stereo2, ...).

Examples:
  pactlgod create
  pactlgod create music --preset "5.1 Surround"
  pactlgod create voip_mix --channels 1 --channel-map mono --dry-run`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCreate,
}

func init() {
	createCmd.Flags().StringP("preset", "p", "Stereo", "preset to start from")
	createCmd.Flags().Int("channels", 0, "number of channels")
	createCmd.Flags().Int("rate", 0, "sample rate in Hz")
	createCmd.Flags().String("format", "", "sample format (e.g. s16le, float32le)")
	createCmd.Flags().String("channel-map", "", "comma separated channel positions")
	createCmd.Flags().String("sink-properties", "", "extra sink properties")
	createCmd.Flags().Bool("dry-run", false, "Print the pactl command without running it")
}

func runCreate(cmd *cobra.Command, args []string) {
	presetName, _ := cmd.Flags().GetString("preset")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, logger := loadEnv()
	database := openDB(cfg)
	defer database.Close()
	store := presets.NewStore(database)

	preset, err := store.Get(presetName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading preset: %v\n", err)
		exit(1)
	}

	flags := cmd.Flags()
	if flags.Changed("channels") {
		preset.Channels, _ = flags.GetInt("channels")
	}
	if flags.Changed("rate") {
		rate, _ := flags.GetInt("rate")
		preset.Rate = &rate
	}
	if flags.Changed("format") {
		format, _ := flags.GetString("format")
		preset.Format = &format
	}
	if flags.Changed("channel-map") {
		preset.ChannelMap, _ = flags.GetString("channel-map")
	}
	if flags.Changed("sink-properties") {
		props, _ := flags.GetString("sink-properties")
		preset.Properties = &props
	}

	client := newClient(cfg, logger)
	ctx := cmd.Context()
	existing := pactl.SinkNames(client.ListSinks(ctx))

	var name string
	if len(args) == 0 || strings.HasSuffix(args[0], " (auto)") {
		name = pactl.AvailableName(presets.BaseName(presetName), existing)
	} else {
		result, err := pactl.ValidateSinkName(args[0], existing)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exit(1)
		}
		name = result.Name
	}

	spec := preset.Spec(name)
	command := pactl.CommandPreview(cfg.PactlPath, spec)

	if dryRun {
		fmt.Println(command)
		return
	}

	err = client.CreateDuplexSink(ctx, spec)
	recordMutation(database, logger, db.ActionCreate, name, command, err)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating device: %v\n", err)
		exit(1)
	}

	fmt.Printf("Created virtual device %s (%d channels)\n", name, spec.Channels)
	if spec.Description != "" {
		fmt.Printf("  %s\n", spec.Description)
	}
}

// recordMutation writes a mutation to the audit log.
// Failing to record never fails the command.
func recordMutation(database *db.DB, logger *zap.SugaredLogger, action, target, command string, err error) {
	exitCode, output := 0, ""
	var execErr *pactl.ExecError
	if errors.As(err, &execErr) {
		exitCode, output = execErr.ExitCode, strings.TrimSpace(execErr.Output)
	} else if err != nil {
		exitCode, output = 1, err.Error()
	}

	if recErr := database.RecordEvent(action, target, command, exitCode, output); recErr != nil {
		logger.Warnw("Failed to record mutation", "action", action, "error", recErr)
	}
}
