package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sigreer/pactlgod/internal/config"
	"github.com/sigreer/pactlgod/internal/db"
	"github.com/sigreer/pactlgod/internal/logging"
	"github.com/sigreer/pactlgod/internal/pactl"
	"github.com/sigreer/pactlgod/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pactlgod",
	Short: "Inspect and manage PulseAudio/PipeWire devices through pactl",
	Long: `pactlgod lists the modules, sinks and sources reported by pactl,
correlates them into physical and virtual devices, and creates or removes
virtual duplex devices from reusable presets.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("pactlgod", version.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/pactlgod/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(detailCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(unloadCmd)
	rootCmd.AddCommand(unloadAllCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(healthcheckCmd)
}

// loadEnv loads the config and builds the logger, exiting on failure
func loadEnv() (*config.Config, *zap.SugaredLogger) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		exit(1)
	}

	logger, err := logging.New(logging.Config{
		Level:   cfg.LogLevel,
		Verbose: verbose,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		exit(1)
	}

	if cfg.Source != "" {
		logger.Debugw("Loaded config", "path", cfg.Source)
	}
	return cfg, logger
}

func newClient(cfg *config.Config, logger *zap.SugaredLogger) *pactl.Client {
	runner := pactl.NewCommandRunner(cfg.PactlPath, cfg.CommandTimeout, logger)
	return pactl.NewClient(runner, logger)
}

// closers are closed by exit before the process ends
var closers []io.Closer

var osExit = os.Exit

// exit closes every handle opened through openDB and ends the process
func exit(code int) {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i].Close()
	}
	closers = nil
	osExit(code)
}

func openDB(cfg *config.Config) *db.DB {
	database, err := db.New(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		exit(1)
	}
	closers = append(closers, database)
	return database
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exit(1)
	}
}
