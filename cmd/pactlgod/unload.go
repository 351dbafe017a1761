package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sigreer/pactlgod/internal/db"
	"github.com/sigreer/pactlgod/internal/pactl"
	"github.com/spf13/cobra"
)

var unloadCmd = &cobra.Command{
	Use:   "unload <module-id>",
	Short: "Unload a module",
	Args:  cobra.ExactArgs(1),
	Run:   runUnload,
}

var unloadAllCmd = &cobra.Command{
	Use:   "unload-all",
	Short: "Unload every virtual device (module-null-sink)",
	Run:   runUnloadAll,
}

func init() {
	unloadAllCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

func runUnload(cmd *cobra.Command, args []string) {
	moduleID := strings.TrimPrefix(args[0], "#")

	cfg, logger := loadEnv()
	database := openDB(cfg)
	defer database.Close()
	client := newClient(cfg, logger)

	err := client.UnloadModule(cmd.Context(), moduleID)
	recordMutation(database, logger, db.ActionUnload, moduleID, pactl.CommandLine(cfg.PactlPath, "unload-module", moduleID), err)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error unloading module: %v\n", err)
		exit(1)
	}
	fmt.Printf("Unloaded module #%s\n", moduleID)
}

func runUnloadAll(cmd *cobra.Command, args []string) {
	yes, _ := cmd.Flags().GetBool("yes")

	cfg, logger := loadEnv()
	database := openDB(cfg)
	defer database.Close()
	client := newClient(cfg, logger)
	ctx := cmd.Context()

	var count int
	for _, m := range client.ListModules(ctx) {
		if m.Name == pactl.NullSinkModule {
			count++
		}
	}
	if count == 0 {
		fmt.Println("No virtual devices loaded.")
		return
	}

	if !yes && !confirm(fmt.Sprintf("Unload %d virtual devices?", count)) {
		fmt.Println("Aborted.")
		return
	}

	successful, errs := client.UnloadAllNullSinks(ctx)

	exitCode := 0
	if len(errs) > 0 {
		exitCode = 1
	}
	command := pactl.CommandLine(cfg.PactlPath, "unload-module", pactl.NullSinkModule)
	if err := database.RecordEvent(db.ActionUnloadAll, pactl.NullSinkModule, command, exitCode, strings.Join(errs, "\n")); err != nil {
		logger.Warnw("Failed to record mutation", "action", db.ActionUnloadAll, "error", err)
	}

	fmt.Printf("Unloaded %d virtual devices\n", successful)
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}
	if len(errs) > 0 {
		exit(1)
	}
}

// confirm asks a yes/no question on stdin, defaulting to no
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
