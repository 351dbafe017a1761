package pactl

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBinary is the command-line tool invoked when none is configured
const DefaultBinary = "pactl"

// Executor runs the audio server's command-line tool.
// Output is stdout and stderr merged; exitCode 0 means success.
type Executor interface {
	Execute(ctx context.Context, args ...string) (output string, exitCode int)
}

// ExecFunc adapts a plain function to the Executor interface
type ExecFunc func(ctx context.Context, args ...string) (string, int)

// Execute calls f
func (f ExecFunc) Execute(ctx context.Context, args ...string) (string, int) {
	return f(ctx, args...)
}

// CommandRunner executes a real binary through os/exec
type CommandRunner struct {
	Binary  string
	Timeout time.Duration

	logger *zap.SugaredLogger
}

// NewCommandRunner creates a runner for binary (DefaultBinary if empty).
// A zero timeout lets the command run until it exits.
func NewCommandRunner(binary string, timeout time.Duration, logger *zap.SugaredLogger) *CommandRunner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &CommandRunner{
		Binary:  binary,
		Timeout: timeout,
		logger:  logger.Named("exec"),
	}
}

// Execute runs the binary with args and waits for it to exit
func (r *CommandRunner) Execute(ctx context.Context, args ...string) (string, int) {
	commandStr := r.Binary + " " + strings.Join(args, " ")
	r.logger.Debugf("$ %s", commandStr)

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	out, err := exec.CommandContext(ctx, r.Binary, args...).CombinedOutput()
	output := string(out)

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				// killed by a signal or the context
				code = 1
			}
			r.logger.Warnw("Command failed", "command", commandStr, "exit_code", code, "output", strings.TrimSpace(output))
			return output, code
		}

		// The process never started; report the spawn error as its output
		r.logger.Warnw("Command execution failed", "command", commandStr, "error", err)
		return err.Error(), 1
	}

	if isQuery(args) {
		r.logger.Debugw("Command completed successfully", "command", commandStr, "bytes", len(out))
	} else if trimmed := strings.TrimSpace(output); trimmed != "" {
		r.logger.Infow("Command completed successfully", "command", commandStr, "output", trimmed)
	} else {
		r.logger.Infow("Command completed successfully", "command", commandStr)
	}

	return output, 0
}

// isQuery reports whether args are a read-only listing whose output is too long to log
func isQuery(args []string) bool {
	return len(args) > 0 && (args[0] == "list" || args[0] == "info")
}

// ExecError is returned when the tool exits non-zero
type ExecError struct {
	Args     []string
	ExitCode int
	Output   string
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("pactl %s failed (exit code %d)", strings.Join(e.Args, " "), e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}
