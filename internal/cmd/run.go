package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dimtass/kubectl-mcp-server/internal/config"
	"github.com/dimtass/kubectl-mcp-server/internal/logging"
	"github.com/dimtass/kubectl-mcp-server/internal/remote"
)

// Exit codes for outcomes that have no exit code of their own, matching
// the shell's conventions for timeout and command-not-found.
const (
	exitTimedOut      = 124
	exitLaunchFailure = 127
)

var runTimeout time.Duration

var runCmd = &cobra.Command{
	Use:   "run -- <program> [args...]",
	Short: "Execute one command through the adapter",
	Long: `Execute a command through the remote execution adapter.

With remote mode disabled the command runs locally, exactly as invoked.
With remote mode enabled it runs on the configured SSH host. Either way,
stdout and stderr are passed through byte-for-byte and the command's exit
code becomes this process's exit code (124 on timeout, 127 when the
command could not be started).`,
	Example: `  kubectl-mcp-exec run -- kubectl get pods -n default
  kubectl-mcp-exec run --timeout 30s -- helm list --all-namespaces`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0,
		"execution timeout (default from configuration, 10s)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	logger := logging.SetupLogger(cfg.LogLevel, cfg.Debug)

	svc, err := remote.NewService(cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.Execute(cmd.Context(), args[0], args[1:], runTimeout)
	if err != nil {
		return &ExitCodeError{Code: exitLaunchFailure, Message: err.Error()}
	}

	// Byte-exact pass-through before any exit handling.
	os.Stdout.Write(result.Stdout)
	os.Stderr.Write(result.Stderr)

	if result.TimedOut {
		return &ExitCodeError{Code: exitTimedOut, Message: "execution timed out"}
	}
	if result.ExitCode != 0 {
		return &ExitCodeError{Code: result.ExitCode}
	}
	return nil
}
