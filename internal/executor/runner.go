// runner.go implements subprocess execution with timeout and process group
// management. The whole process group is killed on timeout so the ssh
// client and anything it spawned die together, preventing orphan processes
// from accumulating.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"syscall"
	"time"
)

// DefaultTimeout bounds execution when the caller passes no timeout.
const DefaultTimeout = 10 * time.Second

// waitDelay ensures Wait() is not blocked forever by inherited pipe fds
// of grandchildren that survived the kill.
const waitDelay = 5 * time.Second

// Runner executes commands with timeout and output capture. The zero
// value is ready to use; concurrent Run calls are fully independent.
type Runner struct{}

// New creates a Runner.
func New() *Runner {
	return &Runner{}
}

// Run executes cmd and returns its outcome.
//
// An error is returned only when the subprocess could not be started at
// all (binary not found, permission denied). Every outcome of a launched
// command, including non-zero exit and timeout, comes back as a Result.
// timeout <= 0 selects DefaultTimeout.
func (r *Runner) Run(ctx context.Context, cmd Command, timeout time.Duration) (*Result, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	proc := exec.CommandContext(execCtx, cmd.Program, cmd.Args...)

	// New process group so the timeout kill reaches all children.
	proc.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var stdout, stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	// Kill the entire process group (negative PID) instead of just the
	// direct child.
	proc.Cancel = func() error {
		if proc.Process == nil {
			return nil
		}
		return syscall.Kill(-proc.Process.Pid, syscall.SIGKILL)
	}
	proc.WaitDelay = waitDelay

	result := &Result{
		StartedAt: time.Now(),
	}

	err := proc.Run()
	result.Duration = time.Since(result.StartedAt)
	result.Stdout = stdout.Bytes()
	result.Stderr = stderr.Bytes()

	if err != nil {
		if execCtx.Err() == context.DeadlineExceeded {
			result.ExitCode = -1
			result.TimedOut = true
			return result, nil
		}

		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}

		// Launch failure: command not found, permission denied, etc.
		return nil, fmt.Errorf("failed to start %s: %w", cmd.Program, err)
	}

	result.ExitCode = 0
	return result, nil
}
