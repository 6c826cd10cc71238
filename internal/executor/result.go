// result.go defines the command execution result structure.
// Everything about the outcome of a launched command, including failure
// and timeout, is carried here as data so callers handle local and remote
// executions through one uniform path.
package executor

import "time"

// Result holds the outcome of a command execution.
type Result struct {
	// ExitCode is the process exit code. -1 indicates timeout or signal death.
	ExitCode int `json:"exit_code"`

	// Stdout is the raw standard output, byte-for-byte as the command
	// produced it. Remote output is never re-encoded: JSON-consuming
	// callers depend on exact pass-through.
	Stdout []byte `json:"stdout"`

	// Stderr is the raw standard error output.
	Stderr []byte `json:"stderr"`

	// TimedOut is true if the command was killed by the timeout. Partial
	// output collected before termination is retained in Stdout/Stderr.
	TimedOut bool `json:"timed_out"`

	// Duration is how long the command ran.
	Duration time.Duration `json:"duration_ms"`

	// StartedAt is when execution began.
	StartedAt time.Time `json:"started_at"`
}

// DurationMs returns the duration in milliseconds for serialization.
func (r *Result) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
