// tracer.go records the fully resolved command line before execution.
// The tracer is constructed with an explicit enabled flag and logger
// instead of consulting process-wide state, so tests can turn tracing on
// and off per case.
package remote

import (
	"log/slog"

	"github.com/dimtass/kubectl-mcp-server/internal/executor"
)

// Tracer emits resolved command lines for operator diagnosis.
type Tracer struct {
	enabled bool
	logger  *slog.Logger
}

// NewTracer creates a Tracer. A nil logger falls back to slog.Default.
func NewTracer(enabled bool, logger *slog.Logger) *Tracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracer{enabled: enabled, logger: logger}
}

// Trace logs the command exactly as it will be executed, space-joined.
// Read-only instrumentation: it never alters the execution outcome. Key
// material never appears here; the command carries only the key path.
func (t *Tracer) Trace(cmd executor.Command) {
	if t == nil || !t.enabled {
		return
	}
	t.logger.Debug("Wrapped command: " + cmd.String())
}
