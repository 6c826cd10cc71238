// service.go composes wrapping, tracing, execution, and history recording
// behind the one call surface the dispatch layer uses.
package remote

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dimtass/kubectl-mcp-server/internal/config"
	"github.com/dimtass/kubectl-mcp-server/internal/executor"
	"github.com/dimtass/kubectl-mcp-server/internal/history"
)

// historyCap bounds the execution history; older entries are pruned.
const historyCap = 500

// Service executes commands locally or remotely according to its
// configuration. Safe for concurrent use: the configuration is read-only
// and each execution gets its own subprocess and timeout clock.
type Service struct {
	cfg     *config.Config
	runner  *executor.Runner
	tracer  *Tracer
	history *history.Log
	logger  *slog.Logger
}

// NewService creates a Service from resolved configuration. When history
// recording is configured the history database is opened here; call Close
// when done. A nil logger falls back to slog.Default.
func NewService(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		cfg:    cfg,
		runner: executor.New(),
		tracer: NewTracer(cfg.Debug, logger),
		logger: logger,
	}

	if cfg.HistoryEnabled() {
		log, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return nil, fmt.Errorf("failed to open history database: %w", err)
		}
		s.history = log
	}

	return s, nil
}

// Close releases the history database, if open.
func (s *Service) Close() error {
	if s.history != nil {
		return s.history.Close()
	}
	return nil
}

// Execute runs program with args, transparently local or remote.
//
// timeout <= 0 selects the configured default. The error return is
// reserved for launch failures; command outcome, including non-zero exit
// and timeout, is always data in the Result.
func (s *Service) Execute(ctx context.Context, program string, args []string, timeout time.Duration) (*executor.Result, error) {
	if timeout <= 0 {
		timeout = s.cfg.Timeout
	}

	cmd := Wrap(s.cfg.Remote, executor.NewCommand(program, args...))
	s.tracer.Trace(cmd)

	result, err := s.runner.Run(ctx, cmd, timeout)
	if err != nil {
		return nil, err
	}

	s.record(program, cmd, result)
	return result, nil
}

// record appends the outcome to the execution history. History is
// diagnostics only: failures are logged and never affect the result.
func (s *Service) record(program string, cmd executor.Command, res *executor.Result) {
	if s.history == nil {
		return
	}

	target := ""
	if s.cfg.Remote.Enabled {
		target = s.cfg.Remote.Target()
	}

	entry := history.Entry{
		StartedAt:   res.StartedAt,
		Program:     program,
		CommandLine: cmd.String(),
		Target:      target,
		ExitCode:    res.ExitCode,
		DurationMs:  res.Duration.Milliseconds(),
		TimedOut:    res.TimedOut,
	}

	if err := s.history.Append(entry); err != nil {
		s.logger.Warn("failed to record execution", "error", err)
		return
	}
	if err := s.history.Prune(historyCap); err != nil {
		s.logger.Warn("failed to prune execution history", "error", err)
	}
}
