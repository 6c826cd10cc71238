package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dimtass/kubectl-mcp-server/internal/config"
	"github.com/dimtass/kubectl-mcp-server/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent executions",
	Long: `List recent command executions recorded by the adapter.

History is only recorded when KUBECTL_MCP_HISTORY_DB (or history_db in the
config file) points at a database path. Entries hold outcome metadata
only; command output is never stored.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum entries to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	if !cfg.HistoryEnabled() {
		return fmt.Errorf("execution history is not configured; set %s", config.EnvHistoryDB)
	}

	log, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer log.Close()

	entries, err := log.Recent(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No recorded executions.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tTARGET\tEXIT\tDURATION\tCOMMAND")
	for _, e := range entries {
		target := e.Target
		if target == "" {
			target = "local"
		}
		exit := fmt.Sprintf("%d", e.ExitCode)
		if e.TimedOut {
			exit = "timeout"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%dms\t%s\n",
			e.StartedAt.Local().Format(time.RFC3339),
			target,
			exit,
			e.DurationMs,
			e.CommandLine,
		)
	}
	return w.Flush()
}
