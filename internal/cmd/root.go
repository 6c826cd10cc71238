// Package cmd implements the CLI commands for kubectl-mcp-exec.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dimtass/kubectl-mcp-server/internal/version"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kubectl-mcp-exec",
	Short: "Run kubectl/helm commands locally or on a remote SSH host",
	Long: `kubectl-mcp-exec drives the MCP server's remote execution adapter directly.

The adapter runs kubectl and helm commands either on the local machine or,
when KUBECTL_SSH_ENABLED is set, on a remote host reached over SSH. This
tool lets operators verify a remote configuration without a full MCP
client: resolve and print the effective configuration, run one command
through the adapter, and inspect the recent execution history.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns any error.
func Execute() error {
	return rootCmd.Execute()
}
