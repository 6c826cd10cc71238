// kubectl-mcp-exec - Entry Point
//
// Diagnostic CLI for the kubectl MCP server's remote execution adapter.
// It resolves the adapter configuration, runs kubectl/helm commands
// through the same local-or-SSH path the MCP dispatch layer uses, and
// lists the recorded execution history.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dimtass/kubectl-mcp-server/internal/cmd"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	var exitErr *cmd.ExitCodeError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintln(os.Stderr, "Error:", exitErr.Message)
		}
		os.Exit(exitErr.Code)
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
