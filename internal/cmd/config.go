package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dimtass/kubectl-mcp-server/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved adapter configuration",
	Long: `Print the effective configuration after resolving the environment and
any config file, as YAML. The SSH key is reported by path only; key
contents are never read or shown.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// renderedConfig shapes the resolved configuration for YAML output,
// mirroring the config file's own key layout.
type renderedConfig struct {
	SSH struct {
		Enabled               bool   `yaml:"enabled"`
		User                  string `yaml:"user,omitempty"`
		Host                  string `yaml:"host,omitempty"`
		Port                  uint16 `yaml:"port"`
		Key                   string `yaml:"key,omitempty"`
		AcceptUnknownHostKeys bool   `yaml:"accept_unknown_host_keys"`
	} `yaml:"ssh"`
	LogLevel       string `yaml:"log_level"`
	Debug          bool   `yaml:"debug"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	HistoryDB      string `yaml:"history_db,omitempty"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}

	var out renderedConfig
	out.SSH.Enabled = cfg.Remote.Enabled
	out.SSH.User = cfg.Remote.User
	out.SSH.Host = cfg.Remote.Host
	out.SSH.Port = cfg.Remote.Port
	out.SSH.Key = cfg.Remote.KeyPath
	out.SSH.AcceptUnknownHostKeys = cfg.Remote.AcceptUnknownHostKeys
	out.LogLevel = cfg.LogLevel
	out.Debug = cfg.Debug
	out.TimeoutSeconds = int(cfg.Timeout.Seconds())
	out.HistoryDB = cfg.HistoryDB

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}

	os.Stdout.Write(data)
	return nil
}
