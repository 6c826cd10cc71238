// Package config resolves the adapter configuration from the process
// environment, optionally layered over a YAML config file.
//
// The environment is the primary source so the adapter can be configured
// from an MCP client's server definition without any files on disk. A YAML
// file (pointed at by KUBECTL_MCP_CONFIG) can hold the same settings; any
// environment key set overrides the file.
//
// Configuration is resolved once and is immutable afterwards, so a single
// Config can be shared across concurrent executions without locking.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dimtass/kubectl-mcp-server/internal/executor"
)

// Environment keys recognized by Load. The KUBECTL_SSH_* keys match the
// original tool's interface and must not change.
const (
	EnvConfigFile = "KUBECTL_MCP_CONFIG"

	EnvSSHEnabled       = "KUBECTL_SSH_ENABLED"
	EnvSSHUser          = "KUBECTL_SSH_USER"
	EnvSSHHost          = "KUBECTL_SSH_HOST"
	EnvSSHPort          = "KUBECTL_SSH_PORT"
	EnvSSHKey           = "KUBECTL_SSH_KEY"
	EnvSSHAcceptUnknown = "KUBECTL_SSH_ACCEPT_UNKNOWN_HOST_KEYS"

	EnvLogLevel  = "KUBECTL_MCP_LOG_LEVEL"
	EnvDebug     = "KUBECTL_MCP_DEBUG"
	EnvTimeout   = "KUBECTL_MCP_TIMEOUT"
	EnvHistoryDB = "KUBECTL_MCP_HISTORY_DB"
)

// DefaultSSHPort is used when no port is configured.
const DefaultSSHPort uint16 = 22

// Validation errors returned by Load. Malformed values fail the load
// rather than silently falling back to local execution.
var (
	ErrHostRequired   = errors.New("ssh host is required when remote mode is enabled")
	ErrInvalidPort    = errors.New("ssh port must be an integer between 1 and 65535")
	ErrInvalidTimeout = errors.New("timeout must be a positive number of seconds")
)

// Remote holds the parameters for executing commands on a remote host
// over SSH. The zero value means local execution.
type Remote struct {
	// Enabled switches command execution to the remote host.
	Enabled bool

	// User is the SSH login name. Optional: when empty the ssh client's
	// own configuration (ssh_config aliases) supplies it.
	User string

	// Host is the remote hostname, IP address, or ssh_config alias.
	// Required when Enabled is true.
	Host string

	// Port is the SSH port, default 22.
	Port uint16

	// KeyPath points at a private key file. Only the path is ever read
	// or logged, never the key material. Empty means the ssh client's
	// default identity resolution (agent, ~/.ssh keys).
	KeyPath string

	// AcceptUnknownHostKeys opts into the original zero-friction
	// behavior: accept any host key and discard it afterwards. The
	// default is the safer accept-new policy.
	AcceptUnknownHostKeys bool
}

// Target returns the ssh destination token: "user@host", or the bare
// host when no user is configured.
func (r Remote) Target() string {
	if r.User == "" {
		return r.Host
	}
	return r.User + "@" + r.Host
}

// Config is the full adapter configuration.
type Config struct {
	// Remote controls local vs remote execution.
	Remote Remote

	// LogLevel controls logging verbosity: "debug", "info", "warn", "error".
	LogLevel string

	// Debug forces debug-level logging and enables command tracing.
	Debug bool

	// Timeout is the default per-command execution timeout.
	Timeout time.Duration

	// HistoryDB is the path of the execution history database.
	// Empty disables history recording.
	HistoryDB string
}

// HistoryEnabled reports whether executions should be recorded.
func (c *Config) HistoryEnabled() bool {
	return c.HistoryDB != ""
}

// envKeys maps recognized environment keys to their koanf paths.
var envKeys = map[string]string{
	EnvSSHEnabled:       "ssh.enabled",
	EnvSSHUser:          "ssh.user",
	EnvSSHHost:          "ssh.host",
	EnvSSHPort:          "ssh.port",
	EnvSSHKey:           "ssh.key",
	EnvSSHAcceptUnknown: "ssh.accept_unknown_host_keys",
	EnvLogLevel:         "log_level",
	EnvDebug:            "debug",
	EnvTimeout:          "timeout_seconds",
	EnvHistoryDB:        "history_db",
}

// LoadFromEnv resolves configuration from the real process environment.
func LoadFromEnv() (*Config, error) {
	environ := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}
	return Load(environ)
}

// Load resolves configuration from the given key-value source. Taking
// the source as a plain map keeps loading deterministic under test
// without mutating the real environment.
func Load(environ map[string]string) (*Config, error) {
	k := koanf.New(".")

	// Optional YAML file first, so environment keys override it.
	if path := environ[EnvConfigFile]; path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	overlay := make(map[string]interface{})
	for env, key := range envKeys {
		if v, ok := environ[env]; ok {
			overlay[key] = v
		}
	}
	if err := k.Load(confmap.Provider(overlay, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	cfg := &Config{
		LogLevel:  strings.TrimSpace(k.String("log_level")),
		Debug:     truthyAt(k, "debug"),
		Timeout:   executor.DefaultTimeout,
		HistoryDB: k.String("history_db"),
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if raw := rawAt(k, "timeout_seconds"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimeout, raw)
		}
		cfg.Timeout = time.Duration(secs) * time.Second
	}

	remote, err := loadRemote(k)
	if err != nil {
		return nil, err
	}
	cfg.Remote = remote

	return cfg, nil
}

// loadRemote parses and validates the ssh.* section.
func loadRemote(k *koanf.Koanf) (Remote, error) {
	r := Remote{
		Enabled:               truthyAt(k, "ssh.enabled"),
		User:                  strings.TrimSpace(k.String("ssh.user")),
		Host:                  strings.TrimSpace(k.String("ssh.host")),
		Port:                  DefaultSSHPort,
		KeyPath:               expandHome(strings.TrimSpace(k.String("ssh.key"))),
		AcceptUnknownHostKeys: truthyAt(k, "ssh.accept_unknown_host_keys"),
	}

	// Malformed ports fail the load even in local mode: a typo should
	// surface immediately, not the first time remote mode is turned on.
	if raw := rawAt(k, "ssh.port"); raw != "" {
		port, err := strconv.ParseUint(raw, 10, 16)
		if err != nil || port == 0 {
			return Remote{}, fmt.Errorf("%w: %q", ErrInvalidPort, raw)
		}
		r.Port = uint16(port)
	}

	if r.Enabled && r.Host == "" {
		return Remote{}, ErrHostRequired
	}

	return r, nil
}

// rawAt renders the value at path as a trimmed string, regardless of
// the scalar type the YAML parser produced. Absent keys yield "".
func rawAt(k *koanf.Koanf, path string) string {
	v := k.Get(path)
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

// truthyAt reports whether the value at path is one of the accepted
// enable tokens. The token set matches the original tool: true, 1, yes
// (case-insensitive); YAML booleans count as their string form.
func truthyAt(k *koanf.Koanf, path string) bool {
	switch strings.ToLower(rawAt(k, path)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// expandHome resolves a leading ~ to the current user's home directory.
// The path is returned unchanged when the home directory is unknown.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
