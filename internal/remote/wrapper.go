// Package remote makes kubectl/helm execution location-transparent: it
// decides whether a command runs on the local machine or on the configured
// SSH host, builds the corresponding invocation, and exposes the single
// Execute surface the tool dispatch layer calls.
package remote

import (
	"strconv"

	"github.com/kballard/go-shellquote"

	"github.com/dimtass/kubectl-mcp-server/internal/config"
	"github.com/dimtass/kubectl-mcp-server/internal/executor"
)

// sshProgram is the SSH client binary used for remote execution.
const sshProgram = "ssh"

// Fixed connection options appended in remote mode. Operator-facing debug
// output depends on these exact strings, in this order.
const (
	optAcceptNewHostKeys  = "StrictHostKeyChecking=accept-new"
	optAcceptAnyHostKey   = "StrictHostKeyChecking=no"
	optDiscardKnownHosts  = "UserKnownHostsFile=/dev/null"
	optMinimalClientNoise = "LogLevel=ERROR"
)

// Wrap transforms cmd for execution under the given remote configuration.
//
// With remote mode disabled it returns cmd unchanged. With remote mode
// enabled it returns an ssh invocation carrying, in order: the port option
// when the port is non-default, the identity-file option when a key path
// is configured, the fixed connection options, the target, and the
// original command rendered as a single remote-shell token.
//
// Wrap is pure: no I/O, and identical inputs produce identical output.
func Wrap(r config.Remote, cmd executor.Command) executor.Command {
	if !r.Enabled {
		return cmd
	}

	args := make([]string, 0, 12)

	if r.Port != config.DefaultSSHPort {
		args = append(args, "-p", strconv.Itoa(int(r.Port)))
	}
	if r.KeyPath != "" {
		args = append(args, "-i", r.KeyPath)
	}

	// Host-key policy: accept-new by default; the original accept-and-
	// discard behavior is opt-in. LogLevel=ERROR keeps the ssh client's
	// own chatter out of the command's stderr either way.
	if r.AcceptUnknownHostKeys {
		args = append(args,
			"-o", optAcceptAnyHostKey,
			"-o", optDiscardKnownHosts,
			"-o", optMinimalClientNoise,
		)
	} else {
		args = append(args,
			"-o", optAcceptNewHostKeys,
			"-o", optMinimalClientNoise,
		)
	}

	args = append(args, r.Target(), remoteToken(cmd))

	return executor.Command{Program: sshProgram, Args: args}
}

// remoteToken renders the command as the single token handed to the
// remote shell. This is the one deliberate place where discrete argument
// tokens become a shell string; shellquote guarantees the remote shell
// splits it back into exactly the original tokens, even when they carry
// whitespace or shell metacharacters.
func remoteToken(cmd executor.Command) string {
	tokens := make([]string, 0, len(cmd.Args)+1)
	tokens = append(tokens, cmd.Program)
	tokens = append(tokens, cmd.Args...)
	return shellquote.Join(tokens...)
}
