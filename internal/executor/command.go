// command.go defines the argument-vector command representation.
// Commands are always kept as discrete tokens; they are never joined into
// a shell string on the local side, which keeps user-influenced values
// (namespaces, resource names, label selectors) inert.
package executor

import "strings"

// Command is one subprocess invocation: a program and its argument vector.
type Command struct {
	// Program is the binary to run, resolved via $PATH.
	Program string

	// Args are the discrete argument tokens, in order.
	Args []string
}

// NewCommand builds a Command from a program and its arguments.
// The argument slice is copied so later mutation by the caller cannot
// leak into an in-flight execution.
func NewCommand(program string, args ...string) Command {
	c := Command{Program: program}
	if len(args) > 0 {
		c.Args = make([]string, len(args))
		copy(c.Args, args)
	}
	return c
}

// String renders the command line in the exact space-joined form that
// will be executed. Used for tracing and history, never for execution.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}
