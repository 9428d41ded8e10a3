package capture

import (
	"strings"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/devtriage/internal/errors"
)

// shellOperators are characters that need a shell to mean what the user
// typed. A command string containing any of them runs through sh -c.
const shellOperators = "|&;<>()$`*?~\n"

// Command is something to execute: an argument vector, or a shell line.
type Command struct {
	// Args is the argument vector; Args[0] is the program.
	Args []string

	// Shell is the raw line to hand to sh -c. When set, Args is ignored.
	Shell string
}

// ParseCommand turns a user-supplied command string into a Command.
// Plain lines are split with shell quoting rules and run directly; lines
// using pipes, redirection, globbing or substitution run through sh.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, errors.ValidationError("command is empty")
	}
	if strings.ContainsAny(line, shellOperators) {
		return Command{Shell: line}, nil
	}

	args, err := shellquote.Split(line)
	if err != nil {
		return Command{}, errors.Wrap(errors.ExitValidation, "cannot parse command", err)
	}
	if len(args) == 0 {
		return Command{}, errors.ValidationError("command is empty")
	}
	return Command{Args: args}, nil
}

// Argv returns a Command that runs args directly.
func Argv(args ...string) Command {
	return Command{Args: args}
}

// IsShell reports whether the command runs through sh -c.
func (c Command) IsShell() bool {
	return c.Shell != ""
}

// Program returns the executable that will be started.
func (c Command) Program() string {
	if c.IsShell() {
		return "sh"
	}
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// Arguments returns the arguments passed to Program.
func (c Command) Arguments() []string {
	if c.IsShell() {
		return []string{"-c", c.Shell}
	}
	if len(c.Args) < 2 {
		return nil
	}
	return c.Args[1:]
}

// String renders the command the way the user would type it.
func (c Command) String() string {
	if c.IsShell() {
		return c.Shell
	}
	return shellquote.Join(c.Args...)
}
