package runner

import (
	shellquote "github.com/kballard/go-shellquote"
)

// FocusCommand is the assembled invocation for a runner.
type FocusCommand struct {
	// Args is the full argument vector; Args[0] is the program.
	Args []string

	// Expression is the raw filter expression, if one was given.
	Expression string
}

// Program returns the executable name.
func (c FocusCommand) Program() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// Arguments returns the arguments after the program name.
func (c FocusCommand) Arguments() []string {
	if len(c.Args) < 2 {
		return nil
	}
	return c.Args[1:]
}

// String renders the command as a shell-quoted line for display.
func (c FocusCommand) String() string {
	return shellquote.Join(c.Args...)
}

// invocation is the fixed prefix and filter flag for one runner.
type invocation struct {
	prefix     []string
	filterFlag string
}

var invocations = map[Kind]invocation{
	Pytest: {prefix: []string{"pytest", "-q"}, filterFlag: "-k"},
	Nose:   {prefix: []string{"nosetests"}, filterFlag: "-m"},
	Jest:   {prefix: []string{"npx", "jest"}, filterFlag: "--testNamePattern"},
	Mocha:  {prefix: []string{"npx", "mocha"}, filterFlag: "--grep"},
}

// BuildCommand assembles the invocation for k: the runner prefix, then the
// filter flag and expression when expression is non-empty, then the test
// targets in order. ok is false when k is not a supported runner.
func BuildCommand(k Kind, tests []string, expression string) (cmd FocusCommand, ok bool) {
	inv, ok := invocations[k]
	if !ok {
		return FocusCommand{}, false
	}

	args := make([]string, 0, len(inv.prefix)+2+len(tests))
	args = append(args, inv.prefix...)
	if expression != "" {
		args = append(args, inv.filterFlag, expression)
	}
	args = append(args, tests...)

	return FocusCommand{Args: args, Expression: expression}, true
}
