package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// NoExecError is returned when a command has no execution function.
type NoExecError struct {
	Command *Command
}

func (e *NoExecError) Error() string {
	return fmt.Sprintf("command %q has no execution function", e.Command.Name)
}

// Command describes the program: its name, help text, flags and what it does once the arguments
// are parsed.
type Command struct {
	// Name is a single word identifying the command in help text and error messages.
	Name string

	// Usage provides the command's full usage pattern.
	//
	// Example: "shiftcipher [flags]"
	Usage string

	// ShortHelp is a brief description of the command's purpose, shown at the top of the help
	// text.
	ShortHelp string

	// UsageFunc optionally replaces [DefaultUsage] when rendering help.
	UsageFunc func(*Command) string

	// Flags holds the flag definitions. Every non-boolean flag takes exactly one value.
	Flags *flag.FlagSet

	// Exec runs the command with the parsed [State].
	Exec func(ctx context.Context, s *State) error

	state *State
}

// FlagsFunc is a helper function that creates a new [flag.FlagSet] and applies the given function
// to it. Example usage:
//
//	cmd.Flags = cli.FlagsFunc(func(f *flag.FlagSet) {
//	    f.String("mode", "enc", "enc or dec")
//	    f.Int("key", 0, "shift amount")
//	})
func FlagsFunc(fn func(*flag.FlagSet)) *flag.FlagSet {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	fn(fset)
	return fset
}

// flagNames returns every flag name prefixed with a single dash, in lexical order.
func (c *Command) flagNames() []string {
	var names []string
	if c.Flags != nil {
		c.Flags.VisitAll(func(f *flag.Flag) {
			names = append(names, "-"+f.Name)
		})
	}
	return names
}

func (c *Command) showHelp() error {
	w := io.Writer(os.Stderr)
	if c.Flags != nil {
		w = c.Flags.Output()
	}
	usage := DefaultUsage(c)
	if c.UsageFunc != nil {
		usage = c.UsageFunc(c)
	}
	fmt.Fprintln(w, strings.TrimRight(usage, "\n"))
	return flag.ErrHelp
}
