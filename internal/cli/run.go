package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/mfridman/shiftcipher/internal/ctxlog"
	"github.com/mfridman/shiftcipher/pkg/suggest"
)

// ParseAndRun parses the arguments and runs the command. A convenience function that combines
// [Parse] and [Run] into a single call. Unknown flags are reported even when parsing fails.
func ParseAndRun(
	ctx context.Context,
	root *Command,
	args []string,
	options *RunOptions,
) error {
	if err := Parse(root, args); err != nil {
		if root != nil && root.state != nil {
			reportUnknown(ctx, root)
		}
		return err
	}
	return Run(ctx, root, options)
}

// RunOptions specifies options for running a command.
type RunOptions struct {
	// Stdin, Stdout, and Stderr are the standard input, output, and error streams for the command.
	// If any of these are nil, the command will use the default streams ([os.Stdin], [os.Stdout],
	// and [os.Stderr], respectively).
	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

// Run executes a parsed command. Before calling Exec it logs a warning, through the logger in
// ctx, for every unknown flag seen by [Parse], with suggestions for likely intended flags, and for
// every positional argument. The warnings are emitted before Exec can change the log level.
//
// The options parameter may be nil, in which case default values are used. See [RunOptions] for
// more details.
func Run(ctx context.Context, root *Command, options *RunOptions) error {
	if root == nil || root.state == nil {
		return errors.New("command has not been parsed")
	}
	options = checkAndSetRunOptions(options)
	updateState(root.state, options)

	reportUnknown(ctx, root)
	if root.Exec == nil {
		return &NoExecError{Command: root}
	}
	return root.Exec(ctx, root.state)
}

// reportUnknown logs each unknown flag once, then each positional argument.
func reportUnknown(ctx context.Context, c *Command) {
	logger := ctxlog.FromContext(ctx)
	names := c.flagNames()
	for _, arg := range c.state.unknown {
		attrs := []any{"option", arg}
		if similar := suggest.FindSimilar(flagOnly(arg), names, 3); len(similar) > 0 {
			attrs = append(attrs, "did_you_mean", strings.Join(similar, ","))
		}
		logger.WarnContext(ctx, "unknown option ignored", attrs...)
	}
	c.state.unknown = nil
	for _, arg := range c.state.Args {
		logger.WarnContext(ctx, "unknown option ignored", "option", arg)
	}
}

// flagOnly strips an inline value, so "-mdoe=enc" is matched as "-mdoe".
func flagOnly(arg string) string {
	if i := strings.IndexByte(arg, '='); i > 0 {
		return arg[:i]
	}
	return arg
}

func updateState(s *State, opt *RunOptions) {
	if s.Stdin == nil {
		s.Stdin = opt.Stdin
	}
	if s.Stdout == nil {
		s.Stdout = opt.Stdout
	}
	if s.Stderr == nil {
		s.Stderr = opt.Stderr
	}
}

func checkAndSetRunOptions(opt *RunOptions) *RunOptions {
	if opt == nil {
		opt = &RunOptions{}
	}
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	return opt
}
