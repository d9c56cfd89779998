package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/mfridman/xflag"
)

// Parse parses args, typically os.Args[1:], against the command's flags. Once parsing is complete,
// the command is ready to be executed with the [Run] function.
//
// Each recognized flag consumes exactly one value, either inline (-key=3) or from the next token
// (-key 3), so "-data -x" sets data to "-x". Flags the command does not define are not an error:
// they are collected and reported as warnings by [Run]. Non-flag tokens, and everything after a
// "--" delimiter, end up in [State.Args].
//
// A recognized flag with no value left, or a value its flag rejects, returns an [*Error] with code
// [ErrUsage]. A help request (-h, -help, --help) prints usage to the flag set's output and returns
// [flag.ErrHelp].
func Parse(root *Command, args []string) error {
	if root == nil {
		return errors.New("failed to parse: root command is nil")
	}
	if err := validateCommand(root); err != nil {
		return fmt.Errorf("failed to parse: %w", err)
	}
	if root.Flags == nil {
		root.Flags = flag.NewFlagSet(root.Name, flag.ContinueOnError)
	}

	// Parse into a copy so the flag package never prints to the command's output on its own. The
	// copy shares the command's flag.Value instances.
	fset := flag.NewFlagSet(root.Name, flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	root.Flags.VisitAll(func(f *flag.Flag) {
		fset.Var(f.Value, f.Name, f.Usage)
	})

	scan := scanArgs(fset, args)
	root.state = &State{
		flags:   fset,
		unknown: scan.unknown,
	}
	if scan.help {
		return root.showHelp()
	}

	if err := xflag.ParseToEnd(fset, scan.known); err != nil {
		return NewError(ErrUsage, fmt.Errorf("command %q: %w", root.Name, err))
	}

	var finalArgs []string
	finalArgs = append(finalArgs, fset.Args()...)
	finalArgs = append(finalArgs, scan.rest...)
	root.state.Args = finalArgs
	return nil
}

type scanResult struct {
	// known holds recognized flags, their values and positional tokens, in order.
	known []string
	// unknown holds flag-like tokens the flag set does not define.
	unknown []string
	// rest holds everything after a "--" delimiter.
	rest []string
	help bool
}

// scanArgs walks args pairwise: a recognized non-boolean flag without an inline value takes the
// following token as its value unconditionally.
func scanArgs(fset *flag.FlagSet, args []string) scanResult {
	var res scanResult
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			res.rest = args[i+1:]
			break
		}
		name, inline, isFlag := splitFlag(arg)
		if !isFlag {
			res.known = append(res.known, arg)
			continue
		}
		f := fset.Lookup(name)
		if f == nil {
			if name == "h" || name == "help" {
				res.help = true
				return res
			}
			res.unknown = append(res.unknown, arg)
			continue
		}
		res.known = append(res.known, arg)
		if !inline && !isBoolFlag(f) && i+1 < len(args) {
			i++
			res.known = append(res.known, args[i])
		}
	}
	return res
}

// splitFlag reports whether arg looks like a flag to the flag package and, if so, returns its
// name and whether the value is given inline with "=". Malformed flags such as "---x" or "-=x"
// return an empty name, which no flag set defines.
func splitFlag(arg string) (name string, inline bool, isFlag bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return "", false, false
	}
	name = strings.TrimPrefix(arg[1:], "-")
	if name == "" || name[0] == '-' || name[0] == '=' {
		return "", false, true
	}
	if i := strings.IndexByte(name, '='); i >= 0 {
		return name[:i], true, true
	}
	return name, false, true
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

func validateCommand(c *Command) error {
	if c.Name == "" {
		return errors.New("root command has no name")
	}
	if strings.ContainsAny(c.Name, " \t\n") {
		return fmt.Errorf("command name %q contains spaces, must be a single word", c.Name)
	}
	return nil
}
