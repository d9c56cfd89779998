package cli

import (
	"flag"
	"fmt"
	"io"
)

// State is what a command sees once its arguments are parsed: the flag values, leftover
// positional arguments and the I/O streams to use. Use [GetFlag] and [LookupFlag] to read flags.
type State struct {
	// Args contains the positional arguments left after flag parsing, followed by everything
	// after a "--" delimiter.
	Args []string

	// Standard I/O streams.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	flags *flag.FlagSet
	// unknown holds the flag-like arguments the command does not define, in the order given.
	unknown []string
}

// GetFlag retrieves a flag value by name, with type inference. Example usage:
//
//	key := GetFlag[int](state, "key")
//	mode := GetFlag[string](state, "mode")
//
// The flag's [flag.Value] must implement [flag.Getter], which every flag type in the standard
// library does.
//
// It panics if the flag is not defined or was registered with a different type. Either is a
// programming error in the command definition, and failing loudly beats running with a zero value.
func GetFlag[T any](s *State, name string) T {
	f := s.flags.Lookup(name)
	if f == nil {
		panic(fmt.Errorf("internal error: flag %q not found in %q flag set", "-"+name, s.flags.Name()))
	}
	getter, ok := f.Value.(flag.Getter)
	if !ok {
		panic(fmt.Errorf("internal error: flag %q does not implement flag.Getter", "-"+name))
	}
	value := getter.Get()
	v, ok := value.(T)
	if !ok {
		panic(fmt.Errorf("internal error: type mismatch for flag %q: registered %T, requested %T", "-"+name, value, *new(T)))
	}
	return v
}

// LookupFlag is like [GetFlag] but also reports whether the flag was set on the command line.
// When it was not, the returned value is the flag's default.
func LookupFlag[T any](s *State, name string) (T, bool) {
	v := GetFlag[T](s, name)
	set := false
	s.flags.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return v, set
}
