// Package app defines the shiftcipher command: it gathers the configuration, resolves the input
// text, transforms it and writes the result.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/mfridman/shiftcipher/internal/cipher"
	"github.com/mfridman/shiftcipher/internal/cli"
	"github.com/mfridman/shiftcipher/internal/config"
	"github.com/mfridman/shiftcipher/internal/ctxlog"
	"github.com/mfridman/shiftcipher/internal/textio"
)

var (
	// ErrInputNotFound is returned when the -in file does not exist.
	ErrInputNotFound = textio.ErrNotFound
	// ErrOutputWrite is returned when the result cannot be written.
	ErrOutputWrite = errors.New("failed to write output")
)

// NewCommand returns the root command. level is raised or lowered by the -log-level flag; pass the
// same LevelVar the context's logger was built with.
func NewCommand(level *slog.LevelVar) *cli.Command {
	return &cli.Command{
		Name:      "shiftcipher",
		Usage:     "shiftcipher [-mode enc|dec] [-alg shift|unicode] [-key n] [-data text | -in file] [-out file]",
		ShortHelp: "Encrypt or decrypt text with a Caesar shift over the ASCII letters, or a raw shift of every codepoint.",
		Flags: cli.FlagsFunc(func(f *flag.FlagSet) {
			f.String("mode", "enc", "enc to encrypt, dec to decrypt")
			f.Var(new(keyValue), "key", "integer shift amount")
			f.String("data", "", "literal text to transform; takes precedence over -in")
			f.String("in", "", "read the text from this file")
			f.String("out", "", "write the result to this file instead of standard output")
			f.String("alg", "shift", "shift for letters only, unicode for every codepoint")
			f.String("config", "", "TOML profile providing defaults for the other flags")
			f.String("log-level", "warn", "debug, info, warn or error")
		}),
		Exec: func(ctx context.Context, s *cli.State) error {
			if name, ok := cli.LookupFlag[string](s, "log-level"); ok {
				lvl, valid := ctxlog.ParseLevel(name)
				if !valid {
					return cli.NewError(cli.ErrUsage, fmt.Errorf("invalid log level %q: must be debug, info, warn or error", name))
				}
				level.Set(lvl)
			}

			values := flagValues(s)
			if path, ok := cli.LookupFlag[string](s, "config"); ok {
				profile, err := config.LoadProfile(ctx, path)
				if err != nil {
					return cli.NewError(cli.ErrUsage, err)
				}
				values = profile.Merge(values)
			}
			return Execute(ctx, config.Resolve(ctx, values), s.Stdout)
		},
	}
}

// Execute runs the cipher for cfg: resolve the input, transform it, write the result. Nothing is
// written if the input cannot be read.
func Execute(ctx context.Context, cfg config.Config, stdout io.Writer) error {
	logger := ctxlog.FromContext(ctx)
	logger.DebugContext(ctx, "configuration resolved",
		"mode", cfg.Mode,
		"alg", cfg.Algorithm,
		"key", cfg.Key,
		"input", inputSource(cfg),
		"output", outputDestination(cfg),
	)

	text, err := textio.ResolveInput(cfg.Data, cfg.InputFile)
	if err != nil {
		return err
	}
	result := cipher.Transform(text, cfg.Key, cfg.Mode, cfg.Algorithm)
	if err := textio.WriteOutput(stdout, cfg.OutputFile, result); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}
	logger.DebugContext(ctx, "done", "chars", len([]rune(text)))
	return nil
}

func inputSource(cfg config.Config) string {
	switch {
	case cfg.Data != nil:
		return "data"
	case cfg.InputFile != nil:
		return *cfg.InputFile
	default:
		return "none"
	}
}

func outputDestination(cfg config.Config) string {
	if cfg.OutputFile == nil {
		return "stdout"
	}
	return *cfg.OutputFile
}

// flagValues collects the flags that were set on the command line. Flags left at their default
// stay nil so a profile can supply them.
func flagValues(s *cli.State) config.Values {
	return config.Values{
		Mode: lookup[string](s, "mode"),
		Alg:  lookup[string](s, "alg"),
		Key:  lookup[int](s, "key"),
		Data: lookup[string](s, "data"),
		In:   lookup[string](s, "in"),
		Out:  lookup[string](s, "out"),
	}
}

func lookup[T any](s *cli.State, name string) *T {
	if v, ok := cli.LookupFlag[T](s, name); ok {
		return &v
	}
	return nil
}

// keyValue is a flag.Value accepting only base-10 32-bit integers.
type keyValue int

func (k *keyValue) Set(s string) error {
	n, err := config.ParseKey(s)
	if err != nil {
		return err
	}
	*k = keyValue(n)
	return nil
}

func (k *keyValue) String() string {
	if k == nil {
		return "0"
	}
	return strconv.Itoa(int(*k))
}

func (k *keyValue) Get() any { return int(*k) }
