package app

import (
	"bytes"
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfridman/shiftcipher/internal/cli"
	"github.com/mfridman/shiftcipher/internal/ctxlog"
)

type result struct {
	stdout, stderr string
	err            error
}

// run executes the command the way main does, with a warn-level logger on the captured stderr.
func run(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	var level slog.LevelVar
	level.Set(slog.LevelWarn)
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(&stderr, &level))

	cmd := NewCommand(&level)
	cmd.Flags.SetOutput(&stderr)
	err := cli.ParseAndRun(ctx, cmd, args, &cli.RunOptions{
		Stdout: &stdout,
		Stderr: &stderr,
	})
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestCommand(t *testing.T) {
	t.Parallel()

	t.Run("encrypt to stdout", func(t *testing.T) {
		t.Parallel()
		res := run(t, "-mode", "enc", "-key", "3", "-data", "Hello, World!", "-alg", "shift")
		require.NoError(t, res.err)
		assert.Equal(t, "Khoor, Zruog!\n", res.stdout)
		assert.Empty(t, res.stderr)
	})
	t.Run("decrypt to stdout", func(t *testing.T) {
		t.Parallel()
		res := run(t, "-mode", "dec", "-key", "3", "-data", "Khoor, Zruog!")
		require.NoError(t, res.err)
		assert.Equal(t, "Hello, World!\n", res.stdout)
	})
	t.Run("unicode", func(t *testing.T) {
		t.Parallel()
		res := run(t, "-alg", "unicode", "-key", "1", "-data", "AB")
		require.NoError(t, res.err)
		assert.Equal(t, "BC\n", res.stdout)
	})
	t.Run("unicode round trip outside the basic range", func(t *testing.T) {
		t.Parallel()
		for _, key := range []string{"-100", "100", "55232"} {
			enc := run(t, "-mode", "dec", "-key", key, "-alg", "unicode", "-data", "AB")
			require.NoError(t, enc.err)
			require.NotContains(t, enc.stdout, "\uFFFD", key)
			dec := run(t, "-mode", "enc", "-key", key, "-alg", "unicode", "-data", strings.TrimSuffix(enc.stdout, "\n"))
			require.NoError(t, dec.err)
			assert.Equal(t, "AB\n", dec.stdout, key)
		}
	})
	t.Run("no arguments prints an empty line", func(t *testing.T) {
		t.Parallel()
		res := run(t)
		require.NoError(t, res.err)
		assert.Equal(t, "\n", res.stdout)
	})
	t.Run("negative key", func(t *testing.T) {
		t.Parallel()
		res := run(t, "-key", "-1", "-data", "a")
		require.NoError(t, res.err)
		assert.Equal(t, "z\n", res.stdout)
	})
	t.Run("flags in any order", func(t *testing.T) {
		t.Parallel()
		res := run(t, "-data", "abc", "-mode", "dec", "-key", "1")
		require.NoError(t, res.err)
		assert.Equal(t, "zab\n", res.stdout)
	})
	t.Run("input and output files", func(t *testing.T) {
		t.Parallel()
		in := writeFile(t, "in.txt", "Hello,\nWorld!\n")
		out := filepath.Join(t.TempDir(), "out.txt")

		res := run(t, "-in", in, "-out", out, "-key", "3")
		require.NoError(t, res.err)
		assert.Empty(t, res.stdout)
		assert.Equal(t, "Khoor,Zruog!", readFile(t, out))

		res = run(t, "-in", out, "-mode", "dec", "-key", "3")
		require.NoError(t, res.err)
		assert.Equal(t, "Hello,World!\n", res.stdout)
	})
	t.Run("data takes precedence over input file", func(t *testing.T) {
		t.Parallel()
		in := writeFile(t, "in.txt", "from file")
		res := run(t, "-in", in, "-data", "from data", "-key", "1")
		require.NoError(t, res.err)
		assert.Equal(t, "gspn ebub\n", res.stdout)
	})
	t.Run("empty data still takes precedence", func(t *testing.T) {
		t.Parallel()
		res := run(t, "-in", filepath.Join(t.TempDir(), "missing.txt"), "-data", "")
		require.NoError(t, res.err)
		assert.Equal(t, "\n", res.stdout)
	})
	t.Run("missing input file", func(t *testing.T) {
		t.Parallel()
		out := filepath.Join(t.TempDir(), "out.txt")
		res := run(t, "-in", filepath.Join(t.TempDir(), "nonexistent.txt"), "-out", out)
		require.ErrorIs(t, res.err, ErrInputNotFound)
		assert.Equal(t, 1, cli.ExitCode(res.err))
		assert.Empty(t, res.stdout)
		assert.NoFileExists(t, out)
	})
	t.Run("unwritable output", func(t *testing.T) {
		t.Parallel()
		out := filepath.Join(t.TempDir(), "missing-dir", "out.txt")
		res := run(t, "-data", "abc", "-out", out)
		require.ErrorIs(t, res.err, ErrOutputWrite)
		assert.Equal(t, 1, cli.ExitCode(res.err))
		assert.Empty(t, res.stdout)
	})
	t.Run("non integer key", func(t *testing.T) {
		t.Parallel()
		res := run(t, "-key", "three", "-data", "abc")
		require.Error(t, res.err)
		assert.Equal(t, 2, cli.ExitCode(res.err))
		assert.ErrorContains(t, res.err, `invalid value "three" for flag -key`)
		assert.Empty(t, res.stdout)
	})
	t.Run("key out of range", func(t *testing.T) {
		t.Parallel()
		res := run(t, "-key", "99999999999", "-data", "abc")
		require.Error(t, res.err)
		assert.Equal(t, 2, cli.ExitCode(res.err))
		assert.ErrorContains(t, res.err, "key out of range")
	})
	t.Run("trailing flag without value", func(t *testing.T) {
		t.Parallel()
		res := run(t, "-data", "abc", "-key")
		require.Error(t, res.err)
		assert.Equal(t, 2, cli.ExitCode(res.err))
		assert.ErrorContains(t, res.err, "flag needs an argument: -key")
		assert.Empty(t, res.stdout)
	})
	t.Run("unknown tokens warn and continue", func(t *testing.T) {
		t.Parallel()
		res := run(t, "-mdoe", "dec", "-key", "1", "-data", "a", "stray")
		require.NoError(t, res.err)
		assert.Equal(t, "b\n", res.stdout)
		assert.Contains(t, res.stderr, `level=WARN msg="unknown option ignored" option=-mdoe did_you_mean=-mode`)
		assert.Contains(t, res.stderr, `level=WARN msg="unknown option ignored" option=dec`)
		assert.Contains(t, res.stderr, `level=WARN msg="unknown option ignored" option=stray`)
	})
	t.Run("unknown tokens warn even at error level", func(t *testing.T) {
		t.Parallel()
		res := run(t, "-log-level", "error", "-mdoe", "stray", "-data", "a")
		require.NoError(t, res.err)
		assert.Equal(t, "b\n", res.stdout)
		assert.Contains(t, res.stderr, `option=-mdoe did_you_mean=-mode`)
		assert.Contains(t, res.stderr, `level=WARN msg="unknown option ignored" option=stray`)
	})
	t.Run("unrecognized mode and algorithm fall back", func(t *testing.T) {
		t.Parallel()
		res := run(t, "-mode", "decode", "-alg", "rot", "-key", "1", "-data", "a")
		require.NoError(t, res.err)
		assert.Equal(t, "b\n", res.stdout)
		assert.Contains(t, res.stderr, "unrecognized mode, using default")
		assert.Contains(t, res.stderr, "unrecognized algorithm, using default")
	})
	t.Run("help", func(t *testing.T) {
		t.Parallel()
		res := run(t, "-help")
		require.ErrorIs(t, res.err, flag.ErrHelp)
		assert.Equal(t, 0, cli.ExitCode(res.err))
		assert.Empty(t, res.stdout)
		assert.Contains(t, res.stderr, "Usage:\n  shiftcipher [-mode enc|dec]")
		assert.Contains(t, res.stderr, "-key")
		assert.Contains(t, res.stderr, "(default: shift)")
	})
	t.Run("debug logging", func(t *testing.T) {
		t.Parallel()
		res := run(t, "-log-level", "debug", "-data", "a", "-key", "2")
		require.NoError(t, res.err)
		assert.Equal(t, "c\n", res.stdout)
		assert.Contains(t, res.stderr, `level=DEBUG msg="configuration resolved" mode=enc alg=shift key=2 input=data output=stdout`)
	})
	t.Run("invalid log level", func(t *testing.T) {
		t.Parallel()
		res := run(t, "-log-level", "loud", "-data", "a")
		require.Error(t, res.err)
		assert.Equal(t, 2, cli.ExitCode(res.err))
		assert.Empty(t, res.stdout)
	})
}

func TestCommandProfile(t *testing.T) {
	t.Parallel()

	t.Run("profile supplies values", func(t *testing.T) {
		t.Parallel()
		profile := writeFile(t, "profile.toml", "mode = \"dec\"\nkey = 3\n")
		res := run(t, "-config", profile, "-data", "Khoor")
		require.NoError(t, res.err)
		assert.Equal(t, "Hello\n", res.stdout)
	})
	t.Run("flags override the profile", func(t *testing.T) {
		t.Parallel()
		profile := writeFile(t, "profile.toml", "mode = \"dec\"\nkey = 3\nalg = \"unicode\"\n")
		res := run(t, "-config", profile, "-mode", "enc", "-alg", "shift", "-data", "Hello")
		require.NoError(t, res.err)
		assert.Equal(t, "Khoor\n", res.stdout)
	})
	t.Run("profile output file", func(t *testing.T) {
		t.Parallel()
		out := filepath.Join(t.TempDir(), "out.txt")
		profile := writeFile(t, "profile.toml", "key = 1\nout = '"+out+"'\n")
		res := run(t, "-config", profile, "-data", "abc")
		require.NoError(t, res.err)
		assert.Empty(t, res.stdout)
		assert.Equal(t, "bcd", readFile(t, out))
	})
	t.Run("invalid profile is a usage error", func(t *testing.T) {
		t.Parallel()
		profile := writeFile(t, "profile.toml", "key = [1, 2]\n")
		res := run(t, "-config", profile, "-data", "abc")
		require.Error(t, res.err)
		assert.Equal(t, 2, cli.ExitCode(res.err))
		assert.Empty(t, res.stdout)
	})
	t.Run("missing profile is a usage error", func(t *testing.T) {
		t.Parallel()
		res := run(t, "-config", filepath.Join(t.TempDir(), "nope.toml"))
		require.Error(t, res.err)
		assert.Equal(t, 2, cli.ExitCode(res.err))
	})
}
