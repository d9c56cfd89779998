// Package config builds the configuration for one run of the cipher from its sources: command-line
// flags, an optional TOML profile and the built-in defaults.
//
// Sources are collected as [Values], where a nil field means "not given", so an empty string
// supplied on purpose is never confused with an absent one. [Values.Merge] layers sources and
// [Resolve] turns the result into a [Config] with closed enumerations.
package config

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/mfridman/shiftcipher/internal/cipher"
	"github.com/mfridman/shiftcipher/internal/ctxlog"
)

// Config is the resolved configuration for one run.
type Config struct {
	Mode      cipher.Mode
	Algorithm cipher.Algorithm
	Key       int

	// Data is literal input text. When set it wins over InputFile, even if empty.
	Data *string
	// InputFile is read when Data is nil.
	InputFile *string
	// OutputFile receives the result; nil means standard output.
	OutputFile *string
}

// Default returns the configuration used when no source sets anything: encrypt with the
// alphabetic shift, key 0, empty input, output to standard output.
func Default() Config {
	return Config{
		Mode:      cipher.Encrypt,
		Algorithm: cipher.ShiftAlphabetic,
	}
}

// Values holds unresolved settings from a single source. Nil fields were not given.
type Values struct {
	Mode *string `toml:"mode"`
	Alg  *string `toml:"alg"`
	Key  *int    `toml:"key"`
	Data *string `toml:"data"`
	In   *string `toml:"in"`
	Out  *string `toml:"out"`
}

// Merge returns v with every field that is set in over replaced by over's value.
func (v Values) Merge(over Values) Values {
	pick(&v.Mode, over.Mode)
	pick(&v.Alg, over.Alg)
	pick(&v.Key, over.Key)
	pick(&v.Data, over.Data)
	pick(&v.In, over.In)
	pick(&v.Out, over.Out)
	return v
}

func pick[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

// Resolve converts v into a [Config], starting from [Default]. Mode and algorithm names that are
// not recognized fall back to the defaults ("enc" and "shift") with a warning on the logger in ctx.
func Resolve(ctx context.Context, v Values) Config {
	logger := ctxlog.FromContext(ctx)
	cfg := Default()
	if v.Mode != nil {
		mode, ok := cipher.ParseMode(*v.Mode)
		if !ok {
			logger.WarnContext(ctx, "unrecognized mode, using default", "mode", *v.Mode, "default", mode)
		}
		cfg.Mode = mode
	}
	if v.Alg != nil {
		alg, ok := cipher.ParseAlgorithm(*v.Alg)
		if !ok {
			logger.WarnContext(ctx, "unrecognized algorithm, using default", "alg", *v.Alg, "default", alg)
		}
		cfg.Algorithm = alg
	}
	if v.Key != nil {
		cfg.Key = *v.Key
	}
	cfg.Data = v.Data
	cfg.InputFile = v.In
	cfg.OutputFile = v.Out
	return cfg
}

// ErrKeyRange is returned for keys outside the 32-bit signed integer range.
var ErrKeyRange = errors.New("key out of range")

// ParseKey parses a base-10 32-bit signed integer with an optional sign. Prefixes such as 0x are
// not accepted and leading zeros do not mean octal.
func ParseKey(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %s", ErrKeyRange, s)
		}
		return 0, fmt.Errorf("invalid key %q: must be an integer", s)
	}
	return int(n), nil
}

// CheckKey reports an error when key does not fit in 32 bits.
func CheckKey(key int) error {
	if key < math.MinInt32 || key > math.MaxInt32 {
		return fmt.Errorf("%w: %d", ErrKeyRange, key)
	}
	return nil
}
