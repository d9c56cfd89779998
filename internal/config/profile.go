package config

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/mfridman/shiftcipher/internal/ctxlog"
)

// LoadProfile reads a TOML profile. Every key is optional and uses the flag's name:
//
//	mode = "dec"
//	alg  = "unicode"
//	key  = 3
//	in   = "message.txt"
//	out  = "message.dec"
//
// Keys the profile format does not know are logged as warnings and ignored, the same way unknown
// flags are.
func LoadProfile(ctx context.Context, path string) (Values, error) {
	var v Values
	md, err := toml.DecodeFile(path, &v)
	if err != nil {
		return Values{}, fmt.Errorf("failed to load profile %s: %w", path, err)
	}
	if v.Key != nil {
		if err := CheckKey(*v.Key); err != nil {
			return Values{}, fmt.Errorf("profile %s: %w", path, err)
		}
	}
	logger := ctxlog.FromContext(ctx)
	for _, key := range md.Undecoded() {
		logger.WarnContext(ctx, "unknown profile key ignored", "profile", path, "key", key.String())
	}
	logger.DebugContext(ctx, "profile loaded", "profile", path, "keys", len(md.Keys()))
	return v, nil
}
