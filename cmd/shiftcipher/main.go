package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mfridman/shiftcipher/internal/app"
	"github.com/mfridman/shiftcipher/internal/cli"
	"github.com/mfridman/shiftcipher/internal/ctxlog"
)

func main() {
	var level slog.LevelVar
	level.Set(slog.LevelWarn)
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(os.Stderr, &level))

	err := cli.ParseAndRun(ctx, app.NewCommand(&level), os.Args[1:], nil)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
