// SPDX-License-Identifier: EPL-2.0

// Command flacdump inspects and converts FLAC files.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ik5/flacstream/internal/cli"
	"github.com/ik5/flacstream/internal/config"
)

// version is set via ldflags at build time
var version = "dev"

// Globals are the flags shared by every command. Set flags override the
// FLACDUMP_* environment.
type Globals struct {
	Env      string           `help:"Optional .env file with FLACDUMP_* settings" default:".env" type:"path"`
	ReadSize int              `help:"Bytes requested from the input per read"`
	NoMD5    bool             `name:"no-md5" help:"Skip MD5 verification of the decoded audio"`
	CRCFatal bool             `name:"crc-fatal" help:"Stop at the first frame CRC mismatch"`
	Verbose  bool             `short:"v" help:"Log decoder activity to stderr"`
	Version  kong.VersionFlag `help:"Show version information"`
}

var CLI struct {
	Globals

	Meta   metaCmd   `cmd:"" help:"Print the metadata blocks of a FLAC file"`
	Decode decodeCmd `cmd:"" help:"Decode a FLAC file to WAV"`
	Stats  statsCmd  `cmd:"" help:"Measure peak and RMS levels of a FLAC, WAV, AIFF, MP3 or Ogg Vorbis file"`
}

// env bundles what every command needs.
type env struct {
	cfg *config.Config
	log *slog.Logger
	out *cli.Printer
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("flacdump"),
		kong.Description("Inspect FLAC metadata, decode to WAV and measure levels."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)

	errOut := cli.NewPrinter(os.Stderr)
	e, err := setup(context.Background(), &CLI.Globals)
	if err != nil {
		errOut.Error(err.Error())
		os.Exit(1)
	}

	if err := ctx.Run(e); err != nil {
		errOut.Error(err.Error())
		os.Exit(1)
	}
}

func setup(ctx context.Context, g *Globals) (*env, error) {
	cfg, err := config.Load(ctx, g.Env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if g.ReadSize != 0 {
		cfg.ReadSize = g.ReadSize
	}
	if g.NoMD5 {
		cfg.MD5 = false
	}
	if g.CRCFatal {
		cfg.CRCFatal = true
	}
	if g.Verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	return &env{cfg: cfg, log: logger, out: cli.NewPrinter(os.Stdout)}, nil
}
