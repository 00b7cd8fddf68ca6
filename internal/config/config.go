// SPDX-License-Identifier: EPL-2.0

// Package config loads the flacdump settings from the environment and an
// optional .env file.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/ik5/flacstream/decoder"
)

var ErrInvalidReadSize = errors.New("read size out of range")

type Config struct {
	ReadSize int        `env:"FLACDUMP_READ_SIZE, default=65536"`
	MD5      bool       `env:"FLACDUMP_MD5, default=true"`
	CRCFatal bool       `env:"FLACDUMP_CRC_FATAL"`
	LogLevel slog.Level `env:"FLACDUMP_LOG_LEVEL, default=warn"`
}

// Load reads the configuration from the process environment. Variables in
// envFile fill in what the environment leaves unset; a missing envFile is
// not an error.
func Load(ctx context.Context, envFile string) (*Config, error) {
	l := envconfig.OsLookuper()
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		default:
			l = envconfig.MultiLookuper(l, envconfig.MapLookuper(vars))
		}
	}
	return FromLookuper(ctx, l)
}

func FromLookuper(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values a session would reject at Init. Call it again
// after overriding fields.
func (c *Config) Validate() error {
	if c.ReadSize < decoder.MinReadSize || c.ReadSize > decoder.MaxReadSize {
		return fmt.Errorf("%w: %d, want %d..%d",
			ErrInvalidReadSize, c.ReadSize, decoder.MinReadSize, decoder.MaxReadSize)
	}
	return nil
}

// Options returns the session options for cfg.
func (c *Config) Options(logger *slog.Logger) []decoder.Option {
	return []decoder.Option{
		decoder.WithLogger(logger),
		decoder.WithReadSize(c.ReadSize),
		decoder.WithMD5Checking(c.MD5),
		decoder.WithCRCFatal(c.CRCFatal),
	}
}
