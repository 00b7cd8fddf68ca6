// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/flacstream"
	"github.com/ik5/flacstream/audio"
	"github.com/ik5/flacstream/formats/aiff"
	"github.com/ik5/flacstream/formats/flac"
	"github.com/ik5/flacstream/formats/mp3"
	"github.com/ik5/flacstream/formats/vorbis"
	"github.com/ik5/flacstream/formats/wav"
	"github.com/ik5/flacstream/internal/cli"
)

type metaCmd struct {
	Input string `arg:"" help:"FLAC file" type:"existingfile"`
}

func (c *metaCmd) Run(e *env) error {
	f, err := os.Open(c.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := flacstream.ReadMetadata(f, e.cfg.Options(e.log)...)
	for _, rec := range records {
		e.out.Record(rec)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", c.Input, err)
	}
	return nil
}

type decodeCmd struct {
	Input  string `arg:"" help:"FLAC file" type:"existingfile"`
	Output string `arg:"" help:"WAV file to write"`
}

func (c *decodeCmd) Run(e *env) error {
	in, err := os.Open(c.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(c.Output)
	if err != nil {
		return err
	}

	stats, err := flacstream.DecodeToWAV(in, out, e.cfg.Options(e.log)...)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", c.Input, err)
	}

	e.out.Success(fmt.Sprintf("wrote %s", c.Output))
	e.out.Info("format", fmt.Sprintf("%d Hz, %d channels, %d bit", stats.Format.SampleRate, stats.Format.Channels, stats.Format.BitsPerSample))
	e.out.Info("decoded", fmt.Sprintf("%s, %d samples", cli.Plural(stats.Frames, "frame", "frames"), stats.Samples))
	if stats.StreamErrors > 0 {
		e.out.Info("skipped", cli.Plural(stats.StreamErrors, "corrupt region", "corrupt regions"))
	}
	return nil
}

type statsCmd struct {
	Input  string `arg:"" help:"FLAC, WAV, AIFF, MP3 or Ogg Vorbis file" type:"existingfile"`
	Format string `help:"Input format (flac, wav, aiff, mp3 or ogg); taken from the file extension when empty"`
	Mono   bool   `help:"Mix down to mono before measuring"`
}

func registry(e *env) *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("flac", flac.Decoder{Options: e.cfg.Options(e.log)})
	reg.Register("wav", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	return reg
}

func (c *statsCmd) Run(e *env) error {
	format := c.Format
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(c.Input)), ".")
	}

	f, err := os.Open(c.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := registry(e).Open(format, f)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Input, err)
	}
	if c.Mono {
		src = audio.NewMonoMixer(src)
	}

	e.out.Section(filepath.Base(c.Input))
	e.out.Info("format", fmt.Sprintf("%s, %d Hz, %d channels", format, src.SampleRate(), src.Channels()))

	levels, err := audio.MeasureLevels(src)
	if cerr := src.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", c.Input, err)
	}
	e.out.Levels(levels)
	return nil
}
