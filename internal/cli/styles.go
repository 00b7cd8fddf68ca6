// SPDX-License-Identifier: EPL-2.0

// Package cli renders flacdump output with lipgloss.
package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ik5/flacstream/audio"
	"github.com/ik5/flacstream/meta"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#D75F00")
	accentColor  = lipgloss.Color("#FFAF00")
	successColor = lipgloss.Color("#00AA00")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

// Printer writes styled text to w. Colors are only emitted when w is a
// terminal.
type Printer struct {
	w io.Writer

	header  lipgloss.Style
	key     lipgloss.Style
	value   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		header:  r.NewStyle().Bold(true).Foreground(accentColor),
		key:     r.NewStyle().Foreground(mutedColor),
		value:   r.NewStyle().Bold(true).Foreground(textColor),
		success: r.NewStyle().Bold(true).Foreground(successColor),
		failure: r.NewStyle().Bold(true).Foreground(primaryColor),
	}
}

// Section prints a section header.
func (p *Printer) Section(title string) {
	fmt.Fprintln(p.w, p.header.Render(title))
}

// Info prints a key-value pair.
func (p *Printer) Info(key, value string) {
	fmt.Fprintf(p.w, "  %s %s\n", p.key.Render(key+":"), p.value.Render(value))
}

// Success prints a success message.
func (p *Printer) Success(message string) {
	fmt.Fprintf(p.w, "%s %s\n", p.success.Render("✓"), message)
}

// Error prints an error message.
func (p *Printer) Error(message string) {
	fmt.Fprintf(p.w, "%s %s\n", p.failure.Render("Error:"), message)
}

// Record prints one metadata record.
func (p *Printer) Record(rec meta.Record) {
	p.Section(rec.Type().String())

	switch r := rec.(type) {
	case *meta.StreamInfo:
		p.Info("sample rate", fmt.Sprintf("%d Hz", r.SampleRate))
		p.Info("channels", fmt.Sprint(r.Channels))
		p.Info("bits per sample", fmt.Sprint(r.BitsPerSample))
		p.Info("block size", fmt.Sprintf("%d-%d", r.MinBlockSize, r.MaxBlockSize))
		p.Info("frame size", fmt.Sprintf("%d-%d", r.MinFrameSize, r.MaxFrameSize))
		if r.TotalSamples == 0 {
			p.Info("total samples", "unknown")
		} else {
			p.Info("total samples", fmt.Sprint(r.TotalSamples))
			if r.SampleRate > 0 {
				d := time.Duration(r.TotalSamples) * time.Second / time.Duration(r.SampleRate)
				p.Info("duration", FormatDuration(d))
			}
		}
		if r.HasMD5() {
			p.Info("md5", hex.EncodeToString(r.MD5[:]))
		} else {
			p.Info("md5", "unset")
		}

	case *meta.SeekTable:
		p.Info("points", fmt.Sprint(len(r.Points)))
		for i, pt := range r.Points {
			if pt.IsPlaceholder() {
				p.Info(fmt.Sprintf("point %d", i), "placeholder")
				continue
			}
			p.Info(fmt.Sprintf("point %d", i),
				fmt.Sprintf("sample %d at offset %d (%d samples)", pt.SampleNumber, pt.StreamOffset, pt.FrameSamples))
		}

	case *meta.VorbisComment:
		p.Info("vendor", r.Vendor)
		for _, c := range r.Comments {
			p.Info(c.Key, c.Value)
		}

	case *meta.Picture:
		p.Info("type", r.PictureType.String())
		p.Info("mime type", r.MIMEType)
		if r.Description != "" {
			p.Info("description", r.Description)
		}
		p.Info("size", fmt.Sprintf("%dx%d, %d bpp", r.Width, r.Height, r.Depth))
		p.Info("data", FormatBytes(int64(len(r.Data))))

	case *meta.Unknown:
		p.Info("length", FormatBytes(int64(r.Length)))
	}
}

// Levels prints a level summary.
func (p *Printer) Levels(l audio.Levels) {
	p.Info("duration", FormatDuration(l.Duration))
	p.Info("samples", fmt.Sprint(l.Frames))
	p.Info("peak", fmt.Sprintf("%.4f (%.1f dBFS)", l.Peak, l.PeakDBFS()))
	p.Info("rms", fmt.Sprintf("%.4f (%.1f dBFS)", l.RMS, l.RMSDBFS()))
}

// FormatDuration formats a duration nicely
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatBytes formats bytes into human-readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// Plural picks the singular or plural form for n.
func Plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
