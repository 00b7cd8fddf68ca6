// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"
	"time"
)

// Levels summarizes the loudness of a whole stream.
type Levels struct {
	Peak     float64 // largest absolute sample
	RMS      float64 // over all samples of all channels
	Frames   int64   // samples per channel
	Duration time.Duration
}

// PeakDBFS returns the peak in decibels relative to full scale.
func (l Levels) PeakDBFS() float64 { return dbfs(l.Peak) }

// RMSDBFS returns the RMS level in decibels relative to full scale.
func (l Levels) RMSDBFS() float64 { return dbfs(l.RMS) }

func dbfs(v float64) float64 {
	if v == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}

// MeasureLevels reads src to the end. It does not close src.
func MeasureLevels(src Source) (Levels, error) {
	var (
		l          Levels
		sumSquares float64
		count      int64
	)

	size := src.BufSize()
	size -= size % src.Channels()
	if size <= 0 {
		size = 1024 * src.Channels()
	}
	buf := make([]float32, size)

	for {
		n, err := src.ReadSamples(buf)
		for _, v := range buf[:n] {
			x := math.Abs(float64(v))
			l.Peak = max(l.Peak, x)
			sumSquares += x * x
		}
		count += int64(n)

		if err == io.EOF {
			break
		}
		if err != nil {
			return l, fmt.Errorf("measure levels: %w", err)
		}
	}

	if count > 0 {
		l.RMS = math.Sqrt(sumSquares / float64(count))
	}
	l.Frames = count / int64(src.Channels())
	if rate := src.SampleRate(); rate > 0 {
		l.Duration = time.Duration(l.Frames) * time.Second / time.Duration(rate)
	}
	return l, nil
}
