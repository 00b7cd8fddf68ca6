// SPDX-License-Identifier: EPL-2.0

// Package mp3 reads MP3 files as an audio.Source through
// github.com/hajimehoshi/go-mp3. It exists so `flacdump stats` can measure a
// lossy rendering next to the FLAC master.
//
// go-mp3 always produces 16 bit stereo, so mono files come out with both
// channels equal.
package mp3
