// SPDX-License-Identifier: EPL-2.0

package flactest

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

var sampleRateCodes = map[uint32]uint8{
	88200:  0x1,
	176400: 0x2,
	192000: 0x3,
	8000:   0x4,
	16000:  0x5,
	22050:  0x6,
	24000:  0x7,
	32000:  0x8,
	44100:  0x9,
	48000:  0xA,
	96000:  0xB,
}

var sampleSizeCodes = map[uint8]uint8{
	8:  0x1,
	12: 0x2,
	16: 0x4,
	20: 0x5,
	24: 0x6,
}

// EncodeFrame encodes one fixed-blocksize frame with independent channels
// and VERBATIM subframes. samples[ch] must all have the same length.
func EncodeFrame(num uint64, sampleRate uint32, bps uint8, samples [][]int32) []byte {
	rateCode, ok := sampleRateCodes[sampleRate]
	if !ok {
		panic(fmt.Sprintf("flactest: no sample rate code for %d Hz", sampleRate))
	}
	sizeCode, ok := sampleSizeCodes[bps]
	if !ok {
		panic(fmt.Sprintf("flactest: no sample size code for %d bits", bps))
	}
	if len(samples) == 0 || len(samples) > 8 {
		panic(fmt.Sprintf("flactest: invalid channel count %d", len(samples)))
	}
	blockSize := len(samples[0])

	hdr := new(bytes.Buffer)
	hdr.Write([]byte{0xFF, 0xF8})
	// block size code 0111: 16-bit (blocksize-1) follows the frame number
	hdr.WriteByte(0x7<<4 | rateCode)
	hdr.WriteByte(byte(len(samples)-1)<<4 | sizeCode<<1)
	hdr.Write(utf8Number(num))
	hdr.Write([]byte{byte((blockSize - 1) >> 8), byte(blockSize - 1)})
	hdr.WriteByte(CRC8(hdr.Bytes()))

	buf := new(bytes.Buffer)
	buf.Write(hdr.Bytes())
	w := bitio.NewWriter(buf)
	mask := uint64(1)<<bps - 1
	for _, ch := range samples {
		if len(ch) != blockSize {
			panic("flactest: channels differ in length")
		}
		// zero pad bit, type 000001 (verbatim), no wasted bits
		w.TryWriteBits(0x02, 8)
		for _, s := range ch {
			w.TryWriteBits(uint64(s)&mask, bps)
		}
	}
	if w.TryError != nil {
		panic(w.TryError)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}

	crc := CRC16(buf.Bytes())
	buf.Write([]byte{byte(crc >> 8), byte(crc)})
	return buf.Bytes()
}

// Constant returns n copies of v.
func Constant(n int, v int32) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Ramp returns n samples start, start+step, ...
func Ramp(n int, start, step int32) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = start + int32(i)*step
	}
	return out
}

// CorruptFooter flips the CRC-16 footer of an encoded frame.
func CorruptFooter(f []byte) []byte {
	out := append([]byte(nil), f...)
	out[len(out)-1] ^= 0xFF
	return out
}

// CorruptHeader flips the CRC-8 of an encoded frame header.
func CorruptHeader(f []byte) []byte {
	out := append([]byte(nil), f...)
	// sync(2) codes(2) number(1 for num < 128) blocksize(2) crc8
	out[7] ^= 0xFF
	return out
}

// utf8Number codes x with the extended UTF-8 scheme of frame headers.
func utf8Number(x uint64) []byte {
	if x < 0x80 {
		return []byte{byte(x)}
	}
	n := 2
	for ; n < 7; n++ {
		if x < 1<<(5*n+1) {
			break
		}
	}
	out := make([]byte, n)
	for i := n - 1; i > 0; i-- {
		out[i] = 0x80 | byte(x&0x3F)
		x >>= 6
	}
	out[0] = byte(uint16(0xFF00)>>n) | byte(x)
	return out
}

// CRC8 is the frame header checksum (polynomial x^8+x^2+x+1).
func CRC8(b []byte) byte {
	var crc byte
	for _, x := range b {
		crc ^= x
		for range 8 {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x07
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// CRC16 is the frame footer checksum (polynomial x^16+x^15+x^2+1).
func CRC16(b []byte) uint16 {
	var crc uint16
	for _, x := range b {
		crc ^= uint16(x) << 8
		for range 8 {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x8005
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
