// SPDX-License-Identifier: EPL-2.0

package utils

// IntToFloat32 scales a signed sample of bps bits into [-1, 1).
func IntToFloat32(v int32, bps int) float32 {
	return float32(float64(v) / float64(int64(1)<<(bps-1)))
}

// ContainerDepth rounds bps up to the next byte aligned sample width used by
// PCM containers: 8, 16, 24 or 32 bits.
func ContainerDepth(bps int) int {
	switch {
	case bps <= 8:
		return 8
	case bps <= 16:
		return 16
	case bps <= 24:
		return 24
	}
	return 32
}

// ToContainer left-justifies a bps bit sample in a container of
// ContainerDepth(bps) bits.
func ToContainer(v int32, bps int) int {
	return int(v) << (ContainerDepth(bps) - bps)
}
