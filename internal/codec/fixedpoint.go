// internal/codec/fixedpoint.go
package codec

import (
	"errors"
	"math"
)

// FlowScale gives flow values three decimal digits (SCCM).
const FlowScale = 1000

// ErrOutOfRange is returned when a scaled value does not fit a signed 32-bit word pair.
var ErrOutOfRange = errors.New("codec: value out of 32-bit fixed-point range")

// EncodeFixedPoint scales value and splits it into two register words, high word first.
// The scaled value is a two's-complement int32.
// No IO. No side effects.
func EncodeFixedPoint(value float64, scale int) (high, low uint16, err error) {
	if scale <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, 0, ErrOutOfRange
	}

	scaled := math.Round(value * float64(scale))
	if scaled > math.MaxInt32 || scaled < math.MinInt32 {
		return 0, 0, ErrOutOfRange
	}

	high, low = SplitUint32(uint32(int32(scaled)))
	return high, low, nil
}

// DecodeFixedPoint joins a high/low word pair as a signed int32 and divides by scale.
// It is the exact inverse of EncodeFixedPoint for every encodable value.
func DecodeFixedPoint(high, low uint16, scale int) float64 {
	if scale <= 0 {
		scale = 1
	}
	return float64(int32(JoinUint32(high, low))) / float64(scale)
}

// SplitUint32 returns the big-endian word order used by the devices.
func SplitUint32(v uint32) (high, low uint16) {
	return uint16(v >> 16), uint16(v & 0xFFFF)
}

// JoinUint32 is the inverse of SplitUint32.
func JoinUint32(high, low uint16) uint32 {
	return uint32(high)<<16 | uint32(low)
}

// UnpackRegisters converts a raw register payload into words.
// Modbus register memory order is big-endian; a trailing odd byte is dropped.
func UnpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
