// internal/codec/fixedpoint_test.go
package codec

import (
	"errors"
	"math"
	"testing"
)

func TestEncodeFixedPoint_SmallFlow(t *testing.T) {
	high, low, err := EncodeFixedPoint(12.345, FlowScale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high != 0 || low != 12345 {
		t.Fatalf("got high=%d low=%d, want 0/12345", high, low)
	}
}

func TestEncodeFixedPoint_SpansBothWords(t *testing.T) {
	// 100.000 SCCM -> 100000 = 0x000186A0
	high, low, err := EncodeFixedPoint(100, FlowScale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high != 0x0001 || low != 0x86A0 {
		t.Fatalf("got high=0x%04X low=0x%04X, want 0x0001/0x86A0", high, low)
	}
}

func TestEncodeFixedPoint_RoundsInsteadOfTruncating(t *testing.T) {
	// 1.001 * 1000 evaluates just below 1001 in float64
	_, low, err := EncodeFixedPoint(1.001, FlowScale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if low != 1001 {
		t.Fatalf("got low=%d, want 1001", low)
	}
}

func TestEncodeFixedPoint_Rejects(t *testing.T) {
	cases := []struct {
		name  string
		value float64
		scale int
	}{
		{"nan", math.NaN(), FlowScale},
		{"+inf", math.Inf(1), FlowScale},
		{"-inf", math.Inf(-1), FlowScale},
		{"overflow", 2147484.0, FlowScale},
		{"underflow", -2147484.0, FlowScale},
		{"zero scale", 1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := EncodeFixedPoint(tc.value, tc.scale); !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("expected ErrOutOfRange, got %v", err)
			}
		})
	}
}

func TestEncodeFixedPoint_Boundaries(t *testing.T) {
	high, low, err := EncodeFixedPoint(2147483.647, FlowScale)
	if err != nil {
		t.Fatalf("max: unexpected error: %v", err)
	}
	if high != 0x7FFF || low != 0xFFFF {
		t.Fatalf("max: got 0x%04X%04X", high, low)
	}

	high, low, err = EncodeFixedPoint(-2147483.648, FlowScale)
	if err != nil {
		t.Fatalf("min: unexpected error: %v", err)
	}
	if high != 0x8000 || low != 0x0000 {
		t.Fatalf("min: got 0x%04X%04X", high, low)
	}
}

func TestDecodeFixedPoint(t *testing.T) {
	if got := DecodeFixedPoint(0, 45000, FlowScale); got != 45.0 {
		t.Fatalf("got %v, want 45", got)
	}
	if got := DecodeFixedPoint(0xFFFF, 0xFFFF, FlowScale); got != -0.001 {
		t.Fatalf("got %v, want -0.001", got)
	}
}

func TestFixedPoint_RoundTrip(t *testing.T) {
	values := []float64{0, 0.001, 1, 12.345, 45, 65.535, 65.536, 999.999, 5000.5, 2147483.647, -0.001, -12.345}

	for _, v := range values {
		high, low, err := EncodeFixedPoint(v, FlowScale)
		if err != nil {
			t.Fatalf("encode %v: %v", v, err)
		}
		got := DecodeFixedPoint(high, low, FlowScale)
		if math.Abs(got-v) > 0.0005 {
			t.Fatalf("round trip %v: got %v", v, got)
		}
	}
}

func TestSplitJoinUint32(t *testing.T) {
	high, low := SplitUint32(0xDEADBEEF)
	if high != 0xDEAD || low != 0xBEEF {
		t.Fatalf("split: got 0x%04X/0x%04X", high, low)
	}
	if v := JoinUint32(high, low); v != 0xDEADBEEF {
		t.Fatalf("join: got 0x%08X", v)
	}
}

func TestUnpackRegisters(t *testing.T) {
	regs := UnpackRegisters([]byte{0x00, 0x00, 0xAF, 0xC8, 0x01})
	if len(regs) != 2 {
		t.Fatalf("expected 2 registers, got %d", len(regs))
	}
	if regs[0] != 0 || regs[1] != 45000 {
		t.Fatalf("got %v, want [0 45000]", regs)
	}
}
