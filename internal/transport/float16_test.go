package transport

import "testing"

func TestFloat16RoundTrip(t *testing.T) {
	cases := []float32{0, 1, -1, 1.5, -0.25, 100.0, -100.0}
	for _, c := range cases {
		got := float16ToFloat32(float32ToFloat16(c))
		diff := got - c
		if diff < 0 {
			diff = -diff
		}
		if diff > 0.01 {
			t.Fatalf("round trip of %v produced %v (diff %v)", c, got, diff)
		}
	}
}

func TestCRC8_KnownValue(t *testing.T) {
	if got := crc8([]byte{}); got != 0 {
		t.Fatalf("expected crc8 of empty input to be 0, got %v", got)
	}
	a := crc8([]byte{0x01, 0x02, 0x03})
	b := crc8([]byte{0x01, 0x02, 0x04})
	if a == b {
		t.Fatalf("expected different inputs to produce different checksums")
	}
}
