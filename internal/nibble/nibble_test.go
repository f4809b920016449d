package nibble

import "testing"

func TestHiLo(t *testing.T) {
	if Hi(0xA7) != 0xA {
		t.Fatalf("Hi(0xA7) = %d", Hi(0xA7))
	}
	if Lo(0xA7) != 0x7 {
		t.Fatalf("Lo(0xA7) = %d", Lo(0xA7))
	}
}

func TestExpand(t *testing.T) {
	got := Expand([]byte{0x1A, 0x2D})
	want := []byte{0x1, 0xA, 0x2, 0xD}
	if len(got) != len(want) {
		t.Fatalf("Expand length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expand[%d] = %X, want %X", i, got[i], want[i])
		}
	}
}

func TestSum(t *testing.T) {
	b := []byte{0x1A, 0x2D, 0x48}
	if got := Sum(b, 4); got != 0x1+0xA+0x2+0xD {
		t.Fatalf("Sum(4) = %d", got)
	}
	// odd count takes only the high nibble of the last byte
	if got := Sum(b, 5); got != 0x1+0xA+0x2+0xD+0x4 {
		t.Fatalf("Sum(5) = %d", got)
	}
}
