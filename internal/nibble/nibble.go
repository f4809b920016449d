// Package nibble provides 4-bit arithmetic helpers shared by the decoder
// families. Device telegrams encode decimal digits one nibble at a time,
// high nibble first.
package nibble

// Hi returns the high nibble of b.
func Hi(b byte) int {
	return int(b >> 4)
}

// Lo returns the low nibble of b.
func Lo(b byte) int {
	return int(b & 0x0F)
}

// Expand flattens bytes into their nibbles, high nibble first, so that
// nibble 2i is Hi(b[i]) and nibble 2i+1 is Lo(b[i]).
func Expand(b []byte) []byte {
	n := make([]byte, 0, len(b)*2)
	for _, v := range b {
		n = append(n, v>>4, v&0x0F)
	}
	return n
}

// Sum adds the first count nibbles of b, high nibble first within each
// byte. An odd count includes the high nibble of the final byte only.
func Sum(b []byte, count int) int {
	s := 0
	for i := 0; i < count; i++ {
		if i%2 == 0 {
			s += Hi(b[i/2])
		} else {
			s += Lo(b[i/2])
		}
	}
	return s
}
