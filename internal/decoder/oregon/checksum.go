package oregon

import "github.com/Digicrat/gorfxrx/internal/nibble"

// The checksum variants all follow the same scheme: sum a fixed count of
// nibbles from the start of the payload, subtract 10, mask to a byte and
// compare against a value assembled from fixed nibble positions. Which
// count and which positions apply is part of each device row in the
// table, so all eight are distinct functions.

func checksum1(b []byte) bool {
	want := nibble.Hi(b[6]) | nibble.Lo(b[7])<<4
	return byte(nibble.Sum(b, 12)-10) == byte(want)
}

func checksum2(b []byte) bool {
	return b[8] == byte(nibble.Sum(b, 16)-10)
}

func checksum3(b []byte) bool {
	return b[11] == byte(nibble.Sum(b, 22)-10)
}

func checksum4(b []byte) bool {
	return b[9] == byte(nibble.Sum(b, 18)-10)
}

func checksum5(b []byte) bool {
	return b[10] == byte(nibble.Sum(b, 20)-10)
}

func checksum6(b []byte) bool {
	want := nibble.Hi(b[8]) | nibble.Lo(b[9])<<4
	return byte(nibble.Sum(b, 16)-10) == byte(want)
}

func checksum7(b []byte) bool {
	return b[7] == byte(nibble.Sum(b, 14)-10)
}

func checksum8(b []byte) bool {
	want := nibble.Lo(b[9]) | nibble.Hi(b[10])<<4
	return byte(nibble.Sum(b, 19)-10) == byte(want)
}
