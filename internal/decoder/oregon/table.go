package oregon

// entry describes how one device variant is validated and decoded. The
// mapping from (type code, bit length) to entry is empirical, taken from
// observed hardware behaviour, so variants of the same part at different
// bit lengths are listed as separate rows rather than derived from a rule.
type entry struct {
	part     string
	checksum func([]byte) bool
	method   method
}

// key packs a 16-bit type code and the telegram bit length into one lookup
// key. Lookup first tries the exact key, then the key masked to its low
// 20 bits, which drops the high nibble of the type code and matches vendor
// sub-variants without duplicating rows.
func key(typeCode uint32, bits int) uint32 {
	return typeCode<<8 | uint32(bits)
}

const maskedKey = 0xFFFFF

var table = map[uint32]entry{
	key(0xFA28, 80):  {part: "THGR810", checksum: checksum2, method: commonTempHydro},
	key(0xFAB8, 80):  {part: "WTGR800", checksum: checksum2, method: altTempHydro},
	key(0x1A99, 88):  {part: "WTGR800", checksum: checksum4, method: wtgr800Anemometer},
	key(0x1A89, 88):  {part: "WGR800", checksum: checksum4, method: wtgr800Anemometer},
	key(0xDA78, 72):  {part: "UVN800", checksum: checksum7, method: uvn800},
	key(0xEA7C, 120): {part: "UV138", checksum: checksum1, method: uv138},
	key(0xEA4C, 80):  {part: "THWR288A", checksum: checksum1, method: commonTemp},
	key(0xEA4C, 68):  {part: "THN132N", checksum: checksum1, method: commonTemp},
	key(0x9AEC, 104): {part: "RTGR328N", checksum: checksum3, method: dateTime},
	key(0x9AEA, 104): {part: "RTGR328N", checksum: checksum3, method: dateTime},
	key(0x1A2D, 80):  {part: "THGR228N", checksum: checksum2, method: commonTempHydro},
	key(0x1A3D, 80):  {part: "THGR918", checksum: checksum2, method: commonTempHydro},
	key(0x5A5D, 88):  {part: "BTHR918", checksum: checksum5, method: commonTempHydroBaro},
	key(0x5A6D, 96):  {part: "BTHR918N", checksum: checksum5, method: altTempHydroBaro},
	// WGR918 shows up at both lengths on the air; keep both rows.
	key(0x3A0D, 80): {part: "WGR918", checksum: checksum4, method: wgr918Anemometer},
	key(0x3A0D, 88): {part: "WGR918", checksum: checksum4, method: wgr918Anemometer},
	key(0x2A1D, 84): {part: "RGR918", checksum: checksum6, method: commonRain},
	key(0x0A4D, 80): {part: "THR128", checksum: checksum2, method: commonTemp},
	key(0x2A19, 92): {part: "PCR800", checksum: checksum8, method: pcr800Rain},
	// Masked row: RTGR328N temperature/humidity variants differ only in
	// the high nibble of the type code.
	key(0x0ACC, 80): {part: "RTGR328N", checksum: checksum2, method: commonTempHydro},
	// Seen on air, no extraction method worked out yet.
	key(0x8ADC, 104): {part: "RTGR328N"},
}
