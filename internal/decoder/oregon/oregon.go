// Package oregon decodes Oregon Scientific weather sensor telegrams:
// temperature, hygrometer, barometer, anemometer, rain gauge, UV and
// clock units. Device variants are identified by the 16-bit type code in
// payload bytes 0..1 together with the telegram bit length.
package oregon

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Digicrat/gorfxrx/internal/decoder"
	"github.com/Digicrat/gorfxrx/internal/nibble"
)

func init() {
	decoder.Register(Family{})
}

// Family implements decoder.Family for the Oregon Scientific lineup.
type Family struct{}

// Name returns the canonical family name.
func (Family) Name() string { return "oregon" }

// TryDecode looks the telegram up in the device table, validates its
// checksum and runs the matching extraction method. It returns nil when
// the telegram is not recognized, so dispatch falls through to the next
// family. A checksum mismatch is treated as not recognized, guarding
// against false-positive table hits.
func (Family) TryDecode(payload []byte, bits int) *decoder.Decoded {
	if len(payload) < 4 || len(payload) < (bits+7)/8 {
		return nil
	}
	typeCode := uint32(payload[0])<<8 | uint32(payload[1])
	k := key(typeCode, bits)
	rec, ok := table[k]
	if !ok {
		rec, ok = table[k&maskedKey]
	}
	if !ok {
		return nil
	}
	if rec.method == nil {
		logrus.WithFields(logrus.Fields{
			"part": rec.part,
			"type": fmt.Sprintf("0x%04X", typeCode),
			"bits": bits,
		}).Warn("oregon: possible unhandled part")
		return nil
	}
	if rec.checksum != nil && !rec.checksum(payload) {
		return nil
	}
	dev := fmt.Sprintf("%s.%02x", strings.ToLower(rec.part), payload[3])
	return &decoder.Decoded{
		Type:         "oregon",
		Device:       dev,
		Measurements: rec.method(payload, nibble.Expand(payload), dev),
	}
}
