// Package decoder dispatches framed telegrams to the registered decoder
// families. Families self-register from init, so importing a family
// package (usually via a blank import in pkg/gorfxrx) is what enables it.
package decoder

import (
	"sync"

	"github.com/Digicrat/gorfxrx/internal/reading"
)

// Decoded is a family's successful decode of a telegram payload.
type Decoded struct {
	Type         string
	Device       string
	Measurements []reading.Measurement
}

// Family is one vendor's sensor lineup: a self-contained set of table
// entries, checksum functions and extraction methods. TryDecode returns
// nil when the payload is not recognized; families are stateless beyond
// their static tables.
type Family interface {
	Name() string
	TryDecode(payload []byte, bits int) *Decoded
}

var (
	regMu    sync.RWMutex
	registry []Family
)

// Register appends a family. Registration order is dispatch priority.
func Register(f Family) {
	regMu.Lock()
	defer regMu.Unlock()
	registry = append(registry, f)
}

// Dispatch tries each registered family in order and returns the first
// non-nil result, or nil when no family recognizes the payload.
func Dispatch(payload []byte, bits int) *Decoded {
	regMu.RLock()
	defer regMu.RUnlock()
	for _, f := range registry {
		if d := f.TryDecode(payload, bits); d != nil {
			return d
		}
	}
	return nil
}
