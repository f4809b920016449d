package reading

import (
	"encoding/json"
	"fmt"
)

// Event type tags. Payload-bearing telegrams that a decoder family
// recognizes carry the family name instead.
const (
	TypeUnknown = "unknown"
	TypeEmpty   = "empty"
	TypeVersion = "version"
	TypeMode    = "mode"
)

// Kind identifies what a Measurement describes.
type Kind string

const (
	Temp      Kind = "temp"
	Humidity  Kind = "humidity"
	Pressure  Kind = "pressure"
	Speed     Kind = "speed"
	Direction Kind = "direction"
	Battery   Kind = "battery"
	UV        Kind = "uv"
	RainRate  Kind = "rainrate"
	RainTotal Kind = "raintotal"
	RainCount Kind = "raincount"
	DateTime  Kind = "datetime"
)

// Measurement is one semantic sensor reading. Numeric readings use Value;
// string-valued readings (date/time telegrams) use Text. Immutable once
// constructed.
type Measurement struct {
	Kind      Kind     `json:"kind"`
	Value     float64  `json:"value,omitempty"`
	Text      string   `json:"text,omitempty"`
	Units     string   `json:"units,omitempty"`
	Qualifier string   `json:"qualifier,omitempty"`
	Average   *float64 `json:"average,omitempty"`
}

// Event is the outcome of framing and decoding one telegram. It is handed
// to the caller and not retained by the session except inside duplicate
// cache entries.
type Event struct {
	Type         string        `json:"type"`
	Device       string        `json:"device,omitempty"`
	Header       byte          `json:"header"`
	Bits         int           `json:"bits,omitempty"`
	Master       bool          `json:"master,omitempty"`
	Duplicate    bool          `json:"duplicate,omitempty"`
	Raw          []byte        `json:"-"`
	Measurements []Measurement `json:"measurements,omitempty"`
}

// Measurement returns the first measurement of the given kind, or nil.
func (e *Event) Measurement(kind Kind) *Measurement {
	for i := range e.Measurements {
		if e.Measurements[i].Kind == kind {
			return &e.Measurements[i]
		}
	}
	return nil
}

// Value returns the numeric value of the first measurement of the given
// kind.
func (e *Event) Value(kind Kind) (float64, error) {
	m := e.Measurement(kind)
	if m == nil {
		return 0, fmt.Errorf("no %q measurement", kind)
	}
	return m.Value, nil
}

// Text returns the string value of the first measurement of the given
// kind (date/time telegrams).
func (e *Event) Text(kind Kind) (string, error) {
	m := e.Measurement(kind)
	if m == nil {
		return "", fmt.Errorf("no %q measurement", kind)
	}
	return m.Text, nil
}

// String renders the event as indented JSON.
func (e *Event) String() string {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Sprintf("event type:%s device:%s (marshal error: %v)", e.Type, e.Device, err)
	}
	return string(data)
}
