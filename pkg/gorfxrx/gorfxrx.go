// Package gorfxrx decodes RF telegrams from an RFXCOM-style receiver into
// structured sensor events. A Receiver wraps the live read loop over a
// serial or TCP transport; DecodeHex analyzes a single captured telegram.
package gorfxrx

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/Digicrat/gorfxrx/internal/decoder"
	"github.com/Digicrat/gorfxrx/internal/frame"
	"github.com/Digicrat/gorfxrx/internal/reading"
	"github.com/Digicrat/gorfxrx/internal/session"
	"github.com/Digicrat/gorfxrx/internal/transport"

	_ "github.com/Digicrat/gorfxrx/internal/decoder/oregon" // register family
)

// Event is one framed and decoded telegram.
type Event = reading.Event

// Measurement is one semantic sensor reading inside an Event.
type Measurement = reading.Measurement

// Kind identifies what a Measurement describes.
type Kind = reading.Kind

// ErrClosed reports that the receiver connection reached end of stream.
var ErrClosed = session.ErrClosed

// Config selects the receiver and tunes the session. Zero fields take the
// documented defaults.
type Config struct {
	// Device is a serial path ("/dev/ttyUSB0") or a TCP address
	// ("host:port") of a receiver bridge.
	Device string
	// Baud applies to serial devices only. Default 4800.
	Baud int
	// DiscardTimeout bounds how long a torn partial telegram may block
	// the buffer. Default 30ms.
	DiscardTimeout time.Duration
	// AckTimeout bounds the wait for a command acknowledgment. Default 2s.
	AckTimeout time.Duration
	// DupWindow is the repeat-transmission suppression interval.
	// Default 500ms.
	DupWindow time.Duration
}

func (c Config) withDefaults() Config {
	if c.Baud == 0 {
		c.Baud = 4800
	}
	return c
}

// Receiver is a live session with the RF receiver. It is not safe for
// concurrent use; one caller polls Read at a time.
type Receiver struct {
	s *session.Session
	t transport.Transport
}

// Open connects to the configured device and issues the startup command
// sequence.
func Open(cfg Config) (*Receiver, error) {
	cfg = cfg.withDefaults()
	t, err := transport.Open(cfg.Device, cfg.Baud)
	if err != nil {
		return nil, err
	}
	r, err := NewWithTransport(t, cfg)
	if err != nil {
		t.Close()
		return nil, err
	}
	return r, nil
}

// NewWithTransport builds a Receiver over an already-open transport.
func NewWithTransport(t transport.Transport, cfg Config) (*Receiver, error) {
	s, err := session.New(t, session.Config{
		DiscardTimeout: cfg.DiscardTimeout,
		AckTimeout:     cfg.AckTimeout,
		DupWindow:      cfg.DupWindow,
	})
	if err != nil {
		return nil, err
	}
	return &Receiver{s: s, t: t}, nil
}

// Read returns the next event, blocking up to timeout. A nil event with a
// nil error means nothing arrived in time; poll again.
func (r *Receiver) Read(timeout time.Duration) (*Event, error) {
	return r.s.Read(timeout)
}

// Send queues an outbound configuration command given as a hex string.
func (r *Receiver) Send(hexStr, desc string) error {
	return r.s.Enqueue(session.Command{Hex: hexStr, Desc: desc})
}

// Close releases the transport.
func (r *Receiver) Close() error {
	return r.s.Close()
}

// DecodeHex frames and decodes a single hex-encoded telegram capture,
// header byte included. Whitespace and '|' or '_' separators are
// tolerated. No duplicate tracking applies.
func DecodeHex(raw string) (*Event, error) {
	data, err := decodeHex(raw)
	if err != nil {
		return nil, err
	}
	f, _ := frame.Extract(data, false)
	if f == nil {
		return nil, fmt.Errorf("incomplete telegram: %d bytes", len(data))
	}
	ev := &Event{Header: f.Header, Master: f.Master(), Raw: f.Payload}
	if f.Type != "" {
		ev.Type = f.Type
		return ev, nil
	}
	ev.Type = reading.TypeUnknown
	ev.Bits = f.Bits
	if d := decoder.Dispatch(f.Payload, f.Bits); d != nil {
		ev.Type = d.Type
		ev.Device = d.Device
		ev.Measurements = d.Measurements
	}
	return ev, nil
}

func decodeHex(input string) ([]byte, error) {
	clean := stripSeparators(input)
	if strings.HasPrefix(strings.ToUpper(clean), "0X") {
		clean = clean[2:]
	}
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex telegram must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

func stripSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
