// Package session owns the receive buffer, the duplicate cache and the
// outbound command queue for one receiver. A session is read by one
// caller at a time; everything here is synchronous and the only blocking
// point is the bounded transport read.
package session

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Digicrat/gorfxrx/internal/decoder"
	"github.com/Digicrat/gorfxrx/internal/dupcache"
	"github.com/Digicrat/gorfxrx/internal/frame"
	"github.com/Digicrat/gorfxrx/internal/reading"
	"github.com/Digicrat/gorfxrx/internal/transport"
)

// ErrClosed reports that the transport reached end of stream. The session
// is no longer usable; reconnecting is the caller's decision.
var ErrClosed = errors.New("receiver connection closed")

// Command is one outbound configuration message for the receiver. At most
// one command is unacknowledged at a time; any inbound frame while a
// command is outstanding counts as its acknowledgment.
type Command struct {
	Hex  string
	Desc string
}

// InitCommands is the startup sequence issued once per session.
var InitCommands = []Command{
	{Hex: "F020", Desc: "version check"},
	{Hex: "F02A", Desc: "enable all possible receiving modes"},
}

// Config carries the session tuning knobs. Zero values are replaced with
// the documented defaults.
type Config struct {
	// DiscardTimeout bounds how long a partial telegram may sit in the
	// buffer before it is abandoned as torn. Default 30ms.
	DiscardTimeout time.Duration
	// AckTimeout bounds how long the session waits for a command reply
	// before moving on to the next queued command. Default 2s.
	AckTimeout time.Duration
	// DupWindow is the interval within which an identical telegram is
	// flagged as a repeat transmission. Default 500ms.
	DupWindow time.Duration
	// ChunkSize is the transport read size. Default 512.
	ChunkSize int
}

func (c Config) withDefaults() Config {
	if c.DiscardTimeout == 0 {
		c.DiscardTimeout = 30 * time.Millisecond
	}
	if c.AckTimeout == 0 {
		c.AckTimeout = 2 * time.Second
	}
	if c.DupWindow == 0 {
		c.DupWindow = 500 * time.Millisecond
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = 512
	}
	return c
}

// Session drives one receiver. Create with New.
type Session struct {
	t        transport.Transport
	cfg      Config
	log      *logrus.Entry
	buf      []byte
	chunk    []byte
	cache    *dupcache.Cache
	lastRead time.Time
	queue    []Command
	awaiting bool
	sentAt   time.Time
}

// New wraps an open transport and sends the first startup command.
func New(t transport.Transport, cfg Config) (*Session, error) {
	cfg = cfg.withDefaults()
	s := &Session{
		t:     t,
		cfg:   cfg,
		log:   logrus.WithField("component", "session"),
		chunk: make([]byte, cfg.ChunkSize),
		cache: dupcache.New(cfg.DupWindow),
		queue: append([]Command(nil), InitCommands...),
	}
	if err := s.sendNext(); err != nil {
		return nil, err
	}
	return s, nil
}

// Enqueue appends an outbound command, sending it immediately when no
// other command is awaiting its reply.
func (s *Session) Enqueue(c Command) error {
	s.queue = append(s.queue, c)
	if !s.awaiting {
		return s.sendNext()
	}
	return nil
}

// Read returns the next decoded event, blocking up to timeout. A nil
// event with a nil error means the timeout expired with nothing framed;
// the caller simply polls again. Fatal transport states are returned as
// errors (ErrClosed for end of stream).
func (s *Session) Read(timeout time.Duration) (*reading.Event, error) {
	for {
		now := time.Now()
		if ev := s.frameEvent(now); ev != nil {
			if s.awaiting {
				s.awaiting = false
				if err := s.sendNext(); err != nil {
					return nil, err
				}
			}
			return ev, nil
		}
		s.expireStale(now)
		if s.awaiting && now.Sub(s.sentAt) > s.cfg.AckTimeout {
			s.log.Warn("command unacknowledged, advancing queue")
			s.awaiting = false
			if err := s.sendNext(); err != nil {
				return nil, err
			}
		}
		if timeout <= 0 {
			return nil, nil
		}
		if err := s.t.SetReadTimeout(timeout); err != nil {
			return nil, fmt.Errorf("set read timeout: %w", err)
		}
		start := time.Now()
		n, err := s.t.Read(s.chunk)
		timeout -= time.Since(start)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrClosed
			}
			return nil, fmt.Errorf("transport read: %w", err)
		}
		if n == 0 {
			// bounded read expired with no data
			if timeout <= 0 {
				return nil, nil
			}
			continue
		}
		s.buf = append(s.buf, s.chunk[:n]...)
		s.lastRead = time.Now()
	}
}

// Close releases the transport.
func (s *Session) Close() error {
	return s.t.Close()
}

// frameEvent attempts to remove one complete message from the buffer and
// turn it into an event, consulting the duplicate cache before invoking
// the decoder families. Control frames (version, mode, empty) bypass the
// cache entirely.
func (s *Session) frameEvent(now time.Time) *reading.Event {
	f, rest := frame.Extract(s.buf, s.awaiting)
	if f == nil {
		return nil
	}
	s.buf = rest
	ev := &reading.Event{Header: f.Header, Master: f.Master(), Raw: f.Payload}
	if f.Type != "" {
		ev.Type = f.Type
		return ev
	}
	ev.Type = reading.TypeUnknown
	ev.Bits = f.Bits

	key := dupcache.Key(f.Bits, f.Payload)
	if e := s.cache.Lookup(key); e != nil {
		// Reuse the first-seen decode rather than decoding again.
		ev.Duplicate = s.cache.Touch(e, now)
		ev.Type = e.Type
		ev.Device = e.Device
		ev.Measurements = e.Measurements
		return ev
	}
	if d := decoder.Dispatch(f.Payload, f.Bits); d != nil {
		ev.Type = d.Type
		ev.Device = d.Device
		ev.Measurements = d.Measurements
	}
	s.cache.Store(key, &dupcache.Entry{
		Type:         ev.Type,
		Device:       ev.Device,
		Measurements: ev.Measurements,
	}, now)
	return ev
}

// expireStale drops a torn partial telegram after the discard timeout and
// clears the duplicate cache after an idle gap longer than the window.
func (s *Session) expireStale(now time.Time) {
	if s.lastRead.IsZero() {
		return
	}
	idle := now.Sub(s.lastRead)
	if len(s.buf) > 0 && idle > s.cfg.DiscardTimeout {
		s.log.WithField("bytes", len(s.buf)).Debug("discarding stale partial telegram")
		s.buf = s.buf[:0]
	}
	if s.cache.Len() > 0 && idle > s.cfg.DupWindow {
		s.cache.Clear()
	}
}

func (s *Session) sendNext() error {
	if len(s.queue) == 0 {
		return nil
	}
	cmd := s.queue[0]
	s.queue = s.queue[1:]
	raw, err := hex.DecodeString(cmd.Hex)
	if err != nil {
		return fmt.Errorf("command %q (%s): %w", cmd.Hex, cmd.Desc, err)
	}
	if _, err := s.t.Write(raw); err != nil {
		return fmt.Errorf("write command %q (%s): %w", cmd.Hex, cmd.Desc, err)
	}
	s.log.WithFields(logrus.Fields{"hex": cmd.Hex, "desc": cmd.Desc}).Debug("sent command")
	s.awaiting = true
	s.sentAt = time.Now()
	return nil
}
