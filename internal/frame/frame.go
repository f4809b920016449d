// Package frame splits the receiver's unbounded byte stream into complete
// telegrams. The first byte of every telegram is a header byte: the top
// bit is the master/repeater flag and the low 7 bits give the payload
// length in bits.
package frame

import "github.com/Digicrat/gorfxrx/internal/reading"

// Response sentinels. While an outbound command is awaiting its reply the
// receiver answers with one of these header bytes instead of a telegram.
const (
	VersionHeader = 0x4D
	ModeHeader    = 0x2C
)

// Frame is one complete message removed from the stream. Type is
// reading.TypeEmpty, reading.TypeVersion or reading.TypeMode for control
// frames, and empty for a payload-bearing telegram awaiting decode.
type Frame struct {
	Header  byte
	Type    string
	Bits    int
	Payload []byte
}

// Master reports the master/repeater flag from the header byte.
func (f *Frame) Master() bool {
	return f.Header&0x80 != 0
}

// Extract attempts to remove exactly one complete frame from buf and
// returns it along with the remaining bytes. A nil frame means no complete
// message is buffered yet; in that case buf is returned unchanged and
// nothing has been consumed. awaitingAck enables the version/mode response
// sentinels, which are only meaningful while a command reply is pending.
//
// The payload is copied out so the caller is free to reuse buf's backing
// array.
func Extract(buf []byte, awaitingAck bool) (*Frame, []byte) {
	if len(buf) == 0 {
		return nil, buf
	}
	header := buf[0]
	bits := int(header & 0x7F)

	switch {
	case awaitingAck && header == VersionHeader:
		// Version replies are not length-prefixed; consume greedily.
		payload := append([]byte(nil), buf[1:]...)
		return &Frame{Header: header, Type: reading.TypeVersion, Payload: payload}, buf[len(buf):]
	case awaitingAck && header == ModeHeader:
		return &Frame{Header: header, Type: reading.TypeMode}, buf[1:]
	case bits == 0:
		return &Frame{Header: header, Type: reading.TypeEmpty}, buf[1:]
	}

	length := (bits + 7) / 8
	if len(buf) < 1+length {
		return nil, buf
	}
	payload := append([]byte(nil), buf[1:1+length]...)
	return &Frame{Header: header, Bits: bits, Payload: payload}, buf[1+length:]
}
