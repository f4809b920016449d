package frame

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/Digicrat/gorfxrx/internal/reading"
)

func TestExtractIncomplete(t *testing.T) {
	// 80-bit telegram needs 11 bytes total; feed one less.
	buf := decodeHex(t, "501A2D48B24023104433")
	f, rest := Extract(buf, false)
	if f != nil {
		t.Fatalf("expected incomplete, got frame %+v", f)
	}
	if !bytes.Equal(rest, buf) {
		t.Fatalf("incomplete extraction must not consume bytes")
	}
}

func TestExtractComplete(t *testing.T) {
	buf := decodeHex(t, "501A2D48B2402310443B00FF")
	f, rest := Extract(buf, false)
	if f == nil {
		t.Fatal("expected a frame")
	}
	if f.Bits != 80 {
		t.Fatalf("bits = %d, want 80", f.Bits)
	}
	if len(f.Payload) != 10 {
		t.Fatalf("payload length = %d, want 10", len(f.Payload))
	}
	// exactly 1 + ceil(bits/8) bytes consumed
	if !bytes.Equal(rest, []byte{0xFF}) {
		t.Fatalf("remainder = %X", rest)
	}
}

func TestExtractEmptyHeader(t *testing.T) {
	f, rest := Extract([]byte{0x80, 0x51}, false)
	if f == nil || f.Type != reading.TypeEmpty {
		t.Fatalf("expected empty frame, got %+v", f)
	}
	if !f.Master() {
		t.Fatal("master bit lost")
	}
	if len(rest) != 1 || rest[0] != 0x51 {
		t.Fatalf("empty frame must consume exactly one byte, rest = %X", rest)
	}
}

func TestExtractVersionGreedy(t *testing.T) {
	buf := decodeHex(t, "4D312E32")
	f, rest := Extract(buf, true)
	if f == nil || f.Type != reading.TypeVersion {
		t.Fatalf("expected version frame, got %+v", f)
	}
	if string(f.Payload) != "1.2" {
		t.Fatalf("version payload = %q", f.Payload)
	}
	if len(rest) != 0 {
		t.Fatalf("version must drain the buffer, rest = %X", rest)
	}
}

func TestExtractMode(t *testing.T) {
	f, rest := Extract([]byte{ModeHeader, 0x10}, true)
	if f == nil || f.Type != reading.TypeMode {
		t.Fatalf("expected mode frame, got %+v", f)
	}
	if len(rest) != 1 {
		t.Fatalf("mode must consume the header byte only, rest = %X", rest)
	}
}

func TestSentinelsIgnoredWithoutPendingCommand(t *testing.T) {
	// 0x4D reads as a 13-bit telegram when no command is outstanding.
	buf := []byte{0x4D, 0x01, 0x02}
	f, _ := Extract(buf, false)
	if f == nil {
		t.Fatal("expected a data frame")
	}
	if f.Type != "" || f.Bits != 13 || len(f.Payload) != 2 {
		t.Fatalf("got %+v", f)
	}
}

func TestExtractEmptyBuffer(t *testing.T) {
	f, rest := Extract(nil, false)
	if f != nil || rest != nil {
		t.Fatalf("empty buffer must yield nothing")
	}
}

func decodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("hex decode: %v", err)
	}
	return b
}
