// Package transport provides the byte-oriented duplex channel to the
// receiver hardware, either a local serial device or a TCP-attached
// bridge. Both are exposed behind the same interface so the session can
// stay transport-agnostic.
package transport

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"go.bug.st/serial"
)

// Transport is a duplex byte channel with a bounded read. After
// SetReadTimeout, a Read that sees no data within the timeout returns
// (0, nil); io.EOF means the peer closed the channel.
type Transport interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	SetReadTimeout(d time.Duration) error
	Close() error
}

// Open connects to the receiver named by device: "host:port" dials TCP,
// anything else is opened as a serial device at the given baud rate.
func Open(device string, baud int) (Transport, error) {
	if strings.Contains(device, ":") {
		return DialTCP(device)
	}
	return OpenSerial(device, baud)
}

// OpenSerial opens a local serial device.
func OpenSerial(path string, baud int) (Transport, error) {
	if path == "" {
		return nil, errors.New("no serial device path provided")
	}
	port, err := serial.Open(path, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", path, err)
	}
	// serial.Port already matches the Transport contract: a timed-out
	// read returns (0, nil).
	return port, nil
}

// DialTCP connects to a receiver bridge at address ("host:port").
func DialTCP(address string) (Transport, error) {
	conn, err := net.DialTimeout("tcp", address, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", address, err)
	}
	return &tcpTransport{conn: conn}, nil
}

type tcpTransport struct {
	conn net.Conn
}

func (t *tcpTransport) Read(p []byte) (int, error) {
	n, err := t.conn.Read(p)
	// Normalize deadline expiry to the serial timeout convention.
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return n, nil
	}
	return n, err
}

func (t *tcpTransport) Write(p []byte) (int, error) {
	return t.conn.Write(p)
}

func (t *tcpTransport) SetReadTimeout(d time.Duration) error {
	if d <= 0 {
		return t.conn.SetReadDeadline(time.Time{})
	}
	return t.conn.SetReadDeadline(time.Now().Add(d))
}

func (t *tcpTransport) Close() error {
	return t.conn.Close()
}
