package hc05

//go:generate mockgen -source=transport.go -destination=mock_transport.go -package=hc05

import (
	"time"
)

// Transport represents the asynchronous serial channel to the HC-05 module.
//
// The Transport is owned by the caller; a Driver only borrows it. Typical
// implementations are SerialPort, backed by go.bug.st/serial, and the
// in-memory TestTransport used in tests.
type Transport interface {
	// Transmit writes p, blocking until it has been sent or timeout elapses.
	Transmit(p []byte, timeout time.Duration) error

	// Receive blocks until at least one byte has been read into p or timeout
	// elapses. A timeout is reported as 0, nil.
	Receive(p []byte, timeout time.Duration) (int, error)

	// RequestByte arms delivery of exactly one byte. When the byte arrives,
	// deliver is called once from the transport's own goroutine; it must
	// never be called synchronously from RequestByte. Only one request may
	// be outstanding, otherwise ErrReceivePending is returned.
	RequestByte(deliver func(b byte)) error

	// AbortReceive cancels the outstanding one-byte request, if any.
	AbortReceive()

	// SetBaudRate reconfigures the channel's baud rate.
	SetBaudRate(rate int) error
}

// Level is the logic level of a digital output.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "high"
	}
	return "low"
}

// EnableLine is the digital output wired to the module's EN/KEY pin. A high
// level selects configuration (AT) mode, a low level selects data mode.
type EnableLine interface {
	SetLevel(level Level) error
}
