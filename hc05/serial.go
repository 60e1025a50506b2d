package hc05

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.bug.st/serial"
)

// Port is an open connection to a module: the serial channel together with
// the enable line wired to one of its modem control signals.
type Port interface {
	Transport
	EnableLine
	io.Closer
}

// Dialer opens a Port to an HC-05 module.
type Dialer interface {
	Dial(ctx context.Context) (Port, error)
}

// ControlLine selects the modem control signal driving the module's EN pin.
type ControlLine string

const (
	LineRTS ControlLine = "rts"
	LineDTR ControlLine = "dtr"
)

// DefaultPollInterval bounds how long the background reader blocks in a
// single read before checking whether its request was aborted.
const DefaultPollInterval = 50 * time.Millisecond

// SerialDialer opens a module over a serial port using go.bug.st/serial.
type SerialDialer struct {
	PortName string
	// BaudRate is the initial link speed, DataBaudRate if zero.
	BaudRate int
	// EnableLine is the control signal wired to EN, LineRTS if empty.
	EnableLine ControlLine
	// ActiveLow inverts the enable line, for adapters with inverting
	// level shifters.
	ActiveLow    bool
	PollInterval time.Duration
}

// Dial opens the serial port in 8N1 mode.
func (d SerialDialer) Dial(ctx context.Context) (Port, error) {
	if ctx == nil {
		return nil, errors.New("hc05: context is nil")
	}
	if d.PortName == "" {
		return nil, errors.New("hc05: serial port name is required")
	}
	line := d.EnableLine
	if line == "" {
		line = LineRTS
	}
	if line != LineRTS && line != LineDTR {
		return nil, fmt.Errorf("hc05: unknown enable line %q", line)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := serial.Mode{
		BaudRate: d.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	if mode.BaudRate == 0 {
		mode.BaudRate = DataBaudRate
	}

	p, err := serial.Open(d.PortName, &mode)
	if err != nil {
		return nil, fmt.Errorf("hc05: open %s: %w", d.PortName, err)
	}
	return newSerialPort(p, mode, line, d.ActiveLow, d.PollInterval), nil
}

// SerialPort implements Port on top of a go.bug.st/serial port.
//
// One-byte asynchronous reception is served by a background goroutine that
// reads with a short timeout while a request is outstanding. Blocking
// receives and the background reader never read concurrently.
type SerialPort struct {
	port      serial.Port
	line      ControlLine
	activeLow bool
	poll      time.Duration

	// readMu serializes reads on the port
	readMu sync.Mutex
	// modeMu guards mode
	modeMu sync.Mutex
	mode   serial.Mode

	mu      sync.Mutex
	pending func(byte)
	readErr error
	closed  bool

	wake      chan struct{}
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

func newSerialPort(p serial.Port, mode serial.Mode, line ControlLine, activeLow bool, poll time.Duration) *SerialPort {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &SerialPort{
		port:      p,
		line:      line,
		activeLow: activeLow,
		poll:      poll,
		mode:      mode,
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

// Transmit writes p. go.bug.st/serial has no write deadline, so the write
// runs in its own goroutine and is abandoned, not cancelled, on timeout.
func (s *SerialPort) Transmit(p []byte, timeout time.Duration) error {
	result := make(chan error, 1)
	go func() {
		_, err := s.port.Write(p)
		result <- err
	}()

	if timeout <= 0 {
		return <-result
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case err := <-result:
		return err
	case <-timer.C:
		return fmt.Errorf("write timeout after %s", timeout)
	}
}

// Receive reads at least one byte into p unless timeout elapses first.
func (s *SerialPort) Receive(p []byte, timeout time.Duration) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	s.readMu.Lock()
	defer s.readMu.Unlock()

	if err := s.port.SetReadTimeout(timeout); err != nil {
		return 0, err
	}
	return s.port.Read(p)
}

// RequestByte arms the background reader for one byte.
func (s *SerialPort) RequestByte(deliver func(b byte)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return io.ErrClosedPipe
	}
	if s.readErr != nil {
		return s.readErr
	}
	if s.pending != nil {
		return ErrReceivePending
	}
	s.pending = deliver

	s.startOnce.Do(func() { go s.readLoop() })
	select {
	case s.wake <- struct{}{}:
	default:
	}
	return nil
}

// AbortReceive drops the outstanding request. A byte already being read is
// discarded.
func (s *SerialPort) AbortReceive() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

// SetBaudRate applies a new baud rate, keeping the other line settings.
func (s *SerialPort) SetBaudRate(rate int) error {
	s.modeMu.Lock()
	defer s.modeMu.Unlock()
	mode := s.mode
	mode.BaudRate = rate
	if err := s.port.SetMode(&mode); err != nil {
		return err
	}
	s.mode = mode
	return nil
}

// SetLevel drives the configured control signal.
func (s *SerialPort) SetLevel(level Level) error {
	v := bool(level)
	if s.activeLow {
		v = !v
	}
	if s.line == LineDTR {
		return s.port.SetDTR(v)
	}
	return s.port.SetRTS(v)
}

// Close stops the background reader and closes the serial port.
func (s *SerialPort) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.pending = nil
		s.mu.Unlock()
		close(s.done)
		err = s.port.Close()
	})
	return err
}

func (s *SerialPort) armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

func (s *SerialPort) readLoop() {
	var b [1]byte
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}

		for s.armed() {
			n, err := s.readByte(b[:])
			if err != nil {
				s.mu.Lock()
				if !s.closed {
					s.readErr = err
				}
				s.pending = nil
				s.mu.Unlock()
				return
			}
			if n == 0 {
				continue
			}

			s.mu.Lock()
			deliver := s.pending
			s.pending = nil
			s.mu.Unlock()
			if deliver != nil {
				deliver(b[0])
			}
		}
	}
}

func (s *SerialPort) readByte(b []byte) (int, error) {
	s.readMu.Lock()
	defer s.readMu.Unlock()
	if err := s.port.SetReadTimeout(s.poll); err != nil {
		return 0, err
	}
	return s.port.Read(b)
}
