package hc05

import (
	"fmt"
	"log/slog"
	"sync"
)

// Mode is the operating mode of the module.
type Mode int

const (
	// ModeData relays payload bytes transparently. The enable line is low
	// and the link runs at the data baud rate.
	ModeData Mode = iota
	// ModeConfig accepts AT commands. The enable line is high and the link
	// runs at the configuration baud rate.
	ModeConfig
)

func (m Mode) String() string {
	switch m {
	case ModeData:
		return "data"
	case ModeConfig:
		return "config"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Driver represents an HC-05 Bluetooth serial module. It assembles the bytes
// received in data mode into CR/LF terminated lines and runs the AT command
// exchange used to configure the module.
//
// At most one received line is buffered. While it is waiting to be taken,
// reception is not re-armed and bytes arriving on the link are lost.
type Driver struct {
	// transport is the borrowed serial channel to the module
	transport Transport
	// enable drives the module's EN/KEY pin
	enable EnableLine
	// config holds timing and baud rate settings, defaults applied
	config Config
	logger *slog.Logger

	// op serializes the blocking operations: mode switches, AT exchanges and
	// data transmission
	op sync.Mutex
	// tx formats outgoing AT commands; guarded by op
	tx [BufferSize]byte

	// mu guards the state shared with byte delivery. It is never held
	// across a blocking call.
	mu sync.Mutex
	// mode is the current operating mode, in step with the baud rate
	mode Mode
	// rx accumulates the line being received
	rx [BufferSize]byte
	// rxIndex is the number of bytes in rx, always < BufferSize
	rxIndex int
	// lineReady reports a complete line in rx[:rxIndex]
	lineReady bool
	// armed reports an outstanding one-byte receive request
	armed  bool
	closed bool
}

// New binds a Driver to the configured transport and enable line. It forces
// the module into data mode, waits for the line to settle and arms
// reception of the first byte.
//
// The transport is expected to already run at the data baud rate.
func New(config Config) (*Driver, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	config.setDefaults()

	d := &Driver{
		transport: config.Transport,
		enable:    config.EnableLine,
		config:    config,
		logger:    config.Logger,
		mode:      ModeData,
	}

	if err := d.enable.SetLevel(Low); err != nil {
		return nil, errorf(ErrTransport, "set enable line %s: %w", Low, err)
	}
	d.config.Sleep(d.config.SettleDelay)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.arm(); err != nil {
		return nil, err
	}
	return d, nil
}

// OnByteReceived is the delivery notification for the outstanding one-byte
// receive request. It never blocks.
//
// A byte delivered while no request is outstanding is dropped.
func (d *Driver) OnByteReceived(b byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.armed || d.closed {
		d.logger.Debug("byte dropped", "byte", b, "line_ready", d.lineReady)
		return
	}
	d.armed = false

	// NUL and SOH are line noise some adapters emit on connect.
	if b == 0x00 || b == 0x01 {
		d.rearm()
		return
	}

	d.rx[d.rxIndex] = b
	d.rxIndex++

	if isTerminator(b) {
		for d.rxIndex > 0 && isTerminator(d.rx[d.rxIndex-1]) {
			d.rxIndex--
			d.rx[d.rxIndex] = 0
		}
		if d.rxIndex > 0 {
			d.lineReady = true
			return
		}
		d.rearm()
		return
	}

	if d.rxIndex >= BufferSize-1 {
		d.lineReady = true
		return
	}
	d.rearm()
}

// LineAvailable reports whether a complete line is waiting to be taken.
func (d *Driver) LineAvailable() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lineReady
}

// TakeLine copies the buffered line into p, truncating it to len(p), and
// resumes reception. It returns ErrBusy when no line is ready.
//
// The returned count is valid even when re-arming reception fails.
func (d *Driver) TakeLine(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, errorf(ErrInvalidArgument, "empty destination buffer")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, ErrAlreadyClosed
	}
	if !d.lineReady {
		return 0, ErrBusy
	}

	n := copy(p, d.rx[:d.rxIndex])
	return n, d.resetLocked()
}

// ReadLine is like TakeLine but returns the whole line as a string.
func (d *Driver) ReadLine() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return "", ErrAlreadyClosed
	}
	if !d.lineReady {
		return "", ErrBusy
	}

	line := string(d.rx[:d.rxIndex])
	return line, d.resetLocked()
}

// Reset discards any partially received or pending line and re-arms
// reception.
func (d *Driver) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrAlreadyClosed
	}
	return d.resetLocked()
}

// Mode returns the current operating mode.
func (d *Driver) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// Close stops asynchronous reception. The transport and enable line are
// left untouched; they belong to the caller.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrAlreadyClosed
	}
	d.closed = true
	d.transport.AbortReceive()
	d.armed = false
	return nil
}

func (d *Driver) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// resetLocked clears the framing state. d.mu must be held.
func (d *Driver) resetLocked() error {
	d.transport.AbortReceive()
	d.armed = false
	clear(d.rx[:])
	d.rxIndex = 0
	d.lineReady = false
	return d.arm()
}

// arm requests the next byte at rx[rxIndex]. d.mu must be held.
//
// Nothing is requested while a line is pending, after Close, or in
// configuration mode unless RearmInConfigMode is set.
func (d *Driver) arm() error {
	if d.armed || d.lineReady || d.closed {
		return nil
	}
	if d.mode == ModeConfig && !d.config.RearmInConfigMode {
		return nil
	}
	if err := d.transport.RequestByte(d.OnByteReceived); err != nil {
		return errorf(ErrTransport, "arm receive: %w", err)
	}
	d.armed = true
	return nil
}

// rearm is arm for the delivery path, where there is no caller to report to.
func (d *Driver) rearm() {
	if err := d.arm(); err != nil {
		d.logger.Error("re-arm reception failed", "error", err)
	}
}

func isTerminator(b byte) bool {
	return b == '\r' || b == '\n'
}
