package hc05

import (
	"sync"
	"time"
)

// TestTransport is a test helper that simulates the serial link in memory.
// Bytes fed with Deliver only reach the driver while a one-byte request is
// outstanding, like a UART whose receive interrupt is disabled.
type TestTransport struct {
	mu        sync.Mutex
	pending   func(byte)
	written   []byte
	responses []testResponse
	baudRates []int

	// Arms counts RequestByte calls, Aborts counts AbortReceive calls.
	Arms   int
	Aborts int

	// Fail* make the corresponding operation return the given error.
	FailTransmit error
	FailReceive  error
	FailArm      error
	FailBaudRate error
}

type testResponse struct {
	data  string
	delay time.Duration
}

// NewTestTransport creates a new test transport for testing.
// Exported for use in tests.
func NewTestTransport() *TestTransport {
	return &TestTransport{}
}

func (t *TestTransport) Transmit(p []byte, timeout time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.FailTransmit != nil {
		return t.FailTransmit
	}
	t.written = append(t.written, p...)
	return nil
}

// Receive hands out the next queued response. A response whose delay exceeds
// the timeout is lost after blocking for the timeout.
func (t *TestTransport) Receive(p []byte, timeout time.Duration) (int, error) {
	t.mu.Lock()
	if t.FailReceive != nil {
		defer t.mu.Unlock()
		return 0, t.FailReceive
	}
	if len(t.responses) == 0 {
		t.mu.Unlock()
		time.Sleep(timeout)
		return 0, nil
	}
	resp := t.responses[0]
	if resp.delay > timeout {
		t.responses = t.responses[1:]
		t.mu.Unlock()
		time.Sleep(timeout)
		return 0, nil
	}
	n := copy(p, resp.data)
	if n < len(resp.data) {
		t.responses[0].data = resp.data[n:]
	} else {
		t.responses = t.responses[1:]
	}
	t.mu.Unlock()
	return n, nil
}

func (t *TestTransport) RequestByte(deliver func(b byte)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.FailArm != nil {
		return t.FailArm
	}
	if t.pending != nil {
		return ErrReceivePending
	}
	t.pending = deliver
	t.Arms++
	return nil
}

func (t *TestTransport) AbortReceive() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = nil
	t.Aborts++
}

func (t *TestTransport) SetBaudRate(rate int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.FailBaudRate != nil {
		return t.FailBaudRate
	}
	t.baudRates = append(t.baudRates, rate)
	return nil
}

// Deliver feeds one byte from the module. It reports whether a request was
// outstanding; otherwise the byte is lost.
func (t *TestTransport) Deliver(b byte) bool {
	t.mu.Lock()
	deliver := t.pending
	t.pending = nil
	t.mu.Unlock()
	if deliver == nil {
		return false
	}
	deliver(b)
	return true
}

// DeliverString feeds s byte by byte and returns how many bytes were
// accepted.
func (t *TestTransport) DeliverString(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if t.Deliver(s[i]) {
			n++
		}
	}
	return n
}

// QueueResponse schedules data to be returned by Receive, arriving after
// delay.
func (t *TestTransport) QueueResponse(data string, delay time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responses = append(t.responses, testResponse{data: data, delay: delay})
}

// Armed reports whether a one-byte request is outstanding.
func (t *TestTransport) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}

// Written returns everything transmitted so far.
func (t *TestTransport) Written() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.written)
}

// ResetWritten discards the transmit log.
func (t *TestTransport) ResetWritten() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.written = nil
}

// BaudRate returns the last configured baud rate, 0 if none.
func (t *TestTransport) BaudRate() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.baudRates) == 0 {
		return 0
	}
	return t.baudRates[len(t.baudRates)-1]
}

// TestPin records the levels driven on an enable line.
type TestPin struct {
	mu     sync.Mutex
	levels []Level
	Fail   error
}

func (p *TestPin) SetLevel(level Level) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Fail != nil {
		return p.Fail
	}
	p.levels = append(p.levels, level)
	return nil
}

// Level returns the last driven level.
func (p *TestPin) Level() Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.levels) == 0 {
		return Low
	}
	return p.levels[len(p.levels)-1]
}

// Levels returns every level driven so far.
func (p *TestPin) Levels() []Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Level(nil), p.levels...)
}
