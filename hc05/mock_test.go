package hc05_test

import (
	"time"

	gomock "go.uber.org/mock/gomock"
	"i4.energy/across/btgw/hc05"
)

type MockSequenceBuilder struct {
	transport *hc05.MockTransport
	pin       *hc05.MockEnableLine
	calls     []any
}

func NewMockSequence(transport *hc05.MockTransport, pin *hc05.MockEnableLine) *MockSequenceBuilder {
	return &MockSequenceBuilder{
		transport: transport,
		pin:       pin,
		calls:     []any{},
	}
}

// Init expects the calls made by hc05.New.
func (b *MockSequenceBuilder) Init() *MockSequenceBuilder {
	b.calls = append(b.calls,
		b.pin.EXPECT().SetLevel(hc05.Low).Return(nil),
		b.transport.EXPECT().RequestByte(gomock.Any()).Return(nil),
	)
	return b
}

// EnterConfig expects a switch to configuration mode with reception
// suppressed.
func (b *MockSequenceBuilder) EnterConfig() *MockSequenceBuilder {
	b.calls = append(b.calls,
		b.transport.EXPECT().AbortReceive(),
		b.pin.EXPECT().SetLevel(hc05.High).Return(nil),
		b.transport.EXPECT().SetBaudRate(hc05.ConfigBaudRate).Return(nil),
	)
	return b
}

// ExitConfig expects a switch back to data mode, re-arming reception.
func (b *MockSequenceBuilder) ExitConfig() *MockSequenceBuilder {
	b.calls = append(b.calls,
		b.pin.EXPECT().SetLevel(hc05.Low).Return(nil),
		b.transport.EXPECT().SetBaudRate(hc05.DataBaudRate).Return(nil),
		b.transport.EXPECT().RequestByte(gomock.Any()).Return(nil),
	)
	return b
}

// Command expects cmd on the wire, answered by resp in a single read.
func (b *MockSequenceBuilder) Command(cmd, resp string) *MockSequenceBuilder {
	b.calls = append(b.calls,
		b.transport.EXPECT().Transmit([]byte(cmd+"\r\n"), hc05.TransmitTimeout).Return(nil),
		b.transport.EXPECT().Receive(gomock.Any(), gomock.Any()).DoAndReturn(func(p []byte, _ time.Duration) (int, error) {
			return copy(p, resp), nil
		}),
	)
	return b
}

func (b *MockSequenceBuilder) Build() []any {
	return b.calls
}
