package dispatch_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"i4.energy/across/btgw/dispatch"
)

type recorder struct {
	sent []string
	err  error
}

func (r *recorder) SendData(data string) error {
	r.sent = append(r.sent, data)
	return r.err
}

type led struct {
	on, off int
	err     error
}

func (l *led) On() error {
	l.on++
	return l.err
}

func (l *led) Off() error {
	l.off++
	return l.err
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		reply   string
		on, off int
	}{
		{name: "ledon", line: "ledon", reply: "[DEVICE]: LED ON - User LED activated\r\n", on: 1},
		{name: "Mixed case", line: "LedOn", reply: "[DEVICE]: LED ON - User LED activated\r\n", on: 1},
		{name: "ledoff", line: "LEDOFF", reply: "[DEVICE]: LED OFF - User LED deactivated\r\n", off: 1},
		{
			name:  "Unknown echoes the original input",
			line:  "Foo",
			reply: "[DEVICE]: Unknown command: 'Foo'. Type 'help' for available commands.\r\n",
		},
		{
			name:  "No trimming",
			line:  "ledon ",
			reply: "[DEVICE]: Unknown command: 'ledon '. Type 'help' for available commands.\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender, indicator := &recorder{}, &led{}
			d := dispatch.New(sender, indicator)

			require.NoError(t, d.Dispatch(tt.line))

			require.Equal(t, []string{tt.reply}, sender.sent)
			require.Equal(t, tt.on, indicator.on)
			require.Equal(t, tt.off, indicator.off)
		})
	}
}

func TestDispatchHelp(t *testing.T) {
	sender, indicator := &recorder{}, &led{}
	d := dispatch.New(sender, indicator)

	require.NoError(t, d.Dispatch("HELP"))

	require.Len(t, sender.sent, 1)
	require.Equal(t, d.Help(), sender.sent[0])
	for _, cmd := range []string{dispatch.CmdLedOn, dispatch.CmdLedOff, dispatch.CmdHelp} {
		require.Contains(t, sender.sent[0], cmd)
	}
	require.Zero(t, indicator.on+indicator.off)
}

func TestDispatchWithTag(t *testing.T) {
	sender := &recorder{}
	d := dispatch.New(sender, &led{}, dispatch.WithTag("STM32"))

	require.NoError(t, d.Dispatch("ledoff"))
	require.Equal(t, []string{"[STM32]: LED OFF - User LED deactivated\r\n"}, sender.sent)
	require.Contains(t, d.Help(), "=== STM32 Commands ===")
}

func TestDispatchIndicatorFailure(t *testing.T) {
	sender := &recorder{}
	gpio := errors.New("gpio fault")
	d := dispatch.New(sender, &led{err: gpio})

	err := d.Dispatch("LEDON")

	require.ErrorIs(t, err, gpio)
	require.Equal(t, []string{"[DEVICE]: Error executing 'ledon': gpio fault\r\n"}, sender.sent)
}

func TestDispatchSendFailure(t *testing.T) {
	tx := errors.New("tx")
	sender := &recorder{err: tx}
	d := dispatch.New(sender, &led{})

	require.ErrorIs(t, d.Dispatch("ledon"), tx)
	require.ErrorIs(t, d.Dispatch("help"), tx)
	require.ErrorIs(t, d.Dispatch("x"), tx)
}
