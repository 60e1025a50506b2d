// Package dispatch maps text lines received over the Bluetooth link to
// indicator actions and answers every line with exactly one reply.
package dispatch

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

const (
	CmdLedOn  = "ledon"
	CmdLedOff = "ledoff"
	CmdHelp   = "help"

	DefaultTag = "DEVICE"
)

// Sender transmits a reply to the remote peer.
type Sender interface {
	SendData(data string) error
}

// Indicator is the user-visible output switched by ledon and ledoff.
type Indicator interface {
	On() error
	Off() error
}

type Option func(*Dispatcher)

// WithTag sets the prefix of every reply, "[DEVICE]: " by default.
func WithTag(tag string) Option {
	return func(d *Dispatcher) {
		if tag != "" {
			d.tag = tag
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

type Dispatcher struct {
	sender    Sender
	indicator Indicator
	tag       string
	logger    *slog.Logger
}

func New(sender Sender, indicator Indicator, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sender:    sender,
		indicator: indicator,
		tag:       DefaultTag,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch runs the command named by line, compared case-insensitively,
// and sends its acknowledgment. Unknown input is echoed back unchanged.
func (d *Dispatcher) Dispatch(line string) error {
	cmd := strings.ToLower(line)
	d.logger.Debug("processing command", "command", cmd)

	switch cmd {
	case CmdLedOn:
		if err := d.indicator.On(); err != nil {
			return d.fail(cmd, err)
		}
		d.logger.Info("command executed", "command", cmd, "led", "on")
		return d.respond("LED ON - User LED activated")
	case CmdLedOff:
		if err := d.indicator.Off(); err != nil {
			return d.fail(cmd, err)
		}
		d.logger.Info("command executed", "command", cmd, "led", "off")
		return d.respond("LED OFF - User LED deactivated")
	case CmdHelp:
		return d.sender.SendData(d.Help())
	default:
		d.logger.Warn("unknown command received", "command", line)
		return d.respond(fmt.Sprintf("Unknown command: '%s'. Type 'help' for available commands.", line))
	}
}

// Help returns the command banner sent in reply to help.
func (d *Dispatcher) Help() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\r\n=== %s Commands ===\r\n", d.tag)
	b.WriteString(CmdLedOn + "  - Turn ON user LED\r\n")
	b.WriteString(CmdLedOff + " - Turn OFF user LED\r\n")
	b.WriteString(CmdHelp + "   - Show this help\r\n")
	b.WriteString("=============================\r\n")
	return b.String()
}

func (d *Dispatcher) respond(msg string) error {
	return d.sender.SendData(fmt.Sprintf("[%s]: %s\r\n", d.tag, msg))
}

func (d *Dispatcher) fail(cmd string, err error) error {
	d.logger.Error("command failed", "command", cmd, "error", err)
	return errors.Join(err, d.respond(fmt.Sprintf("Error executing '%s': %v", cmd, err)))
}
