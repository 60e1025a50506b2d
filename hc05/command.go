package hc05

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"i4.energy/across/btgw/at"
)

// SendConfigCommand transmits an AT command terminated by CRLF and, if
// timeout is positive, waits up to timeout for the module's answer. The
// module must already be in configuration mode; see SetMode.
//
// The raw response text is returned. An error result from the module is
// reported as *CommandError alongside the response. If nothing arrives in
// time ErrTimeout is returned.
func (d *Driver) SendConfigCommand(ctx context.Context, command string, timeout time.Duration) (string, error) {
	d.op.Lock()
	defer d.op.Unlock()
	if d.isClosed() {
		return "", ErrAlreadyClosed
	}
	return d.exchange(ctx, command, timeout)
}

// exchange does the work of SendConfigCommand. d.op must be held.
func (d *Driver) exchange(ctx context.Context, command string, timeout time.Duration) (string, error) {
	if command == "" || strings.ContainsAny(command, "\r\n") {
		return "", errorf(ErrInvalidArgument, "malformed command %q", command)
	}
	if len(command)+len(at.CRLF) > len(d.tx) {
		return "", errorf(ErrInvalidArgument, "command too long (%d bytes)", len(command))
	}

	n := copy(d.tx[:], command)
	n += copy(d.tx[n:], at.CRLF)

	d.logger.Debug("sending AT command", "command", command)
	if err := d.transport.Transmit(d.tx[:n], d.config.TransmitTimeout); err != nil {
		return "", errorf(ErrTransport, "write command %q: %w", command, err)
	}

	// No response requested
	if timeout <= 0 {
		return "", nil
	}

	// The last byte of the response buffer is never filled, which bounds
	// the answer to ResponseSize-1 bytes of text.
	var resp [ResponseSize]byte
	limit := len(resp) - 1
	total := 0
	deadline := time.Now().Add(timeout)

	for total < limit {
		if err := ctx.Err(); err != nil {
			return string(resp[:total]), fmt.Errorf("command %q: %w", command, err)
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}

		n, err := d.transport.Receive(resp[total:limit], remaining)
		total += n
		if err != nil {
			return string(resp[:total]), errorf(ErrTransport, "read response to %q: %w", command, err)
		}

		if final, ok := at.Final(resp[:total]); ok {
			response := string(resp[:total])
			d.logger.Debug("AT response", "command", command, "response", response)
			if final == at.OK {
				return response, nil
			}
			code, _ := at.ErrorCode(final)
			return response, &CommandError{Command: command, Code: code}
		}
	}

	response := string(resp[:total])
	switch {
	case total == limit:
		// Buffer full: hand over what fits.
		return response, nil
	case total == 0:
		return "", errorf(ErrTimeout, "no response to %q within %s", command, timeout)
	default:
		return response, errorf(ErrTimeout, "incomplete response to %q: %q", command, response)
	}
}

// configure runs one AT command inside a configuration mode window:
// enter configuration mode, exchange the command, return to data mode.
// The return to data mode always runs so the module is not left in
// configuration mode. settle is slept after the command before reverting.
func (d *Driver) configure(ctx context.Context, command string, timeout, settle time.Duration) (string, error) {
	d.op.Lock()
	defer d.op.Unlock()
	if d.isClosed() {
		return "", ErrAlreadyClosed
	}

	var resp string
	err := d.setMode(ModeConfig)
	if err != nil {
		// The link speed is unknown, sending the command is pointless.
		d.logger.Warn("entering configuration mode failed", "command", command, "error", err)
	} else {
		resp, err = d.exchange(ctx, command, timeout)
		if settle > 0 {
			d.config.Sleep(settle)
		}
	}

	if rerr := d.setMode(ModeData); rerr != nil {
		d.logger.Error("returning to data mode failed", "command", command, "error", rerr)
		err = errors.Join(err, rerr)
	}
	if err != nil {
		return resp, err
	}

	d.logger.Info("module configured", "command", command)
	return resp, nil
}

// SetName changes the name the module advertises.
func (d *Driver) SetName(ctx context.Context, name string) error {
	if name == "" {
		return errorf(ErrInvalidArgument, "empty device name")
	}
	_, err := d.configure(ctx, at.SetName(name), d.config.CommandTimeout, 0)
	return err
}

// SetPIN changes the pairing code.
func (d *Driver) SetPIN(ctx context.Context, pin string) error {
	if pin == "" {
		return errorf(ErrInvalidArgument, "empty PIN")
	}
	_, err := d.configure(ctx, at.SetPassword(pin), d.config.CommandTimeout, 0)
	return err
}

// SetBaudRate changes the baud rate the module uses in data mode. The module
// applies it after its next reset; the driver keeps using the configured
// data baud rate.
func (d *Driver) SetBaudRate(ctx context.Context, rate uint32) error {
	if rate == 0 {
		return errorf(ErrInvalidArgument, "baud rate must be positive")
	}
	_, err := d.configure(ctx, at.SetUART(rate), d.config.CommandTimeout, 0)
	return err
}

// Version queries the module firmware version.
func (d *Driver) Version(ctx context.Context) (string, error) {
	resp, err := d.configure(ctx, at.CmdVersion, d.config.CommandTimeout, 0)
	if err != nil {
		return "", err
	}
	if v, ok := at.Value(resp, at.RespVersion); ok {
		return v, nil
	}
	return strings.TrimSpace(resp), nil
}

// ResetModule reboots the module and waits for it to come back before
// returning to data mode.
func (d *Driver) ResetModule(ctx context.Context) error {
	_, err := d.configure(ctx, at.CmdReset, d.config.ResetCommandTimeout, d.config.ResetDelay)
	return err
}

// SendData transmits data to the remote Bluetooth peer as is.
func (d *Driver) SendData(data string) error {
	d.op.Lock()
	defer d.op.Unlock()
	if d.isClosed() {
		return ErrAlreadyClosed
	}
	if err := d.transport.Transmit([]byte(data), d.config.TransmitTimeout); err != nil {
		return errorf(ErrTransport, "write data: %w", err)
	}
	return nil
}
