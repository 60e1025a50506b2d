package hc05

// SetMode switches the module between data and configuration mode: the
// enable line is driven to the target level, the link is reconfigured to
// the matching baud rate and reception is re-armed.
//
// If the baud rate cannot be changed the mode is left as it was, but the
// enable line may already reflect the target. The module should then be
// treated as being in an unknown mode and the switch retried.
func (d *Driver) SetMode(mode Mode) error {
	d.op.Lock()
	defer d.op.Unlock()
	if d.isClosed() {
		return ErrAlreadyClosed
	}
	return d.setMode(mode)
}

// setMode does the work of SetMode. d.op must be held.
func (d *Driver) setMode(mode Mode) error {
	var (
		level Level
		baud  int
	)
	switch mode {
	case ModeData:
		level, baud = Low, d.config.DataBaudRate
	case ModeConfig:
		level, baud = High, d.config.ConfigBaudRate
	default:
		return errorf(ErrInvalidArgument, "unknown mode %s", mode)
	}

	if mode == ModeConfig && !d.config.RearmInConfigMode {
		d.mu.Lock()
		d.transport.AbortReceive()
		d.armed = false
		d.mu.Unlock()
	}

	d.logger.Debug("switching mode", "mode", mode, "enable", level, "baud_rate", baud)

	if err := d.enable.SetLevel(level); err != nil {
		return errorf(ErrTransport, "set enable line %s: %w", level, err)
	}
	d.config.Sleep(d.config.SettleDelay)

	if err := d.transport.SetBaudRate(baud); err != nil {
		return errorf(ErrTransport, "set baud rate %d: %w", baud, err)
	}
	d.mu.Lock()
	d.mode = mode
	d.mu.Unlock()
	d.config.Sleep(d.config.SettleDelay)

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.arm()
}
