package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Welcome is sent to the remote peer once the module is ready.
const Welcome = "\r\n*** HC-05 Gateway ***\r\nSystem ready! Type 'help' for commands.\r\n"

// DefaultPollInterval is the pause between two checks for a received line.
const DefaultPollInterval = 10 * time.Millisecond

// Device is the part of the HC-05 driver the poll loop uses.
type Device interface {
	LineAvailable() bool
	ReadLine() (string, error)
	SendData(data string) error
}

// LineHandler acts on a received line.
type LineHandler interface {
	Dispatch(line string) error
}

// LinePublisher forwards received lines to another system.
type LinePublisher interface {
	Publish(line string) error
}

// App drives the gateway: it drains received lines, hands them to the
// dispatcher and sends periodic heartbeats.
type App struct {
	Logger     *slog.Logger
	Device     Device
	Dispatcher LineHandler
	// Publisher is optional.
	Publisher LinePublisher
	// Heartbeat is the heartbeat interval, zero disables heartbeats.
	Heartbeat    time.Duration
	Tag          string
	PollInterval time.Duration
}

// Welcome sends the welcome banner.
func (a *App) Welcome() error {
	return a.Device.SendData(Welcome)
}

// Run polls the device until ctx is done.
func (a *App) Run(ctx context.Context) error {
	interval := a.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	poll := time.NewTicker(interval)
	defer poll.Stop()

	var heartbeat <-chan time.Time
	if a.Heartbeat > 0 {
		t := time.NewTicker(a.Heartbeat)
		defer t.Stop()
		heartbeat = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-heartbeat:
			a.sendHeartbeat()
		case <-poll.C:
			a.Poll()
		}
	}
}

// Poll handles at most one received line.
func (a *App) Poll() {
	if !a.Device.LineAvailable() {
		return
	}
	line, err := a.Device.ReadLine()
	if err != nil {
		a.Logger.Error("Failed to read line", "error", err)
		return
	}
	a.Logger.Info("BT RX", "line", line)

	if a.Publisher != nil {
		if err := a.Publisher.Publish(line); err != nil {
			a.Logger.Warn("Failed to publish line", "error", err)
		}
	}
	if err := a.Dispatcher.Dispatch(line); err != nil {
		a.Logger.Error("Failed to dispatch command", "line", line, "error", err)
	}
}

func (a *App) sendHeartbeat() {
	a.Logger.Debug("Sending heartbeat")
	if err := a.Device.SendData(fmt.Sprintf("[%s]: Heartbeat - System running OK\r\n", a.Tag)); err != nil {
		a.Logger.Error("Failed to send heartbeat", "error", err)
	}
}
