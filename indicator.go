package main

import (
	"log/slog"
	"sync"
)

// LogIndicator stands in for the user LED on hosts without one: state
// changes are logged and reported by the admin server.
type LogIndicator struct {
	mu     sync.Mutex
	on     bool
	logger *slog.Logger
}

func NewLogIndicator(logger *slog.Logger) *LogIndicator {
	return &LogIndicator{logger: logger}
}

func (l *LogIndicator) On() error {
	l.set(true)
	return nil
}

func (l *LogIndicator) Off() error {
	l.set(false)
	return nil
}

// IsOn reports the last state set.
func (l *LogIndicator) IsOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}

func (l *LogIndicator) set(on bool) {
	l.mu.Lock()
	l.on = on
	l.mu.Unlock()
	l.logger.Info("LED changed", "on", on)
}
