package hc05

import (
	"log/slog"
	"time"
)

const (
	// BufferSize is the capacity of the receive line buffer. A line is
	// delivered at the latest when BufferSize-1 bytes have accumulated.
	BufferSize = 256
	// ResponseSize is the capacity of the AT response buffer.
	ResponseSize = 64

	DataBaudRate   = 9600
	ConfigBaudRate = 38400

	TransmitTimeout     = 1000 * time.Millisecond
	CommandTimeout      = 2000 * time.Millisecond
	ResetCommandTimeout = 3000 * time.Millisecond

	// SettleDelay is applied around every enable line transition.
	SettleDelay = 100 * time.Millisecond
	// ResetDelay lets the module finish its reboot after AT+RESET.
	ResetDelay = 2000 * time.Millisecond
)

func (c *Config) validate() error {
	if c.Transport == nil {
		return errorf(ErrInvalidArgument, "no transport configured")
	}
	if c.EnableLine == nil {
		return errorf(ErrInvalidArgument, "no enable line configured")
	}
	return nil
}

type Config struct {
	Transport  Transport
	EnableLine EnableLine
	Logger     *slog.Logger
	// Sleep implements the blocking settling delays.
	Sleep func(time.Duration)

	DataBaudRate   int
	ConfigBaudRate int

	SettleDelay         time.Duration
	ResetDelay          time.Duration
	TransmitTimeout     time.Duration
	CommandTimeout      time.Duration
	ResetCommandTimeout time.Duration

	// RearmInConfigMode keeps asynchronous reception armed while the module
	// is in configuration mode. The one-byte listener then competes with the
	// blocking AT response receive for the same bytes.
	RearmInConfigMode bool
}

func (c *Config) setDefaults() {
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.Sleep == nil {
		c.Sleep = time.Sleep
	}
	if c.DataBaudRate == 0 {
		c.DataBaudRate = DataBaudRate
	}
	if c.ConfigBaudRate == 0 {
		c.ConfigBaudRate = ConfigBaudRate
	}
	if c.SettleDelay == 0 {
		c.SettleDelay = SettleDelay
	}
	if c.ResetDelay == 0 {
		c.ResetDelay = ResetDelay
	}
	if c.TransmitTimeout == 0 {
		c.TransmitTimeout = TransmitTimeout
	}
	if c.CommandTimeout == 0 {
		c.CommandTimeout = CommandTimeout
	}
	if c.ResetCommandTimeout == 0 {
		c.ResetCommandTimeout = ResetCommandTimeout
	}
}

// ConfigBuilder assembles a Config step by step.
type ConfigBuilder struct {
	config Config
}

func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

func (b *ConfigBuilder) WithTransport(t Transport) *ConfigBuilder {
	b.config.Transport = t
	return b
}

func (b *ConfigBuilder) WithEnableLine(l EnableLine) *ConfigBuilder {
	b.config.EnableLine = l
	return b
}

func (b *ConfigBuilder) WithPort(p Port) *ConfigBuilder {
	b.config.Transport = p
	b.config.EnableLine = p
	return b
}

func (b *ConfigBuilder) WithLogger(l *slog.Logger) *ConfigBuilder {
	b.config.Logger = l
	return b
}

func (b *ConfigBuilder) WithSleep(sleep func(time.Duration)) *ConfigBuilder {
	b.config.Sleep = sleep
	return b
}

func (b *ConfigBuilder) WithBaudRates(data, config int) *ConfigBuilder {
	b.config.DataBaudRate = data
	b.config.ConfigBaudRate = config
	return b
}

func (b *ConfigBuilder) WithCommandTimeout(d time.Duration) *ConfigBuilder {
	b.config.CommandTimeout = d
	return b
}

func (b *ConfigBuilder) WithRearmInConfigMode(rearm bool) *ConfigBuilder {
	b.config.RearmInConfigMode = rearm
	return b
}

// Build validates the collected settings and fills in defaults.
func (b *ConfigBuilder) Build() (Config, error) {
	c := b.config
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	c.setDefaults()
	return c, nil
}
