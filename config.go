package main

import (
	"flag"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	// SerialPort is the path to the adapter the HC-05 is wired to (e.g. "/dev/ttyUSB0")
	SerialPort string
	// BaudRate is the data mode baud rate of the module (e.g. 9600)
	BaudRate int
	// EnableLine is the modem control signal wired to the module's EN pin ("rts" or "dtr")
	EnableLine string
	// EnableActiveLow inverts the enable line
	EnableActiveLow bool
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string
	// DeviceName is written to the module at startup when set
	DeviceName string
	// PIN is the pairing PIN written to the module at startup when set
	PIN string
	// BindAddress is the address the admin server listens on, empty disables it
	BindAddress string
	// MQTTBroker is the broker URL (e.g. "tcp://localhost:1883"), empty disables the bridge
	MQTTBroker   string
	MQTTTopic    string
	MQTTClientID string
	MQTTUsername string
	MQTTPassword string
	// Heartbeat is the interval between heartbeat messages, zero disables them
	Heartbeat time.Duration
	// Tag prefixes every message sent to the remote peer (e.g. "[DEVICE]: ")
	Tag string
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.SerialPort = "/dev/ttyUSB0"
		c.BaudRate = 9600
		c.EnableLine = "rts"
		c.LogLevel = "info"
		c.BindAddress = "0.0.0.0:8080"
		c.MQTTTopic = "hc05"
		c.MQTTClientID = "btgw"
		c.Heartbeat = 30 * time.Second
		c.Tag = "DEVICE"
		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if serial := os.Getenv("SERIAL_PORT"); serial != "" {
			c.SerialPort = serial
		}

		if baud := os.Getenv("BAUD_RATE"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.BaudRate = b
			}
		}

		if line := os.Getenv("ENABLE_LINE"); line != "" {
			c.EnableLine = line
		}

		if activeLow := os.Getenv("ENABLE_ACTIVE_LOW"); activeLow != "" {
			if b, err := strconv.ParseBool(activeLow); err == nil {
				c.EnableActiveLow = b
			}
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		if name := os.Getenv("DEVICE_NAME"); name != "" {
			c.DeviceName = name
		}

		if pin := os.Getenv("BT_PIN"); pin != "" {
			c.PIN = pin
		}

		if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
			c.BindAddress = addr
		}

		if broker := os.Getenv("MQTT_BROKER"); broker != "" {
			c.MQTTBroker = broker
		}

		if topic := os.Getenv("MQTT_TOPIC"); topic != "" {
			c.MQTTTopic = topic
		}

		if id := os.Getenv("MQTT_CLIENT_ID"); id != "" {
			c.MQTTClientID = id
		}

		if user := os.Getenv("MQTT_USERNAME"); user != "" {
			c.MQTTUsername = user
		}

		if pass := os.Getenv("MQTT_PASSWORD"); pass != "" {
			c.MQTTPassword = pass
		}

		if hb := os.Getenv("HEARTBEAT"); hb != "" {
			if d, err := time.ParseDuration(hb); err == nil {
				c.Heartbeat = d
			}
		}

		if tag := os.Getenv("DEVICE_TAG"); tag != "" {
			c.Tag = tag
		}

		return nil
	}
}

// WithFlags loads configuration from command-line flags
func WithFlags(fSet *flag.FlagSet) ConfigOption {
	return func(c *Config) error {
		fSet.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "serial-port":
				c.SerialPort = f.Value.String()
			case "baud-rate":
				if b, err := strconv.Atoi(f.Value.String()); err == nil {
					c.BaudRate = b
				}
			case "enable-line":
				c.EnableLine = f.Value.String()
			case "enable-active-low":
				if b, err := strconv.ParseBool(f.Value.String()); err == nil {
					c.EnableActiveLow = b
				}
			case "log-level":
				c.LogLevel = f.Value.String()
			case "device-name":
				c.DeviceName = f.Value.String()
			case "pin":
				c.PIN = f.Value.String()
			case "bind-address":
				c.BindAddress = f.Value.String()
			case "mqtt-broker":
				c.MQTTBroker = f.Value.String()
			case "mqtt-topic":
				c.MQTTTopic = f.Value.String()
			case "mqtt-client-id":
				c.MQTTClientID = f.Value.String()
			case "heartbeat":
				if d, err := time.ParseDuration(f.Value.String()); err == nil {
					c.Heartbeat = d
				}
			case "tag":
				c.Tag = f.Value.String()
			}
		})
		return nil
	}
}
