package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"i4.energy/across/btgw/dispatch"
	"i4.energy/across/btgw/hc05"
)

func main() {
	flag.String("serial-port", "/dev/ttyUSB0", "Serial port the HC-05 module is connected to")
	flag.Int("baud-rate", 9600, "Data mode baud rate of the module")
	flag.String("enable-line", "rts", "Control line wired to the module's EN pin (rts, dtr)")
	flag.Bool("enable-active-low", false, "Invert the enable line")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.String("device-name", "", "Bluetooth device name to set at startup")
	flag.String("pin", "", "Pairing PIN to set at startup")
	flag.String("bind-address", "0.0.0.0:8080", "Bind address for the HTTP admin server (empty disables it)")
	flag.String("mqtt-broker", "", "MQTT broker URL (empty disables the bridge)")
	flag.String("mqtt-topic", "hc05", "MQTT topic prefix")
	flag.String("mqtt-client-id", "btgw", "MQTT client ID")
	flag.Duration("heartbeat", 30*time.Second, "Heartbeat interval (0 disables it)")
	flag.String("tag", "DEVICE", "Tag prefixing messages sent to the remote peer")
	flag.Parse()

	config, err := LoadConfig(WithDefaults(), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var dialer hc05.Dialer = hc05.SerialDialer{
		PortName:   config.SerialPort,
		BaudRate:   config.BaudRate,
		EnableLine: hc05.ControlLine(config.EnableLine),
		ActiveLow:  config.EnableActiveLow,
	}
	port, err := dialer.Dial(ctx)
	if err != nil {
		logger.Error("Failed to open serial port", "error", err)
		os.Exit(1)
	}
	defer port.Close()

	driverConfig, err := hc05.NewConfigBuilder().
		WithPort(port).
		WithLogger(logger.With("component", "hc05")).
		WithBaudRates(config.BaudRate, hc05.ConfigBaudRate).
		Build()
	if err != nil {
		logger.Error("Failed to create driver config", "error", err)
		os.Exit(1)
	}

	d, err := hc05.New(driverConfig)
	if err != nil {
		logger.Error("Failed to initialize HC-05", "error", err)
		os.Exit(1)
	}
	defer d.Close()

	if config.DeviceName != "" {
		if err := d.SetName(ctx, config.DeviceName); err != nil {
			logger.Warn("Failed to set device name", "name", config.DeviceName, "error", err)
		} else {
			logger.Info("Device name set", "name", config.DeviceName)
		}
	}
	if config.PIN != "" {
		if err := d.SetPIN(ctx, config.PIN); err != nil {
			logger.Warn("Failed to set PIN", "error", err)
		} else {
			logger.Info("PIN set")
		}
	}

	led := NewLogIndicator(logger.With("component", "led"))
	app := &App{
		Logger: logger.With("component", "app"),
		Device: d,
		Dispatcher: dispatch.New(d, led,
			dispatch.WithTag(config.Tag),
			dispatch.WithLogger(logger.With("component", "dispatch")),
		),
		Heartbeat: config.Heartbeat,
		Tag:       config.Tag,
	}

	if config.MQTTBroker != "" {
		bridge := &Bridge{
			Logger: logger.With("component", "mqtt"),
			Topic:  config.MQTTTopic,
			Sender: d,
		}
		opts := mqtt.NewClientOptions().
			AddBroker(config.MQTTBroker).
			SetClientID(config.MQTTClientID)
		if config.MQTTUsername != "" {
			opts.SetUsername(config.MQTTUsername)
			opts.SetPassword(config.MQTTPassword)
		}
		if err := bridge.Connect(opts); err != nil {
			logger.Error("MQTT connect failed", "broker", config.MQTTBroker, "error", err)
		} else {
			app.Publisher = bridge
		}
		defer bridge.Close()
	}

	var httpServer *http.Server
	if config.BindAddress != "" {
		httpServer = &http.Server{
			Addr: config.BindAddress,
			Handler: &Server{
				Logger: logger.With("component", "server"),
				Module: d,
				LED:    led,
			},
		}

		go func() {
			logger.Info("Starting HTTP server", "address", httpServer.Addr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server failed", "error", err)
				stop()
			}
		}()
	}

	if err := app.Welcome(); err != nil {
		logger.Error("Failed to send welcome message", "error", err)
	}
	logger.Info("System ready - Waiting for Bluetooth commands", "port", config.SerialPort)

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Poll loop failed", "error", err)
	}
	logger.Info("Received shutdown signal")

	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		logger.Info("Closing HTTP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to gracefully shutdown server", "error", err)
		}
	}

	logger.Info("Closing HC-05 connection")
}
