package main

import (
	"errors"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const publishTimeout = 5 * time.Second

// Sender transmits data to the remote peer.
type Sender interface {
	SendData(data string) error
}

// Bridge mirrors the Bluetooth link on an MQTT broker: received lines are
// published to <topic>/rx and payloads arriving on <topic>/tx are sent to
// the remote peer.
type Bridge struct {
	Logger *slog.Logger
	Topic  string
	Sender Sender

	client mqtt.Client
}

// Connect connects to the broker described by opts. The tx subscription is
// renewed on every reconnect.
func (b *Bridge) Connect(opts *mqtt.ClientOptions) error {
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		b.Logger.Warn("MQTT connection lost", "error", err)
	})
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		if err := b.subscribe(c); err != nil {
			b.Logger.Error("MQTT subscribe failed", "topic", b.txTopic(), "error", err)
		}
	})

	b.client = mqtt.NewClient(opts)
	token := b.client.Connect()
	token.Wait()
	return token.Error()
}

// Publish sends line to <topic>/rx.
func (b *Bridge) Publish(line string) error {
	if b.client == nil {
		return errors.New("mqtt client not connected")
	}
	token := b.client.Publish(b.Topic+"/rx", 0, false, line)
	if !token.WaitTimeout(publishTimeout) {
		return errors.New("mqtt publish timeout")
	}
	return token.Error()
}

// Close disconnects from the broker.
func (b *Bridge) Close() {
	if b.client != nil {
		b.client.Disconnect(500)
	}
}

func (b *Bridge) txTopic() string {
	return b.Topic + "/tx"
}

func (b *Bridge) subscribe(c mqtt.Client) error {
	b.Logger.Info("MQTT connected, subscribing", "topic", b.txTopic())
	token := c.Subscribe(b.txTopic(), 0, b.handleTX)
	token.Wait()
	return token.Error()
}

func (b *Bridge) handleTX(_ mqtt.Client, m mqtt.Message) {
	payload := string(m.Payload())
	if payload == "" {
		b.Logger.Warn("MQTT empty payload", "topic", m.Topic())
		return
	}
	if err := b.Sender.SendData(payload); err != nil {
		b.Logger.Error("Failed to forward MQTT payload", "topic", m.Topic(), "error", err)
		return
	}
	b.Logger.Debug("MQTT payload forwarded", "topic", m.Topic(), "length", len(payload))
}
