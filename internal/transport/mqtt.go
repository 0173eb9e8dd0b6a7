package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/muurk/keypad/internal/logging"
	"github.com/muurk/keypad/internal/protocol"
	"go.uber.org/zap"
)

const (
	// QoS levels used by the keypad
	qosCommand = 0
	qosCode    = 1
	qosState   = 0
	qosStatus  = 1

	// DefaultEventBuffer is the capacity of the event channel
	DefaultEventBuffer = 16

	// DefaultPublishTimeout bounds how long a delivery token is awaited
	DefaultPublishTimeout = 10 * time.Second

	// DefaultConnectTimeout bounds a single connection attempt
	DefaultConnectTimeout = 10 * time.Second
)

// Topics holds the topic names and presence payloads.
type Topics struct {
	State          string
	Code           string
	Command        string
	Status         string
	OnlinePayload  string
	OfflinePayload string
}

// Options configures a Client.
type Options struct {
	BrokerURL      string
	ClientID       string
	Username       string
	Password       string
	KeepAlive      time.Duration
	ReconnectDelay time.Duration
	ConnectTimeout time.Duration
	PublishTimeout time.Duration
	EventBuffer    int
	Topics         Topics
}

// Client is the keypad's MQTT connection.
type Client struct {
	opts    Options
	client  mqtt.Client
	events  chan Event
	dropped atomic.Uint64
}

// New creates a client. Nothing is sent until Connect.
func New(opts Options) *Client {
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = DefaultEventBuffer
	}
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = DefaultPublishTimeout
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}

	c := &Client{
		opts:   opts,
		events: make(chan Event, opts.EventBuffer),
	}
	c.client = mqtt.NewClient(c.clientOptions())
	return c
}

// clientOptions builds the paho options: last will, automatic reconnect with
// the configured delay, and the connect/lost handlers.
func (c *Client) clientOptions() *mqtt.ClientOptions {
	o := mqtt.NewClientOptions()
	o.AddBroker(c.opts.BrokerURL)
	o.SetClientID(c.opts.ClientID)
	if c.opts.Username != "" {
		o.SetUsername(c.opts.Username)
		o.SetPassword(c.opts.Password)
	}
	if c.opts.KeepAlive > 0 {
		o.SetKeepAlive(c.opts.KeepAlive)
	}
	o.SetCleanSession(true)
	o.SetOrderMatters(false)
	o.SetConnectTimeout(c.opts.ConnectTimeout)

	o.SetAutoReconnect(true)
	o.SetConnectRetry(true)
	if c.opts.ReconnectDelay > 0 {
		o.SetConnectRetryInterval(c.opts.ReconnectDelay)
		o.SetMaxReconnectInterval(c.opts.ReconnectDelay)
	}

	o.SetWill(c.opts.Topics.Status, c.opts.Topics.OfflinePayload, qosStatus, true)

	o.SetOnConnectHandler(c.onConnect)
	o.SetConnectionLostHandler(c.onConnectionLost)
	o.SetReconnectingHandler(func(_ mqtt.Client, _ *mqtt.ClientOptions) {
		logging.Info("MQTT: Reconnecting to broker...", zap.String("broker", c.opts.BrokerURL))
	})
	return o
}

// Events returns the channel the control loop drains.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Dropped returns how many events were discarded because the loop fell behind.
func (c *Client) Dropped() uint64 {
	return c.dropped.Load()
}

// Connect starts connecting in the background and returns immediately. Paho
// keeps retrying until Close; progress is reported through Events.
func (c *Client) Connect(ctx context.Context) error {
	if c.opts.BrokerURL == "" {
		return &Error{Type: ErrTypeConnect, Err: errors.New("no broker configured")}
	}

	logging.Info("MQTT: Connect to the broker",
		zap.String("broker", c.opts.BrokerURL),
		zap.String("client_id", c.opts.ClientID),
	)

	token := c.client.Connect()
	go func() {
		select {
		case <-token.Done():
			if err := token.Error(); err != nil {
				logging.Error("MQTT: Connect failed",
					zap.Error(&Error{Type: ErrTypeConnect, Err: err}),
				)
			}
		case <-ctx.Done():
		}
	}()
	return nil
}

// Close publishes the offline status and disconnects.
func (c *Client) Close() {
	if !c.client.IsConnected() {
		return
	}
	token := c.client.Publish(c.opts.Topics.Status, qosStatus, true, c.opts.Topics.OfflinePayload)
	token.WaitTimeout(time.Second)
	c.client.Disconnect(250)
	logging.Info("MQTT: Disconnected")
}

// IsConnected reports whether the client is currently connected.
func (c *Client) IsConnected() bool {
	return c.client.IsConnectionOpen()
}

// SubmitCode publishes a completed code. It implements keypad.CodeSink.
func (c *Client) SubmitCode(code string) {
	c.publish(c.opts.Topics.Code, qosCode, false, []byte(code))
}

// PublishState publishes the retained state document.
func (c *Client) PublishState(state protocol.State) {
	data, err := state.Marshal()
	if err != nil {
		logging.Error("MQTT: Failed to encode state", zap.Error(err))
		return
	}
	c.publish(c.opts.Topics.State, qosState, true, data)
}

func (c *Client) publish(topic string, qos byte, retained bool, payload []byte) {
	logged := payload
	if topic == c.opts.Topics.Code {
		// Codes must never reach the log.
		logged = bytes.Repeat([]byte("*"), len(payload))
	}
	logging.LogMQTTMessage("sent", topic, qos, retained, logged)

	token := c.client.Publish(topic, qos, retained, payload)
	go c.await(token, ErrTypePublish, topic)
}

// await waits for a token off the control loop and logs failures.
func (c *Client) await(token mqtt.Token, kind ErrorType, topic string) {
	if !token.WaitTimeout(c.opts.PublishTimeout) {
		logging.Warn("MQTT: Operation timed out",
			zap.Error(&Error{Type: ErrTypeTimeout, Topic: topic, Err: ErrTimeout}),
		)
		return
	}
	if err := token.Error(); err != nil {
		logging.Error("MQTT: Operation failed",
			zap.Error(&Error{Type: kind, Topic: topic, Err: err}),
		)
	}
}

func (c *Client) onConnect(client mqtt.Client) {
	logging.Info("MQTT: Connected", zap.String("broker", c.opts.BrokerURL))

	logging.Info("MQTT: Subscribing", zap.String("topic", c.opts.Topics.Command), zap.Int("qos", qosCommand))
	token := client.Subscribe(c.opts.Topics.Command, qosCommand, c.onMessage)
	go c.await(token, ErrTypeSubscribe, c.opts.Topics.Command)

	c.publish(c.opts.Topics.Status, qosStatus, true, []byte(c.opts.Topics.OnlinePayload))

	c.emit(Event{Kind: EventConnected})
}

func (c *Client) onConnectionLost(_ mqtt.Client, err error) {
	logging.Warn("MQTT: Disconnected", zap.Error(err))
	c.emit(Event{Kind: EventDisconnected, Err: err})
}

func (c *Client) onMessage(_ mqtt.Client, msg mqtt.Message) {
	c.handleMessage(msg.Topic(), msg.Qos(), msg.Retained(), msg.Payload())
}

// handleMessage decodes a command payload. Anything that is not a valid
// command object is logged and dropped.
func (c *Client) handleMessage(topic string, qos byte, retained bool, payload []byte) {
	logging.LogMQTTMessage("received", topic, qos, retained, payload)

	if topic != c.opts.Topics.Command {
		logging.Debug("MQTT: Ignoring message on unexpected topic", zap.String("topic", topic))
		return
	}

	cmd, err := protocol.ParseCommand(payload)
	if err != nil {
		logging.Warn("MQTT: Ignoring command payload", zap.Error(err))
		logging.LogRawBytes("command payload", payload)
		return
	}

	c.emit(Event{Kind: EventCommand, Command: cmd})
}

// emit queues an event without blocking the paho goroutine.
func (c *Client) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		n := c.dropped.Add(1)
		logging.Warn("MQTT: Event queue full, dropping event",
			zap.String("event", ev.Kind.String()),
			zap.Uint64("dropped", n),
		)
	}
}

// String describes the client for logs.
func (c *Client) String() string {
	return fmt.Sprintf("mqtt client %s -> %s", c.opts.ClientID, c.opts.BrokerURL)
}
