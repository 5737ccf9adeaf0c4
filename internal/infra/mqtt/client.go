package mqtt

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	_defaultQoS      = 0 // At most once
	_defaultRetained = false
	_publishTimeout  = 5 * time.Second
	_connectTimeout  = 5 * time.Second
	_disconnectQuiet = 250 // milliseconds
)

var (
	ErrConnectFailed  = errors.New("mqtt connect failed")
	ErrPublishTimeout = errors.New("mqtt publish timed out")
)

//go:generate mockgen -source=client.go -destination=../../../test/unit/doubles/infra/mqtt/client_mock.go -package=mqtt -mock_names=Client=MockClient

type Client interface {
	Publish(topic string, msg any) error

	Disconnect()
}

type SimpleClientOpts struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Encoder  Encoder
}

// publisher is the part of paho.Client the SimpleClient uses.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// NewSimpleClient connects to the broker. Once connected, paho reconnects
// on its own when the connection drops.
func NewSimpleClient(opts SimpleClientOpts) (*SimpleClient, error) {
	onConnectHandler := func(paho.Client) {
		slog.Info("connected to MQTT broker", slog.String("broker", opts.Broker))
	}

	onConnectionLostHandler := func(_ paho.Client, err error) {
		slog.Error("connection lost to MQTT broker", slog.Any("error", err))
	}

	pahoOpts := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetUsername(opts.Username).
		SetPassword(opts.Password).
		SetOnConnectHandler(onConnectHandler).
		SetAutoReconnect(true).
		SetConnectionLostHandler(onConnectionLostHandler).
		SetKeepAlive(10 * time.Second).
		SetConnectTimeout(_connectTimeout)

	client := paho.NewClient(pahoOpts)
	token := client.Connect()
	if !token.WaitTimeout(_connectTimeout) {
		return nil, fmt.Errorf("%w: %s: timeout", ErrConnectFailed, opts.Broker)
	}
	if token.Error() != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConnectFailed, opts.Broker, token.Error())
	}

	return newSimpleClient(client, opts.Encoder), nil
}

func newSimpleClient(client publisher, encoder Encoder) *SimpleClient {
	if encoder == nil {
		encoder = JSONEncoder{}
	}
	return &SimpleClient{client: client, encoder: encoder}
}

var _ Client = (*SimpleClient)(nil)

type SimpleClient struct {
	client  publisher
	encoder Encoder
}

func (c *SimpleClient) Disconnect() {
	c.client.Disconnect(_disconnectQuiet)
	slog.Info("disconnected from MQTT broker")
}

func (c *SimpleClient) Publish(topic string, msg any) error {
	payload, err := c.encoder.Encode(msg)
	if err != nil {
		return fmt.Errorf("encoding %s message: %w", c.encoder.Name(), err)
	}
	token := c.client.Publish(topic, _defaultQoS, _defaultRetained, payload)
	if !token.WaitTimeout(_publishTimeout) {
		return fmt.Errorf("%w: %s", ErrPublishTimeout, topic)
	}
	if token.Error() != nil {
		return fmt.Errorf("publishing to topic %s: %w", topic, token.Error())
	}

	return nil
}
