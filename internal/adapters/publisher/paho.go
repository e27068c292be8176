package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"lightbot/internal/core/domain"
	"net/url"
	"time"

	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"
	"github.com/rs/zerolog/log"
)

type PahoClient interface {
	Publish(ctx context.Context, p *paho.Publish) (*paho.PublishResponse, error)
}

// PahoPublisher sends retained state messages to an external broker.
type PahoPublisher struct {
	client  PahoClient
	topic   string
	qos     byte
	timeout time.Duration
}

func NewPaho(client PahoClient, topic string, qos byte, timeout time.Duration) *PahoPublisher {
	return &PahoPublisher{client: client, topic: topic, qos: qos, timeout: timeout}
}

func (p *PahoPublisher) PublishState(ctx context.Context, state domain.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	// autopaho waits for a connection before sending; cap it at the publisher timeout.
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	_, err = p.client.Publish(ctx, &paho.Publish{
		Topic:   p.topic,
		QoS:     p.qos,
		Retain:  true,
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.topic, err)
	}

	return nil
}

// Connect starts a managed connection that keeps reconnecting until ctx is cancelled.
func Connect(ctx context.Context, brokerURLs []string, clientID string) (*autopaho.ConnectionManager, error) {
	urls := make([]*url.URL, 0, len(brokerURLs))
	for _, raw := range brokerURLs {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid broker url %q: %w", raw, err)
		}
		urls = append(urls, u)
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("no broker url configured")
	}

	cfg := autopaho.ClientConfig{
		ServerUrls:            urls,
		KeepAlive:             30,
		SessionExpiryInterval: 60,
		OnConnectionUp: func(_ *autopaho.ConnectionManager, _ *paho.Connack) {
			log.Info().Str("clientId", clientID).Msg("mqtt connection up")
		},
		OnConnectError: func(err error) {
			log.Warn().Err(err).Msg("mqtt connection attempt failed")
		},
		ClientConfig: paho.ClientConfig{
			ClientID: clientID,
			OnClientError: func(err error) {
				log.Warn().Err(err).Msg("mqtt client error")
			},
		},
	}

	cm, err := autopaho.NewConnection(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start mqtt connection: %w", err)
	}

	return cm, nil
}
