package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"lightbot/internal/core/domain"

	mochi "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/hooks/auth"
	"github.com/mochi-mqtt/server/v2/listeners"
	"github.com/rs/zerolog/log"
)

// MochiPublisher writes state through the inline client of an in-process broker.
type MochiPublisher struct {
	server *mochi.Server
	topic  string
	qos    byte
}

func NewMochi(server *mochi.Server, topic string, qos byte) *MochiPublisher {
	return &MochiPublisher{server: server, topic: topic, qos: qos}
}

func (p *MochiPublisher) PublishState(_ context.Context, state domain.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	log.Debug().Str("topic", p.topic).RawJSON("state", payload).Msg("publishing state to embedded broker")

	err = p.server.Publish(p.topic, payload, true, p.qos)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.topic, err)
	}

	return nil
}

// NewEmbeddedBroker creates an MQTT broker with an inline client and no authentication.
func NewEmbeddedBroker() (*mochi.Server, error) {
	server := mochi.New(&mochi.Options{
		InlineClient: true,
	})

	err := server.AddHook(new(auth.AllowHook), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to add auth hook: %w", err)
	}

	return server, nil
}

// ServeEmbeddedBroker attaches a TCP listener and starts accepting device connections.
func ServeEmbeddedBroker(server *mochi.Server, address string) error {
	tcp := listeners.NewTCP(listeners.Config{ID: "t1", Address: address})
	err := server.AddListener(tcp)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	go func() {
		err := server.Serve()
		if err != nil {
			log.Error().Err(err).Msg("embedded mqtt broker stopped")
		}
	}()

	log.Info().Str("address", address).Msg("embedded mqtt broker listening")

	return nil
}

func StopEmbeddedBroker(server *mochi.Server) error {
	log.Info().Msg("stopping embedded mqtt broker")

	err := server.Close()
	if err != nil {
		return fmt.Errorf("failed to close embedded broker: %w", err)
	}

	return nil
}
