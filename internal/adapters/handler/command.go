package handler

import (
	"context"
	"errors"
	"fmt"
	"lightbot/internal/core/domain"
	"lightbot/internal/core/port"
	"lightbot/internal/core/service"
	"time"

	"github.com/rs/zerolog/log"
)

type Command struct {
	commandRegistry port.CommandRegistry
	filter          service.SourceFilter
	timeout         time.Duration
}

func NewCommand(commandRegistry port.CommandRegistry, filter service.SourceFilter, timeout time.Duration) *Command {
	return &Command{commandRegistry: commandRegistry, filter: filter, timeout: timeout}
}

// Handle runs every message of one webhook delivery in order. A failing message does not stop the
// ones after it; all failures are joined into the returned error.
func (c *Command) Handle(ctx context.Context, messages []domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var errs []error
	for i := range messages {
		err := c.handleMessage(ctx, &messages[i])
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (c *Command) handleMessage(ctx context.Context, message *domain.Message) error {
	log.Debug().Str("eventId", message.EventID).Str("message", message.Text).Msg("received command")

	if c.filter != nil && !c.filter.IsAllowed(ctx, message) {
		return nil
	}

	commandHandler := c.commandRegistry.Resolve(message.Text)
	if commandHandler == nil {
		return fmt.Errorf("no handler for message %q", message.Text)
	}

	err := commandHandler.Respond(ctx, message)
	if err != nil {
		log.Err(err).
			Str("command", commandHandler.GetCommand()).
			Str("eventId", message.EventID).
			Msg("failed to respond to command")
		return fmt.Errorf("event %s: %w", message.EventID, err)
	}

	return nil
}
