package command

import (
	"context"
	"fmt"
	"lightbot/internal/core/domain"
	"lightbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Switch sets one device attribute to a fixed status and confirms it to the sender.
type Switch struct {
	store     port.StateStore
	sender    port.TextSender
	attribute domain.Attribute
	status    domain.Status
	reply     string
	command   string
}

func NewSwitch(store port.StateStore,
	sender port.TextSender,
	attribute domain.Attribute,
	status domain.Status,
	reply string,
	command string) *Switch {
	return &Switch{
		store:     store,
		sender:    sender,
		attribute: attribute,
		status:    status,
		reply:     reply,
		command:   command,
	}
}

func NewTurnOn(store port.StateStore, sender port.TextSender, command string) *Switch {
	return NewSwitch(store, sender, domain.Light, domain.On, domain.ReplyTurnedOn, command)
}

func NewTurnOff(store port.StateStore, sender port.TextSender, command string) *Switch {
	return NewSwitch(store, sender, domain.Light, domain.Off, domain.ReplyTurnedOff, command)
}

func (s *Switch) GetCommand() string {
	return s.command
}

func (s *Switch) Respond(ctx context.Context, message *domain.Message) error {
	l := log.With().
		Str("eventId", message.EventID).
		Str("command", s.GetCommand()).
		Str("attribute", string(s.attribute)).
		Str("status", string(s.status)).
		Logger()

	l.Info().Msg("handling request")

	changed, err := s.store.Set(ctx, s.attribute, s.status)
	if err != nil {
		return fmt.Errorf("failed to update device state: %w", err)
	}

	l.Debug().Bool("changed", changed).Msg("device state updated")

	err = s.sender.SendMessageReply(ctx, message, s.reply)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}
