package command

import (
	"context"
	"fmt"
	"lightbot/internal/core/domain"
	"lightbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Unknown answers any text that matches no registered keyword. It never touches device state.
type Unknown struct {
	sender  port.TextSender
	command string
}

func NewUnknown(sender port.TextSender, command string) *Unknown {
	return &Unknown{sender: sender, command: command}
}

func (u *Unknown) GetCommand() string {
	return u.command
}

func (u *Unknown) Respond(ctx context.Context, message *domain.Message) error {
	log.Debug().
		Str("eventId", message.EventID).
		Str("text", message.Text).
		Msg("unrecognized command")

	err := u.sender.SendMessageReply(ctx, message, domain.ReplyUnknown)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}
