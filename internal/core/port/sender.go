package port

import (
	"context"
	"lightbot/internal/core/domain"
)

type TextSender interface {
	// SendMessageReply sends text as the reply to a message, using its reply token. A token can only be
	// answered once.
	SendMessageReply(ctx context.Context, message *domain.Message, text string) error
}
