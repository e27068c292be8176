package sender

import (
	"context"
	"fmt"
	"lightbot/internal/core/domain"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/rs/zerolog/log"
)

type LineSender struct {
	api *messaging_api.MessagingApiAPI
}

func NewLineSender(api *messaging_api.MessagingApiAPI) *LineSender {
	return &LineSender{api: api}
}

func (s *LineSender) SendMessageReply(ctx context.Context, message *domain.Message, text string) error {
	if message.ReplyToken == "" {
		return fmt.Errorf("%w: missing reply token", domain.ErrSendingReplyFailed)
	}

	_, err := s.api.WithContext(ctx).ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: message.ReplyToken,
		Messages: []messaging_api.MessageInterface{
			messaging_api.TextMessage{Text: text},
		},
	})
	if err != nil {
		log.Error().Err(err).Str("eventId", message.EventID).Msg("failed to send line reply")
		return err
	}

	return nil
}
