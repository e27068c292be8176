package webhook

import (
	"encoding/json"
	"fmt"
	"lightbot/internal/core/domain"

	linewebhook "github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/rs/zerolog/log"
)

const LineSignatureHeader = "X-Line-Signature"

// Line verifies and decodes LINE Messaging API webhook deliveries.
type Line struct {
	channelSecret string
}

func NewLine(channelSecret string) *Line {
	return &Line{channelSecret: channelSecret}
}

func (l *Line) SignatureHeader() string {
	return LineSignatureHeader
}

func (l *Line) VerifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	return linewebhook.ValidateSignature(l.channelSecret, signature, body)
}

func (l *Line) ParseEvents(body []byte) ([]domain.Message, error) {
	var cb linewebhook.CallbackRequest
	if err := json.Unmarshal(body, &cb); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err)
	}

	messages := make([]domain.Message, 0, len(cb.Events))
	for _, event := range cb.Events {
		e, ok := event.(linewebhook.MessageEvent)
		if !ok {
			log.Debug().Str("type", fmt.Sprintf("%T", event)).Msg("ignoring non-message event")
			continue
		}

		text, ok := e.Message.(linewebhook.TextMessageContent)
		if !ok {
			log.Debug().Str("type", fmt.Sprintf("%T", e.Message)).Msg("ignoring non-text message")
			continue
		}

		messages = append(messages, domain.Message{
			ReplyToken: e.ReplyToken,
			EventID:    e.WebhookEventId,
			UserID:     lineUserID(e.Source),
			Text:       text.Text,
		})
	}

	return messages, nil
}

func lineUserID(source linewebhook.SourceInterface) string {
	switch s := source.(type) {
	case linewebhook.UserSource:
		return s.UserId
	case linewebhook.GroupSource:
		return s.UserId
	case linewebhook.RoomSource:
		return s.UserId
	default:
		return ""
	}
}
