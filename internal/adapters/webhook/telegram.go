package webhook

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"lightbot/internal/adapters/sender"
	"lightbot/internal/core/domain"
	"strconv"

	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

const TelegramSignatureHeader = "X-Telegram-Bot-Api-Secret-Token"

// Telegram verifies webhook deliveries by the secret token registered with setWebhook.
type Telegram struct {
	secretToken string
}

func NewTelegram(secretToken string) *Telegram {
	return &Telegram{secretToken: secretToken}
}

func (t *Telegram) SignatureHeader() string {
	return TelegramSignatureHeader
}

func (t *Telegram) VerifySignature(_ []byte, signature string) bool {
	if signature == "" || t.secretToken == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(signature), []byte(t.secretToken)) == 1
}

func (t *Telegram) ParseEvents(body []byte) ([]domain.Message, error) {
	var update models.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err)
	}

	if update.Message == nil || update.Message.Text == "" {
		log.Debug().Int64("updateId", update.ID).Msg("ignoring non-text update")
		return []domain.Message{}, nil
	}

	var userID string
	if update.Message.From != nil {
		userID = strconv.FormatInt(update.Message.From.ID, 10)
	}

	return []domain.Message{{
		ReplyToken: sender.TelegramReplyToken(update.Message.Chat.ID, update.Message.ID),
		EventID:    strconv.FormatInt(update.ID, 10),
		UserID:     userID,
		Text:       update.Message.Text,
	}}, nil
}
