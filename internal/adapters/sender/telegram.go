package sender

import (
	"context"
	"fmt"
	"lightbot/internal/core/domain"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

//go:generate mockery --name TelegramBot

type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type TelegramSender struct {
	bot TelegramBot
}

func NewTelegram(bot TelegramBot) *TelegramSender {
	return &TelegramSender{bot: bot}
}

func (s *TelegramSender) SendMessageReply(ctx context.Context, message *domain.Message, text string) error {
	chatID, messageID, err := ParseTelegramReplyToken(message.ReplyToken)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	_, err = s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
		ReplyParameters: &models.ReplyParameters{
			MessageID: messageID,
			ChatID:    chatID,
		},
	})
	if err != nil {
		log.Error().Err(err).Int64("chatId", chatID).Msg("failed to send telegram reply")
		return err
	}

	return nil
}

// TelegramReplyToken encodes the chat and message a reply belongs to.
func TelegramReplyToken(chatID int64, messageID int) string {
	return fmt.Sprintf("%d:%d", chatID, messageID)
}

// ParseTelegramReplyToken splits a token built by TelegramReplyToken back into chat and message IDs.
func ParseTelegramReplyToken(token string) (int64, int, error) {
	chat, message, ok := strings.Cut(token, ":")
	if !ok {
		return 0, 0, fmt.Errorf("malformed reply token %q", token)
	}

	chatID, err := strconv.ParseInt(chat, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid chat id in reply token: %w", err)
	}

	messageID, err := strconv.Atoi(message)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid message id in reply token: %w", err)
	}

	return chatID, messageID, nil
}
