package service

import (
	"context"
	"errors"
	"fmt"
	"lightbot/internal/core/domain"
	"lightbot/internal/core/port"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type SourceFilter interface {
	IsAllowed(ctx context.Context, message *domain.Message) bool
}

// Allowlist restricts commands to a fixed set of platform user IDs. An empty list allows everyone.
type Allowlist struct {
	users  []string
	sender port.TextSender
}

func NewAllowlist(sender port.TextSender) (*Allowlist, error) {
	var users []string

	err := viper.UnmarshalKey("auth.allowed_users", &users)
	if err != nil {
		return nil, errors.New("failed to load allowed users")
	}

	return &Allowlist{
		users:  users,
		sender: sender,
	}, nil
}

const forbidden = "You are not allowed to control this device. Your ID: %s"

func (a *Allowlist) IsAllowed(ctx context.Context, message *domain.Message) bool {
	if len(a.users) == 0 || slices.Contains(a.users, message.UserID) {
		return true
	}

	log.Debug().Str("userId", message.UserID).Err(domain.ErrSenderNotAllowed).Msg("dropping message")

	err := a.sender.SendMessageReply(ctx, message, fmt.Sprintf(forbidden, message.UserID))
	if err != nil {
		log.Err(err).Msg("failed to send forbidden warning")
	}

	return false
}
