package sender

import (
	"context"
	"errors"
	"lightbot/internal/core/domain"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBot struct {
	mock.Mock
}

func (m *MockBot) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	args := m.Called(ctx, params)
	msg, _ := args.Get(0).(*models.Message)
	return msg, args.Error(1)
}

func TestTelegramSender_SendMessageReply(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		wantCalls int
		setupMock func(mb *MockBot)
		wantErr   bool
	}{
		{
			name:      "replies to originating message",
			token:     "1001:42",
			wantCalls: 1,
			setupMock: func(mb *MockBot) {
				mb.On("SendMessage", mock.Anything, mock.MatchedBy(func(params *bot.SendMessageParams) bool {
					return params.Text == "Light has been turned on." &&
						params.ChatID == int64(1001) &&
						params.ReplyParameters.MessageID == 42
				})).
					Return(&models.Message{ID: 43}, nil).
					Once()
			},
			wantErr: false,
		},
		{
			name:      "group chat id",
			token:     "-100200:7",
			wantCalls: 1,
			setupMock: func(mb *MockBot) {
				mb.On("SendMessage", mock.Anything, mock.MatchedBy(func(params *bot.SendMessageParams) bool {
					return params.ChatID == int64(-100200)
				})).
					Return(&models.Message{ID: 8}, nil).
					Once()
			},
			wantErr: false,
		},
		{
			name:      "send fails",
			token:     "1001:42",
			wantCalls: 1,
			setupMock: func(mb *MockBot) {
				mb.On("SendMessage", mock.Anything, mock.Anything).Return(nil, errors.New("fail")).Once()
			},
			wantErr: true,
		},
		{
			name:      "malformed token is not sent",
			token:     "garbage",
			wantCalls: 0,
			setupMock: func(_ *MockBot) {},
			wantErr:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mb := new(MockBot)
			sender := NewTelegram(mb)

			tc.setupMock(mb)
			err := sender.SendMessageReply(t.Context(), &domain.Message{ReplyToken: tc.token},
				"Light has been turned on.")

			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			mb.AssertNumberOfCalls(t, "SendMessage", tc.wantCalls)
			mb.AssertExpectations(t)
		})
	}
}

func TestParseTelegramReplyToken(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		wantChatID    int64
		wantMessageID int
		wantErr       bool
	}{
		{name: "round trip", token: TelegramReplyToken(55, 9), wantChatID: 55, wantMessageID: 9},
		{name: "negative chat", token: "-1:2", wantChatID: -1, wantMessageID: 2},
		{name: "no separator", token: "55", wantErr: true},
		{name: "bad chat", token: "x:2", wantErr: true},
		{name: "bad message", token: "1:y", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chatID, messageID, err := ParseTelegramReplyToken(tc.token)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantChatID, chatID)
			assert.Equal(t, tc.wantMessageID, messageID)
		})
	}
}
