package command

import (
	"context"
	"lightbot/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendMessageReply(ctx context.Context, message *domain.Message, text string) error {
	args := m.Called(ctx, message, text)
	return args.Error(0)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Snapshot() domain.State {
	args := m.Called()
	state, _ := args.Get(0).(domain.State)
	return state
}

func (m *MockStore) Set(ctx context.Context, attribute domain.Attribute, status domain.Status) (bool, error) {
	args := m.Called(ctx, attribute, status)
	return args.Bool(0), args.Error(1)
}
