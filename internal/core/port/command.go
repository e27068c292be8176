package port

import (
	"context"
	"lightbot/internal/core/domain"
)

type Command interface {
	// Respond applies the command for the given message and replies to its originating conversation.
	Respond(ctx context.Context, message *domain.Message) error
	// GetCommand retrieves the keyword associated with a specific command handler.
	GetCommand() string
}

type CommandRegistry interface {
	// Register adds a new command handler to the command registry.
	Register(handler Command)
	// Get retrieves a registered Command based on its keyword or returns an error if not found.
	Get(command string) (Command, error)
	// Resolve returns the handler for the message text, falling back to the registry's default handler.
	Resolve(text string) Command
	// ListCommands returns a list of all keywords currently registered in the command registry.
	ListCommands() []string
}
