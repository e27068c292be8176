package command

import (
	"errors"
	"lightbot/internal/core/port"
	"strings"

	"github.com/rs/zerolog/log"
)

type Registry struct {
	commands map[string]port.Command
	fallback port.Command
}

func (r *Registry) Register(handler port.Command) {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	log.Info().Str("handler", handler.GetCommand()).Msg("adding command handler to registry")
	r.commands[ParseCommand(handler.GetCommand())] = handler
}

// RegisterFallback sets the handler used by Resolve when no keyword matches.
func (r *Registry) RegisterFallback(handler port.Command) {
	log.Info().Str("handler", handler.GetCommand()).Msg("adding fallback handler to registry")
	r.fallback = handler
}

func (r *Registry) Get(command string) (port.Command, error) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	if r.commands == nil {
		err := errors.New("can't fetch command, registry not initialized")
		return nil, err
	}

	handler, ok := r.commands[command]
	if !ok {
		return nil, errors.New("command not found")
	}

	return handler, nil
}

func (r *Registry) Resolve(text string) port.Command {
	handler, err := r.Get(ParseCommand(text))
	if err != nil {
		return r.fallback
	}

	return handler
}

func (r *Registry) ListCommands() []string {
	keys := make([]string, len(r.commands))

	i := 0
	for k := range r.commands {
		keys[i] = k
		i++
	}

	return keys
}

// ParseCommand normalizes message text into a registry key. Matching is on the whole text, so
// "turn_on now" is not "turn_on".
func ParseCommand(text string) string {
	return strings.ToLower(text)
}
