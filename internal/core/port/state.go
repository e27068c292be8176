package port

import (
	"context"
	"lightbot/internal/core/domain"
)

type StateStore interface {
	// Snapshot returns a copy of the full device record.
	Snapshot() domain.State
	// Set updates one attribute and reports whether the stored value changed.
	Set(ctx context.Context, attribute domain.Attribute, status domain.Status) (bool, error)
}

type StatePublisher interface {
	// PublishState pushes a snapshot to subscribed devices.
	PublishState(ctx context.Context, state domain.State) error
}
