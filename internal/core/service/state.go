package service

import (
	"context"
	"fmt"
	"lightbot/internal/core/domain"
	"lightbot/internal/core/port"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

// DeviceState owns the single device record. Writers are serialized, so the last write wins.
type DeviceState struct {
	state      domain.State
	allowed    map[domain.Attribute][]domain.Status
	mutex      sync.RWMutex
	// writeMutex spans both commit and publish, so publishers see changes in commit order.
	writeMutex sync.Mutex
	publishers []port.StatePublisher
}

func NewDeviceState(publishers ...port.StatePublisher) *DeviceState {
	return &DeviceState{
		state:      domain.DefaultState(),
		allowed:    domain.AllowedStatuses,
		publishers: publishers,
	}
}

func (d *DeviceState) Snapshot() domain.State {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	return d.state.Clone()
}

func (d *DeviceState) Set(ctx context.Context, attribute domain.Attribute, status domain.Status) (bool, error) {
	allowed, ok := d.allowed[attribute]
	if !ok {
		return false, fmt.Errorf("%w: %q", domain.ErrUnknownAttribute, attribute)
	}

	if !slices.Contains(allowed, status) {
		return false, fmt.Errorf("%w %q: %q", domain.ErrInvalidStatus, attribute, status)
	}

	d.writeMutex.Lock()
	defer d.writeMutex.Unlock()

	d.mutex.Lock()
	changed := d.state[attribute] != status
	d.state[attribute] = status
	snapshot := d.state.Clone()
	d.mutex.Unlock()

	log.Info().
		Str("attribute", string(attribute)).
		Str("status", string(status)).
		Bool("changed", changed).
		Msg("device state set")

	if changed {
		d.publish(ctx, snapshot)
	}

	return changed, nil
}

func (d *DeviceState) publish(ctx context.Context, snapshot domain.State) {
	for _, p := range d.publishers {
		err := p.PublishState(ctx, snapshot)
		if err != nil {
			log.Warn().Err(err).Msg("failed to publish device state")
		}
	}
}
