// Package transfer implements the configuration transfer channel that hands
// a layout configuration from the main window to a new popout window.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/dockpop/internal/application/port"
	"github.com/bnema/dockpop/internal/domain/entity"
	"github.com/bnema/dockpop/internal/domain/repository"
	"github.com/bnema/dockpop/internal/logging"
)

// ErrPayloadNotFound is returned by Load for an unknown key.
var ErrPayloadNotFound = errors.New("handoff payload not found")

// Channel serialises layout configurations into a HandoffRepository.
type Channel struct {
	repo repository.HandoffRepository
	now  func() time.Time
}

var _ port.ConfigTransfer = (*Channel)(nil)

// NewChannel creates a channel backed by repo.
func NewChannel(repo repository.HandoffRepository) *Channel {
	return &Channel{repo: repo, now: time.Now}
}

// Persist encodes cfg and stores it under key.
func (c *Channel) Persist(ctx context.Context, key string, cfg entity.LayoutConfig) error {
	log := logging.FromContext(ctx)

	data, err := EncodeLayout(cfg)
	if err != nil {
		return &entity.StorageError{Key: key, Err: fmt.Errorf("encode: %w", err)}
	}
	if err := c.repo.Save(ctx, &entity.HandoffPayload{Key: key, Payload: data, CreatedAt: c.now()}); err != nil {
		return &entity.StorageError{Key: key, Err: err}
	}

	log.Debug().Str("key", key).Int("bytes", len(data)).Msg("handoff payload persisted")
	return nil
}

// Load decodes the configuration stored under key.
func (c *Channel) Load(ctx context.Context, key string) (entity.LayoutConfig, error) {
	payload, err := c.repo.Get(ctx, key)
	if err != nil {
		return entity.LayoutConfig{}, fmt.Errorf("load handoff %q: %w", key, err)
	}
	if payload == nil {
		return entity.LayoutConfig{}, fmt.Errorf("load handoff %q: %w", key, ErrPayloadNotFound)
	}
	cfg, err := DecodeLayout(payload.Payload)
	if err != nil {
		return entity.LayoutConfig{}, fmt.Errorf("handoff %q: %w", key, err)
	}
	return cfg, nil
}

// Discard removes the payload stored under key.
func (c *Channel) Discard(ctx context.Context, key string) error {
	return c.repo.Delete(ctx, key)
}

// Stale lists payloads older than maxAge, oldest first.
func (c *Channel) Stale(ctx context.Context, maxAge time.Duration) ([]*entity.HandoffPayload, error) {
	all, err := c.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list handoff payloads: %w", err)
	}
	cutoff := c.now().Add(-maxAge)
	var stale []*entity.HandoffPayload
	for _, p := range all {
		if p.CreatedAt.Before(cutoff) {
			stale = append(stale, p)
		}
	}
	return stale, nil
}

// Prune removes payloads older than maxAge. Popouts that never started
// leave their payload behind.
func (c *Channel) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	removed, err := c.repo.DeleteOlderThan(ctx, c.now().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("prune handoff payloads: %w", err)
	}
	if removed > 0 {
		logging.FromContext(ctx).Info().Int64("removed", removed).Msg("pruned stale handoff payloads")
	}
	return removed, nil
}

// BuildHandoffURL implements port.ConfigTransfer.
func (c *Channel) BuildHandoffURL(baseURL, key string) (string, error) {
	return BuildHandoffURL(baseURL, key)
}
