// Package repository defines persistence interfaces for domain entities.
package repository

import (
	"context"
	"time"

	"github.com/bnema/dockpop/internal/domain/entity"
)

// HandoffRepository stores handoff payloads between the main window and its
// popouts.
type HandoffRepository interface {
	// Save stores or replaces the payload under its key.
	Save(ctx context.Context, payload *entity.HandoffPayload) error

	// Get retrieves the payload for key.
	// Returns nil if no payload exists.
	Get(ctx context.Context, key string) (*entity.HandoffPayload, error)

	// Delete removes the payload for key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// List returns every stored payload, oldest first.
	List(ctx context.Context) ([]*entity.HandoffPayload, error)

	// DeleteOlderThan removes payloads created before cutoff and returns how
	// many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
