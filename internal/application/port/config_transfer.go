package port

import (
	"context"

	"github.com/bnema/dockpop/internal/domain/entity"
)

// ConfigTransfer hands a layout configuration to a new window.
// Implementations serialise the configuration into a context-free payload.
type ConfigTransfer interface {
	// Persist stores cfg under key. Failures are *entity.StorageError.
	Persist(ctx context.Context, key string, cfg entity.LayoutConfig) error

	// BuildHandoffURL returns baseURL extended with the query parameter the
	// new window reads on startup instead of its normal configuration.
	BuildHandoffURL(baseURL, key string) (string, error)
}
