package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrPopoutBlocked is returned when the platform refused to open a
	// popout window and blocked popouts are configured as fatal.
	ErrPopoutBlocked = errors.New("popout blocked")

	// ErrNotInitialised is returned when a popout's child layout is not ready.
	ErrNotInitialised = errors.New("can't create config, layout not yet initialised")

	// ErrStorage is matched by every StorageError.
	ErrStorage = errors.New("handoff storage error")

	// ErrNodeNotFound is returned when a node ref does not resolve to a live item.
	ErrNodeNotFound = errors.New("node not found")

	// ErrCannotDetachRoot is returned when trying to detach the tree root.
	ErrCannotDetachRoot = errors.New("cannot detach the layout root")

	// ErrNotContainer is returned when adding children to a component.
	ErrNotContainer = errors.New("item cannot hold children")
)

// StorageError reports a failure of the configuration transfer channel.
type StorageError struct {
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("error while writing handoff payload %q: %v", e.Key, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}
