package usecase

import "github.com/google/uuid"

// IDGenerator generates unique identifiers for layout items and handoff keys.
type IDGenerator func() string

// UUIDGenerator returns random v4 UUID strings.
func UUIDGenerator() IDGenerator {
	return func() string {
		return uuid.NewString()
	}
}
