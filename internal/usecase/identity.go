package usecase

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator and Clock are swapped for fixed values in tests.
type (
	IDGenerator func() string
	Clock       func() int64
)

// NewID returns a random UUIDv4. Collisions are not checked against the store.
func NewID() string {
	return uuid.NewString()
}

// Now returns the current Unix time in whole seconds.
func Now() int64 {
	return time.Now().Unix()
}
