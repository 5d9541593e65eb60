// Package credstore persists the single session credential across client
// restarts. It is a leaf component: no session logic lives here, and no
// validation of the credential's structure is performed.
package credstore

import (
	"context"
	"errors"
	"time"
)

// ErrStorageUnavailable marks failures of the underlying storage medium.
// Match with errors.Is.
var ErrStorageUnavailable = errors.New("credential storage unavailable")

// Record is the persisted credential: the opaque bearer token plus the
// minimal identity needed to rehydrate a session.
type Record struct {
	Token   string    `json:"token"`
	Email   string    `json:"email"`
	SavedAt time.Time `json:"savedAt"`
}

// Store holds at most one credential record.
type Store interface {
	// Save overwrites any existing credential.
	Save(ctx context.Context, rec Record) error
	// Load returns the last saved credential. A missing record is the
	// normal logged-out condition, reported as ok=false with a nil error.
	Load(ctx context.Context) (rec Record, ok bool, err error)
	// Clear removes the credential. Clearing an empty store is not an
	// error.
	Clear(ctx context.Context) error
}
