// Package state persists per-session client state such as the cart and the
// checkout wizard. Each kind of state lives under its own key prefix so it
// can be loaded and cleared independently.
package state

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when nothing is stored under a key.
var ErrNotFound = errors.New("state not found")

// Store loads and saves values of type T keyed by session ID.
type Store[T any] interface {
	Load(ctx context.Context, sessionID string) (*T, error)
	Save(ctx context.Context, sessionID string, value *T) error

	// Delete removes the value. A later Load returns ErrNotFound.
	Delete(ctx context.Context, sessionID string) error
}
