package profile

import (
	"context"
	"time"
)

var (
	_ Store = (*PgRepo)(nil)
	_ Store = (*GormRepo)(nil)
)

// UpdateFunc mutates a loaded profile inside the store transaction.
// Returning an error aborts the update.
type UpdateFunc func(p *Profile) error

type Store interface {
	Create(ctx context.Context, p *Profile) error
	Get(ctx context.Context, id string) (*Profile, error)
	GetByUsername(ctx context.Context, username string) (*Profile, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	// UpdateProgress atomically loads the profile, applies fn and persists the
	// progression fields (account and skill tracks).
	UpdateProgress(ctx context.Context, id string, fn UpdateFunc) (*Profile, error)
	// RecordSession increments total sessions and sets the last training date.
	RecordSession(ctx context.Context, id string, at time.Time) error
}
