package session

import (
	"context"
)

var (
	_ Store = (*PgRepo)(nil)
	_ Store = (*GormRepo)(nil)
)

type Store interface {
	// Add stores a new session and returns it with the assigned id.
	Add(ctx context.Context, s *Session) (*Session, error)
	// List returns the user's sessions, newest first. limit <= 0 means all.
	List(ctx context.Context, userID string, limit int) ([]Session, error)
}
