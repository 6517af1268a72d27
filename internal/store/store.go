// Package store keeps upload sessions for their single-session lifetime.
// Sessions expire after a TTL; nothing here is durable.
package store

import (
	"context"
	"errors"

	"insightsynth/internal/model"
)

var ErrNotFound = errors.New("session not found")

type Store interface {
	Put(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}
