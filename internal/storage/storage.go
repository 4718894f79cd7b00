package storage

import (
	"context"
	"errors"
)

var ErrTokenNotFound = errors.New("no token stored")

// TokenStore persists the bearer token across restarts under one fixed key.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
