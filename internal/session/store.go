package session

import (
	"context"
	"errors"
)

// TokenStore is the device's secure key-value storage, reduced to the single
// slot this app uses. Implementations hold one JWT.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

var ErrNoToken = errors.New("no token stored")
