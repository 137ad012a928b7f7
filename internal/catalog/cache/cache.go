package cache

import (
	"context"
	"errors"

	"github.com/FransManlangit/jicus-pos/internal/domain"
)

// ProductCache holds one catalog snapshot, shared between the registers of a
// store so not every terminal hammers the backend.
type ProductCache interface {
	Get(ctx context.Context) ([]domain.Product, error)
	Set(ctx context.Context, products []domain.Product) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
