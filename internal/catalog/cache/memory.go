package cache

import (
	"context"
	"sync"
	"time"

	"github.com/FransManlangit/jicus-pos/internal/domain"
)

// MemoryCache is a single-terminal fallback for registers without a shared
// redis in the store.
type MemoryCache struct {
	mu        sync.RWMutex
	products  []domain.Product
	expiresAt time.Time
	ttl       time.Duration
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl}
}

func (m *MemoryCache) Get(_ context.Context) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.products == nil || time.Now().After(m.expiresAt) {
		return nil, ErrCacheMiss
	}
	out := make([]domain.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *MemoryCache) Set(_ context.Context, products []domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = make([]domain.Product, len(products))
	copy(m.products, products)
	m.expiresAt = time.Now().Add(m.ttl)
	return nil
}

func (m *MemoryCache) Delete(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = nil
	return nil
}
