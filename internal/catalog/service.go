package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/FransManlangit/jicus-pos/internal/catalog/cache"
	"github.com/FransManlangit/jicus-pos/internal/domain"
)

// Fetcher is the slice of the backend client the catalog needs.
type Fetcher interface {
	Products(ctx context.Context) ([]domain.Product, error)
}

type Service struct {
	backend Fetcher
	cache   cache.ProductCache
	sfg     singleflight.Group // Prevents cache stampede
	log     *slog.Logger
}

func NewService(backend Fetcher, c cache.ProductCache, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		backend: backend,
		cache:   c,
		log:     log,
	}
}

// Products returns the catalog, cache-aside. Concurrent misses for the same
// snapshot collapse into one backend call.
func (s *Service) Products(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do(catalogKey, func() (interface{}, error) {
		products, err := s.cache.Get(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("catalog cache get failed", "error", err) // log cache error but continue
		}

		products, err = s.backend.Products(ctx)
		if err != nil {
			return nil, err
		}

		// set cache off the hot path
		go func() {
			cctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(cctx, products); errSet != nil {
				s.log.Warn("catalog cache set failed", "error", errSet)
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

// Search filters the catalog by case-insensitive name substring.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(query)
	var matched []domain.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Invalidate drops the cached snapshot so the next read refetches.
func (s *Service) Invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx); err != nil {
		s.log.Warn("catalog cache invalidate failed", "error", err)
	}
}

const catalogKey = "products"
