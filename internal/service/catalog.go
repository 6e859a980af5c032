// Package service contains the business logic for the storefront service.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kalakaari/storefront-service/internal/domain/model"
	"github.com/kalakaari/storefront-service/internal/repository"
)

// Catalog exposes a read-only product snapshot to the cart and pricing
// engine. The snapshot is fetched once at startup and optionally
// refreshed in the background; cart operations validate against the
// cached copy, never against live inventory.
type Catalog interface {
	// Resolve returns the product for the given ID, consulting the
	// cached catalog first and the fixed bonus-product table second.
	Resolve(productID int) (model.Product, bool)

	// Snapshot returns the cached products sorted by ID.
	Snapshot() []model.Product

	// Refresh re-fetches the snapshot from the backing source.
	Refresh(ctx context.Context) error

	// Degraded reports whether the last fetch failed and the snapshot
	// may be stale or empty.
	Degraded() bool
}

// CatalogService implements Catalog over an optional products
// repository and an optional JSON seed file. When both are absent the
// catalog is empty and every non-bonus mutation is rejected.
type CatalogService struct {
	repo            repository.ProductsRepositoryInterface
	seedFile        string
	refreshInterval time.Duration

	mu       sync.RWMutex
	products map[int]model.Product
	degraded bool

	stopOnce sync.Once
	stop     chan struct{}
}

// CatalogOption configures a CatalogService.
type CatalogOption func(*CatalogService)

// WithSeedFile loads products from a JSON file when the repository is
// unavailable or empty.
func WithSeedFile(path string) CatalogOption {
	return func(s *CatalogService) {
		s.seedFile = path
	}
}

// WithRefreshInterval re-fetches the snapshot periodically. Zero
// disables background refresh.
func WithRefreshInterval(d time.Duration) CatalogOption {
	return func(s *CatalogService) {
		s.refreshInterval = d
	}
}

// NewCatalogService creates a catalog over the given repository, which
// may be nil when the database is disabled.
func NewCatalogService(repo repository.ProductsRepositoryInterface, opts ...CatalogOption) *CatalogService {
	s := &CatalogService{
		repo:     repo,
		products: make(map[int]model.Product),
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start performs the initial fetch and launches the background
// refresher when configured. A failed initial fetch leaves the catalog
// degraded but does not prevent startup.
func (s *CatalogService) Start(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("initial catalog fetch failed, serving degraded catalog")
	}
	if s.refreshInterval > 0 {
		go s.refreshLoop()
	}
}

// Stop terminates the background refresher.
func (s *CatalogService) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *CatalogService) refreshLoop() {
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := s.Refresh(ctx); err != nil {
				log.Warn().Err(err).Msg("catalog refresh failed, keeping previous snapshot")
			}
			cancel()
		case <-s.stop:
			return
		}
	}
}

// Refresh re-fetches the product snapshot. On failure the previous
// snapshot is kept and the catalog is flagged degraded.
func (s *CatalogService) Refresh(ctx context.Context) error {
	products, err := s.fetch(ctx)
	if err != nil {
		s.mu.Lock()
		s.degraded = true
		s.mu.Unlock()
		return err
	}

	byID := make(map[int]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	s.mu.Lock()
	s.products = byID
	s.degraded = false
	s.mu.Unlock()
	return nil
}

func (s *CatalogService) fetch(ctx context.Context) ([]model.Product, error) {
	if s.repo != nil {
		products, err := s.repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		if len(products) > 0 || s.seedFile == "" {
			return products, nil
		}
	}
	if s.seedFile != "" {
		return loadSeedFile(s.seedFile)
	}
	return nil, nil
}

// loadSeedFile reads a JSON array of products.
func loadSeedFile(path string) ([]model.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return products, nil
}

// Resolve returns the product for the given ID. Bonus products resolve
// from their fixed table even when absent from the catalog snapshot.
func (s *CatalogService) Resolve(productID int) (model.Product, bool) {
	s.mu.RLock()
	p, ok := s.products[productID]
	s.mu.RUnlock()
	if ok {
		return p, true
	}
	return model.BonusProduct(productID)
}

// Snapshot returns the cached products sorted by ID.
func (s *CatalogService) Snapshot() []model.Product {
	s.mu.RLock()
	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Degraded reports whether the last fetch failed.
func (s *CatalogService) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

// setProducts replaces the snapshot directly. Used by tests.
func (s *CatalogService) setProducts(products []model.Product) {
	byID := make(map[int]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	s.mu.Lock()
	s.products = byID
	s.mu.Unlock()
}
