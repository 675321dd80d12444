// Package catalog holds the client-side product catalog: the authoritative
// cache of the remote collection, pure derived views over it, the filter
// criteria, and the view-state machine consumed by the front end.
package catalog

import (
	"context"
	"sync"

	"stockroom/domain"
	"stockroom/gateway"
)

// Store caches the remote product collection. Every successful mutation
// triggers a full reload so the cache always reflects server-side truth;
// there is no optimistic client-side merging.
type Store struct {
	mu       sync.RWMutex
	gw       gateway.Catalog
	products []domain.Product
	loading  bool
	loadErr  error
	gen      uint64
}

// NewStore constructs a Store over the given gateway. The collection is
// empty until the first Load.
func NewStore(gw gateway.Catalog) *Store {
	return &Store{gw: gw}
}

// Load replaces the collection with a fresh fetch. Concurrent loads carry a
// generation token; only the most recently issued request may apply its
// response, so a slow stale fetch never overwrites a newer one. On failure
// the previous collection is left untouched and the error is recorded.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.loading = true
	s.loadErr = nil
	s.mu.Unlock()

	products, err := s.gw.ListProducts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		// superseded by a newer load; discard this response
		return err
	}
	s.loading = false
	if err != nil {
		s.loadErr = err
		return err
	}
	s.products = products
	return nil
}

// GetByID fetches a single product from the gateway. The bulk collection is
// never touched; a failure surfaces as a not-found condition.
func (s *Store) GetByID(ctx context.Context, id string) (domain.Product, error) {
	return s.gw.GetProduct(ctx, id)
}

// Create submits a new product and, on success, re-syncs the collection.
// The returned error covers the mutation only; a reload failure is recorded
// on the store and visible through Err.
func (s *Store) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	created, err := s.gw.CreateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}
	_ = s.Load(ctx)
	return created, nil
}

// Update submits a full product replacement and, on success, re-syncs.
func (s *Store) Update(ctx context.Context, id string, product domain.Product) (domain.Product, error) {
	updated, err := s.gw.UpdateProduct(ctx, id, product)
	if err != nil {
		return domain.Product{}, err
	}
	_ = s.Load(ctx)
	return updated, nil
}

// Delete removes a product and, on success, re-syncs.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.gw.DeleteProduct(ctx, id); err != nil {
		return err
	}
	_ = s.Load(ctx)
	return nil
}

// Products returns a copy of the cached collection.
func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...)
}

// Loading reports whether a load is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error recorded by the most recent failed load, or nil.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}
