package gateway

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"stockroom/domain"
)

// Memory is a thread-safe in-memory Catalog. It stands in for the remote
// backend in tests and in --gateway memory runs: it assigns identifiers and
// stores products exactly as submitted, without recomputing anything.
type Memory struct {
	mu         sync.RWMutex
	products   map[string]domain.Product
	categories []domain.Category
}

// NewMemory constructs an empty in-memory catalog.
func NewMemory() *Memory {
	return &Memory{
		products: make(map[string]domain.Product),
	}
}

// compile-time assertion that Memory implements Catalog
var _ Catalog = (*Memory)(nil)

// Seed loads products directly, keeping their IDs. Intended for tests and
// offline bootstrapping.
func (m *Memory) Seed(products []domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range products {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		m.products[p.ID] = p
	}
}

// SeedCategories installs the category collection served by ListCategories.
func (m *Memory) SeedCategories(categories []domain.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = append([]domain.Category(nil), categories...)
}

func validateForWrite(product domain.Product) error {
	if product.Name == "" {
		return domain.NewInvalidProductError("name", "cannot be empty", product.Name)
	}
	if product.Price.IsNegative() {
		return domain.NewInvalidProductError("price", "must be non-negative", product.Price)
	}
	if product.Quantity < 0 {
		return domain.NewInvalidProductError("quantity", "must be non-negative", product.Quantity)
	}
	if product.MinStock < 0 {
		return domain.NewInvalidProductError("minStock", "must be non-negative", product.MinStock)
	}
	return nil
}

func (m *Memory) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	// stable order for deterministic listings
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return domain.Product{}, domain.NewProductNotFoundError(id)
	}
	return p, nil
}

func (m *Memory) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	if err := validateForWrite(product); err != nil {
		return domain.Product{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	product.ID = uuid.NewString()
	m.products[product.ID] = product
	return product, nil
}

func (m *Memory) UpdateProduct(ctx context.Context, id string, product domain.Product) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	if err := validateForWrite(product); err != nil {
		return domain.Product{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return domain.Product{}, domain.NewProductNotFoundError(id)
	}
	product.ID = id
	m.products[id] = product
	return product, nil
}

func (m *Memory) DeleteProduct(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return domain.NewProductNotFoundError(id)
	}
	delete(m.products, id)
	return nil
}

func (m *Memory) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.categories) == 0 {
		return nil, domain.NewGatewayError("list categories", 0)
	}
	return append([]domain.Category(nil), m.categories...), nil
}
