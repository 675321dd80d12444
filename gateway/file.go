package gateway

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"

	"stockroom/domain"
)

// File is a Catalog backed by a local JSON snapshot, for working against a
// saved copy of the catalog without the backend.
type File struct {
	mu         sync.RWMutex
	products   map[string]domain.Product
	categories []domain.Category
	path       string
}

// compile-time assertion
var _ Catalog = (*File)(nil)

// snapshot is the on-disk layout.
type snapshot struct {
	Products   []domain.Product  `json:"products"`
	Categories []domain.Category `json:"categories,omitempty"`
}

// NewFile constructs a File catalog at the given path. If the file exists it
// will be loaded.
func NewFile(path string) (*File, error) {
	f := &File{
		products: make(map[string]domain.Product),
		path:     path,
	}
	if err := f.loadFromFile(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) loadFromFile() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			// no snapshot yet; that's fine
			return nil
		}
		return err
	}
	if len(b) == 0 {
		return nil
	}
	var snap snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return err
	}
	for _, p := range snap.Products {
		f.products[p.ID] = p
	}
	f.categories = snap.Categories
	return nil
}

func (f *File) saveToFile() error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	snap := snapshot{
		Products:   make([]domain.Product, 0, len(f.products)),
		Categories: f.categories,
	}
	for _, p := range f.products {
		snap.Products = append(snap.Products, p)
	}
	// stable order for deterministic files
	sort.Slice(snap.Products, func(i, j int) bool { return snap.Products[i].ID < snap.Products[j].ID })
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *File) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *File) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, domain.NewProductNotFoundError(id)
	}
	return p, nil
}

func (f *File) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	if err := validateForWrite(product); err != nil {
		return domain.Product{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	product.ID = uuid.NewString()
	f.products[product.ID] = product
	if err := f.saveToFile(); err != nil {
		delete(f.products, product.ID)
		return domain.Product{}, err
	}
	return product, nil
}

func (f *File) UpdateProduct(ctx context.Context, id string, product domain.Product) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	if err := validateForWrite(product); err != nil {
		return domain.Product{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	prev, ok := f.products[id]
	if !ok {
		return domain.Product{}, domain.NewProductNotFoundError(id)
	}
	product.ID = id
	f.products[id] = product
	if err := f.saveToFile(); err != nil {
		f.products[id] = prev
		return domain.Product{}, err
	}
	return product, nil
}

func (f *File) DeleteProduct(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, ok := f.products[id]
	if !ok {
		return domain.NewProductNotFoundError(id)
	}
	delete(f.products, id)
	if err := f.saveToFile(); err != nil {
		f.products[id] = prev
		return err
	}
	return nil
}

func (f *File) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.categories) == 0 {
		return nil, domain.NewGatewayError("list categories", 0)
	}
	return append([]domain.Category(nil), f.categories...), nil
}
