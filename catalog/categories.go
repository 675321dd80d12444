package catalog

import (
	"context"
	"sync"

	"stockroom/domain"
	"stockroom/gateway"
)

// FallbackCategories is served when the categories endpoint is unreachable.
var FallbackCategories = []domain.Category{
	domain.CategoryByRef("1", "Electronics"),
	domain.CategoryByRef("2", "Accessories"),
	domain.CategoryByRef("3", "Furniture"),
	domain.CategoryByRef("4", "Office Supplies"),
}

// Categories caches the category collection used for form lookups. A fetch
// failure installs the fallback list instead of leaving the cache empty.
type Categories struct {
	mu         sync.RWMutex
	gw         gateway.Catalog
	categories []domain.Category
	fetchErr   error
}

// NewCategories constructs an empty category cache over the gateway.
func NewCategories(gw gateway.Catalog) *Categories {
	return &Categories{gw: gw}
}

// Fetch loads the categories. On failure the fallback list is installed and
// the error recorded; the method itself never fails.
func (c *Categories) Fetch(ctx context.Context) {
	categories, err := c.gw.ListCategories(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.fetchErr = err
		c.categories = append([]domain.Category(nil), FallbackCategories...)
		return
	}
	c.fetchErr = nil
	c.categories = categories
}

// All returns a copy of the cached categories.
func (c *Categories) All() []domain.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Category(nil), c.categories...)
}

// Err returns the error from the last fetch, or nil.
func (c *Categories) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchErr
}

// ByName looks a category up by display name.
func (c *Categories) ByName(name string) (domain.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cat := range c.categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return domain.Category{}, false
}

// ByID looks a category up by backend identifier.
func (c *Categories) ByID(id string) (domain.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return domain.Category{}, false
}
