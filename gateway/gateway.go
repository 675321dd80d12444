// Package gateway provides access to the remote product catalog. The HTTP
// implementation talks to the REST backend; the memory and file
// implementations back offline runs and tests with the same contract.
package gateway

import (
	"context"

	"stockroom/domain"
)

// Catalog is the remote catalog contract consumed by the catalog store.
type Catalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
}
