// Package domain defines core business types and the status derivation rule.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The remote catalog speaks plain JSON numbers for prices.
	decimal.MarshalJSONWithoutQuotes = true
}

// Status classifies a product's stock level.
type Status string

const (
	StatusInStock    Status = "inStock"
	StatusLowStock   Status = "lowStock"
	StatusOutOfStock Status = "outOfStock"
)

// Statuses lists every stock status in display order.
var Statuses = []Status{StatusInStock, StatusLowStock, StatusOutOfStock}

// DeriveStatus computes the stock status from quantity and the reorder
// threshold. The zero check takes priority over the threshold check.
func DeriveStatus(quantity, minStock int) Status {
	if quantity == 0 {
		return StatusOutOfStock
	}
	if quantity <= minStock {
		return StatusLowStock
	}
	return StatusInStock
}

// Product represents an inventory product as delivered by the remote catalog.
// The stored Status is authoritative for display; it is recomputed from
// Quantity/MinStock whenever a product is (re)submitted.
type Product struct {
	ID            string          `json:"_id,omitempty"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	MinStock      int             `json:"minStock"`
	ProductCode   string          `json:"productCode"`
	Location      string          `json:"location"`
	Supplier      *string         `json:"supplier"`
	Category      Category        `json:"category"`
	Status        Status          `json:"status"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastRestocked *time.Time      `json:"lastRestocked"`
}

// InventoryValue returns price multiplied by quantity.
func (p Product) InventoryValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
