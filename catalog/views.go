package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"stockroom/domain"
)

// Derived views are pure functions over a product snapshot; they never
// mutate the collection and are recomputed on each call.

// TotalCount returns the size of the collection.
func TotalCount(products []domain.Product) int {
	return len(products)
}

// CountByStatus returns the number of products with the given status.
func CountByStatus(products []domain.Product, status domain.Status) int {
	n := 0
	for _, p := range products {
		if p.Status == status {
			n++
		}
	}
	return n
}

// StatusCounts returns the per-status breakdown. Every known status is
// present in the result, zero or not.
func StatusCounts(products []domain.Product) map[domain.Status]int {
	counts := make(map[domain.Status]int, len(domain.Statuses))
	for _, s := range domain.Statuses {
		counts[s] = 0
	}
	for _, p := range products {
		counts[p.Status]++
	}
	return counts
}

// TotalInventoryValue sums price times quantity over the collection.
func TotalInventoryValue(products []domain.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.InventoryValue())
	}
	return total
}

// CategoryVocabulary returns the category sentinel followed by the distinct
// category names present in the collection, in first-seen order.
func CategoryVocabulary(products []domain.Product) []string {
	vocab := []string{AllCategories}
	seen := make(map[string]bool)
	for _, p := range products {
		name := p.Category.DisplayName()
		if seen[name] {
			continue
		}
		seen[name] = true
		vocab = append(vocab, name)
	}
	return vocab
}

// StatusVocabulary returns the status sentinel followed by the distinct
// status values present in the collection, in first-seen order.
func StatusVocabulary(products []domain.Product) []string {
	vocab := []string{AllStatuses}
	seen := make(map[domain.Status]bool)
	for _, p := range products {
		if seen[p.Status] {
			continue
		}
		seen[p.Status] = true
		vocab = append(vocab, string(p.Status))
	}
	return vocab
}

// Filter returns the products matching all three criteria axes: category
// (unless at its sentinel), status (unless at its sentinel), and a
// case-insensitive substring search across name, description and product
// code.
func Filter(products []domain.Product, c CriteriaValues) []domain.Product {
	search := strings.ToLower(c.Search)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if c.Category != AllCategories && p.Category.DisplayName() != c.Category {
			continue
		}
		if c.Status != AllStatuses && string(p.Status) != c.Status {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p domain.Product, lowered string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowered) ||
		strings.Contains(strings.ToLower(p.Description), lowered) ||
		strings.Contains(strings.ToLower(p.ProductCode), lowered)
}

// Summary aggregates the count and value projections for display.
type Summary struct {
	TotalCount          int
	Counts              map[domain.Status]int
	TotalInventoryValue decimal.Decimal
	Categories          []string
	Statuses            []string
}

// Summarize computes all projections over one snapshot.
func Summarize(products []domain.Product) Summary {
	return Summary{
		TotalCount:          TotalCount(products),
		Counts:              StatusCounts(products),
		TotalInventoryValue: TotalInventoryValue(products),
		Categories:          CategoryVocabulary(products),
		Statuses:            StatusVocabulary(products),
	}
}
