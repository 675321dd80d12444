package catalog

import "sync"

// Sentinel values marking a disabled filter axis.
const (
	AllCategories = "All categories"
	AllStatuses   = "All statuses"
)

// CriteriaValues is an immutable snapshot of the three filter selectors.
type CriteriaValues struct {
	Search   string
	Category string
	Status   string
}

// Criteria holds the current search term, category filter and status filter.
// The three setters are independent; any string is accepted, including values
// absent from the current vocabulary (those simply match nothing).
type Criteria struct {
	mu sync.RWMutex
	v  CriteriaValues
}

// NewCriteria constructs criteria with both filters at their sentinels and an
// empty search term.
func NewCriteria() *Criteria {
	return &Criteria{v: CriteriaValues{Category: AllCategories, Status: AllStatuses}}
}

// SetSearch overwrites the free-text search term.
func (c *Criteria) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v.Search = term
}

// SetCategory overwrites the category selector.
func (c *Criteria) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v.Category = category
}

// SetStatus overwrites the status selector.
func (c *Criteria) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v.Status = status
}

// Snapshot returns the current selector values.
func (c *Criteria) Snapshot() CriteriaValues {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v
}
