package domain

import (
	"encoding/json"
	"fmt"
)

// Category is a product's category as it appears on the wire: either a bare
// name ("Electronics") or a reference object carrying the backend identifier
// alongside the name. A zero ID marks the by-name form; marshalling re-emits
// whichever shape was parsed.
type Category struct {
	ID   string
	Name string
}

// CategoryByName returns the by-name form of a category.
func CategoryByName(name string) Category {
	return Category{Name: name}
}

// CategoryByRef returns the reference form of a category.
func CategoryByRef(id, name string) Category {
	return Category{ID: id, Name: name}
}

// DisplayName normalizes either form to something printable.
func (c Category) DisplayName() string {
	return c.Name
}

// IsRef reports whether the category carries a backend identifier.
func (c Category) IsRef() bool {
	return c.ID != ""
}

type categoryRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// MarshalJSON emits a bare string for by-name categories and a {_id,name}
// object for references.
func (c Category) MarshalJSON() ([]byte, error) {
	if !c.IsRef() {
		return json.Marshal(c.Name)
	}
	return json.Marshal(categoryRef{ID: c.ID, Name: c.Name})
}

// UnmarshalJSON accepts either a bare string or a {_id,name} object.
func (c *Category) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*c = Category{Name: name}
		return nil
	}
	var ref categoryRef
	if err := json.Unmarshal(data, &ref); err != nil {
		return fmt.Errorf("category must be a name or a reference: %w", err)
	}
	*c = Category{ID: ref.ID, Name: ref.Name}
	return nil
}
