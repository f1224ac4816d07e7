package categories

import (
	"fmt"
	"strings"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Registry is the in-memory category lookup table.
type Registry struct {
	categories []model.Category
	byID       map[string]int
}

// NewRegistry returns a Registry seeded with the built-in categories.
func NewRegistry() *Registry {
	r := &Registry{byID: make(map[string]int)}
	for _, c := range Builtins() {
		r.add(c)
	}
	return r
}

// Restore rebuilds a Registry from persisted categories. Built-ins missing
// from the input are re-seeded; a persisted built-in whose type differs from
// the seeded one is rejected.
func Restore(persisted []model.Category) (*Registry, error) {
	builtins := make(map[string]model.Category)
	for _, c := range Builtins() {
		builtins[c.ID] = c
	}

	r := &Registry{byID: make(map[string]int)}
	for _, c := range persisted {
		if b, ok := builtins[c.ID]; ok {
			if c.Type != b.Type {
				return nil, fmt.Errorf("%w: built-in %q must stay %s", model.ErrInvalidCategory, c.ID, b.Type)
			}
			c.Builtin = true
		} else {
			c.Builtin = false
		}
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	for _, b := range Builtins() {
		if !r.Exists(b.ID) {
			r.add(b)
		}
	}
	return r, nil
}

// Register adds a new category.
func (r *Registry) Register(c model.Category) error {
	c.ID = strings.TrimSpace(c.ID)
	if c.ID == "" {
		return fmt.Errorf("%w: empty category id", model.ErrInvalidCategory)
	}
	if !c.Type.Valid() {
		return fmt.Errorf("%w: category %q has unknown type %q", model.ErrInvalidCategory, c.ID, c.Type)
	}
	if r.Exists(c.ID) {
		return fmt.Errorf("%w: category %q", model.ErrDuplicateKey, c.ID)
	}
	if c.Name == "" {
		c.Name = c.ID
	}
	r.add(c)
	return nil
}

func (r *Registry) add(c model.Category) {
	r.byID[c.ID] = len(r.categories)
	r.categories = append(r.categories, c)
}

// Resolve returns a category by ID.
func (r *Registry) Resolve(id string) (model.Category, error) {
	i, ok := r.byID[id]
	if !ok {
		return model.Category{}, fmt.Errorf("%w: category %q", model.ErrNotFound, id)
	}
	return r.categories[i], nil
}

// Exists reports whether a category ID exists.
func (r *Registry) Exists(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// TypeOf returns the type of a category, and false if it does not exist.
func (r *Registry) TypeOf(id string) (model.Type, bool) {
	i, ok := r.byID[id]
	if !ok {
		return "", false
	}
	return r.categories[i].Type, true
}

// All returns every category in registration order.
func (r *Registry) All() []model.Category {
	out := make([]model.Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// ListByType returns the categories of the given type in registration order.
func (r *Registry) ListByType(t model.Type) []model.Category {
	var result []model.Category
	for _, c := range r.categories {
		if c.Type == t {
			result = append(result, c)
		}
	}
	return result
}

// Update holds the display fields that may change after creation. Empty
// fields are left untouched.
type Update struct {
	Name  string
	Color string
	Icon  string
}

// Update changes a category's display metadata. The type is never changed.
func (r *Registry) Update(id string, u Update) (model.Category, error) {
	i, ok := r.byID[id]
	if !ok {
		return model.Category{}, fmt.Errorf("%w: category %q", model.ErrNotFound, id)
	}
	c := &r.categories[i]
	if u.Name != "" {
		c.Name = u.Name
	}
	if u.Color != "" {
		c.Color = u.Color
	}
	if u.Icon != "" {
		c.Icon = u.Icon
	}
	return *c, nil
}

// Remove deletes a caller-defined category. Built-ins cannot be removed.
func (r *Registry) Remove(id string) error {
	i, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: category %q", model.ErrNotFound, id)
	}
	if r.categories[i].Builtin {
		return fmt.Errorf("%w: %q", model.ErrBuiltinCategory, id)
	}

	r.categories = append(r.categories[:i], r.categories[i+1:]...)
	r.byID = make(map[string]int, len(r.categories))
	for j, c := range r.categories {
		r.byID[c.ID] = j
	}
	return nil
}
