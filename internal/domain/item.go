// Package domain defines the core types and interfaces for the cookbook.
// All other packages depend on domain; domain depends on nothing.
package domain

import "slices"

// ItemType tags the two item variants.
type ItemType string

const (
	TypeIngredient ItemType = "ingredient"
	TypeRecipe     ItemType = "recipe"
)

// Item is a named cookbook entry. It is a closed sum: the only
// implementations are Ingredient and Recipe.
type Item interface {
	ItemName() string
	ItemType() ItemType
	isItem()
}

// Ingredient is an atomic item with a fixed cook time.
type Ingredient struct {
	Name     string
	CookTime float64
}

// Recipe is a composite item built from other items.
type Recipe struct {
	Name          string
	RequiredItems []RequiredItem
}

// RequiredItem is a demand for Quantity units of the item called Name.
type RequiredItem struct {
	Name     string  `json:"name" yaml:"name"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
}

func (i Ingredient) ItemName() string   { return i.Name }
func (i Ingredient) ItemType() ItemType { return TypeIngredient }
func (Ingredient) isItem()              {}

func (r Recipe) ItemName() string   { return r.Name }
func (r Recipe) ItemType() ItemType { return TypeRecipe }
func (Recipe) isItem()              {}

// Clone returns a copy of r that shares no memory with it.
func (r Recipe) Clone() Recipe {
	return Recipe{Name: r.Name, RequiredItems: slices.Clone(r.RequiredItems)}
}

// CloneItem copies an item so stored values cannot be mutated by callers.
func CloneItem(item Item) Item {
	if r, ok := item.(Recipe); ok {
		return r.Clone()
	}
	return item
}

// Entry is the unvalidated, tagged input to an insert. A nil CookTime means
// the field was absent or not a number; a nil RequiredItems means it was
// absent or not a list.
type Entry struct {
	Type          string         `json:"type" yaml:"type"`
	Name          string         `json:"name" yaml:"name"`
	CookTime      *float64       `json:"cookTime,omitempty" yaml:"cookTime,omitempty"`
	RequiredItems []RequiredItem `json:"requiredItems,omitempty" yaml:"requiredItems,omitempty"`
}

// EntryOf renders a stored item back into its wire form.
func EntryOf(item Item) Entry {
	switch v := item.(type) {
	case Ingredient:
		ct := v.CookTime
		return Entry{Type: string(TypeIngredient), Name: v.Name, CookTime: &ct}
	case Recipe:
		return Entry{Type: string(TypeRecipe), Name: v.Name, RequiredItems: slices.Clone(v.RequiredItems)}
	default:
		return Entry{}
	}
}
