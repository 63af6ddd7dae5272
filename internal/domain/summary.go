package domain

import "slices"

// Summary is the flattened view of a recipe: total cook time and the base
// ingredients it needs, in first-encountered order.
type Summary struct {
	Name        string            `json:"name"`
	CookTime    float64           `json:"cookTime"`
	Ingredients []IngredientTotal `json:"ingredients"`
}

// IngredientTotal is the summed quantity of one base ingredient.
type IngredientTotal struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// Clone returns a deep copy of s.
func (s *Summary) Clone() *Summary {
	if s == nil {
		return nil
	}
	out := *s
	out.Ingredients = slices.Clone(s.Ingredients)
	if out.Ingredients == nil {
		out.Ingredients = []IngredientTotal{}
	}
	return &out
}
