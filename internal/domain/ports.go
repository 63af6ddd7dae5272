package domain

import "context"

// ItemLookup resolves an item by exact, case-sensitive name. It returns
// ErrNotFound when no item has that name.
type ItemLookup interface {
	Lookup(ctx context.Context, name string) (Item, error)
}

// ItemStore owns the name to item mapping. Implementations validate entries
// on Insert and never update or remove a stored item.
type ItemStore interface {
	ItemLookup
	Insert(ctx context.Context, entry Entry) error
	List(ctx context.Context) ([]Item, error)
	Len() int
}

// Summarizer flattens a recipe into its total cook time and base
// ingredients.
type Summarizer interface {
	Summarize(ctx context.Context, name string) (*Summary, error)
}
