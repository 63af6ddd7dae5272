package registry

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// Catalog is the YAML document accepted by LoadYAML and `cookbook add`:
//
//	items:
//	  - type: ingredient
//	    name: Flour
//	    cookTime: 5
//	  - type: recipe
//	    name: Pancakes
//	    requiredItems:
//	      - {name: Flour, quantity: 2}
type Catalog struct {
	Items []domain.Entry `yaml:"items"`
}

// DecodeCatalog reads a Catalog from r. An empty document yields an empty
// catalog.
func DecodeCatalog(r io.Reader) (Catalog, error) {
	var cat Catalog
	if err := yaml.NewDecoder(r).Decode(&cat); err != nil && !errors.Is(err, io.EOF) {
		return Catalog{}, fmt.Errorf("decoding catalog: %w", err)
	}
	return cat, nil
}

// LoadYAML inserts every entry of the catalog in r into store, in document
// order. It stops at the first rejected entry and returns how many were
// stored before it.
func LoadYAML(ctx context.Context, store domain.ItemStore, r io.Reader) (int, error) {
	cat, err := DecodeCatalog(r)
	if err != nil {
		return 0, err
	}

	for i, entry := range cat.Items {
		if err := store.Insert(ctx, entry); err != nil {
			return i, fmt.Errorf("item %d (%q): %w", i, entry.Name, err)
		}
	}
	return len(cat.Items), nil
}
