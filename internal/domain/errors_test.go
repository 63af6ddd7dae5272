package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindAndCategory(t *testing.T) {
	tests := []struct {
		err      error
		kind     Kind
		category Category
	}{
		{fmt.Errorf("%w: %q", ErrInvalidType, "spice"), KindInvalidType, CategoryInvalid},
		{fmt.Errorf("%w: empty", ErrInvalidName), KindInvalidName, CategoryInvalid},
		{fmt.Errorf("%w: %q", ErrDuplicateName, "Salt"), KindDuplicateName, CategoryConflict},
		{ErrInvalidCookTime, KindInvalidCookTime, CategoryInvalid},
		{ErrEmptyRequiredItems, KindEmptyRequiredItems, CategoryInvalid},
		{ErrInvalidRequiredItem, KindInvalidRequiredItem, CategoryInvalid},
		{ErrDuplicateRequiredItem, KindDuplicateRequiredItem, CategoryInvalid},
		{fmt.Errorf("lookup: %w", ErrNotFound), KindNotFound, CategoryNotFound},
		{ErrNotARecipe, KindNotARecipe, CategoryConflict},
		{ErrMissingReference, KindMissingReference, CategoryConflict},
		{fmt.Errorf("%w: A -> B -> A", ErrCyclicDependency), KindCyclicDependency, CategoryConflict},
		{ErrOverflow, KindOverflow, CategoryConflict},
		{fmt.Errorf("%w: %w", ErrMalformedRequest, errors.New("unexpected EOF")), KindMalformedRequest, CategoryInvalid},
		{ErrNoName, KindNoName, CategoryInvalid},
		{errors.New("disk on fire"), KindUnknown, CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.kind {
				t.Errorf("KindOf(%v) = %q, want %q", tt.err, got, tt.kind)
			}
			if got := CategoryOf(tt.err); got != tt.category {
				t.Errorf("CategoryOf(%v) = %q, want %q", tt.err, got, tt.category)
			}
		})
	}
}

func TestErrorForKindRoundTrip(t *testing.T) {
	for _, c := range classes {
		got := ErrorForKind(c.kind)
		if !errors.Is(got, c.err) {
			t.Errorf("ErrorForKind(%q) = %v, want %v", c.kind, got, c.err)
		}
		if KindOf(got) != c.kind {
			t.Errorf("KindOf(ErrorForKind(%q)) = %q", c.kind, KindOf(got))
		}
	}

	if err := ErrorForKind(KindUnknown); err != nil {
		t.Errorf("ErrorForKind(unknown) = %v, want nil", err)
	}
	if err := ErrorForKind("made_up"); err != nil {
		t.Errorf("ErrorForKind(made_up) = %v, want nil", err)
	}
}

func TestEntryOfRoundTrip(t *testing.T) {
	ing := Ingredient{Name: "Flour", CookTime: 5}
	e := EntryOf(ing)
	if e.Type != string(TypeIngredient) || e.Name != "Flour" || e.CookTime == nil || *e.CookTime != 5 || e.RequiredItems != nil {
		t.Errorf("EntryOf(ingredient) = %+v", e)
	}

	rec := Recipe{Name: "Pancakes", RequiredItems: []RequiredItem{{Name: "Flour", Quantity: 2}}}
	e = EntryOf(rec)
	if e.Type != string(TypeRecipe) || e.CookTime != nil || len(e.RequiredItems) != 1 {
		t.Errorf("EntryOf(recipe) = %+v", e)
	}
	e.RequiredItems[0].Quantity = 99
	if rec.RequiredItems[0].Quantity != 2 {
		t.Error("EntryOf shares the recipe's required items")
	}
}
