package registry

import (
	"fmt"
	"math"
	"slices"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

func checkType(entry domain.Entry) (domain.ItemType, error) {
	switch t := domain.ItemType(entry.Type); t {
	case domain.TypeIngredient, domain.TypeRecipe:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidType, entry.Type)
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func buildIngredient(entry domain.Entry) (domain.Ingredient, error) {
	if entry.CookTime == nil {
		return domain.Ingredient{}, fmt.Errorf("%w: missing or not a number", domain.ErrInvalidCookTime)
	}
	ct := *entry.CookTime
	if !finite(ct) || ct < 0 {
		return domain.Ingredient{}, fmt.Errorf("%w: %v", domain.ErrInvalidCookTime, ct)
	}
	return domain.Ingredient{Name: entry.Name, CookTime: ct}, nil
}

func buildRecipe(entry domain.Entry) (domain.Recipe, error) {
	if len(entry.RequiredItems) == 0 {
		return domain.Recipe{}, domain.ErrEmptyRequiredItems
	}

	seen := make(map[string]struct{}, len(entry.RequiredItems))
	for i, req := range entry.RequiredItems {
		if req.Name == "" {
			return domain.Recipe{}, fmt.Errorf("%w: item %d has no name", domain.ErrInvalidRequiredItem, i)
		}
		if !finite(req.Quantity) || req.Quantity <= 0 {
			return domain.Recipe{}, fmt.Errorf("%w: %q has quantity %v", domain.ErrInvalidRequiredItem, req.Name, req.Quantity)
		}
		if _, dup := seen[req.Name]; dup {
			return domain.Recipe{}, fmt.Errorf("%w: %q", domain.ErrDuplicateRequiredItem, req.Name)
		}
		seen[req.Name] = struct{}{}
	}

	return domain.Recipe{Name: entry.Name, RequiredItems: slices.Clone(entry.RequiredItems)}, nil
}
