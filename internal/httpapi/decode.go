package httpapi

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// entryRequest keeps every field raw so that a wrongly typed field turns
// into the matching validation failure instead of a generic decode error.
type entryRequest struct {
	Type          json.RawMessage `json:"type"`
	Name          json.RawMessage `json:"name"`
	CookTime      json.RawMessage `json:"cookTime"`
	RequiredItems json.RawMessage `json:"requiredItems"`
}

type requiredItemRequest struct {
	Name     json.RawMessage `json:"name"`
	Quantity json.RawMessage `json:"quantity"`
}

// decodeEntry reads one entry from r. Only a body that is not a JSON object
// is rejected here; field problems are left to the registry.
func decodeEntry(r io.Reader) (domain.Entry, error) {
	var req entryRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return domain.Entry{}, fmt.Errorf("%w: %w", domain.ErrMalformedRequest, err)
	}

	return domain.Entry{
		Type:          rawString(req.Type),
		Name:          rawString(req.Name),
		CookTime:      rawNumber(req.CookTime),
		RequiredItems: rawRequiredItems(req.RequiredItems),
	}, nil
}

// rawString returns the string held by raw, or "" for anything else.
func rawString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// rawNumber returns the number held by raw, or nil for null, absent or
// non-numeric values.
func rawNumber(raw json.RawMessage) *float64 {
	var f *float64
	if len(raw) == 0 || json.Unmarshal(raw, &f) != nil {
		return nil
	}
	return f
}

// rawRequiredItems returns nil unless raw is a JSON array. Elements that
// are not objects, or whose fields have the wrong type, become zero values
// that fail validation.
func rawRequiredItems(raw json.RawMessage) []domain.RequiredItem {
	var elems []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &elems) != nil || elems == nil {
		return nil
	}

	items := make([]domain.RequiredItem, 0, len(elems))
	for _, elem := range elems {
		var req requiredItemRequest
		if json.Unmarshal(elem, &req) != nil {
			items = append(items, domain.RequiredItem{})
			continue
		}
		item := domain.RequiredItem{Name: rawString(req.Name)}
		if q := rawNumber(req.Quantity); q != nil {
			item.Quantity = *q
		}
		items = append(items, item)
	}
	return items
}
