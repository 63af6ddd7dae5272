// Package resolver flattens recipes into total cook time and base
// ingredient quantities.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/hammamikhairi/cookbook/internal/cache"
	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface check.
var _ domain.Summarizer = (*Resolver)(nil)

// Option configures the resolver.
type Option func(*Resolver)

// WithCache caches successful summaries. Items are insert-only and
// immutable, so a summary that resolved completely never goes stale.
func WithCache(c *cache.Cache[*domain.Summary]) Option {
	return func(r *Resolver) {
		r.cache = c
	}
}

// WithTracer records a span per Summarize call.
func WithTracer(t trace.Tracer) Option {
	return func(r *Resolver) {
		if t != nil {
			r.tracer = t
		}
	}
}

// Resolver computes recipe summaries. It depends only on a lookup port and
// holds no state besides the optional cache.
type Resolver struct {
	items  domain.ItemLookup
	cache  *cache.Cache[*domain.Summary]
	tracer trace.Tracer
	log    *logger.Logger
}

// New creates a resolver reading items from items.
func New(items domain.ItemLookup, log *logger.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		items:  items,
		tracer: noop.NewTracerProvider().Tracer("resolver"),
		log:    log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Summarize resolves the recipe called name. It fails with ErrNotFound,
// ErrNotARecipe, ErrMissingReference, ErrCyclicDependency or ErrOverflow.
func (r *Resolver) Summarize(ctx context.Context, name string) (*domain.Summary, error) {
	ctx, span := r.tracer.Start(ctx, "resolver.summarize",
		trace.WithAttributes(attribute.String("recipe.name", name)),
	)
	defer span.End()

	summary, cached, err := r.summarize(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("error.kind", string(domain.KindOf(err))))
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("cache.hit", cached),
		attribute.Int("summary.ingredients", len(summary.Ingredients)),
		attribute.Float64("summary.cook_time", summary.CookTime),
	)
	span.SetStatus(codes.Ok, "")
	return summary, nil
}

func (r *Resolver) summarize(ctx context.Context, name string) (*domain.Summary, bool, error) {
	if r.cache != nil {
		if s, ok := r.cache.Get(ctx, name); ok {
			return s.Clone(), true, nil
		}
	}

	item, err := r.items.Lookup(ctx, name)
	if err != nil {
		return nil, false, err
	}
	top, ok := item.(domain.Recipe)
	if !ok {
		return nil, false, fmt.Errorf("%w: %q is an %s", domain.ErrNotARecipe, name, item.ItemType())
	}

	w := newWalk(ctx, r.items)
	reduced, err := w.flatten(top)
	if err != nil {
		r.log.Debug("summary of %q failed: %v", name, err)
		return nil, false, err
	}

	summary := &domain.Summary{
		Name:        top.Name,
		CookTime:    reduced.cookTime,
		Ingredients: slices.Clone(reduced.totals),
	}
	if summary.Ingredients == nil {
		summary.Ingredients = []domain.IngredientTotal{}
	}
	r.log.Debug("summarized %q: cookTime=%v ingredients=%d", name, summary.CookTime, len(summary.Ingredients))

	if r.cache != nil {
		r.cache.Set(ctx, name, summary.Clone())
	}
	return summary, false, nil
}

// flat is one unit of a recipe reduced to base ingredients, totals in
// first-encountered order.
type flat struct {
	cookTime float64
	totals   []domain.IngredientTotal
	index    map[string]int
}

func newFlat() *flat {
	return &flat{index: make(map[string]int)}
}

// add accumulates units of one ingredient.
func (f *flat) add(name string, cookTime, units float64) bool {
	f.cookTime += cookTime * units
	if i, ok := f.index[name]; ok {
		f.totals[i].Quantity += units
		return finite(f.cookTime) && finite(f.totals[i].Quantity)
	}
	f.index[name] = len(f.totals)
	f.totals = append(f.totals, domain.IngredientTotal{Name: name, Quantity: units})
	return finite(f.cookTime) && finite(units)
}

// merge accumulates units copies of sub, keeping sub's own order for
// names not seen yet.
func (f *flat) merge(sub *flat, units float64) bool {
	f.cookTime += sub.cookTime * units
	if !finite(f.cookTime) {
		return false
	}
	for _, t := range sub.totals {
		if !f.add(t.Name, 0, t.Quantity*units) {
			return false
		}
	}
	return true
}

// walk is the state of one depth-first expansion. Each recipe is reduced
// once per walk; later references reuse the memoized result.
type walk struct {
	ctx    context.Context
	items  domain.ItemLookup
	memo   map[string]*flat
	path   []string
	onPath map[string]bool
}

func newWalk(ctx context.Context, items domain.ItemLookup) *walk {
	return &walk{
		ctx:    ctx,
		items:  items,
		memo:   make(map[string]*flat),
		onPath: make(map[string]bool),
	}
}

// flatten reduces one unit of recipe to base ingredients.
func (w *walk) flatten(recipe domain.Recipe) (*flat, error) {
	if f, ok := w.memo[recipe.Name]; ok {
		return f, nil
	}

	w.path = append(w.path, recipe.Name)
	w.onPath[recipe.Name] = true
	defer func() {
		w.path = w.path[:len(w.path)-1]
		delete(w.onPath, recipe.Name)
	}()

	f := newFlat()
	for _, req := range recipe.RequiredItems {
		if err := w.ctx.Err(); err != nil {
			return nil, err
		}
		if w.onPath[req.Name] {
			return nil, fmt.Errorf("%w: %s", domain.ErrCyclicDependency, w.cycle(req.Name))
		}

		item, err := w.items.Lookup(w.ctx, req.Name)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q required by %q", domain.ErrMissingReference, req.Name, recipe.Name)
		}
		if err != nil {
			return nil, err
		}

		var ok bool
		switch v := item.(type) {
		case domain.Ingredient:
			ok = f.add(v.Name, v.CookTime, req.Quantity)
		case domain.Recipe:
			sub, err := w.flatten(v)
			if err != nil {
				return nil, err
			}
			ok = f.merge(sub, req.Quantity)
		default:
			return nil, fmt.Errorf("unsupported item type %T for %q", item, req.Name)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %q in %q", domain.ErrOverflow, req.Name, recipe.Name)
		}
	}

	w.memo[recipe.Name] = f
	return f, nil
}

// cycle renders the current path from the first occurrence of name back to
// name, e.g. "A -> B -> A".
func (w *walk) cycle(name string) string {
	start := 0
	for i, n := range w.path {
		if n == name {
			start = i
			break
		}
	}
	return strings.Join(append(w.path[start:len(w.path):len(w.path)], name), " -> ")
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
