package collection

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/storage"
)

// RecipeRepository implements storage.RecipeRepository over a JSON document collection.
type RecipeRepository struct {
	store *Collection[core.Recipe]
}

var _ storage.RecipeRepository = (*RecipeRepository)(nil)

// NewRecipeRepository creates a RecipeRepository persisting through p.
// Call Load before use.
func NewRecipeRepository(p storage.Persister, opts ...Option) *RecipeRepository {
	return &RecipeRepository{store: New(RecipeCodec, p, opts...)}
}

// Load reads the stored recipes.
func (r *RecipeRepository) Load(ctx context.Context) error {
	return r.store.Load(ctx)
}

// Close releases the persister.
func (r *RecipeRepository) Close() error {
	return r.store.Close()
}

// FindByID retrieves a single recipe by ID.
func (r *RecipeRepository) FindByID(ctx context.Context, id core.ID) (core.Recipe, error) {
	recipe, ok := r.store.FindByID(id)
	if !ok {
		return core.Recipe{}, fmt.Errorf("%w: recipe %d", storage.ErrNotFound, id)
	}
	return recipe, nil
}

// FindAll returns every recipe in insertion order.
func (r *RecipeRepository) FindAll(ctx context.Context) ([]core.Recipe, error) {
	return r.store.FindAll(), nil
}

// Save inserts or replaces a recipe and returns its ID.
func (r *RecipeRepository) Save(ctx context.Context, recipe core.Recipe) (core.ID, error) {
	return r.store.Save(ctx, recipe)
}

// Remove deletes a recipe by ID.
func (r *RecipeRepository) Remove(ctx context.Context, id core.ID) error {
	return r.store.Remove(ctx, id)
}

// NextID returns the ID the next new recipe will receive.
func (r *RecipeRepository) NextID() core.ID {
	return r.store.NextID()
}

// SetNextID pre-seeds the recipe ID sequence.
func (r *RecipeRepository) SetNextID(next core.ID) {
	r.store.SetNextID(next)
}

// FindByName matches recipe names case-insensitively.
func (r *RecipeRepository) FindByName(ctx context.Context, name string, partial bool) ([]core.Recipe, error) {
	return r.store.Filter(nameMatcher(name, partial, func(rec core.Recipe) string { return rec.Name })), nil
}

// FindByTag returns recipes carrying tag.
func (r *RecipeRepository) FindByTag(ctx context.Context, tag string) ([]core.Recipe, error) {
	return r.FindByTags(ctx, []string{tag}, true)
}

// FindByTags returns recipes carrying every tag (matchAll) or at least one.
func (r *RecipeRepository) FindByTags(ctx context.Context, tags []string, matchAll bool) ([]core.Recipe, error) {
	if len(tags) == 0 {
		return []core.Recipe{}, nil
	}
	return r.store.Filter(func(rec core.Recipe) bool {
		return matchCriteria(tags, matchAll, rec.HasTag)
	}), nil
}

// FindByIngredients returns recipes using every named ingredient (matchAll) or at least one.
func (r *RecipeRepository) FindByIngredients(ctx context.Context, names []string, matchAll bool) ([]core.Recipe, error) {
	if len(names) == 0 {
		return []core.Recipe{}, nil
	}
	return r.store.Filter(func(rec core.Recipe) bool {
		return matchCriteria(names, matchAll, rec.HasIngredient)
	}), nil
}

// FindManyByIDs returns recipes in the order of ids, skipping unknown and repeated IDs.
func (r *RecipeRepository) FindManyByIDs(ctx context.Context, ids ...core.ID) ([]core.Recipe, error) {
	result := make([]core.Recipe, 0, len(ids))
	seen := make(map[core.ID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if recipe, ok := r.store.FindByID(id); ok {
			result = append(result, recipe)
		}
	}
	return result, nil
}

// matchCriteria applies ALL or ANY semantics of has over criteria.
func matchCriteria(criteria []string, matchAll bool, has func(string) bool) bool {
	for _, c := range criteria {
		found := has(c)
		if matchAll && !found {
			return false
		}
		if !matchAll && found {
			return true
		}
	}
	return matchAll
}

// nameMatcher builds a case-insensitive exact or substring filter over a name field.
func nameMatcher[T any](name string, partial bool, field func(T) string) func(T) bool {
	key := core.NameKey(name)
	return func(rec T) bool {
		candidate := core.NameKey(field(rec))
		if partial {
			return strings.Contains(candidate, key)
		}
		return candidate == key
	}
}
