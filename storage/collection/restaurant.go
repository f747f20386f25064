package collection

import (
	"context"
	"fmt"

	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/storage"
)

// RestaurantRepository implements storage.RestaurantRepository over a JSON document collection.
type RestaurantRepository struct {
	store *Collection[core.Restaurant]
}

var _ storage.RestaurantRepository = (*RestaurantRepository)(nil)

// NewRestaurantRepository creates a RestaurantRepository persisting through p.
// Call Load before use.
func NewRestaurantRepository(p storage.Persister, opts ...Option) *RestaurantRepository {
	return &RestaurantRepository{store: New(RestaurantCodec, p, opts...)}
}

// Load reads the stored restaurants.
func (r *RestaurantRepository) Load(ctx context.Context) error {
	return r.store.Load(ctx)
}

// Close releases the persister.
func (r *RestaurantRepository) Close() error {
	return r.store.Close()
}

// FindByID retrieves a single restaurant by ID.
func (r *RestaurantRepository) FindByID(ctx context.Context, id core.ID) (core.Restaurant, error) {
	restaurant, ok := r.store.FindByID(id)
	if !ok {
		return core.Restaurant{}, fmt.Errorf("%w: restaurant %d", storage.ErrNotFound, id)
	}
	return restaurant, nil
}

// FindAll returns every restaurant in insertion order.
func (r *RestaurantRepository) FindAll(ctx context.Context) ([]core.Restaurant, error) {
	return r.store.FindAll(), nil
}

// Save inserts or replaces a restaurant and returns its ID.
func (r *RestaurantRepository) Save(ctx context.Context, restaurant core.Restaurant) (core.ID, error) {
	return r.store.Save(ctx, restaurant)
}

// Remove deletes a restaurant by ID.
func (r *RestaurantRepository) Remove(ctx context.Context, id core.ID) error {
	return r.store.Remove(ctx, id)
}

// NextID returns the ID the next new restaurant will receive.
func (r *RestaurantRepository) NextID() core.ID {
	return r.store.NextID()
}

// SetNextID pre-seeds the restaurant ID sequence.
func (r *RestaurantRepository) SetNextID(next core.ID) {
	r.store.SetNextID(next)
}

// FindByName matches restaurant names case-insensitively.
func (r *RestaurantRepository) FindByName(ctx context.Context, name string, partial bool) ([]core.Restaurant, error) {
	return r.store.Filter(nameMatcher(name, partial, func(rec core.Restaurant) string { return rec.Name })), nil
}

// FindByFeaturedRecipe returns restaurants that feature recipeID.
func (r *RestaurantRepository) FindByFeaturedRecipe(ctx context.Context, recipeID core.ID) ([]core.Restaurant, error) {
	return r.store.Filter(func(rec core.Restaurant) bool {
		return rec.HasFeaturedRecipe(recipeID)
	}), nil
}
