package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/storage"
)

// RecipeLookup resolves recipe IDs referenced by restaurants.
// *RecipeManager implements it.
type RecipeLookup interface {
	GetRecipe(ctx context.Context, id core.ID) (core.Recipe, error)
}

// RestaurantManager enforces restaurant name uniqueness and keeps featured
// recipes pointing at existing recipes.
type RestaurantManager struct {
	repo    storage.RestaurantRepository
	recipes RecipeLookup
	names   nameIndex
	logger  *slog.Logger
}

// NewRestaurantManager creates a restaurant manager and builds its name index
// from the restaurants already loaded into repo.
func NewRestaurantManager(ctx context.Context, repo storage.RestaurantRepository, recipes RecipeLookup, opts ...Option) (*RestaurantManager, error) {
	if repo == nil || recipes == nil {
		return nil, ErrRepositoryRequired
	}
	s, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	m := &RestaurantManager{
		repo:    repo,
		recipes: recipes,
		logger:  s.logger,
	}
	if err := m.Reindex(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// Reindex rebuilds the name index from the repository.
func (m *RestaurantManager) Reindex(ctx context.Context) error {
	restaurants, err := m.repo.FindAll(ctx)
	if err != nil {
		return err
	}
	m.names = nameIndex{}
	for _, r := range restaurants {
		if id, taken := m.names.lookup(r.Name); taken {
			m.logger.Warn("stored restaurants share a name", "name", r.Name, "id", r.Id, "indexedId", id)
			continue
		}
		m.names.put(r.Name, r.Id)
	}
	return nil
}

// AddRestaurant validates and stores a new restaurant. Every featured recipe must exist.
func (m *RestaurantManager) AddRestaurant(ctx context.Context, restaurant core.Restaurant) (core.Restaurant, error) {
	restaurant.Id = 0
	if err := m.prepare(ctx, &restaurant); err != nil {
		return core.Restaurant{}, err
	}
	if _, taken := m.names.lookup(restaurant.Name); taken {
		return core.Restaurant{}, fmt.Errorf("%w: restaurant %q", ErrDuplicateName, restaurant.Name)
	}

	id, err := m.repo.Save(ctx, restaurant)
	if err != nil {
		m.logger.Error("failed to save restaurant", "name", restaurant.Name, "err", err)
		return core.Restaurant{}, err
	}
	stored, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return core.Restaurant{}, err
	}
	m.names.put(stored.Name, stored.Id)
	m.logger.Debug("restaurant added", "id", stored.Id, "name", stored.Name)
	return stored, nil
}

// UpdateRestaurant replaces an existing restaurant.
func (m *RestaurantManager) UpdateRestaurant(ctx context.Context, restaurant core.Restaurant) (core.Restaurant, error) {
	existing, err := m.GetRestaurant(ctx, restaurant.Id)
	if err != nil {
		return core.Restaurant{}, err
	}
	if err := m.prepare(ctx, &restaurant); err != nil {
		return core.Restaurant{}, err
	}
	if m.names.conflicts(restaurant.Name, restaurant.Id) {
		return core.Restaurant{}, fmt.Errorf("%w: restaurant %q", ErrDuplicateName, restaurant.Name)
	}
	return m.save(ctx, existing, restaurant)
}

// DeleteRestaurant removes a restaurant.
func (m *RestaurantManager) DeleteRestaurant(ctx context.Context, id core.ID) error {
	existing, err := m.GetRestaurant(ctx, id)
	if err != nil {
		return err
	}
	if err := m.repo.Remove(ctx, id); err != nil {
		m.logger.Error("failed to delete restaurant", "id", id, "err", err)
		return err
	}
	m.names.drop(existing.Name, existing.Id)
	return nil
}

// GetRestaurant retrieves a restaurant by ID.
func (m *RestaurantManager) GetRestaurant(ctx context.Context, id core.ID) (core.Restaurant, error) {
	restaurant, err := m.repo.FindByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return core.Restaurant{}, fmt.Errorf("%w: restaurant %d", ErrNotFound, id)
	}
	return restaurant, err
}

// ListRestaurants returns every restaurant in insertion order.
func (m *RestaurantManager) ListRestaurants(ctx context.Context) ([]core.Restaurant, error) {
	return m.repo.FindAll(ctx)
}

// FindRestaurantsByName matches names case-insensitively, exactly or as a substring.
func (m *RestaurantManager) FindRestaurantsByName(ctx context.Context, name string, partial bool) ([]core.Restaurant, error) {
	return m.repo.FindByName(ctx, name, partial)
}

// FindRestaurantsFeaturing returns restaurants featuring recipeID.
func (m *RestaurantManager) FindRestaurantsFeaturing(ctx context.Context, recipeID core.ID) ([]core.Restaurant, error) {
	return m.repo.FindByFeaturedRecipe(ctx, recipeID)
}

// FeatureRecipe adds an existing recipe to a restaurant's featured list.
// Featuring an already featured recipe is a no-op.
func (m *RestaurantManager) FeatureRecipe(ctx context.Context, restaurantID, recipeID core.ID) (core.Restaurant, error) {
	existing, err := m.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return core.Restaurant{}, err
	}
	if _, err := m.recipes.GetRecipe(ctx, recipeID); err != nil {
		return core.Restaurant{}, err
	}
	updated := existing.Clone()
	if !updated.AddFeaturedRecipe(recipeID) {
		return existing, nil
	}
	return m.save(ctx, existing, updated)
}

// UnfeatureRecipe removes a recipe from a restaurant's featured list.
func (m *RestaurantManager) UnfeatureRecipe(ctx context.Context, restaurantID, recipeID core.ID) (core.Restaurant, error) {
	existing, err := m.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return core.Restaurant{}, err
	}
	updated := existing.Clone()
	if !updated.RemoveFeaturedRecipe(recipeID) {
		return core.Restaurant{}, fmt.Errorf("%w: recipe %d is not featured by restaurant %d", ErrNotFound, recipeID, restaurantID)
	}
	return m.save(ctx, existing, updated)
}

// DetachRecipe removes recipeID from every restaurant featuring it and
// returns how many restaurants changed.
func (m *RestaurantManager) DetachRecipe(ctx context.Context, recipeID core.ID) (int, error) {
	featuring, err := m.repo.FindByFeaturedRecipe(ctx, recipeID)
	if err != nil {
		return 0, err
	}
	for i, existing := range featuring {
		updated := existing.Clone()
		updated.RemoveFeaturedRecipe(recipeID)
		if _, err := m.save(ctx, existing, updated); err != nil {
			return i, err
		}
	}
	return len(featuring), nil
}

// prepare validates restaurant and checks its featured recipes exist.
func (m *RestaurantManager) prepare(ctx context.Context, restaurant *core.Restaurant) error {
	featured := restaurant.FeaturedRecipeIds
	restaurant.FeaturedRecipeIds = nil
	for _, id := range featured {
		restaurant.AddFeaturedRecipe(id)
	}
	if err := core.ValidateRestaurant(restaurant); err != nil {
		return err
	}
	for _, id := range restaurant.FeaturedRecipeIds {
		if _, err := m.recipes.GetRecipe(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (m *RestaurantManager) save(ctx context.Context, existing, updated core.Restaurant) (core.Restaurant, error) {
	if _, err := m.repo.Save(ctx, updated); err != nil {
		m.logger.Error("failed to update restaurant", "id", updated.Id, "err", err)
		return core.Restaurant{}, err
	}
	stored, err := m.repo.FindByID(ctx, updated.Id)
	if err != nil {
		return core.Restaurant{}, err
	}
	m.names.drop(existing.Name, existing.Id)
	m.names.put(stored.Name, stored.Id)
	return stored, nil
}
