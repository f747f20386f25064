package manager

import (
	"context"
	"testing"

	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/storage/collection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManagers(t *testing.T) (*RecipeManager, *RestaurantManager) {
	t.Helper()
	ctx := context.Background()
	recipes, restaurants, _ := collection.NewMemoryRepositories()
	require.NoError(t, recipes.Load(ctx))
	require.NoError(t, restaurants.Load(ctx))

	rm, err := NewRecipeManager(ctx, recipes)
	require.NoError(t, err)
	sm, err := NewRestaurantManager(ctx, restaurants, rm)
	require.NoError(t, err)
	return rm, sm
}

func bistro(name string, featured ...core.ID) core.Restaurant {
	return core.Restaurant{
		Name:              name,
		Address:           "1 Main St",
		Contact:           "555-0100",
		OpeningHours:      "9-17",
		FeaturedRecipeIds: featured,
	}
}

func TestNewRestaurantManager_RequiresDependencies(t *testing.T) {
	_, restaurants, _ := collection.NewMemoryRepositories()
	_, err := NewRestaurantManager(context.Background(), restaurants, nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)
}

func TestRestaurantManager_AddRequiresExistingFeaturedRecipes(t *testing.T) {
	ctx := context.Background()
	rm, sm := newManagers(t)

	_, err := sm.AddRestaurant(ctx, bistro("Bistro", 7))
	assert.ErrorIs(t, err, ErrNotFound)

	soup, err := rm.AddRecipe(ctx, recipe("Soup"))
	require.NoError(t, err)

	added, err := sm.AddRestaurant(ctx, bistro("Bistro", soup.Id, soup.Id))
	require.NoError(t, err)
	assert.Equal(t, core.ID(1), added.Id)
	assert.Equal(t, []core.ID{soup.Id}, added.FeaturedRecipeIds)

	_, err = sm.AddRestaurant(ctx, bistro("BISTRO"))
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestRestaurantManager_FeatureAndUnfeature(t *testing.T) {
	ctx := context.Background()
	rm, sm := newManagers(t)

	soup, err := rm.AddRecipe(ctx, recipe("Soup"))
	require.NoError(t, err)
	place, err := sm.AddRestaurant(ctx, bistro("Bistro"))
	require.NoError(t, err)

	place, err = sm.FeatureRecipe(ctx, place.Id, soup.Id)
	require.NoError(t, err)
	assert.Equal(t, []core.ID{soup.Id}, place.FeaturedRecipeIds)

	place, err = sm.FeatureRecipe(ctx, place.Id, soup.Id)
	require.NoError(t, err)
	assert.Len(t, place.FeaturedRecipeIds, 1)

	_, err = sm.FeatureRecipe(ctx, place.Id, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	place, err = sm.UnfeatureRecipe(ctx, place.Id, soup.Id)
	require.NoError(t, err)
	assert.Empty(t, place.FeaturedRecipeIds)

	_, err = sm.UnfeatureRecipe(ctx, place.Id, soup.Id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRestaurantManager_DetachRecipe(t *testing.T) {
	ctx := context.Background()
	rm, sm := newManagers(t)

	soup, err := rm.AddRecipe(ctx, recipe("Soup"))
	require.NoError(t, err)
	pie, err := rm.AddRecipe(ctx, recipe("Pie"))
	require.NoError(t, err)
	_, err = sm.AddRestaurant(ctx, bistro("Bistro", soup.Id, pie.Id))
	require.NoError(t, err)
	_, err = sm.AddRestaurant(ctx, bistro("Diner", soup.Id))
	require.NoError(t, err)

	changed, err := sm.DetachRecipe(ctx, soup.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	featuring, err := sm.FindRestaurantsFeaturing(ctx, soup.Id)
	require.NoError(t, err)
	assert.Empty(t, featuring)

	got, err := sm.GetRestaurant(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []core.ID{pie.Id}, got.FeaturedRecipeIds)
}

func TestRestaurantManager_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	_, sm := newManagers(t)

	a, err := sm.AddRestaurant(ctx, bistro("Bistro"))
	require.NoError(t, err)
	b, err := sm.AddRestaurant(ctx, bistro("Diner"))
	require.NoError(t, err)

	b.Name = "bistro"
	_, err = sm.UpdateRestaurant(ctx, b)
	assert.ErrorIs(t, err, ErrDuplicateName)

	a.Address = ""
	_, err = sm.UpdateRestaurant(ctx, a)
	assert.ErrorIs(t, err, core.ErrEmptyAddress)

	require.NoError(t, sm.DeleteRestaurant(ctx, a.Id))
	_, err = sm.UpdateRestaurant(ctx, b)
	require.NoError(t, err)

	got, err := sm.FindRestaurantsByName(ctx, "BIS", true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.Id, got[0].Id)

	assert.ErrorIs(t, sm.DeleteRestaurant(ctx, a.Id), ErrNotFound)
}
