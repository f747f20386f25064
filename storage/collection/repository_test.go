package collection

import (
	"context"
	"testing"

	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipeNames(recipes []core.Recipe) []string {
	names := make([]string, len(recipes))
	for i, r := range recipes {
		names[i] = r.Name
	}
	return names
}

func seedRecipes(t *testing.T) *RecipeRepository {
	t.Helper()
	ctx := context.Background()
	repo := NewRecipeRepository(NewMemoryPersister())
	require.NoError(t, repo.Load(ctx))

	r1 := newRecipe("Tomato Soup", "A", "B")
	r1.Ingredients = []core.Ingredient{{Name: "Tomato", Quantity: "4"}, {Name: "Salt", Quantity: "1 tsp"}}
	r2 := newRecipe("Beef Stew", "B", "C")
	r2.Ingredients = []core.Ingredient{{Name: "Beef", Quantity: "500g"}, {Name: "salt", Quantity: "pinch"}}
	r3 := newRecipe("Apple Pie", "A")
	r3.Ingredients = []core.Ingredient{{Name: "Apple", Quantity: "6"}}

	for _, r := range []core.Recipe{r1, r2, r3} {
		_, err := repo.Save(ctx, r)
		require.NoError(t, err)
	}
	return repo
}

func TestRecipeRepository_FindByTags(t *testing.T) {
	repo := seedRecipes(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		tags     []string
		matchAll bool
		want     []string
	}{
		{"all A and B", []string{"A", "B"}, true, []string{"Tomato Soup"}},
		{"any A or C", []string{"A", "C"}, false, []string{"Tomato Soup", "Beef Stew", "Apple Pie"}},
		{"any B", []string{"B"}, false, []string{"Tomato Soup", "Beef Stew"}},
		{"tags are case-sensitive", []string{"a"}, false, []string{}},
		{"empty criteria", nil, true, []string{}},
		{"unknown tag", []string{"Z"}, true, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindByTags(ctx, tt.tags, tt.matchAll)
			require.NoError(t, err)
			assert.Equal(t, tt.want, recipeNames(got))
		})
	}
}

func TestRecipeRepository_FindByTag(t *testing.T) {
	repo := seedRecipes(t)

	got, err := repo.FindByTag(context.Background(), "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"Beef Stew"}, recipeNames(got))
}

func TestRecipeRepository_FindByIngredients(t *testing.T) {
	repo := seedRecipes(t)
	ctx := context.Background()

	got, err := repo.FindByIngredients(ctx, []string{"SALT"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tomato Soup", "Beef Stew"}, recipeNames(got))

	got, err = repo.FindByIngredients(ctx, []string{"salt", "beef"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beef Stew"}, recipeNames(got))

	got, err = repo.FindByIngredients(ctx, []string{"apple", "beef"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beef Stew", "Apple Pie"}, recipeNames(got))
}

func TestRecipeRepository_FindByName(t *testing.T) {
	repo := seedRecipes(t)
	ctx := context.Background()

	got, err := repo.FindByName(ctx, "tomato soup", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tomato Soup"}, recipeNames(got))

	got, err = repo.FindByName(ctx, "tomato", false)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.FindByName(ctx, "S", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tomato Soup", "Beef Stew"}, recipeNames(got))
}

func TestRecipeRepository_FindManyByIDs(t *testing.T) {
	repo := seedRecipes(t)

	got, err := repo.FindManyByIDs(context.Background(), 3, 99, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple Pie", "Tomato Soup"}, recipeNames(got))
}

func TestRecipeRepository_FindByIDNotFound(t *testing.T) {
	repo := seedRecipes(t)
	ctx := context.Background()

	for _, id := range []core.ID{0, -1, 99} {
		_, err := repo.FindByID(ctx, id)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	}
	assert.ErrorIs(t, repo.Remove(ctx, 99), storage.ErrNotFound)
}

func TestRestaurantRepository_FindByFeaturedRecipe(t *testing.T) {
	ctx := context.Background()
	repo := NewRestaurantRepository(NewMemoryPersister())
	require.NoError(t, repo.Load(ctx))

	_, err := repo.Save(ctx, core.Restaurant{Name: "Bistro", Address: "1 Main", Contact: "555", FeaturedRecipeIds: []core.ID{1, 2}})
	require.NoError(t, err)
	_, err = repo.Save(ctx, core.Restaurant{Name: "Diner", Address: "2 Main", Contact: "556", FeaturedRecipeIds: []core.ID{2}})
	require.NoError(t, err)

	got, err := repo.FindByFeaturedRecipe(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.FindByFeaturedRecipe(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bistro", got[0].Name)

	got, err = repo.FindByName(ctx, "DINER", false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, core.ID(2), got[0].Id)
}

func TestUserRepository_FindByUsernameAndCountByRole(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewMemoryPersister())
	require.NoError(t, repo.Load(ctx))

	_, err := repo.Save(ctx, core.User{Username: "ann", Password: "x", Role: core.RoleAdmin})
	require.NoError(t, err)
	_, err = repo.Save(ctx, core.User{Username: "bob", Password: "y", Role: core.RoleNormal})
	require.NoError(t, err)

	u, err := repo.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, core.ID(2), u.Id)

	_, err = repo.FindByUsername(ctx, "BOB")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	admins, err := repo.CountByRole(ctx, core.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, admins)
}

func TestRestaurantAndUserRepositories_Lifecycle(t *testing.T) {
	ctx := context.Background()
	_, restaurants, users := NewMemoryRepositories()
	require.NoError(t, restaurants.Load(ctx))
	require.NoError(t, users.Load(ctx))

	restaurants.SetNextID(10)
	id, err := restaurants.Save(ctx, core.Restaurant{Name: "Bistro", Address: "1 Main St", Contact: "555"})
	require.NoError(t, err)
	assert.Equal(t, core.ID(10), id)
	assert.Equal(t, core.ID(11), restaurants.NextID())
	require.NoError(t, restaurants.Remove(ctx, id))
	assert.ErrorIs(t, restaurants.Remove(ctx, id), storage.ErrNotFound)

	uid, err := users.Save(ctx, core.User{Username: "root", Password: "pw", Role: core.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, core.ID(2), users.NextID())
	all, err := users.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, uid, all[0].Id)

	require.NoError(t, restaurants.Close())
	require.NoError(t, users.Close())
	assert.ErrorIs(t, users.Load(ctx), storage.ErrStorageClosed)
}
