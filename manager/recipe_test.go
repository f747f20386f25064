package manager

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/storage"
	"github.com/poiesic/cookbook/storage/collection"
	"github.com/poiesic/cookbook/storage/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipe(name string, tags ...string) core.Recipe {
	return core.Recipe{
		Name:        name,
		Ingredients: []core.Ingredient{{Name: "Salt", Quantity: "1 tsp"}},
		Steps:       []string{"Cook"},
		CookingTime: 30,
		Difficulty:  core.DifficultyMedium,
		Tags:        tags,
	}
}

func names(recipes []core.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Name
	}
	return out
}

func newRecipeManager(t *testing.T) (*RecipeManager, *collection.MemoryPersister) {
	t.Helper()
	ctx := context.Background()
	p := collection.NewMemoryPersister()
	repo := collection.NewRecipeRepository(p)
	require.NoError(t, repo.Load(ctx))
	m, err := NewRecipeManager(ctx, repo)
	require.NoError(t, err)
	return m, p
}

func TestNewRecipeManager_RequiresRepository(t *testing.T) {
	_, err := NewRecipeManager(context.Background(), nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)
}

func TestRecipeManager_SoupStewPieScenario(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "recipes.json")

	open := func() *RecipeManager {
		p, err := file.NewPersister(path)
		require.NoError(t, err)
		repo := collection.NewRecipeRepository(p)
		require.NoError(t, repo.Load(ctx))
		m, err := NewRecipeManager(ctx, repo)
		require.NoError(t, err)
		return m
	}

	m := open()
	soup, err := m.AddRecipe(ctx, recipe("Soup", "veg"))
	require.NoError(t, err)
	_, err = m.AddRecipe(ctx, recipe("Stew", "meat"))
	require.NoError(t, err)
	_, err = m.AddRecipe(ctx, recipe("Pie", "veg", "dessert"))
	require.NoError(t, err)

	got, err := m.FindRecipesByTags(ctx, []string{"veg"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Soup", "Pie"}, names(got))

	require.NoError(t, m.DeleteRecipe(ctx, soup.Id))

	got, err = m.FindRecipesByTags(ctx, []string{"veg"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pie"}, names(got))

	reopened := open()
	got, err = reopened.FindRecipesByTags(ctx, []string{"veg"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pie"}, names(got))
}

func TestRecipeManager_DuplicateNameLeavesRepositoryUntouched(t *testing.T) {
	ctx := context.Background()
	m, p := newRecipeManager(t)

	_, err := m.AddRecipe(ctx, recipe("Soup"))
	require.NoError(t, err)
	writes := p.Writes()

	_, err = m.AddRecipe(ctx, recipe("  SOUP "))
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.True(t, IsBusinessError(err))
	assert.Equal(t, writes, p.Writes())

	all, err := m.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRecipeManager_UpdateRename(t *testing.T) {
	ctx := context.Background()
	m, _ := newRecipeManager(t)

	soup, err := m.AddRecipe(ctx, recipe("Soup", "veg"))
	require.NoError(t, err)
	stew, err := m.AddRecipe(ctx, recipe("Stew", "meat"))
	require.NoError(t, err)

	stew.Name = "soup"
	_, err = m.UpdateRecipe(ctx, stew)
	assert.ErrorIs(t, err, ErrDuplicateName)

	soup.Name = "Tomato Soup"
	soup.Tags = []string{"veg", "red", "red"}
	updated, err := m.UpdateRecipe(ctx, soup)
	require.NoError(t, err)
	assert.Equal(t, []string{"veg", "red"}, updated.Tags)

	got, err := m.FindRecipesByName(ctx, "soup", false)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = m.FindRecipesByName(ctx, "tomato soup", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tomato Soup"}, names(got))

	stew.Name = "Soup"
	_, err = m.UpdateRecipe(ctx, stew)
	require.NoError(t, err)

	got, err = m.FindRecipesByTag(ctx, "red")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tomato Soup"}, names(got))
}

func TestRecipeManager_UpdateUnknownRecipe(t *testing.T) {
	m, _ := newRecipeManager(t)

	r := recipe("Ghost")
	r.Id = 42
	_, err := m.UpdateRecipe(context.Background(), r)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.DeleteRecipe(context.Background(), 42), ErrNotFound)
}

func TestRecipeManager_ValidationErrorsPassThrough(t *testing.T) {
	m, p := newRecipeManager(t)

	r := recipe("Soup")
	r.CookingTime = -5
	_, err := m.AddRecipe(context.Background(), r)
	assert.ErrorIs(t, err, core.ErrNegativeCookingTime)
	assert.False(t, IsBusinessError(err))
	assert.Zero(t, p.Writes())
}

func TestRecipeManager_FindByTagsAllAndAny(t *testing.T) {
	ctx := context.Background()
	m, _ := newRecipeManager(t)
	for _, r := range []core.Recipe{recipe("R1", "A", "B"), recipe("R2", "B", "C"), recipe("R3", "A")} {
		_, err := m.AddRecipe(ctx, r)
		require.NoError(t, err)
	}

	tests := []struct {
		name     string
		tags     []string
		matchAll bool
		want     []string
	}{
		{"all A B", []string{"A", "B"}, true, []string{"R1"}},
		{"any A C", []string{"A", "C"}, false, []string{"R1", "R2", "R3"}},
		{"all with unknown tag", []string{"A", "Z"}, true, []string{}},
		{"any with unknown tag", []string{"Z", "C"}, false, []string{"R2"}},
		{"empty", []string{}, false, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.FindRecipesByTags(ctx, tt.tags, tt.matchAll)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}

	assert.Equal(t, []TagCount{{"A", 2}, {"B", 2}, {"C", 1}}, m.Tags())
}

func TestRecipeManager_FindByIngredients(t *testing.T) {
	ctx := context.Background()
	m, _ := newRecipeManager(t)

	r := recipe("Omelette")
	r.Ingredients = []core.Ingredient{{Name: "Egg", Quantity: "3"}, {Name: "Salt", Quantity: "pinch"}}
	_, err := m.AddRecipe(ctx, r)
	require.NoError(t, err)
	_, err = m.AddRecipe(ctx, recipe("Broth"))
	require.NoError(t, err)

	got, err := m.FindRecipesByIngredients(ctx, []string{"egg", "salt"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Omelette"}, names(got))

	got, err = m.FindRecipesByIngredients(ctx, []string{"egg", "salt"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Omelette", "Broth"}, names(got))
}

func TestRecipeManager_PartialNameSearch(t *testing.T) {
	ctx := context.Background()
	m, _ := newRecipeManager(t)
	for _, n := range []string{"Pumpkin Pie", "Apple Pie", "Stew"} {
		_, err := m.AddRecipe(ctx, recipe(n))
		require.NoError(t, err)
	}

	got, err := m.FindRecipesByName(ctx, "PIE", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pumpkin Pie", "Apple Pie"}, names(got))
}

func TestRecipeManager_FailedSaveKeepsIndexes(t *testing.T) {
	ctx := context.Background()
	m, p := newRecipeManager(t)

	soup, err := m.AddRecipe(ctx, recipe("Soup", "veg"))
	require.NoError(t, err)

	p.WriteErr = errors.New("disk full")

	_, err = m.AddRecipe(ctx, recipe("Stew", "meat"))
	assert.ErrorIs(t, err, storage.ErrPersistFailed)
	assert.False(t, IsBusinessError(err))

	assert.Error(t, m.DeleteRecipe(ctx, soup.Id))

	p.WriteErr = nil
	_, err = m.AddRecipe(ctx, recipe("Stew", "meat"))
	require.NoError(t, err)

	got, err := m.FindRecipesByTags(ctx, []string{"veg"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Soup"}, names(got))
}

func TestRecipeManager_ReindexSkipsDuplicateStoredNames(t *testing.T) {
	ctx := context.Background()
	doc := `{"recipes": [
		{"id": 1, "name": "Soup", "cookingTime": 5, "difficulty": "Easy", "tags": ["veg"]},
		{"id": 2, "name": "soup", "cookingTime": 5, "difficulty": "Easy", "tags": ["veg"]}
	]}`
	repo := collection.NewRecipeRepository(collection.NewMemoryPersisterWith([]byte(doc)))
	require.NoError(t, repo.Load(ctx))

	m, err := NewRecipeManager(ctx, repo)
	require.NoError(t, err)

	got, err := m.FindRecipesByName(ctx, "SOUP", false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, core.ID(1), got[0].Id)

	got, err = m.FindRecipesByTags(ctx, []string{"veg"}, true)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
