package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/storage"
)

// RecipeManager enforces recipe name uniqueness and answers tag queries
// from in-memory indexes.
type RecipeManager struct {
	repo   storage.RecipeRepository
	names  nameIndex
	tags   tagIndex
	logger *slog.Logger
}

// NewRecipeManager creates a recipe manager and builds its indexes from the
// recipes already loaded into repo.
func NewRecipeManager(ctx context.Context, repo storage.RecipeRepository, opts ...Option) (*RecipeManager, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	s, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	m := &RecipeManager{
		repo:   repo,
		logger: s.logger,
	}
	if err := m.Reindex(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// Reindex rebuilds the indexes from the repository.
// When stored recipes share a name, the first one keeps the index entry.
func (m *RecipeManager) Reindex(ctx context.Context) error {
	recipes, err := m.repo.FindAll(ctx)
	if err != nil {
		return err
	}
	m.names = nameIndex{}
	m.tags = tagIndex{}
	for _, r := range recipes {
		if id, taken := m.names.lookup(r.Name); taken {
			m.logger.Warn("stored recipes share a name", "name", r.Name, "id", r.Id, "indexedId", id)
		} else {
			m.names.put(r.Name, r.Id)
		}
		m.tags.add(r.Id, r.Tags)
	}
	m.logger.Debug("recipe indexes built", "recipes", len(recipes), "tags", len(m.tags))
	return nil
}

// AddRecipe validates and stores a new recipe, returning it with its assigned ID.
// The repository is not touched when the name is already taken.
func (m *RecipeManager) AddRecipe(ctx context.Context, recipe core.Recipe) (core.Recipe, error) {
	recipe.Id = 0
	recipe.Tags = core.UniqueStrings(recipe.Tags)
	if err := core.ValidateRecipe(&recipe); err != nil {
		return core.Recipe{}, err
	}
	if _, taken := m.names.lookup(recipe.Name); taken {
		return core.Recipe{}, fmt.Errorf("%w: recipe %q", ErrDuplicateName, recipe.Name)
	}

	id, err := m.repo.Save(ctx, recipe)
	if err != nil {
		m.logger.Error("failed to save recipe", "name", recipe.Name, "err", err)
		return core.Recipe{}, err
	}
	stored, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return core.Recipe{}, err
	}

	m.names.put(stored.Name, stored.Id)
	m.tags.add(stored.Id, stored.Tags)
	m.logger.Debug("recipe added", "id", stored.Id, "name", stored.Name)
	return stored, nil
}

// UpdateRecipe replaces an existing recipe. Renaming onto another recipe's
// name fails with ErrDuplicateName.
func (m *RecipeManager) UpdateRecipe(ctx context.Context, recipe core.Recipe) (core.Recipe, error) {
	existing, err := m.GetRecipe(ctx, recipe.Id)
	if err != nil {
		return core.Recipe{}, err
	}
	recipe.Tags = core.UniqueStrings(recipe.Tags)
	if err := core.ValidateRecipe(&recipe); err != nil {
		return core.Recipe{}, err
	}
	if m.names.conflicts(recipe.Name, recipe.Id) {
		return core.Recipe{}, fmt.Errorf("%w: recipe %q", ErrDuplicateName, recipe.Name)
	}

	if _, err := m.repo.Save(ctx, recipe); err != nil {
		m.logger.Error("failed to update recipe", "id", recipe.Id, "err", err)
		return core.Recipe{}, err
	}
	stored, err := m.repo.FindByID(ctx, recipe.Id)
	if err != nil {
		return core.Recipe{}, err
	}

	m.names.drop(existing.Name, existing.Id)
	m.names.put(stored.Name, stored.Id)
	m.tags.remove(existing.Id, existing.Tags)
	m.tags.add(stored.Id, stored.Tags)
	m.logger.Debug("recipe updated", "id", stored.Id, "name", stored.Name)
	return stored, nil
}

// DeleteRecipe removes a recipe and its index entries.
func (m *RecipeManager) DeleteRecipe(ctx context.Context, id core.ID) error {
	existing, err := m.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if err := m.repo.Remove(ctx, id); err != nil {
		m.logger.Error("failed to delete recipe", "id", id, "err", err)
		return err
	}
	m.names.drop(existing.Name, existing.Id)
	m.tags.remove(existing.Id, existing.Tags)
	m.logger.Debug("recipe deleted", "id", id, "name", existing.Name)
	return nil
}

// GetRecipe retrieves a recipe by ID.
func (m *RecipeManager) GetRecipe(ctx context.Context, id core.ID) (core.Recipe, error) {
	recipe, err := m.repo.FindByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return core.Recipe{}, fmt.Errorf("%w: recipe %d", ErrNotFound, id)
	}
	return recipe, err
}

// ListRecipes returns every recipe in insertion order.
func (m *RecipeManager) ListRecipes(ctx context.Context) ([]core.Recipe, error) {
	return m.repo.FindAll(ctx)
}

// FindRecipesByName matches names case-insensitively. Exact matches come
// from the name index; partial matches scan its keys.
func (m *RecipeManager) FindRecipesByName(ctx context.Context, name string, partial bool) ([]core.Recipe, error) {
	if partial {
		return m.repo.FindManyByIDs(ctx, m.names.containing(name)...)
	}
	id, ok := m.names.lookup(name)
	if !ok {
		return []core.Recipe{}, nil
	}
	return m.repo.FindManyByIDs(ctx, id)
}

// FindRecipesByTag returns recipes carrying tag.
func (m *RecipeManager) FindRecipesByTag(ctx context.Context, tag string) ([]core.Recipe, error) {
	return m.FindRecipesByTags(ctx, []string{tag}, true)
}

// FindRecipesByTags returns recipes carrying every tag (matchAll) or any
// of them, in ascending ID order.
func (m *RecipeManager) FindRecipesByTags(ctx context.Context, tags []string, matchAll bool) ([]core.Recipe, error) {
	if len(tags) == 0 {
		return []core.Recipe{}, nil
	}
	var ids idSet
	if matchAll {
		ids = m.tags.intersection(tags)
	} else {
		ids = m.tags.union(tags)
	}
	if len(ids) == 0 {
		return []core.Recipe{}, nil
	}
	return m.repo.FindManyByIDs(ctx, ids.sorted()...)
}

// FindRecipesByIngredients returns recipes using every named ingredient
// (matchAll) or any of them.
func (m *RecipeManager) FindRecipesByIngredients(ctx context.Context, names []string, matchAll bool) ([]core.Recipe, error) {
	return m.repo.FindByIngredients(ctx, names, matchAll)
}

// Tags returns every tag in use with its recipe count, sorted by tag.
func (m *RecipeManager) Tags() []TagCount {
	return m.tags.counts()
}
