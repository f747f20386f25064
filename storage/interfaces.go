package storage

import (
	"context"
	"time"

	"github.com/poiesic/cookbook/core"
)

// Persister moves a whole collection document to and from durable storage.
// Implementations must replace the document atomically: a reader never
// observes a partially written document, and a failed write leaves the
// previous document intact.
type Persister interface {
	// ReadDocument returns the stored document.
	// Returns nil, nil if no document has been written yet.
	ReadDocument(ctx context.Context) ([]byte, error)

	// WriteDocument atomically replaces the stored document with data.
	WriteDocument(ctx context.Context, data []byte) error

	// Close releases resources held by the persister.
	Close() error
}

// Observer receives timing and outcome of collection operations.
// A nil Observer is valid and ignored.
type Observer interface {
	ObserveOperation(collection, operation string, elapsed time.Duration, err error)
}

// Repository provides the storage operations shared by every record kind.
// Records are returned by value; mutating a returned record has no effect
// until it is passed back to Save.
type Repository[T any] interface {
	// Load (re)reads the collection from its persister.
	// A missing document is not an error. Malformed documents return
	// ErrMalformedDocument and leave the collection empty.
	Load(ctx context.Context) error

	// FindByID retrieves a single record by ID.
	// Returns ErrNotFound if the record doesn't exist or id is not positive.
	FindByID(ctx context.Context, id core.ID) (T, error)

	// FindAll returns every record in insertion order.
	FindAll(ctx context.Context) ([]T, error)

	// Save inserts or replaces a record.
	// Records with ID <= 0 get the next ID. Records with a positive ID
	// replace the stored record with that ID, or are inserted as-is.
	// Returns the record's ID. On failure the collection is unchanged.
	Save(ctx context.Context, record T) (core.ID, error)

	// Remove deletes a record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	Remove(ctx context.Context, id core.ID) error

	// NextID returns the ID the next new record will receive.
	NextID() core.ID

	// SetNextID pre-seeds the ID sequence for bulk loads. Values that would
	// collide with existing records are raised to max(ID)+1.
	SetNextID(next core.ID)

	// Close releases the underlying persister.
	Close() error
}

// RecipeRepository provides operations for managing recipes.
type RecipeRepository interface {
	Repository[core.Recipe]

	// FindByName matches names case-insensitively.
	// If partial is true, name may appear anywhere in the recipe name.
	FindByName(ctx context.Context, name string, partial bool) ([]core.Recipe, error)

	// FindByTag returns recipes carrying tag (case-sensitive).
	FindByTag(ctx context.Context, tag string) ([]core.Recipe, error)

	// FindByTags returns recipes carrying every tag (matchAll) or any tag.
	// An empty tag list matches nothing.
	FindByTags(ctx context.Context, tags []string, matchAll bool) ([]core.Recipe, error)

	// FindByIngredients returns recipes using every ingredient (matchAll) or any.
	// Ingredient names compare case-insensitively. An empty list matches nothing.
	FindByIngredients(ctx context.Context, names []string, matchAll bool) ([]core.Recipe, error)

	// FindManyByIDs returns the recipes for ids in the order requested.
	// Unknown IDs are skipped (no error for missing records).
	FindManyByIDs(ctx context.Context, ids ...core.ID) ([]core.Recipe, error)
}

// RestaurantRepository provides operations for managing restaurants.
type RestaurantRepository interface {
	Repository[core.Restaurant]

	// FindByName matches names case-insensitively, exactly or as a substring.
	FindByName(ctx context.Context, name string, partial bool) ([]core.Restaurant, error)

	// FindByFeaturedRecipe returns restaurants featuring recipeID.
	FindByFeaturedRecipe(ctx context.Context, recipeID core.ID) ([]core.Restaurant, error)
}

// UserRepository provides operations for managing users.
type UserRepository interface {
	Repository[core.User]

	// FindByUsername finds a user by exact, case-sensitive username.
	// Returns ErrNotFound if no user matches.
	FindByUsername(ctx context.Context, username string) (core.User, error)

	// CountByRole returns the number of users holding role.
	CountByRole(ctx context.Context, role core.Role) (int, error)
}
