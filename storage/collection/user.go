package collection

import (
	"context"
	"fmt"

	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/storage"
)

// UserRepository implements storage.UserRepository over a JSON document collection.
type UserRepository struct {
	store *Collection[core.User]
}

var _ storage.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a UserRepository persisting through p.
// Call Load before use.
func NewUserRepository(p storage.Persister, opts ...Option) *UserRepository {
	return &UserRepository{store: New(UserCodec, p, opts...)}
}

// Load reads the stored users.
func (r *UserRepository) Load(ctx context.Context) error {
	return r.store.Load(ctx)
}

// Close releases the persister.
func (r *UserRepository) Close() error {
	return r.store.Close()
}

// FindByID retrieves a single user by ID.
func (r *UserRepository) FindByID(ctx context.Context, id core.ID) (core.User, error) {
	user, ok := r.store.FindByID(id)
	if !ok {
		return core.User{}, fmt.Errorf("%w: user %d", storage.ErrNotFound, id)
	}
	return user, nil
}

// FindAll returns every user in insertion order.
func (r *UserRepository) FindAll(ctx context.Context) ([]core.User, error) {
	return r.store.FindAll(), nil
}

// Save inserts or replaces a user and returns its ID.
func (r *UserRepository) Save(ctx context.Context, user core.User) (core.ID, error) {
	return r.store.Save(ctx, user)
}

// Remove deletes a user by ID.
func (r *UserRepository) Remove(ctx context.Context, id core.ID) error {
	return r.store.Remove(ctx, id)
}

// NextID returns the ID the next new user will receive.
func (r *UserRepository) NextID() core.ID {
	return r.store.NextID()
}

// SetNextID pre-seeds the user ID sequence.
func (r *UserRepository) SetNextID(next core.ID) {
	r.store.SetNextID(next)
}

// FindByUsername finds a user by exact, case-sensitive username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (core.User, error) {
	matches := r.store.Filter(func(u core.User) bool {
		return u.Username == username
	})
	if len(matches) == 0 {
		return core.User{}, fmt.Errorf("%w: user %q", storage.ErrNotFound, username)
	}
	return matches[0], nil
}

// CountByRole returns the number of users holding role.
func (r *UserRepository) CountByRole(ctx context.Context, role core.Role) (int, error) {
	return len(r.store.Filter(func(u core.User) bool {
		return u.Role == role
	})), nil
}
