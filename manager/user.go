package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/storage"
)

// UserManager enforces username uniqueness and last-admin protection and
// authenticates users.
type UserManager struct {
	repo   storage.UserRepository
	names  nameIndex
	logger *slog.Logger
}

// NewUserManager creates a user manager and builds its username index from
// the users already loaded into repo.
func NewUserManager(ctx context.Context, repo storage.UserRepository, opts ...Option) (*UserManager, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	s, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	m := &UserManager{
		repo:   repo,
		logger: s.logger,
	}
	if err := m.Reindex(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// Reindex rebuilds the username index from the repository.
func (m *UserManager) Reindex(ctx context.Context) error {
	users, err := m.repo.FindAll(ctx)
	if err != nil {
		return err
	}
	m.names = nameIndex{}
	for _, u := range users {
		if id, taken := m.names.lookup(u.Username); taken {
			m.logger.Warn("stored users share a username", "username", u.Username, "id", u.Id, "indexedId", id)
			continue
		}
		m.names.put(u.Username, u.Id)
	}
	return nil
}

// AddUser creates a user with a digested password.
// Usernames are trimmed and unique regardless of case.
func (m *UserManager) AddUser(ctx context.Context, username, password string, role core.Role) (core.User, error) {
	username = strings.TrimSpace(username)
	user := core.User{Username: username, Password: password, Role: role}
	if err := core.ValidateUser(&user); err != nil {
		return core.User{}, err
	}
	if _, taken := m.names.lookup(username); taken {
		return core.User{}, fmt.Errorf("%w: user %q", ErrDuplicateName, username)
	}
	digest, err := core.HashPassword(password)
	if err != nil {
		return core.User{}, err
	}
	user.Password = digest

	id, err := m.repo.Save(ctx, user)
	if err != nil {
		m.logger.Error("failed to save user", "username", username, "err", err)
		return core.User{}, err
	}
	stored, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return core.User{}, err
	}
	m.names.put(stored.Username, stored.Id)
	m.logger.Debug("user added", "id", stored.Id, "username", stored.Username, "role", stored.Role)
	return stored, nil
}

// Bootstrap creates the first Admin. It fails with ErrAlreadyBootstrapped
// once any user exists.
func (m *UserManager) Bootstrap(ctx context.Context, username, password string) (core.User, error) {
	users, err := m.repo.FindAll(ctx)
	if err != nil {
		return core.User{}, err
	}
	if len(users) > 0 {
		return core.User{}, ErrAlreadyBootstrapped
	}
	return m.AddUser(ctx, username, password, core.RoleAdmin)
}

// UpdateUser replaces an existing user. A clear-text password is digested
// before saving; demoting the last Admin fails with ErrLastAdmin.
func (m *UserManager) UpdateUser(ctx context.Context, user core.User) (core.User, error) {
	existing, err := m.GetUser(ctx, user.Id)
	if err != nil {
		return core.User{}, err
	}
	user.Username = strings.TrimSpace(user.Username)
	if err := core.ValidateUser(&user); err != nil {
		return core.User{}, err
	}
	if m.names.conflicts(user.Username, user.Id) {
		return core.User{}, fmt.Errorf("%w: user %q", ErrDuplicateName, user.Username)
	}
	if existing.IsAdmin() && !user.IsAdmin() {
		if err := m.ensureAnotherAdmin(ctx); err != nil {
			return core.User{}, err
		}
	}
	if !core.IsPasswordDigest(user.Password) {
		digest, err := core.HashPassword(user.Password)
		if err != nil {
			return core.User{}, err
		}
		user.Password = digest
	}
	return m.save(ctx, existing, user)
}

// SetRole changes a user's role.
func (m *UserManager) SetRole(ctx context.Context, id core.ID, role core.Role) (core.User, error) {
	if err := core.ValidateRole(role); err != nil {
		return core.User{}, err
	}
	existing, err := m.GetUser(ctx, id)
	if err != nil {
		return core.User{}, err
	}
	updated := existing
	updated.Role = role
	return m.UpdateUser(ctx, updated)
}

// ChangePassword replaces a user's password with a digest of password.
func (m *UserManager) ChangePassword(ctx context.Context, id core.ID, password string) (core.User, error) {
	if password == "" {
		return core.User{}, fmt.Errorf("%w: %w", core.ErrInvalidUser, core.ErrEmptyPassword)
	}
	existing, err := m.GetUser(ctx, id)
	if err != nil {
		return core.User{}, err
	}
	digest, err := core.HashPassword(password)
	if err != nil {
		return core.User{}, err
	}
	updated := existing
	updated.Password = digest
	return m.save(ctx, existing, updated)
}

// DeleteUser removes a user. Deleting the last Admin fails with ErrLastAdmin.
func (m *UserManager) DeleteUser(ctx context.Context, id core.ID) error {
	existing, err := m.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if existing.IsAdmin() {
		if err := m.ensureAnotherAdmin(ctx); err != nil {
			return err
		}
	}
	if err := m.repo.Remove(ctx, id); err != nil {
		m.logger.Error("failed to delete user", "id", id, "err", err)
		return err
	}
	m.names.drop(existing.Username, existing.Id)
	return nil
}

// GetUser retrieves a user by ID.
func (m *UserManager) GetUser(ctx context.Context, id core.ID) (core.User, error) {
	user, err := m.repo.FindByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return core.User{}, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return user, err
}

// ListUsers returns every user in insertion order.
func (m *UserManager) ListUsers(ctx context.Context) ([]core.User, error) {
	return m.repo.FindAll(ctx)
}

// FindUserByUsername retrieves a user by exact username.
func (m *UserManager) FindUserByUsername(ctx context.Context, username string) (core.User, error) {
	user, err := m.repo.FindByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return core.User{}, fmt.Errorf("%w: user %q", ErrNotFound, username)
	}
	return user, err
}

// Authenticate returns the user matching username and password.
// Unknown usernames and wrong passwords both fail with ErrInvalidCredentials.
func (m *UserManager) Authenticate(ctx context.Context, username, password string) (core.User, error) {
	user, err := m.repo.FindByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return core.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return core.User{}, err
	}
	if !core.VerifyPassword(user.Password, password) {
		return core.User{}, ErrInvalidCredentials
	}
	if !core.IsPasswordDigest(user.Password) {
		m.logger.Warn("user has a clear-text password; reset it with 'user passwd'", "username", user.Username)
	}
	return user, nil
}

func (m *UserManager) ensureAnotherAdmin(ctx context.Context) error {
	admins, err := m.repo.CountByRole(ctx, core.RoleAdmin)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return ErrLastAdmin
	}
	return nil
}

func (m *UserManager) save(ctx context.Context, existing, updated core.User) (core.User, error) {
	if _, err := m.repo.Save(ctx, updated); err != nil {
		m.logger.Error("failed to update user", "id", updated.Id, "err", err)
		return core.User{}, err
	}
	stored, err := m.repo.FindByID(ctx, updated.Id)
	if err != nil {
		return core.User{}, err
	}
	m.names.drop(existing.Username, existing.Id)
	m.names.put(stored.Username, stored.Id)
	return stored, nil
}
