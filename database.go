// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package cookbook wires the storage drivers, repositories and managers
// into a single Database.
package cookbook

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/poiesic/cookbook/config"
	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/manager"
	"github.com/poiesic/cookbook/storage"
	"github.com/poiesic/cookbook/storage/badger"
	"github.com/poiesic/cookbook/storage/collection"
	"github.com/poiesic/cookbook/storage/file"
	"github.com/poiesic/cookbook/storage/sqlite"
)

// File and directory names under the data directory.
const (
	RecipesFile     = "recipes.json"
	RestaurantsFile = "restaurants.json"
	UsersFile       = "users.json"
	BadgerDir       = "badger"
	SQLiteFile      = "cookbook.db"
)

type Database struct {
	backend     io.Closer
	recipeRepo  *collection.RecipeRepository
	placeRepo   *collection.RestaurantRepository
	userRepo    *collection.UserRepository
	recipes     *manager.RecipeManager
	restaurants *manager.RestaurantManager
	users       *manager.UserManager
	logger      *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	driver   string
	logger   *slog.Logger
	observer storage.Observer
}

// WithDriver selects the storage driver. Default is config.DriverJSON.
func WithDriver(driver string) DatabaseOption {
	return func(o *databaseOptions) {
		o.driver = driver
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver reports every store operation to observer.
func WithObserver(observer storage.Observer) DatabaseOption {
	return func(o *databaseOptions) {
		o.observer = observer
	}
}

// NewDatabase opens the collections stored under dataDir, loads them and
// builds the managers' indexes. A malformed document aborts the open so
// that no later save can overwrite it.
func NewDatabase(ctx context.Context, dataDir string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		driver: config.DriverJSON,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	persisters, backend, err := openPersisters(dataDir, options)
	if err != nil {
		return nil, err
	}

	repoOpts := []collection.Option{collection.WithLogger(options.logger)}
	if options.observer != nil {
		repoOpts = append(repoOpts, collection.WithObserver(options.observer))
	}
	db := &Database{
		backend:    backend,
		recipeRepo: collection.NewRecipeRepository(persisters[0], repoOpts...),
		placeRepo:  collection.NewRestaurantRepository(persisters[1], repoOpts...),
		userRepo:   collection.NewUserRepository(persisters[2], repoOpts...),
		logger:     options.logger,
	}

	if err := db.load(ctx); err != nil {
		db.Close()
		return nil, err
	}
	options.logger.Debug("database opened", "driver", options.driver, "dataDir", dataDir)
	return db, nil
}

// openPersisters returns one persister per collection in recipe,
// restaurant, user order, plus the shared backend to close, if any.
func openPersisters(dataDir string, options *databaseOptions) ([3]storage.Persister, io.Closer, error) {
	var ps [3]storage.Persister
	switch options.driver {
	case config.DriverJSON:
		for i, name := range []string{RecipesFile, RestaurantsFile, UsersFile} {
			p, err := file.NewPersister(filepath.Join(dataDir, name), file.WithLogger(options.logger))
			if err != nil {
				return ps, nil, err
			}
			ps[i] = p
		}
		return ps, nil, nil

	case config.DriverBadger:
		backend, err := badger.OpenBackend(filepath.Join(dataDir, BadgerDir), false, options.logger)
		if err != nil {
			return ps, nil, err
		}
		for i, field := range fields() {
			ps[i] = badger.NewDocumentPersister(backend, field)
		}
		return ps, backend, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(filepath.Join(dataDir, SQLiteFile))
		if err != nil {
			return ps, nil, err
		}
		for i, field := range fields() {
			ps[i] = sqlite.NewPersister(db, field)
		}
		return ps, db, nil

	case config.DriverMemory:
		for i := range ps {
			ps[i] = collection.NewMemoryPersister()
		}
		return ps, nil, nil
	}
	return ps, nil, fmt.Errorf("%w: %q", storage.ErrUnknownDriver, options.driver)
}

func fields() []string {
	return []string{collection.RecipesField, collection.RestaurantsField, collection.UsersField}
}

func (db *Database) load(ctx context.Context) error {
	for _, repo := range []interface{ Load(context.Context) error }{db.recipeRepo, db.placeRepo, db.userRepo} {
		if err := repo.Load(ctx); err != nil {
			db.logger.Error("failed to load collection", "err", err)
			return err
		}
	}

	var err error
	managerOpts := []manager.Option{manager.WithLogger(db.logger)}
	if db.recipes, err = manager.NewRecipeManager(ctx, db.recipeRepo, managerOpts...); err != nil {
		return err
	}
	if db.restaurants, err = manager.NewRestaurantManager(ctx, db.placeRepo, db.recipes, managerOpts...); err != nil {
		return err
	}
	if db.users, err = manager.NewUserManager(ctx, db.userRepo, managerOpts...); err != nil {
		return err
	}
	return nil
}

func (db *Database) Close() error {
	var firstErr error
	for _, repo := range []io.Closer{db.recipeRepo, db.placeRepo, db.userRepo} {
		if err := repo.Close(); err != nil {
			db.logger.Error("error closing repository", "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if db.backend != nil {
		if err := db.backend.Close(); err != nil {
			db.logger.Error("error closing backend storage", "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (db *Database) Recipes() *manager.RecipeManager {
	return db.recipes
}

func (db *Database) Restaurants() *manager.RestaurantManager {
	return db.restaurants
}

func (db *Database) Users() *manager.UserManager {
	return db.users
}

// DeleteRecipe deletes a recipe and removes it from every restaurant featuring it.
func (db *Database) DeleteRecipe(ctx context.Context, id core.ID) error {
	if err := db.recipes.DeleteRecipe(ctx, id); err != nil {
		return err
	}
	detached, err := db.restaurants.DetachRecipe(ctx, id)
	if err != nil {
		return err
	}
	if detached > 0 {
		db.logger.Info("recipe removed from featured lists", "id", id, "restaurants", detached)
	}
	return nil
}
