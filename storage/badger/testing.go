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

package badger

import (
	"context"

	"github.com/poiesic/cookbook/storage/collection"
)

// NewMemoryRepositories creates recipe, restaurant and user repositories
// backed by an in-memory BadgerDB for testing. The repositories are loaded.
// Caller must close the backend when done.
func NewMemoryRepositories() (*collection.RecipeRepository, *collection.RestaurantRepository, *collection.UserRepository, *Backend, error) {
	backend, err := OpenBackend("", true, nil)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	recipes := collection.NewRecipeRepository(NewDocumentPersister(backend, collection.RecipesField))
	restaurants := collection.NewRestaurantRepository(NewDocumentPersister(backend, collection.RestaurantsField))
	users := collection.NewUserRepository(NewDocumentPersister(backend, collection.UsersField))

	ctx := context.Background()
	for _, repo := range []interface{ Load(context.Context) error }{recipes, restaurants, users} {
		if err := repo.Load(ctx); err != nil {
			backend.Close()
			return nil, nil, nil, nil, err
		}
	}
	return recipes, restaurants, users, backend, nil
}
