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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecipe indicates a Recipe failed validation.
	ErrInvalidRecipe = errors.New("invalid recipe")

	// ErrInvalidRestaurant indicates a Restaurant failed validation.
	ErrInvalidRestaurant = errors.New("invalid restaurant")

	// ErrInvalidUser indicates a User failed validation.
	ErrInvalidUser = errors.New("invalid user")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNegativeCookingTime indicates a negative CookingTime.
	ErrNegativeCookingTime = errors.New("cooking time cannot be negative")

	// ErrInvalidDifficulty indicates an unknown Difficulty value.
	ErrInvalidDifficulty = errors.New("difficulty must be one of Easy, Medium, Hard")

	// ErrEmptyIngredientName indicates an ingredient without a name.
	ErrEmptyIngredientName = errors.New("ingredient name cannot be empty")

	// ErrEmptyTag indicates a blank tag.
	ErrEmptyTag = errors.New("tag cannot be empty")

	// ErrEmptyAddress indicates the restaurant Address field is empty.
	ErrEmptyAddress = errors.New("address cannot be empty")

	// ErrEmptyContact indicates the restaurant Contact field is empty.
	ErrEmptyContact = errors.New("contact cannot be empty")

	// ErrInvalidFeaturedRecipe indicates a featured recipe reference with a non-positive ID.
	ErrInvalidFeaturedRecipe = errors.New("featured recipe id must be positive")

	// ErrEmptyUsername indicates the Username field is empty.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrEmptyPassword indicates the Password field is empty.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrInvalidRole indicates an unknown Role value.
	ErrInvalidRole = errors.New("role must be Normal or Admin")
)
