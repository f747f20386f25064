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

import (
	"fmt"
	"strings"
)

// ValidateRecipe validates a Recipe according to domain rules.
//
// Validation rules:
//   - Name must not be blank
//   - CookingTime must not be negative
//   - Difficulty must be Easy, Medium or Hard
//   - every ingredient must have a name
//   - tags must not be blank
//
// NOT validated:
//   - ID (0 is valid until the repository assigns one)
//   - duplicate tags (AddTag and UniqueStrings suppress them)
func ValidateRecipe(recipe *Recipe) error {
	if recipe == nil {
		return fmt.Errorf("%w: recipe is nil", ErrInvalidRecipe)
	}

	if strings.TrimSpace(recipe.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecipe, ErrEmptyName)
	}

	if recipe.CookingTime < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRecipe, ErrNegativeCookingTime)
	}

	if err := ValidateDifficulty(recipe.Difficulty); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecipe, err)
	}

	for i, ing := range recipe.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return fmt.Errorf("%w: ingredient %d: %w", ErrInvalidRecipe, i, ErrEmptyIngredientName)
		}
	}

	for _, tag := range recipe.Tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: %w", ErrInvalidRecipe, ErrEmptyTag)
		}
	}

	return nil
}

// ValidateRestaurant validates a Restaurant according to domain rules.
//
// Validation rules:
//   - Name, Address and Contact must not be blank
//   - featured recipe IDs must be positive
func ValidateRestaurant(restaurant *Restaurant) error {
	if restaurant == nil {
		return fmt.Errorf("%w: restaurant is nil", ErrInvalidRestaurant)
	}

	if strings.TrimSpace(restaurant.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRestaurant, ErrEmptyName)
	}

	if strings.TrimSpace(restaurant.Address) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRestaurant, ErrEmptyAddress)
	}

	if strings.TrimSpace(restaurant.Contact) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRestaurant, ErrEmptyContact)
	}

	for _, id := range restaurant.FeaturedRecipeIds {
		if !id.Assigned() {
			return fmt.Errorf("%w: %w: %d", ErrInvalidRestaurant, ErrInvalidFeaturedRecipe, id)
		}
	}

	return nil
}

// ValidateUser validates a User according to domain rules.
func ValidateUser(user *User) error {
	if user == nil {
		return fmt.Errorf("%w: user is nil", ErrInvalidUser)
	}

	if strings.TrimSpace(user.Username) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUser, ErrEmptyUsername)
	}

	if user.Password == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUser, ErrEmptyPassword)
	}

	if err := ValidateRole(user.Role); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUser, err)
	}

	return nil
}

// ValidateDifficulty validates that a Difficulty has a known value.
func ValidateDifficulty(d Difficulty) error {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return nil
	}
	return fmt.Errorf("%w: value %q", ErrInvalidDifficulty, d)
}

// ValidateRole validates that a Role has a known value.
func ValidateRole(r Role) error {
	switch r {
	case RoleNormal, RoleAdmin:
		return nil
	}
	return fmt.Errorf("%w: value %q", ErrInvalidRole, r)
}
