package core

import (
	"slices"
	"strings"
)

// ID is a unique identifier for domain records within one collection.
// Values <= 0 mean the record has not been assigned an ID yet.
type ID int64

// Assigned reports whether the ID was handed out by a repository.
func (id ID) Assigned() bool {
	return id > 0
}

// Difficulty rates how hard a recipe is to cook.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty converts user input such as "easy" or "HARD" into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", ErrInvalidDifficulty
}

// Role determines what a user may do.
type Role string

const (
	RoleNormal Role = "Normal"
	RoleAdmin  Role = "Admin"
)

// ParseRole converts user input such as "admin" into a Role.
func ParseRole(s string) (Role, error) {
	for _, r := range []Role{RoleNormal, RoleAdmin} {
		if strings.EqualFold(strings.TrimSpace(s), string(r)) {
			return r, nil
		}
	}
	return "", ErrInvalidRole
}

// Ingredient is a named ingredient with a free-form quantity ("200g", "2 cups").
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// Recipe is a cooking recipe owned by the recipe collection.
type Recipe struct {
	Id              ID           `json:"id"`
	Name            string       `json:"name"`
	Ingredients     []Ingredient `json:"ingredients"`
	Steps           []string     `json:"steps"`
	CookingTime     int          `json:"cookingTime"` // minutes
	Difficulty      Difficulty   `json:"difficulty"`
	Tags            []string     `json:"tags"`
	NutritionalInfo *string      `json:"nutritionalInfo"`
	ImageURL        *string      `json:"imageUrl"`
}

// AddTag appends tag unless the recipe already carries it.
// Tags are case-sensitive. Returns false when the tag was already present.
func (r *Recipe) AddTag(tag string) bool {
	if r.HasTag(tag) {
		return false
	}
	r.Tags = append(r.Tags, tag)
	return true
}

// HasTag reports whether the recipe carries tag (case-sensitive).
func (r *Recipe) HasTag(tag string) bool {
	return slices.Contains(r.Tags, tag)
}

// HasIngredient reports whether the recipe uses an ingredient named name.
// Ingredient names compare like record names (see NameKey).
func (r *Recipe) HasIngredient(name string) bool {
	key := NameKey(name)
	for _, ing := range r.Ingredients {
		if NameKey(ing.Name) == key {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Nil slices become empty slices so the copy
// always serializes as JSON arrays.
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = append(make([]Ingredient, 0, len(r.Ingredients)), r.Ingredients...)
	out.Steps = append(make([]string, 0, len(r.Steps)), r.Steps...)
	out.Tags = append(make([]string, 0, len(r.Tags)), r.Tags...)
	out.NutritionalInfo = cloneString(r.NutritionalInfo)
	out.ImageURL = cloneString(r.ImageURL)
	return out
}

// Restaurant is a restaurant owned by the restaurant collection.
type Restaurant struct {
	Id                ID     `json:"id"`
	Name              string `json:"name"`
	Address           string `json:"address"`
	Contact           string `json:"contact"`
	OpeningHours      string `json:"openingHours"`
	FeaturedRecipeIds []ID   `json:"featuredRecipeIds"`
}

// AddFeaturedRecipe appends recipeID unless it is already featured.
// Returns false when it was already present.
func (r *Restaurant) AddFeaturedRecipe(recipeID ID) bool {
	if r.HasFeaturedRecipe(recipeID) {
		return false
	}
	r.FeaturedRecipeIds = append(r.FeaturedRecipeIds, recipeID)
	return true
}

// RemoveFeaturedRecipe drops recipeID. Returns false when it was not featured.
func (r *Restaurant) RemoveFeaturedRecipe(recipeID ID) bool {
	idx := slices.Index(r.FeaturedRecipeIds, recipeID)
	if idx < 0 {
		return false
	}
	r.FeaturedRecipeIds = slices.Delete(r.FeaturedRecipeIds, idx, idx+1)
	return true
}

// HasFeaturedRecipe reports whether recipeID is featured.
func (r *Restaurant) HasFeaturedRecipe(recipeID ID) bool {
	return slices.Contains(r.FeaturedRecipeIds, recipeID)
}

// Clone returns a deep copy with a non-nil featured list.
func (r Restaurant) Clone() Restaurant {
	out := r
	out.FeaturedRecipeIds = append(make([]ID, 0, len(r.FeaturedRecipeIds)), r.FeaturedRecipeIds...)
	return out
}

// User is an account owned by the user collection.
// Password holds a digest produced by HashPassword; legacy files may still
// contain clear text, which VerifyPassword accepts.
type User struct {
	Id       ID     `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the user has the Admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Clone returns a copy. User has no reference fields; Clone exists so all
// record kinds share the same shape.
func (u User) Clone() User {
	return u
}

// UniqueStrings returns values with duplicates removed, keeping first occurrences in order.
func UniqueStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
