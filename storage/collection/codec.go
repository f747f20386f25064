package collection

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/storage"
)

// Document field names.
const (
	RecipesField     = "recipes"
	RestaurantsField = "restaurants"
	UsersField       = "users"
)

// RecipeCodec addresses and decodes recipes stored under "recipes".
var RecipeCodec = Codec[core.Recipe]{
	Field:  RecipesField,
	ID:     func(r core.Recipe) core.ID { return r.Id },
	WithID: func(r core.Recipe, id core.ID) core.Recipe { r.Id = id; return r },
	Decode: decodeRecipe,
	Clone:  core.Recipe.Clone,
}

// RestaurantCodec addresses and decodes restaurants stored under "restaurants".
var RestaurantCodec = Codec[core.Restaurant]{
	Field:  RestaurantsField,
	ID:     func(r core.Restaurant) core.ID { return r.Id },
	WithID: func(r core.Restaurant, id core.ID) core.Restaurant { r.Id = id; return r },
	Decode: decodeRestaurant,
	Clone:  core.Restaurant.Clone,
}

// UserCodec addresses and decodes users stored under "users".
var UserCodec = Codec[core.User]{
	Field:  UsersField,
	ID:     func(u core.User) core.ID { return u.Id },
	WithID: func(u core.User, id core.ID) core.User { u.Id = id; return u },
	Decode: decodeUser,
	Clone:  core.User.Clone,
}

// Wire shapes use pointers for required fields so a missing field can be
// told apart from a zero value.

type recipeWire struct {
	Id              *core.ID          `json:"id"`
	Name            *string           `json:"name"`
	Ingredients     []core.Ingredient `json:"ingredients"`
	Steps           []string          `json:"steps"`
	CookingTime     *int              `json:"cookingTime"`
	Difficulty      *core.Difficulty  `json:"difficulty"`
	Tags            []string          `json:"tags"`
	NutritionalInfo *string           `json:"nutritionalInfo"`
	ImageURL        *string           `json:"imageUrl"`
}

type restaurantWire struct {
	Id                *core.ID  `json:"id"`
	Name              *string   `json:"name"`
	Address           *string   `json:"address"`
	Contact           *string   `json:"contact"`
	OpeningHours      *string   `json:"openingHours"`
	FeaturedRecipeIds []core.ID `json:"featuredRecipeIds"`
}

type userWire struct {
	Id       *core.ID   `json:"id"`
	Username *string    `json:"username"`
	Password *string    `json:"password"`
	Role     *core.Role `json:"role"`
}

func decodeRecipe(raw json.RawMessage) (core.Recipe, error) {
	var w recipeWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return core.Recipe{}, fmt.Errorf("%w: %w", storage.ErrInvalidRecord, err)
	}
	if err := requireFields(map[string]bool{
		"id":          w.Id != nil,
		"name":        w.Name != nil,
		"cookingTime": w.CookingTime != nil,
		"difficulty":  w.Difficulty != nil,
	}); err != nil {
		return core.Recipe{}, err
	}

	recipe := core.Recipe{
		Id:              *w.Id,
		Name:            *w.Name,
		Ingredients:     w.Ingredients,
		Steps:           w.Steps,
		CookingTime:     *w.CookingTime,
		Difficulty:      *w.Difficulty,
		Tags:            core.UniqueStrings(w.Tags),
		NutritionalInfo: w.NutritionalInfo,
		ImageURL:        w.ImageURL,
	}
	if err := core.ValidateRecipe(&recipe); err != nil {
		return core.Recipe{}, fmt.Errorf("%w: %w", storage.ErrInvalidRecord, err)
	}
	return recipe.Clone(), nil
}

func decodeRestaurant(raw json.RawMessage) (core.Restaurant, error) {
	var w restaurantWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return core.Restaurant{}, fmt.Errorf("%w: %w", storage.ErrInvalidRecord, err)
	}
	if err := requireFields(map[string]bool{
		"id":      w.Id != nil,
		"name":    w.Name != nil,
		"address": w.Address != nil,
		"contact": w.Contact != nil,
	}); err != nil {
		return core.Restaurant{}, err
	}

	restaurant := core.Restaurant{
		Id:      *w.Id,
		Name:    *w.Name,
		Address: *w.Address,
		Contact: *w.Contact,
	}
	if w.OpeningHours != nil {
		restaurant.OpeningHours = *w.OpeningHours
	}
	for _, id := range w.FeaturedRecipeIds {
		restaurant.AddFeaturedRecipe(id)
	}
	if err := core.ValidateRestaurant(&restaurant); err != nil {
		return core.Restaurant{}, fmt.Errorf("%w: %w", storage.ErrInvalidRecord, err)
	}
	return restaurant.Clone(), nil
}

func decodeUser(raw json.RawMessage) (core.User, error) {
	var w userWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return core.User{}, fmt.Errorf("%w: %w", storage.ErrInvalidRecord, err)
	}
	if err := requireFields(map[string]bool{
		"id":       w.Id != nil,
		"username": w.Username != nil,
		"password": w.Password != nil,
		"role":     w.Role != nil,
	}); err != nil {
		return core.User{}, err
	}

	user := core.User{
		Id:       *w.Id,
		Username: *w.Username,
		Password: *w.Password,
		Role:     *w.Role,
	}
	if err := core.ValidateUser(&user); err != nil {
		return core.User{}, fmt.Errorf("%w: %w", storage.ErrInvalidRecord, err)
	}
	return user, nil
}

// requireFields reports every missing field, sorted for a stable message.
func requireFields(present map[string]bool) error {
	var missing []string
	for field, ok := range present {
		if !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)
	return fmt.Errorf("%w: missing field(s) %v", storage.ErrInvalidRecord, missing)
}
