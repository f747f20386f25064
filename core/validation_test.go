package core

import (
	"errors"
	"testing"
)

func TestValidateRecipe(t *testing.T) {
	tests := []struct {
		name    string
		recipe  *Recipe
		wantErr error
	}{
		{
			name: "valid recipe",
			recipe: &Recipe{
				Name:        "Soup",
				Ingredients: []Ingredient{{Name: "water", Quantity: "1l"}},
				Steps:       []string{"boil"},
				CookingTime: 30,
				Difficulty:  DifficultyEasy,
				Tags:        []string{"veg"},
			},
			wantErr: nil,
		},
		{
			name:    "valid recipe with zero cooking time and no tags",
			recipe:  &Recipe{Name: "Salad", Difficulty: DifficultyMedium},
			wantErr: nil,
		},
		{
			name:    "nil recipe",
			recipe:  nil,
			wantErr: ErrInvalidRecipe,
		},
		{
			name:    "blank name",
			recipe:  &Recipe{Name: "   ", Difficulty: DifficultyEasy},
			wantErr: ErrEmptyName,
		},
		{
			name:    "negative cooking time",
			recipe:  &Recipe{Name: "Stew", CookingTime: -1, Difficulty: DifficultyHard},
			wantErr: ErrNegativeCookingTime,
		},
		{
			name:    "unknown difficulty",
			recipe:  &Recipe{Name: "Stew", Difficulty: Difficulty("Insane")},
			wantErr: ErrInvalidDifficulty,
		},
		{
			name:    "missing difficulty",
			recipe:  &Recipe{Name: "Stew"},
			wantErr: ErrInvalidDifficulty,
		},
		{
			name: "ingredient without name",
			recipe: &Recipe{
				Name:        "Pie",
				Difficulty:  DifficultyEasy,
				Ingredients: []Ingredient{{Name: "", Quantity: "2"}},
			},
			wantErr: ErrEmptyIngredientName,
		},
		{
			name:    "blank tag",
			recipe:  &Recipe{Name: "Pie", Difficulty: DifficultyEasy, Tags: []string{"dessert", " "}},
			wantErr: ErrEmptyTag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecipe(tt.recipe)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateRecipe() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateRecipe() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidRecipe) {
				t.Errorf("ValidateRecipe() error = %v, want it to wrap ErrInvalidRecipe", err)
			}
		})
	}
}

func TestValidateRestaurant(t *testing.T) {
	valid := Restaurant{Name: "Luigi's", Address: "1 Main St", Contact: "555-0100"}

	tests := []struct {
		name       string
		restaurant *Restaurant
		wantErr    error
	}{
		{name: "valid restaurant", restaurant: &valid, wantErr: nil},
		{name: "nil restaurant", restaurant: nil, wantErr: ErrInvalidRestaurant},
		{name: "blank name", restaurant: &Restaurant{Address: "a", Contact: "c"}, wantErr: ErrEmptyName},
		{name: "blank address", restaurant: &Restaurant{Name: "n", Contact: "c"}, wantErr: ErrEmptyAddress},
		{name: "blank contact", restaurant: &Restaurant{Name: "n", Address: "a"}, wantErr: ErrEmptyContact},
		{
			name:       "non-positive featured recipe",
			restaurant: &Restaurant{Name: "n", Address: "a", Contact: "c", FeaturedRecipeIds: []ID{3, 0}},
			wantErr:    ErrInvalidFeaturedRecipe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRestaurant(tt.restaurant)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateRestaurant() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateRestaurant() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateUser(t *testing.T) {
	tests := []struct {
		name    string
		user    *User
		wantErr error
	}{
		{name: "valid user", user: &User{Username: "alice", Password: "x", Role: RoleNormal}, wantErr: nil},
		{name: "valid admin", user: &User{Username: "root", Password: "x", Role: RoleAdmin}, wantErr: nil},
		{name: "nil user", user: nil, wantErr: ErrInvalidUser},
		{name: "blank username", user: &User{Username: " ", Password: "x", Role: RoleNormal}, wantErr: ErrEmptyUsername},
		{name: "empty password", user: &User{Username: "bob", Role: RoleNormal}, wantErr: ErrEmptyPassword},
		{name: "unknown role", user: &User{Username: "bob", Password: "x", Role: "Owner"}, wantErr: ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUser(tt.user)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateUser() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateUser() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input   string
		want    Difficulty
		wantErr bool
	}{
		{input: "Easy", want: DifficultyEasy},
		{input: "medium", want: DifficultyMedium},
		{input: " HARD ", want: DifficultyHard},
		{input: "extreme", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDifficulty(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDifficulty) {
					t.Errorf("ParseDifficulty(%q) error = %v, want ErrInvalidDifficulty", tt.input, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseDifficulty(%q) = %q, %v; want %q", tt.input, got, err, tt.want)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("admin"); err != nil || r != RoleAdmin {
		t.Errorf("ParseRole(admin) = %q, %v", r, err)
	}
	if r, err := ParseRole("Normal"); err != nil || r != RoleNormal {
		t.Errorf("ParseRole(Normal) = %q, %v", r, err)
	}
	if _, err := ParseRole("guest"); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("ParseRole(guest) error = %v, want ErrInvalidRole", err)
	}
}
