package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/manager"
)

func recipeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "Recipe name"},
		&cli.StringSliceFlag{Name: "ingredient", Aliases: []string{"i"}, Usage: "Ingredient as name=quantity (repeatable)"},
		&cli.StringSliceFlag{Name: "step", Aliases: []string{"s"}, Usage: "Preparation step (repeatable)"},
		&cli.IntFlag{Name: "time", Aliases: []string{"t"}, Usage: "Cooking time in minutes"},
		&cli.StringFlag{Name: "difficulty", Usage: "Easy, Medium or Hard", Value: string(core.DifficultyEasy)},
		&cli.StringSliceFlag{Name: "tag", Usage: "Tag (repeatable)"},
		&cli.StringFlag{Name: "nutrition", Usage: "Nutritional information"},
		&cli.StringFlag{Name: "image", Usage: "Image URL"},
	}
}

func recipeCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:  "recipe",
		Usage: "Manage recipes",
		Subcommands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Add a recipe",
				Flags:  recipeFlags(),
				Action: s.recipeAdd,
			},
			{
				Name:   "list",
				Usage:  "List all recipes",
				Action: s.recipeList,
			},
			{
				Name:   "show",
				Usage:  "Show one recipe",
				Flags:  []cli.Flag{idFlag("id", "Recipe id")},
				Action: s.recipeShow,
			},
			{
				Name:   "update",
				Usage:  "Update a recipe; only the given fields change",
				Flags:  append(recipeFlags(), idFlag("id", "Recipe id")),
				Action: s.recipeUpdate,
			},
			{
				Name:   "delete",
				Usage:  "Delete a recipe and remove it from featured lists",
				Flags:  []cli.Flag{idFlag("id", "Recipe id")},
				Action: s.recipeDelete,
			},
			{
				Name:  "find",
				Usage: "Find recipes by name, tags or ingredients",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Recipe name"},
					&cli.BoolFlag{Name: "partial", Usage: "Match names containing --name"},
					&cli.StringSliceFlag{Name: "tag", Usage: "Tag (repeatable)"},
					&cli.StringSliceFlag{Name: "ingredient", Aliases: []string{"i"}, Usage: "Ingredient name (repeatable)"},
					&cli.BoolFlag{Name: "any", Usage: "Match any tag or ingredient instead of all"},
				},
				Action: s.recipeFind,
			},
			{
				Name:   "tags",
				Usage:  "List tags with their recipe counts",
				Action: s.recipeTags,
			},
		},
	}
}

func (s *session) recipeAdd(c *cli.Context) error {
	db, err := s.authorize(c, manager.ActionManageRecipes)
	if err != nil {
		return err
	}
	recipe := core.Recipe{}
	if err := applyRecipeFlags(c, &recipe); err != nil {
		return err
	}
	added, err := db.Recipes().AddRecipe(c.Context, recipe)
	if err != nil {
		return fmt.Errorf("failed to add recipe: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Added recipe #%d %s\n", added.Id, added.Name)
	return nil
}

func (s *session) recipeList(c *cli.Context) error {
	db, err := s.authorize(c, manager.ActionRead)
	if err != nil {
		return err
	}
	recipes, err := db.Recipes().ListRecipes(c.Context)
	if err != nil {
		return err
	}
	return printRecipes(c.App.Writer, recipes)
}

func (s *session) recipeShow(c *cli.Context) error {
	id, err := requireID(c, "id")
	if err != nil {
		return err
	}
	db, err := s.authorize(c, manager.ActionRead)
	if err != nil {
		return err
	}
	recipe, err := db.Recipes().GetRecipe(c.Context, id)
	if err != nil {
		return err
	}
	printRecipe(c.App.Writer, recipe)
	return nil
}

func (s *session) recipeUpdate(c *cli.Context) error {
	id, err := requireID(c, "id")
	if err != nil {
		return err
	}
	db, err := s.authorize(c, manager.ActionManageRecipes)
	if err != nil {
		return err
	}
	recipe, err := db.Recipes().GetRecipe(c.Context, id)
	if err != nil {
		return err
	}
	if err := applyRecipeFlags(c, &recipe); err != nil {
		return err
	}
	updated, err := db.Recipes().UpdateRecipe(c.Context, recipe)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Updated recipe #%d %s\n", updated.Id, updated.Name)
	return nil
}

func (s *session) recipeDelete(c *cli.Context) error {
	id, err := requireID(c, "id")
	if err != nil {
		return err
	}
	db, err := s.authorize(c, manager.ActionManageRecipes)
	if err != nil {
		return err
	}
	if err := db.DeleteRecipe(c.Context, id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Deleted recipe #%d\n", id)
	return nil
}

func (s *session) recipeFind(c *cli.Context) error {
	db, err := s.authorize(c, manager.ActionRead)
	if err != nil {
		return err
	}
	matchAll := !c.Bool("any")

	var recipes []core.Recipe
	switch {
	case c.IsSet("name"):
		recipes, err = db.Recipes().FindRecipesByName(c.Context, c.String("name"), c.Bool("partial"))
	case c.IsSet("tag"):
		recipes, err = db.Recipes().FindRecipesByTags(c.Context, c.StringSlice("tag"), matchAll)
	case c.IsSet("ingredient"):
		recipes, err = db.Recipes().FindRecipesByIngredients(c.Context, c.StringSlice("ingredient"), matchAll)
	default:
		return fmt.Errorf("%w: one of --name, --tag or --ingredient is required", errUsage)
	}
	if err != nil {
		return err
	}
	return printRecipes(c.App.Writer, recipes)
}

func (s *session) recipeTags(c *cli.Context) error {
	db, err := s.authorize(c, manager.ActionRead)
	if err != nil {
		return err
	}
	return printTags(c.App.Writer, db.Recipes().Tags())
}

// applyRecipeFlags copies the flags that were given onto recipe.
func applyRecipeFlags(c *cli.Context, recipe *core.Recipe) error {
	if c.IsSet("name") {
		recipe.Name = c.String("name")
	}
	if c.IsSet("ingredient") {
		ingredients, err := parseIngredients(c.StringSlice("ingredient"))
		if err != nil {
			return err
		}
		recipe.Ingredients = ingredients
	}
	if c.IsSet("step") {
		recipe.Steps = c.StringSlice("step")
	}
	if c.IsSet("time") {
		recipe.CookingTime = c.Int("time")
	}
	if c.IsSet("difficulty") || recipe.Difficulty == "" {
		difficulty, err := core.ParseDifficulty(c.String("difficulty"))
		if err != nil {
			return err
		}
		recipe.Difficulty = difficulty
	}
	if c.IsSet("tag") {
		recipe.Tags = c.StringSlice("tag")
	}
	if c.IsSet("nutrition") {
		recipe.NutritionalInfo = optionalString(c.String("nutrition"))
	}
	if c.IsSet("image") {
		recipe.ImageURL = optionalString(c.String("image"))
	}
	return nil
}
