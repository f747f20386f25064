package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/manager"
)

func restaurantFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "Restaurant name"},
		&cli.StringFlag{Name: "address", Usage: "Street address"},
		&cli.StringFlag{Name: "contact", Usage: "Phone number or email"},
		&cli.StringFlag{Name: "hours", Usage: "Opening hours"},
		&cli.Int64SliceFlag{Name: "recipe", Usage: "Featured recipe id (repeatable)"},
	}
}

func restaurantCommand(s *session) *cli.Command {
	featureFlags := []cli.Flag{
		idFlag("id", "Restaurant id"),
		idFlag("recipe", "Recipe id"),
	}
	return &cli.Command{
		Name:  "restaurant",
		Usage: "Manage restaurants",
		Subcommands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Add a restaurant",
				Flags:  restaurantFlags(),
				Action: s.restaurantAdd,
			},
			{
				Name:   "list",
				Usage:  "List all restaurants",
				Action: s.restaurantList,
			},
			{
				Name:   "show",
				Usage:  "Show one restaurant with its featured recipes",
				Flags:  []cli.Flag{idFlag("id", "Restaurant id")},
				Action: s.restaurantShow,
			},
			{
				Name:   "update",
				Usage:  "Update a restaurant; only the given fields change",
				Flags:  append(restaurantFlags(), idFlag("id", "Restaurant id")),
				Action: s.restaurantUpdate,
			},
			{
				Name:   "delete",
				Usage:  "Delete a restaurant",
				Flags:  []cli.Flag{idFlag("id", "Restaurant id")},
				Action: s.restaurantDelete,
			},
			{
				Name:  "find",
				Usage: "Find restaurants by name or featured recipe",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Restaurant name"},
					&cli.BoolFlag{Name: "partial", Usage: "Match names containing --name"},
					idFlag("recipe", "Featured recipe id"),
				},
				Action: s.restaurantFind,
			},
			{
				Name:   "feature",
				Usage:  "Feature a recipe at a restaurant",
				Flags:  featureFlags,
				Action: s.restaurantFeature,
			},
			{
				Name:   "unfeature",
				Usage:  "Stop featuring a recipe at a restaurant",
				Flags:  featureFlags,
				Action: s.restaurantUnfeature,
			},
		},
	}
}

func (s *session) restaurantAdd(c *cli.Context) error {
	db, err := s.authorize(c, manager.ActionManageRestaurants)
	if err != nil {
		return err
	}
	restaurant := core.Restaurant{}
	applyRestaurantFlags(c, &restaurant)
	added, err := db.Restaurants().AddRestaurant(c.Context, restaurant)
	if err != nil {
		return fmt.Errorf("failed to add restaurant: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Added restaurant #%d %s\n", added.Id, added.Name)
	return nil
}

func (s *session) restaurantList(c *cli.Context) error {
	db, err := s.authorize(c, manager.ActionRead)
	if err != nil {
		return err
	}
	restaurants, err := db.Restaurants().ListRestaurants(c.Context)
	if err != nil {
		return err
	}
	return printRestaurants(c.App.Writer, restaurants)
}

func (s *session) restaurantShow(c *cli.Context) error {
	id, err := requireID(c, "id")
	if err != nil {
		return err
	}
	db, err := s.authorize(c, manager.ActionRead)
	if err != nil {
		return err
	}
	restaurant, err := db.Restaurants().GetRestaurant(c.Context, id)
	if err != nil {
		return err
	}
	printRestaurant(c, db.Recipes(), restaurant)
	return nil
}

func (s *session) restaurantUpdate(c *cli.Context) error {
	id, err := requireID(c, "id")
	if err != nil {
		return err
	}
	db, err := s.authorize(c, manager.ActionManageRestaurants)
	if err != nil {
		return err
	}
	restaurant, err := db.Restaurants().GetRestaurant(c.Context, id)
	if err != nil {
		return err
	}
	applyRestaurantFlags(c, &restaurant)
	updated, err := db.Restaurants().UpdateRestaurant(c.Context, restaurant)
	if err != nil {
		return fmt.Errorf("failed to update restaurant: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Updated restaurant #%d %s\n", updated.Id, updated.Name)
	return nil
}

func (s *session) restaurantDelete(c *cli.Context) error {
	id, err := requireID(c, "id")
	if err != nil {
		return err
	}
	db, err := s.authorize(c, manager.ActionManageRestaurants)
	if err != nil {
		return err
	}
	if err := db.Restaurants().DeleteRestaurant(c.Context, id); err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Deleted restaurant #%d\n", id)
	return nil
}

func (s *session) restaurantFind(c *cli.Context) error {
	db, err := s.authorize(c, manager.ActionRead)
	if err != nil {
		return err
	}
	var restaurants []core.Restaurant
	switch {
	case c.IsSet("name"):
		restaurants, err = db.Restaurants().FindRestaurantsByName(c.Context, c.String("name"), c.Bool("partial"))
	case c.IsSet("recipe"):
		recipeID, idErr := requireID(c, "recipe")
		if idErr != nil {
			return idErr
		}
		restaurants, err = db.Restaurants().FindRestaurantsFeaturing(c.Context, recipeID)
	default:
		return fmt.Errorf("%w: one of --name or --recipe is required", errUsage)
	}
	if err != nil {
		return err
	}
	return printRestaurants(c.App.Writer, restaurants)
}

func (s *session) restaurantFeature(c *cli.Context) error {
	return s.changeFeatured(c, "Featured", (*manager.RestaurantManager).FeatureRecipe)
}

func (s *session) restaurantUnfeature(c *cli.Context) error {
	return s.changeFeatured(c, "Unfeatured", (*manager.RestaurantManager).UnfeatureRecipe)
}

type featuredChange func(*manager.RestaurantManager, context.Context, core.ID, core.ID) (core.Restaurant, error)

func (s *session) changeFeatured(c *cli.Context, verb string, change featuredChange) error {
	id, err := requireID(c, "id")
	if err != nil {
		return err
	}
	recipeID, err := requireID(c, "recipe")
	if err != nil {
		return err
	}
	db, err := s.authorize(c, manager.ActionManageRestaurants)
	if err != nil {
		return err
	}
	restaurant, err := change(db.Restaurants(), c.Context, id, recipeID)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s recipe #%d at %s\n", verb, recipeID, restaurant.Name)
	return nil
}

// applyRestaurantFlags copies the flags that were given onto restaurant.
func applyRestaurantFlags(c *cli.Context, restaurant *core.Restaurant) {
	if c.IsSet("name") {
		restaurant.Name = c.String("name")
	}
	if c.IsSet("address") {
		restaurant.Address = c.String("address")
	}
	if c.IsSet("contact") {
		restaurant.Contact = c.String("contact")
	}
	if c.IsSet("hours") {
		restaurant.OpeningHours = c.String("hours")
	}
	if c.IsSet("recipe") {
		restaurant.FeaturedRecipeIds = toIDs(c.Int64Slice("recipe"))
	}
}
