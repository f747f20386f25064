package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/manager"
)

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func printRecipes(w io.Writer, recipes []core.Recipe) error {
	if len(recipes) == 0 {
		fmt.Fprintln(w, "No recipes found")
		return nil
	}
	tw := newTable(w, "ID", "NAME", "DIFFICULTY", "TIME", "TAGS")
	for _, r := range recipes {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d min\t%s\n", r.Id, r.Name, r.Difficulty, r.CookingTime, strings.Join(r.Tags, ", "))
	}
	return tw.Flush()
}

func printRecipe(w io.Writer, r core.Recipe) {
	fmt.Fprintf(w, "Recipe #%d: %s\n", r.Id, r.Name)
	fmt.Fprintf(w, "Difficulty: %s\n", r.Difficulty)
	fmt.Fprintf(w, "Cooking time: %d min\n", r.CookingTime)
	if len(r.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(r.Tags, ", "))
	}
	fmt.Fprintln(w, "Ingredients:")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(w, "  - %s: %s\n", ing.Name, ing.Quantity)
	}
	if len(r.Steps) > 0 {
		fmt.Fprintln(w, "Steps:")
		for i, step := range r.Steps {
			fmt.Fprintf(w, "  %d. %s\n", i+1, step)
		}
	}
	if r.NutritionalInfo != nil {
		fmt.Fprintf(w, "Nutrition: %s\n", *r.NutritionalInfo)
	}
	if r.ImageURL != nil {
		fmt.Fprintf(w, "Image: %s\n", *r.ImageURL)
	}
}

func printTags(w io.Writer, tags []manager.TagCount) error {
	if len(tags) == 0 {
		fmt.Fprintln(w, "No tags found")
		return nil
	}
	tw := newTable(w, "TAG", "RECIPES")
	for _, t := range tags {
		fmt.Fprintf(tw, "%s\t%d\n", t.Tag, t.Recipes)
	}
	return tw.Flush()
}

func printRestaurants(w io.Writer, restaurants []core.Restaurant) error {
	if len(restaurants) == 0 {
		fmt.Fprintln(w, "No restaurants found")
		return nil
	}
	tw := newTable(w, "ID", "NAME", "ADDRESS", "CONTACT", "FEATURED")
	for _, r := range restaurants {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.Id, r.Name, r.Address, r.Contact, formatIDs(r.FeaturedRecipeIds))
	}
	return tw.Flush()
}

// printRestaurant shows a restaurant with the names of its featured
// recipes. Featured ids that no longer resolve are shown as unknown.
func printRestaurant(c *cli.Context, recipes *manager.RecipeManager, r core.Restaurant) {
	w := c.App.Writer
	fmt.Fprintf(w, "Restaurant #%d: %s\n", r.Id, r.Name)
	fmt.Fprintf(w, "Address: %s\n", r.Address)
	fmt.Fprintf(w, "Contact: %s\n", r.Contact)
	if r.OpeningHours != "" {
		fmt.Fprintf(w, "Opening hours: %s\n", r.OpeningHours)
	}
	if len(r.FeaturedRecipeIds) == 0 {
		return
	}
	fmt.Fprintln(w, "Featured recipes:")
	for _, id := range r.FeaturedRecipeIds {
		name := "(unknown)"
		if recipe, err := recipes.GetRecipe(c.Context, id); err == nil {
			name = recipe.Name
		}
		fmt.Fprintf(w, "  - #%d %s\n", id, name)
	}
}

func printUsers(w io.Writer, users []core.User) error {
	tw := newTable(w, "ID", "USERNAME", "ROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", u.Id, u.Username, u.Role)
	}
	return tw.Flush()
}

func printUser(w io.Writer, u core.User) {
	fmt.Fprintf(w, "User #%d: %s (%s)\n", u.Id, u.Username, u.Role)
}

func formatIDs(ids []core.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(int64(id), 10)
	}
	return strings.Join(parts, ", ")
}
