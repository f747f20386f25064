package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/cookbook/core"
)

func idFlag(name, usage string) *cli.Int64Flag {
	return &cli.Int64Flag{Name: name, Usage: usage}
}

// requireID reads a positive id from the named flag.
func requireID(c *cli.Context, name string) (core.ID, error) {
	id := core.ID(c.Int64(name))
	if !id.Assigned() {
		return 0, fmt.Errorf("%w: --%s must be a positive id", errUsage, name)
	}
	return id, nil
}

// requireString reads a non-blank value from the named flag.
func requireString(c *cli.Context, name string) (string, error) {
	value := strings.TrimSpace(c.String(name))
	if value == "" {
		return "", fmt.Errorf("%w: --%s is required", errUsage, name)
	}
	return value, nil
}

// parseIngredients converts "name=quantity" pairs into ingredients.
func parseIngredients(values []string) ([]core.Ingredient, error) {
	out := make([]core.Ingredient, 0, len(values))
	for _, v := range values {
		name, quantity, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("%w: ingredient %q must look like name=quantity", errUsage, v)
		}
		out = append(out, core.Ingredient{
			Name:     strings.TrimSpace(name),
			Quantity: strings.TrimSpace(quantity),
		})
	}
	return out, nil
}

func toIDs(values []int64) []core.ID {
	out := make([]core.ID, len(values))
	for i, v := range values {
		out[i] = core.ID(v)
	}
	return out
}

// optionalString returns nil for an empty value.
func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
