package manager

import (
	"fmt"

	"github.com/poiesic/cookbook/core"
)

// Action is something a user may attempt.
type Action string

const (
	ActionRead              Action = "read"
	ActionManageRecipes     Action = "manage recipes"
	ActionManageRestaurants Action = "manage restaurants"
	ActionManageUsers       Action = "manage users"
)

// Authorize reports whether user may perform action. Admins may do
// everything; Normal users may not manage users.
func Authorize(user core.User, action Action) error {
	if user.IsAdmin() {
		return nil
	}
	switch action {
	case ActionRead, ActionManageRecipes, ActionManageRestaurants:
		if user.Role == core.RoleNormal {
			return nil
		}
	}
	return fmt.Errorf("%w: %s may not %s", ErrPermissionDenied, user.Username, action)
}
