package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/manager"
)

func userCommand(s *session) *cli.Command {
	credentialFlags := []cli.Flag{
		&cli.StringFlag{Name: "username", Usage: "Username of the new account"},
		&cli.StringFlag{Name: "new-password", Usage: "Password of the new account"},
	}
	return &cli.Command{
		Name:  "user",
		Usage: "Manage user accounts",
		Subcommands: []*cli.Command{
			{
				Name:   "bootstrap",
				Usage:  "Create the first Admin account",
				Flags:  credentialFlags,
				Action: s.userBootstrap,
			},
			{
				Name:  "add",
				Usage: "Add a user",
				Flags: append(credentialFlags,
					&cli.StringFlag{Name: "role", Usage: "Normal or Admin", Value: string(core.RoleNormal)},
				),
				Action: s.userAdd,
			},
			{
				Name:   "list",
				Usage:  "List all users",
				Action: s.userList,
			},
			{
				Name:   "show",
				Usage:  "Show one user",
				Flags:  []cli.Flag{idFlag("id", "User id")},
				Action: s.userShow,
			},
			{
				Name:   "delete",
				Usage:  "Delete a user",
				Flags:  []cli.Flag{idFlag("id", "User id")},
				Action: s.userDelete,
			},
			{
				Name:  "set-role",
				Usage: "Change a user's role",
				Flags: []cli.Flag{
					idFlag("id", "User id"),
					&cli.StringFlag{Name: "role", Usage: "Normal or Admin"},
				},
				Action: s.userSetRole,
			},
			{
				Name:  "passwd",
				Usage: "Change a password; defaults to the acting user",
				Flags: []cli.Flag{
					idFlag("id", "User id"),
					&cli.StringFlag{Name: "new-password", Usage: "New password"},
				},
				Action: s.userPasswd,
			},
		},
	}
}

func (s *session) userBootstrap(c *cli.Context) error {
	username, err := requireString(c, "username")
	if err != nil {
		return err
	}
	db, err := s.open(c)
	if err != nil {
		return err
	}
	user, err := db.Users().Bootstrap(c.Context, username, c.String("new-password"))
	if err != nil {
		return fmt.Errorf("failed to bootstrap: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Created admin #%d %s\n", user.Id, user.Username)
	return nil
}

func (s *session) userAdd(c *cli.Context) error {
	username, err := requireString(c, "username")
	if err != nil {
		return err
	}
	role, err := core.ParseRole(c.String("role"))
	if err != nil {
		return err
	}
	db, err := s.authorize(c, manager.ActionManageUsers)
	if err != nil {
		return err
	}
	user, err := db.Users().AddUser(c.Context, username, c.String("new-password"), role)
	if err != nil {
		return fmt.Errorf("failed to add user: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Added user #%d %s (%s)\n", user.Id, user.Username, user.Role)
	return nil
}

func (s *session) userList(c *cli.Context) error {
	db, err := s.authorize(c, manager.ActionManageUsers)
	if err != nil {
		return err
	}
	users, err := db.Users().ListUsers(c.Context)
	if err != nil {
		return err
	}
	return printUsers(c.App.Writer, users)
}

func (s *session) userShow(c *cli.Context) error {
	id, err := requireID(c, "id")
	if err != nil {
		return err
	}
	db, err := s.authorize(c, manager.ActionManageUsers)
	if err != nil {
		return err
	}
	user, err := db.Users().GetUser(c.Context, id)
	if err != nil {
		return err
	}
	printUser(c.App.Writer, user)
	return nil
}

func (s *session) userDelete(c *cli.Context) error {
	id, err := requireID(c, "id")
	if err != nil {
		return err
	}
	db, err := s.authorize(c, manager.ActionManageUsers)
	if err != nil {
		return err
	}
	if err := db.Users().DeleteUser(c.Context, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Deleted user #%d\n", id)
	return nil
}

func (s *session) userSetRole(c *cli.Context) error {
	id, err := requireID(c, "id")
	if err != nil {
		return err
	}
	role, err := core.ParseRole(c.String("role"))
	if err != nil {
		return err
	}
	db, err := s.authorize(c, manager.ActionManageUsers)
	if err != nil {
		return err
	}
	user, err := db.Users().SetRole(c.Context, id, role)
	if err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}
	printUser(c.App.Writer, user)
	return nil
}

// userPasswd changes the acting user's password, or another user's when
// --id names someone else and the acting user may manage users.
func (s *session) userPasswd(c *cli.Context) error {
	db, err := s.authorize(c, manager.ActionRead)
	if err != nil {
		return err
	}
	if s.user == nil {
		return fmt.Errorf("%w: no users exist, run 'user bootstrap' first", manager.ErrPermissionDenied)
	}
	id := s.user.Id
	if c.IsSet("id") {
		if id, err = requireID(c, "id"); err != nil {
			return err
		}
		if id != s.user.Id {
			if err := manager.Authorize(*s.user, manager.ActionManageUsers); err != nil {
				return err
			}
		}
	}
	user, err := db.Users().ChangePassword(c.Context, id, c.String("new-password"))
	if err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Changed password of %s\n", user.Username)
	return nil
}
