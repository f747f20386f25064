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


package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/cookbook/config"
	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/manager"
	"github.com/poiesic/cookbook/storage"
)

// Exit codes.
const (
	exitOK               = 0
	exitFailure          = 1
	exitInvalid          = 2
	exitNotFound         = 3
	exitDuplicate        = 4
	exitLastAdmin        = 5
	exitPermissionDenied = 6
)

// errUsage marks malformed command-line input.
var errUsage = errors.New("invalid usage")

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

func newApp(out, errOut io.Writer) *cli.App {
	s := &session{}
	return &cli.App{
		Name:  "cookbook",
		Usage: "Manage recipes, restaurants and users",
		// lists the COOKBOOK_* environment variables
		Description: config.Usage(),
		Writer:      out,
		ErrWriter:   errOut,
		// ingredient quantities may contain commas
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML, JSON or TOML config file",
				EnvVars: []string{"COOKBOOK_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "Directory holding the data files",
			},
			&cli.StringFlag{
				Name:  "driver",
				Usage: "Storage driver (json, badger, sqlite, memory)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log at debug level",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write store metrics to this Prometheus textfile",
			},
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "Username to act as",
				EnvVars: []string{"COOKBOOK_USER"},
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Password of --user",
				EnvVars: []string{"COOKBOOK_PASSWORD"},
			},
		},
		Before: s.setup,
		After:  s.teardown,
		Commands: []*cli.Command{
			recipeCommand(s),
			restaurantCommand(s),
			userCommand(s),
		},
	}
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, manager.ErrPermissionDenied),
		errors.Is(err, manager.ErrInvalidCredentials):
		return exitPermissionDenied
	case errors.Is(err, manager.ErrLastAdmin):
		return exitLastAdmin
	case errors.Is(err, manager.ErrDuplicateName),
		errors.Is(err, manager.ErrAlreadyBootstrapped):
		return exitDuplicate
	case errors.Is(err, manager.ErrNotFound),
		errors.Is(err, storage.ErrNotFound):
		return exitNotFound
	case errors.Is(err, errUsage),
		errors.Is(err, core.ErrInvalidRecipe),
		errors.Is(err, core.ErrInvalidRestaurant),
		errors.Is(err, core.ErrInvalidUser),
		errors.Is(err, core.ErrInvalidDifficulty),
		errors.Is(err, core.ErrInvalidRole),
		errors.Is(err, config.ErrInvalidLogLevel),
		errors.Is(err, storage.ErrUnknownDriver):
		return exitInvalid
	}
	return exitFailure
}
