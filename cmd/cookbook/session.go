package main

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/cookbook"
	"github.com/poiesic/cookbook/config"
	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/manager"
	"github.com/poiesic/cookbook/metrics"
)

// session holds the state of one CLI invocation: the resolved
// configuration, the open database and the authenticated user.
type session struct {
	cfg      config.Config
	logger   *slog.Logger
	recorder *metrics.Recorder
	db       *cookbook.Database
	user     *core.User
}

// setup resolves configuration (defaults, file, environment, flags) and
// configures logging.
func (s *session) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("data-dir") {
		cfg.DataDir = c.String("data-dir")
	}
	if c.IsSet("driver") {
		cfg.Driver = c.String("driver")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.Bool("verbose") {
		cfg.LogLevel = "debug"
	}
	if c.IsSet("metrics-file") {
		cfg.MetricsFile = c.String("metrics-file")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	s.logger = slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(s.logger)

	if cfg.MetricsFile != "" {
		s.recorder = metrics.NewRecorder()
	}
	s.cfg = cfg
	return nil
}

// teardown closes the database and writes the metrics file. Failures are
// logged so they never mask the command's own error.
func (s *session) teardown(c *cli.Context) error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("error closing database", "err", err)
		}
		s.db = nil
	}
	if s.recorder != nil {
		if err := s.recorder.WriteTextfile(s.cfg.MetricsFile); err != nil {
			s.logger.Error("error writing metrics file", "path", s.cfg.MetricsFile, "err", err)
		}
	}
	return nil
}

func (s *session) open(c *cli.Context) (*cookbook.Database, error) {
	if s.db != nil {
		return s.db, nil
	}
	opts := []cookbook.DatabaseOption{
		cookbook.WithDriver(s.cfg.Driver),
		cookbook.WithLogger(s.logger),
	}
	if s.recorder != nil {
		opts = append(opts, cookbook.WithObserver(s.recorder))
	}
	db, err := cookbook.NewDatabase(c.Context, s.cfg.DataDir, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return db, nil
}

// authorize opens the database and checks that the acting user may
// perform action. While no user exists, everything except user management
// is open; once users exist, --user and --password are required.
func (s *session) authorize(c *cli.Context, action manager.Action) (*cookbook.Database, error) {
	db, err := s.open(c)
	if err != nil {
		return nil, err
	}
	users, err := db.Users().ListUsers(c.Context)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		if action == manager.ActionManageUsers {
			return nil, fmt.Errorf("%w: no users exist, run 'user bootstrap' first", manager.ErrPermissionDenied)
		}
		return db, nil
	}

	username := c.String("user")
	if username == "" {
		return nil, fmt.Errorf("%w: --user and --password are required", manager.ErrInvalidCredentials)
	}
	user, err := db.Users().Authenticate(c.Context, username, c.String("password"))
	if err != nil {
		return nil, err
	}
	if err := manager.Authorize(user, action); err != nil {
		return nil, err
	}
	s.user = &user
	s.logger.Debug("authenticated", "username", user.Username, "role", user.Role)
	return db, nil
}
