package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"litshelf/internal/config"
	"litshelf/internal/desktop"
	"litshelf/internal/library"
	"litshelf/internal/logging"
	"litshelf/internal/project"
)

type commandContext struct {
	configFlag *string
	outputFlag *string

	configOnce sync.Once
	config     *config.Config
	configFile string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, outputFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		outputFlag: outputFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.configFile = resolved
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// configPath is the resolved configuration file path; the file may not exist.
func (c *commandContext) configPath() string {
	_, _ = c.ensureConfig()
	return c.configFile
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// ensureLogger builds the logger from config once. A logger that cannot be
// built degrades to a no-op so commands still run.
func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(c.configValue())
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) projectStore() (*project.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return project.NewStore(cfg.Paths.StateDir, project.WithLogger(c.ensureLogger())), nil
}

func (c *commandContext) activeProject() (project.Settings, error) {
	store, err := c.projectStore()
	if err != nil {
		return project.Settings{}, err
	}
	settings, err := store.Active()
	if errors.Is(err, project.ErrNotConfigured) {
		return project.Settings{}, fmt.Errorf("%w; run `litshelf project init <dir>` or `litshelf project open <dir>`", err)
	}
	return settings, err
}

func (c *commandContext) openLibrary() (*library.Service, error) {
	settings, err := c.activeProject()
	if err != nil {
		return nil, err
	}
	return c.libraryFor(settings), nil
}

func (c *commandContext) libraryFor(settings project.Settings) *library.Service {
	return library.Open(settings.Context(), library.WithLogger(c.ensureLogger()))
}

func (c *commandContext) desktop() *desktop.Desktop {
	cfg := c.configValue()
	if cfg == nil {
		return desktop.New(config.Desktop{})
	}
	return desktop.New(cfg.Desktop)
}

// remember stores the navigation position. Failures are logged, never fatal.
func (c *commandContext) remember(cmd *cobra.Command, nav project.Navigation) {
	store, err := c.projectStore()
	if err == nil {
		err = store.SaveNavigation(cmd.Context(), nav)
	}
	if err != nil {
		logging.WarnWithContext(c.ensureLogger(), "navigation state not saved", "navigation_save_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "the next command will not know the last position"),
		)
	}
}

func (c *commandContext) lastNavigation() project.Navigation {
	store, err := c.projectStore()
	if err != nil {
		return project.Navigation{}
	}
	nav, err := store.LoadNavigation()
	if err != nil {
		return project.Navigation{}
	}
	return nav
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
