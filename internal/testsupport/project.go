package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"litshelf/internal/config"
	"litshelf/internal/library"
	"litshelf/internal/project"
)

// MustActivateProject creates and activates a project under the config's
// base directory and returns its settings.
func MustActivateProject(t testing.TB, cfg *config.Config, name string) project.Settings {
	t.Helper()

	base := BaseDir(cfg)
	settings := project.Settings{
		ProjectName: name,
		WorkingDir:  filepath.Join(base, "projects", name),
	}
	store := project.NewStore(cfg.Paths.StateDir)
	if err := store.Activate(context.Background(), settings); err != nil {
		t.Fatalf("activate project %s: %v", name, err)
	}
	active, err := store.Active()
	if err != nil {
		t.Fatalf("read active project: %v", err)
	}
	return active
}

// MustOpenLibrary activates a project and opens a library.Service on it.
func MustOpenLibrary(t testing.TB, cfg *config.Config) *library.Service {
	t.Helper()

	settings := MustActivateProject(t, cfg, "fixture")
	return library.Open(settings.Context())
}
