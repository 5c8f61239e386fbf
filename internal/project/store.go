package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"litshelf/internal/fileutil"
	"litshelf/internal/logging"
	"litshelf/internal/preflight"
	"litshelf/internal/store"
)

var (
	// ErrNotAProject is returned by Adopt when the directory has no marker.
	ErrNotAProject = errors.New("not a litshelf project")
	// ErrNotConfigured is returned by Active when no project has been activated.
	ErrNotConfigured = errors.New("no active project")
)

const lockRetryDelay = 50 * time.Millisecond

// Store manages the state directory.
type Store struct {
	dir    string
	lock   *flock.Flock
	logger *slog.Logger
	now    func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logging.NewComponentLogger(logger, "project")
		}
	}
}

// WithClock replaces time.Now for marker timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore returns a Store rooted at stateDir.
func NewStore(stateDir string, opts ...Option) *Store {
	s := &Store{
		dir:    stateDir,
		lock:   flock.New(filepath.Join(stateDir, lockFile)),
		logger: logging.NewComponentLogger(nil, "project"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the state directory.
func (s *Store) Dir() string {
	return s.dir
}

// ResolveActive returns the active project settings. ok is false when no
// project has been activated yet.
func (s *Store) ResolveActive() (Settings, bool, error) {
	var settings Settings
	ok, err := readJSON(filepath.Join(s.dir, SettingsFile), &settings)
	if err != nil || !ok {
		return Settings{}, false, err
	}
	return settings, true, nil
}

// Active is ResolveActive for callers that need a project, returning
// ErrNotConfigured when there is none.
func (s *Store) Active() (Settings, error) {
	settings, ok, err := s.ResolveActive()
	if err != nil {
		return Settings{}, err
	}
	if !ok {
		return Settings{}, ErrNotConfigured
	}
	return settings, nil
}

// Activate makes settings the active project. The working directory and its
// collection directories are created when missing, the marker is written with
// createdAt kept from an existing marker, and the settings blob is replaced.
func (s *Store) Activate(ctx context.Context, settings Settings) error {
	settings = settings.Normalize()
	if err := settings.Validate(); err != nil {
		return err
	}
	pc := settings.Context()
	for _, dir := range []string{pc.LiteratureDir(), pc.AttributeDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure %s: %w", dir, err)
		}
		if check := preflight.CheckDirectoryAccess(filepath.Base(dir), dir); !check.Passed {
			return fmt.Errorf("project directory unusable: %s", check.Detail)
		}
	}

	return s.withLock(ctx, func() error {
		if err := s.writeMetadata(settings); err != nil {
			return err
		}
		if err := s.writeSettings(settings); err != nil {
			return err
		}
		s.logger.Info("project activated",
			logging.String(logging.FieldProjectDir, settings.WorkingDir),
			logging.String("project_name", settings.ProjectName),
		)
		return nil
	})
}

// Adopt activates an existing project directory identified by its marker.
// The stored name, description and repository directory are kept; the working
// directory becomes dir.
func (s *Store) Adopt(ctx context.Context, dir string) (Settings, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Settings{}, fmt.Errorf("resolve %s: %w", dir, err)
	}
	meta, ok, err := ReadMetadata(abs)
	if err != nil {
		return Settings{}, err
	}
	if !ok {
		return Settings{}, fmt.Errorf("%w: %s has no %s", ErrNotAProject, abs, MetadataFile)
	}

	settings := meta.Settings(abs).Normalize()
	if err := os.MkdirAll(settings.Context().LiteratureDir(), 0o755); err != nil {
		return Settings{}, fmt.Errorf("ensure literature directory: %w", err)
	}
	err = s.withLock(ctx, func() error {
		return s.writeSettings(settings)
	})
	if err != nil {
		return Settings{}, err
	}
	s.logger.Info("project adopted", logging.String(logging.FieldProjectDir, abs))
	return settings, nil
}

// ReadMetadata loads the marker in dir. ok is false when it does not exist.
func ReadMetadata(dir string) (Metadata, bool, error) {
	var meta Metadata
	ok, err := readJSON(filepath.Join(dir, MetadataFile), &meta)
	if err != nil || !ok {
		return Metadata{}, false, err
	}
	return meta, true, nil
}

// LoadNavigation returns the saved navigation state, or the zero value when
// none has been saved. A corrupt blob is logged and treated as absent.
func (s *Store) LoadNavigation() (Navigation, error) {
	var nav Navigation
	path := filepath.Join(s.dir, NavigationFile)
	ok, err := readJSON(path, &nav)
	if err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			logging.WarnWithContext(s.logger, "ignoring unreadable navigation state", "navigation_state_invalid",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "navigation state reset"),
			)
			return Navigation{}, nil
		}
		return Navigation{}, err
	}
	if !ok {
		return Navigation{}, nil
	}
	return nav, nil
}

// SaveNavigation replaces the navigation state.
func (s *Store) SaveNavigation(ctx context.Context, nav Navigation) error {
	nav.UpdatedAt = store.Timestamp(s.now())
	return s.withLock(ctx, func() error {
		return writeJSON(filepath.Join(s.dir, NavigationFile), nav)
	})
}

func (s *Store) writeSettings(settings Settings) error {
	if err := writeJSON(filepath.Join(s.dir, SettingsFile), settings); err != nil {
		return fmt.Errorf("write active project settings: %w", err)
	}
	return nil
}

func (s *Store) writeMetadata(settings Settings) error {
	pc := settings.Context()
	now := store.Timestamp(s.now())
	createdAt := now
	existing, ok, err := ReadMetadata(settings.WorkingDir)
	switch {
	case err != nil:
		logging.WarnWithContext(s.logger, "replacing unreadable project marker", "project_marker_invalid",
			logging.String(logging.FieldPath, pc.MetadataPath()),
			logging.Error(err),
			logging.String(logging.FieldImpact, "project creation time reset"),
		)
	case ok && existing.CreatedAt != "":
		createdAt = existing.CreatedAt
	}

	meta := Metadata{
		ProjectName:        settings.ProjectName,
		ProjectDescription: settings.ProjectDescription,
		WorkingDir:         settings.WorkingDir,
		CreatedAt:          createdAt,
		UpdatedAt:          now,
	}
	if settings.RepositoryDir != "" {
		repo := settings.RepositoryDir
		meta.RepositoryDir = &repo
	}
	if err := writeJSON(pc.MetadataPath(), meta); err != nil {
		return fmt.Errorf("write project marker: %w", err)
	}
	return nil
}

func (s *Store) withLock(ctx context.Context, fn func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("ensure state directory: %w", err)
	}
	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire state lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("acquire state lock: %s is held by another process", s.lock.Path())
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("failed to release state lock", logging.Error(err))
		}
	}()
	return fn()
}

func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return true, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, append(data, '\n'), 0o644)
}
