package library

import (
	"log/slog"
	"time"

	"litshelf/internal/attribute"
	"litshelf/internal/literature"
	"litshelf/internal/logging"
	"litshelf/internal/project"
	"litshelf/internal/store"
)

// Service operates on one project.
type Service struct {
	project     project.Context
	literatures *store.Repository[literature.Literature]
	schemas     *store.Repository[*attribute.Schema]
	logger      *slog.Logger
	now         func() time.Time
}

// Option customizes a Service.
type Option func(*settings)

type settings struct {
	logger *slog.Logger
	now    func() time.Time
}

// WithLogger sets the logger shared by the service and its repositories.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithClock replaces time.Now for validation and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// Open returns a Service for pc. No files are touched until an operation runs.
func Open(pc project.Context, opts ...Option) *Service {
	cfg := settings{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	repoOpts := []store.Option{store.WithLogger(cfg.logger), store.WithClock(cfg.now)}
	return &Service{
		project:     pc,
		literatures: store.New(pc.WorkingDir, store.LiteratureKind, literature.Decode, repoOpts...),
		schemas:     store.New(pc.WorkingDir, store.AttributeSchemaKind, attribute.Decode, repoOpts...),
		logger:      logging.NewComponentLogger(cfg.logger, "library"),
		now:         cfg.now,
	}
}

// Project returns the bound project layout.
func (s *Service) Project() project.Context {
	return s.project
}
