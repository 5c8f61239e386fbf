package library

import (
	"context"

	"litshelf/internal/export"
)

// Export renders the project as tidy delimited text.
func (s *Service) Export(cfg export.Config) (export.Output, error) {
	lits, err := s.literatures.List()
	if err != nil {
		return export.Output{}, err
	}
	catalog, err := s.Catalog()
	if err != nil {
		return export.Output{}, err
	}
	return export.Render(cfg, lits, catalog)
}

// ExportSQLite writes the project to a new SQLite database at path.
func (s *Service) ExportSQLite(ctx context.Context, path string, cfg export.Config) error {
	lits, err := s.literatures.List()
	if err != nil {
		return err
	}
	catalog, err := s.Catalog()
	if err != nil {
		return err
	}
	return export.WriteSQLite(ctx, path, cfg, lits, catalog)
}
