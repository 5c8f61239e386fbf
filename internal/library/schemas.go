package library

import (
	"cmp"
	"slices"

	"golang.org/x/text/cases"

	"litshelf/internal/attribute"
	"litshelf/internal/logging"
	"litshelf/internal/store"
)

// SchemaSummary is the listing projection of a schema.
type SchemaSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SaveSchema validates and persists schema, returning its id.
func (s *Service) SaveSchema(schema *attribute.Schema) (string, error) {
	if err := schema.Validate(); err != nil {
		return "", err
	}
	id, err := s.schemas.Save(schema)
	if err != nil {
		return "", err
	}
	s.logger.Debug("attribute schema saved", logging.Args(logging.Record(store.AttributeSchemaKind.Name, id)...)...)
	return id, nil
}

// SaveDraft builds a schema from draft and saves it. With id set, the stored
// schema is updated and its value ids are kept for unchanged values.
func (s *Service) SaveDraft(id string, draft attribute.Draft) (*attribute.Schema, error) {
	var existing *attribute.Schema
	if id != "" {
		var err error
		existing, err = s.GetSchema(id)
		if err != nil {
			return nil, err
		}
	}
	schema := draft.Schema(existing)
	if _, err := s.SaveSchema(schema); err != nil {
		return nil, err
	}
	return schema, nil
}

// LoadSchema returns the schema with id; ok is false when it does not exist.
func (s *Service) LoadSchema(id string) (*attribute.Schema, bool, error) {
	return s.schemas.Load(id)
}

// GetSchema is LoadSchema returning a *store.NotFoundError for a missing schema.
func (s *Service) GetSchema(id string) (*attribute.Schema, error) {
	schema, ok, err := s.schemas.Load(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &store.NotFoundError{Kind: store.AttributeSchemaKind.Name, ID: id}
	}
	return schema, nil
}

// Schemas returns every readable schema ordered by name.
func (s *Service) Schemas() ([]*attribute.Schema, error) {
	schemas, err := s.schemas.List()
	if err != nil {
		return nil, err
	}
	fold := cases.Fold()
	slices.SortStableFunc(schemas, func(a, b *attribute.Schema) int {
		return cmp.Or(
			cmp.Compare(fold.String(a.Name), fold.String(b.Name)),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return schemas, nil
}

// ListSchemas returns the listing projection of every readable schema.
func (s *Service) ListSchemas() ([]SchemaSummary, error) {
	schemas, err := s.Schemas()
	if err != nil {
		return nil, err
	}
	out := make([]SchemaSummary, 0, len(schemas))
	for _, schema := range schemas {
		out = append(out, SchemaSummary{ID: schema.ID, Name: schema.Name})
	}
	return out, nil
}

// DeleteSchema removes the schema with id. Records referring to it are left
// as they are.
func (s *Service) DeleteSchema(id string) error {
	if err := s.schemas.Delete(id); err != nil {
		return err
	}
	s.logger.Debug("attribute schema deleted", logging.Args(logging.Record(store.AttributeSchemaKind.Name, id)...)...)
	return nil
}

// Catalog indexes every readable schema.
func (s *Service) Catalog() (*attribute.Catalog, error) {
	schemas, err := s.Schemas()
	if err != nil {
		return nil, err
	}
	return attribute.NewCatalog(schemas), nil
}
