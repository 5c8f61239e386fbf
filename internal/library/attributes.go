package library

import (
	"fmt"
	"strings"

	"litshelf/internal/attribute"
	"litshelf/internal/literature"
	"litshelf/internal/validate"
)

// ApplyAttribute adds value under attributeID on the stored literature and
// saves it. The schema must exist and allow the value.
func (s *Service) ApplyAttribute(literatureID, attributeID, value string) (literature.Literature, error) {
	if strings.TrimSpace(value) == "" {
		return nil, validate.Field("value", "cannot be blank")
	}
	lit, err := s.GetLiterature(literatureID)
	if err != nil {
		return nil, err
	}
	schema, ok, err := s.schemas.Load(attributeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", attribute.ErrSchemaNotFound, attributeID)
	}
	if err := schema.CheckValue(value); err != nil {
		return nil, err
	}
	return s.update(literature.ApplyValue(lit, attributeID, value))
}

// RemoveAttribute removes value under attributeID. It works for applications
// whose schema has been deleted.
func (s *Service) RemoveAttribute(literatureID, attributeID, value string) (literature.Literature, error) {
	lit, err := s.GetLiterature(literatureID)
	if err != nil {
		return nil, err
	}
	return s.update(literature.RemoveValue(lit, attributeID, value))
}

// SetAttributeNote replaces the note of an existing application.
func (s *Service) SetAttributeNote(literatureID, attributeID, note string) (literature.Literature, error) {
	lit, err := s.GetLiterature(literatureID)
	if err != nil {
		return nil, err
	}
	if _, ok := attribute.Find(lit.Meta().Attributes, attributeID); !ok {
		return nil, fmt.Errorf("literature %s has no values for attribute %s", literatureID, attributeID)
	}
	return s.update(literature.SetNote(lit, attributeID, note))
}

func (s *Service) update(lit literature.Literature) (literature.Literature, error) {
	if _, err := s.SaveLiterature(lit); err != nil {
		return nil, err
	}
	return lit, nil
}

// ResolvedAttribute pairs an application with its schema. Schema is nil
// and Missing is true when the schema no longer exists.
type ResolvedAttribute struct {
	attribute.Application
	Name    string            `json:"name"`
	Schema  *attribute.Schema `json:"-"`
	Missing bool              `json:"missing,omitempty"`
}

// ResolveAttributes returns the applications of lit with their schemas.
func (s *Service) ResolveAttributes(lit literature.Literature) ([]ResolvedAttribute, error) {
	catalog, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	apps := lit.Meta().Attributes
	out := make([]ResolvedAttribute, 0, len(apps))
	for _, app := range apps {
		schema, ok := catalog.Lookup(app.AttributeID)
		out = append(out, ResolvedAttribute{
			Application: app,
			Name:        catalog.Name(app.AttributeID),
			Schema:      schema,
			Missing:     !ok,
		})
	}
	return out, nil
}
