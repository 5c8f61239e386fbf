package library

import (
	"fmt"

	"litshelf/internal/attribute"
	"litshelf/internal/literature"
	"litshelf/internal/logging"
	"litshelf/internal/store"
)

// SaveLiterature validates and persists lit, returning its id. Empty attribute
// applications are dropped first. An existing record keeps its type.
func (s *Service) SaveLiterature(lit literature.Literature) (string, error) {
	c := lit.Meta()
	c.Attributes = attribute.Normalize(c.Attributes)
	if err := literature.Validate(lit, s.now()); err != nil {
		return "", err
	}
	if id := lit.RecordID(); id != "" {
		stored, ok, err := s.literatures.Load(id)
		if err != nil {
			return "", err
		}
		if ok && stored.Kind() != lit.Kind() {
			return "", fmt.Errorf("%w: %s is a %s", literature.ErrTypeChanged, id, stored.Kind())
		}
	}
	id, err := s.literatures.Save(lit)
	if err != nil {
		return "", err
	}
	s.logger.Debug("literature saved", logging.Args(logging.Record(store.LiteratureKind.Name, id)...)...)
	return id, nil
}

// LoadLiterature returns the record with id; ok is false when it does not exist.
func (s *Service) LoadLiterature(id string) (literature.Literature, bool, error) {
	return s.literatures.Load(id)
}

// GetLiterature is LoadLiterature returning a *store.NotFoundError for a
// missing record.
func (s *Service) GetLiterature(id string) (literature.Literature, error) {
	lit, ok, err := s.literatures.Load(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &store.NotFoundError{Kind: store.LiteratureKind.Name, ID: id}
	}
	return lit, nil
}

// Literatures returns every readable record in storage order.
func (s *Service) Literatures() ([]literature.Literature, error) {
	return s.literatures.List()
}

// ListLiteratures returns the listing projection of every readable record.
func (s *Service) ListLiteratures() ([]literature.Summary, error) {
	lits, err := s.literatures.List()
	if err != nil {
		return nil, err
	}
	out := make([]literature.Summary, 0, len(lits))
	for _, lit := range lits {
		out = append(out, literature.Summarize(lit))
	}
	return out, nil
}

// SearchRequest combines filtering, ordering and paging.
type SearchRequest struct {
	Query    literature.Query
	Sort     literature.SortKey
	Page     int
	PageSize int
}

// SearchResult is one page of matches and the total match count.
type SearchResult struct {
	Items []literature.Literature
	Total int
}

// SearchLiteratures filters, sorts and pages the collection.
func (s *Service) SearchLiteratures(req SearchRequest) (SearchResult, error) {
	lits, err := s.literatures.List()
	if err != nil {
		return SearchResult{}, err
	}
	matches := literature.Filter(lits, req.Query)
	literature.Sort(matches, req.Sort)
	return SearchResult{
		Items: literature.Page(matches, req.Page, req.PageSize),
		Total: len(matches),
	}, nil
}

// DeleteLiterature removes the record with id.
func (s *Service) DeleteLiterature(id string) error {
	if err := s.literatures.Delete(id); err != nil {
		return err
	}
	s.logger.Debug("literature deleted", logging.Args(logging.Record(store.LiteratureKind.Name, id)...)...)
	return nil
}

// RetypeLiterature replaces the record with id by a record of type t that
// carries the same common fields under a new id. Variant fields are dropped.
func (s *Service) RetypeLiterature(id string, t literature.Type) (literature.Literature, error) {
	lit, err := s.GetLiterature(id)
	if err != nil {
		return nil, err
	}
	if lit.Kind() == t {
		return lit, nil
	}
	next, err := literature.Retype(lit, t)
	if err != nil {
		return nil, err
	}
	if _, err := s.SaveLiterature(next); err != nil {
		return nil, err
	}
	if err := s.literatures.Delete(id); err != nil {
		return nil, fmt.Errorf("remove retyped literature %s: %w", id, err)
	}
	s.logger.Info("literature retyped",
		logging.Args(append(logging.Record(store.LiteratureKind.Name, next.RecordID()),
			logging.String("previous_id", id),
			logging.String("type", string(t)))...)...)
	return next, nil
}
