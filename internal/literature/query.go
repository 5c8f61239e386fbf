package literature

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"litshelf/internal/attribute"
)

// Summary is the listing projection of a record.
type Summary struct {
	ID         string                  `json:"id"`
	Type       Type                    `json:"type"`
	Title      string                  `json:"title"`
	Year       int                     `json:"year"`
	Authors    []string                `json:"authors"`
	Attributes []attribute.Application `json:"attributes,omitempty"`
	UpdatedAt  string                  `json:"updatedAt,omitempty"`
}

// Summarize projects lit for listings.
func Summarize(lit Literature) Summary {
	c := lit.Meta()
	return Summary{
		ID:         c.ID,
		Type:       lit.Kind(),
		Title:      c.Title,
		Year:       c.Year,
		Authors:    c.Authors,
		Attributes: c.Attributes,
		UpdatedAt:  c.UpdatedAt,
	}
}

// Query narrows a listing. Zero fields match everything.
type Query struct {
	// Text matches case-insensitively against the title and author names.
	Text string
	Type Type
	// AttributeID keeps records with an application of that schema; with
	// AttributeValue set the application must also contain the value.
	AttributeID    string
	AttributeValue string
	YearFrom       int
	YearTo         int
}

// Match reports whether lit satisfies every criterion of q.
func (q Query) Match(lit Literature) bool {
	c := lit.Meta()
	if q.Type != "" && lit.Kind() != q.Type {
		return false
	}
	if q.YearFrom != 0 && c.Year < q.YearFrom {
		return false
	}
	if q.YearTo != 0 && c.Year > q.YearTo {
		return false
	}
	if q.AttributeID != "" {
		app, ok := attribute.Find(c.Attributes, q.AttributeID)
		if !ok {
			return false
		}
		if q.AttributeValue != "" && !slices.Contains(app.Values, q.AttributeValue) {
			return false
		}
	}
	if text := strings.TrimSpace(q.Text); text != "" {
		fold := cases.Fold()
		needle := fold.String(text)
		if strings.Contains(fold.String(c.Title), needle) {
			return true
		}
		for _, author := range c.Authors {
			if strings.Contains(fold.String(author), needle) {
				return true
			}
		}
		return false
	}
	return true
}

// Filter returns the records matching q, preserving order.
func Filter(lits []Literature, q Query) []Literature {
	out := make([]Literature, 0, len(lits))
	for _, lit := range lits {
		if q.Match(lit) {
			out = append(out, lit)
		}
	}
	return out
}

// SortKey selects a listing order.
type SortKey string

const (
	// SortUpdated lists the most recently saved records first.
	SortUpdated SortKey = "updated"
	// SortCreated lists the most recently created records first.
	SortCreated SortKey = "created"
	// SortTitle lists records alphabetically, ignoring case.
	SortTitle SortKey = "title"
	// SortYear lists the newest publications first.
	SortYear SortKey = "year"
)

// ParseSortKey validates a sort key name.
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(s))); key {
	case SortUpdated, SortCreated, SortTitle, SortYear:
		return key, nil
	case "":
		return SortUpdated, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// Sort orders lits in place. Ties fall back to the record id.
func Sort(lits []Literature, key SortKey) {
	fold := cases.Fold()
	slices.SortStableFunc(lits, func(a, b Literature) int {
		ca, cb := a.Meta(), b.Meta()
		var c int
		switch key {
		case SortCreated:
			c = cmp.Compare(cb.CreatedAt, ca.CreatedAt)
		case SortTitle:
			c = cmp.Compare(fold.String(ca.Title), fold.String(cb.Title))
		case SortYear:
			c = cmp.Compare(cb.Year, ca.Year)
		default:
			c = cmp.Compare(cb.UpdatedAt, ca.UpdatedAt)
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(ca.ID, cb.ID)
	})
}

// Page returns the 1-based page of size items. A size of zero returns lits
// unchanged.
func Page(lits []Literature, page, size int) []Literature {
	if size <= 0 {
		return lits
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(lits) {
		return nil
	}
	return lits[start:min(start+size, len(lits))]
}
