package attribute

import (
	"strings"

	"litshelf/internal/idgen"
)

// Draft is the editable form of a schema. Values are plain strings; ids are
// attached only when the draft becomes a Schema.
type Draft struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Values        []string `json:"values,omitempty"`
	AllowFreeText bool     `json:"allowFreeText"`
}

// DraftOf returns a draft for editing s.
func DraftOf(s *Schema) Draft {
	if s == nil {
		return Draft{}
	}
	return Draft{
		Name:          s.Name,
		Description:   s.Description,
		Values:        s.Values(),
		AllowFreeText: s.AllowFreeText,
	}
}

// Schema builds the schema to persist. Identity and createdAt carry over from
// existing (which may be nil). A value whose text already exists in existing
// keeps its id; new texts get fresh ids. Blank and repeated texts are dropped.
func (d Draft) Schema(existing *Schema) *Schema {
	out := &Schema{
		Name:          strings.TrimSpace(d.Name),
		Description:   strings.TrimSpace(d.Description),
		AllowFreeText: d.AllowFreeText,
	}

	known := map[string]string{}
	if existing != nil {
		out.ID = existing.ID
		out.CreatedAt = existing.CreatedAt
		for _, v := range existing.PredefinedValues {
			if _, ok := known[v.Value]; !ok {
				known[v.Value] = v.ID
			}
		}
	}

	seen := make(map[string]struct{}, len(d.Values))
	for _, raw := range d.Values {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		id, ok := known[text]
		if !ok || id == "" {
			id = idgen.New()
		}
		out.PredefinedValues = append(out.PredefinedValues, Value{ID: id, Value: text})
	}
	return out
}
