package export

import (
	"strconv"
	"strings"

	"litshelf/internal/attribute"
	"litshelf/internal/literature"
)

// Observation is one tidy row before rendering.
type Observation struct {
	Literature  literature.Literature
	AttributeID string
	Attribute   string
	Value       string
	Note        string
}

// Observations expands lits into rows following cfg. In per-record mode the
// attribute fields are empty.
func Observations(cfg Config, lits []literature.Literature, catalog *attribute.Catalog) []Observation {
	var out []Observation
	for _, lit := range lits {
		if !cfg.attributeRows() {
			out = append(out, Observation{Literature: lit})
			continue
		}
		for _, app := range lit.Meta().Attributes {
			if !cfg.includesAttribute(app.AttributeID) {
				continue
			}
			name := catalog.Name(app.AttributeID)
			for _, v := range app.Values {
				out = append(out, Observation{
					Literature:  lit,
					AttributeID: app.AttributeID,
					Attribute:   name,
					Value:       v,
					Note:        app.Note,
				})
			}
		}
	}
	return out
}

// Cell returns the text of field for o.
func (o Observation) Cell(field Field) string {
	c := o.Literature.Meta()
	switch field {
	case FieldID:
		return c.ID
	case FieldTitle:
		return c.Title
	case FieldYear:
		return strconv.Itoa(c.Year)
	case FieldAuthors:
		return strings.Join(c.Authors, "; ")
	case FieldFilename:
		return Filename(c.PDFFilePath)
	case FieldFilepath:
		return c.PDFFilePath
	case FieldAttribute:
		return o.Attribute
	case FieldValue:
		return o.Value
	default:
		return ""
	}
}

// Filename returns the last segment of path, accepting both slash styles.
func Filename(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
