package export

import (
	"strings"

	"litshelf/internal/attribute"
	"litshelf/internal/literature"
)

// Tidy renders lits as delimited text. The header is the field names joined by
// the delimiter and is present even with no rows. Every line ends in "\n".
// Schemas missing from catalog are shown by their raw id.
func Tidy(cfg Config, lits []literature.Literature, catalog *attribute.Catalog) (string, error) {
	out, err := Render(cfg, lits, catalog)
	return out.Text, err
}

// Output is a rendered tidy export. Rows excludes the header; a quoted cell
// may span lines, so it can be less than the line count.
type Output struct {
	Text string
	Rows int
}

// Render is Tidy that also reports how many data rows were written.
func Render(cfg Config, lits []literature.Literature, catalog *attribute.Catalog) (Output, error) {
	if err := cfg.Validate(); err != nil {
		return Output{}, err
	}
	delim, _ := cfg.Format.Delimiter()

	var b strings.Builder
	header := make([]string, len(cfg.Fields))
	for i, f := range cfg.Fields {
		header[i] = string(f)
	}
	b.WriteString(strings.Join(header, delim))
	b.WriteByte('\n')

	rows := Observations(cfg, lits, catalog)
	for _, obs := range rows {
		for i, f := range cfg.Fields {
			if i > 0 {
				b.WriteString(delim)
			}
			b.WriteString(Escape(obs.Cell(f), delim))
		}
		b.WriteByte('\n')
	}
	return Output{Text: b.String(), Rows: len(rows)}, nil
}

// Escape quotes value when it contains delim, a double quote, or a line
// break, doubling any inner quotes. Other values are returned unchanged.
func Escape(value, delim string) string {
	if !strings.Contains(value, delim) && !strings.ContainsAny(value, "\"\n\r") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
