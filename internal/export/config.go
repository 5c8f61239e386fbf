package export

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for a format other than csv or tsv.
	ErrUnsupportedFormat = errors.New("unsupported export format")
	// ErrUnknownField is returned for an unrecognised column name.
	ErrUnknownField = errors.New("unknown export field")
)

// Format selects the text delimiter.
type Format string

const (
	FormatCSV Format = "csv"
	FormatTSV Format = "tsv"
)

// ParseFormat accepts "csv" or "tsv" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatTSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Delimiter returns the cell separator for f.
func (f Format) Delimiter() (string, error) {
	switch f {
	case FormatCSV:
		return ",", nil
	case FormatTSV:
		return "\t", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}

// Extension returns the file extension for f including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Field is one exportable column.
type Field string

const (
	FieldID        Field = "id"
	FieldTitle     Field = "title"
	FieldYear      Field = "year"
	FieldAuthors   Field = "authors"
	FieldFilename  Field = "filename"
	FieldFilepath  Field = "filepath"
	FieldAttribute Field = "attribute"
	FieldValue     Field = "value"
)

// Fields lists every column in display order.
var Fields = []Field{
	FieldID,
	FieldTitle,
	FieldYear,
	FieldAuthors,
	FieldFilename,
	FieldFilepath,
	FieldAttribute,
	FieldValue,
}

// DefaultFields is the initial column selection.
var DefaultFields = []Field{FieldID, FieldAttribute, FieldValue}

// ParseFields converts column names, rejecting unknown ones.
func ParseFields(names []string) ([]Field, error) {
	out := make([]Field, 0, len(names))
	for _, name := range names {
		f := Field(strings.ToLower(strings.TrimSpace(name)))
		if !slices.Contains(Fields, f) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		out = append(out, f)
	}
	return out, nil
}

// Couple adds the missing half of the attribute/value pair: value right after
// attribute, or attribute right before value. The input is not modified.
func Couple(fields []Field) []Field {
	hasAttr := slices.Contains(fields, FieldAttribute)
	hasValue := slices.Contains(fields, FieldValue)
	out := slices.Clone(fields)
	switch {
	case hasAttr && !hasValue:
		i := slices.Index(out, FieldAttribute)
		out = slices.Insert(out, i+1, FieldValue)
	case hasValue && !hasAttr:
		i := slices.Index(out, FieldValue)
		out = slices.Insert(out, i, FieldAttribute)
	}
	return out
}

// Config selects the output shape.
type Config struct {
	Format Format
	Fields []Field
	// AttributeIDs restricts observations to these schemas when non-empty.
	AttributeIDs []string
}

// Validate checks the format and every field.
func (c Config) Validate() error {
	if _, err := c.Format.Delimiter(); err != nil {
		return err
	}
	for _, f := range c.Fields {
		if !slices.Contains(Fields, f) {
			return fmt.Errorf("%w: %q", ErrUnknownField, string(f))
		}
	}
	return nil
}

// attributeRows reports whether rows are per observation. Either half of the
// attribute/value pair switches the shape.
func (c Config) attributeRows() bool {
	return slices.Contains(c.Fields, FieldAttribute) || slices.Contains(c.Fields, FieldValue)
}

func (c Config) includesAttribute(id string) bool {
	return len(c.AttributeIDs) == 0 || slices.Contains(c.AttributeIDs, id)
}
