package store

import (
	"strings"
	"time"
)

// Kind describes one record collection.
type Kind struct {
	// Name identifies the collection in logs and errors.
	Name string
	// Dir is the collection subdirectory beneath the project working directory.
	Dir string
	// Suffix is appended to the record id to form the file name.
	Suffix string
}

var (
	LiteratureKind      = Kind{Name: "literature", Dir: "literatures", Suffix: ".literature.json"}
	AttributeSchemaKind = Kind{Name: "attribute-schema", Dir: "attributes", Suffix: ".attribute-schema.json"}
)

// FileName returns the file name used for id.
func (k Kind) FileName(id string) string {
	return id + k.Suffix
}

// IDFromFileName extracts the record id from a collection file name.
func (k Kind) IDFromFileName(name string) (string, bool) {
	if !strings.HasSuffix(name, k.Suffix) {
		return "", false
	}
	id := strings.TrimSuffix(name, k.Suffix)
	if id == "" {
		return "", false
	}
	return id, true
}

// TimestampLayout is ISO-8601 with millisecond precision, always in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp renders t in the stored timestamp format.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
