package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"litshelf/internal/literature"
)

// literatureFlags collects record fields given on the command line. They are
// laid over a JSON document so one parser validates every input path.
type literatureFlags struct {
	typ     string
	title   string
	year    int
	authors []string
	notes   string
	pdf     string
	fields  []string
}

func (f *literatureFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.typ, "type", "t", "", "Literature type (see `litshelf lit types`)")
	flags.StringVar(&f.title, "title", "", "Title")
	flags.IntVarP(&f.year, "year", "y", 0, "Publication year")
	flags.StringArrayVarP(&f.authors, "author", "a", nil, "Author name (repeat for several)")
	flags.StringVar(&f.notes, "notes", "", "Free-form notes")
	flags.StringVar(&f.pdf, "pdf", "", "PDF path, relative to the repository directory or absolute")
	flags.StringArrayVarP(&f.fields, "field", "f", nil, "Type-specific field as key=value (lists separated by ';')")
}

// apply overlays the changed flags onto doc. An empty value removes a field.
func (f *literatureFlags) apply(cmd *cobra.Command, doc map[string]any) error {
	flags := cmd.Flags()
	if flags.Changed("type") {
		t, err := literature.ParseType(f.typ)
		if err != nil {
			return err
		}
		doc["type"] = string(t)
	}
	if flags.Changed("title") {
		doc["title"] = f.title
	}
	if flags.Changed("year") {
		doc["year"] = f.year
	}
	if flags.Changed("author") {
		doc["authors"] = f.authors
	}
	if flags.Changed("notes") {
		setOrDelete(doc, "notes", f.notes)
	}
	if flags.Changed("pdf") {
		setOrDelete(doc, "pdfFilePath", f.pdf)
	}
	if len(f.fields) == 0 {
		return nil
	}

	typ, _ := doc["type"].(string)
	known, err := literature.VariantFields(literature.Type(typ))
	if err != nil {
		return fmt.Errorf("--field needs a type: %w", err)
	}
	for _, kv := range f.fields {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("invalid --field %q (want key=value)", kv)
		}
		i := slices.IndexFunc(known, func(vf literature.VariantField) bool { return vf.Name == key })
		if i < 0 {
			return fmt.Errorf("unknown field %q for %s (see `litshelf lit types`)", key, typ)
		}
		value = strings.TrimSpace(value)
		if value == "" {
			delete(doc, key)
			continue
		}
		switch known[i].Kind {
		case literature.FieldNumber:
			// Non-numeric input is left as a string for the parser to report.
			if n, err := strconv.Atoi(value); err == nil {
				doc[key] = n
			} else {
				doc[key] = value
			}
		case literature.FieldList:
			doc[key] = splitList(value)
		default:
			doc[key] = value
		}
	}
	return nil
}

func setOrDelete(doc map[string]any, key, value string) {
	if strings.TrimSpace(value) == "" {
		delete(doc, key)
		return
	}
	doc[key] = value
}

func splitList(value string) []string {
	parts := strings.Split(value, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// toDocument converts a record to its editable JSON object.
func toDocument(lit literature.Literature) (map[string]any, error) {
	data, err := json.Marshal(lit)
	if err != nil {
		return nil, err
	}
	doc := map[string]any{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// splitDocuments accepts a single JSON object or an array of objects.
func splitDocuments(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var docs []json.RawMessage
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, fmt.Errorf("decode literature array: %w", err)
		}
		return docs, nil
	}
	return []json.RawMessage{trimmed}, nil
}

func formatVariantValue(v any) string {
	switch value := v.(type) {
	case []any:
		parts := make([]string, 0, len(value))
		for _, item := range value {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, "; ")
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}
