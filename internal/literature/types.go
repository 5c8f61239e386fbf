package literature

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Type is the discriminator stored in the "type" field.
type Type string

const (
	TypeJournalArticle  Type = "journal_article"
	TypeConferencePaper Type = "conference_paper"
	TypeBook            Type = "book"
	TypeBookChapter     Type = "book_chapter"
	TypeThesis          Type = "thesis"
	TypeOther           Type = "other"
)

// Types lists the known variants in display order.
var Types = []Type{
	TypeJournalArticle,
	TypeConferencePaper,
	TypeBook,
	TypeBookChapter,
	TypeThesis,
	TypeOther,
}

// Valid reports whether t is a known variant.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Label returns a display name, e.g. "Journal Article".
func (t Type) Label() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(t), "_", " "))
}

// ParseType accepts a type tag or its label in any case.
func ParseType(s string) (Type, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	t := Type(norm)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

func typeNames() string {
	names := make([]string, 0, len(Types))
	for _, t := range Types {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

// ThesisType is the degree level of a thesis.
type ThesisType string

const (
	ThesisDoctoral  ThesisType = "doctoral"
	ThesisMasters   ThesisType = "masters"
	ThesisBachelors ThesisType = "bachelors"
)
