package literature

import (
	"encoding/json"
	"strconv"

	"litshelf/internal/attribute"
)

// Common holds the fields shared by every variant.
type Common struct {
	ID          string                  `json:"id,omitempty"`
	Title       string                  `json:"title"`
	Year        int                     `json:"year"`
	Authors     []string                `json:"authors"`
	Notes       string                  `json:"notes,omitempty"`
	PDFFilePath string                  `json:"pdfFilePath,omitempty"`
	CreatedAt   string                  `json:"createdAt,omitempty"`
	UpdatedAt   string                  `json:"updatedAt,omitempty"`
	Attributes  []attribute.Application `json:"attributes,omitempty"`
}

func (c *Common) Meta() *Common { return c }

func (c *Common) RecordID() string { return c.ID }

func (c *Common) SetRecordID(id string) { c.ID = id }

func (c *Common) Timestamps() (string, string) { return c.CreatedAt, c.UpdatedAt }

func (c *Common) SetTimestamps(createdAt, updatedAt string) {
	c.CreatedAt, c.UpdatedAt = createdAt, updatedAt
}

// Literature is implemented by the pointer types of the six variants.
type Literature interface {
	Kind() Type
	Meta() *Common
	RecordID() string
	SetRecordID(id string)
	Timestamps() (createdAt, updatedAt string)
	SetTimestamps(createdAt, updatedAt string)

	validateVariant() error
}

type JournalArticle struct {
	Common
	Journal   string `json:"journal,omitempty"`
	Volume    string `json:"volume,omitempty"`
	Issue     string `json:"issue,omitempty"`
	Pages     string `json:"pages,omitempty"`
	DOI       string `json:"doi,omitempty"`
	URL       string `json:"url,omitempty"`
	Publisher string `json:"publisher,omitempty"`
}

type ConferencePaper struct {
	Common
	Conference string `json:"conference,omitempty"`
	Location   string `json:"location,omitempty"`
	Pages      string `json:"pages,omitempty"`
	DOI        string `json:"doi,omitempty"`
	URL        string `json:"url,omitempty"`
	Publisher  string `json:"publisher,omitempty"`
}

type Book struct {
	Common
	Publisher  string `json:"publisher,omitempty"`
	ISBN       string `json:"isbn,omitempty"`
	Edition    string `json:"edition,omitempty"`
	TotalPages *int   `json:"totalPages,omitempty"`
}

type BookChapter struct {
	Common
	BookTitle string   `json:"bookTitle,omitempty"`
	Publisher string   `json:"publisher,omitempty"`
	Editors   []string `json:"editors,omitempty"`
	Chapter   string   `json:"chapter,omitempty"`
	Pages     string   `json:"pages,omitempty"`
	ISBN      string   `json:"isbn,omitempty"`
}

type Thesis struct {
	Common
	ThesisType  ThesisType `json:"thesisType,omitempty"`
	Institution string     `json:"institution,omitempty"`
	Department  string     `json:"department,omitempty"`
	URL         string     `json:"url,omitempty"`
}

// Other covers sources that fit no specific variant (reports, web pages, ...).
type Other struct {
	Common
	SourceType string `json:"sourceType,omitempty"`
	Source     string `json:"source,omitempty"`
	URL        string `json:"url,omitempty"`
}

func (*JournalArticle) Kind() Type  { return TypeJournalArticle }
func (*ConferencePaper) Kind() Type { return TypeConferencePaper }
func (*Book) Kind() Type            { return TypeBook }
func (*BookChapter) Kind() Type     { return TypeBookChapter }
func (*Thesis) Kind() Type          { return TypeThesis }
func (*Other) Kind() Type           { return TypeOther }

func (v JournalArticle) MarshalJSON() ([]byte, error) {
	type plain JournalArticle
	body, err := json.Marshal(plain(v))
	return tagged(TypeJournalArticle, body, err)
}

func (v ConferencePaper) MarshalJSON() ([]byte, error) {
	type plain ConferencePaper
	body, err := json.Marshal(plain(v))
	return tagged(TypeConferencePaper, body, err)
}

func (v Book) MarshalJSON() ([]byte, error) {
	type plain Book
	body, err := json.Marshal(plain(v))
	return tagged(TypeBook, body, err)
}

func (v BookChapter) MarshalJSON() ([]byte, error) {
	type plain BookChapter
	body, err := json.Marshal(plain(v))
	return tagged(TypeBookChapter, body, err)
}

func (v Thesis) MarshalJSON() ([]byte, error) {
	type plain Thesis
	body, err := json.Marshal(plain(v))
	return tagged(TypeThesis, body, err)
}

func (v Other) MarshalJSON() ([]byte, error) {
	type plain Other
	body, err := json.Marshal(plain(v))
	return tagged(TypeOther, body, err)
}

// tagged prepends the discriminator to an encoded object.
func tagged(t Type, body []byte, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(body)+len(t)+10)
	out = append(out, `{"type":`...)
	out = strconv.AppendQuote(out, string(t))
	if len(body) > 2 {
		out = append(out, ',')
	}
	return append(out, body[1:]...), nil
}

// New returns an empty record of type t.
func New(t Type) (Literature, error) {
	switch t {
	case TypeJournalArticle:
		return &JournalArticle{}, nil
	case TypeConferencePaper:
		return &ConferencePaper{}, nil
	case TypeBook:
		return &Book{}, nil
	case TypeBookChapter:
		return &BookChapter{}, nil
	case TypeThesis:
		return &Thesis{}, nil
	case TypeOther:
		return &Other{}, nil
	default:
		return nil, unknownType(string(t))
	}
}

// Retype builds a record of type t carrying the common fields of lit. Variant
// specific fields are discarded; the id is cleared so the result is saved as
// a new record.
func Retype(lit Literature, t Type) (Literature, error) {
	next, err := New(t)
	if err != nil {
		return nil, err
	}
	common := *lit.Meta()
	common.ID = ""
	common.CreatedAt = ""
	common.UpdatedAt = ""
	common.Authors = append([]string(nil), common.Authors...)
	common.Attributes = attribute.Normalize(common.Attributes)
	*next.Meta() = common
	return next, nil
}
