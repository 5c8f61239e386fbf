package literature_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"litshelf/internal/attribute"
	"litshelf/internal/literature"
	"litshelf/internal/validate"
)

var now = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func TestMarshalIncludesTypeTag(t *testing.T) {
	lit := &literature.Book{
		Common:     literature.Common{Title: "Go", Year: 2015, Authors: []string{"Donovan", "Kernighan"}},
		Publisher:  "AW",
		TotalPages: intPtr(380),
	}
	data, err := json.Marshal(lit)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "book", raw["type"])
	assert.Equal(t, "Go", raw["title"])
	assert.EqualValues(t, 380, raw["totalPages"])
	assert.NotContains(t, raw, "Common")
	assert.NotContains(t, raw, "id")
}

func TestDecodeRoundTripsEveryVariant(t *testing.T) {
	common := literature.Common{
		ID:          "abc",
		Title:       "A Study",
		Year:        2023,
		Authors:     []string{"X"},
		Notes:       "n",
		PDFFilePath: "papers/a.pdf",
		CreatedAt:   "2024-01-01T00:00:00.000Z",
		UpdatedAt:   "2024-01-02T00:00:00.000Z",
		Attributes:  []attribute.Application{{AttributeID: "m", Values: []string{"Survey"}, Note: "why"}},
	}
	records := []literature.Literature{
		&literature.JournalArticle{Common: common, Journal: "J", Volume: "1", Issue: "2", Pages: "3-4", DOI: "10.1/x", URL: "u", Publisher: "P"},
		&literature.ConferencePaper{Common: common, Conference: "C", Location: "L", Pages: "1", DOI: "d", URL: "u", Publisher: "P"},
		&literature.Book{Common: common, Publisher: "P", ISBN: "i", Edition: "2", TotalPages: intPtr(10)},
		&literature.BookChapter{Common: common, BookTitle: "B", Publisher: "P", Editors: []string{"E"}, Chapter: "3", Pages: "5", ISBN: "i"},
		&literature.Thesis{Common: common, ThesisType: literature.ThesisMasters, Institution: "I", Department: "D", URL: "u"},
		&literature.Other{Common: common, SourceType: "web", Source: "S", URL: "u"},
	}
	for _, lit := range records {
		t.Run(string(lit.Kind()), func(t *testing.T) {
			data, err := json.Marshal(lit)
			require.NoError(t, err)
			decoded, err := literature.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, lit, decoded)
			assert.Equal(t, lit.Kind(), decoded.Kind())
		})
	}
}

func TestDecodeUnknownType(t *testing.T) {
	_, err := literature.Decode([]byte(`{"type":"podcast","title":"x"}`))
	require.ErrorIs(t, err, literature.ErrUnknownType)

	_, err = literature.Decode([]byte(`{"title":"x"}`))
	require.ErrorIs(t, err, literature.ErrUnknownType)
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	lit, err := literature.Decode([]byte(`{"type":"other","title":"x","year":2000,"authors":["a"],"futureField":1}`))
	require.NoError(t, err)
	assert.Equal(t, "x", lit.Meta().Title)
}

func TestParseValidRecord(t *testing.T) {
	lit, err := literature.Parse([]byte(`{"type":"journal_article","title":"A Study","year":2023,"authors":["X"]}`), now)
	require.NoError(t, err)
	assert.Equal(t, literature.TypeJournalArticle, lit.Kind())
	assert.Equal(t, "A Study", lit.Meta().Title)
}

func TestParseCollectsAllErrors(t *testing.T) {
	_, err := literature.Parse([]byte(`{"type":"book","title":" ","year":999,"authors":["ok",""],"totalPages":0}`), now)
	require.ErrorIs(t, err, validate.ErrInvalid)
	var ve *validate.Error
	require.ErrorAs(t, err, &ve)
	for _, field := range []string{"title", "year", "authors[1]", "totalPages"} {
		assert.True(t, ve.Has(field), "expected error for %s in %v", field, ve.Fields)
	}
}

func TestParseReportsWrongJSONTypesOnce(t *testing.T) {
	_, err := literature.Parse([]byte(`{"type":"other","title":"t","year":"2020","authors":["a"]}`), now)
	var ve *validate.Error
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, validate.FieldError{Field: "year", Message: "must be an integer"}, ve.Fields[0])
}

func TestParseRejectsBadTypeTag(t *testing.T) {
	for _, input := range []string{`{"type":"podcast"}`, `{"title":"x"}`, `{"type":5}`} {
		_, err := literature.Parse([]byte(input), now)
		var ve *validate.Error
		require.ErrorAs(t, err, &ve, input)
		assert.True(t, ve.Has("type"), input)
	}

	_, err := literature.Parse([]byte(`{"type":`), now)
	require.ErrorIs(t, err, validate.ErrInvalid)
}

func TestParseNormalizesAttributeApplications(t *testing.T) {
	lit, err := literature.Parse([]byte(`{"type":"book","title":"T","year":2001,"authors":["a"],"totalPages":10,
		"attributes":[
			{"attributeId":"m","values":[]},
			{"attributeId":"k","values":["v"]},
			{"attributeId":"k","values":["v","w"],"note":"later"}
		]}`), now)
	require.NoError(t, err)
	assert.Equal(t, []attribute.Application{
		{AttributeID: "k", Values: []string{"v", "w"}, Note: "later"},
	}, lit.Meta().Attributes)
}

func TestValidateYearBounds(t *testing.T) {
	lit := &literature.Other{Common: literature.Common{Title: "t", Authors: []string{"a"}}}

	lit.Year = literature.MaxYear(now)
	assert.NoError(t, literature.Validate(lit, now))

	lit.Year = literature.MaxYear(now) + 1
	assert.Error(t, literature.Validate(lit, now))

	lit.Year = literature.MinYear
	assert.NoError(t, literature.Validate(lit, now))

	lit.Year = 0
	assert.Error(t, literature.Validate(lit, now))
}

func TestValidateVariantRules(t *testing.T) {
	base := literature.Common{Title: "t", Year: 2000, Authors: []string{"a"}}

	thesis := &literature.Thesis{Common: base, ThesisType: "postdoc"}
	err := literature.Validate(thesis, now)
	var ve *validate.Error
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("thesisType"))

	thesis.ThesisType = ""
	assert.NoError(t, literature.Validate(thesis, now))

	chapter := &literature.BookChapter{Common: base, Editors: []string{"ok", " "}}
	require.ErrorAs(t, literature.Validate(chapter, now), &ve)
	assert.True(t, ve.Has("editors[1]"))
}

func TestValidateAttributeApplications(t *testing.T) {
	lit := &literature.JournalArticle{Common: literature.Common{
		Title: "t", Year: 2000, Authors: []string{"a"},
		Attributes: []attribute.Application{
			{AttributeID: "a", Values: []string{"x"}},
			{AttributeID: "b"},
		},
	}}
	var ve *validate.Error
	require.ErrorAs(t, literature.Validate(lit, now), &ve)
	assert.True(t, ve.Has("attributes[1].values"))

	lit.Attributes = []attribute.Application{
		{AttributeID: "a", Values: []string{"x"}},
		{AttributeID: "a", Values: []string{"y"}},
	}
	require.ErrorAs(t, literature.Validate(lit, now), &ve)
	assert.True(t, ve.Has("attributes"))
}

func TestApplyRemoveOnRecord(t *testing.T) {
	lit := literature.Literature(&literature.Other{})
	literature.ApplyValue(lit, "m", "Survey")
	literature.ApplyValue(lit, "m", "Survey")
	require.Len(t, lit.Meta().Attributes, 1)
	assert.Equal(t, []string{"Survey"}, lit.Meta().Attributes[0].Values)

	literature.SetNote(lit, "m", "note")
	assert.Equal(t, "note", lit.Meta().Attributes[0].Note)

	literature.RemoveValue(lit, "m", "Survey")
	assert.Empty(t, lit.Meta().Attributes)

	data, err := json.Marshal(lit)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "attributes")
}

func TestTypeLabelsAndParsing(t *testing.T) {
	assert.Equal(t, "Journal Article", literature.TypeJournalArticle.Label())
	assert.Equal(t, "Other", literature.TypeOther.Label())

	typ, err := literature.ParseType("Book Chapter")
	require.NoError(t, err)
	assert.Equal(t, literature.TypeBookChapter, typ)

	_, err = literature.ParseType("podcast")
	assert.ErrorIs(t, err, literature.ErrUnknownType)
}

func TestRetypeKeepsCommonFields(t *testing.T) {
	src := &literature.Book{
		Common:    literature.Common{ID: "old", Title: "T", Year: 2001, Authors: []string{"A"}, CreatedAt: "c"},
		Publisher: "P",
	}
	next, err := literature.Retype(src, literature.TypeThesis)
	require.NoError(t, err)
	assert.Equal(t, literature.TypeThesis, next.Kind())
	assert.Empty(t, next.RecordID())
	assert.Equal(t, "T", next.Meta().Title)
	created, _ := next.Timestamps()
	assert.Empty(t, created)

	next.Meta().Authors[0] = "changed"
	assert.Equal(t, "A", src.Authors[0])
}
