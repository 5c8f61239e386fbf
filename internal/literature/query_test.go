package literature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"litshelf/internal/attribute"
	"litshelf/internal/literature"
)

func sampleLibrary() []literature.Literature {
	return []literature.Literature{
		&literature.JournalArticle{Common: literature.Common{
			ID: "1", Title: "Über Methoden", Year: 2019, Authors: []string{"Müller"},
			CreatedAt: "2024-01-01T00:00:00.000Z", UpdatedAt: "2024-03-01T00:00:00.000Z",
			Attributes: []attribute.Application{{AttributeID: "method", Values: []string{"Survey", "Interview"}}},
		}},
		&literature.Book{Common: literature.Common{
			ID: "2", Title: "alpha", Year: 2021, Authors: []string{"Smith"},
			CreatedAt: "2024-02-01T00:00:00.000Z", UpdatedAt: "2024-02-01T00:00:00.000Z",
			Attributes: []attribute.Application{{AttributeID: "method", Values: []string{"Experiment"}}},
		}},
		&literature.Thesis{Common: literature.Common{
			ID: "3", Title: "Beta", Year: 2010, Authors: []string{"Jones", "MÜLLER-Lee"},
			CreatedAt: "2023-12-01T00:00:00.000Z", UpdatedAt: "2024-04-01T00:00:00.000Z",
		}},
	}
}

func ids(lits []literature.Literature) []string {
	out := make([]string, 0, len(lits))
	for _, lit := range lits {
		out = append(out, lit.RecordID())
	}
	return out
}

func TestFilterByText(t *testing.T) {
	lits := sampleLibrary()
	assert.Equal(t, []string{"1", "3"}, ids(literature.Filter(lits, literature.Query{Text: "müller"})))
	assert.Equal(t, []string{"1"}, ids(literature.Filter(lits, literature.Query{Text: "ÜBER"})))
	assert.Empty(t, literature.Filter(lits, literature.Query{Text: "nothing"}))
}

func TestFilterByTypeYearAndAttribute(t *testing.T) {
	lits := sampleLibrary()
	assert.Equal(t, []string{"2"}, ids(literature.Filter(lits, literature.Query{Type: literature.TypeBook})))
	assert.Equal(t, []string{"1", "2"}, ids(literature.Filter(lits, literature.Query{YearFrom: 2015})))
	assert.Equal(t, []string{"1", "3"}, ids(literature.Filter(lits, literature.Query{YearTo: 2019})))
	assert.Equal(t, []string{"1", "2"}, ids(literature.Filter(lits, literature.Query{AttributeID: "method"})))
	assert.Equal(t, []string{"1"}, ids(literature.Filter(lits, literature.Query{AttributeID: "method", AttributeValue: "Interview"})))
}

func TestSort(t *testing.T) {
	cases := map[literature.SortKey][]string{
		literature.SortUpdated: {"3", "1", "2"},
		literature.SortCreated: {"2", "1", "3"},
		literature.SortTitle:   {"2", "3", "1"},
		literature.SortYear:    {"2", "1", "3"},
	}
	for key, want := range cases {
		lits := sampleLibrary()
		literature.Sort(lits, key)
		assert.Equal(t, want, ids(lits), key)
	}
}

func TestParseSortKey(t *testing.T) {
	key, err := literature.ParseSortKey(" Title ")
	require.NoError(t, err)
	assert.Equal(t, literature.SortTitle, key)

	key, err = literature.ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, literature.SortUpdated, key)

	_, err = literature.ParseSortKey("random")
	assert.Error(t, err)
}

func TestPage(t *testing.T) {
	lits := sampleLibrary()
	assert.Len(t, literature.Page(lits, 1, 0), 3)
	assert.Equal(t, []string{"1", "2"}, ids(literature.Page(lits, 1, 2)))
	assert.Equal(t, []string{"3"}, ids(literature.Page(lits, 2, 2)))
	assert.Empty(t, literature.Page(lits, 3, 2))
	assert.Equal(t, []string{"1", "2"}, ids(literature.Page(lits, 0, 2)))
}

func TestSummarize(t *testing.T) {
	s := literature.Summarize(sampleLibrary()[0])
	assert.Equal(t, "1", s.ID)
	assert.Equal(t, literature.TypeJournalArticle, s.Type)
	assert.Equal(t, 2019, s.Year)
	assert.Len(t, s.Attributes, 1)
}
