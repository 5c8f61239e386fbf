package export_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"litshelf/internal/attribute"
	"litshelf/internal/export"
	"litshelf/internal/literature"
)

func article(id, title string, apps ...attribute.Application) *literature.JournalArticle {
	return &literature.JournalArticle{Common: literature.Common{
		ID: id, Title: title, Year: 2023, Authors: []string{"X", "Y"}, Attributes: apps,
	}}
}

func TestTidyScenarioMethodSurvey(t *testing.T) {
	catalog := attribute.NewCatalog([]*attribute.Schema{{ID: "s1", Name: "Method", AllowFreeText: true}})
	lit := article("L1", "A Study", attribute.Application{AttributeID: "s1", Values: []string{"Survey"}})

	out, err := export.Tidy(export.Config{
		Format: export.FormatCSV,
		Fields: []export.Field{export.FieldID, export.FieldAttribute, export.FieldValue},
	}, []literature.Literature{lit}, catalog)
	require.NoError(t, err)
	assert.Equal(t, "id,attribute,value\nL1,Method,Survey\n", out)
}

func TestTidyOneRowPerValue(t *testing.T) {
	lit := article("L1", "T",
		attribute.Application{AttributeID: "A", Values: []string{"v1", "v2"}},
		attribute.Application{AttributeID: "B", Values: []string{"v3"}},
	)
	out, err := export.Tidy(export.Config{
		Format: export.FormatCSV,
		Fields: []export.Field{export.FieldID, export.FieldTitle, export.FieldAttribute, export.FieldValue},
	}, []literature.Literature{lit}, nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{
		"id,title,attribute,value",
		"L1,T,A,v1",
		"L1,T,A,v2",
		"L1,T,B,v3",
	}, lines)
}

func TestTidyPerRecordRows(t *testing.T) {
	lit := article("L1", "T", attribute.Application{AttributeID: "A", Values: []string{"v1", "v2"}})
	lit.PDFFilePath = `C:\papers\study.pdf`
	other := &literature.Book{Common: literature.Common{ID: "L2", Title: "B", Year: 1999, Authors: []string{"Solo"}, PDFFilePath: "books/b.pdf"}}

	out, err := export.Tidy(export.Config{
		Format: export.FormatTSV,
		Fields: []export.Field{export.FieldID, export.FieldYear, export.FieldAuthors, export.FieldFilename, export.FieldFilepath},
	}, []literature.Literature{lit, other}, nil)
	require.NoError(t, err)
	assert.Equal(t,
		"id\tyear\tauthors\tfilename\tfilepath\n"+
			"L1\t2023\tX; Y\tstudy.pdf\tC:\\papers\\study.pdf\n"+
			"L2\t1999\tSolo\tb.pdf\tbooks/b.pdf\n",
		out)
}

func TestTidyValueAloneSwitchesRowShape(t *testing.T) {
	lit := article("L1", "T", attribute.Application{AttributeID: "A", Values: []string{"v1", "v2"}})
	out, err := export.Tidy(export.Config{
		Format: export.FormatCSV,
		Fields: []export.Field{export.FieldID, export.FieldValue},
	}, []literature.Literature{lit}, nil)
	require.NoError(t, err)
	assert.Equal(t, "id,value\nL1,v1\nL1,v2\n", out)
}

func TestTidyAttributeFilter(t *testing.T) {
	catalog := attribute.NewCatalog([]*attribute.Schema{{ID: "A", Name: "Method"}})
	lits := []literature.Literature{
		article("L1", "T", attribute.Application{AttributeID: "A", Values: []string{"v1"}}, attribute.Application{AttributeID: "B", Values: []string{"v2"}}),
		article("L2", "U", attribute.Application{AttributeID: "B", Values: []string{"v3"}}),
		article("L3", "V"),
	}
	out, err := export.Tidy(export.Config{
		Format:       export.FormatCSV,
		Fields:       []export.Field{export.FieldID, export.FieldAttribute, export.FieldValue},
		AttributeIDs: []string{"A"},
	}, lits, catalog)
	require.NoError(t, err)
	assert.Equal(t, "id,attribute,value\nL1,Method,v1\n", out)
}

func TestTidyMissingSchemaFallsBackToID(t *testing.T) {
	lit := article("L1", "T", attribute.Application{AttributeID: "gone", Values: []string{"v"}})
	out, err := export.Tidy(export.Config{
		Format: export.FormatCSV,
		Fields: []export.Field{export.FieldAttribute, export.FieldValue},
	}, []literature.Literature{lit}, attribute.NewCatalog(nil))
	require.NoError(t, err)
	assert.Equal(t, "attribute,value\ngone,v\n", out)
}

func TestTidyHeaderOnly(t *testing.T) {
	out, err := export.Tidy(export.Config{
		Format: export.FormatTSV,
		Fields: []export.Field{export.FieldID, export.FieldAttribute, export.FieldValue},
	}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "id\tattribute\tvalue\n", out)
}

func TestTidyEscapesTitle(t *testing.T) {
	lit := article("L1", `Smith, "Intro"`)
	out, err := export.Tidy(export.Config{
		Format: export.FormatCSV,
		Fields: []export.Field{export.FieldTitle},
	}, []literature.Literature{lit}, nil)
	require.NoError(t, err)
	assert.Equal(t, "title\n\"Smith, \"\"Intro\"\"\"\n", out)
}

func TestRenderCountsRowsNotLines(t *testing.T) {
	lit := article("L1", "T",
		attribute.Application{AttributeID: "A", Values: []string{"first\nsecond", "plain"}},
	)
	out, err := export.Render(export.Config{
		Format: export.FormatCSV,
		Fields: []export.Field{export.FieldID, export.FieldValue},
	}, []literature.Literature{lit}, nil)
	require.NoError(t, err)
	assert.Equal(t, "id,value\nL1,\"first\nsecond\"\nL1,plain\n", out.Text)
	assert.Equal(t, 2, out.Rows)
}

func TestTidyRejectsBadConfig(t *testing.T) {
	_, err := export.Tidy(export.Config{Format: "xlsx", Fields: []export.Field{export.FieldID}}, nil, nil)
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)

	_, err = export.Tidy(export.Config{Format: export.FormatCSV, Fields: []export.Field{"doi"}}, nil, nil)
	assert.ErrorIs(t, err, export.ErrUnknownField)
}

func TestEscape(t *testing.T) {
	cases := []struct {
		in, delim, want string
	}{
		{"plain", ",", "plain"},
		{"a,b", ",", `"a,b"`},
		{"a,b", "\t", "a,b"},
		{"a\tb", "\t", "\"a\tb\""},
		{`say "hi"`, "\t", `"say ""hi"""`},
		{"line\nbreak", ",", "\"line\nbreak\""},
		{" leading space", ",", " leading space"},
		{"", ",", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, export.Escape(tc.in, tc.delim), tc.in)
	}
}

func TestParseFieldsAndCouple(t *testing.T) {
	fields, err := export.ParseFields([]string{" ID", "value"})
	require.NoError(t, err)
	assert.Equal(t, []export.Field{export.FieldID, export.FieldValue}, fields)
	assert.Equal(t, []export.Field{export.FieldID, export.FieldAttribute, export.FieldValue}, export.Couple(fields))

	assert.Equal(t,
		[]export.Field{export.FieldAttribute, export.FieldValue, export.FieldTitle},
		export.Couple([]export.Field{export.FieldAttribute, export.FieldTitle}))

	_, err = export.ParseFields([]string{"doi"})
	assert.ErrorIs(t, err, export.ErrUnknownField)

	format, err := export.ParseFormat("TSV")
	require.NoError(t, err)
	assert.Equal(t, export.FormatTSV, format)
	_, err = export.ParseFormat("json")
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "a.pdf", export.Filename("/x/y/a.pdf"))
	assert.Equal(t, "a.pdf", export.Filename(`x\y\a.pdf`))
	assert.Equal(t, "a.pdf", export.Filename("a.pdf"))
	assert.Equal(t, "", export.Filename(""))
}
