package attribute_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"litshelf/internal/attribute"
	"litshelf/internal/validate"
)

func TestSchemaValidate(t *testing.T) {
	ok := &attribute.Schema{Name: "Method", PredefinedValues: []attribute.Value{{ID: "1", Value: "Survey"}}}
	require.NoError(t, ok.Validate())

	bad := &attribute.Schema{
		Name: "  ",
		PredefinedValues: []attribute.Value{
			{ID: "1", Value: "Survey"},
			{ID: "1", Value: "Interview"},
		},
	}
	err := bad.Validate()
	require.ErrorIs(t, err, validate.ErrInvalid)
	var ve *validate.Error
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("name"))
	assert.True(t, ve.Has("predefinedValues"))

	blankValue := &attribute.Schema{Name: "x", PredefinedValues: []attribute.Value{{ID: "1", Value: ""}}}
	err = blankValue.Validate()
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("predefinedValues[0].value"))
}

func TestSchemaAllows(t *testing.T) {
	closed := &attribute.Schema{Name: "Method", PredefinedValues: []attribute.Value{{ID: "1", Value: "Survey"}}}
	assert.True(t, closed.Allows("Survey"))
	assert.True(t, closed.Allows(" Survey "))
	assert.False(t, closed.Allows("Interview"))
	assert.True(t, errors.Is(closed.CheckValue("Interview"), attribute.ErrValueNotAllowed))
	assert.NoError(t, closed.CheckValue("Survey"))

	open := &attribute.Schema{Name: "Topic", AllowFreeText: true}
	assert.True(t, open.Allows("anything"))
}

func TestDecodeSchema(t *testing.T) {
	s, err := attribute.Decode([]byte(`{"id":"abc","name":"Method","allowFreeText":true,"predefinedValues":[{"id":"v","value":"Survey"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "abc", s.RecordID())
	assert.True(t, s.AllowFreeText)
	assert.Equal(t, []string{"Survey"}, s.Values())

	_, err = attribute.Decode([]byte(`[`))
	assert.Error(t, err)
}

func TestDraftAssignsIDsOnlyOnSave(t *testing.T) {
	draft := attribute.Draft{Name: " Method ", Values: []string{"Survey", " ", "Interview", "Survey"}}
	s := draft.Schema(nil)

	assert.Empty(t, s.ID)
	assert.Equal(t, "Method", s.Name)
	require.Len(t, s.PredefinedValues, 2)
	for _, v := range s.PredefinedValues {
		assert.NotEmpty(t, v.ID)
	}
	assert.NotEqual(t, s.PredefinedValues[0].ID, s.PredefinedValues[1].ID)
	require.NoError(t, s.Validate())
}

func TestDraftPreservesExistingValueIDs(t *testing.T) {
	existing := &attribute.Schema{
		ID:        "schema-1",
		Name:      "Method",
		CreatedAt: "2024-01-01T00:00:00.000Z",
		PredefinedValues: []attribute.Value{
			{ID: "v-survey", Value: "Survey"},
			{ID: "v-case", Value: "Case study"},
		},
	}
	draft := attribute.DraftOf(existing)
	draft.Values = []string{"Interview", "Survey"}

	s := draft.Schema(existing)
	assert.Equal(t, "schema-1", s.ID)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", s.CreatedAt)
	require.Len(t, s.PredefinedValues, 2)
	assert.Equal(t, "Interview", s.PredefinedValues[0].Value)
	assert.NotEqual(t, "v-case", s.PredefinedValues[0].ID)
	assert.Equal(t, attribute.Value{ID: "v-survey", Value: "Survey"}, s.PredefinedValues[1])
}

func TestCatalog(t *testing.T) {
	c := attribute.NewCatalog([]*attribute.Schema{
		{ID: "a", Name: "Method"},
		{ID: "b", Name: "Field"},
		{ID: "a", Name: "Shadowed"},
		nil,
	})
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "Method", c.Name("a"))
	assert.Equal(t, "missing-id", c.Name("missing-id"))
	_, ok := c.Lookup("missing-id")
	assert.False(t, ok)

	var empty *attribute.Catalog
	assert.Equal(t, "x", empty.Name("x"))
	assert.Zero(t, empty.Len())
}
