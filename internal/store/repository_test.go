package store_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"litshelf/internal/store"
)

type note struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func (n *note) RecordID() string                 { return n.ID }
func (n *note) SetRecordID(id string)            { n.ID = id }
func (n *note) Timestamps() (string, string)     { return n.CreatedAt, n.UpdatedAt }
func (n *note) SetTimestamps(created, up string) { n.CreatedAt, n.UpdatedAt = created, up }

func decodeNote(data []byte) (*note, error) {
	var n note
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

var noteKind = store.Kind{Name: "note", Dir: "notes", Suffix: ".note.json"}

type tickingClock struct {
	now time.Time
}

func (c *tickingClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func newRepo(t *testing.T) (*store.Repository[*note], string) {
	t.Helper()
	root := t.TempDir()
	clock := &tickingClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	return store.New(root, noteKind, decodeNote, store.WithClock(clock.Now)), root
}

func TestSaveAssignsIDAndTimestamps(t *testing.T) {
	repo, root := newRepo(t)

	rec := &note{Text: "hello"}
	id, err := repo.Save(rec)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "2024-03-01T12:00:01.000Z", rec.CreatedAt)
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)

	_, err = os.Stat(filepath.Join(root, "notes", id+".note.json"))
	require.NoError(t, err)
}

func TestSaveTwiceKeepsIDAndCreatedAt(t *testing.T) {
	repo, _ := newRepo(t)

	first := &note{Text: "v1"}
	id, err := repo.Save(first)
	require.NoError(t, err)
	created := first.CreatedAt
	updated := first.UpdatedAt

	second := &note{ID: id, Text: "v2"}
	id2, err := repo.Save(second)
	require.NoError(t, err)
	assert.Equal(t, id, id2)
	assert.Equal(t, created, second.CreatedAt, "createdAt must come from the stored copy")
	assert.NotEqual(t, updated, second.UpdatedAt)

	loaded, ok, err := repo.Load(id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second, loaded)
}

func TestSaveKeepsExplicitCreatedAt(t *testing.T) {
	repo, _ := newRepo(t)
	rec := &note{ID: "fixed", Text: "x", CreatedAt: "2020-01-01T00:00:00.000Z"}
	_, err := repo.Save(rec)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01T00:00:00.000Z", rec.CreatedAt)
	assert.NotEqual(t, rec.CreatedAt, rec.UpdatedAt)
}

func TestLoadMissingIsNotAnError(t *testing.T) {
	repo, _ := newRepo(t)
	rec, ok, err := repo.Load("nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, rec)
}

func TestLoadCorruptFileIsAnError(t *testing.T) {
	repo, root := newRepo(t)
	dir := filepath.Join(root, "notes")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.note.json"), []byte("{"), 0o644))

	_, ok, err := repo.Load("bad")
	require.Error(t, err)
	assert.False(t, ok)
}

func TestListSkipsCorruptAndForeignFiles(t *testing.T) {
	repo, root := newRepo(t)

	_, err := repo.Save(&note{Text: "a"})
	require.NoError(t, err)
	_, err = repo.Save(&note{Text: "b"})
	require.NoError(t, err)

	dir := filepath.Join(root, "notes")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.note.json"), []byte("not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignore me"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.note.json"), 0o755))

	records, err := repo.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	texts := []string{records[0].Text, records[1].Text}
	assert.ElementsMatch(t, []string{"a", "b"}, texts)
}

func TestListMissingDirectory(t *testing.T) {
	repo, _ := newRepo(t)
	records, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDelete(t *testing.T) {
	repo, _ := newRepo(t)
	id, err := repo.Save(&note{Text: "gone"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(id))
	_, ok, err := repo.Load(id)
	require.NoError(t, err)
	assert.False(t, ok)

	err = repo.Delete(id)
	require.ErrorIs(t, err, store.ErrNotFound)
	var nf *store.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "note", nf.Kind)
	assert.Equal(t, id, nf.ID)
}

func TestRejectsPathLikeIDs(t *testing.T) {
	repo, _ := newRepo(t)
	for _, id := range []string{"../escape", `a\b`, "..", " "} {
		_, _, err := repo.Load(id)
		assert.ErrorIs(t, err, store.ErrInvalidID, id)
		assert.ErrorIs(t, repo.Delete(id), store.ErrInvalidID, id)
	}
	_, err := repo.Save(&note{ID: "x/y"})
	assert.ErrorIs(t, err, store.ErrInvalidID)
}

func TestSavedFileIsIndentedJSON(t *testing.T) {
	repo, root := newRepo(t)
	id, err := repo.Save(&note{Text: "pretty"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "notes", id+".note.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"id\": "))
	assert.True(t, strings.HasSuffix(string(data), "}\n"))
}

func TestKindFileNames(t *testing.T) {
	assert.Equal(t, "abc.literature.json", store.LiteratureKind.FileName("abc"))
	id, ok := store.AttributeSchemaKind.IDFromFileName("xyz.attribute-schema.json")
	assert.True(t, ok)
	assert.Equal(t, "xyz", id)
	_, ok = store.AttributeSchemaKind.IDFromFileName("xyz.literature.json")
	assert.False(t, ok)
	_, ok = store.LiteratureKind.IDFromFileName(".literature.json")
	assert.False(t, ok)
}

func TestFileNameIsTheRecordID(t *testing.T) {
	repo, root := newRepo(t)
	dir := filepath.Join(root, "notes")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc.note.json"), []byte(`{"text":"no id"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "def.note.json"), []byte(`{"id":"other","text":"copied"}`), 0o644))

	records, err := repo.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "abc", records[0].ID)
	assert.Equal(t, "def", records[1].ID)

	loaded, ok, err := repo.Load("def")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "def", loaded.ID)

	loaded.Text = "edited"
	id, err := repo.Save(loaded)
	require.NoError(t, err)
	assert.Equal(t, "def", id)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"abc.note.json", "def.note.json"}, names)
}
