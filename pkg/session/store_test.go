package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	// Packages
	modalica "github.com/mutablelogic/go-modalica"
	schema "github.com/mutablelogic/go-modalica/pkg/schema"
	session "github.com/mutablelogic/go-modalica/pkg/session"
	types "github.com/mutablelogic/go-server/pkg/types"
	assert "github.com/stretchr/testify/assert"
)

var testMeta = schema.TranscriptMeta{Name: "test", Model: "gpt-3.5-turbo"}

// stores returns each store implementation, keyed by name
func stores(t *testing.T) map[string]session.Store {
	t.Helper()
	file, err := session.NewFileStore(filepath.Join(t.TempDir(), "sessions"))
	if err != nil {
		t.Fatal(err)
	}
	return map[string]session.Store{
		"memory": session.NewMemoryStore(),
		"file":   file,
	}
}

///////////////////////////////////////////////////////////////////////////////
// STORE TESTS

// Create returns a transcript with an empty system turn
func Test_store_001(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			tr, err := store.Create(context.TODO(), testMeta)
			assert.NoError(err)
			assert.NotEmpty(tr.ID)
			assert.Equal("test", tr.Name)
			assert.Equal("gpt-3.5-turbo", tr.Model)
			assert.Equal([]schema.Turn{schema.SystemTurn("")}, tr.Turns)
			assert.False(tr.Created.IsZero())
			assert.False(tr.Modified.IsZero())
		})
	}
}

// IDs are unique
func Test_store_002(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			t1, err := store.Create(context.TODO(), testMeta)
			assert.NoError(err)
			t2, err := store.Create(context.TODO(), testMeta)
			assert.NoError(err)
			assert.NotEqual(t1.ID, t2.ID)
		})
	}
}

// Get and Delete
func Test_store_003(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			created, _ := store.Create(context.TODO(), testMeta)
			got, err := store.Get(context.TODO(), created.ID)
			assert.NoError(err)
			assert.Equal(created.ID, got.ID)
			assert.Equal(created.TranscriptMeta, got.TranscriptMeta)

			assert.NoError(store.Delete(context.TODO(), created.ID))
			_, err = store.Get(context.TODO(), created.ID)
			assert.ErrorIs(err, modalica.ErrNotFound)
			assert.ErrorIs(store.Delete(context.TODO(), created.ID), modalica.ErrNotFound)
		})
	}
}

// Missing IDs are not found
func Test_store_004(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			_, err := store.Get(context.TODO(), "nonexistent")
			assert.ErrorIs(err, modalica.ErrNotFound)
			assert.ErrorIs(store.Delete(context.TODO(), "../nonexistent"), modalica.ErrNotFound)
		})
	}
}

// List orders by modified time and paginates
func Test_store_005(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			t1, _ := store.Create(context.TODO(), schema.TranscriptMeta{Name: "oldest"})
			time.Sleep(10 * time.Millisecond)
			t2, _ := store.Create(context.TODO(), schema.TranscriptMeta{Name: "middle"})
			time.Sleep(10 * time.Millisecond)
			t3, _ := store.Create(context.TODO(), schema.TranscriptMeta{Name: "newest"})

			resp, err := store.List(context.TODO(), schema.ListTranscriptRequest{})
			assert.NoError(err)
			assert.Equal(uint(3), resp.Count)
			if assert.Len(resp.Body, 3) {
				assert.Equal(t3.ID, resp.Body[0].ID)
				assert.Equal(t2.ID, resp.Body[1].ID)
				assert.Equal(t1.ID, resp.Body[2].ID)
			}

			resp, err = store.List(context.TODO(), schema.ListTranscriptRequest{Offset: 1, Limit: types.Ptr(uint(1))})
			assert.NoError(err)
			assert.Equal(uint(3), resp.Count)
			if assert.Len(resp.Body, 1) {
				assert.Equal(t2.ID, resp.Body[0].ID)
			}

			resp, err = store.List(context.TODO(), schema.ListTranscriptRequest{Offset: 10})
			assert.NoError(err)
			assert.Empty(resp.Body)
		})
	}
}

// Save and Load round-trip a conversation
func Test_store_006(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			created, _ := store.Create(context.TODO(), testMeta)

			s, tr, err := session.Load(context.TODO(), store, &generator{}, created.ID)
			if !assert.NoError(err) {
				t.FailNow()
			}
			_, err = s.Converse(context.Background(), "hi", chatConfig("", "Be terse"))
			assert.NoError(err)
			assert.NoError(session.Save(store, tr, s))

			gen := &generator{}
			restored, _, err := session.Load(context.TODO(), store, gen, created.ID)
			if !assert.NoError(err) {
				t.FailNow()
			}
			assert.Equal(s.Transcript(), restored.Transcript())
			assert.Equal("Be terse", restored.System())

			_, err = restored.Converse(context.Background(), "again", schema.ChatModelConfig{})
			assert.NoError(err)
			assert.Len(gen.history, 3)
		})
	}
}

// Write of an unknown transcript fails for the memory store
func Test_store_007(t *testing.T) {
	assert := assert.New(t)
	store := session.NewMemoryStore()
	err := store.Write(&schema.Transcript{ID: "missing"})
	assert.ErrorIs(err, modalica.ErrNotFound)
	assert.ErrorIs(store.Write(nil), modalica.ErrBadParameter)
}

// Memory store returns copies
func Test_store_008(t *testing.T) {
	assert := assert.New(t)
	store := session.NewMemoryStore()
	created, _ := store.Create(context.TODO(), testMeta)
	created.Turns[0].Content = "tampered"

	got, err := store.Get(context.TODO(), created.ID)
	assert.NoError(err)
	assert.Equal("", got.Turns[0].Content)
}

///////////////////////////////////////////////////////////////////////////////
// FILE STORE TESTS

// NewFileStore creates the directory
func Test_file_001(t *testing.T) {
	assert := assert.New(t)
	dir := filepath.Join(t.TempDir(), "sessions")
	store, err := session.NewFileStore(dir)
	assert.NoError(err)
	assert.NotNil(store)
	info, err := os.Stat(dir)
	if assert.NoError(err) {
		assert.True(info.IsDir())
		assert.Equal(session.DirPerm, info.Mode().Perm())
	}
}

// NewFileStore with empty dir returns error
func Test_file_002(t *testing.T) {
	assert := assert.New(t)
	_, err := session.NewFileStore("")
	assert.ErrorIs(err, modalica.ErrBadParameter)
}

// Create writes a private JSON file
func Test_file_003(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	store, _ := session.NewFileStore(dir)
	tr, err := store.Create(context.TODO(), testMeta)
	assert.NoError(err)
	info, err := os.Stat(filepath.Join(dir, tr.ID+".json"))
	if assert.NoError(err) {
		assert.Equal(session.FilePerm, info.Mode().Perm())
	}
}

// List skips non-JSON files, subdirectories and corrupt files
func Test_file_004(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	store, _ := session.NewFileStore(dir)
	store.Create(context.TODO(), schema.TranscriptMeta{Name: "good"})
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o600)
	os.WriteFile(filepath.Join(dir, "bad-id.json"), []byte("{corrupt"), 0o600)
	os.WriteFile(filepath.Join(dir, "6f1b1d2e-0c3a-4b8e-9a55-1f2d3c4b5a69.json"), []byte("{corrupt"), 0o600)
	os.Mkdir(filepath.Join(dir, "subdir"), 0o700)

	resp, err := store.List(context.TODO(), schema.ListTranscriptRequest{})
	assert.NoError(err)
	if assert.Len(resp.Body, 1) {
		assert.Equal("good", resp.Body[0].Name)
	}
}

// Transcripts written by one store are read by another
func Test_file_005(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	store, _ := session.NewFileStore(dir)
	tr, _ := store.Create(context.TODO(), testMeta)
	tr.Turns = append(tr.Turns, schema.UserTurn("hi"), schema.AssistantTurn("hello"))
	assert.NoError(store.Write(tr))

	other, _ := session.NewFileStore(dir)
	got, err := other.Get(context.TODO(), tr.ID)
	assert.NoError(err)
	assert.Equal(tr.Turns, got.Turns)
}
