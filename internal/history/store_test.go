package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileSystemStore {
	return NewFileSystemStore(filepath.Join(t.TempDir(), "histories"))
}

func TestLoadMissingRecord(t *testing.T) {
	store := newTestStore(t)

	h, err := store.Load("demo")

	require.NoError(t, err)
	assert.Equal(t, "demo", h.Title)
	assert.Equal(t, 0, h.TurnIndex)
	assert.Empty(t, h.Turns)
}

func TestLoadCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "histories")
	store := NewFileSystemStore(dir)

	_, err := store.Load("demo")

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadEmptyRecord(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Load("demo") // Creates the directory
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(store.dir, "demo.json"), nil, 0666))

	h, err := store.Load("demo")

	require.NoError(t, err)
	assert.Equal(t, "demo", h.Title)
	assert.Equal(t, 0, h.TurnIndex)
	assert.Empty(t, h.Turns)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	h := NewConversationHistory("demo")
	h.Append(Turn{Prompt: "hi", Response: "hello"})
	h.Append(Turn{Prompt: "bye", Response: "ok"})

	require.NoError(t, store.Save(*h))

	loaded, err := store.Load("demo")
	require.NoError(t, err)
	assert.Equal(t, "demo", loaded.Title)
	assert.Equal(t, 2, loaded.TurnIndex)
	assert.Equal(t, h.Turns, loaded.Turns)
}

func TestSaveBeforeAnyLoadCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "histories")
	store := NewFileSystemStore(dir)

	h := NewConversationHistory("demo")
	h.Append(Turn{Prompt: "hi", Response: "hello"})

	require.NoError(t, store.Save(*h))

	loaded, err := store.Load("demo")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.TurnIndex)
	assert.Equal(t, h.Turns, loaded.Turns)
}

func TestSaveReplacesRecord(t *testing.T) {
	store := newTestStore(t)

	h := NewConversationHistory("demo")
	h.Append(Turn{Prompt: "hi", Response: "hello"})
	require.NoError(t, store.Save(*h))

	h.Append(Turn{Prompt: "more", Response: "sure"})
	require.NoError(t, store.Save(*h))

	loaded, err := store.Load("demo")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.TurnIndex)
	assert.Len(t, loaded.Turns, 2)
}

func TestLoadMalformedRecord(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Load("demo")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(store.dir, "demo.json"), []byte("{not json"), 0666))

	_, err = store.Load("demo")

	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	h := NewConversationHistory("demo")
	h.Append(Turn{Prompt: "hi", Response: "hello"})
	require.NoError(t, store.Save(*h))

	require.NoError(t, store.Delete("demo"))

	loaded, err := store.Load("demo")
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.TurnIndex)
	assert.Empty(t, loaded.Turns)
}

func TestRecordName(t *testing.T) {
	store := newTestStore(t)
	assert.Equal(t, "demo.json", store.RecordName("demo"))
}

func TestAppend(t *testing.T) {
	h := NewConversationHistory("demo")

	h.Append(Turn{Prompt: "hi", Response: "hello"})

	assert.Equal(t, 1, h.TurnIndex)
	assert.Equal(t, Turn{Prompt: "hi", Response: "hello"}, h.Turns[1])
}
