package editor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/engine/selection"
	"github.com/dshills/quill/internal/logging"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestClientID(t *testing.T) {
	a, b := NewClientID(), NewClientID()
	assert.NotEqual(t, a, b)

	parsed, err := ParseClientID(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)

	_, err = ParseClientID("not-a-uuid")
	assert.Error(t, err)
}

func TestOpenAndCloseDocument(t *testing.T) {
	var logs bytes.Buffer
	e := New(
		WithDocumentOptions(engine.WithCursorSemantics(selection.Bar)),
		WithLogger(logging.New(logging.Config{Level: logging.LevelDebug, Output: &logs})),
	)
	path := writeFile(t, "hello\n")
	client := NewClientID()

	doc, err := e.OpenDocument(path, client)
	require.NoError(t, err)
	assert.Equal(t, "doc.txt", doc.FileName())
	assert.Equal(t, selection.Bar, doc.CursorSemantics())
	assert.True(t, e.HasDocument(client))
	assert.Contains(t, logs.String(), "opened")

	_, err = e.OpenDocument(path, client)
	require.ErrorIs(t, err, ErrAlreadyOpen)

	require.NoError(t, e.CloseDocument(client))
	assert.False(t, e.HasDocument(client))
	require.ErrorIs(t, e.CloseDocument(client), ErrUnknownClient)
}

func TestSamePathDistinctDocuments(t *testing.T) {
	e := New()
	path := writeFile(t, "abc")
	first, second := NewClientID(), NewClientID()

	_, err := e.OpenDocument(path, first)
	require.NoError(t, err)
	_, err = e.OpenDocument(path, second)
	require.NoError(t, err)

	require.NoError(t, e.Do(first, func(d *engine.Document) error {
		return d.InsertString("x")
	}))
	require.NoError(t, e.Do(second, func(d *engine.Document) error {
		assert.Equal(t, "abc", d.Text().String())
		assert.False(t, d.IsModified())
		return nil
	}))

	assert.ElementsMatch(t, []ClientID{first, second}, e.ClientsWithPath(path))
	assert.Len(t, e.Clients(), 2)
}

func TestDoUnknownClient(t *testing.T) {
	e := New()
	err := e.Do(NewClientID(), func(*engine.Document) error { return nil })
	require.ErrorIs(t, err, ErrUnknownClient)

	sentinel := errors.New("boom")
	client := NewClientID()
	require.NoError(t, e.AttachDocument(client, engine.New()))
	require.ErrorIs(t, e.Do(client, func(*engine.Document) error { return sentinel }), sentinel)
}

func TestConcurrentDo(t *testing.T) {
	e := New()
	client := NewClientID()
	require.NoError(t, e.AttachDocument(client, engine.New(engine.WithCursorSemantics(selection.Bar))))

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = e.Do(client, func(d *engine.Document) error { return d.InsertString("a") })
		}()
	}
	wg.Wait()

	require.NoError(t, e.Do(client, func(d *engine.Document) error {
		assert.Equal(t, 20, d.Len())
		return nil
	}))
	assert.Equal(t, 1, e.Len())
}
