package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quill/internal/dispatcher"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/engine"
)

type harness struct {
	server  *Server
	editor  *editor.Editor
	watcher *Watcher
	socket  string
	done    chan error
}

func startServer(t *testing.T) *harness {
	t.Helper()

	// Unix socket paths are short; t.TempDir can exceed the limit.
	dir, err := os.MkdirTemp("", "quill")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	w, err := NewWatcher(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ed := editor.New(editor.WithDocumentOptions(engine.WithViewSize(20, 5)))
	d := dispatcher.New(ed, dispatcher.WithFileWatcher(w), dispatcher.WithMetrics())

	h := &harness{
		server:  New(d),
		editor:  ed,
		watcher: w,
		socket:  filepath.Join(dir, "s.sock"),
		done:    make(chan error, 1),
	}

	ln, err := net.Listen("unix", h.socket)
	require.NoError(t, err)
	go func() { h.done <- h.server.Serve(context.Background(), ln) }()
	t.Cleanup(func() { _ = h.server.Close() })
	return h
}

type client struct {
	t    *testing.T
	conn net.Conn
	in   *bufio.Scanner
}

func (h *harness) dial(t *testing.T) *client {
	t.Helper()
	conn, err := net.Dial("unix", h.socket)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &client{t: t, conn: conn, in: bufio.NewScanner(conn)}
}

func (c *client) sendRaw(line string) dispatcher.Response {
	c.t.Helper()
	_, err := c.conn.Write([]byte(line + "\n"))
	require.NoError(c.t, err)

	require.True(c.t, c.in.Scan(), "no response: %v", c.in.Err())
	var resp dispatcher.Response
	require.NoError(c.t, json.Unmarshal(c.in.Bytes(), &resp))
	return resp
}

func (c *client) send(req map[string]any) dispatcher.Response {
	c.t.Helper()
	data, err := json.Marshal(req)
	require.NoError(c.t, err)
	return c.sendRaw(string(data))
}

func (c *client) open(path string) dispatcher.Response {
	c.t.Helper()
	return c.send(map[string]any{"action": "file.open", "args": map[string]any{"path": path}})
}

func tempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestServerRequiresOpenFirst(t *testing.T) {
	h := startServer(t)
	c := h.dial(t)

	resp := c.send(map[string]any{"action": "cursor.moveRight"})
	assert.Equal(t, dispatcher.KindFailed, resp.Kind)
	assert.Equal(t, ErrNotOpen.Error(), resp.Message)
	assert.Equal(t, 0, h.editor.Len())
}

func TestServerMalformedRequest(t *testing.T) {
	h := startServer(t)
	c := h.dial(t)

	resp := c.sendRaw("{not json")
	assert.Equal(t, dispatcher.KindFailed, resp.Kind)
	assert.Contains(t, resp.Message, "malformed request")

	// The connection stays usable.
	resp = c.open(tempFile(t, "hello\n"))
	assert.Equal(t, dispatcher.KindFileOpened, resp.Kind)
}

func TestServerEditSession(t *testing.T) {
	h := startServer(t)
	path := tempFile(t, "hello\n")
	c := h.dial(t)

	resp := c.open(path)
	require.Equal(t, dispatcher.KindFileOpened, resp.Kind)
	assert.Equal(t, "doc.txt", resp.FileName)
	assert.Equal(t, 6, resp.DocumentLength)
	assert.Equal(t, 1, h.watcher.WatchedFiles())

	resp = c.send(map[string]any{"action": "edit.insert", "args": map[string]any{"text": "> "}})
	require.Equal(t, dispatcher.KindDisplayView, resp.Kind)
	assert.True(t, resp.Modified)
	assert.Contains(t, resp.Content, "> hello")

	resp = c.send(map[string]any{"action": "file.save"})
	require.Equal(t, dispatcher.KindDisplayView, resp.Kind, resp.Message)
	assert.False(t, resp.Modified)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "> hello\n", string(data))

	resp = c.send(map[string]any{"action": "file.status"})
	require.Equal(t, dispatcher.KindAcknowledge, resp.Kind)
	assert.Equal(t, false, resp.Data["changed_on_disk"])

	require.NoError(t, c.conn.Close())
	assert.Eventually(t, func() bool { return h.editor.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, h.watcher.WatchedFiles())
}

func TestServerReportsExternalChange(t *testing.T) {
	h := startServer(t)
	path := tempFile(t, "hello\n")
	c := h.dial(t)
	require.Equal(t, dispatcher.KindFileOpened, c.open(path).Kind)

	require.NoError(t, os.WriteFile(path, []byte("changed elsewhere\n"), 0644))

	assert.Eventually(t, func() bool {
		resp := c.send(map[string]any{"action": "file.status"})
		return resp.Data["changed_on_disk"] == true
	}, 2*time.Second, 20*time.Millisecond)
}

func TestServerClientsAreIndependent(t *testing.T) {
	h := startServer(t)
	path := tempFile(t, "abc\n")

	a := h.dial(t)
	b := h.dial(t)
	require.Equal(t, dispatcher.KindFileOpened, a.open(path).Kind)
	require.Equal(t, dispatcher.KindFileOpened, b.open(path).Kind)
	assert.Equal(t, 2, h.editor.Len())

	resp := a.send(map[string]any{"action": "cursor.moveRight", "count": 2})
	require.Equal(t, dispatcher.KindCursorPosition, resp.Kind)

	resp = b.send(map[string]any{"action": "edit.insert", "args": map[string]any{"text": "x"}})
	require.Equal(t, dispatcher.KindDisplayView, resp.Kind)
	assert.Contains(t, resp.Content, "xabc")

	require.NoError(t, a.conn.Close())
	assert.Eventually(t, func() bool { return h.editor.Len() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, h.watcher.WatchedFiles(), "b still has the file open")
}

func TestServerSaveMarksOtherClients(t *testing.T) {
	h := startServer(t)
	path := tempFile(t, "abc\n")
	status := map[string]any{"action": "file.status"}

	a := h.dial(t)
	b := h.dial(t)
	require.Equal(t, dispatcher.KindFileOpened, a.open(path).Kind)
	require.Equal(t, dispatcher.KindFileOpened, b.open(path).Kind)

	a.send(map[string]any{"action": "edit.insert", "args": map[string]any{"text": "x"}})
	resp := a.send(map[string]any{"action": "file.save"})
	require.Equal(t, dispatcher.KindDisplayView, resp.Kind, resp.Message)

	assert.Eventually(t, func() bool {
		return b.send(status).Data["changed_on_disk"] == true
	}, 2*time.Second, 20*time.Millisecond, "b holds a stale copy")
	assert.Never(t, func() bool {
		return a.send(status).Data["changed_on_disk"] == true
	}, settle, 20*time.Millisecond, "a wrote the file itself")
}

func TestServerClose(t *testing.T) {
	h := startServer(t)
	c := h.dial(t)
	require.Equal(t, dispatcher.KindFileOpened, c.open(tempFile(t, "x\n")).Kind)

	require.NoError(t, h.server.Close())
	select {
	case err := <-h.done:
		assert.ErrorIs(t, err, ErrServerClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
	assert.Equal(t, 0, h.editor.Len())
	assert.Equal(t, 0, h.server.Connections())
	assert.Equal(t, uint64(1), h.server.dispatcher.Metrics().Snapshot().TotalDispatches)
}

func TestServeStopsWithContext(t *testing.T) {
	dir, err := os.MkdirTemp("", "quill")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	s := New(dispatcher.New(editor.New()))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, filepath.Join(dir, "s.sock")) }()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, "s.sock"))
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrServerClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("ListenAndServe did not return")
	}
}

func TestRemoveStaleSocket(t *testing.T) {
	dir, err := os.MkdirTemp("", "quill")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	assert.NoError(t, removeStaleSocket(filepath.Join(dir, "missing.sock")))

	regular := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(regular, nil, 0644))
	assert.Error(t, removeStaleSocket(regular))

	live := filepath.Join(dir, "live.sock")
	ln, err := net.Listen("unix", live)
	require.NoError(t, err)
	assert.Error(t, removeStaleSocket(live))
	_ = ln.Close()
}
