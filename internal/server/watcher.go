package server

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/quill/internal/dispatcher"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/logging"
)

// stamp identifies one version of a file on disk.
type stamp struct {
	modTime int64
	size    int64
	exists  bool
}

func statStamp(path string) stamp {
	info, err := os.Stat(path)
	if err != nil {
		return stamp{}
	}
	return stamp{modTime: info.ModTime().UnixNano(), size: info.Size(), exists: true}
}

// holder is one client's view of a watched file.
type holder struct {
	// saved is the stamp the client last loaded or wrote.
	saved   stamp
	changed bool
}

// watchedFile tracks every client that has the same path open. Each
// client edits its own copy, so each one is compared against the version
// it last loaded or saved.
type watchedFile struct {
	holders map[editor.ClientID]*holder
}

// Watcher follows open files for writes made by other programs or by
// other clients.
//
// fsnotify loses a file watch when the file is replaced by rename, which
// is how documents are saved, so the watcher follows each file's parent
// directory and filters events by name.
type Watcher struct {
	mu sync.Mutex

	fsw    *fsnotify.Watcher
	files  map[string]*watchedFile
	dirs   map[string]int
	logger *logging.Logger

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewWatcher starts a watcher. Close releases it.
func NewWatcher(logger *logging.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Null()
	}

	w := &Watcher{
		fsw:     fsw,
		files:   make(map[string]*watchedFile),
		dirs:    make(map[string]int),
		logger:  logger.WithComponent("watcher"),
		closeCh: make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Watch starts following path for client. Watching the same pair twice
// is a no-op.
func (w *Watcher) Watch(client editor.ClientID, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	f, ok := w.files[abs]
	if !ok {
		dir := filepath.Dir(abs)
		if w.dirs[dir] == 0 {
			if err := w.fsw.Add(dir); err != nil {
				return err
			}
		}
		w.dirs[dir]++
		f = &watchedFile{holders: make(map[editor.ClientID]*holder)}
		w.files[abs] = f
	}
	if _, ok := f.holders[client]; !ok {
		f.holders[client] = &holder{saved: statStamp(abs)}
	}
	return nil
}

// Unwatch stops following path for client. The directory watch goes away
// with the last client.
func (w *Watcher) Unwatch(client editor.ClientID, path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	f, ok := w.files[abs]
	if !ok {
		return
	}
	delete(f.holders, client)
	if len(f.holders) > 0 {
		return
	}
	delete(w.files, abs)

	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		if !w.closed {
			_ = w.fsw.Remove(dir)
		}
	}
}

// ChangedOnDisk reports whether path was written by another program or
// another client since client opened or last saved it.
func (w *Watcher) ChangedOnDisk(client editor.ClientID, path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	h := w.holder(client, abs)
	return h != nil && h.changed
}

// Saved records that path now holds client's contents. Every other client
// with the path open is now editing a stale copy.
func (w *Watcher) Saved(client editor.ClientID, path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	f, ok := w.files[abs]
	if !ok {
		return
	}
	now := statStamp(abs)
	for id, h := range f.holders {
		if id == client {
			h.saved = now
			h.changed = false
			continue
		}
		h.changed = true
	}
}

func (w *Watcher) holder(client editor.ClientID, abs string) *holder {
	f, ok := w.files[abs]
	if !ok {
		return nil
	}
	return f.holders[client]
}

// WatchedFiles returns the number of files being followed.
func (w *Watcher) WatchedFiles() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.files)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()
	return w.fsw.Close()
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("fsnotify: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}

	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	f, ok := w.files[abs]
	if !ok {
		return
	}
	// Stat under the lock so a concurrent Saved cannot slip between the
	// comparison and the update.
	now := statStamp(abs)
	marked := 0
	for _, h := range f.holders {
		if h.changed || now == h.saved {
			continue
		}
		h.changed = true
		marked++
	}
	if marked > 0 {
		w.logger.WithField("path", abs).Info("file changed on disk for %d client(s) (%s)", marked, ev.Op)
	}
}

var _ dispatcher.FileWatcher = (*Watcher)(nil)
