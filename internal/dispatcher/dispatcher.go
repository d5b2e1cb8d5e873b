package dispatcher

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/dshills/quill/internal/dispatcher/action"
	"github.com/dshills/quill/internal/dispatcher/execctx"
	"github.com/dshills/quill/internal/dispatcher/handler"
	"github.com/dshills/quill/internal/dispatcher/handlers/cursor"
	"github.com/dshills/quill/internal/dispatcher/handlers/edit"
	"github.com/dshills/quill/internal/dispatcher/handlers/extend"
	"github.com/dshills/quill/internal/dispatcher/handlers/file"
	"github.com/dshills/quill/internal/dispatcher/handlers/selection"
	"github.com/dshills/quill/internal/dispatcher/handlers/view"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/logging"
)

// DefaultMaxRepeatCount caps the repeat count of a single action.
const DefaultMaxRepeatCount = 10000

// FileWatcher follows open files for external changes.
type FileWatcher interface {
	execctx.DiskState

	// Watch starts following path on behalf of client.
	Watch(client editor.ClientID, path string) error

	// Unwatch stops following path for client.
	Unwatch(client editor.ClientID, path string)
}

// Dispatcher routes client actions to handlers and turns their results
// into responses.
//
// Every action runs inside editor.Do, so actions from all clients are
// serialized and the engine never sees concurrent calls.
type Dispatcher struct {
	router    *Router
	editor    *editor.Editor
	watcher   FileWatcher
	metrics   *Metrics
	logger    *logging.Logger
	maxRepeat int
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithFileWatcher sets the watcher told about opened, saved and closed
// files.
func WithFileWatcher(w FileWatcher) Option {
	return func(d *Dispatcher) {
		d.watcher = w
	}
}

// WithMetrics enables dispatch statistics.
func WithMetrics() Option {
	return func(d *Dispatcher) {
		d.metrics = NewMetrics()
	}
}

// WithMaxRepeatCount caps repeat counts. Zero means no cap.
func WithMaxRepeatCount(n int) Option {
	return func(d *Dispatcher) {
		d.maxRepeat = n
	}
}

// New creates a dispatcher over ed with every built-in namespace
// registered.
func New(ed *editor.Editor, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		router:    NewRouter(),
		editor:    ed,
		logger:    logging.Null(),
		maxRepeat: DefaultMaxRepeatCount,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.WithComponent("dispatcher")

	for _, h := range []handler.NamespaceHandler{
		cursor.NewHandler(),
		extend.NewHandler(),
		selection.NewHandler(),
		view.NewHandler(),
		edit.NewHandler(),
		file.NewHandler(),
	} {
		// Built-in namespaces are distinct.
		_ = d.router.Register(h)
	}
	d.logger.Debug("namespaces: %s", strings.Join(d.router.Namespaces(), ", "))
	return d
}

// RegisterNamespace adds a namespace handler next to the built-in ones.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) error {
	return d.router.Register(h)
}

// Actions returns every action name the dispatcher serves.
func (d *Dispatcher) Actions() []string {
	names := append(d.router.Actions(), file.ActionOpen)
	sort.Strings(names)
	return names
}

// Router returns the dispatcher's router.
func (d *Dispatcher) Router() *Router {
	return d.router
}

// Metrics returns the metrics collector, or nil if metrics are disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Dispatch runs a for client and returns the response to send back.
// Errors never escape: they become Failed responses.
func (d *Dispatcher) Dispatch(client editor.ClientID, a action.Action) Response {
	start := time.Now()

	var resp Response
	if a.Name == file.ActionOpen {
		resp = d.open(client, a)
	} else {
		resp = d.run(client, a)
	}

	if resp.IsFailed() {
		d.logger.WithField("client", client).Debug("%s failed: %s", a, resp.Message)
	}
	if d.metrics != nil {
		d.metrics.RecordDispatch(a.Name, time.Since(start), resp.IsFailed())
	}
	return resp
}

// open serves file.open, which creates the document every other action
// needs.
func (d *Dispatcher) open(client editor.ClientID, a action.Action) Response {
	path, ok := a.Args.GetString("path")
	if !ok || path == "" {
		return Failed(fmt.Errorf("%w: path", execctx.ErrMissingArgument))
	}

	doc, err := d.editor.OpenDocument(path, client)
	if err != nil {
		return Failed(err)
	}
	if d.watcher != nil {
		if err := d.watcher.Watch(client, doc.FilePath()); err != nil {
			d.logger.Warn("watch %s: %v", doc.FilePath(), err)
		}
	}
	return FileOpened(doc)
}

func (d *Dispatcher) run(client editor.ClientID, a action.Action) Response {
	if a.Name == "" {
		return Failed(ErrInvalidAction)
	}

	h, ok := d.router.Route(a.Name)
	if !ok {
		return Failed(fmt.Errorf("%w: %s", ErrNoHandler, a.Name))
	}

	count := a.Count
	if d.maxRepeat > 0 && count > d.maxRepeat {
		count = d.maxRepeat
	}

	var resp Response
	err := d.editor.Do(client, func(doc *engine.Document) error {
		ctx := execctx.New(doc, client).WithCount(count)
		if d.watcher != nil {
			ctx.WithDisk(d.watcher)
		}

		result := d.executeWithRecovery(h, a, ctx)
		if result.IsError() {
			return result.Error
		}
		resp = respond(doc, result)
		return nil
	})
	if err != nil {
		return Failed(err)
	}
	return resp
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, a action.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			d.logger.Error("handler panic for %s: %v\n%s", a.Name, r, stack[:n])

			result = handler.Error(fmt.Errorf("%w: %s", ErrPanic, a.Name))
			if d.metrics != nil {
				d.metrics.RecordPanic()
			}
		}
	}()

	return h.Handle(a, ctx)
}

// Close drops the client's document and stops watching its file for that
// client.
func (d *Dispatcher) Close(client editor.ClientID) error {
	var path string
	_ = d.editor.Do(client, func(doc *engine.Document) error {
		path = doc.FilePath()
		return nil
	})

	if err := d.editor.CloseDocument(client); err != nil {
		return err
	}
	if d.watcher != nil && path != "" {
		d.watcher.Unwatch(client, path)
		if others := d.editor.ClientsWithPath(path); len(others) > 0 {
			d.logger.Debug("%s still open for %d client(s)", path, len(others))
		}
	}
	return nil
}
