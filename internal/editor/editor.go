// Package editor maps connected clients to the documents they are editing.
package editor

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/logging"
)

// Errors returned by the editor.
var (
	// ErrUnknownClient indicates no document is open for the client.
	ErrUnknownClient = errors.New("unknown client")

	// ErrAlreadyOpen indicates the client already has a document open.
	ErrAlreadyOpen = errors.New("client already has a document open")
)

// ClientID identifies one connected client.
type ClientID uuid.UUID

// NewClientID returns a fresh random client identifier.
func NewClientID() ClientID {
	return ClientID(uuid.New())
}

// ParseClientID parses the string form of a client identifier.
func ParseClientID(s string) (ClientID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ClientID{}, fmt.Errorf("parse client id: %w", err)
	}
	return ClientID(id), nil
}

// String returns the canonical string form of the identifier.
func (id ClientID) String() string {
	return uuid.UUID(id).String()
}

// Editor owns one Document per client. Two clients opening the same path
// get independent documents.
//
// Editor is safe for concurrent use. Access to a document goes through Do,
// which holds the editor lock for the duration of the call, so document
// actions never run concurrently.
type Editor struct {
	mu      sync.Mutex
	docs    map[ClientID]*engine.Document
	options []engine.Option
	logger  *logging.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithDocumentOptions sets the options every new document is created with.
func WithDocumentOptions(opts ...engine.Option) Option {
	return func(e *Editor) {
		e.options = append(e.options, opts...)
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an editor with no documents.
func New(opts ...Option) *Editor {
	e := &Editor{
		docs:   make(map[ClientID]*engine.Document),
		logger: logging.Null(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithComponent("editor")
	return e
}

// OpenDocument reads path into a new document for client. A path that
// does not exist yet opens as an empty document.
func (e *Editor) OpenDocument(path string, client ClientID) (*engine.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.docs[client]; ok {
		return nil, ErrAlreadyOpen
	}

	doc, err := engine.OpenOrCreate(path, e.options...)
	if err != nil {
		e.logger.WithField("client", client).Warn("open %s: %v", path, err)
		return nil, err
	}
	e.docs[client] = doc
	e.logger.WithField("client", client).Info("opened %s (%d chars)", path, doc.Len())
	return doc, nil
}

// AttachDocument registers an existing document for client.
func (e *Editor) AttachDocument(client ClientID, doc *engine.Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.docs[client]; ok {
		return ErrAlreadyOpen
	}
	e.docs[client] = doc
	return nil
}

// CloseDocument drops the client's document.
func (e *Editor) CloseDocument(client ClientID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc, ok := e.docs[client]
	if !ok {
		return ErrUnknownClient
	}
	delete(e.docs, client)

	log := e.logger.WithField("client", client)
	if doc.IsModified() {
		log.Warn("closed %s with unsaved changes", doc.FileName())
	} else {
		log.Info("closed %s", doc.FileName())
	}
	return nil
}

// Do runs fn on the client's document while holding the editor lock.
func (e *Editor) Do(client ClientID, fn func(*engine.Document) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc, ok := e.docs[client]
	if !ok {
		return ErrUnknownClient
	}
	return fn(doc)
}

// HasDocument reports whether client has a document open.
func (e *Editor) HasDocument(client ClientID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.docs[client]
	return ok
}

// Clients returns the clients with an open document, sorted by id.
func (e *Editor) Clients() []ClientID {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]ClientID, 0, len(e.docs))
	for id := range e.docs {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// ClientsWithPath returns the clients whose document was opened from path.
func (e *Editor) ClientsWithPath(path string) []ClientID {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []ClientID
	for id, doc := range e.docs {
		if doc.FilePath() == path {
			out = append(out, id)
		}
	}
	return out
}

// Len returns the number of open documents.
func (e *Editor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.docs)
}
