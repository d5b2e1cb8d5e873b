// Package execctx provides the execution context for action handlers.
package execctx

import (
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/engine"
)

// DiskState tracks, per client, whether a file changed on disk since the
// client opened or last saved it. The server's file watcher implements it.
type DiskState interface {
	ChangedOnDisk(client editor.ClientID, path string) bool
	Saved(client editor.ClientID, path string)
}

// ExecutionContext carries what a handler needs to run one action.
type ExecutionContext struct {
	// Document is the client's document.
	Document *engine.Document

	// Client identifies the requesting client.
	Client editor.ClientID

	// Disk reports external file changes. May be nil.
	Disk DiskState

	// Count is the repeat count (1 if not specified).
	Count int
}

// New creates an execution context for doc.
func New(doc *engine.Document, client editor.ClientID) *ExecutionContext {
	return &ExecutionContext{
		Document: doc,
		Client:   client,
		Count:    1,
	}
}

// WithCount returns the context with the repeat count set.
// Values below one are treated as one.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	ctx.Count = count
	return ctx
}

// WithDisk returns the context with the disk state set.
func (ctx *ExecutionContext) WithDisk(disk DiskState) *ExecutionContext {
	ctx.Disk = disk
	return ctx
}

// GetCount returns the repeat count, at least one.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count < 1 {
		return 1
	}
	return ctx.Count
}

// Validate checks the context has a document.
func (ctx *ExecutionContext) Validate() error {
	if ctx == nil || ctx.Document == nil {
		return ErrMissingDocument
	}
	return nil
}

// ChangedOnDisk reports whether the document's file changed externally.
func (ctx *ExecutionContext) ChangedOnDisk() bool {
	if ctx.Disk == nil || ctx.Document == nil || ctx.Document.FilePath() == "" {
		return false
	}
	return ctx.Disk.ChangedOnDisk(ctx.Client, ctx.Document.FilePath())
}

// MarkSaved tells the disk state the document was just written.
func (ctx *ExecutionContext) MarkSaved() {
	if ctx.Disk == nil || ctx.Document == nil || ctx.Document.FilePath() == "" {
		return
	}
	ctx.Disk.Saved(ctx.Client, ctx.Document.FilePath())
}
