package dispatcher

import (
	"github.com/dshills/quill/internal/dispatcher/handler"
	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/engine/view"
)

// ResponseKind tags a Response.
type ResponseKind string

// Response kinds.
const (
	// KindAcknowledge means nothing visible changed.
	KindAcknowledge ResponseKind = "acknowledge"
	// KindCursorPosition means selections moved but the view did not.
	KindCursorPosition ResponseKind = "cursor_position"
	// KindDisplayView means the client must redraw its view.
	KindDisplayView ResponseKind = "display_view"
	// KindFileOpened answers file.open.
	KindFileOpened ResponseKind = "file_opened"
	// KindFailed carries an error explanation.
	KindFailed ResponseKind = "failed"
)

// Response is what the dispatcher returns for one action. Which fields
// are set depends on Kind.
type Response struct {
	Kind ResponseKind `json:"kind"`

	// DisplayView
	Content     string `json:"content,omitempty"`
	LineNumbers string `json:"line_numbers,omitempty"`
	Modified    bool   `json:"modified,omitempty"`

	// CursorPosition and DisplayView
	ClientCursorPositions   []view.Position `json:"client_cursor_positions,omitempty"`
	DocumentCursorPositions []view.Position `json:"document_cursor_positions,omitempty"`

	// FileOpened
	FileName       string `json:"file_name,omitempty"`
	DocumentLength int    `json:"document_length,omitempty"`

	// Failed
	Message string `json:"message,omitempty"`

	// Acknowledge may carry handler data, such as file.status.
	Data map[string]any `json:"data,omitempty"`
}

// IsFailed reports whether the response carries an error.
func (r Response) IsFailed() bool {
	return r.Kind == KindFailed
}

// Acknowledge builds an acknowledgement.
func Acknowledge() Response {
	return Response{Kind: KindAcknowledge}
}

// Failed builds a failure response from err.
func Failed(err error) Response {
	return Response{Kind: KindFailed, Message: err.Error()}
}

// CursorPosition reports where doc's cursors are.
func CursorPosition(doc *engine.Document) Response {
	return Response{
		Kind:                    KindCursorPosition,
		ClientCursorPositions:   doc.ClientCursorPositions(),
		DocumentCursorPositions: doc.DocumentCursorPositions(),
	}
}

// DisplayView renders doc's view.
func DisplayView(doc *engine.Document) Response {
	return Response{
		Kind:                    KindDisplayView,
		Content:                 doc.ViewText(),
		LineNumbers:             doc.LineNumbers(),
		Modified:                doc.IsModified(),
		ClientCursorPositions:   doc.ClientCursorPositions(),
		DocumentCursorPositions: doc.DocumentCursorPositions(),
	}
}

// FileOpened describes a freshly opened document.
func FileOpened(doc *engine.Document) Response {
	return Response{
		Kind:           KindFileOpened,
		FileName:       doc.FileName(),
		DocumentLength: doc.Len(),
	}
}

// respond turns a successful handler result into a response, scrolling
// the view to follow the primary cursor when selections or text changed.
func respond(doc *engine.Document, result handler.Result) Response {
	switch result.Effect {
	case handler.EffectSelection:
		if doc.ScrollViewFollowingCursor() {
			return DisplayView(doc)
		}
		return CursorPosition(doc)
	case handler.EffectText:
		doc.ScrollViewFollowingCursor()
		return DisplayView(doc)
	case handler.EffectView:
		return DisplayView(doc)
	default:
		resp := Acknowledge()
		resp.Message = result.Message
		resp.Data = result.Data
		return resp
	}
}
