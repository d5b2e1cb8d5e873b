package history

import (
	"fmt"
	"unicode/utf8"
)

// Kind identifies the type of an Operation.
type Kind int

const (
	// KindNoOp marks a selection that could not act.
	KindNoOp Kind = iota
	// KindInsert inserts Text.
	KindInsert
	// KindDelete removes a range.
	KindDelete
	// KindReplace replaces a range with Text.
	KindReplace
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNoOp:
		return "noop"
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	case KindReplace:
		return "replace"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Operation is a single edit in the taxonomy NoOp, Insert, Delete, Replace.
type Operation struct {
	Kind Kind
	Text string // inserted or replacement text; empty for NoOp and Delete
}

// NoOp returns an operation that changes nothing.
func NoOp() Operation {
	return Operation{Kind: KindNoOp}
}

// Insert returns an operation inserting text.
func Insert(text string) Operation {
	return Operation{Kind: KindInsert, Text: text}
}

// Delete returns an operation removing a range.
func Delete() Operation {
	return Operation{Kind: KindDelete}
}

// Replace returns an operation replacing a range with text.
func Replace(text string) Operation {
	return Operation{Kind: KindReplace, Text: text}
}

// IsNoOp returns true if the operation changes nothing.
func (op Operation) IsNoOp() bool {
	return op.Kind == KindNoOp
}

// inserted returns the text this operation puts into the buffer.
func (op Operation) inserted() string {
	if op.Kind == KindInsert || op.Kind == KindReplace {
		return op.Text
	}
	return ""
}

// String returns a human-readable representation of the operation.
func (op Operation) String() string {
	switch op.Kind {
	case KindInsert, KindReplace:
		return fmt.Sprintf("%s(%q)", op.Kind, op.Text)
	default:
		return op.Kind.String()
	}
}

func charLen(s string) int {
	return utf8.RuneCountInString(s)
}
