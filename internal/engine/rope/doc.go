// Package rope provides an immutable rope for storing and editing document text.
//
// The rope is a B+ tree whose leaves hold UTF-8 chunks and whose internal
// nodes cache a TextSummary per child. Every summary records byte, character
// and newline counts, so conversions between character indices, byte offsets
// and line numbers descend the tree in O(log n).
//
// All public positions are character indices: one character is one Unicode
// code point. Lines are separated by '\n'; a trailing newline starts an empty
// final line, so "a\nb\n" has three lines.
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r = r.InsertChars(5, ",")      // "hello, world"
//	r = r.RemoveChars(0, 7)        // "world"
//	line := r.CharToLine(3)        // 0
//
// Operations return new ropes; the receiver is never modified, which makes
// keeping the last-saved text or an undo snapshot free.
package rope
