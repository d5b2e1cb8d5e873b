package rope

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Rope is an immutable text buffer indexed by character and line.
// The zero value is an empty rope.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// FromReader creates a rope from an io.Reader.
func FromReader(r io.Reader) (Rope, error) {
	var b Builder
	if _, err := b.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return b.Build(), nil
}

func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var nodes []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leaf := make([]Chunk, end-i)
		copy(leaf, chunks[i:end])
		nodes = append(nodes, newLeafNodeWithChunks(leaf))
	}

	for len(nodes) > 1 {
		var parents []*Node
		for i := 0; i < len(nodes); i += MaxChildren {
			end := min(i+MaxChildren, len(nodes))
			group := make([]*Node, end-i)
			copy(group, nodes[i:end])
			parents = append(parents, newInternalNode(group))
		}
		nodes = parents
	}
	return Rope{root: nodes[0]}
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{Flags: FlagASCII}
	}
	return r.root.summary
}

// LenBytes returns the UTF-8 byte length.
func (r Rope) LenBytes() int {
	return r.Summary().Bytes
}

// LenChars returns the number of characters.
func (r Rope) LenChars() int {
	return r.Summary().Chars
}

// LenLines returns the number of lines: newlines plus one.
func (r Rope) LenLines() int {
	return r.Summary().Lines + 1
}

// LongestLine returns the char length of the longest line, excluding
// its terminator.
func (r Rope) LongestLine() int {
	return r.Summary().LongestLine
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.LenBytes() == 0
}

// String returns the full text.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.LenBytes())
	r.root.appendTo(&sb)
	return sb.String()
}

// Bytes returns the full text as a byte slice.
func (r Rope) Bytes() []byte {
	return []byte(r.String())
}

// WriteTo writes the text to w chunk by chunk.
func (r Rope) WriteTo(w io.Writer) (int64, error) {
	var total int64
	it := r.Chunks()
	for it.Next() {
		n, err := io.WriteString(w, it.Chunk().String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// CharToByte converts a char index to a byte offset.
// Indices past the end clamp to LenBytes.
func (r Rope) CharToByte(char int) int {
	if r.root == nil || char <= 0 {
		return 0
	}
	return r.root.byteOfChar(char)
}

// ByteToChar converts a byte offset to a char index.
func (r Rope) ByteToChar(offset int) int {
	if r.root == nil || offset <= 0 {
		return 0
	}
	return r.root.charOfByte(offset)
}

// CharToLine returns the line containing the char index. The index one past
// the end belongs to the last line.
func (r Rope) CharToLine(char int) int {
	if r.root == nil || char <= 0 {
		return 0
	}
	return r.root.lineOfChar(char)
}

// LineToChar returns the char index of the start of a line. Lines past the
// end map to LenChars.
func (r Rope) LineToChar(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}
	_, chars := r.root.lineStart(line)
	return chars
}

// lineBytes returns the byte range of a line including its terminator.
func (r Rope) lineBytes(line int) (int, int) {
	if r.root == nil {
		return 0, 0
	}
	start, _ := r.root.lineStart(line)
	end, _ := r.root.lineStart(line + 1)
	return start, end
}

// Line returns the text of a line including its terminator, if any.
// Lines past the end are empty.
func (r Rope) Line(line int) string {
	if line < 0 || line >= r.LenLines() {
		return ""
	}
	start, end := r.lineBytes(line)
	return r.sliceBytes(start, end)
}

// LineText returns the text of a line without its "\n" or "\r\n" terminator.
func (r Rope) LineText(line int) string {
	s := r.Line(line)
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

func (r Rope) sliceBytes(start, end int) string {
	if r.root == nil || start >= end {
		return ""
	}
	end = min(end, r.LenBytes())
	var sb strings.Builder
	sb.Grow(end - start)
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// Slice returns the text in the char range [start, end).
func (r Rope) Slice(start, end int) string {
	if start >= end {
		return ""
	}
	return r.sliceBytes(r.CharToByte(start), r.CharToByte(end))
}

// CharAt returns the character at the given index.
// Returns utf8.RuneError and false if the index is out of range.
func (r Rope) CharAt(char int) (rune, bool) {
	if char < 0 || char >= r.LenChars() {
		return utf8.RuneError, false
	}
	start := r.CharToByte(char)
	s := r.sliceBytes(start, start+utf8.UTFMax)
	c, _ := utf8.DecodeRuneInString(s)
	return c, true
}

// Insert inserts text at a byte offset.
func (r Rope) Insert(offset int, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.IsEmpty() {
		return FromString(text)
	}
	if offset <= 0 {
		return FromString(text).Concat(r)
	}
	if offset >= r.LenBytes() {
		return r.Concat(FromString(text))
	}
	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete removes the byte range [start, end).
func (r Rope) Delete(start, end int) Rope {
	size := r.LenBytes()
	start = max(start, 0)
	end = min(end, size)
	if start >= end {
		return r
	}
	if start == 0 && end == size {
		return New()
	}
	if start == 0 {
		_, right := r.Split(end)
		return right
	}
	if end == size {
		left, _ := r.Split(start)
		return left
	}

	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right)
}

// InsertChars inserts text at a char index.
func (r Rope) InsertChars(char int, text string) Rope {
	return r.Insert(r.CharToByte(char), text)
}

// RemoveChars removes the char range [start, end).
func (r Rope) RemoveChars(start, end int) Rope {
	if start >= end {
		return r
	}
	return r.Delete(r.CharToByte(start), r.CharToByte(end))
}

// ReplaceChars replaces the char range [start, end) with text.
func (r Rope) ReplaceChars(start, end int, text string) Rope {
	return r.RemoveChars(start, end).InsertChars(start, text)
}

// Split splits the rope at a byte offset.
// The left rope holds [0, offset) and the right rope the rest.
func (r Rope) Split(offset int) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return New(), r
	}
	if offset >= r.LenBytes() {
		return r, New()
	}
	left, right := r.root.split(offset)
	return Rope{root: left}, Rope{root: right}
}

// Concat concatenates two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.IsEmpty() {
		if other.root == nil {
			return New()
		}
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// Height returns the height of the tree.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// Equals reports whether two ropes hold the same text.
func (r Rope) Equals(other Rope) bool {
	if r.LenBytes() != other.LenBytes() {
		return false
	}

	a, b := r.Chunks(), other.Chunks()
	var sa, sb string
	for {
		if sa == "" {
			if !a.Next() {
				break
			}
			sa = a.Chunk().String()
		}
		if sb == "" {
			if !b.Next() {
				return false
			}
			sb = b.Chunk().String()
		}
		n := min(len(sa), len(sb))
		if sa[:n] != sb[:n] {
			return false
		}
		sa, sb = sa[n:], sb[n:]
	}
	return sb == "" && !b.Next()
}
