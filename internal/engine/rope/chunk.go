package rope

// Chunk size bounds in bytes.
const (
	// MinChunkSize is the minimum bytes per chunk (except for the last chunk).
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk is an immutable run of text stored in a leaf node.
type Chunk struct {
	data    string
	summary TextSummary
}

// NewChunk creates a chunk from a string.
func NewChunk(s string) Chunk {
	return Chunk{data: s, summary: ComputeSummary(s)}
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.data
}

// Summary returns the chunk's precomputed metrics.
func (c Chunk) Summary() TextSummary {
	return c.summary
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.data)
}

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// Split splits a chunk at a byte offset that lies on a UTF-8 boundary.
func (c Chunk) Split(offset int) (Chunk, Chunk) {
	if offset <= 0 {
		return Chunk{}, c
	}
	if offset >= len(c.data) {
		return c, Chunk{}
	}
	return NewChunk(c.data[:offset]), NewChunk(c.data[offset:])
}

// byteOfChar converts a char index inside the chunk to a byte offset.
func (c Chunk) byteOfChar(char int) int {
	return charToByteInString(c.data, char, c.summary.Flags&FlagASCII != 0)
}

// splitIntoChunks splits a string into chunks of appropriate size.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []Chunk{NewChunk(s)}
	}

	chunks := make([]Chunk, 0, len(s)/TargetChunkSize+1)
	remaining := s
	for len(remaining) > MaxChunkSize {
		at := findUTF8Boundary(remaining, TargetChunkSize)
		chunks = append(chunks, NewChunk(remaining[:at]))
		remaining = remaining[at:]
	}
	if len(remaining) > 0 {
		chunks = append(chunks, NewChunk(remaining))
	}
	return chunks
}

// findUTF8Boundary finds a split point near target, preferring the byte
// after a newline and never splitting a multi-byte sequence.
func findUTF8Boundary(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}
	if target <= 0 {
		return 0
	}

	lo := max(target-MinChunkSize/4, 1)
	hi := min(target+MinChunkSize/4, len(s))
	for i := target; i < hi; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= lo; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	pos := target
	for pos > 0 && !isUTF8Start(s[pos]) {
		pos--
	}
	if pos == 0 {
		pos = target
		for pos < len(s) && !isUTF8Start(s[pos]) {
			pos++
		}
	}
	return pos
}

// isUTF8Start returns true if the byte starts a UTF-8 sequence.
func isUTF8Start(b byte) bool {
	return b&0xC0 != 0x80
}
