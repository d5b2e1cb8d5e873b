package rope

import (
	"io"
	"strings"
)

// Builder accumulates text and builds a rope in one pass.
type Builder struct {
	chunks   []Chunk
	buffer   strings.Builder
	totalLen int
}

// NewBuilder creates a new rope builder.
func NewBuilder() *Builder {
	return &Builder{chunks: make([]Chunk, 0, 64)}
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) (int, error) {
	if len(s) == 0 {
		return 0, nil
	}
	b.totalLen += len(s)
	b.buffer.WriteString(s)
	if b.buffer.Len() >= MaxChunkSize*2 {
		b.flush(false)
	}
	return len(s), nil
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	return b.WriteString(string(p))
}

// flush moves buffered text into chunks. Unless final, a trailing partial
// UTF-8 sequence stays buffered until more bytes arrive.
func (b *Builder) flush(final bool) {
	s := b.buffer.String()
	if len(s) == 0 {
		return
	}
	keep := 0
	if !final {
		keep = partialSuffix(s)
	}
	b.buffer.Reset()
	b.chunks = append(b.chunks, splitIntoChunks(s[:len(s)-keep])...)
	b.buffer.WriteString(s[len(s)-keep:])
}

// partialSuffix returns the length of an incomplete UTF-8 sequence at the
// end of s.
func partialSuffix(s string) int {
	for i := 1; i <= 3 && i <= len(s); i++ {
		c := s[len(s)-i]
		if !isUTF8Start(c) {
			continue
		}
		need := 1
		switch {
		case c&0xE0 == 0xC0:
			need = 2
		case c&0xF0 == 0xE0:
			need = 3
		case c&0xF8 == 0xF0:
			need = 4
		}
		if need > i {
			return i
		}
		return 0
	}
	return 0
}

// Len returns the total number of bytes written.
func (b *Builder) Len() int {
	return b.totalLen
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.chunks = b.chunks[:0]
	b.buffer.Reset()
	b.totalLen = 0
}

// Build creates the rope and resets the builder.
func (b *Builder) Build() Rope {
	b.flush(true)
	chunks := make([]Chunk, len(b.chunks))
	copy(chunks, b.chunks)
	b.Reset()
	return buildFromChunks(chunks)
}

// ReadFrom implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 64*1024)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.WriteString(string(buf[:n]))
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}
