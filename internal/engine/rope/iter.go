package rope

type chunkIterFrame struct {
	node     *Node
	childIdx int
	chunkIdx int
	offset   int
}

// ChunkIterator walks the chunks of a rope in order.
type ChunkIterator struct {
	rope       Rope
	stack      []chunkIterFrame
	started    bool
	chunk      Chunk
	chunkStart int
}

// Chunks returns an iterator over all chunks in the rope.
func (r Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{
		rope:  r,
		stack: make([]chunkIterFrame, 0, 16),
	}
}

// Next advances to the next chunk and reports whether one exists.
func (it *ChunkIterator) Next() bool {
	if !it.started {
		it.started = true
		if it.rope.root == nil {
			return false
		}
		it.stack = append(it.stack, chunkIterFrame{node: it.rope.root})
		return it.findNextChunk()
	}

	if len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		if frame.node.IsLeaf() {
			frame.offset += frame.node.chunks[frame.chunkIdx].Len()
			frame.chunkIdx++
		}
	}
	return it.findNextChunk()
}

func (it *ChunkIterator) findNextChunk() bool {
	for len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		node := frame.node

		if node.IsLeaf() {
			if frame.chunkIdx < len(node.chunks) {
				it.chunk = node.chunks[frame.chunkIdx]
				it.chunkStart = frame.offset
				if it.chunk.IsEmpty() {
					frame.chunkIdx++
					continue
				}
				return true
			}
			it.pop()
			continue
		}

		if frame.childIdx < len(node.children) {
			child := node.children[frame.childIdx]
			it.stack = append(it.stack, chunkIterFrame{node: child, offset: frame.offset})
			continue
		}
		it.pop()
	}
	return false
}

// pop leaves the current node and advances its parent past it.
func (it *ChunkIterator) pop() {
	done := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]
	if len(it.stack) > 0 {
		parent := &it.stack[len(it.stack)-1]
		parent.offset += done.node.Len()
		parent.childIdx++
	}
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// Offset returns the byte offset of the start of the current chunk.
func (it *ChunkIterator) Offset() int {
	return it.chunkStart
}
