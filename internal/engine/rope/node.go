package rope

import (
	"strings"
	"unicode/utf8"
)

// Tree shape bounds.
const (
	// MaxChildren is the maximum children per internal node.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node is a node of the rope B+ tree.
// Leaves (height == 0) hold chunks; internal nodes hold children.
type Node struct {
	height  uint8
	summary TextSummary

	children       []*Node
	childSummaries []TextSummary

	chunks []Chunk
}

func newLeafNode() *Node {
	return &Node{chunks: make([]Chunk, 0, MaxChunksPerLeaf)}
}

func newLeafNodeWithChunks(chunks []Chunk) *Node {
	n := &Node{chunks: chunks}
	n.recomputeSummary()
	return n
}

func newInternalNode(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}

	summaries := make([]TextSummary, len(children))
	var total TextSummary
	for i, child := range children {
		summaries[i] = child.summary
		total = total.Add(child.summary)
	}

	return &Node{
		height:         children[0].height + 1,
		summary:        total,
		children:       children,
		childSummaries: summaries,
	}
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// Len returns the byte length of text in this subtree.
func (n *Node) Len() int {
	return n.summary.Bytes
}

func (n *Node) recomputeSummary() {
	n.summary = TextSummary{Flags: FlagASCII}
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			n.summary = n.summary.Add(chunk.Summary())
		}
		return
	}
	n.childSummaries = make([]TextSummary, len(n.children))
	for i, child := range n.children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
}

func (n *Node) clone() *Node {
	if n.IsLeaf() {
		chunks := make([]Chunk, len(n.chunks))
		copy(chunks, n.chunks)
		return &Node{summary: n.summary, chunks: chunks}
	}

	children := make([]*Node, len(n.children))
	copy(children, n.children)
	summaries := make([]TextSummary, len(n.childSummaries))
	copy(summaries, n.childSummaries)
	return &Node{
		height:         n.height,
		summary:        n.summary,
		children:       children,
		childSummaries: summaries,
	}
}

func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			sb.WriteString(chunk.String())
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// appendRange appends the text in the byte range [start, end).
func (n *Node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}

	if n.IsLeaf() {
		offset := 0
		for _, chunk := range n.chunks {
			chunkEnd := offset + chunk.Len()
			if chunkEnd <= start {
				offset = chunkEnd
				continue
			}
			if offset >= end {
				break
			}
			lo := max(start-offset, 0)
			hi := min(end-offset, chunk.Len())
			sb.WriteString(chunk.String()[lo:hi])
			offset = chunkEnd
		}
		return
	}

	offset := 0
	for i, child := range n.children {
		childEnd := offset + n.childSummaries[i].Bytes
		if childEnd <= start {
			offset = childEnd
			continue
		}
		if offset >= end {
			break
		}
		child.appendRange(sb, max(start-offset, 0), min(end, childEnd)-offset)
		offset = childEnd
	}
}

// byteOfChar returns the byte offset of the given char index.
func (n *Node) byteOfChar(char int) int {
	if char >= n.summary.Chars {
		return n.summary.Bytes
	}

	bytes := 0
	node := n
	for !node.IsLeaf() {
		i := 0
		for ; i < len(node.children)-1; i++ {
			cs := node.childSummaries[i]
			if char < cs.Chars {
				break
			}
			char -= cs.Chars
			bytes += cs.Bytes
		}
		node = node.children[i]
	}

	for _, chunk := range node.chunks {
		cs := chunk.Summary()
		if char < cs.Chars {
			return bytes + chunk.byteOfChar(char)
		}
		char -= cs.Chars
		bytes += cs.Bytes
	}
	return bytes
}

// charOfByte returns the char index of the given byte offset. Offsets inside
// a multi-byte sequence count the partial character.
func (n *Node) charOfByte(offset int) int {
	if offset >= n.summary.Bytes {
		return n.summary.Chars
	}

	chars := 0
	node := n
	for !node.IsLeaf() {
		i := 0
		for ; i < len(node.children)-1; i++ {
			cs := node.childSummaries[i]
			if offset < cs.Bytes {
				break
			}
			offset -= cs.Bytes
			chars += cs.Chars
		}
		node = node.children[i]
	}

	for _, chunk := range node.chunks {
		cs := chunk.Summary()
		if offset < cs.Bytes {
			if cs.Flags&FlagASCII != 0 {
				return chars + offset
			}
			return chars + utf8.RuneCountInString(chunk.String()[:offset])
		}
		offset -= cs.Bytes
		chars += cs.Chars
	}
	return chars
}

// lineOfChar returns the number of newlines before the given char index.
func (n *Node) lineOfChar(char int) int {
	if char >= n.summary.Chars {
		return n.summary.Lines
	}

	lines := 0
	node := n
	for !node.IsLeaf() {
		i := 0
		for ; i < len(node.children)-1; i++ {
			cs := node.childSummaries[i]
			if char < cs.Chars {
				break
			}
			char -= cs.Chars
			lines += cs.Lines
		}
		node = node.children[i]
	}

	for _, chunk := range node.chunks {
		cs := chunk.Summary()
		if char < cs.Chars {
			return lines + countNewlines(chunk.String()[:chunk.byteOfChar(char)])
		}
		char -= cs.Chars
		lines += cs.Lines
	}
	return lines
}

// lineStart returns the byte and char offsets just past the nth newline
// (n >= 1). Values past the last newline clamp to the end of the subtree.
func (n *Node) lineStart(line int) (int, int) {
	if line <= 0 {
		return 0, 0
	}
	if line > n.summary.Lines {
		return n.summary.Bytes, n.summary.Chars
	}

	bytes, chars := 0, 0
	node := n
	for !node.IsLeaf() {
		i := 0
		for ; i < len(node.children)-1; i++ {
			cs := node.childSummaries[i]
			if line <= cs.Lines {
				break
			}
			line -= cs.Lines
			bytes += cs.Bytes
			chars += cs.Chars
		}
		node = node.children[i]
	}

	for _, chunk := range node.chunks {
		cs := chunk.Summary()
		if line <= cs.Lines {
			b, c, _ := nthNewline(chunk.String(), line)
			return bytes + b, chars + c
		}
		line -= cs.Lines
		bytes += cs.Bytes
		chars += cs.Chars
	}
	return bytes, chars
}

// split splits the node at a byte offset: left holds [0, offset).
func (n *Node) split(offset int) (*Node, *Node) {
	if offset <= 0 {
		return newLeafNode(), n.clone()
	}
	if offset >= n.Len() {
		return n.clone(), newLeafNode()
	}
	if n.IsLeaf() {
		return n.splitLeaf(offset)
	}
	return n.splitInternal(offset)
}

func (n *Node) splitLeaf(offset int) (*Node, *Node) {
	var leftChunks, rightChunks []Chunk
	current := 0

	for _, chunk := range n.chunks {
		switch {
		case current+chunk.Len() <= offset:
			leftChunks = append(leftChunks, chunk)
		case current >= offset:
			rightChunks = append(rightChunks, chunk)
		default:
			left, right := chunk.Split(offset - current)
			if !left.IsEmpty() {
				leftChunks = append(leftChunks, left)
			}
			if !right.IsEmpty() {
				rightChunks = append(rightChunks, right)
			}
		}
		current += chunk.Len()
	}

	return newLeafNodeWithChunks(leftChunks), newLeafNodeWithChunks(rightChunks)
}

func (n *Node) splitInternal(offset int) (*Node, *Node) {
	var leftChildren, rightChildren []*Node
	current := 0

	for i, child := range n.children {
		childLen := n.childSummaries[i].Bytes
		switch {
		case current+childLen <= offset:
			leftChildren = append(leftChildren, child)
		case current >= offset:
			rightChildren = append(rightChildren, child)
		default:
			left, right := child.split(offset - current)
			if left.Len() > 0 {
				leftChildren = append(leftChildren, left)
			}
			if right.Len() > 0 {
				rightChildren = append(rightChildren, right)
			}
		}
		current += childLen
	}

	return buildNodeFromChildren(leftChildren), buildNodeFromChildren(rightChildren)
}

// buildNodeFromChildren creates a balanced tree over nodes of mixed height.
func buildNodeFromChildren(children []*Node) *Node {
	switch len(children) {
	case 0:
		return newLeafNode()
	case 1:
		return children[0]
	}

	// Children of an internal node must share a height.
	height := children[0].height
	for _, c := range children[1:] {
		height = max(height, c.height)
	}
	for i, c := range children {
		for c.height < height {
			c = newInternalNode([]*Node{c})
		}
		children[i] = c
	}

	if len(children) <= MaxChildren {
		return newInternalNode(children)
	}

	var parents []*Node
	for i := 0; i < len(children); i += MaxChildren {
		end := min(i+MaxChildren, len(children))
		group := make([]*Node, end-i)
		copy(group, children[i:end])
		parents = append(parents, newInternalNode(group))
	}
	return buildNodeFromChildren(parents)
}

// concat joins two nodes.
func concat(left, right *Node) *Node {
	if left == nil || left.Len() == 0 {
		if right == nil {
			return newLeafNode()
		}
		return right
	}
	if right == nil || right.Len() == 0 {
		return left
	}

	if left.IsLeaf() && right.IsLeaf() {
		return concatLeaves(left, right)
	}

	for left.height < right.height {
		left = newInternalNode([]*Node{left})
	}
	for right.height < left.height {
		right = newInternalNode([]*Node{right})
	}
	return mergeNodes(left, right)
}

func concatLeaves(left, right *Node) *Node {
	total := len(left.chunks) + len(right.chunks)
	if total <= MaxChunksPerLeaf {
		chunks := make([]Chunk, 0, total)
		chunks = append(chunks, left.chunks...)
		chunks = append(chunks, right.chunks...)
		return newLeafNodeWithChunks(chunks)
	}
	return newInternalNode([]*Node{left.clone(), right.clone()})
}

func mergeNodes(left, right *Node) *Node {
	if left.IsLeaf() {
		return concatLeaves(left, right)
	}

	all := make([]*Node, 0, len(left.children)+len(right.children))
	all = append(all, left.children...)
	all = append(all, right.children...)
	return buildNodeFromChildren(all)
}
