// Package rope implements a persistent, structurally-shared text buffer
// over a pool of fixed-size byte blocks. A Rope is immutable: every
// edit returns a new Rope sharing every untouched subtree with its
// parent, backed by an augmented red-black tree (pkg/sumtree).
package rope

import (
	"github.com/textrope/textrope/pkg/pool"
	"github.com/textrope/textrope/pkg/sumtree"
)

type node = sumtree.Node[slab, Metrics]

// Rope is an immutable sequence of bytes backed by a balanced tree of
// pool.BlockSlice leaves. The zero value and a Rope built from nil are
// both valid empty ropes.
type Rope struct {
	root *node
}

// Empty returns the empty rope.
func Empty() *Rope {
	return &Rope{}
}

// NewFromBytes builds a rope out of a single in-memory byte slice,
// copying it into freshly-allocated pool blocks via a, so the returned
// rope does not alias the caller's slice.
func NewFromBytes(a *pool.Allocator, b []byte) *Rope {
	r := Empty()
	for len(b) > 0 {
		s, n := a.Append(b)
		r = r.appendSlab(s)
		b = b[n:]
	}
	return r
}

func (r *Rope) appendSlab(s pool.BlockSlice) *Rope {
	if s.IsEmpty() {
		return r
	}
	leaf := sumtree.NewLeaf[slab, Metrics](slab{s})
	if r.root == nil {
		return &Rope{root: leaf}
	}
	return &Rope{root: sumtree.Join[slab, Metrics](r.root, leaf)}
}

// Len returns the total length in bytes.
func (r *Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.Summary().Len
}

// IsEmpty reports whether the rope has zero bytes.
func (r *Rope) IsEmpty() bool {
	return r.Len() == 0
}

// LenLines returns the number of lines, counting a trailing unterminated
// run as one more line than the newline count (a rope "a\nb" has 2
// lines; "a\n" has 2 lines, the second being empty; "" has 1 line).
func (r *Rope) LenLines() int {
	if r.root == nil {
		return 1
	}
	return r.root.Summary().Lines.Line + 1
}

// Bytes returns the rope's full contents as a single contiguous slice.
// It always allocates: unlike Chunks, it does not preserve the
// structural sharing a Rope otherwise offers.
func (r *Rope) Bytes() []byte {
	out := make([]byte, 0, r.Len())
	for chunk := range r.Chunks() {
		out = append(out, chunk...)
	}
	return out
}

// String returns the rope's contents as a string.
func (r *Rope) String() string {
	return string(r.Bytes())
}

// Insert returns a new rope with text inserted at byte offset at.
func (r *Rope) Insert(a *pool.Allocator, at int, text []byte) (*Rope, error) {
	if at < 0 || at > r.Len() {
		return nil, errInsertOutOfBounds(at, r.Len())
	}
	left, right := r.splitNode(at)
	middle := NewFromBytes(a, text)
	return left.append(middle).append(right), nil
}

// Append returns a new rope with other's contents concatenated after
// r's. Both r and other remain valid and unmodified.
func (r *Rope) Append(other *Rope) *Rope {
	return r.append(other)
}

func (r *Rope) append(other *Rope) *Rope {
	switch {
	case r.root == nil:
		return other
	case other.root == nil:
		return r
	default:
		return &Rope{root: sumtree.Join[slab, Metrics](r.root, other.root)}
	}
}

// Delete returns a new rope with the byte range [start, end) removed.
func (r *Rope) Delete(start, end int) (*Rope, error) {
	if start < 0 || end > r.Len() || start > end {
		return nil, errDeleteOutOfBounds(start, end, r.Len())
	}
	left, rest := r.splitNode(start)
	_, right := rest.splitNode(end - start)
	return left.append(right), nil
}

// Split returns the two ropes obtained by cutting r at byte offset at.
func (r *Rope) Split(at int) (*Rope, *Rope, error) {
	if at < 0 || at > r.Len() {
		return nil, nil, errSplitOutOfBounds(at, r.Len())
	}
	left, right := r.splitNode(at)
	return left, right, nil
}

func (r *Rope) splitNode(at int) (*Rope, *Rope) {
	if r.root == nil {
		return Empty(), Empty()
	}
	l, rr := sumtree.Split[slab, Metrics](r.root, at, byteLength, splitSlab)
	return &Rope{root: l}, &Rope{root: rr}
}

// Slice returns the byte range [start, end) as a new rope, sharing
// structure with r rather than copying bytes.
func (r *Rope) Slice(start, end int) (*Rope, error) {
	if start < 0 || end > r.Len() || start > end {
		return nil, errSliceOutOfBounds(start, end, r.Len())
	}
	_, rest := r.splitNode(start)
	mid, _ := rest.splitNode(end - start)
	return mid, nil
}

// PointToOffset converts a (line, column) point to a byte offset. A
// column past the end of its line clamps to the line's length; a line
// past the end of the rope clamps to Len().
func (r *Rope) PointToOffset(p Point) int {
	if r.root == nil {
		return 0
	}
	return pointToOffset(r.root, p)
}

func pointToOffset(n *node, p Point) int {
	if n.IsLeaf() {
		b := n.Item().bytes.Bytes()
		offset := 0
		line := 0
		for i, c := range b {
			if line == p.Line {
				break
			}
			if c == '\n' {
				line++
				offset = i + 1
			}
		}
		if line < p.Line {
			return len(b)
		}
		col := offset + p.Column
		if col > len(b) {
			col = len(b)
		}
		// Do not cross past the next newline into the following line.
		if nl := indexByteFrom(b, offset, '\n'); nl >= 0 && col > nl {
			col = nl
		}
		return col
	}
	left := n.Left().Summary()
	leftLines := left.Lines.Line
	if p.Line < leftLines {
		return pointToOffset(n.Left(), p)
	}
	if p.Line == leftLines {
		// The line starts on the left subtree's last line (possibly at its
		// very end) and may continue into the right subtree.
		if p.Column <= left.Lines.Column {
			return left.Len - left.Lines.Column + p.Column
		}
		return left.Len + pointToOffset(n.Right(), Point{Column: p.Column - left.Lines.Column})
	}
	return left.Len + pointToOffset(n.Right(), Point{Line: p.Line - leftLines, Column: p.Column})
}

func indexByteFrom(b []byte, from int, c byte) int {
	for i := from; i < len(b); i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}

// OffsetToPoint converts a byte offset to its (line, column) point.
func (r *Rope) OffsetToPoint(offset int) Point {
	if r.root == nil {
		return Point{}
	}
	return offsetToPoint(r.root, offset)
}

func offsetToPoint(n *node, offset int) Point {
	if n.IsLeaf() {
		b := n.Item().bytes.Bytes()
		if offset > len(b) {
			offset = len(b)
		}
		line := 0
		lineStart := 0
		for i := 0; i < offset; i++ {
			if b[i] == '\n' {
				line++
				lineStart = i + 1
			}
		}
		return Point{Line: line, Column: offset - lineStart}
	}
	leftLen := n.Left().Summary().Len
	if offset <= leftLen {
		return offsetToPoint(n.Left(), offset)
	}
	rhs := offsetToPoint(n.Right(), offset-leftLen)
	return n.Left().Summary().Lines.add(rhs)
}

// Line returns the offset range [start, end) of the given zero-based
// line. end excludes the line's own terminating newline and, if present,
// the \r immediately preceding it.
func (r *Rope) Line(line int) (start, end int, err error) {
	if line < 0 || line >= r.LenLines() {
		return 0, 0, errLineOutOfBounds(line, r.LenLines())
	}
	start = r.PointToOffset(Point{Line: line})
	if line+1 < r.LenLines() {
		end = r.PointToOffset(Point{Line: line + 1}) - 1
		if end < start {
			end = start
		}
		end = trimTrailingCR(r, start, end)
	} else {
		end = r.Len()
	}
	return start, end, nil
}

// trimTrailingCR shrinks end by one more byte if the byte immediately
// before it is \r, so a "\r\n"-terminated line excludes both bytes of
// its terminator rather than just the \n.
func trimTrailingCR(r *Rope, start, end int) int {
	if end <= start {
		return end
	}
	b, err := r.ByteAt(end - 1)
	if err == nil && b == '\r' {
		return end - 1
	}
	return end
}

// ByteAt returns the byte at offset pos.
func (r *Rope) ByteAt(pos int) (byte, error) {
	if pos < 0 || pos >= r.Len() {
		return 0, errByteOutOfBounds(pos, r.Len())
	}
	n := r.root
	for !n.IsLeaf() {
		leftLen := n.Left().Summary().Len
		if pos < leftLen {
			n = n.Left()
		} else {
			pos -= leftLen
			n = n.Right()
		}
	}
	return n.Item().bytes.Bytes()[pos], nil
}

// IsBalanced reports whether every red-black invariant holds.
func (r *Rope) IsBalanced() bool {
	if r.root == nil {
		return true
	}
	return r.root.IsBalanced()
}

// Validate is IsBalanced's error-returning counterpart.
func (r *Rope) Validate() error {
	if r.root == nil {
		return nil
	}
	return r.root.Validate()
}
