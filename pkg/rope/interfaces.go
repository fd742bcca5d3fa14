package rope

import (
	"io"

	"github.com/textrope/textrope/pkg/pool"
)

// ========== Focused Interfaces for Rope (ISP Principle) ==========
//
// These interfaces break the Rope API into focused, composable pieces:
// read access, mutation, splitting, point conversion, and debugging are
// each their own interface. Consumers (a terminal UI, a syntax-tree
// bridge) can depend on only the capability they need instead of the
// concrete *Rope type.

// ReadOnlyDocument provides read-only access to document content.
type ReadOnlyDocument interface {
	Len() int
	LenLines() int
	String() string
	Bytes() []byte
}

// ByteAtAccessor provides byte-by-byte access.
type ByteAtAccessor interface {
	ByteAt(pos int) (byte, error)
}

// CharAtAccessor provides Unicode-scalar-value access.
type CharAtAccessor interface {
	CharAt(pos int) (rune, error)
	LenChars() int
}

// PointDocument converts between byte offsets and (line, column)
// points, the addressing scheme a cursor/viewport keeps on screen.
type PointDocument interface {
	PointToOffset(p Point) int
	OffsetToPoint(offset int) Point
	Line(line int) (start, end int, err error)
}

// MutableDocument provides document modification operations. Every
// method returns a new Rope rather than mutating the receiver.
type MutableDocument interface {
	Insert(a *pool.Allocator, at int, text []byte) (*Rope, error)
	Delete(start, end int) (*Rope, error)
	Append(other *Rope) *Rope
}

// SplittableDocument provides split and sub-range operations.
type SplittableDocument interface {
	Split(pos int) (*Rope, *Rope, error)
	Slice(start, end int) (*Rope, error)
}

// Validatable exposes the tree's internal balance invariant, useful for
// tests and for a debug-build assertion layer above the rope.
type Validatable interface {
	IsBalanced() bool
	Validate() error
}

// Dumpable writes a Graphviz rendering of the tree for debugging.
type Dumpable interface {
	WriteDOT(w io.Writer) error
}

// ========== Composite Interfaces ==========

// FullDocument combines every capability a *Rope offers.
type FullDocument interface {
	ReadOnlyDocument
	ByteAtAccessor
	CharAtAccessor
	PointDocument
	MutableDocument
	SplittableDocument
	Validatable
	Dumpable
}

// ReadOnly provides read-only capabilities including point conversion.
type ReadOnly interface {
	ReadOnlyDocument
	ByteAtAccessor
	CharAtAccessor
	PointDocument
}

// ========== Type Assertions ==========

var (
	_ ReadOnlyDocument   = (*Rope)(nil)
	_ ByteAtAccessor     = (*Rope)(nil)
	_ CharAtAccessor     = (*Rope)(nil)
	_ PointDocument      = (*Rope)(nil)
	_ MutableDocument    = (*Rope)(nil)
	_ SplittableDocument = (*Rope)(nil)
	_ Validatable        = (*Rope)(nil)
	_ Dumpable           = (*Rope)(nil)
	_ FullDocument       = (*Rope)(nil)
	_ ReadOnly           = (*Rope)(nil)
)
