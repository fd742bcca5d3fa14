package rope

import (
	"github.com/textrope/textrope/pkg/pool"
	"github.com/textrope/textrope/pkg/sumtree"
)

// Point addresses a location by (zero-based line, zero-based column in
// bytes from the start of that line).
type Point struct {
	Line   int
	Column int
}

// add combines two points the way two consecutive runs of text combine:
// if rhs starts a new line (rhs.Line > 0), its column stands on its own;
// otherwise rhs's column extends the line lhs ended on.
func (lhs Point) add(rhs Point) Point {
	if rhs.Line > 0 {
		return Point{Line: lhs.Line + rhs.Line, Column: rhs.Column}
	}
	return Point{Line: lhs.Line, Column: lhs.Column + rhs.Column}
}

// Stats are the plain (non-prefix-aware) statistics of a run of bytes:
// its length, how many lines it spans, and the width of its first and
// last lines. Lines.Column is the width of the last line. A run with no
// newline has Lines == Point{0, Len} and LenFirstLine == LenLastLine ==
// Len.
type Stats struct {
	Len          int
	Lines        Point
	LenFirstLine int
	LenLastLine  int
}

func statsOf(b []byte) Stats {
	s := Stats{Len: len(b)}
	first := true
	lineStart := 0
	for i, c := range b {
		if c != '\n' {
			continue
		}
		lineLen := i - lineStart
		if first {
			s.LenFirstLine = lineLen
			first = false
		}
		s.Lines.Line++
		lineStart = i + 1
	}
	tail := len(b) - lineStart
	if first {
		// No newline at all: first line == last line == whole run.
		s.LenFirstLine = tail
	}
	s.Lines.Column = tail
	s.LenLastLine = tail
	return s
}

// Metrics is the monoidal Summary combined bottom-up over the tree: the
// Stats of the subtree a branch's summary folds together.
type Metrics struct {
	Stats
}

// Combine implements sumtree.Summary. Concatenating two runs of text:
// total length adds, line counts add, and first-line width only
// survives from lhs if lhs itself has no internal newline (otherwise
// the combined run's first line ends at lhs's first newline); lastline
// dual.
func (lhs Metrics) Combine(rhs Metrics) Metrics {
	out := Metrics{Stats{
		Len:   lhs.Len + rhs.Len,
		Lines: lhs.Lines.add(rhs.Lines),
	}}
	if lhs.Lines.Line == 0 {
		out.LenFirstLine = lhs.LenFirstLine + rhs.LenFirstLine
	} else {
		out.LenFirstLine = lhs.LenFirstLine
	}
	if rhs.Lines.Line == 0 {
		out.LenLastLine = rhs.LenLastLine + lhs.LenLastLine
	} else {
		out.LenLastLine = rhs.LenLastLine
	}
	return out
}

var _ sumtree.Summary[Metrics] = Metrics{}

// slab is the Item stored at every leaf: a block-pool byte range plus
// its own cached Metrics, mirroring original_source's impl Item for
// Slab (crates/rope/src/lib.rs).
type slab struct {
	bytes pool.BlockSlice
}

func (s slab) Summary() Metrics {
	return Metrics{statsOf(s.bytes.Bytes())}
}

var _ sumtree.Item[Metrics] = slab{}

func (s slab) split(at int) (slab, slab) {
	return slab{s.bytes.Sub(0, at)}, slab{s.bytes.Sub(at, s.bytes.Len())}
}

// byteLength extracts the byte length carried in a cached summary — the
// O(1) length() extractor sumtree.Split needs to descend without
// re-walking leaves.
func byteLength(m Metrics) int {
	return m.Len
}

func splitSlab(s slab, at int) (slab, slab) {
	return s.split(at)
}
