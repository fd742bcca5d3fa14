package rope

import (
	"iter"
	"unicode/utf8"
)

// leaves walks the leaves covering [start, end) in order. It is
// the shared traversal every chunk/char/line iterator below drives;
// callers get an iter.Seq so they can `for range` directly and break
// early without walking the rest of the tree.
func (r *Rope) leaves(start, end int) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		if r.root == nil || start >= end {
			return
		}
		walkLeaves(r.root, 0, start, end, yield)
	}
}

// walkLeaves returns false if the caller's yield asked to stop, so an
// ancestor call can short-circuit without visiting further siblings.
func walkLeaves(n *node, base, start, end int, yield func([]byte) bool) bool {
	nodeEnd := base + n.Summary().Len
	if nodeEnd <= start || base >= end {
		return true
	}
	if n.IsLeaf() {
		b := n.Item().bytes.Bytes()
		lo, hi := 0, len(b)
		if start > base {
			lo = start - base
		}
		if end < nodeEnd {
			hi = end - base
		}
		if lo >= hi {
			return true
		}
		return yield(b[lo:hi])
	}
	leftLen := n.Left().Summary().Len
	if !walkLeaves(n.Left(), base, start, end, yield) {
		return false
	}
	return walkLeaves(n.Right(), base+leftLen, start, end, yield)
}

// Chunks iterates the raw leaf byte-ranges covering the whole rope, in
// order. Chunk boundaries are an implementation detail of how the rope
// is currently balanced: a chunk is not guaranteed to be rune-aligned,
// line-aligned, or stable across edits to the rope.
func (r *Rope) Chunks() iter.Seq[[]byte] {
	return r.leaves(0, r.Len())
}

// ChunkRange pairs a chunk with the byte range it occupies in the rope.
type ChunkRange struct {
	Bytes []byte
	Start int
	End   int
}

// ChunkAndRanges iterates chunks covering [start, end) together with
// their absolute byte ranges, mirroring cursor.rs's ChunkAndRanges.
func (r *Rope) ChunkAndRanges(start, end int) iter.Seq[ChunkRange] {
	return func(yield func(ChunkRange) bool) {
		if r.root == nil || start >= end {
			return
		}
		offset := start
		for chunk := range r.leaves(start, end) {
			cr := ChunkRange{Bytes: chunk, Start: offset, End: offset + len(chunk)}
			offset += len(chunk)
			if !yield(cr) {
				return
			}
		}
	}
}

// ChunkAt returns the part of the leaf chunk containing offset that
// starts at offset — the longest contiguous slice beginning there — and
// its absolute byte range, for callers — such as an incremental syntax
// highlighter — that want direct access to one piece of text without
// paying for a full chunk walk. It returns false if offset is at or
// past the end of the rope, since there is no chunk to return there.
func (r *Rope) ChunkAt(offset int) (ChunkRange, bool) {
	for cr := range r.ChunkAndRanges(offset, r.Len()) {
		return cr, true
	}
	return ChunkRange{}, false
}

// Chars iterates the rope's contents as Unicode scalar values (runes),
// over the whole rope; to iterate a sub-range, use CharAndRanges and
// discard the ranges. A rune whose UTF-8 encoding straddles a chunk
// boundary is buffered and decoded whole rather than split across two
// yields — chunk boundaries come from block-pool geometry, not from
// rune boundaries.
func (r *Rope) Chars() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for c := range r.CharAndRanges(0, r.Len()) {
			if !yield(c.Rune) {
				return
			}
		}
	}
}

// CharRange pairs a decoded rune with its absolute byte range.
type CharRange struct {
	Rune  rune
	Start int
	End   int
}

// CharAndRanges iterates runes covering [start, end) together with
// their absolute byte ranges. Invalid UTF-8 decodes as
// utf8.RuneError, one byte at a time, the same policy a for-range loop
// over a string uses.
func (r *Rope) CharAndRanges(start, end int) iter.Seq[CharRange] {
	return func(yield func(CharRange) bool) {
		var pending []byte
		pendingStart := start
		offset := start
		emit := func(b []byte, base int) bool {
			i := 0
			for i < len(b) {
				rn, size := utf8.DecodeRune(b[i:])
				cr := CharRange{Rune: rn, Start: base + i, End: base + i + size}
				if !yield(cr) {
					return false
				}
				i += size
			}
			return true
		}
		for chunk := range r.ChunkAndRanges(start, end) {
			buf := chunk.Bytes
			base := chunk.Start
			if len(pending) > 0 {
				buf = append(append([]byte(nil), pending...), buf...)
				base = pendingStart
				pending = nil
			}
			// Hold back a possibly-incomplete trailing rune unless this
			// is the final chunk in range.
			keep := 0
			if chunk.End < end {
				keep = incompleteTailLen(buf)
			}
			whole := buf[:len(buf)-keep]
			if !emit(whole, base) {
				return
			}
			offset = base + len(whole)
			if keep > 0 {
				pending = append([]byte(nil), buf[len(buf)-keep:]...)
				pendingStart = offset
			}
		}
		if len(pending) > 0 {
			emit(pending, pendingStart)
		}
	}
}

// incompleteTailLen returns how many trailing bytes of buf form a
// truncated UTF-8 sequence — a lead byte announcing more continuation
// bytes than buf has room for. It returns 0 when buf ends cleanly
// (including on plain ASCII or invalid-but-complete-length bytes).
func incompleteTailLen(buf []byte) int {
	limit := 4
	if limit > len(buf) {
		limit = len(buf)
	}
	for i := 1; i <= limit; i++ {
		b := buf[len(buf)-i]
		if b&0xC0 == 0x80 {
			continue // continuation byte, keep scanning backward
		}
		size := utf8.RuneLen(decodeLeadRune(b))
		if size < 0 {
			size = 1
		}
		if size > i {
			return i
		}
		return 0
	}
	return 0
}

// decodeLeadRune maps a lead byte to a placeholder rune in the right
// encoded-length class, purely so utf8.RuneLen can report how many
// bytes that class is supposed to occupy.
func decodeLeadRune(b byte) rune {
	switch {
	case b&0x80 == 0x00:
		return 0x0
	case b&0xE0 == 0xC0:
		return 0x80
	case b&0xF0 == 0xE0:
		return 0x800
	case b&0xF8 == 0xF0:
		return 0x10000
	default:
		return utf8.RuneError
	}
}

// Lines iterates the rope's lines as sub-ropes, in order. A line
// excludes its own terminating newline and, if present, the \r
// immediately preceding it (see Line). Lines always walks every line;
// callers that want a sub-range of lines can slice the rope to the
// offsets of the lines they want first, or call Line repeatedly.
func (r *Rope) Lines() iter.Seq[*Rope] {
	return func(yield func(*Rope) bool) {
		n := r.LenLines()
		for line := 0; line < n; line++ {
			start, end, err := r.Line(line)
			if err != nil {
				return
			}
			sl, err := r.Slice(start, end)
			if err != nil {
				return
			}
			if !yield(sl) {
				return
			}
		}
	}
}
