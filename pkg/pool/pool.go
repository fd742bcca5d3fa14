// Package pool implements the fixed-size block allocator that backs the
// rope's leaves. Arenas are append-only: once a byte has been handed out
// in a BlockSlice, nothing ever overwrites it, so slices into a live
// arena are safe to share across readers without synchronization.
package pool

import (
	"io"
)

// BlockCapacity is the fixed size of a single arena in bytes. It is a
// compile-time constant rather than a configurable option: too small
// wastes node overhead walking many tiny leaves, too large wastes tail
// space in the last, partially-filled arena of every allocator.
const BlockCapacity = 4096

// arena is a fixed-size heap-allocated byte buffer. It is never resized
// and never mutated outside of Allocator.Append/ReadFrom appending past
// its own high-water mark. Arenas are kept alive purely by ordinary Go
// references held by outstanding BlockSlice values; once the last slice
// referencing an arena is collected, the arena is collected with it.
type arena struct {
	bytes [BlockCapacity]byte
	// written is the number of leading bytes that have been filled in.
	// It only ever grows, and only the allocator holding this arena as
	// its current arena ever advances it.
	written int
}

// BlockSlice is an immutable (arena, byte-range) view. Copying a
// BlockSlice is a cheap pointer-and-two-integers copy; narrowing it to a
// sub-range is O(1) and keeps pointing at the same arena.
type BlockSlice struct {
	block *arena
	start int
	end   int
}

// Len returns the number of bytes covered by the slice.
func (s BlockSlice) Len() int {
	return s.end - s.start
}

// IsEmpty reports whether the slice covers zero bytes.
func (s BlockSlice) IsEmpty() bool {
	return s.start == s.end
}

// Bytes returns the slice's bytes. The returned slice must not be
// mutated by callers: it aliases the arena directly.
func (s BlockSlice) Bytes() []byte {
	if s.block == nil {
		return nil
	}
	return s.block.bytes[s.start:s.end]
}

// Sub narrows the slice to [start, end) relative to the slice's own
// bounds. It panics if the requested range is not contained in the
// slice's range, which would indicate an invariant violation upstream.
func (s BlockSlice) Sub(start, end int) BlockSlice {
	if start < 0 || end > s.Len() || start > end {
		panic("pool: BlockSlice.Sub: range out of bounds")
	}
	return BlockSlice{block: s.block, start: s.start + start, end: s.start + end}
}

// Allocator hands out append-only BlockSlice values backed by a pool of
// fixed-capacity arenas. It is not safe for concurrent use from multiple
// goroutines: by convention each ingestion task owns its own Allocator.
type Allocator struct {
	current *arena
}

// NewAllocator returns an empty allocator with no current arena. The
// first Append/ReadFrom call allocates the first arena lazily.
func NewAllocator() *Allocator {
	return &Allocator{}
}

func (a *Allocator) ensureCurrent() {
	if a.current == nil || a.current.written >= BlockCapacity {
		a.current = &arena{}
	}
}

// Append copies min(len(p), remaining capacity) bytes from p into the
// current arena, advances the write head, and returns a BlockSlice
// covering exactly the freshly-written bytes plus the number of bytes
// written. A short write (written < len(p)) is not an error: the caller
// is expected to loop, re-calling Append with the unwritten remainder,
// which lands in a freshly-started arena.
func (a *Allocator) Append(p []byte) (BlockSlice, int) {
	a.ensureCurrent()
	block := a.current
	head := block.written
	n := copy(block.bytes[head:], p)
	block.written += n
	return BlockSlice{block: block, start: head, end: head + n}, n
}

// ReadFrom fills as much of the current arena's remaining capacity as
// possible from r in a single Read call, returning the slice covering
// what was read and the byte count. A zero-byte, nil-error result
// signals EOF to the caller, which should stop ingesting. This is the
// pool's one suspension point: callers that need cancellation wrap the
// io.Reader with one that observes a context, or check ctx.Err() around
// the call (see rope.Ingest).
func (a *Allocator) ReadFrom(r io.Reader) (BlockSlice, int, error) {
	a.ensureCurrent()
	block := a.current
	head := block.written
	n, err := r.Read(block.bytes[head:])
	block.written += n
	slice := BlockSlice{block: block, start: head, end: head + n}
	if err == io.EOF {
		return slice, n, nil
	}
	return slice, n, err
}
