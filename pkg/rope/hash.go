package rope

import "hash/fnv"

// HashCode64 returns a content hash that depends only on the rope's
// bytes, not on how they happen to be chunked across pool blocks — two
// ropes built by inserting the same text in a different order of
// appends, landing in differently-sized leaves, hash equal as long as
// String() is equal. It feeds Chunks through the standard library's
// FNV-1a implementation, so it costs one pass over the rope's bytes and
// no extra allocation beyond the hasher itself.
func (r *Rope) HashCode64() uint64 {
	h := fnv.New64a()
	for chunk := range r.Chunks() {
		h.Write(chunk)
	}
	return h.Sum64()
}
