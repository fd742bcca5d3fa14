package rope

// CharAt returns the Unicode scalar value starting at byte offset pos.
// pos must land on a rune boundary; passing the start of a continuation
// byte yields utf8.RuneError the same way a raw string index would. To
// look up a character by (line, column) instead, convert with
// PointToOffset first: r.CharAt(r.PointToOffset(p)).
func (r *Rope) CharAt(pos int) (rune, error) {
	if pos < 0 || pos >= r.Len() {
		return 0, errCharOutOfBounds(pos, r.Len())
	}
	for c := range r.CharAndRanges(pos, r.Len()) {
		return c.Rune, nil
	}
	return 0, errCharOutOfBounds(pos, r.Len())
}

// LenChars counts the rope's Unicode scalar values by walking it once.
// There is no cheaper way: unlike byte length, character count is not
// carried in Metrics, which summarizes byte-oriented statistics only,
// so this is O(n).
func (r *Rope) LenChars() int {
	n := 0
	for range r.Chars() {
		n++
	}
	return n
}
