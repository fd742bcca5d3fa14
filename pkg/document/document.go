// Package document provides the Document interface: the narrow,
// byte-offset-addressed read surface the out-of-scope application
// layers described in the buffer's external interfaces — a terminal
// UI, a syntax-tree bridge — are expected to depend on instead of the
// concrete rope type. No other package in this module depends on it;
// it exists purely as the seam those collaborators plug into.
package document

// Document represents an immutable text buffer addressed by byte
// offset. All operations that would modify the document instead return
// a new Document, leaving the receiver untouched.
type Document interface {
	// Len returns the number of bytes in the document.
	Len() int

	// Slice returns the substring covering the byte range [start, end).
	// It returns an error if the range is invalid.
	Slice(start, end int) (string, error)

	// String returns the complete document content as a string.
	String() string

	// Bytes returns the complete document content as a byte slice.
	Bytes() []byte
}
