package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textrope/textrope/pkg/pool"
	"github.com/textrope/textrope/pkg/rope"
)

func TestFromRope_ImplementsDocument(t *testing.T) {
	a := pool.NewAllocator()
	r := rope.NewFromBytes(a, []byte("hello world"))
	d := FromRope(r)

	assert.Equal(t, 11, d.Len())
	assert.Equal(t, "hello world", d.String())
	assert.Equal(t, []byte("hello world"), d.Bytes())

	s, err := d.Slice(6, 11)
	require.NoError(t, err)
	assert.Equal(t, "world", s)
}

func TestFromRope_SliceOutOfBounds(t *testing.T) {
	a := pool.NewAllocator()
	r := rope.NewFromBytes(a, []byte("hi"))
	d := FromRope(r)

	_, err := d.Slice(0, 10)
	assert.Error(t, err)
}
