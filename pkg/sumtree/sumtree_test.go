package sumtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// intSum is the trivial Item/Summary pair used in the reference
// implementation's own sumtree tests (V(u32)/Sum(u32) in
// crates/sumtree/src/lib.rs): a leaf is just an int, and its summary is
// the sum of every leaf under it.
type intSum int

func (s intSum) Combine(rhs intSum) intSum { return s + rhs }

type intItem int

func (v intItem) Summary() intSum { return intSum(v) }

func leaf(v int) *Node[intItem, intSum] { return NewLeaf[intItem, intSum](intItem(v)) }

func buildBalanced(t *testing.T, values ...int) *Node[intItem, intSum] {
	t.Helper()
	var n *Node[intItem, intSum]
	for _, v := range values {
		if n == nil {
			n = leaf(v)
			continue
		}
		n = Join[intItem, intSum](n, leaf(v))
	}
	return n
}

func TestJoin_SumsAndBalances(t *testing.T) {
	n := buildBalanced(t, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	require.NotNil(t, n)
	assert.Equal(t, intSum(55), n.Summary())
	assert.True(t, n.IsBalanced())
}

func TestJoin_WithNilIsIdentity(t *testing.T) {
	n := leaf(42)
	assert.Same(t, n, Join[intItem, intSum](nil, n))
	assert.Same(t, n, Join[intItem, intSum](n, nil))
	assert.Nil(t, Join[intItem, intSum](nil, nil))
}

func TestJoin_LargeSequenceStaysBalanced(t *testing.T) {
	var values []int
	for i := 0; i < 500; i++ {
		values = append(values, i)
	}
	n := buildBalanced(t, values...)
	require.True(t, n.IsBalanced())
	sum := 0
	for _, v := range values {
		sum += v
	}
	assert.Equal(t, intSum(sum), n.Summary())
}

func length(s intSum) int { return int(s) }

func splitIntItem(v intItem, at int) (intItem, intItem) {
	// Splitting a single-int leaf only makes sense at 0 or its own
	// value; tests exercise split at leaf boundaries only.
	return intItem(at), intItem(int(v) - at)
}

func TestSplit_AtLeafBoundaryPreservesSums(t *testing.T) {
	n := buildBalanced(t, 1, 2, 3, 4, 5)
	left, right := Split[intItem, intSum](n, 3, length, splitIntItem)
	require.NotNil(t, left)
	require.NotNil(t, right)
	assert.Equal(t, intSum(3), left.Summary())
	assert.Equal(t, intSum(12), right.Summary())
	assert.True(t, left.IsBalanced())
	assert.True(t, right.IsBalanced())
}

func TestSplit_AtZeroYieldsNilLeft(t *testing.T) {
	n := buildBalanced(t, 1, 2, 3)
	left, right := Split[intItem, intSum](n, 0, length, splitIntItem)
	assert.Nil(t, left)
	require.NotNil(t, right)
	assert.Equal(t, intSum(6), right.Summary())
}

func TestSplit_AtEndYieldsNilRight(t *testing.T) {
	n := buildBalanced(t, 1, 2, 3)
	left, right := Split[intItem, intSum](n, 6, length, splitIntItem)
	require.NotNil(t, left)
	assert.Nil(t, right)
	assert.Equal(t, intSum(6), left.Summary())
}

func TestSplitThenJoin_RoundTrips(t *testing.T) {
	n := buildBalanced(t, 1, 2, 3, 4, 5, 6, 7)
	left, right := Split[intItem, intSum](n, 10, length, splitIntItem)
	joined := Join[intItem, intSum](left, right)
	assert.Equal(t, n.Summary(), joined.Summary())
	assert.True(t, joined.IsBalanced())
}

func TestIsLeaf_ItemAndBranchAccessorsPanicAcrossKinds(t *testing.T) {
	l := leaf(1)
	assert.True(t, l.IsLeaf())
	assert.Panics(t, func() { l.Left() })
	assert.Panics(t, func() { l.Right() })

	b := Join[intItem, intSum](leaf(1), leaf(2))
	assert.False(t, b.IsLeaf())
	assert.Panics(t, func() { b.Item() })
}

func TestValidate_ReportsErrorOnHandBuiltViolation(t *testing.T) {
	// Hand-build a red-red violation: two adjacent red branches.
	a, c := leaf(1), leaf(2)
	redChild := &Node[intItem, intSum]{colour: Red, left: a, right: c, summary: a.summary.Combine(c.summary)}
	e := leaf(3)
	broken := &Node[intItem, intSum]{colour: Red, left: redChild, right: e, summary: redChild.summary.Combine(e.summary)}

	assert.False(t, broken.IsBalanced())
	assert.Error(t, broken.Validate())
}
