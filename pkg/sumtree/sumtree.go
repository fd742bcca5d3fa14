// Package sumtree implements a generic, persistent, augmented red-black
// tree: a balanced binary tree whose leaves hold an Item and whose
// branches carry a Summary folded over their subtree via a monoidal
// Combine. It is the generic engine the rope package specializes with
// BlockSlice leaves and Metrics summaries.
//
// Every public operation returns a new root node; no node reachable from
// an existing root is ever mutated after construction. An edit clones
// only the O(log n) nodes on the path from the root to the edit site —
// every sibling subtree is reused by sharing the existing pointer.
package sumtree

import "fmt"

// Summary is a monoid over subtree statistics. Combine must be
// associative: combine(combine(a, b), c) == combine(a, combine(b, c)).
// The zero value of S must act as the identity element.
type Summary[S any] interface {
	Combine(rhs S) S
}

// Item is a leaf payload that knows how to summarize itself.
type Item[S Summary[S]] interface {
	Summary() S
}

// Colour is a red-black node colour.
type Colour int

const (
	Red Colour = iota
	Black
)

func (c Colour) blackHeight() int {
	if c == Black {
		return 1
	}
	return 0
}

func (c Colour) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Node is either a Branch or a Leaf. Leaf fields are meaningful only
// when IsLeaf is true, and vice versa, mirroring the tagged-union shape
// of the reference implementation's Rust enum.
type Node[T Item[S], S Summary[S]] struct {
	isLeaf bool

	// Branch fields.
	colour Colour
	left   *Node[T, S]
	right  *Node[T, S]

	// Leaf field.
	item T

	summary S
}

// NewLeaf builds a leaf node summarizing item.
func NewLeaf[T Item[S], S Summary[S]](item T) *Node[T, S] {
	return &Node[T, S]{isLeaf: true, item: item, summary: item.Summary()}
}

// NewBranch builds a branch node, folding left and right's summaries
// via Combine.
func NewBranch[T Item[S], S Summary[S]](colour Colour, left, right *Node[T, S]) *Node[T, S] {
	return &Node[T, S]{
		colour:  colour,
		left:    left,
		right:   right,
		summary: left.summary.Combine(right.summary),
	}
}

// IsLeaf reports whether n is a leaf node.
func (n *Node[T, S]) IsLeaf() bool {
	return n.isLeaf
}

// Item returns the leaf's item. It panics if n is a branch.
func (n *Node[T, S]) Item() T {
	if !n.isLeaf {
		panic("sumtree: Item called on a branch node")
	}
	return n.item
}

// Left returns the branch's left child. It panics if n is a leaf.
func (n *Node[T, S]) Left() *Node[T, S] {
	if n.isLeaf {
		panic("sumtree: Left called on a leaf node")
	}
	return n.left
}

// Right returns the branch's right child. It panics if n is a leaf.
func (n *Node[T, S]) Right() *Node[T, S] {
	if n.isLeaf {
		panic("sumtree: Right called on a leaf node")
	}
	return n.right
}

// Summary returns the node's summary in O(1).
func (n *Node[T, S]) Summary() S {
	return n.summary
}

func (n *Node[T, S]) colourOf() Colour {
	if n.isLeaf {
		return Black
	}
	return n.colour
}

// Colour returns a branch's red-black colour. It panics if n is a leaf,
// mirroring Left/Right/Item's branch-only contract; callers that also
// need to handle leaves should check IsLeaf first.
func (n *Node[T, S]) Colour() Colour {
	if n.isLeaf {
		panic("sumtree: Colour called on a leaf node")
	}
	return n.colour
}

// blackHeight validates the red-black invariants along every root-to-leaf
// path and returns the common black height, or an error naming which
// invariant failed.
func (n *Node[T, S]) blackHeight() (int, error) {
	if n.isLeaf {
		return 0, nil
	}
	if n.colour == Red {
		if !n.left.isLeaf && n.left.colour == Red {
			return 0, fmt.Errorf("sumtree: consecutive red nodes")
		}
		if !n.right.isLeaf && n.right.colour == Red {
			return 0, fmt.Errorf("sumtree: consecutive red nodes")
		}
	}
	lh, err := n.left.blackHeight()
	if err != nil {
		return 0, err
	}
	rh, err := n.right.blackHeight()
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, fmt.Errorf("sumtree: differing black height (left=%d right=%d)", lh, rh)
	}
	return lh + n.colour.blackHeight(), nil
}

// IsBalanced reports whether every red-black invariant holds under n.
func (n *Node[T, S]) IsBalanced() bool {
	_, err := n.blackHeight()
	return err == nil
}

// Validate is IsBalanced's error-returning counterpart, useful in tests
// that want to report which invariant failed.
func (n *Node[T, S]) Validate() error {
	_, err := n.blackHeight()
	return err
}

func makeBlack[T Item[S], S Summary[S]](n *Node[T, S]) *Node[T, S] {
	if !n.isLeaf && n.colour == Red {
		return NewBranch[T, S](Black, n.left, n.right)
	}
	return n
}

// balance applies Okasaki's four red-red rebalancing patterns. It
// returns the rebalanced node and whether a rotation actually occurred.
// A red parent never needs rebalancing: the red-red violation, if any,
// is one level up.
func balance[T Item[S], S Summary[S]](colour Colour, left, right *Node[T, S]) (*Node[T, S], bool) {
	if colour == Red {
		return NewBranch[T, S](colour, left, right), false
	}

	if !left.isLeaf && left.colour == Red {
		ll, lr := left.left, left.right
		if !ll.isLeaf && ll.colour == Red {
			a, b, c, d := ll.left, ll.right, lr, right
			l := NewBranch[T, S](Black, a, b)
			r := NewBranch[T, S](Black, c, d)
			return NewBranch[T, S](Red, l, r), true
		}
		if !lr.isLeaf && lr.colour == Red {
			a, b, c, d := ll, lr.left, lr.right, right
			l := NewBranch[T, S](Black, a, b)
			r := NewBranch[T, S](Black, c, d)
			return NewBranch[T, S](Red, l, r), true
		}
	}

	if !right.isLeaf && right.colour == Red {
		rl, rr := right.left, right.right
		if !rl.isLeaf && rl.colour == Red {
			a, b, c, d := left, rl.left, rl.right, rr
			l := NewBranch[T, S](Black, a, b)
			r := NewBranch[T, S](Black, c, d)
			return NewBranch[T, S](Red, l, r), true
		}
		if !rr.isLeaf && rr.colour == Red {
			a, b, c, d := left, rl, rr.left, rr.right
			l := NewBranch[T, S](Black, a, b)
			r := NewBranch[T, S](Black, c, d)
			return NewBranch[T, S](Red, l, r), true
		}
	}

	return NewBranch[T, S](colour, left, right), false
}

func blackHeightOf[T Item[S], S Summary[S]](n *Node[T, S]) int {
	if n.isLeaf {
		return 0
	}
	lh := blackHeightOf[T, S](n.left)
	return lh + n.colour.blackHeight()
}

// joinRight attaches (left, right) where left is taller, descending
// left's right spine until the black heights match and rebalancing back
// up. Mirrors join_right in crates/sumtree/src/cursor.rs (there inlined
// into Position.balance; here reinstated standalone for Join/Split).
func joinRight[T Item[S], S Summary[S]](left *Node[T, S], lheight int, right *Node[T, S], rheight int) (*Node[T, S], int) {
	if lheight == rheight {
		if left.isLeaf || left.colour == Black {
			return NewBranch[T, S](Red, left, right), lheight
		}
	}
	// left must be a branch for lheight > rheight to hold.
	colour, ll, lr := left.colour, left.left, left.right
	lrHeight := lheight - colour.blackHeight()
	joined, joinedHeight := joinRight[T, S](lr, lrHeight, right, rheight)
	node, _ := balance[T, S](colour, ll, joined)
	return node, joinedHeight + colour.blackHeight()
}

// joinLeft is joinRight's mirror image for rheight > lheight.
func joinLeft[T Item[S], S Summary[S]](left *Node[T, S], lheight int, right *Node[T, S], rheight int) (*Node[T, S], int) {
	if lheight == rheight {
		if right.isLeaf || right.colour == Black {
			node, _ := balance[T, S](Red, left, right)
			return node, lheight
		}
	}
	colour, rl, rr := right.colour, right.left, right.right
	rlHeight := rheight - colour.blackHeight()
	joined, joinedHeight := joinLeft[T, S](left, lheight, rl, rlHeight)
	node, _ := balance[T, S](colour, joined, rr)
	return node, joinedHeight + colour.blackHeight()
}

type heighted[T Item[S], S Summary[S]] struct {
	node   *Node[T, S]
	height int
}

// join concatenates two (possibly nil) trees, picking joinLeft/joinRight
// by whichever side is shorter, or producing a fresh red/black parent
// when both sides already have equal black height. The result's root is
// always made black. Mirrors join() in original_source/src/rope/tree.rs.
func join[T Item[S], S Summary[S]](left, right *heighted[T, S]) *heighted[T, S] {
	var joined *heighted[T, S]
	switch {
	case left == nil && right == nil:
		joined = nil
	case left == nil:
		joined = right
	case right == nil:
		joined = left
	case right.height > left.height:
		node, h := joinLeft[T, S](left.node, left.height, right.node, right.height)
		joined = &heighted[T, S]{node, h}
	case left.height > right.height:
		node, h := joinRight[T, S](left.node, left.height, right.node, right.height)
		joined = &heighted[T, S]{node, h}
	default:
		colour := Red
		if left.node.colourOf() == Black && right.node.colourOf() == Black {
			colour = Red
		} else {
			colour = Black
		}
		node := NewBranch[T, S](colour, left.node, right.node)
		joined = &heighted[T, S]{node, left.height + colour.blackHeight()}
	}
	if joined != nil && !joined.node.isLeaf && joined.node.colour == Red {
		joined = &heighted[T, S]{makeBlack[T, S](joined.node), joined.height + 1}
	}
	return joined
}

// Join concatenates two trees (either may be nil for "empty"). The
// returned tree's root is always black.
func Join[T Item[S], S Summary[S]](left, right *Node[T, S]) *Node[T, S] {
	var lh, rh *heighted[T, S]
	if left != nil {
		lh = &heighted[T, S]{left, blackHeightOf[T, S](left)}
	}
	if right != nil {
		rh = &heighted[T, S]{right, blackHeightOf[T, S](right)}
	}
	joined := join[T, S](lh, rh)
	if joined == nil {
		return nil
	}
	return joined.node
}

// Split splits n at the monoid-addressable coordinate `at` — measured by
// the caller-supplied length function applied to a node's cached
// Summary, so descent is O(1) per level instead of re-walking leaves.
// splitLeaf defines what "split this leaf's item at local coordinate at"
// means (for BlockSlice, a byte sub-range split); it is only ever called
// with a coordinate inside the leaf's own length.
//
// Returns (left, right), either of which may be nil if the split lands
// exactly at one end of n.
func Split[T Item[S], S Summary[S]](n *Node[T, S], at int, length func(S) int, splitLeaf func(T, int) (T, T)) (*Node[T, S], *Node[T, S]) {
	left, right, _ := splitRec[T, S](n, at, length, splitLeaf)
	var leftNode, rightNode *Node[T, S]
	if left != nil {
		h := left.height
		if !left.node.isLeaf && left.node.colour == Red {
			left = &heighted[T, S]{makeBlack[T, S](left.node), h + 1}
		}
		leftNode = left.node
	}
	if right != nil {
		h := right.height
		if !right.node.isLeaf && right.node.colour == Red {
			right = &heighted[T, S]{makeBlack[T, S](right.node), h + 1}
		}
		rightNode = right.node
	}
	return leftNode, rightNode
}

func splitRec[T Item[S], S Summary[S]](n *Node[T, S], at int, length func(S) int, splitLeaf func(T, int) (T, T)) (*heighted[T, S], *heighted[T, S], int) {
	if n.isLeaf {
		leafLength := length(n.summary)
		var left, right *heighted[T, S]
		if at > 0 {
			l, _ := splitLeaf(n.item, at)
			left = &heighted[T, S]{NewLeaf[T, S](l), 0}
		}
		if at < leafLength {
			_, r := splitLeaf(n.item, at)
			right = &heighted[T, S]{NewLeaf[T, S](r), 0}
		}
		return left, right, 0
	}

	leftLen := length(n.left.summary)
	if at <= leftLen {
		splitLeft, splitRight, lheight := splitRec[T, S](n.left, at, length, splitLeaf)
		joinedRight := join[T, S](splitRight, &heighted[T, S]{n.right, lheight})
		height := lheight + n.colour.blackHeight()
		return splitLeft, joinedRight, height
	}
	splitLeft, splitRight, rheight := splitRec[T, S](n.right, at-leftLen, length, splitLeaf)
	joinedLeft := join[T, S](&heighted[T, S]{n.left, rheight}, splitLeft)
	height := rheight + n.colour.blackHeight()
	return joinedLeft, splitRight, height
}
