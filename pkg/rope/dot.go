package rope

import (
	"fmt"
	"io"
)

// WriteDOT writes a Graphviz dot graph of the rope's internal tree to
// w, for interactively inspecting an unbalanced or mis-joined tree the
// way the reference implementation's debug_assert_split_balanced /
// debug_assert_join_balanced failure paths do.
func (r *Rope) WriteDOT(w io.Writer) error {
	fmt.Fprintln(w, "digraph rope {")
	if r.root != nil {
		id := 0
		if err := writeDotNode(w, r.root, &id); err != nil {
			return err
		}
	}
	fmt.Fprintln(w, "}")
	return nil
}

func writeDotNode(w io.Writer, n *node, id *int) error {
	myID := *id
	*id++
	if n.IsLeaf() {
		s := n.Item().bytes.Bytes()
		label := string(s)
		if len(label) > 24 {
			label = label[:24] + "..."
		}
		_, err := fmt.Fprintf(w, "  n%d [shape=box label=%q];\n", myID, label)
		return err
	}
	colour := "black"
	if n.Colour().String() == "red" {
		colour = "red"
	}
	if _, err := fmt.Fprintf(w, "  n%d [label=%q color=%s];\n", myID, fmt.Sprintf("len=%d", n.Summary().Len), colour); err != nil {
		return err
	}
	leftID := *id
	if err := writeDotNode(w, n.Left(), id); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  n%d -> n%d;\n", myID, leftID); err != nil {
		return err
	}
	rightID := *id
	if err := writeDotNode(w, n.Right(), id); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "  n%d -> n%d;\n", myID, rightID)
	return err
}

