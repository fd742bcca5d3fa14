package document

import "github.com/textrope/textrope/pkg/rope"

// FromRope adapts a *rope.Rope to the Document interface.
func FromRope(r *rope.Rope) Document {
	return ropeDocument{r}
}

type ropeDocument struct {
	r *rope.Rope
}

func (d ropeDocument) Len() int { return d.r.Len() }

func (d ropeDocument) Slice(start, end int) (string, error) {
	s, err := d.r.Slice(start, end)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

func (d ropeDocument) String() string { return d.r.String() }

func (d ropeDocument) Bytes() []byte { return d.r.Bytes() }

var _ Document = ropeDocument{}
