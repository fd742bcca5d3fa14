package rope

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textrope/textrope/pkg/pool"
)

// TestRope_RandomInsertDeleteReplay_MatchesByteSliceModel replays 1000
// interleaved random insert/delete operations against both a *Rope and
// a plain []byte reference model, asserting equality and tree balance
// after every single step. This is the property-based style the
// reference implementation's own random_tests uses to shake out
// join/split/balance bugs a handful of hand-picked cases would miss.
func TestRope_RandomInsertDeleteReplay_MatchesByteSliceModel(t *testing.T) {
	const steps = 1000
	const maxInsertSize = 64

	rng := rand.New(rand.NewSource(20260801))
	a := pool.NewAllocator()

	r := Empty()
	model := make([]byte, 0, steps*maxInsertSize/2)

	for i := 0; i < steps; i++ {
		if len(model) == 0 || rng.Intn(2) == 0 {
			at := 0
			if len(model) > 0 {
				at = rng.Intn(len(model) + 1)
			}
			n := rng.Intn(maxInsertSize)
			buf := make([]byte, n)
			rng.Read(buf)

			next, err := r.Insert(a, at, buf)
			require.NoErrorf(t, err, "step %d: insert(%d, len=%d)", i, at, n)

			want := append(append(append([]byte{}, model[:at]...), buf...), model[at:]...)
			model = want
			r = next
		} else {
			at := rng.Intn(len(model))
			maxLen := len(model) - at
			n := rng.Intn(maxLen + 1)

			next, err := r.Delete(at, at+n)
			require.NoErrorf(t, err, "step %d: delete(%d, %d)", i, at, at+n)

			model = append(append([]byte{}, model[:at]...), model[at+n:]...)
			r = next
		}

		require.Truef(t, r.IsBalanced(), "step %d: unbalanced", i)
		require.Equalf(t, len(model), r.Len(), "step %d: length mismatch", i)
	}

	assert.Equal(t, model, r.Bytes())
	assert.True(t, r.IsBalanced())
}
