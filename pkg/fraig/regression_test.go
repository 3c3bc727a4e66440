package fraig

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type andOp struct {
	i, j       int
	inv0, inv1 bool
}

func randomOps(rng *rand.Rand, numInputs, numAnds int) []andOp {
	ops := make([]andOp, numAnds)
	for k := range ops {
		limit := numInputs + k
		ops[k] = andOp{
			i:    rng.Intn(limit),
			j:    rng.Intn(limit),
			inv0: rng.Intn(2) == 1,
			inv1: rng.Intn(2) == 1,
		}
	}
	return ops
}

func applyOp(m *Manager, handles []Handle, o andOp) Handle {
	a := handles[o.i]
	if o.inv0 {
		a = a.Not()
	}
	b := handles[o.j]
	if o.inv1 {
		b = b.Not()
	}
	return m.MakeAnd(a, b)
}

func TestRandomRegression(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping random regression in short mode")
	}
	const (
		numInputs = 200
		numAnds   = 5000
	)

	m, err := New(32)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	ops := randomOps(rng, numInputs, numAnds)

	handles := make([]Handle, 0, numInputs+numAnds)
	for i := 0; i < numInputs; i++ {
		handles = append(handles, m.MakeInput())
	}
	for _, o := range ops {
		handles = append(handles, applyOp(m, handles, o))
	}
	before := m.NodeCount()

	// replay an isomorphic relabeling of the whole AIG; strash must
	// absorb it without allocating a single node
	replayed := make([]Handle, 0, len(handles))
	replayed = append(replayed, handles[:numInputs]...)
	for k, o := range ops {
		h := applyOp(m, replayed, o)
		assert.Equal(t, handles[numInputs+k], h)
		replayed = append(replayed, h)
	}
	assert.Equal(t, before, m.NodeCount())
}

func BenchmarkMakeAnd(b *testing.B) {
	m, err := New(16)
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(7))
	const numInputs = 64
	handles := make([]Handle, 0, numInputs+b.N)
	for i := 0; i < numInputs; i++ {
		handles = append(handles, m.MakeInput())
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		o := andOp{
			i:    rng.Intn(len(handles)),
			j:    rng.Intn(len(handles)),
			inv0: rng.Intn(2) == 1,
			inv1: rng.Intn(2) == 1,
		}
		handles = append(handles, applyOp(m, handles, o))
	}
}
