package fraig

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := New(16)
	require.NoError(t, err)
	return m
}

func TestNewValidation(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)

	_, err = New(4, WithSolverType(SolverType{Name: "minisat"}))
	assert.Error(t, err)

	_, err = New(4, WithLoopLimit(0))
	assert.Error(t, err)
}

func TestConstantFolding(t *testing.T) {
	m := newTestManager(t)
	x := m.MakeInput()

	type tc struct {
		Name string
		Got  Handle
		Want Handle
	}

	for _, tt := range []tc{
		{Name: "and zero", Got: m.MakeAnd(x, m.MakeZero()), Want: Zero},
		{Name: "zero and", Got: m.MakeAnd(m.MakeZero(), x), Want: Zero},
		{Name: "and one", Got: m.MakeAnd(x, m.MakeOne()), Want: x},
		{Name: "one and", Got: m.MakeAnd(m.MakeOne(), x), Want: x},
		{Name: "idempotent", Got: m.MakeAnd(x, x), Want: x},
		{Name: "complement", Got: m.MakeAnd(x, x.Not()), Want: Zero},
		{Name: "constants", Got: m.MakeAnd(m.MakeZero(), m.MakeOne()), Want: Zero},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, tt.Got)
		})
	}

	// no node was allocated for any of the folds
	assert.Equal(t, 1, m.NodeCount())
}

func TestStrashCanonicity(t *testing.T) {
	m := newTestManager(t)
	a := m.MakeInput()
	b := m.MakeInput()

	h1 := m.MakeAnd(a, b)
	before := m.NodeCount()
	h2 := m.MakeAnd(b, a)

	assert.Equal(t, h1, h2)
	assert.Equal(t, before, m.NodeCount())

	h3 := m.MakeAnd(a.Not(), b)
	assert.NotEqual(t, h1, h3)
}

func TestInverterDiscipline(t *testing.T) {
	m := newTestManager(t)
	x := m.MakeInput()

	assert.Equal(t, x, x.Not().Not())
	assert.Equal(t, x.Not(), m.MakeNot(x))
	assert.Equal(t, x, m.MakeBuff(x))
}

func TestDeMorgan(t *testing.T) {
	m := newTestManager(t)
	a := m.MakeInput()
	b := m.MakeInput()

	or := m.MakeOr(a, b)
	assert.Equal(t, m.MakeAnd(a.Not(), b.Not()).Not(), or)
	assert.Equal(t, m.MakeNor(a, b), or.Not())
	assert.Equal(t, m.MakeNand(a, b), m.MakeAnd(a, b).Not())
	assert.Equal(t, m.MakeXnor(a, b), m.MakeXor(a, b).Not())
}

func TestTautology(t *testing.T) {
	m := newTestManager(t)
	x := m.MakeInput()

	h := m.MakeOr(x, x.Not())
	assert.Equal(t, One, h)
	assert.Equal(t, True3, m.CheckEquiv(h, m.MakeOne()))
}

func TestContradiction(t *testing.T) {
	m := newTestManager(t)
	x := m.MakeInput()

	assert.Equal(t, m.MakeZero(), m.MakeAnd(x, x.Not()))
}

func TestConstantReduction(t *testing.T) {
	// x ∧ (y ∧ ¬x) is zero only semantically; folding cannot see it,
	// the engine has to prove it against the constant candidate.
	m := newTestManager(t)
	x := m.MakeInput()
	y := m.MakeInput()

	inner := m.MakeAnd(y, x.Not())
	h := m.MakeAnd(x, inner)
	assert.True(t, h.IsZero())

	deep := m.MakeOr(x, m.MakeOr(y, x.Not()))
	assert.True(t, deep.IsOne())
}

func TestOppositePolarityMerge(t *testing.T) {
	m := newTestManager(t)
	a := m.MakeInput()
	b := m.MakeInput()

	y1 := m.MakeXor(a, b)
	y2 := m.MakeXor(a, b.Not())
	assert.Equal(t, y1.Not(), y2)

	log := m.MergeLog()
	require.NotEmpty(t, log)
	assert.True(t, log[len(log)-1].Inverted)
}

func TestCheckEquivBasics(t *testing.T) {
	m := newTestManager(t)
	x := m.MakeInput()
	y := m.MakeInput()

	assert.Equal(t, False3, m.CheckEquiv(m.MakeZero(), m.MakeOne()))
	assert.Equal(t, True3, m.CheckEquiv(x, x))
	assert.Equal(t, False3, m.CheckEquiv(x, x.Not()))
	assert.Equal(t, False3, m.CheckEquiv(x, y))
	assert.Equal(t, True3, m.CheckEquiv(m.MakeAnd(x, y), m.MakeAnd(y, x)))
}

func TestEmptyOperandListPanics(t *testing.T) {
	m := newTestManager(t)

	assert.Panics(t, func() { m.MakeAndList(nil) })
	assert.Panics(t, func() { m.MakeXorList([]Handle{}) })
}

func TestDeterministicReplay(t *testing.T) {
	build := func() (*Manager, []Handle) {
		m, err := New(8)
		require.NoError(t, err)
		a := m.MakeInput()
		b := m.MakeInput()
		c := m.MakeInput()
		outs := []Handle{
			m.MakeXorList([]Handle{a, b, c}),
			m.MakeOr(m.MakeAnd(a, b), m.MakeAnd(a, c)),
			m.MakeCofactor(m.MakeAnd(a, b), 0, false),
		}
		return m, outs
	}

	m1, outs1 := build()
	m2, outs2 := build()
	assert.Equal(t, outs1, outs2)
	assert.Equal(t, m1.NodeCount(), m2.NodeCount())
}

func TestObservabilityKnobs(t *testing.T) {
	m := newTestManager(t)
	var buf bytes.Buffer
	m.SetLogStream(&buf)
	m.SetLogLevel(2)
	m.SetLoopLimit(5)

	a := m.MakeInput()
	b := m.MakeInput()
	m.MakeAnd(a, b)

	var stats bytes.Buffer
	m.DumpStats(&stats)
	assert.Contains(t, stats.String(), "input nodes:")
	assert.Contains(t, stats.String(), "and nodes:")
}

func TestLoggingTracer(t *testing.T) {
	var buf bytes.Buffer
	m, err := New(16, WithTracer(LoggingTracer{Writer: &buf}))
	require.NoError(t, err)

	a := m.MakeInput()
	b := m.MakeInput()
	m.MakeOr(m.MakeAnd(a, b), m.MakeAnd(a, b.Not())) // collapses to a
	assert.Contains(t, buf.String(), "merged")
}
