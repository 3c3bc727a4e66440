package fraig

import (
	"io"
	"math/rand"

	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultLoopLimit = 10

// Manager owns the node arena, both hash tables, the simulation
// buffers, and one SAT solver instance. It is single-threaded: all
// operations on a manager form a total order and SAT calls block for
// their full duration. External code interacts only through Handle
// values.
type Manager struct {
	logger    *logrus.Logger
	tracer    Tracer
	loopLimit int

	nodes  []*node // arena indexed by id; nodes[0] is the constant sentinel
	inputs []*node

	patWords int // current simulation width in 64-bit words

	strash strashTable
	patTab patTable

	sat *satAdapter
	rng *rand.Rand

	mergeLog []MergeRecord
	stats    stats
}

// Option configures a Manager under construction.
type Option func(*Manager) error

// WithSolverType selects the SAT backend and its per-query budget.
func WithSolverType(st SolverType) Option {
	return func(m *Manager) error {
		sat, err := newSatAdapter(st)
		if err != nil {
			return err
		}
		m.sat = sat
		return nil
	}
}

func WithLogger(logger *logrus.Logger) Option {
	return func(m *Manager) error {
		m.logger = logger
		return nil
	}
}

// WithLoopLimit bounds the number of consecutive unrefined simulation
// rounds the equivalence engine spends on one node's candidates.
func WithLoopLimit(limit int) Option {
	return func(m *Manager) error {
		if limit < 1 {
			return errors.Errorf("loop limit must be at least 1, got %d", limit)
		}
		m.loopLimit = limit
		return nil
	}
}

func WithTracer(t Tracer) Option {
	return func(m *Manager) error {
		m.tracer = t
		return nil
	}
}

var managerDefaults = []Option{
	func(m *Manager) error {
		if m.sat != nil {
			return nil
		}
		sat, err := newSatAdapter(DefaultSolverType())
		if err != nil {
			return err
		}
		m.sat = sat
		return nil
	},
	func(m *Manager) error {
		if m.logger == nil {
			m.logger = logrus.New()
			m.logger.SetLevel(logrus.WarnLevel)
		}
		return nil
	},
	func(m *Manager) error {
		if m.tracer == nil {
			m.tracer = DefaultTracer{}
		}
		return nil
	},
}

// New returns a manager whose nodes carry sigSize 64-bit simulation
// words initially; counter-example and random rounds append further
// words over the manager's lifetime.
func New(sigSize int, options ...Option) (*Manager, error) {
	if sigSize < 1 {
		return nil, errors.Errorf("signature size must be at least 1, got %d", sigSize)
	}
	m := &Manager{
		loopLimit: defaultLoopLimit,
		patWords:  sigSize,
		strash:    newStrashTable(),
		patTab:    newPatTable(),
		rng:       rand.New(rand.NewSource(simSeed)),
	}
	for _, option := range append(options, managerDefaults...) {
		if err := option(m); err != nil {
			return nil, err
		}
	}

	// The sentinel node mirrors constant 0 in the solver, so constant
	// handles take part in queries like any other edge.
	c := &node{
		id:    constID,
		flags: flagConst,
		lit:   m.sat.newVar(),
		pat:   make([]uint64, sigSize),
	}
	c.rep = c
	c.refreshMarks(0, sigSize)
	c.calcHash()
	m.sat.addUnit(c.lit.Not())
	m.nodes = append(m.nodes, c)
	return m, nil
}

func (m *Manager) MakeZero() Handle { return Zero }

func (m *Manager) MakeOne() Handle { return One }

// MakeInput allocates a fresh input node with the next input index and
// a deterministic initial simulation pattern.
func (m *Manager) MakeInput() Handle {
	n := &node{
		id:      uint32(len(m.nodes)),
		flags:   flagInput,
		inputID: len(m.inputs),
		lit:     m.sat.newVar(),
		pat:     make([]uint64, m.patWords),
	}
	n.rep = n
	for c := range n.pat {
		n.pat[c] = initPattern(n.inputID, c)
	}
	n.refreshMarks(0, m.patWords)
	n.calcHash()
	m.nodes = append(m.nodes, n)
	m.inputs = append(m.inputs, n)
	m.patTab.insert(n)
	m.stats.inputNodes++
	nodeGauge.Set(float64(len(m.nodes) - 1))
	return makeHandle(n.id, false)
}

// MakeAnd returns the canonical handle for the conjunction of a and b:
// trivial conjunctions fold away, a structurally known pair answers
// from the hash table, and a genuinely new node goes through the
// equivalence engine before its handle is returned.
func (m *Manager) MakeAnd(a, b Handle) Handle {
	a = m.resolve(a)
	b = m.resolve(b)

	switch {
	case a == Zero || b == Zero || a == b.Not():
		return Zero
	case a == One:
		return b
	case b == One:
		return a
	case a == b:
		return a
	}
	if b < a {
		a, b = b, a
	}

	if hit := m.strash.lookup(a, b); hit != nil {
		m.stats.strashHits++
		strashHitCounter.Inc()
		return m.resolve(makeHandle(hit.id, false))
	}

	n := m.newAnd(a, b)
	m.strash.insert(n)
	m.patTab.insert(n)
	return m.reduce(n)
}

func (m *Manager) newAnd(f0, f1 Handle) *node {
	n := &node{
		id:  uint32(len(m.nodes)),
		lit: m.sat.newVar(),
		pat: make([]uint64, m.patWords),
	}
	n.rep = n
	n.fanins[0] = m.nodes[f0.id()]
	n.fanins[1] = m.nodes[f1.id()]
	if f0.Inv() {
		n.flags |= flagInv0
	}
	if f1.Inv() {
		n.flags |= flagInv1
	}
	m.sat.addAndGate(n.lit, m.lit(f0), m.lit(f1))
	n.calcPat(0, m.patWords)
	n.refreshMarks(0, m.patWords)
	n.calcHash()
	m.nodes = append(m.nodes, n)
	m.stats.andNodes++
	nodeGauge.Set(float64(len(m.nodes) - 1))
	return n
}

// resolve collapses the representative chain behind h; handles naming
// merged nodes redirect to the surviving representative.
func (m *Manager) resolve(h Handle) Handle {
	r, inv := m.nodes[h.id()].find()
	return makeHandle(r.id, inv != h.Inv())
}

func (m *Manager) lit(h Handle) z.Lit {
	l := m.nodes[h.id()].lit
	if h.Inv() {
		l = l.Not()
	}
	return l
}

// CheckEquiv decides semantic equivalence of a and b under the current
// circuit. A False3 answer feeds the distinguishing assignment back
// into the simulator; Unknown propagates a solver timeout verbatim.
func (m *Manager) CheckEquiv(a, b Handle) Bool3 {
	a = m.resolve(a)
	b = m.resolve(b)
	if a == b {
		return True3
	}
	if a == b.Not() {
		return False3
	}
	res := m.sat.equiv(m.lit(a), m.lit(b))
	m.recordOutcome(res)
	if res == False3 {
		m.injectCounterexample()
	}
	return res
}

// SetLogLevel maps the integer verbosity knob onto logger levels:
// 0 warnings only, 1 adds info, 2 and up adds debug.
func (m *Manager) SetLogLevel(level int) {
	switch {
	case level <= 0:
		m.logger.SetLevel(logrus.WarnLevel)
	case level == 1:
		m.logger.SetLevel(logrus.InfoLevel)
	default:
		m.logger.SetLevel(logrus.DebugLevel)
	}
}

func (m *Manager) SetLogStream(w io.Writer) {
	m.logger.SetOutput(w)
}

// SetLoopLimit adjusts the stable-round budget; values below 1 are
// ignored.
func (m *Manager) SetLoopLimit(limit int) {
	if limit >= 1 {
		m.loopLimit = limit
	}
}

// NodeCount returns the number of allocated nodes, inputs included.
func (m *Manager) NodeCount() int {
	return len(m.nodes) - 1
}

func (m *Manager) InputCount() int {
	return len(m.inputs)
}

// MergeLog returns the merges proven so far, in the order the engine
// performed them.
func (m *Manager) MergeLog() []MergeRecord {
	out := make([]MergeRecord, len(m.mergeLog))
	copy(out, m.mergeLog)
	return out
}
