package fraig

import (
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

// Solver outcomes, in the solver's own encoding.
const (
	satisfiable   = 1
	unsatisfiable = -1
	unknown       = 0
)

// GiniSolver is the only registered SAT backend.
const GiniSolver = "gini"

// SolverType names the SAT backend behind a manager and carries its
// per-query budget. A zero Timeout solves every query to completion
// and never yields Unknown.
type SolverType struct {
	Name    string
	Timeout time.Duration
}

// DefaultSolverType returns the gini backend with no query budget.
func DefaultSolverType() SolverType {
	return SolverType{Name: GiniSolver}
}

// satAdapter mirrors every live node as one solver variable and keeps
// the solver state warm across queries: clauses issued at node
// creation persist for the node's lifetime, and equivalence checks run
// as incremental assumption solves.
type satAdapter struct {
	g       *gini.Gini
	timeout time.Duration
}

func newSatAdapter(st SolverType) (*satAdapter, error) {
	switch st.Name {
	case "", GiniSolver:
	default:
		return nil, errors.Errorf("unsupported solver type %q", st.Name)
	}
	return &satAdapter{g: gini.New(), timeout: st.Timeout}, nil
}

func (s *satAdapter) newVar() z.Lit {
	return s.g.Lit()
}

// addUnit asserts a single-literal clause.
func (s *satAdapter) addUnit(m z.Lit) {
	s.g.Add(m)
	s.g.Add(z.LitNull)
}

// addAndGate emits the Tseitin clauses for n = a ∧ b, with any operand
// inversions already folded into the literals.
func (s *satAdapter) addAndGate(n, a, b z.Lit) {
	s.g.Add(n.Not())
	s.g.Add(a)
	s.g.Add(z.LitNull)
	s.g.Add(n.Not())
	s.g.Add(b)
	s.g.Add(z.LitNull)
	s.g.Add(n)
	s.g.Add(a.Not())
	s.g.Add(b.Not())
	s.g.Add(z.LitNull)
}

// solve runs one incremental query under the given assumptions,
// blocking the caller for its full duration. With a budget configured
// the solve runs asynchronously and is stopped at the deadline, which
// reports unknown unless a result arrived first.
func (s *satAdapter) solve(ms ...z.Lit) int {
	s.g.Assume(ms...)
	if s.timeout <= 0 {
		return s.g.Solve()
	}
	gs := s.g.GoSolve()
	deadline := time.NewTimer(s.timeout)
	defer deadline.Stop()
	tick := time.NewTicker(time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-deadline.C:
			return gs.Stop()
		case <-tick.C:
			if result, ok := gs.Test(); ok {
				return result
			}
		}
	}
}

// equiv reports whether the two literals agree under all assignments
// permitted by the clauses issued so far. On False3 the distinguishing
// model is left loaded in the solver for extraction.
func (s *satAdapter) equiv(a, b z.Lit) Bool3 {
	switch s.solve(a, b.Not()) {
	case satisfiable:
		return False3
	case unknown:
		return Unknown
	}
	switch s.solve(a.Not(), b) {
	case satisfiable:
		return False3
	case unsatisfiable:
		return True3
	}
	return Unknown
}

// neverTrue reports whether m is unsatisfiable, i.e. whether the edge
// it mirrors is constant false. On False3 a model with m = 1 is left
// loaded.
func (s *satAdapter) neverTrue(m z.Lit) Bool3 {
	switch s.solve(m) {
	case satisfiable:
		return False3
	case unsatisfiable:
		return True3
	}
	return Unknown
}

// value reads the loaded model. Valid only directly after a
// satisfiable solve.
func (s *satAdapter) value(m z.Lit) bool {
	return s.g.Value(m)
}
