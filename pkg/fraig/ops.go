package fraig

import (
	"github.com/pkg/errors"

	"github.com/logictools/fraig/pkg/expr"
)

// The derived gates compose the AND/INVERT primitives by De Morgan;
// none of them allocates anything MakeAnd would not.

func (m *Manager) MakeBuff(h Handle) Handle { return m.resolve(h) }

func (m *Manager) MakeNot(h Handle) Handle { return m.resolve(h).Not() }

func (m *Manager) MakeNand(a, b Handle) Handle { return m.MakeAnd(a, b).Not() }

func (m *Manager) MakeOr(a, b Handle) Handle { return m.MakeAnd(a.Not(), b.Not()).Not() }

func (m *Manager) MakeNor(a, b Handle) Handle { return m.MakeAnd(a.Not(), b.Not()) }

func (m *Manager) MakeXor(a, b Handle) Handle {
	t1 := m.MakeAnd(a, b.Not())
	t2 := m.MakeAnd(a.Not(), b)
	return m.MakeOr(t1, t2)
}

func (m *Manager) MakeXnor(a, b Handle) Handle {
	t1 := m.MakeAnd(a, b.Not())
	t2 := m.MakeAnd(a.Not(), b)
	return m.MakeNor(t1, t2)
}

// The list forms reduce over a balanced schedule so the DAG stays
// shallow. An empty operand list is a programming error.

func (m *Manager) MakeAndList(edges []Handle) Handle {
	mustNotBeEmpty(edges)
	return m.andRange(edges, 0, len(edges), false)
}

func (m *Manager) MakeNandList(edges []Handle) Handle {
	mustNotBeEmpty(edges)
	return m.andRange(edges, 0, len(edges), false).Not()
}

func (m *Manager) MakeOrList(edges []Handle) Handle {
	mustNotBeEmpty(edges)
	return m.andRange(edges, 0, len(edges), true).Not()
}

func (m *Manager) MakeNorList(edges []Handle) Handle {
	mustNotBeEmpty(edges)
	return m.andRange(edges, 0, len(edges), true)
}

func (m *Manager) MakeXorList(edges []Handle) Handle {
	mustNotBeEmpty(edges)
	return m.xorRange(edges, 0, len(edges))
}

func (m *Manager) MakeXnorList(edges []Handle) Handle {
	mustNotBeEmpty(edges)
	return m.xorRange(edges, 0, len(edges)).Not()
}

// andRange ands edges[lo:hi], complementing each leaf when iinv is
// set. Always called with hi > lo.
func (m *Manager) andRange(edges []Handle, lo, hi int, iinv bool) Handle {
	if hi-lo == 1 {
		h := edges[lo]
		if iinv {
			h = h.Not()
		}
		return h
	}
	mid := lo + (hi-lo+1)/2
	return m.MakeAnd(m.andRange(edges, lo, mid, iinv), m.andRange(edges, mid, hi, iinv))
}

func (m *Manager) xorRange(edges []Handle, lo, hi int) Handle {
	if hi-lo == 1 {
		return edges[lo]
	}
	mid := lo + (hi-lo+1)/2
	return m.MakeXor(m.xorRange(edges, lo, mid), m.xorRange(edges, mid, hi))
}

func mustNotBeEmpty(edges []Handle) {
	if len(edges) == 0 {
		panic("fraig: empty operand list")
	}
}

// MakeExpr builds the node tree for e, reading leaf handles from
// inputs by variable id.
func (m *Manager) MakeExpr(e expr.Expr, inputs []Handle) (Handle, error) {
	switch e.Kind() {
	case expr.KindZero:
		return Zero, nil
	case expr.KindOne:
		return One, nil
	case expr.KindPosLiteral, expr.KindNegLiteral:
		v := e.VarID()
		if v < 0 || v >= len(inputs) {
			return Zero, errors.Errorf("expression variable %d out of range (have %d inputs)", v, len(inputs))
		}
		h := inputs[v]
		if e.Kind() == expr.KindNegLiteral {
			h = h.Not()
		}
		return h, nil
	}

	children := e.Children()
	if len(children) == 0 {
		return Zero, errors.Errorf("%s expression with no children", e.Kind())
	}
	edges := make([]Handle, len(children))
	for i, child := range children {
		h, err := m.MakeExpr(child, inputs)
		if err != nil {
			return Zero, err
		}
		edges[i] = h
	}
	switch e.Kind() {
	case expr.KindAnd:
		return m.MakeAndList(edges), nil
	case expr.KindOr:
		return m.MakeOrList(edges), nil
	case expr.KindXor:
		return m.MakeXorList(edges), nil
	}
	return Zero, errors.Errorf("unsupported expression kind %s", e.Kind())
}

// MakeCofactor substitutes the input named by inputID with a constant,
// 1 when inv is false and 0 when inv is true, and returns the
// resulting function. The walk memoizes per call so shared subgraphs
// are cofactored once.
func (m *Manager) MakeCofactor(h Handle, inputID int, inv bool) Handle {
	if h.IsConst() {
		return h
	}
	h = m.resolve(h)
	if h.IsConst() {
		return h
	}
	memo := make(map[uint32]Handle)
	res := m.cofactorNode(m.nodes[h.id()], inputID, inv, memo)
	if h.Inv() {
		res = res.Not()
	}
	return res
}

func (m *Manager) cofactorNode(n *node, inputID int, inv bool, memo map[uint32]Handle) Handle {
	if h, ok := memo[n.id]; ok {
		return h
	}
	var res Handle
	switch {
	case n.isInput() && n.inputID == inputID && inv:
		res = Zero
	case n.isInput() && n.inputID == inputID:
		res = One
	case n.isInput():
		res = makeHandle(n.id, false)
	default:
		res = m.MakeAnd(
			m.cofactorEdge(n, 0, inputID, inv, memo),
			m.cofactorEdge(n, 1, inputID, inv, memo),
		)
	}
	memo[n.id] = res
	return res
}

func (m *Manager) cofactorEdge(n *node, pos, inputID int, inv bool, memo map[uint32]Handle) Handle {
	h := m.cofactorNode(n.fanins[pos], inputID, inv, memo)
	if n.faninInv(pos) {
		h = h.Not()
	}
	return h
}
