// Package bnet models an external combinational Boolean network: typed
// logic gates over numbered nodes, with ordered inputs and outputs. The
// fraig manager imports such networks gate by gate; this package only
// describes structure and never evaluates anything.
package bnet

import (
	"github.com/pkg/errors"

	"github.com/logictools/fraig/pkg/expr"
)

// Kind enumerates the primitives a logic gate may carry.
type Kind int

const (
	Input Kind = iota
	C0
	C1
	Buff
	Not
	And
	Nand
	Or
	Nor
	Xor
	Xnor
	Expr
	TvFunc
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "input"
	case C0:
		return "c0"
	case C1:
		return "c1"
	case Buff:
		return "buff"
	case Not:
		return "not"
	case And:
		return "and"
	case Nand:
		return "nand"
	case Or:
		return "or"
	case Nor:
		return "nor"
	case Xor:
		return "xor"
	case Xnor:
		return "xnor"
	case Expr:
		return "expr"
	case TvFunc:
		return "tvfunc"
	}
	return "unknown"
}

// Node is one network node. Fanins refer to nodes with smaller ids, so
// the logic list is topologically ordered by construction.
type Node struct {
	Kind   Kind
	Fanins []int
	Expr   expr.Expr  // Kind == Expr
	Func   TruthTable // Kind == TvFunc
}

// Network is an immutable combinational network produced by a Builder.
type Network struct {
	nodes   []Node
	inputs  []int
	logic   []int
	outputs []int
}

func (n *Network) NodeCount() int   { return len(n.nodes) }
func (n *Network) InputCount() int  { return len(n.inputs) }
func (n *Network) OutputCount() int { return len(n.outputs) }

// Inputs returns the input node ids in declaration order.
func (n *Network) Inputs() []int { return n.inputs }

// Logic returns the logic node ids in topological order.
func (n *Network) Logic() []int { return n.logic }

// OutputSrc returns the id of the node driving output i.
func (n *Network) OutputSrc(i int) int { return n.outputs[i] }

func (n *Network) Node(id int) Node { return n.nodes[id] }

// Builder accumulates nodes and validates the result on Build. Add
// methods record problems instead of failing, so construction code
// stays linear; Build reports everything at once.
type Builder struct {
	nodes   []Node
	inputs  []int
	logic   []int
	outputs []int
	errs    []error
}

func NewBuilder() *Builder {
	return &Builder{}
}

// AddInput declares the next input node and returns its id.
func (b *Builder) AddInput() int {
	id := len(b.nodes)
	b.nodes = append(b.nodes, Node{Kind: Input})
	b.inputs = append(b.inputs, id)
	return id
}

// AddGate appends a logic gate of the given kind and returns its id.
func (b *Builder) AddGate(kind Kind, fanins ...int) int {
	switch kind {
	case C0, C1:
		if len(fanins) != 0 {
			b.errs = append(b.errs, errors.Errorf("%s gate takes no fanins, got %d", kind, len(fanins)))
		}
	case Buff, Not:
		if len(fanins) != 1 {
			b.errs = append(b.errs, errors.Errorf("%s gate takes one fanin, got %d", kind, len(fanins)))
		}
	case And, Nand, Or, Nor, Xor, Xnor:
		if len(fanins) == 0 {
			b.errs = append(b.errs, errors.Errorf("%s gate needs at least one fanin", kind))
		}
	default:
		b.errs = append(b.errs, errors.Errorf("kind %s is not a plain gate", kind))
	}
	return b.add(Node{Kind: kind, Fanins: fanins})
}

// AddExprGate appends a gate computing e over its fanins; the
// expression's variable ids index the fanin list.
func (b *Builder) AddExprGate(e expr.Expr, fanins ...int) int {
	return b.add(Node{Kind: Expr, Fanins: fanins, Expr: e})
}

// AddTvFuncGate appends a gate computing the truth table t over its
// fanins.
func (b *Builder) AddTvFuncGate(t TruthTable, fanins ...int) int {
	if t.InputCount() != len(fanins) {
		b.errs = append(b.errs, errors.Errorf("truth table arity %d does not match %d fanins", t.InputCount(), len(fanins)))
	}
	return b.add(Node{Kind: TvFunc, Fanins: fanins, Func: t})
}

func (b *Builder) add(n Node) int {
	id := len(b.nodes)
	for _, f := range n.Fanins {
		if f < 0 || f >= id {
			b.errs = append(b.errs, errors.Errorf("gate %d references undefined fanin %d", id, f))
		}
	}
	b.nodes = append(b.nodes, n)
	b.logic = append(b.logic, id)
	return id
}

// MarkOutput declares node id as the next network output.
func (b *Builder) MarkOutput(id int) {
	if id < 0 || id >= len(b.nodes) {
		b.errs = append(b.errs, errors.Errorf("output references undefined node %d", id))
		return
	}
	b.outputs = append(b.outputs, id)
}

// Build returns the finished network, or every accumulated validation
// problem.
func (b *Builder) Build() (*Network, error) {
	if len(b.errs) > 0 {
		msg := ""
		for i, err := range b.errs {
			if i > 0 {
				msg += "; "
			}
			msg += err.Error()
		}
		return nil, errors.Errorf("invalid network: %s", msg)
	}
	return &Network{
		nodes:   b.nodes,
		inputs:  b.inputs,
		logic:   b.logic,
		outputs: b.outputs,
	}, nil
}
