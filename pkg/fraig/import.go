package fraig

import (
	"github.com/pkg/errors"

	"github.com/logictools/fraig/pkg/bnet"
)

// ImportSubnetwork builds every logic gate of net on top of the given
// input handles and returns the handles feeding net's outputs. The
// walk is topological; a map from network node id to handle lives for
// the duration of the import.
func (m *Manager) ImportSubnetwork(net *bnet.Network, inputs []Handle) ([]Handle, error) {
	if len(inputs) != net.InputCount() {
		return nil, errors.Errorf("input handle count %d does not match network inputs %d", len(inputs), net.InputCount())
	}

	hmap := make([]Handle, net.NodeCount())
	for i, id := range net.Inputs() {
		hmap[id] = inputs[i]
	}

	for _, id := range net.Logic() {
		gate := net.Node(id)
		fanins := make([]Handle, len(gate.Fanins))
		for i, fid := range gate.Fanins {
			fanins[i] = hmap[fid]
		}
		h, err := m.importGate(gate, fanins)
		if err != nil {
			return nil, errors.Wrapf(err, "gate %d", id)
		}
		hmap[id] = h
	}

	outputs := make([]Handle, net.OutputCount())
	for i := range outputs {
		outputs[i] = hmap[net.OutputSrc(i)]
	}
	return outputs, nil
}

func (m *Manager) importGate(gate bnet.Node, fanins []Handle) (Handle, error) {
	switch gate.Kind {
	case bnet.C0:
		return Zero, nil
	case bnet.C1:
		return One, nil
	case bnet.Buff:
		return m.MakeBuff(fanins[0]), nil
	case bnet.Not:
		return m.MakeNot(fanins[0]), nil
	case bnet.And:
		return m.MakeAndList(fanins), nil
	case bnet.Nand:
		return m.MakeNandList(fanins), nil
	case bnet.Or:
		return m.MakeOrList(fanins), nil
	case bnet.Nor:
		return m.MakeNorList(fanins), nil
	case bnet.Xor:
		return m.MakeXorList(fanins), nil
	case bnet.Xnor:
		return m.MakeXnorList(fanins), nil
	case bnet.Expr:
		return m.MakeExpr(gate.Expr, fanins)
	case bnet.TvFunc:
		return m.makeTvFunc(gate.Func, fanins)
	}
	return Zero, errors.Errorf("unsupported gate kind %s", gate.Kind)
}

// makeTvFunc synthesizes a truth-table gate as a sum of minterms. The
// cover form is redundant, but strash and the equivalence engine
// canonicalize it like any other construction.
func (m *Manager) makeTvFunc(tv bnet.TruthTable, fanins []Handle) (Handle, error) {
	if tv.InputCount() != len(fanins) {
		return Zero, errors.Errorf("truth table arity %d does not match %d fanins", tv.InputCount(), len(fanins))
	}
	if tv.InputCount() == 0 {
		if tv.Bit(0) {
			return One, nil
		}
		return Zero, nil
	}
	var terms []Handle
	for idx := 0; idx < 1<<uint(tv.InputCount()); idx++ {
		if !tv.Bit(idx) {
			continue
		}
		lits := make([]Handle, len(fanins))
		for i, f := range fanins {
			if idx&(1<<uint(i)) != 0 {
				lits[i] = f
			} else {
				lits[i] = f.Not()
			}
		}
		terms = append(terms, m.MakeAndList(lits))
	}
	if len(terms) == 0 {
		return Zero, nil
	}
	return m.MakeOrList(terms), nil
}
