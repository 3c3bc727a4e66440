package fraig

import "github.com/go-air/gini/z"

// Flag bits packed into a node's flag word.
const (
	flagConst uint32 = 1 << iota
	flagInput
	flagInv0    // fanin 0 polarity
	flagInv1    // fanin 1 polarity
	flagSaw0    // some observed pattern evaluated to 0
	flagSaw1    // some observed pattern evaluated to 1
	flagHashInv // signature was folded with NOT before hashing
	flagRepInv  // sense of this node relative to its representative
	flagDeleted
)

// node is an arena record owned by the Manager. Nodes are allocated
// monotonically and never freed; deletion is the flag plus a
// representative pointer.
type node struct {
	id  uint32
	lit z.Lit // positive solver literal mirroring this node

	fanins  [2]*node
	inputID int

	flags uint32

	// Bit-parallel simulation words. Column 0 holds the initial
	// pattern and is never overwritten; later columns are appended
	// one word at a time and never mutated either.
	pat  []uint64
	hash uint64

	// Intrusive bucket chains: link[0] for the structural table,
	// link[1] for the signature table.
	link [2]*node

	// Equivalence class bookkeeping: rep chains terminate at a node
	// whose rep is itself; the class list caches its tail so
	// appending stays O(1).
	rep    *node
	eqNext *node
	eqTail *node
}

func (n *node) isConst() bool { return n.flags&flagConst != 0 }
func (n *node) isInput() bool { return n.flags&flagInput != 0 }
func (n *node) isAnd() bool   { return n.flags&(flagConst|flagInput) == 0 }

func (n *node) faninInv(pos int) bool {
	if pos == 0 {
		return n.flags&flagInv0 != 0
	}
	return n.flags&flagInv1 != 0
}

func (n *node) faninHandle(pos int) Handle {
	return makeHandle(n.fanins[pos].id, n.faninInv(pos))
}

func (n *node) saw0() bool    { return n.flags&flagSaw0 != 0 }
func (n *node) saw1() bool    { return n.flags&flagSaw1 != 0 }
func (n *node) hashInv() bool { return n.flags&flagHashInv != 0 }
func (n *node) repInv() bool  { return n.flags&flagRepInv != 0 }
func (n *node) deleted() bool { return n.flags&flagDeleted != 0 }

// find follows the representative chain, accumulating polarity by XOR.
func (n *node) find() (*node, bool) {
	inv := false
	for n.rep != n {
		inv = inv != n.repInv()
		n = n.rep
	}
	return n, inv
}

// adopt folds loser into the class led by rep; inv is the proven sense
// of loser relative to rep.
func (rep *node) adopt(loser *node, inv bool) {
	loser.rep = rep
	if inv {
		loser.flags |= flagRepInv
	}
	loser.flags |= flagDeleted
	if rep.eqTail == nil {
		rep.eqTail = rep
	}
	rep.eqTail.eqNext = loser
	rep.eqTail = loser
	loser.eqNext = nil
}
