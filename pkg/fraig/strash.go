package fraig

const minBuckets = 1024

// strashTable enforces structural uniqueness: for every normalized
// fanin pair at most one live And node exists. Collision chains run
// through the nodes' link[0] fields.
type strashTable struct {
	buckets []*node
	count   int
}

func newStrashTable() strashTable {
	return strashTable{buckets: make([]*node, minBuckets)}
}

func strashHash(f0, f1 Handle) uint64 {
	return splitmix64(uint64(f0)*0xc2b2ae3d27d4eb4f ^ uint64(f1)*initSalt)
}

func (t *strashTable) slot(f0, f1 Handle) int {
	return int(strashHash(f0, f1) & uint64(len(t.buckets)-1))
}

// lookup returns the node with the given normalized fanin pair, or
// nil. Callers normalize the pair and fold constants first, so a hit
// is semantically identical, not merely syntactic.
func (t *strashTable) lookup(f0, f1 Handle) *node {
	for n := t.buckets[t.slot(f0, f1)]; n != nil; n = n.link[0] {
		if n.faninHandle(0) == f0 && n.faninHandle(1) == f1 {
			return n
		}
	}
	return nil
}

func (t *strashTable) insert(n *node) {
	if t.count >= len(t.buckets)*2 {
		t.grow()
	}
	s := t.slot(n.faninHandle(0), n.faninHandle(1))
	n.link[0] = t.buckets[s]
	t.buckets[s] = n
	t.count++
}

// grow doubles the bucket array, re-inserting live nodes only so that
// chains stay short and lookups stay O(1).
func (t *strashTable) grow() {
	old := t.buckets
	t.buckets = make([]*node, len(old)*2)
	t.count = 0
	for _, head := range old {
		for n := head; n != nil; {
			next := n.link[0]
			if n.deleted() {
				n.link[0] = nil
			} else {
				s := t.slot(n.faninHandle(0), n.faninHandle(1))
				n.link[0] = t.buckets[s]
				t.buckets[s] = n
				t.count++
			}
			n = next
		}
	}
}
