package fraig

// patTable groups nodes by simulation signature modulo inversion. A
// node is inserted as soon as its words and signature are computed;
// chain members with a matching key seed candidate equivalences for
// the engine. Chains run through the nodes' link[1] fields.
type patTable struct {
	buckets []*node
	count   int
}

func newPatTable() patTable {
	return patTable{buckets: make([]*node, minBuckets)}
}

func (t *patTable) slot(hash uint64) int {
	return int(splitmix64(hash) & uint64(len(t.buckets)-1))
}

// chain returns the head of the bucket for the given signature hash.
func (t *patTable) chain(hash uint64) *node {
	return t.buckets[t.slot(hash)]
}

func (t *patTable) insert(n *node) {
	if t.count >= len(t.buckets)*2 {
		t.grow()
	}
	s := t.slot(n.hash)
	n.link[1] = t.buckets[s]
	t.buckets[s] = n
	t.count++
}

func (t *patTable) grow() {
	old := t.buckets
	t.buckets = make([]*node, len(old)*2)
	t.count = 0
	for _, head := range old {
		for n := head; n != nil; {
			next := n.link[1]
			if n.deleted() {
				n.link[1] = nil
			} else {
				s := t.slot(n.hash)
				n.link[1] = t.buckets[s]
				t.buckets[s] = n
				t.count++
			}
			n = next
		}
	}
}

// rebuild re-keys every live node after a simulation round changed the
// signatures. Deleted nodes drop out of the table here.
func (t *patTable) rebuild(nodes []*node) {
	want := len(t.buckets)
	for want*2 < len(nodes) {
		want *= 2
	}
	if want != len(t.buckets) {
		t.buckets = make([]*node, want)
	} else {
		for i := range t.buckets {
			t.buckets[i] = nil
		}
	}
	t.count = 0
	for _, n := range nodes {
		if n.isConst() || n.deleted() {
			continue
		}
		s := t.slot(n.hash)
		n.link[1] = t.buckets[s]
		t.buckets[s] = n
		t.count++
	}
}
