package fraig

import "github.com/sirupsen/logrus"

// candidate pairs a prospective equivalent node with the polarity the
// signatures suggest: the candidate claims target ≡ n ⊕ inv.
type candidate struct {
	n   *node
	inv bool
}

// reduce looks for a live node functionally equal to the freshly
// constructed n and returns n's canonical handle: n itself, or the
// representative it was merged into. Candidates are drained in
// deterministic order, constants first, then matching nodes by
// ascending id. A refuting model is appended to every simulation
// buffer, which re-derives the candidate set; exploration stops once
// all candidates are resolved or the stable-round budget is spent.
func (m *Manager) reduce(n *node) Handle {
	stable := 0
	for stable < m.loopLimit {
		cand, ok := m.nextCandidate(n)
		if !ok {
			break
		}
		m.stats.candidates++
		res := m.proveCandidate(n, cand)
		m.recordOutcome(res)
		switch res {
		case True3:
			m.merge(cand.n, n, cand.inv)
			return makeHandle(cand.n.id, cand.inv)
		case False3:
			// The model separates the pair for good; feed it to the
			// simulator and re-derive candidates.
			m.injectCounterexample()
			stable = 0
		case Unknown:
			// The candidate stays pending. Cheap random patterns may
			// still refute what the solver did not decide.
			m.simulateRandomRound()
			if m.stillMatches(n, cand) {
				stable++
			} else {
				stable = 0
			}
		}
	}
	if stable >= m.loopLimit {
		m.logger.WithFields(logrus.Fields{
			"node":   n.id,
			"rounds": stable,
		}).Debug("abandoning unresolved equivalence candidates")
	}
	return makeHandle(n.id, false)
}

// nextCandidate returns the strongest remaining candidate for n:
// constants rank first, then the lowest-id live node whose signature
// matches n's modulo inversion.
func (m *Manager) nextCandidate(n *node) (candidate, bool) {
	if !n.saw1() {
		return candidate{n: m.nodes[constID]}, true
	}
	if !n.saw0() {
		return candidate{n: m.nodes[constID], inv: true}, true
	}
	var best *node
	var bestInv bool
	for c := m.patTab.chain(n.hash); c != nil; c = c.link[1] {
		if c == n || c.deleted() || c.hash != n.hash {
			continue
		}
		// Complementary buffers differ in the fold bit, which the
		// secondary key carries; compare the key with the fold undone.
		if c.sigXorBit() != (n.sigXorBit() != (c.hashInv() != n.hashInv())) {
			continue
		}
		inv, ok := patMatch(c, n)
		if !ok {
			continue
		}
		if best == nil || c.id < best.id {
			best, bestInv = c, inv
		}
	}
	if best == nil {
		return candidate{}, false
	}
	return candidate{n: best, inv: bestInv}, true
}

// proveCandidate asks the solver whether n really equals the candidate
// under the suggested polarity.
func (m *Manager) proveCandidate(n *node, c candidate) Bool3 {
	if c.n.isConst() {
		if c.inv {
			return m.sat.neverTrue(n.lit.Not())
		}
		return m.sat.neverTrue(n.lit)
	}
	b := c.n.lit
	if c.inv {
		b = b.Not()
	}
	return m.sat.equiv(n.lit, b)
}

// stillMatches reports whether the candidate survived the latest
// simulation round.
func (m *Manager) stillMatches(n *node, c candidate) bool {
	if c.n.isConst() {
		if c.inv {
			return !n.saw0()
		}
		return !n.saw1()
	}
	inv, ok := patMatch(c.n, n)
	return ok && inv == c.inv
}

// merge folds loser into the class led by rep. The lower id always
// wins: candidates are drawn from nodes built before loser.
func (m *Manager) merge(rep, loser *node, inv bool) {
	rep.adopt(loser, inv)
	rec := MergeRecord{
		Rep:      makeHandle(rep.id, false),
		Merged:   makeHandle(loser.id, false),
		Inverted: inv,
	}
	m.mergeLog = append(m.mergeLog, rec)
	m.tracer.Trace(rec)
	m.stats.merges++
	mergeCounter.Inc()
	m.logger.WithFields(logrus.Fields{
		"rep":      rec.Rep.String(),
		"merged":   rec.Merged.String(),
		"inverted": inv,
	}).Debug("proved nodes equivalent")
}

// appendColumn widens every simulation buffer by one word and
// re-simulates. Creation order is topological, so a single id-order
// pass recomputes every And node after its fanins; existing words are
// never touched.
func (m *Manager) appendColumn(inputWord func(in *node) uint64) {
	col := m.patWords
	m.patWords++
	for _, nd := range m.nodes {
		switch {
		case nd.isConst():
			nd.pat = append(nd.pat, 0)
		case nd.isInput():
			nd.pat = append(nd.pat, inputWord(nd))
		default:
			nd.pat = append(nd.pat, 0)
			nd.calcPat(col, col+1)
		}
		nd.refreshMarks(col, col+1)
		nd.calcHash()
	}
	m.patTab.rebuild(m.nodes)
	m.stats.simRounds++
	simRoundCounter.Inc()
}

// injectCounterexample turns the model loaded in the solver into one
// new simulation column. Bit 0 of each input word carries the model
// value; the remaining bits are pseudo-random perturbations, so one
// refutation buys 63 extra patterns.
func (m *Manager) injectCounterexample() {
	m.appendColumn(func(in *node) uint64 {
		w := m.rng.Uint64()
		if m.sat.value(in.lit) {
			w |= 1
		} else {
			w &^= 1
		}
		return w
	})
	m.stats.counterexamples++
}

// simulateRandomRound appends one fully random column from the
// manager's fixed-seed pool.
func (m *Manager) simulateRandomRound() {
	m.appendColumn(func(*node) uint64 {
		return m.rng.Uint64()
	})
}

func (m *Manager) recordOutcome(res Bool3) {
	switch res {
	case True3:
		m.stats.satProved++
		satQueryCounter.WithLabelValues("proved").Inc()
	case False3:
		m.stats.satRefuted++
		satQueryCounter.WithLabelValues("refuted").Inc()
	default:
		m.stats.satUnknown++
		satQueryCounter.WithLabelValues("unknown").Inc()
	}
}
