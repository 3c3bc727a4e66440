package fraig

import (
	"fmt"
	"io"
)

type stats struct {
	inputNodes      int
	andNodes        int
	strashHits      int
	candidates      int
	satProved       int
	satRefuted      int
	satUnknown      int
	merges          int
	simRounds       int
	counterexamples int
}

// DumpStats writes the manager's internal counters to w.
func (m *Manager) DumpStats(w io.Writer) {
	s := m.stats
	live := 0
	for _, n := range m.nodes[1:] {
		if !n.deleted() {
			live++
		}
	}
	fmt.Fprintf(w, "input nodes:       %d\n", s.inputNodes)
	fmt.Fprintf(w, "and nodes:         %d\n", s.andNodes)
	fmt.Fprintf(w, "live nodes:        %d\n", live)
	fmt.Fprintf(w, "strash hits:       %d\n", s.strashHits)
	fmt.Fprintf(w, "candidates:        %d\n", s.candidates)
	fmt.Fprintf(w, "sat proved:        %d\n", s.satProved)
	fmt.Fprintf(w, "sat refuted:       %d\n", s.satRefuted)
	fmt.Fprintf(w, "sat unknown:       %d\n", s.satUnknown)
	fmt.Fprintf(w, "merges:            %d\n", s.merges)
	fmt.Fprintf(w, "simulation rounds: %d\n", s.simRounds)
	fmt.Fprintf(w, "counterexamples:   %d\n", s.counterexamples)
	fmt.Fprintf(w, "pattern words:     %d\n", m.patWords)
}
