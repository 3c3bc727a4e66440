package bnet

import "github.com/pkg/errors"

// maxTvInputs bounds truth-table gates; beyond this a table should be
// decomposed before import.
const maxTvInputs = 16

// TruthTable is a bit-packed single-output truth table. Bit i holds
// the value under the assignment whose j-th input equals bit j of i.
type TruthTable struct {
	inputs int
	words  []uint64
}

// NewTruthTable builds a table over the given number of inputs from
// its packed words, least-significant assignment first.
func NewTruthTable(inputs int, words []uint64) (TruthTable, error) {
	if inputs < 0 || inputs > maxTvInputs {
		return TruthTable{}, errors.Errorf("truth table inputs must be in [0, %d], got %d", maxTvInputs, inputs)
	}
	need := 1
	if inputs > 6 {
		need = 1 << uint(inputs-6)
	}
	if len(words) != need {
		return TruthTable{}, errors.Errorf("truth table over %d inputs needs %d words, got %d", inputs, need, len(words))
	}
	t := TruthTable{inputs: inputs, words: make([]uint64, need)}
	copy(t.words, words)
	return t, nil
}

func (t TruthTable) InputCount() int { return t.inputs }

// Bit returns the table value for assignment index i.
func (t TruthTable) Bit(i int) bool {
	return t.words[i>>6]>>(uint(i)&63)&1 == 1
}
