package fraig

import (
	"fmt"
	"io"
)

// MergeRecord describes one proven equivalence: Merged was folded into
// the class led by Rep, with Inverted set when the proof was of
// opposite senses.
type MergeRecord struct {
	Rep      Handle
	Merged   Handle
	Inverted bool
}

// Tracer receives merge events as the equivalence engine proves them.
type Tracer interface {
	Trace(r MergeRecord)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ MergeRecord) {
}

// LoggingTracer writes one line per merge.
type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(r MergeRecord) {
	sense := "same"
	if r.Inverted {
		sense = "opposite"
	}
	fmt.Fprintf(t.Writer, "merged %s into %s (%s sense)\n", r.Merged, r.Rep, sense)
}
