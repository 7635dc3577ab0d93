package harness

import (
	"testing"

	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
	"github.com/cwbudde/algo-audiotest/dsp/effect"
)

// Result holds everything a run produced: the full rendered input and
// output, collected expectation failures and the effect under test for
// state inspection or reuse.
type Result[S core.Sample] struct {
	Input    *buffer.Buffer[S]
	Output   *buffer.Buffer[S]
	Failures []string
	Effect   effect.Effect[S]
}

// Failed reports whether any expect-level check failed.
func (r *Result[S]) Failed() bool {
	return len(r.Failures) > 0
}

// Report fails tb once per collected failure message.
func (r *Result[S]) Report(tb testing.TB) {
	tb.Helper()
	for _, msg := range r.Failures {
		tb.Error(msg)
	}
}
