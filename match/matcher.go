package match

import (
	"fmt"

	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
)

// Details describes where and why a matcher failed. Frame is relative to
// the buffer passed to Match.
type Details struct {
	Frame       int
	Channel     int
	Description string
}

// Matcher evaluates observed audio against an expectation.
type Matcher[S core.Sample] interface {
	// Prepare negotiates the evaluation context before the first Match.
	Prepare(sampleRateHz float64, numChannels, maxBlockFrames int) error

	// Match reports whether the observed audio satisfies the matcher.
	// Per-block matchers receive consecutive blocks; whole-signal
	// matchers receive the full rendered output once.
	Match(observed *buffer.Buffer[S]) bool

	// PerBlock reports whether the matcher can evaluate individual
	// blocks or needs the whole signal.
	PerBlock() bool

	// Reset clears evaluation state for a fresh run.
	Reset()

	// FailureDetails returns where the last failed Match tripped.
	FailureDetails() Details

	// Clone returns an independent deep copy.
	Clone() Matcher[S]

	fmt.Stringer
}
