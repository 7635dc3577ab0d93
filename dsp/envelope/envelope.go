package envelope

// Envelope produces one automation value per audio frame. Implementations
// must be block-size invariant: rendering N frames in one call yields the
// same values as rendering them across several calls.
type Envelope interface {
	// Prepare fixes the sample rate before rendering.
	Prepare(sampleRateHz float64, maxBlockFrames int) error

	// RenderNextBlock fills out with the next len(out) values, advancing
	// the playhead.
	RenderNextBlock(out []float64)

	// Reset rewinds the playhead to the start.
	Reset()

	// Clone returns an independent deep copy.
	Clone() Envelope
}

// Buffers carries per-frame automation values for one block, keyed by
// parameter id. An entry is present only for parameters with an attached
// envelope.
type Buffers map[int][]float64
