package match

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
	"github.com/cwbudde/algo-audiotest/dsp/sig"
)

const defaultEqualsToleranceLinear = 1e-8

// EqualsTo compares observed audio sample by sample against a reference
// signal rendered in lockstep. The matcher owns a deep copy of the
// reference, so the caller's signal instance is left untouched.
type EqualsTo[S core.Sample] struct {
	reference       sig.Signal[S]
	toleranceLinear float64

	numChannels int
	pool        *buffer.Pool[S]
	details     Details
}

// NewEqualsTo returns a sample comparison matcher. Pass a negative
// tolerance to use the 1e-8 default.
func NewEqualsTo[S core.Sample](reference sig.Signal[S], toleranceLinear float64) *EqualsTo[S] {
	if toleranceLinear < 0 {
		toleranceLinear = defaultEqualsToleranceLinear
	}

	return &EqualsTo[S]{
		reference:       reference.Clone(),
		toleranceLinear: toleranceLinear,
	}
}

func (m *EqualsTo[S]) Prepare(sampleRateHz float64, numChannels, maxBlockFrames int) error {
	m.numChannels = numChannels
	m.pool = buffer.NewPool[S](numChannels)

	return m.reference.Prepare(sampleRateHz, numChannels, maxBlockFrames)
}

func (m *EqualsTo[S]) Match(observed *buffer.Buffer[S]) bool {
	var scratch *buffer.Buffer[S]
	if m.pool != nil && observed.NumChannels() == m.numChannels {
		scratch = m.pool.Get(observed.NumFrames())
		defer m.pool.Put(scratch)
	} else {
		scratch = buffer.EmptyLike(observed)
	}

	if err := m.reference.RenderNextBlock(scratch); err != nil {
		m.details = Details{Description: fmt.Sprintf("reference signal failed: %v", err)}
		return false
	}

	for channel := 0; channel < observed.NumChannels(); channel++ {
		obs := observed.Channel(channel)
		ref := scratch.Channel(channel)
		for frame := range obs {
			if math.Abs(float64(obs[frame])-float64(ref[frame])) > m.toleranceLinear {
				m.details = Details{
					Frame:       frame,
					Channel:     channel,
					Description: fmt.Sprintf("observed %v, reference %v", obs[frame], ref[frame]),
				}

				return false
			}
		}
	}

	return true
}

func (*EqualsTo[S]) PerBlock() bool {
	return true
}

func (m *EqualsTo[S]) Reset() {
	m.reference.Reset()
	m.details = Details{}
}

func (m *EqualsTo[S]) FailureDetails() Details {
	return m.details
}

func (m *EqualsTo[S]) Clone() Matcher[S] {
	return &EqualsTo[S]{
		reference:       m.reference.Clone(),
		toleranceLinear: m.toleranceLinear,
	}
}

func (m *EqualsTo[S]) String() string {
	return fmt.Sprintf("EqualsTo(%s, %v)", m.reference, m.toleranceLinear)
}
