package sig

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-audiotest/config"
	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
)

// WhiteNoise renders uniform noise in [-1, +1]. The same seed produces
// bit-identical output, also after Reset.
type WhiteNoise[S core.Sample] struct {
	seed int64
	rng  *rand.Rand
}

// NewWhiteNoise returns a seeded noise generator.
func NewWhiteNoise[S core.Sample](seed int64) *WhiteNoise[S] {
	return &WhiteNoise[S]{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// NewWhiteNoiseFromConfig returns a noise generator seeded with the
// configured default seed, for callers that do not care about the exact
// sequence.
func NewWhiteNoiseFromConfig[S core.Sample](cfg config.Config) *WhiteNoise[S] {
	return NewWhiteNoise[S](cfg.RandomSeed)
}

func (*WhiteNoise[S]) SupportsNumChannels(int) bool {
	return true
}

func (*WhiteNoise[S]) SupportsSampleRate(rateHz float64) bool {
	return rateHz > 0
}

func (*WhiteNoise[S]) Prepare(float64, int, int) error {
	return nil
}

func (n *WhiteNoise[S]) RenderNextBlock(out *buffer.Buffer[S]) error {
	for frame := 0; frame < out.NumFrames(); frame++ {
		for channel := 0; channel < out.NumChannels(); channel++ {
			out.Channel(channel)[frame] = S(2*n.rng.Float64() - 1)
		}
	}

	return nil
}

func (n *WhiteNoise[S]) Reset() {
	n.rng = rand.New(rand.NewSource(n.seed))
}

func (n *WhiteNoise[S]) Clone() Signal[S] {
	// The fresh source starts from the seed, like Reset.
	return NewWhiteNoise[S](n.seed)
}

func (n *WhiteNoise[S]) String() string {
	return fmt.Sprintf("WhiteNoise(%d)", n.seed)
}
