package sig

import (
	"fmt"

	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
	"github.com/cwbudde/algo-audiotest/dsp/effect"
)

// Signal renders audio block by block into a caller-provided buffer.
type Signal[S core.Sample] interface {
	SupportsNumChannels(n int) bool
	SupportsSampleRate(rateHz float64) bool

	// Prepare negotiates the rendering context before the first block.
	Prepare(sampleRateHz float64, numOut, maxBlockFrames int) error

	// RenderNextBlock fills out with the next block, advancing the
	// playhead. The buffer shape defines the request.
	RenderNextBlock(out *buffer.Buffer[S]) error

	// Reset rewinds the signal to its initial state.
	Reset()

	// Clone returns an independent deep copy.
	Clone() Signal[S]

	fmt.Stringer
}

// Chain pipes a source signal through an ordered list of effects,
// rendering the source and processing each block in place. It implements
// Signal, so chains nest.
type Chain[S core.Sample] struct {
	source  Signal[S]
	effects []effect.Effect[S]
}

// FollowedBy returns a Chain feeding source through fx. If source is
// already a Chain the effect is appended instead of nesting.
func FollowedBy[S core.Sample](source Signal[S], fx effect.Effect[S]) *Chain[S] {
	if chain, ok := source.(*Chain[S]); ok {
		return chain.FollowedBy(fx)
	}

	return &Chain[S]{source: source, effects: []effect.Effect[S]{fx}}
}

// FollowedBy appends fx to the chain and returns the receiver.
func (c *Chain[S]) FollowedBy(fx effect.Effect[S]) *Chain[S] {
	c.effects = append(c.effects, fx)
	return c
}

// Source returns the chain's source signal.
func (c *Chain[S]) Source() Signal[S] {
	return c.source
}

func (c *Chain[S]) SupportsNumChannels(n int) bool {
	if !c.source.SupportsNumChannels(n) {
		return false
	}
	for _, fx := range c.effects {
		if !fx.SupportsChannelLayout(n, n) {
			return false
		}
	}

	return true
}

func (c *Chain[S]) SupportsSampleRate(rateHz float64) bool {
	if !c.source.SupportsSampleRate(rateHz) {
		return false
	}
	for _, fx := range c.effects {
		if !fx.SupportsSampleRate(rateHz) {
			return false
		}
	}

	return true
}

// Prepare prepares the source, then each effect in order. Chained effects
// run n-to-n on the negotiated channel count.
func (c *Chain[S]) Prepare(sampleRateHz float64, numOut, maxBlockFrames int) error {
	if err := c.source.Prepare(sampleRateHz, numOut, maxBlockFrames); err != nil {
		return err
	}

	for _, fx := range c.effects {
		if !fx.SupportsChannelLayout(numOut, numOut) {
			return fmt.Errorf("%w: %s cannot run %d-to-%d in a chain", core.ErrChannelLayout, fx, numOut, numOut)
		}
		if !fx.SupportsSampleRate(sampleRateHz) {
			return fmt.Errorf("%w: %s rejects %v Hz", core.ErrSampleRate, fx, sampleRateHz)
		}
		if err := effect.PrepareWithAutomation(fx, sampleRateHz, numOut, numOut, maxBlockFrames); err != nil {
			return err
		}
	}

	return nil
}

func (c *Chain[S]) RenderNextBlock(out *buffer.Buffer[S]) error {
	if err := c.source.RenderNextBlock(out); err != nil {
		return err
	}

	for _, fx := range c.effects {
		if err := effect.ProcessWithAutomation(fx, out, out); err != nil {
			return err
		}
	}

	return nil
}

func (c *Chain[S]) Reset() {
	c.source.Reset()
	for _, fx := range c.effects {
		effect.ResetWithAutomation(fx)
	}
}

func (c *Chain[S]) Clone() Signal[S] {
	clone := &Chain[S]{
		source:  c.source.Clone(),
		effects: make([]effect.Effect[S], len(c.effects)),
	}
	for i, fx := range c.effects {
		clone.effects[i] = fx.Clone()
	}

	return clone
}

func (c *Chain[S]) String() string {
	s := c.source.String()
	for _, fx := range c.effects {
		s += " -> " + fx.String()
	}

	return s
}
