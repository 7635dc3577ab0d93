package effect

import (
	"fmt"

	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
	"github.com/cwbudde/algo-audiotest/dsp/envelope"
)

// GainDBGain is the automatable gain parameter of GainDB, in decibels.
const GainDBGain = 0

// GainDB applies gain specified in decibels. Envelope values are decibels
// and converted per frame. Supports n-to-n layouts and mono multiplexing.
type GainDB[S core.Sample] struct {
	Automation

	initialDB  float64
	gainLinear float64
	dbScratch  []float64
}

// NewGainDB returns a gain effect set to db decibels.
func NewGainDB[S core.Sample](db float64) *GainDB[S] {
	return &GainDB[S]{
		initialDB:  db,
		gainLinear: core.DBToLinear(db),
	}
}

func (g *GainDB[S]) Prepare(_ float64, _, _, maxBlockFrames int) error {
	if g.HasEnvelopeFor(GainDBGain) {
		g.dbScratch = make([]float64, maxBlockFrames)
	} else {
		g.dbScratch = nil
	}

	return nil
}

func (g *GainDB[S]) Process(in, out *buffer.Buffer[S], env envelope.Buffers) error {
	if err := checkLayout[S](g, in, out); err != nil {
		return err
	}

	values, hasEnvelope := env[GainDBGain]
	if !hasEnvelope {
		return processGain(in, out, g.gainLinear, nil)
	}

	if len(g.dbScratch) < len(values) {
		return fmt.Errorf("%w: envelope block of %d frames exceeds prepared maximum %d", core.ErrSize, len(values), len(g.dbScratch))
	}

	linear := g.dbScratch[:len(values)]
	for i, db := range values {
		linear[i] = core.DBToLinear(db)
	}

	return processGain(in, out, 0, linear)
}

func (g *GainDB[S]) Reset() {}

func (g *GainDB[S]) SetValue(param int, value float64) {
	if param == GainDBGain {
		g.gainLinear = core.DBToLinear(value)
	}
}

func (g *GainDB[S]) Value(param int) float64 {
	if param == GainDBGain {
		return core.LinearToDB(g.gainLinear)
	}

	return 0
}

func (g *GainDB[S]) SupportsChannelLayout(numIn, numOut int) bool {
	return numIn == numOut || numIn == 1
}

func (g *GainDB[S]) SupportsSampleRate(rateHz float64) bool {
	return rateHz > 0
}

func (g *GainDB[S]) SupportsEnvelopeFor(param int) bool {
	return param == GainDBGain
}

func (g *GainDB[S]) Clone() Effect[S] {
	clone := &GainDB[S]{
		Automation: g.CloneAutomation(),
		initialDB:  g.initialDB,
		gainLinear: g.gainLinear,
	}

	return clone
}

func (g *GainDB[S]) String() string {
	return fmt.Sprintf("GainDB(%.2f)", g.initialDB)
}

// GainLinearGain is the automatable gain parameter of GainLinear, as a
// plain ratio.
const GainLinearGain = 0

// GainLinear applies gain specified as a linear ratio. Envelope values are
// used directly. Supports n-to-n layouts and mono multiplexing.
type GainLinear[S core.Sample] struct {
	Automation

	initialGain float64
	gain        float64
}

// NewGainLinear returns a gain effect set to the given ratio.
func NewGainLinear[S core.Sample](gain float64) *GainLinear[S] {
	return &GainLinear[S]{
		initialGain: gain,
		gain:        gain,
	}
}

func (g *GainLinear[S]) Prepare(_ float64, _, _, _ int) error {
	return nil
}

func (g *GainLinear[S]) Process(in, out *buffer.Buffer[S], env envelope.Buffers) error {
	if err := checkLayout[S](g, in, out); err != nil {
		return err
	}

	return processGain(in, out, g.gain, env[GainLinearGain])
}

func (g *GainLinear[S]) Reset() {}

func (g *GainLinear[S]) SetValue(param int, value float64) {
	if param == GainLinearGain {
		g.gain = value
	}
}

func (g *GainLinear[S]) Value(param int) float64 {
	if param == GainLinearGain {
		return g.gain
	}

	return 0
}

func (g *GainLinear[S]) SupportsChannelLayout(numIn, numOut int) bool {
	return numIn == numOut || numIn == 1
}

func (g *GainLinear[S]) SupportsSampleRate(rateHz float64) bool {
	return rateHz > 0
}

func (g *GainLinear[S]) SupportsEnvelopeFor(param int) bool {
	return param == GainLinearGain
}

func (g *GainLinear[S]) Clone() Effect[S] {
	return &GainLinear[S]{
		Automation:  g.CloneAutomation(),
		initialGain: g.initialGain,
		gain:        g.gain,
	}
}

func (g *GainLinear[S]) String() string {
	return fmt.Sprintf("GainLinear(%.3f)", g.initialGain)
}

// processGain applies either a constant gain or per-frame values to every
// output channel. When the input is mono and the output is not, the single
// input channel is multiplexed onto all outputs.
func processGain[S core.Sample](in, out *buffer.Buffer[S], gain float64, values []float64) error {
	multiplex := in.NumChannels() != out.NumChannels()

	for channel := 0; channel < out.NumChannels(); channel++ {
		src := channel
		if multiplex {
			src = 0
		}

		if values != nil {
			mulBlock(out.Channel(channel), in.Channel(src), values)
		} else {
			scaleBlock(out.Channel(channel), in.Channel(src), gain)
		}
	}

	return nil
}
