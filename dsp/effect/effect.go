package effect

import (
	"fmt"

	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
	"github.com/cwbudde/algo-audiotest/dsp/envelope"
)

// Effect processes audio block by block. Implementations embed Automation
// to gain envelope support and to satisfy the host method.
//
// Process must tolerate in and out aliasing the same buffer (in-place use)
// and must not retain either buffer past the call.
type Effect[S core.Sample] interface {
	// Prepare negotiates the processing context before the first block.
	Prepare(sampleRateHz float64, numIn, numOut, maxBlockFrames int) error

	// Process renders one block from in to out. env carries per-frame
	// automation values for parameters with attached envelopes; envelope
	// values take precedence over values set with SetValue.
	Process(in, out *buffer.Buffer[S], env envelope.Buffers) error

	// Reset restores internal processing state without touching
	// parameter values.
	Reset()

	// SetValue sets a parameter; unknown ids are ignored.
	SetValue(param int, value float64)

	// Value reads a parameter; unknown ids return 0.
	Value(param int) float64

	SupportsChannelLayout(numIn, numOut int) bool
	SupportsSampleRate(rateHz float64) bool
	SupportsEnvelopeFor(param int) bool

	// Clone returns an independent deep copy, attached envelopes included.
	Clone() Effect[S]

	fmt.Stringer

	automation() *Automation
}

// Automation hosts the envelopes attached to an effect's parameters.
// Embed it in an effect implementation; the package-level helpers drive
// envelope preparation, per-block rendering and reset.
type Automation struct {
	envelopes map[int]envelope.Envelope
	scratch   map[int][]float64
}

func (a *Automation) automation() *Automation { return a }

// HasEnvelopeFor reports whether an envelope is attached to param.
func (a *Automation) HasEnvelopeFor(param int) bool {
	_, ok := a.envelopes[param]
	return ok
}

// CloneAutomation returns a deep copy for use in Clone implementations.
func (a *Automation) CloneAutomation() Automation {
	clone := Automation{}
	if a.envelopes != nil {
		clone.envelopes = make(map[int]envelope.Envelope, len(a.envelopes))
		for param, env := range a.envelopes {
			clone.envelopes[param] = env.Clone()
		}
	}

	return clone
}

// Automate attaches env to the given parameter of e. Fails with
// ErrUnsupported when the effect does not accept automation for that
// parameter. A second envelope on the same parameter replaces the first.
func Automate[S core.Sample](e Effect[S], param int, env envelope.Envelope) error {
	if !e.SupportsEnvelopeFor(param) {
		return fmt.Errorf("%w: %s does not automate parameter %d", core.ErrUnsupported, e, param)
	}

	host := e.automation()
	if host.envelopes == nil {
		host.envelopes = make(map[int]envelope.Envelope)
	}
	host.envelopes[param] = env

	return nil
}

// PrepareWithAutomation prepares the effect and its attached envelopes,
// rebuilding the per-parameter scratch buffers for maxBlockFrames.
func PrepareWithAutomation[S core.Sample](e Effect[S], sampleRateHz float64, numIn, numOut, maxBlockFrames int) error {
	if err := e.Prepare(sampleRateHz, numIn, numOut, maxBlockFrames); err != nil {
		return err
	}

	host := e.automation()
	host.scratch = nil
	if len(host.envelopes) > 0 {
		host.scratch = make(map[int][]float64, len(host.envelopes))
		for param, env := range host.envelopes {
			if err := env.Prepare(sampleRateHz, maxBlockFrames); err != nil {
				return fmt.Errorf("envelope for parameter %d: %w", param, err)
			}
			host.scratch[param] = make([]float64, maxBlockFrames)
		}
	}

	return nil
}

// ProcessWithAutomation renders one envelope value per frame for each
// attached envelope, then processes the block.
func ProcessWithAutomation[S core.Sample](e Effect[S], in, out *buffer.Buffer[S]) error {
	host := e.automation()

	var env envelope.Buffers
	if len(host.envelopes) > 0 {
		frames := in.NumFrames()
		env = make(envelope.Buffers, len(host.envelopes))
		for param, envlp := range host.envelopes {
			values := host.scratch[param]
			if len(values) < frames {
				return fmt.Errorf("%w: block of %d frames exceeds prepared maximum %d", core.ErrSize, frames, len(values))
			}
			values = values[:frames]
			envlp.RenderNextBlock(values)
			env[param] = values
		}
	}

	return e.Process(in, out, env)
}

// ResetWithAutomation resets the effect and rewinds its envelopes.
func ResetWithAutomation[S core.Sample](e Effect[S]) {
	e.Reset()
	for _, env := range e.automation().envelopes {
		env.Reset()
	}
}

func checkLayout[S core.Sample](e Effect[S], in, out *buffer.Buffer[S]) error {
	if !e.SupportsChannelLayout(in.NumChannels(), out.NumChannels()) {
		return fmt.Errorf("%w: %s cannot process %d in, %d out", core.ErrChannelLayout, e, in.NumChannels(), out.NumChannels())
	}
	if in.NumFrames() != out.NumFrames() {
		return fmt.Errorf("%w: %d input frames, %d output frames", core.ErrSize, in.NumFrames(), out.NumFrames())
	}

	return nil
}
