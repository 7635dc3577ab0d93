package envelope

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiotest/dsp/core"
)

// Shape selects the interpolation curve of a ramp segment.
type Shape int

const (
	// Linear interpolates in a straight line from begin to target.
	Linear Shape = iota

	// Exponential follows value(t) = begin * (target/begin)^(t/duration).
	// Falls back to linear when begin or target is not strictly positive.
	Exponential

	// SCurve follows the smoothstep polynomial 3t^2 - 2t^3.
	SCurve
)

const flatRatioEpsilon = 1e-9

type segment struct {
	durationSeconds float64
	targetValue     float64
	shape           Shape
	isHold          bool
}

// Segmented is an envelope built from an ordered list of hold and ramp
// segments. After the last segment ends the value stays clamped to the
// final target. The zero value is not usable; construct with NewSegmented.
type Segmented struct {
	resetValue float64
	endValue   float64
	segments   []segment

	beginValue       float64
	currentValue     float64
	currentTime      float64
	currentSegment   int
	frameTimeSeconds float64
}

// NewSegmented returns an envelope that starts at startValue and holds it
// until segments are appended with Hold and RampTo.
func NewSegmented(startValue float64) *Segmented {
	return &Segmented{
		resetValue:       startValue,
		endValue:         startValue,
		beginValue:       startValue,
		currentValue:     startValue,
		frameTimeSeconds: 1.0 / 44100.0,
	}
}

// Hold appends a segment that keeps the current end value for the given
// duration. Negative durations are treated as zero. Returns the receiver
// for chaining.
func (e *Segmented) Hold(durationSeconds float64) *Segmented {
	if durationSeconds < 0 {
		durationSeconds = 0
	}

	e.segments = append(e.segments, segment{
		durationSeconds: durationSeconds,
		targetValue:     e.endValue,
		shape:           Linear,
		isHold:          true,
	})

	return e
}

// RampTo appends a segment that moves to targetValue over the given
// duration using shape. Negative durations are treated as zero. Returns the
// receiver for chaining.
func (e *Segmented) RampTo(targetValue, durationSeconds float64, shape Shape) *Segmented {
	if durationSeconds < 0 {
		durationSeconds = 0
	}

	e.segments = append(e.segments, segment{
		durationSeconds: durationSeconds,
		targetValue:     targetValue,
		shape:           shape,
	})
	e.endValue = targetValue

	return e
}

// Prepare implements Envelope.
func (e *Segmented) Prepare(sampleRateHz float64, _ int) error {
	if sampleRateHz <= 0 {
		return fmt.Errorf("%w: sample rate %v Hz", core.ErrValue, sampleRateHz)
	}

	e.frameTimeSeconds = 1.0 / sampleRateHz

	return nil
}

// RenderNextBlock implements Envelope.
func (e *Segmented) RenderNextBlock(out []float64) {
	for i := range out {
		e.advance()
		out[i] = e.currentValue
	}
}

// Reset implements Envelope. It rewinds the playhead and restores both the
// start value and the first segment's begin value.
func (e *Segmented) Reset() {
	e.currentTime = 0
	e.currentSegment = 0
	e.currentValue = e.resetValue
	e.beginValue = e.resetValue
}

// Clone implements Envelope.
func (e *Segmented) Clone() Envelope {
	clone := *e
	clone.segments = append([]segment(nil), e.segments...)

	return &clone
}

func (e *Segmented) advance() {
	e.currentTime += e.frameTimeSeconds

	for e.currentSegment < len(e.segments) {
		seg := e.segments[e.currentSegment]

		if e.currentTime < seg.durationSeconds {
			e.currentValue = e.evaluate(seg)
			return
		}

		e.currentTime -= seg.durationSeconds
		e.beginValue = seg.targetValue
		e.currentSegment++
	}

	if len(e.segments) > 0 {
		e.currentValue = e.segments[len(e.segments)-1].targetValue
	}
}

func (e *Segmented) evaluate(seg segment) float64 {
	if seg.isHold {
		return seg.targetValue
	}

	t := e.currentTime / seg.durationSeconds

	switch seg.shape {
	case Exponential:
		if e.beginValue <= 0 || seg.targetValue <= 0 {
			break
		}

		ratio := seg.targetValue / e.beginValue
		if math.Abs(ratio-1) < flatRatioEpsilon {
			return e.beginValue
		}

		return e.beginValue * math.Pow(ratio, t)

	case SCurve:
		smoothstep := t * t * (3 - 2*t)
		return e.beginValue + (seg.targetValue-e.beginValue)*smoothstep

	case Linear:
	}

	return e.beginValue + (seg.targetValue-e.beginValue)*t
}
