package effect

import (
	"fmt"

	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
	"github.com/cwbudde/algo-audiotest/dsp/envelope"
)

// HardClipThreshold is the clip threshold parameter of HardClip, in
// decibels. It cannot be automated.
const HardClipThreshold = 0

// HardClip limits every sample to the symmetric range given by a threshold
// in decibels. Supports n-to-n layouts only.
type HardClip[S core.Sample] struct {
	Automation

	initialThresholdDB float64
	thresholdLinear    float64
}

// NewHardClip returns a clipper with the threshold in decibels.
func NewHardClip[S core.Sample](thresholdDB float64) *HardClip[S] {
	return &HardClip[S]{
		initialThresholdDB: thresholdDB,
		thresholdLinear:    core.DBToLinear(thresholdDB),
	}
}

func (h *HardClip[S]) Prepare(_ float64, _, _, _ int) error {
	return nil
}

func (h *HardClip[S]) Process(in, out *buffer.Buffer[S], _ envelope.Buffers) error {
	if err := checkLayout[S](h, in, out); err != nil {
		return err
	}

	threshold := S(h.thresholdLinear)
	for channel := 0; channel < out.NumChannels(); channel++ {
		src := in.Channel(channel)
		dst := out.Channel(channel)
		for i, v := range src {
			dst[i] = core.Clamp(v, -threshold, threshold)
		}
	}

	return nil
}

func (h *HardClip[S]) Reset() {}

func (h *HardClip[S]) SetValue(param int, value float64) {
	if param == HardClipThreshold {
		h.thresholdLinear = core.DBToLinear(value)
	}
}

func (h *HardClip[S]) Value(param int) float64 {
	if param == HardClipThreshold {
		return core.LinearToDB(h.thresholdLinear)
	}

	return 0
}

func (h *HardClip[S]) SupportsChannelLayout(numIn, numOut int) bool {
	return numIn == numOut
}

func (h *HardClip[S]) SupportsSampleRate(rateHz float64) bool {
	return rateHz > 0
}

func (h *HardClip[S]) SupportsEnvelopeFor(int) bool {
	return false
}

func (h *HardClip[S]) Clone() Effect[S] {
	return &HardClip[S]{
		Automation:         h.CloneAutomation(),
		initialThresholdDB: h.initialThresholdDB,
		thresholdLinear:    h.thresholdLinear,
	}
}

func (h *HardClip[S]) String() string {
	return fmt.Sprintf("HardClip(%.2f)", h.initialThresholdDB)
}
