package match

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
)

const defaultPeakToleranceLinear = 1e-3

// PeaksBelow checks per block that no sample exceeds a threshold given in
// decibels. The tolerance is absolute and linear, added on top of the
// converted threshold.
type PeaksBelow[S core.Sample] struct {
	thresholdDB     float64
	toleranceLinear float64
	limitLinear     float64

	details Details
}

// NewPeaksBelow returns a peak threshold matcher. Pass a negative
// tolerance to use the 1e-3 default.
func NewPeaksBelow[S core.Sample](thresholdDB, toleranceLinear float64) *PeaksBelow[S] {
	if toleranceLinear < 0 {
		toleranceLinear = defaultPeakToleranceLinear
	}

	return &PeaksBelow[S]{
		thresholdDB:     thresholdDB,
		toleranceLinear: toleranceLinear,
		limitLinear:     core.DBToLinear(thresholdDB) + toleranceLinear,
	}
}

func (*PeaksBelow[S]) Prepare(float64, int, int) error {
	return nil
}

func (m *PeaksBelow[S]) Match(observed *buffer.Buffer[S]) bool {
	for channel := 0; channel < observed.NumChannels(); channel++ {
		for frame, v := range observed.Channel(channel) {
			if math.Abs(float64(v)) > m.limitLinear {
				m.details = Details{
					Frame:       frame,
					Channel:     channel,
					Description: fmt.Sprintf("sample exceeds %v (%.2f dB + %v)", m.limitLinear, m.thresholdDB, m.toleranceLinear),
				}

				return false
			}
		}
	}

	return true
}

func (*PeaksBelow[S]) PerBlock() bool {
	return true
}

func (m *PeaksBelow[S]) Reset() {
	m.details = Details{}
}

func (m *PeaksBelow[S]) FailureDetails() Details {
	return m.details
}

func (m *PeaksBelow[S]) Clone() Matcher[S] {
	clone := *m
	return &clone
}

func (m *PeaksBelow[S]) String() string {
	return fmt.Sprintf("PeaksBelow(%.2f, %v)", m.thresholdDB, m.toleranceLinear)
}

// PeaksAt checks over the whole signal that the largest absolute sample
// lands on a target level given in decibels, within an absolute linear
// tolerance.
type PeaksAt[S core.Sample] struct {
	targetDB        float64
	targetLinear    float64
	toleranceLinear float64

	details Details
}

// NewPeaksAt returns a peak level matcher. Pass a negative tolerance to
// use the 1e-3 default.
func NewPeaksAt[S core.Sample](targetDB, toleranceLinear float64) *PeaksAt[S] {
	if toleranceLinear < 0 {
		toleranceLinear = defaultPeakToleranceLinear
	}

	return &PeaksAt[S]{
		targetDB:        targetDB,
		targetLinear:    core.DBToLinear(targetDB),
		toleranceLinear: toleranceLinear,
	}
}

func (*PeaksAt[S]) Prepare(float64, int, int) error {
	return nil
}

func (m *PeaksAt[S]) Match(observed *buffer.Buffer[S]) bool {
	peak, channel, frame := observed.Peak()
	if math.Abs(peak-m.targetLinear) < m.toleranceLinear {
		return true
	}

	m.details = Details{
		Frame:       frame,
		Channel:     channel,
		Description: fmt.Sprintf("peak %v is not within %v of %v (%.2f dB)", peak, m.toleranceLinear, m.targetLinear, m.targetDB),
	}

	return false
}

func (*PeaksAt[S]) PerBlock() bool {
	return false
}

func (m *PeaksAt[S]) Reset() {
	m.details = Details{}
}

func (m *PeaksAt[S]) FailureDetails() Details {
	return m.details
}

func (m *PeaksAt[S]) Clone() Matcher[S] {
	clone := *m
	return &clone
}

func (m *PeaksAt[S]) String() string {
	return fmt.Sprintf("PeaksAt(%.2f, %v)", m.targetDB, m.toleranceLinear)
}
