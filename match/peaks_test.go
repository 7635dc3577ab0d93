package match

import (
	"testing"

	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
)

func bufferWithPeak(peak float64, channel, frame int) *buffer.Buffer[float64] {
	b := buffer.New[float64](2, 16)
	b.Channel(channel)[frame] = peak
	return b
}

func TestPeaksBelowPasses(t *testing.T) {
	m := NewPeaksBelow[float64](-6, 1e-3)
	if err := m.Prepare(44100, 2, 16); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	quiet := bufferWithPeak(core.DBToLinear(-6), 0, 3)
	if !m.Match(quiet) {
		t.Fatal("Match() = false for signal at the threshold within tolerance")
	}
}

func TestPeaksBelowFailsAndRecordsOffender(t *testing.T) {
	m := NewPeaksBelow[float64](-6, 1e-3)

	hot := bufferWithPeak(-0.9, 1, 7)
	if m.Match(hot) {
		t.Fatal("Match() = true for signal above the threshold")
	}

	d := m.FailureDetails()
	if d.Channel != 1 || d.Frame != 7 {
		t.Fatalf("FailureDetails() = channel %d frame %d, want channel 1 frame 7", d.Channel, d.Frame)
	}
	if d.Description == "" {
		t.Fatal("FailureDetails() missing description")
	}
}

func TestPeaksBelowToleranceIsAbsoluteLinear(t *testing.T) {
	m := NewPeaksBelow[float64](-6, 0.01)

	limit := core.DBToLinear(-6) + 0.01
	inside := bufferWithPeak(limit-1e-9, 0, 0)
	if !m.Match(inside) {
		t.Fatal("Match() = false just inside the tolerance")
	}

	outside := bufferWithPeak(limit+1e-9, 0, 0)
	if m.Match(outside) {
		t.Fatal("Match() = true just outside the tolerance")
	}
}

func TestPeaksBelowIsPerBlock(t *testing.T) {
	if !NewPeaksBelow[float64](0, -1).PerBlock() {
		t.Fatal("PeaksBelow should operate per block")
	}
}

func TestPeaksBelowDefaultTolerance(t *testing.T) {
	m := NewPeaksBelow[float64](0, -1)
	if got := m.String(); got != "PeaksBelow(0.00, 0.001)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestPeaksAtPasses(t *testing.T) {
	m := NewPeaksAt[float64](-3, 1e-3)
	if err := m.Prepare(44100, 2, 16); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	b := bufferWithPeak(core.DBToLinear(-3), 0, 5)
	if !m.Match(b) {
		t.Fatal("Match() = false for peak on target")
	}
}

func TestPeaksAtFailsQuietAndHot(t *testing.T) {
	m := NewPeaksAt[float64](-3, 1e-3)

	if m.Match(bufferWithPeak(core.DBToLinear(-9), 1, 2)) {
		t.Fatal("Match() = true for a too quiet signal")
	}
	d := m.FailureDetails()
	if d.Channel != 1 || d.Frame != 2 {
		t.Fatalf("FailureDetails() = channel %d frame %d, want channel 1 frame 2", d.Channel, d.Frame)
	}

	if m.Match(bufferWithPeak(1, 0, 0)) {
		t.Fatal("Match() = true for a too hot signal")
	}
}

func TestPeaksAtIsWholeSignal(t *testing.T) {
	if NewPeaksAt[float64](0, -1).PerBlock() {
		t.Fatal("PeaksAt should require the whole signal")
	}
}

func TestPeaksAtString(t *testing.T) {
	if got := NewPeaksAt[float64](-3, 1e-3).String(); got != "PeaksAt(-3.00, 0.001)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestPeaksCloneResets(t *testing.T) {
	m := NewPeaksBelow[float64](-6, 1e-3)
	m.Match(bufferWithPeak(1, 1, 7))

	clone := m.Clone()
	clone.Reset()
	if d := clone.FailureDetails(); d.Frame != 0 || d.Channel != 0 || d.Description != "" {
		t.Fatal("Reset should clear failure details")
	}
	if d := m.FailureDetails(); d.Frame != 7 {
		t.Fatal("resetting the clone should not touch the original")
	}
}
