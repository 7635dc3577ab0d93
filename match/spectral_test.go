package match

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
	"github.com/cwbudde/algo-audiotest/dsp/sig"
)

func renderSine(t *testing.T, freqHz, sampleRate float64, frames int) *buffer.Buffer[float64] {
	t.Helper()

	s, err := sig.NewSineWave[float64](freqHz, 0)
	if err != nil {
		t.Fatalf("NewSineWave() error = %v", err)
	}
	if err := s.Prepare(sampleRate, 1, frames); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	s.Reset()

	out := buffer.New[float64](1, frames)
	if err := s.RenderNextBlock(out); err != nil {
		t.Fatalf("RenderNextBlock() error = %v", err)
	}

	return out
}

func TestSpectralPeakAtRejectsBadArgs(t *testing.T) {
	if _, err := NewSpectralPeakAt[float64](0, 10); !errors.Is(err, core.ErrValue) {
		t.Fatalf("zero target error = %v, want ErrValue", err)
	}
	if _, err := NewSpectralPeakAt[float64](1000, 0); !errors.Is(err, core.ErrValue) {
		t.Fatalf("zero tolerance error = %v, want ErrValue", err)
	}
}

func TestSpectralPeakAtFindsDominantFrequency(t *testing.T) {
	m, err := NewSpectralPeakAt[float64](2000, 25)
	if err != nil {
		t.Fatalf("NewSpectralPeakAt() error = %v", err)
	}
	if err := m.Prepare(44100, 1, 4096); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	// 4096 frames at 44.1 kHz gives about 10.8 Hz per bin.
	observed := renderSine(t, 2000, 44100, 4096)
	if !m.Match(observed) {
		t.Fatalf("Match() = false: %s", m.FailureDetails().Description)
	}
}

func TestSpectralPeakAtRejectsWrongFrequency(t *testing.T) {
	m, err := NewSpectralPeakAt[float64](440, 25)
	if err != nil {
		t.Fatalf("NewSpectralPeakAt() error = %v", err)
	}
	if err := m.Prepare(44100, 1, 4096); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	observed := renderSine(t, 2000, 44100, 4096)
	if m.Match(observed) {
		t.Fatal("Match() = true for a sine far off target")
	}
	if m.FailureDetails().Description == "" {
		t.Fatal("FailureDetails() missing description")
	}
}

func TestSpectralPeakAtEmptyBuffer(t *testing.T) {
	m, err := NewSpectralPeakAt[float64](1000, 10)
	if err != nil {
		t.Fatalf("NewSpectralPeakAt() error = %v", err)
	}
	if err := m.Prepare(44100, 1, 64); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if m.Match(buffer.New[float64](1, 0)) {
		t.Fatal("Match() = true for empty audio")
	}
}

func TestSpectralPeakAtIsWholeSignal(t *testing.T) {
	m, err := NewSpectralPeakAt[float64](1000, 10)
	if err != nil {
		t.Fatalf("NewSpectralPeakAt() error = %v", err)
	}
	if m.PerBlock() {
		t.Fatal("SpectralPeakAt should require the whole signal")
	}
}

func TestSpectralPeakAtString(t *testing.T) {
	m, err := NewSpectralPeakAt[float64](2000, 25)
	if err != nil {
		t.Fatalf("NewSpectralPeakAt() error = %v", err)
	}
	if got := m.String(); got != "SpectralPeakAt(2000.0, 25.0)" {
		t.Fatalf("String() = %q", got)
	}
}
