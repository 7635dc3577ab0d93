package match

import (
	"testing"

	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/effect"
	"github.com/cwbudde/algo-audiotest/dsp/sig"
)

func renderBlocks(t *testing.T, s sig.Signal[float64], sampleRate float64, channels, blockFrames, blocks int) []*buffer.Buffer[float64] {
	t.Helper()

	if err := s.Prepare(sampleRate, channels, blockFrames); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	s.Reset()

	out := make([]*buffer.Buffer[float64], blocks)
	for i := range out {
		out[i] = buffer.New[float64](channels, blockFrames)
		if err := s.RenderNextBlock(out[i]); err != nil {
			t.Fatalf("RenderNextBlock() error = %v", err)
		}
	}

	return out
}

func TestEqualsToMatchesIdenticalSignal(t *testing.T) {
	observedSrc, err := sig.NewSineWave[float64](440, 0)
	if err != nil {
		t.Fatalf("NewSineWave() error = %v", err)
	}
	referenceSrc, err := sig.NewSineWave[float64](440, 0)
	if err != nil {
		t.Fatalf("NewSineWave() error = %v", err)
	}

	m := NewEqualsTo[float64](referenceSrc, 1e-8)
	if err := m.Prepare(44100, 1, 32); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	m.Reset()

	for i, block := range renderBlocks(t, observedSrc, 44100, 1, 32, 4) {
		if !m.Match(block) {
			t.Fatalf("Match() = false at block %d for identical signals", i)
		}
	}
}

func TestEqualsToTracksBlockBoundaries(t *testing.T) {
	// The reference renders in lockstep with the observed signal, so
	// later blocks must line up even though each Match call only sees
	// one block.
	observedSrc := sig.NewWhiteNoise[float64](21)
	referenceSrc := sig.NewWhiteNoise[float64](21)

	m := NewEqualsTo[float64](sig.Signal[float64](referenceSrc), 1e-12)
	if err := m.Prepare(44100, 2, 16); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	m.Reset()

	for i, block := range renderBlocks(t, observedSrc, 44100, 2, 16, 5) {
		if !m.Match(block) {
			t.Fatalf("Match() = false at block %d; reference lost sync", i)
		}
	}
}

func TestEqualsToDetectsMismatch(t *testing.T) {
	referenceSrc := sig.NewSilence[float64]()

	m := NewEqualsTo[float64](sig.Signal[float64](referenceSrc), 1e-8)
	if err := m.Prepare(44100, 1, 8); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	m.Reset()

	observed := buffer.New[float64](1, 8)
	observed.Channel(0)[5] = 0.25
	if m.Match(observed) {
		t.Fatal("Match() = true for differing signals")
	}

	d := m.FailureDetails()
	if d.Frame != 5 || d.Channel != 0 {
		t.Fatalf("FailureDetails() = channel %d frame %d, want channel 0 frame 5", d.Channel, d.Frame)
	}
}

func TestEqualsToReferenceMayCarryChain(t *testing.T) {
	src, err := sig.NewSineWave[float64](1000, 0)
	if err != nil {
		t.Fatalf("NewSineWave() error = %v", err)
	}
	reference := sig.FollowedBy[float64](src, effect.NewGainDB[float64](-6))

	observedSrc, err := sig.NewSineWave[float64](1000, 0)
	if err != nil {
		t.Fatalf("NewSineWave() error = %v", err)
	}
	observed := sig.FollowedBy[float64](observedSrc, effect.NewGainDB[float64](-6))

	m := NewEqualsTo[float64](sig.Signal[float64](reference), 1e-9)
	if err := m.Prepare(44100, 1, 64); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	m.Reset()

	for i, block := range renderBlocks(t, observed, 44100, 1, 64, 3) {
		if !m.Match(block) {
			t.Fatalf("Match() = false at block %d for identical chains", i)
		}
	}
}

func TestEqualsToOwnsItsReference(t *testing.T) {
	referenceSrc := sig.NewWhiteNoise[float64](3)
	m := NewEqualsTo[float64](sig.Signal[float64](referenceSrc), 1e-12)

	// Advancing the caller's signal must not affect the matcher's copy.
	observed := renderBlocks(t, referenceSrc, 44100, 1, 16, 2)

	if err := m.Prepare(44100, 1, 16); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	m.Reset()

	for i, block := range observed {
		if !m.Match(block) {
			t.Fatalf("Match() = false at block %d; matcher shares caller state", i)
		}
	}
}

func TestEqualsToUnexpectedChannelCount(t *testing.T) {
	m := NewEqualsTo[float64](sig.NewSilence[float64](), 1e-9)
	if err := m.Prepare(44100, 1, 16); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	m.Reset()

	// A wider buffer than negotiated still gets a matching-shape
	// reference block instead of a pooled mono one.
	if !m.Match(buffer.New[float64](2, 16)) {
		t.Fatal("Match() = false for stereo silence against a silence reference")
	}

	observed := buffer.New[float64](2, 16)
	observed.Channel(1)[7] = 0.5
	if m.Match(observed) {
		t.Fatal("Match() = true for a nonzero second channel")
	}
	if d := m.FailureDetails(); d.Channel != 1 || d.Frame != 7 {
		t.Fatalf("FailureDetails() = channel %d frame %d, want channel 1 frame 7", d.Channel, d.Frame)
	}
}

func TestEqualsToResetRewindsReference(t *testing.T) {
	referenceSrc := sig.NewWhiteNoise[float64](8)
	m := NewEqualsTo[float64](sig.Signal[float64](referenceSrc), 1e-12)
	if err := m.Prepare(44100, 1, 16); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	observedSrc := sig.NewWhiteNoise[float64](8)
	blocks := renderBlocks(t, observedSrc, 44100, 1, 16, 2)

	m.Reset()
	if !m.Match(blocks[0]) || !m.Match(blocks[1]) {
		t.Fatal("first run should match")
	}

	m.Reset()
	if !m.Match(blocks[0]) {
		t.Fatal("Reset should rewind the reference signal")
	}
}
