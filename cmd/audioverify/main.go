// Command audioverify runs a self-contained verification scenario: a sine
// wave is attenuated, pushed through a hard clipper and checked for peak
// level and dominant frequency. The rendered output can be saved as a WAV
// file and a waveform SVG.
//
// Usage:
//
//	audioverify [flags]
//
// Examples:
//
//	audioverify
//	audioverify -freq 1000 -gain -1.5 -threshold -6
//	audioverify -duration 2 -outdir /tmp/audioverify -save always
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-audiotest/config"
	"github.com/cwbudde/algo-audiotest/dsp/effect"
	"github.com/cwbudde/algo-audiotest/dsp/sig"
	"github.com/cwbudde/algo-audiotest/harness"
	"github.com/cwbudde/algo-audiotest/match"
	"github.com/cwbudde/algo-audiotest/wavio"
)

func main() {
	rate := flag.Float64("rate", 44100, "sample rate in Hz")
	block := flag.Int("block", 1024, "block size in frames")
	duration := flag.Float64("duration", 1.0, "rendered length in seconds")
	freq := flag.Float64("freq", 441, "sine frequency in Hz")
	gain := flag.Float64("gain", -3, "gain before the clipper in dB")
	threshold := flag.Float64("threshold", -6, "clip threshold in dB")
	outdir := flag.String("outdir", ".", "directory for saved artifacts")
	save := flag.String("save", "fails", "when to save output and plot: always, fails or never")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: audioverify [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders a gain-and-clip scenario and verifies the output.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	saveMode, err := parseSaveMode(*save)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	source, err := sig.NewSineWave[float64](*freq, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// The clipper only engages when the attenuated sine still exceeds the
	// threshold; either way the output peak is the lower of the two levels.
	wantPeakDB := *gain
	if *threshold < wantPeakDB {
		wantPeakDB = *threshold
	}

	spectral, err := match.NewSpectralPeakAt[float64](*freq, *rate/float64(*block))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	result, err := harness.ProcessAudioWith[float64](effect.NewHardClip[float64](*threshold)).
		WithConfig(config.New(config.WithDataRootPath(*outdir))).
		WithSampleRate(*rate).
		WithBlockSize(*block).
		WithDuration(*duration).
		WithInputSignal(sig.FollowedBy[float64](source, effect.NewGainDB[float64](*gain))).
		WithLabel("gain and clip scenario").
		ExpectTrue(match.NewPeaksAt[float64](wantPeakDB, -1)).
		ExpectTrue(match.NewPeaksBelow[float64](wantPeakDB, -1)).
		ExpectTrue(spectral).
		SaveOutputTo("audioverify.wav", saveMode, wavio.Float32).
		SavePlotTo("audioverify.svg", saveMode).
		Process()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if result.Failed() {
		for _, msg := range result.Failures {
			fmt.Fprintf(os.Stderr, "%s\n\n", msg)
		}
		os.Exit(1)
	}

	fmt.Printf("all checks passed: %d frames at %.0f Hz, peak target %.2f dB\n",
		result.Output.NumFrames(), *rate, wantPeakDB)
}

func parseSaveMode(mode string) (harness.Save, error) {
	switch mode {
	case "always":
		return harness.SaveAlways, nil
	case "fails":
		return harness.SaveWhenFails, nil
	case "never":
		return harness.SaveNever, nil
	}

	return harness.SaveNever, fmt.Errorf("unknown save mode %q (want always, fails or never)", mode)
}
