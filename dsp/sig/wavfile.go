package sig

import (
	"fmt"

	"github.com/cwbudde/algo-audiotest/config"
	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
	"github.com/cwbudde/algo-audiotest/wavio"
)

// WavFileOption mutates WAV playback construction parameters.
type WavFileOption func(*wavFileConfig)

type wavFileConfig struct {
	loop bool
	cfg  config.Config
}

// WithWavFileLoop wraps the playback cursor at end of file instead of
// padding silence.
func WithWavFileLoop() WavFileOption {
	return func(c *wavFileConfig) {
		c.loop = true
	}
}

// WithWavFileConfig sets the engine configuration used to resolve
// relative paths.
func WithWavFileConfig(cfg config.Config) WavFileOption {
	return func(c *wavFileConfig) {
		c.cfg = cfg
	}
}

// WavFile plays back a WAV file decoded fully at construction. The
// negotiated layout must match the file exactly; there is no resampling
// or channel mapping.
type WavFile[S core.Sample] struct {
	path   string
	loop   bool
	frames *buffer.Buffer[S]
	rateHz float64

	offsetFrames int
}

// NewWavFile decodes path (resolved against the configured data root when
// relative) and returns a playback signal.
func NewWavFile[S core.Sample](path string, opts ...WavFileOption) (*WavFile[S], error) {
	wc := wavFileConfig{cfg: config.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&wc)
		}
	}

	frames, rateHz, err := wavio.Decode[S](wc.cfg.ResolvePath(path))
	if err != nil {
		return nil, err
	}

	return &WavFile[S]{
		path:   path,
		loop:   wc.loop,
		frames: frames,
		rateHz: rateHz,
	}, nil
}

// NumFrames returns the decoded file length in frames.
func (w *WavFile[S]) NumFrames() int {
	return w.frames.NumFrames()
}

func (w *WavFile[S]) SupportsNumChannels(n int) bool {
	return n == w.frames.NumChannels()
}

func (w *WavFile[S]) SupportsSampleRate(rateHz float64) bool {
	return rateHz == w.rateHz
}

func (w *WavFile[S]) Prepare(sampleRateHz float64, numOut, _ int) error {
	if numOut != w.frames.NumChannels() {
		return fmt.Errorf("%w: %s holds %d channels, %d requested", core.ErrChannelLayout, w, w.frames.NumChannels(), numOut)
	}
	if sampleRateHz != w.rateHz {
		return fmt.Errorf("%w: %s is at %v Hz, %v Hz requested and resampling is not supported", core.ErrSampleRate, w, w.rateHz, sampleRateHz)
	}

	return nil
}

func (w *WavFile[S]) RenderNextBlock(out *buffer.Buffer[S]) error {
	numFrames := out.NumFrames()
	fileFrames := w.frames.NumFrames()

	frame := 0
	for frame < numFrames && w.offsetFrames < fileFrames {
		for channel := 0; channel < out.NumChannels(); channel++ {
			out.Channel(channel)[frame] = w.frames.Channel(channel)[w.offsetFrames]
		}

		frame++
		w.offsetFrames++
		if w.loop {
			w.offsetFrames %= fileFrames
		}
	}

	fillSilence(out, frame)

	return nil
}

func (w *WavFile[S]) Reset() {
	w.offsetFrames = 0
}

func (w *WavFile[S]) Clone() Signal[S] {
	clone := *w
	clone.frames = w.frames.Clone()

	return &clone
}

func (w *WavFile[S]) String() string {
	loop := "no loop"
	if w.loop {
		loop = "loop"
	}

	return fmt.Sprintf("WavFile(%q, %s)", w.path, loop)
}
