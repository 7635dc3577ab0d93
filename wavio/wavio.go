package wavio

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
)

// Format selects the sample encoding of a written WAV file.
type Format int

const (
	PCM16 Format = iota
	PCM24
	PCM32
	Float32
)

func (f Format) String() string {
	switch f {
	case PCM16:
		return "PCM16"
	case PCM24:
		return "PCM24"
	case PCM32:
		return "PCM32"
	case Float32:
		return "Float32"
	}

	return fmt.Sprintf("Format(%d)", int(f))
}

func (f Format) bitDepth() int {
	switch f {
	case PCM16:
		return 16
	case PCM24:
		return 24
	case PCM32, Float32:
		return 32
	}

	return 0
}

const wavFormatIEEEFloat = 3

// Decode reads a WAV file into a channel-major buffer of normalized
// samples. Integer PCM is scaled by 2^(bits-1); float files pass through.
func Decode[S core.Sample](path string) (buf *buffer.Buffer[S], sampleRate float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", core.ErrIO, err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: %s is not a valid WAV file", core.ErrIO, path)
	}

	pcm, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: decoding %s: %v", core.ErrIO, path, err)
	}

	numChannels := pcm.Format.NumChannels
	if numChannels <= 0 {
		return nil, 0, fmt.Errorf("%w: %s has no channels", core.ErrIO, path)
	}
	numFrames := len(pcm.Data) / numChannels

	isFloat := d.WavAudioFormat == wavFormatIEEEFloat
	scale := 1.0
	if !isFloat {
		scale = 1.0 / float64(int64(1)<<(d.BitDepth-1))
	}

	buf = buffer.New[S](numChannels, numFrames)
	for channel := 0; channel < numChannels; channel++ {
		dst := buf.Channel(channel)
		for frame := 0; frame < numFrames; frame++ {
			raw := pcm.Data[frame*numChannels+channel]
			if isFloat {
				dst[frame] = S(math.Float32frombits(uint32(int32(raw))))
			} else {
				dst[frame] = S(float64(raw) * scale)
			}
		}
	}

	return buf, float64(pcm.Format.SampleRate), nil
}

// Encode writes a channel-major buffer of normalized samples to a WAV
// file in the given format. Integer PCM is scaled by 2^(bits-1)-1 and
// clipped to full scale.
func Encode[S core.Sample](buf *buffer.Buffer[S], path string, sampleRate float64, format Format) error {
	bitDepth := format.bitDepth()
	if bitDepth == 0 {
		return fmt.Errorf("%w: unknown format %v", core.ErrValue, format)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %v Hz", core.ErrValue, sampleRate)
	}
	if buf.NumChannels() == 0 {
		return fmt.Errorf("%w: buffer has no channels", core.ErrValue)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrIO, err)
	}
	defer f.Close()

	audioFormat := 1
	if format == Float32 {
		audioFormat = wavFormatIEEEFloat
	}

	enc := wav.NewEncoder(f, int(sampleRate), bitDepth, buf.NumChannels(), audioFormat)

	numChannels := buf.NumChannels()
	numFrames := buf.NumFrames()
	intBuf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  int(sampleRate),
		},
		Data:           make([]int, numChannels*numFrames),
		SourceBitDepth: bitDepth,
	}

	if format == Float32 {
		for channel := 0; channel < numChannels; channel++ {
			src := buf.Channel(channel)
			for frame := 0; frame < numFrames; frame++ {
				bits := math.Float32bits(float32(src[frame]))
				intBuf.Data[frame*numChannels+channel] = int(int32(bits))
			}
		}
	} else {
		fullScale := float64(int64(1)<<(bitDepth-1)) - 1
		for channel := 0; channel < numChannels; channel++ {
			src := buf.Channel(channel)
			for frame := 0; frame < numFrames; frame++ {
				scaled := math.Round(float64(src[frame]) * fullScale)
				scaled = core.Clamp(scaled, -fullScale-1, fullScale)
				intBuf.Data[frame*numChannels+channel] = int(scaled)
			}
		}
	}

	if err := enc.Write(intBuf); err != nil {
		return fmt.Errorf("%w: writing %s: %v", core.ErrIO, path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", core.ErrIO, path, err)
	}

	return nil
}
