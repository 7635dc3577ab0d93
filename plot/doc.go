// Package plot writes waveform overview images. Each channel of the
// input and output buffers becomes one lane of a min/max-per-column SVG,
// which keeps the file small regardless of signal length.
package plot
