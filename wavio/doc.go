// Package wavio reads and writes WAV files, bridging between the module's
// channel-major buffers and the interleaved integer frames of the
// go-audio codec. Integer PCM at 16, 24 and 32 bits and 32-bit IEEE float
// are supported.
package wavio
