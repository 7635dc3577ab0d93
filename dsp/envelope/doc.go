// Package envelope provides sample-accurate parameter automation. An
// Envelope renders one automation value per frame; effects receive the
// rendered values alongside the audio block through a Buffers map keyed by
// parameter id. The concrete Segmented envelope is built from hold and ramp
// segments with linear, exponential or s-curve shapes.
package envelope
