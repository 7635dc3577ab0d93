// Package effect defines the block-processing effect interface and the
// automation host that attaches envelopes to effect parameters. Built-in
// effects cover decibel and linear gain (both automatable) and hard
// clipping. Effects support n-to-n channel layouts; the gain effects
// additionally multiplex one input channel onto any number of outputs.
package effect
