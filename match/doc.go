// Package match provides the pass/fail matchers evaluated by the harness:
// peak-level checks, sample-by-sample comparison against a reference
// signal, and an FFT-based dominant-frequency check. Per-block matchers
// are fed one block at a time during rendering; whole-signal matchers see
// the complete output once rendering finished.
package match
