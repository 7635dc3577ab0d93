// Package sig provides block-rendering signal sources: silence, sine wave,
// sine sweep, seeded white noise and WAV file playback, plus a Chain that
// pipes a source through an ordered list of effects with sample-accurate
// parameter automation. All generators are block-size invariant and
// reproduce identical output after Reset.
package sig
