package core

import "errors"

// Error taxonomy shared across the module. Packages wrap these sentinels
// with context via fmt.Errorf("%w: ...") so callers can classify failures
// with errors.Is regardless of where they originated.
var (
	// ErrValue marks an invalid constructor or parameter argument,
	// e.g. a non-positive frequency or sample rate.
	ErrValue = errors.New("invalid value")

	// ErrSize marks an invalid block size, frame range or channel count.
	ErrSize = errors.New("invalid size")

	// ErrChannelLayout marks an unsupported or mismatched channel
	// configuration between a signal/effect and its negotiated layout.
	ErrChannelLayout = errors.New("unsupported channel layout")

	// ErrSampleRate marks a sample rate rejected by an effect or signal.
	ErrSampleRate = errors.New("unsupported sample rate")

	// ErrState marks an operation attempted before required setup.
	ErrState = errors.New("invalid state")

	// ErrIO marks a file read or write failure.
	ErrIO = errors.New("i/o failure")

	// ErrUnsupported marks a request the component cannot honor, e.g. an
	// envelope attached to a parameter that does not support automation.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrInternal marks a broken internal invariant.
	ErrInternal = errors.New("internal invariant violation")
)
