package harness

// AssertionError reports a failed assert-level check. It carries the same
// formatted report an expect-level failure would collect, and aborts the
// run at the block where the check tripped.
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string {
	return e.Message
}
