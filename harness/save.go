package harness

// Save determines when an output artifact is written after a run.
type Save int

const (
	// SaveNever disables writing.
	SaveNever Save = iota

	// SaveAlways writes after every run.
	SaveAlways

	// SaveWhenFails writes only when at least one check failed.
	SaveWhenFails
)

func (s Save) shouldWrite(anyCheckFailed bool) bool {
	switch s {
	case SaveAlways:
		return true
	case SaveWhenFails:
		return anyCheckFailed
	}

	return false
}
