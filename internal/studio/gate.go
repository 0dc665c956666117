package studio

// Gate is the narrow capability the intake side gets over the submission
// flag. The flag itself is owned by the Listing.
type Gate interface {
	// Acquire marks a submission as in flight. It returns false if one
	// already is.
	Acquire() bool
	// Release clears the in-flight mark.
	Release()
	// Submitting reports whether a submission is in flight.
	Submitting() bool
}

type submitGate struct {
	submitting bool
}

func (g *submitGate) Acquire() bool {
	if g.submitting {
		return false
	}
	g.submitting = true
	return true
}

func (g *submitGate) Release() {
	g.submitting = false
}

func (g *submitGate) Submitting() bool {
	return g.submitting
}
