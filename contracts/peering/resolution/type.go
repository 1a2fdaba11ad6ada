package resolution

// Type is an enumeration for commitment resolution states.
type Type int

// Various resolution states.
const (
	_ Type = iota

	// Pending stands for commitments that were neither verified nor
	// rejected yet.
	Pending

	// Verified stands for commitments confirmed by a verifier. It is a
	// terminal state.
	Verified

	// Rejected stands for commitments declined by a rejecter. It is a
	// terminal state.
	Rejected
)
