package peeringconst

const (
	// MonthDuration is a length of the payout window unit in milliseconds.
	MonthDuration = 30 * 24 * 60 * 60 * 1000
)

const (
	// ErrAlreadyCommitted is thrown on attempt to commit a data hash twice.
	ErrAlreadyCommitted = "this data hash already committed"

	// ErrUnknownCommitment is thrown when there is no commitment for the
	// requested data hash.
	ErrUnknownCommitment = "unknown commitment"

	// ErrAlreadyResolved is thrown on attempt to verify or reject a
	// commitment that is not pending.
	ErrAlreadyResolved = "already verified"

	// ErrNotVerified is thrown on payout of a commitment that is not verified.
	ErrNotVerified = "commitment is not verified"

	// ErrAlreadyPaid is thrown on the second payout of a commitment.
	ErrAlreadyPaid = "reward already paid"

	// ErrWindowNotElapsed is thrown on payout before the commitment
	// duration has passed since verification.
	ErrWindowNotElapsed = "payout window has not elapsed"

	// ErrEmptyDataHash is thrown on attempt to commit an empty data hash.
	ErrEmptyDataHash = "empty data hash"

	// ErrOnlyToken is thrown when Peering contract receives tokens other
	// than SRFN.
	ErrOnlyToken = "only SRFN can be accepted"
)
