package peering

import (
	"github.com/sarafan-network/sarafan-contract/contracts/peering/peeringconst"
)

const (
	// MonthDuration is a length of the payout window unit in milliseconds.
	MonthDuration = peeringconst.MonthDuration

	// ErrAlreadyCommitted is returned on attempt to commit a data hash twice.
	ErrAlreadyCommitted = peeringconst.ErrAlreadyCommitted

	// ErrAlreadyResolved is returned on attempt to resolve a commitment twice.
	ErrAlreadyResolved = peeringconst.ErrAlreadyResolved

	// ErrNotVerified is returned on payout of a commitment that is not verified.
	ErrNotVerified = peeringconst.ErrNotVerified

	// ErrAlreadyPaid is returned on the second payout of a commitment.
	ErrAlreadyPaid = peeringconst.ErrAlreadyPaid
)
