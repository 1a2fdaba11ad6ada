package peering

import (
	"math/big"

	"github.com/sarafan-network/sarafan-contract/contracts/peering/resolution"
)

// Possible commitment states in [Commitment].
var (
	// ResolutionPending is used by commitments waiting for verification.
	ResolutionPending = big.NewInt(int64(resolution.Pending))

	// ResolutionVerified is used by confirmed commitments.
	ResolutionVerified = big.NewInt(int64(resolution.Verified))

	// ResolutionRejected is used by declined commitments.
	ResolutionRejected = big.NewInt(int64(resolution.Rejected))
)

// IsVerified checks whether the commitment was verified.
func (c *Commitment) IsVerified() bool {
	return c.State != nil && c.State.Cmp(ResolutionVerified) == 0
}
