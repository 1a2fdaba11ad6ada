package content

import (
	"github.com/sarafan-network/sarafan-contract/contracts/content/contentconst"
)

const (
	// MaxContentSize is the largest publication size in bytes.
	MaxContentSize = contentconst.MaxContentSize

	// AbuseFee is the price of a single abuse report in SRFN.
	AbuseFee = contentconst.AbuseFee

	// ErrAlreadyPublished is returned on attempt to post a magnet twice.
	ErrAlreadyPublished = contentconst.ErrAlreadyPublished

	// ErrContentTooLarge is returned when publication size exceeds MaxContentSize.
	ErrContentTooLarge = contentconst.ErrContentTooLarge

	// ErrUnknownMagnet is returned when the publication is missing.
	ErrUnknownMagnet = contentconst.ErrUnknownMagnet
)
