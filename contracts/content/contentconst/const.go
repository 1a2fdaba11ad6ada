package contentconst

const (
	// MaxContentSize is the largest publication size in bytes.
	MaxContentSize = 10_000_000

	// DefaultDuration is the storage duration in months used when a
	// publication is posted with zero duration.
	DefaultDuration = 12

	// PublicationFee is a base charge added to the storage cost of every
	// publication.
	PublicationFee = 1

	// AbuseFee is the price of a single abuse report.
	AbuseFee = 50
)

const (
	// ErrAlreadyPublished is thrown on attempt to post a magnet twice.
	ErrAlreadyPublished = "such magnet already published"

	// ErrContentTooLarge is thrown when publication size exceeds MaxContentSize.
	ErrContentTooLarge = "content size should be less than 10Mb"

	// ErrUnknownMagnet is thrown when there is no publication with the
	// requested magnet.
	ErrUnknownMagnet = "unknown magnet"

	// ErrEmptyMagnet is thrown on attempt to post an empty magnet.
	ErrEmptyMagnet = "empty magnet"

	// ErrAlreadyReported is thrown when the reporter has already filed an
	// abuse report for the publication.
	ErrAlreadyReported = "abuse already reported"

	// ErrZeroAward is thrown on attempt to award nothing.
	ErrZeroAward = "award amount should be positive"

	// ErrOnlyToken is thrown when Content contract receives tokens other
	// than SRFN.
	ErrOnlyToken = "only SRFN can be accepted"
)
