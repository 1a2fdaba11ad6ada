package common

const (
	// ErrNegativeAmount is thrown when a negative value is used as an amount.
	ErrNegativeAmount = "negative amount"

	// Megabyte is the size unit of storage fees and rewards.
	Megabyte = 1_000_000
)

// CheckAmount panics with ErrNegativeAmount if amount is negative.
func CheckAmount(amount int) {
	if amount < 0 {
		panic(ErrNegativeAmount)
	}
}

// AddAmount returns a sum of two amounts. NeoVM faults on results exceeding
// the 256-bit integer limit, so no value is lost silently.
func AddAmount(a, b int) int {
	CheckAmount(a)
	CheckAmount(b)

	return a + b
}

// SubAmount returns a-b. It panics with msg if a is less than b.
func SubAmount(a, b int, msg string) int {
	CheckAmount(a)
	CheckAmount(b)

	if a < b {
		panic(msg)
	}

	return a - b
}

// MegabytesCeil returns the number of started megabytes in size bytes.
func MegabytesCeil(size int) int {
	CheckAmount(size)

	return (size + Megabyte - 1) / Megabyte
}

// StorageCost returns the price of keeping size bytes for the given number of
// months at the given megabyte-month rate.
func StorageCost(size, months, rate int) int {
	CheckAmount(months)
	CheckAmount(rate)

	return MegabytesCeil(size) * months * rate
}
