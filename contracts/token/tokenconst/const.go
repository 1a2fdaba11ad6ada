package tokenconst

const (
	// Symbol is the ticker of the Sarafan token.
	Symbol = "SRFN"
	// Decimals is the precision of SRFN balances.
	Decimals = 0

	// InitialSupply is the amount issued to the owner on deployment.
	InitialSupply = 300_000_000
	// PeeringReserve is the amount allocated to a newly linked Peering
	// contract.
	PeeringReserve = 20_000_000
	// ConversionRate is the number of SRFN issued for one GAS during the sale.
	ConversionRate = 1_000_000
	// GASFactor is the number of GAS fractions in one GAS.
	GASFactor = 1_0000_0000
	// TokenPrice is the price of one SRFN in GAS fractions. Payments must be
	// a multiple of it.
	TokenPrice = GASFactor / ConversionRate
	// DefaultMegabyteMonthCost is the storage rate set on deployment.
	DefaultMegabyteMonthCost = 1

	// ContentLinkName and PeeringLinkName are used in Link notifications.
	ContentLinkName = "content"
	PeeringLinkName = "peering"
)

// Failure reasons.
const (
	ErrInsufficientBalance   = "insufficient balance"
	ErrInsufficientAllowance = "insufficient allowance"
	ErrUnauthorized          = "unauthorized"
	ErrSaleClosed            = "sale is closed"
	ErrPaymentTooSmall       = "payment is too small"
	ErrFractionalPayment     = "payment is not a multiple of the token price"
	ErrOnlyGAS               = "only GAS can be accepted for conversion"
	ErrInvalidAddress        = "invalid address"
)
