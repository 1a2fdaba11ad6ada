package token

import (
	"github.com/sarafan-network/sarafan-contract/contracts/token/tokenconst"
)

const (
	// Symbol is SRFN token symbol.
	Symbol = tokenconst.Symbol

	// InitialSupply is the amount of SRFN issued on deploy.
	InitialSupply = tokenconst.InitialSupply

	// ConversionRate is the amount of SRFN sold for one GAS.
	ConversionRate = tokenconst.ConversionRate

	// ErrInsufficientBalance is returned when the account has not enough SRFN.
	ErrInsufficientBalance = tokenconst.ErrInsufficientBalance

	// ErrInsufficientAllowance is returned when the allowance is exceeded.
	ErrInsufficientAllowance = tokenconst.ErrInsufficientAllowance

	// ErrSaleClosed is returned on GAS payments after the sale end.
	ErrSaleClosed = tokenconst.ErrSaleClosed

	// ErrFractionalPayment is returned on GAS payments which do not buy a
	// whole number of tokens.
	ErrFractionalPayment = tokenconst.ErrFractionalPayment
)
