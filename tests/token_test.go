package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/sarafan-network/sarafan-contract/common"
	"github.com/sarafan-network/sarafan-contract/contracts/token/tokenconst"
)

func newTokenInvoker(t *testing.T) (*neotest.ContractInvoker, sarafan) {
	e := newExecutor(t)
	s := deploySarafan(t, e)
	return e.CommitteeInvoker(s.token), s
}

// fund transfers amount of SRFN from the owner to the account.
func fund(t testing.TB, tokenOwner *neotest.ContractInvoker, to util.Uint160, amount int64) {
	tokenOwner.Invoke(t, true, "transfer", tokenOwner.CommitteeHash, to, amount, nil)
}

func TestTokenDeploy(t *testing.T) {
	c, s := newTokenInvoker(t)

	c.Invoke(t, tokenconst.Symbol, "symbol")
	c.Invoke(t, tokenconst.Decimals, "decimals")
	c.Invoke(t, tokenconst.InitialSupply, "totalSupply")
	c.Invoke(t, tokenconst.InitialSupply-tokenconst.PeeringReserve, "balanceOf", c.CommitteeHash)
	c.Invoke(t, tokenconst.PeeringReserve, "balanceOf", s.peering)
	c.Invoke(t, c.CommitteeHash, "owner")
	c.Invoke(t, s.content, "contentContract")
	c.Invoke(t, s.peering, "peeringContract")
	c.Invoke(t, 0, "saleEnd")
	c.Invoke(t, tokenconst.DefaultMegabyteMonthCost, "megabyteMonthCost")
	c.Invoke(t, common.Version, "version")
}

func TestTokenTransfer(t *testing.T) {
	c, _ := newTokenInvoker(t)

	acc := c.NewAccount(t)
	other := c.NewAccount(t)
	cAcc := c.WithSigners(acc)

	fund(t, c, acc.ScriptHash(), 100)
	c.Invoke(t, 100, "balanceOf", acc.ScriptHash())

	cAcc.Invoke(t, true, "transfer", acc.ScriptHash(), other.ScriptHash(), 40, nil)
	c.Invoke(t, 60, "balanceOf", acc.ScriptHash())
	c.Invoke(t, 40, "balanceOf", other.ScriptHash())

	t.Run("insufficient funds", func(t *testing.T) {
		cAcc.Invoke(t, false, "transfer", acc.ScriptHash(), other.ScriptHash(), 61, nil)
		c.Invoke(t, 60, "balanceOf", acc.ScriptHash())
	})

	t.Run("not signed by sender", func(t *testing.T) {
		cAcc.Invoke(t, false, "transfer", other.ScriptHash(), acc.ScriptHash(), 1, nil)
		c.Invoke(t, 40, "balanceOf", other.ScriptHash())
	})

	t.Run("self transfer", func(t *testing.T) {
		cAcc.Invoke(t, true, "transfer", acc.ScriptHash(), acc.ScriptHash(), 60, nil)
		c.Invoke(t, 60, "balanceOf", acc.ScriptHash())
	})

	t.Run("invalid arguments", func(t *testing.T) {
		cAcc.InvokeFail(t, tokenconst.ErrInvalidAddress, "transfer", acc.ScriptHash(), []byte{1, 2, 3}, 1, nil)
		cAcc.InvokeFail(t, common.ErrNegativeAmount, "transfer", acc.ScriptHash(), other.ScriptHash(), -1, nil)
		c.InvokeFail(t, tokenconst.ErrInvalidAddress, "balanceOf", []byte{1, 2, 3})
	})
}

func TestTokenApprove(t *testing.T) {
	c, _ := newTokenInvoker(t)

	owner := c.NewAccount(t)
	spender := c.NewAccount(t)
	recipient := c.NewAccount(t)

	cOwner := c.WithSigners(owner)
	cSpender := c.WithSigners(spender)

	fund(t, c, owner.ScriptHash(), 50)

	cSpender.InvokeFail(t, common.ErrWitnessFailed, "approve", owner.ScriptHash(), spender.ScriptHash(), 10)

	h := cOwner.Invoke(t, true, "approve", owner.ScriptHash(), spender.ScriptHash(), 10)
	c.CheckTxNotificationEvent(t, h, 0, state.NotificationEvent{
		ScriptHash: c.Hash,
		Name:       "Approval",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.NewByteArray(owner.ScriptHash().BytesBE()),
			stackitem.NewByteArray(spender.ScriptHash().BytesBE()),
			stackitem.Make(10),
		}),
	})
	c.Invoke(t, 10, "allowance", owner.ScriptHash(), spender.ScriptHash())

	cSpender.Invoke(t, true, "transferFrom", spender.ScriptHash(), owner.ScriptHash(), recipient.ScriptHash(), 4)
	c.Invoke(t, 6, "allowance", owner.ScriptHash(), spender.ScriptHash())
	c.Invoke(t, 46, "balanceOf", owner.ScriptHash())
	c.Invoke(t, 4, "balanceOf", recipient.ScriptHash())
	c.Invoke(t, 0, "balanceOf", spender.ScriptHash())

	cSpender.InvokeFail(t, tokenconst.ErrInsufficientAllowance, "transferFrom",
		spender.ScriptHash(), owner.ScriptHash(), recipient.ScriptHash(), 7)
	cOwner.InvokeFail(t, common.ErrWitnessFailed, "transferFrom",
		spender.ScriptHash(), owner.ScriptHash(), recipient.ScriptHash(), 1)

	t.Run("allowance above balance", func(t *testing.T) {
		cOwner.Invoke(t, true, "approve", owner.ScriptHash(), spender.ScriptHash(), 100)
		cSpender.InvokeFail(t, tokenconst.ErrInsufficientBalance, "transferFrom",
			spender.ScriptHash(), owner.ScriptHash(), recipient.ScriptHash(), 47)
		c.Invoke(t, 100, "allowance", owner.ScriptHash(), spender.ScriptHash())
	})

	t.Run("overwrite", func(t *testing.T) {
		cOwner.Invoke(t, true, "approve", owner.ScriptHash(), spender.ScriptHash(), 3)
		c.Invoke(t, 3, "allowance", owner.ScriptHash(), spender.ScriptHash())

		cOwner.Invoke(t, true, "approve", owner.ScriptHash(), spender.ScriptHash(), 0)
		c.Invoke(t, 0, "allowance", owner.ScriptHash(), spender.ScriptHash())
	})
}

func TestTokenConversion(t *testing.T) {
	c, s := newTokenInvoker(t)

	acc := c.NewAccount(t)
	gasHash := c.NativeHash(t, nativenames.Gas)
	gasAcc := c.CommitteeInvoker(gasHash).WithSigners(acc)

	h := gasAcc.Invoke(t, true, "transfer", acc.ScriptHash(), s.token, tokenconst.GASFactor, nil)
	c.CheckTxNotificationEvent(t, h, 2, state.NotificationEvent{
		ScriptHash: s.token,
		Name:       "Conversion",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.NewByteArray(acc.ScriptHash().BytesBE()),
			stackitem.Make(tokenconst.GASFactor),
			stackitem.Make(tokenconst.ConversionRate),
		}),
	})
	c.Invoke(t, tokenconst.ConversionRate, "balanceOf", acc.ScriptHash())
	c.Invoke(t, tokenconst.InitialSupply-tokenconst.PeeringReserve-tokenconst.ConversionRate,
		"balanceOf", c.CommitteeHash)

	gasAcc.InvokeFail(t, tokenconst.ErrPaymentTooSmall, "transfer", acc.ScriptHash(), s.token, 1, nil)

	t.Run("withdraw", func(t *testing.T) {
		recipient := util.Uint160{1, 2, 3}

		c.WithSigners(acc).InvokeFail(t, common.ErrOwnerWitnessFailed, "withdraw", recipient, tokenconst.GASFactor)
		c.InvokeFail(t, tokenconst.ErrInsufficientBalance, "withdraw", recipient, 2*tokenconst.GASFactor)

		c.Invoke(t, stackitem.Null{}, "withdraw", recipient, tokenconst.GASFactor)
		c.CommitteeInvoker(gasHash).Invoke(t, tokenconst.GASFactor, "balanceOf", recipient)
	})

	t.Run("sale is closed", func(t *testing.T) {
		c.WithSigners(acc).InvokeFail(t, common.ErrOwnerWitnessFailed, "setSaleEnd", 1)

		c.Invoke(t, stackitem.Null{}, "setSaleEnd", 1)
		c.Invoke(t, 1, "saleEnd")

		gasAcc.InvokeFail(t, tokenconst.ErrSaleClosed, "transfer", acc.ScriptHash(), s.token, tokenconst.GASFactor, nil)
		c.Invoke(t, tokenconst.ConversionRate, "balanceOf", acc.ScriptHash())

		c.Invoke(t, stackitem.Null{}, "setSaleEnd", 0)
		gasAcc.Invoke(t, true, "transfer", acc.ScriptHash(), s.token, tokenconst.GASFactor, nil)
		c.Invoke(t, 2*tokenconst.ConversionRate, "balanceOf", acc.ScriptHash())
	})

	t.Run("fractional payment", func(t *testing.T) {
		gasAcc.InvokeFail(t, tokenconst.ErrFractionalPayment, "transfer",
			acc.ScriptHash(), s.token, 2*tokenconst.TokenPrice-1, nil)
		c.Invoke(t, 2*tokenconst.ConversionRate, "balanceOf", acc.ScriptHash())

		gasAcc.Invoke(t, true, "transfer", acc.ScriptHash(), s.token, 3*tokenconst.TokenPrice, nil)
		c.Invoke(t, 2*tokenconst.ConversionRate+3, "balanceOf", acc.ScriptHash())
	})
}

func TestTokenRecipientContractNotified(t *testing.T) {
	c, s := newTokenInvoker(t)

	owner := c.NewAccount(t)
	spender := c.NewAccount(t)
	cSpender := c.WithSigners(spender)

	fund(t, c, owner.ScriptHash(), 10)
	c.WithSigners(owner).Invoke(t, true, "approve", owner.ScriptHash(), spender.ScriptHash(), 10)

	// Token contract accepts GAS only, so moving SRFN to it is rejected.
	cSpender.InvokeFail(t, tokenconst.ErrOnlyGAS, "transferFrom",
		spender.ScriptHash(), owner.ScriptHash(), s.token, 1)
	c.Invoke(t, 10, "allowance", owner.ScriptHash(), spender.ScriptHash())
	c.InvokeFail(t, tokenconst.ErrOnlyGAS, "payout", s.token, 1)

	cSpender.Invoke(t, true, "transferFrom", spender.ScriptHash(), owner.ScriptHash(), s.content, 4)
	c.Invoke(t, 4, "balanceOf", s.content)

	c.Invoke(t, stackitem.Null{}, "payout", s.content, 1)
	c.Invoke(t, 5, "balanceOf", s.content)
	c.Invoke(t, 0, "balanceOf", s.token)
}

func TestTokenOnlyGASConverted(t *testing.T) {
	c, s := newTokenInvoker(t)

	neoCommittee := c.CommitteeInvoker(c.NativeHash(t, nativenames.Neo))
	neoCommittee.InvokeFail(t, tokenconst.ErrOnlyGAS, "transfer", c.CommitteeHash, s.token, 1, nil)
}

func TestTokenLinks(t *testing.T) {
	e := newExecutor(t)
	tokenHash := deployToken(t, e, 0)

	c := e.CommitteeInvoker(tokenHash)
	acc := c.NewAccount(t)
	peering := util.Uint160{1}

	c.Invoke(t, stackitem.Null{}, "contentContract")
	c.WithSigners(acc).InvokeFail(t, common.ErrOwnerWitnessFailed, "setContentContract", util.Uint160{2})
	c.WithSigners(acc).InvokeFail(t, common.ErrOwnerWitnessFailed, "setPeeringContract", peering)

	h := c.Invoke(t, stackitem.Null{}, "setPeeringContract", peering)
	c.CheckTxNotificationEvent(t, h, 1, state.NotificationEvent{
		ScriptHash: tokenHash,
		Name:       "Link",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.NewByteArray([]byte(tokenconst.PeeringLinkName)),
			stackitem.NewByteArray(peering.BytesBE()),
		}),
	})
	c.Invoke(t, tokenconst.PeeringReserve, "balanceOf", peering)

	// Relinking the same contract does not allocate the reserve again.
	c.Invoke(t, stackitem.Null{}, "setPeeringContract", peering)
	c.Invoke(t, tokenconst.PeeringReserve, "balanceOf", peering)
	c.Invoke(t, tokenconst.InitialSupply-tokenconst.PeeringReserve, "balanceOf", c.CommitteeHash)
	c.Invoke(t, peering, "peeringContract")
}

func TestTokenPayout(t *testing.T) {
	c, _ := newTokenInvoker(t)

	acc := c.NewAccount(t)
	recipient := util.Uint160{4, 5, 6}

	c.WithSigners(acc).InvokeFail(t, tokenconst.ErrUnauthorized, "payout", recipient, 5)

	h := c.Invoke(t, stackitem.Null{}, "payout", recipient, 5)
	c.CheckTxNotificationEvent(t, h, 1, state.NotificationEvent{
		ScriptHash: c.Hash,
		Name:       "Payout",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.NewByteArray(c.CommitteeHash.BytesBE()),
			stackitem.NewByteArray(recipient.BytesBE()),
			stackitem.Make(5),
		}),
	})
	c.Invoke(t, 5, "balanceOf", recipient)
}

func TestTokenBurn(t *testing.T) {
	c, _ := newTokenInvoker(t)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)

	fund(t, c, acc.ScriptHash(), 10)

	c.InvokeFail(t, common.ErrWitnessFailed, "burn", acc.ScriptHash(), 1)
	cAcc.InvokeFail(t, tokenconst.ErrInsufficientBalance, "burn", acc.ScriptHash(), 11)

	cAcc.Invoke(t, stackitem.Null{}, "burn", acc.ScriptHash(), 4)
	c.Invoke(t, 6, "balanceOf", acc.ScriptHash())
	c.Invoke(t, tokenconst.InitialSupply-4, "totalSupply")

	cAcc.Invoke(t, stackitem.Null{}, "burn", acc.ScriptHash(), 6)
	c.Invoke(t, 0, "balanceOf", acc.ScriptHash())
	c.Invoke(t, tokenconst.InitialSupply-10, "totalSupply")
}

func TestTokenMegabyteMonthCost(t *testing.T) {
	c, _ := newTokenInvoker(t)

	acc := c.NewAccount(t)

	c.WithSigners(acc).InvokeFail(t, common.ErrOwnerWitnessFailed, "setMegabyteMonthCost", 3)
	c.InvokeFail(t, common.ErrNegativeAmount, "setMegabyteMonthCost", -1)

	c.Invoke(t, stackitem.Null{}, "setMegabyteMonthCost", 3)
	c.Invoke(t, 3, "megabyteMonthCost")
}
