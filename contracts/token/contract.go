package token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/sarafan-network/sarafan-contract/common"
	"github.com/sarafan-network/sarafan-contract/contracts/token/tokenconst"
)

const (
	supplyKey          = 's'
	rateKey            = 'r'
	saleEndKey         = 'e'
	contentContractKey = 'c'
	peeringContractKey = 'p'

	accPrefix       = 'a'
	allowancePrefix = 'l'
	reservePrefix   = 'g'
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	args := data.([]any)

	if isUpdate {
		version := args[len(args)-1].(int)
		common.CheckVersion(version)
		return
	}

	owner := common.DeployOwner(args[0].(interop.Hash160))
	saleEnd := args[1].(int)
	common.CheckAmount(saleEnd)

	storage.Put(ctx, common.OwnerKey, owner)
	storage.Put(ctx, saleEndKey, saleEnd)
	storage.Put(ctx, rateKey, tokenconst.DefaultMegabyteMonthCost)
	storage.Put(ctx, supplyKey, tokenconst.InitialSupply)
	setBalance(ctx, owner, tokenconst.InitialSupply)

	var from interop.Hash160
	runtime.Notify("Transfer", from, owner, tokenconst.InitialSupply)

	runtime.Log("token contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess(storage.GetReadOnlyContext()) {
		panic("only owner can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("token contract updated")
}

// Symbol is a NEP-17 standard method that returns SRFN token symbol.
func Symbol() string {
	return tokenconst.Symbol
}

// Decimals is a NEP-17 standard method that returns precision of SRFN
// balances.
func Decimals() int {
	return tokenconst.Decimals
}

// TotalSupply is a NEP-17 standard method that returns the amount of SRFN
// in circulation. It decreases only by Burn.
func TotalSupply() int {
	return common.GetInt(storage.GetReadOnlyContext(), supplyKey)
}

// BalanceOf is a NEP-17 standard method that returns SRFN balance of the
// specified account.
func BalanceOf(account interop.Hash160) int {
	checkAddress(account)
	return getBalance(storage.GetReadOnlyContext(), account)
}

// Transfer is a NEP-17 standard method that transfers SRFN from one account
// to another. It can be invoked only by the account owner. Returns false if
// the sender has not enough funds or has not signed the transaction.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	checkAddress(from)
	checkAddress(to)
	common.CheckAmount(amount)

	if !isUsableAddress(from) {
		runtime.Log("bad script hashes")
		return false
	}

	ctx := storage.GetContext()
	if !move(ctx, from, to, amount) {
		runtime.Log("not enough assets")
		return false
	}

	postTransfer(from, to, amount, data)

	return true
}

// Approve sets the amount spender may move out of the owner's balance with
// TransferFrom. The previous allowance is overwritten. It produces Approval
// notification.
func Approve(owner, spender interop.Hash160, amount int) bool {
	checkAddress(owner)
	checkAddress(spender)
	common.CheckAmount(amount)
	checkUsableAddress(owner)

	ctx := storage.GetContext()
	setAllowance(ctx, owner, spender, amount)

	runtime.Notify("Approval", owner, spender, amount)

	return true
}

// Allowance returns the amount spender is still allowed to move out of the
// owner's balance.
func Allowance(owner, spender interop.Hash160) int {
	checkAddress(owner)
	checkAddress(spender)
	return getAllowance(storage.GetReadOnlyContext(), owner, spender)
}

// TransferFrom moves amount from the owner's balance to the recipient on
// behalf of spender, decreasing the allowance given by owner to spender.
// Spender must either sign the transaction or be the calling contract.
func TransferFrom(spender, from, to interop.Hash160, amount int) bool {
	checkAddress(spender)
	checkAddress(from)
	checkAddress(to)
	common.CheckAmount(amount)
	checkUsableAddress(spender)

	ctx := storage.GetContext()

	rest := common.SubAmount(getAllowance(ctx, from, spender), amount, tokenconst.ErrInsufficientAllowance)
	if !move(ctx, from, to, amount) {
		panic(tokenconst.ErrInsufficientBalance)
	}

	setAllowance(ctx, from, spender, rest)
	postTransfer(from, to, amount, nil)

	return true
}

// OnNEP17Payment converts GAS received during the sale into SRFN. One GAS is
// converted into ConversionRate tokens which are moved from the owner's
// stock to the payer. Payments after the sale end and payments that are not
// a multiple of TokenPrice are rejected.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		panic(tokenconst.ErrOnlyGAS)
	}

	checkAddress(from)

	ctx := storage.GetContext()
	if !saleIsOpen(ctx) {
		panic(tokenconst.ErrSaleClosed)
	}

	if amount < tokenconst.TokenPrice {
		panic(tokenconst.ErrPaymentTooSmall)
	}
	if amount%tokenconst.TokenPrice != 0 {
		panic(tokenconst.ErrFractionalPayment)
	}

	tokens := amount / tokenconst.TokenPrice

	if !move(ctx, common.Owner(ctx), from, tokens) {
		panic(tokenconst.ErrInsufficientBalance)
	}

	runtime.Notify("Conversion", from, amount, tokens)
}

// SetSaleEnd sets the timestamp (in milliseconds) after which GAS is no longer
// converted. Zero keeps the sale open. It can be invoked only by the owner.
func SetSaleEnd(timestamp int) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(common.Owner(ctx))
	common.CheckAmount(timestamp)

	storage.Put(ctx, saleEndKey, timestamp)
}

// SaleEnd returns the sale end timestamp, zero means no end is set.
func SaleEnd() int {
	return common.GetInt(storage.GetReadOnlyContext(), saleEndKey)
}

// Payout moves amount to the recipient from the operating reserve of the
// caller. Linked Content and Peering contracts pay from their own balances,
// the owner pays from the owner's balance. Anyone else is rejected.
func Payout(to interop.Hash160, amount int) {
	checkAddress(to)
	common.CheckAmount(amount)

	ctx := storage.GetContext()
	from := payoutSource(ctx)

	if !move(ctx, from, to, amount) {
		panic(tokenconst.ErrInsufficientBalance)
	}

	runtime.Notify("Payout", from, to, amount)
	postTransfer(from, to, amount, nil)
}

// Withdraw transfers GAS collected during the sale to the recipient. It can
// be invoked only by the owner.
func Withdraw(to interop.Hash160, amount int) {
	checkAddress(to)
	common.CheckAmount(amount)

	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(common.Owner(ctx))

	if !gas.Transfer(runtime.GetExecutingScriptHash(), to, amount, nil) {
		panic(tokenconst.ErrInsufficientBalance)
	}

	runtime.Notify("Withdraw", to, amount)
}

// Burn destroys amount of the account's tokens decreasing the total supply.
func Burn(from interop.Hash160, amount int) {
	checkAddress(from)
	common.CheckAmount(amount)
	checkUsableAddress(from)

	ctx := storage.GetContext()

	balance := common.SubAmount(getBalance(ctx, from), amount, tokenconst.ErrInsufficientBalance)
	supply := common.SubAmount(common.GetInt(ctx, supplyKey), amount, "negative supply after burn")

	setBalance(ctx, from, balance)
	storage.Put(ctx, supplyKey, supply)

	var to interop.Hash160
	runtime.Notify("Transfer", from, to, amount)
	runtime.Log("tokens were burned")
}

// SetMegabyteMonthCost sets the price of storing one megabyte for one month.
// It can be invoked only by the owner.
func SetMegabyteMonthCost(cost int) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(common.Owner(ctx))
	common.CheckAmount(cost)

	storage.Put(ctx, rateKey, cost)
}

// MegabyteMonthCost returns the price of storing one megabyte for one month.
func MegabyteMonthCost() int {
	return common.GetInt(storage.GetReadOnlyContext(), rateKey)
}

// SetContentContract links Content contract allowing it to pay out of its
// reserve. It can be invoked only by the owner.
func SetContentContract(addr interop.Hash160) {
	checkAddress(addr)

	ctx := storage.GetContext()
	common.CheckOwnerWitness(common.Owner(ctx))

	storage.Put(ctx, contentContractKey, addr)
	runtime.Notify("Link", tokenconst.ContentLinkName, addr)
}

// SetPeeringContract links Peering contract allowing it to pay out of its
// reserve. When the address is linked for the first time, PeeringReserve
// tokens are moved to it from the owner's balance. It can be invoked only by
// the owner.
func SetPeeringContract(addr interop.Hash160) {
	checkAddress(addr)

	ctx := storage.GetContext()
	owner := common.Owner(ctx)
	common.CheckOwnerWitness(owner)

	storage.Put(ctx, peeringContractKey, addr)

	reserveKey := append([]byte{reservePrefix}, addr...)
	if storage.Get(ctx, reserveKey) == nil {
		if !move(ctx, owner, addr, tokenconst.PeeringReserve) {
			panic(tokenconst.ErrInsufficientBalance)
		}
		storage.Put(ctx, reserveKey, []byte{1})
		postTransfer(owner, addr, tokenconst.PeeringReserve, nil)
	}

	runtime.Notify("Link", tokenconst.PeeringLinkName, addr)
}

// ContentContract returns the address of the linked Content contract.
func ContentContract() interop.Hash160 {
	return getLinked(storage.GetReadOnlyContext(), contentContractKey)
}

// PeeringContract returns the address of the linked Peering contract.
func PeeringContract() interop.Hash160 {
	return getLinked(storage.GetReadOnlyContext(), peeringContractKey)
}

// Owner returns the owner of the token contract.
func Owner() interop.Hash160 {
	return common.Owner(storage.GetReadOnlyContext())
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// move transfers amount between accounts without authorization checks. It
// returns false if the sender has not enough funds.
func move(ctx storage.Context, from, to interop.Hash160, amount int) bool {
	balance := getBalance(ctx, from)
	if balance < amount {
		return false
	}

	if amount > 0 && !from.Equals(to) {
		setBalance(ctx, from, common.SubAmount(balance, amount, tokenconst.ErrInsufficientBalance))
		setBalance(ctx, to, common.AddAmount(getBalance(ctx, to), amount))
	}

	runtime.Notify("Transfer", from, to, amount)

	return true
}

// postTransfer calls onNEP17Payment of the recipient if it is a contract.
func postTransfer(from, to interop.Hash160, amount int, data any) {
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}
}

func payoutSource(ctx storage.Context) interop.Hash160 {
	caller := runtime.GetCallingScriptHash()
	if caller.Equals(getLinked(ctx, contentContractKey)) || caller.Equals(getLinked(ctx, peeringContractKey)) {
		return caller
	}

	owner := common.Owner(ctx)
	if runtime.CheckWitness(owner) {
		return owner
	}

	panic(tokenconst.ErrUnauthorized)
}

func saleIsOpen(ctx storage.Context) bool {
	end := common.GetInt(ctx, saleEndKey)
	return end == 0 || runtime.GetTime() < end
}

func getLinked(ctx storage.Context, key byte) interop.Hash160 {
	h := storage.Get(ctx, key)
	if h == nil {
		return nil
	}

	return h.(interop.Hash160)
}

func getBalance(ctx storage.Context, addr interop.Hash160) int {
	return common.GetInt(ctx, append([]byte{accPrefix}, addr...))
}

func setBalance(ctx storage.Context, addr interop.Hash160, amount int) {
	key := append([]byte{accPrefix}, addr...)
	if amount == 0 {
		storage.Delete(ctx, key)
		return
	}

	storage.Put(ctx, key, amount)
}

func allowanceKey(owner, spender interop.Hash160) []byte {
	key := append([]byte{allowancePrefix}, owner...)
	return append(key, spender...)
}

func getAllowance(ctx storage.Context, owner, spender interop.Hash160) int {
	return common.GetInt(ctx, allowanceKey(owner, spender))
}

func setAllowance(ctx storage.Context, owner, spender interop.Hash160, amount int) {
	key := allowanceKey(owner, spender)
	if amount == 0 {
		storage.Delete(ctx, key)
		return
	}

	storage.Put(ctx, key, amount)
}

func checkAddress(addr interop.Hash160) {
	if len(addr) != interop.Hash160Len {
		panic(tokenconst.ErrInvalidAddress)
	}
}

func checkUsableAddress(addr interop.Hash160) {
	if !isUsableAddress(addr) {
		panic(common.ErrWitnessFailed)
	}
}

// isUsableAddress checks if the sender is either a correct NEO address or SC address.
func isUsableAddress(addr interop.Hash160) bool {
	if runtime.CheckWitness(addr) {
		return true
	}

	// Check if a smart contract is calling script hash
	callingScriptHash := runtime.GetCallingScriptHash()
	return callingScriptHash.Equals(addr)
}
