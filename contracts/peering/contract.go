package peering

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/sarafan-network/sarafan-contract/common"
	cst "github.com/sarafan-network/sarafan-contract/contracts/peering/peeringconst"
	"github.com/sarafan-network/sarafan-contract/contracts/peering/resolution"
)

// Commitment is a promise of the peer to store data for the given duration.
type Commitment struct {
	Peer     interop.Hash160
	DataHash []byte
	Size     int
	// Duration is a storage duration in months.
	Duration int
	// Committed is a block timestamp of the commitment in milliseconds.
	Committed int
	State     resolution.Type
	// Resolver is a verifier or a rejecter of the commitment depending on
	// State.
	Resolver interop.Hash160
	// Resolved is a block timestamp of the resolution in milliseconds.
	Resolved   int
	ProvedSize int
	Paid       bool
}

const (
	tokenContractKey = 't'
	noWaitKey        = 'w'

	hostPrefix       = 'h'
	commitmentPrefix = 'c'
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

	addrToken := args[0].(interop.Hash160)
	owner := common.DeployOwner(args[1].(interop.Hash160))

	if len(addrToken) != interop.Hash160Len {
		panic("incorrect length of contract script hash")
	}

	storage.Put(ctx, tokenContractKey, addrToken)
	storage.Put(ctx, common.OwnerKey, owner)

	runtime.Log("peering contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess(storage.GetReadOnlyContext()) {
		panic("only owner can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("peering contract updated")
}

// OnNEP17Payment accepts SRFN deposits to the reward reserve. Any other token
// is rejected.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	ctx := storage.GetReadOnlyContext()
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(tokenContract(ctx)) {
		panic(cst.ErrOnlyToken)
	}
}

// Register saves network address of the peer. Repeated registration
// overwrites the previous address.
func Register(peer interop.Hash160, host []byte) {
	common.CheckWitness(peer)

	if len(host) == 0 {
		panic("empty host")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, append([]byte{hostPrefix}, peer...), host)

	runtime.Notify("Register", peer, host)
}

// Host returns network address of the registered peer or nil.
func Host(peer interop.Hash160) []byte {
	ctx := storage.GetReadOnlyContext()
	host := storage.Get(ctx, append([]byte{hostPrefix}, peer...))
	if host == nil {
		return nil
	}

	return host.([]byte)
}

// Commit registers a pending commitment of the peer to store size bytes of
// data identified by dataHash for duration months.
//
// It panics with ErrAlreadyCommitted if dataHash is already committed.
func Commit(peer interop.Hash160, dataHash []byte, size, duration int) {
	common.CheckWitness(peer)

	if len(dataHash) == 0 {
		panic(cst.ErrEmptyDataHash)
	}

	ctx := storage.GetContext()

	key := append([]byte{commitmentPrefix}, dataHash...)
	if storage.Get(ctx, key) != nil {
		panic(cst.ErrAlreadyCommitted)
	}

	common.CheckAmount(size)
	common.CheckAmount(duration)

	c := Commitment{
		Peer:       peer,
		DataHash:   dataHash,
		Size:       size,
		Duration:   duration,
		Committed:  runtime.GetTime(),
		State:      resolution.Pending,
		Resolver:   nil,
		Resolved:   0,
		ProvedSize: 0,
		Paid:       false,
	}

	common.SetSerialized(ctx, key, c)

	runtime.Notify("Commit", peer, dataHash, size, duration)
}

// Verify confirms the pending commitment. provedSize is the amount of data
// the verifier managed to check.
//
// It panics with ErrAlreadyResolved if the commitment is not pending.
func Verify(verifier interop.Hash160, dataHash []byte, provedSize int) {
	common.CheckWitness(verifier)
	common.CheckAmount(provedSize)

	ctx := storage.GetContext()
	c := pendingCommitment(ctx, dataHash)

	c.State = resolution.Verified
	c.Resolver = verifier
	c.Resolved = runtime.GetTime()
	c.ProvedSize = provedSize

	common.SetSerialized(ctx, append([]byte{commitmentPrefix}, dataHash...), c)

	runtime.Notify("Verify", verifier, dataHash, provedSize)
}

// Reject declines the pending commitment.
//
// It panics with ErrAlreadyResolved if the commitment is not pending.
func Reject(rejecter interop.Hash160, dataHash []byte) {
	common.CheckWitness(rejecter)

	ctx := storage.GetContext()
	c := pendingCommitment(ctx, dataHash)

	c.State = resolution.Rejected
	c.Resolver = rejecter
	c.Resolved = runtime.GetTime()

	common.SetSerialized(ctx, append([]byte{commitmentPrefix}, dataHash...), c)

	runtime.Notify("Reject", rejecter, dataHash)
}

// Payout pays the storage reward of the verified commitment to the
// recipient. It must be signed by the committed peer. Unless waiting is
// disabled, the reward is available only after commitment duration has
// passed since verification.
func Payout(dataHash []byte, to interop.Hash160) {
	if len(to) != interop.Hash160Len {
		panic("invalid address")
	}

	ctx := storage.GetContext()
	c := getCommitment(ctx, dataHash)

	common.CheckWitness(c.Peer)

	if c.State != resolution.Verified {
		panic(cst.ErrNotVerified)
	}

	if c.Paid {
		panic(cst.ErrAlreadyPaid)
	}

	if waitPayout(ctx) && runtime.GetTime() < c.Resolved+c.Duration*cst.MonthDuration {
		panic(cst.ErrWindowNotElapsed)
	}

	addrToken := tokenContract(ctx)
	reward := commitmentReward(addrToken, c)

	c.Paid = true
	common.SetSerialized(ctx, append([]byte{commitmentPrefix}, dataHash...), c)

	if reward > 0 {
		contract.Call(addrToken, "payout", contract.All, to, reward)
	}

	runtime.Notify("Payout", dataHash, to, reward)
}

// Get returns the commitment by its data hash.
//
// If the commitment doesn't exist, it panics with ErrUnknownCommitment.
func Get(dataHash []byte) Commitment {
	return getCommitment(storage.GetReadOnlyContext(), dataHash)
}

// Reward returns the storage reward of the commitment at the current
// megabyte-month rate. Only the proved part of the data is rewarded.
func Reward(dataHash []byte) int {
	ctx := storage.GetReadOnlyContext()
	c := getCommitment(ctx, dataHash)
	return commitmentReward(tokenContract(ctx), c)
}

// SetWaitPayout enables or disables the payout window check. It can be
// invoked only by the owner.
func SetWaitPayout(wait bool) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(common.Owner(ctx))

	if wait {
		storage.Delete(ctx, noWaitKey)
	} else {
		storage.Put(ctx, noWaitKey, []byte{1})
	}
}

// WaitPayout returns true if payouts wait for the commitment duration to
// pass.
func WaitPayout() bool {
	return waitPayout(storage.GetReadOnlyContext())
}

// Token returns the address of Token contract.
func Token() interop.Hash160 {
	return tokenContract(storage.GetReadOnlyContext())
}

// Owner returns the owner of Peering contract.
func Owner() interop.Hash160 {
	return common.Owner(storage.GetReadOnlyContext())
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func commitmentReward(addrToken interop.Hash160, c Commitment) int {
	if c.State != resolution.Verified {
		return 0
	}

	size := c.ProvedSize
	if c.Size < size {
		size = c.Size
	}

	rate := contract.Call(addrToken, "megabyteMonthCost", contract.ReadOnly).(int)
	return common.StorageCost(size, c.Duration, rate)
}

func pendingCommitment(ctx storage.Context, dataHash []byte) Commitment {
	c := getCommitment(ctx, dataHash)

	switch c.State {
	case resolution.Pending:
		return c
	case resolution.Verified, resolution.Rejected:
		panic(cst.ErrAlreadyResolved)
	default:
		panic("unexpected resolution state")
	}
}

func getCommitment(ctx storage.Context, dataHash []byte) Commitment {
	data := storage.Get(ctx, append([]byte{commitmentPrefix}, dataHash...))
	if data == nil {
		panic(cst.ErrUnknownCommitment)
	}

	return std.Deserialize(data.([]byte)).(Commitment)
}

func waitPayout(ctx storage.Context) bool {
	return storage.Get(ctx, noWaitKey) == nil
}

func tokenContract(ctx storage.Context) interop.Hash160 {
	return common.LinkedContract(ctx, tokenContractKey, "token")
}
