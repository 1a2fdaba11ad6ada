package content

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/sarafan-network/sarafan-contract/common"
	cst "github.com/sarafan-network/sarafan-contract/contracts/content/contentconst"
)

type (
	// Publication is a record of the published content.
	Publication struct {
		Publisher interop.Hash160
		Magnet    []byte
		Size      int
		// Created is a block timestamp of the publication in milliseconds.
		Created int
		// Duration is a storage duration in months.
		Duration int
		// Awards is a number of awards received.
		Awards int
		// Awarded is a total amount of SRFN the publisher was awarded with.
		Awarded int
		// Abuses is a number of abuse reports filed.
		Abuses int
	}

	// AbuseReport is a single abuse report on the publication.
	AbuseReport struct {
		Reporter interop.Hash160
		Tag      []byte
	}
)

const (
	tokenContractKey = 't'

	publicationPrefix = 'm'
	publisherPrefix   = 'p'
	abusePrefix       = 'b'
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

	runtime.Log("content contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess(storage.GetReadOnlyContext()) {
		panic("only owner can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("content contract updated")
}

// OnNEP17Payment accepts SRFN deposits to the registry reserve. Any other
// token is rejected.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	ctx := storage.GetReadOnlyContext()
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(tokenContract(ctx)) {
		panic(cst.ErrOnlyToken)
	}
}

// Post publishes content identified by magnet. Publisher pays the storage fee
// through the allowance given to Content contract in Token contract. Zero
// duration means DefaultDuration months.
//
// It panics with ErrAlreadyPublished if magnet is already known and with
// ErrContentTooLarge if size exceeds MaxContentSize.
func Post(publisher interop.Hash160, magnet []byte, size, duration int) {
	common.CheckWitness(publisher)

	if len(magnet) == 0 {
		panic(cst.ErrEmptyMagnet)
	}

	ctx := storage.GetContext()

	key := append([]byte{publicationPrefix}, magnet...)
	if storage.Get(ctx, key) != nil {
		panic(cst.ErrAlreadyPublished)
	}

	if size > cst.MaxContentSize {
		panic(cst.ErrContentTooLarge)
	}

	common.CheckAmount(size)
	common.CheckAmount(duration)

	if duration == 0 {
		duration = cst.DefaultDuration
	}

	addrToken := tokenContract(ctx)
	fee := publicationFee(addrToken, size, duration)
	transferFrom(addrToken, publisher, runtime.GetExecutingScriptHash(), fee)

	pub := Publication{
		Publisher: publisher,
		Magnet:    magnet,
		Size:      size,
		Created:   runtime.GetTime(),
		Duration:  duration,
		Awards:    0,
		Awarded:   0,
		Abuses:    0,
	}

	common.SetSerialized(ctx, key, pub)
	storage.Put(ctx, publisherKey(publisher, magnet), magnet)

	runtime.Notify("Post", publisher, magnet, size, duration, fee)
}

// Award moves amount of SRFN from the sender to the publisher of the magnet
// through the allowance given to Content contract.
func Award(from interop.Hash160, magnet []byte, amount int) {
	common.CheckWitness(from)

	if amount <= 0 {
		panic(cst.ErrZeroAward)
	}

	ctx := storage.GetContext()
	pub := getPublication(ctx, magnet)

	transferFrom(tokenContract(ctx), from, pub.Publisher, amount)

	pub.Awards = common.AddAmount(pub.Awards, 1)
	pub.Awarded = common.AddAmount(pub.Awarded, amount)
	common.SetSerialized(ctx, append([]byte{publicationPrefix}, magnet...), pub)

	runtime.Notify("Award", from, magnet, amount)
}

// Abuse files an abuse report on the publication. Every reporter may report
// a publication only once, the report costs AbuseFee SRFN paid through the
// allowance given to Content contract.
func Abuse(reporter interop.Hash160, magnet []byte, tag []byte) {
	common.CheckWitness(reporter)

	ctx := storage.GetContext()
	pub := getPublication(ctx, magnet)

	key := append(abuseKeyPrefix(magnet), reporter...)
	if storage.Get(ctx, key) != nil {
		panic(cst.ErrAlreadyReported)
	}

	transferFrom(tokenContract(ctx), reporter, runtime.GetExecutingScriptHash(), cst.AbuseFee)

	common.SetSerialized(ctx, key, AbuseReport{
		Reporter: reporter,
		Tag:      tag,
	})

	pub.Abuses = common.AddAmount(pub.Abuses, 1)
	common.SetSerialized(ctx, append([]byte{publicationPrefix}, magnet...), pub)

	runtime.Notify("Abuse", reporter, magnet, tag)
}

// Get returns the publication by its magnet.
//
// If the publication doesn't exist, it panics with ErrUnknownMagnet.
func Get(magnet []byte) Publication {
	return getPublication(storage.GetReadOnlyContext(), magnet)
}

// Fee returns the amount of SRFN charged for publication of size bytes for
// duration months. Zero duration means DefaultDuration months.
func Fee(size, duration int) int {
	common.CheckAmount(size)
	common.CheckAmount(duration)

	if duration == 0 {
		duration = cst.DefaultDuration
	}

	return publicationFee(tokenContract(storage.GetReadOnlyContext()), size, duration)
}

// PublicationsOf iterates over magnets published by the specified publisher.
func PublicationsOf(publisher interop.Hash160) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	key := append([]byte{publisherPrefix}, publisher...)
	return storage.Find(ctx, key, storage.ValuesOnly)
}

// AbuseReports iterates over abuse reports filed on the publication.
func AbuseReports(magnet []byte) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, abuseKeyPrefix(magnet), storage.ValuesOnly|storage.DeserializeValues)
}

// Withdraw transfers SRFN collected as fees to the recipient. It can be
// invoked only by the owner.
func Withdraw(to interop.Hash160, amount int) {
	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(common.Owner(ctx))
	common.CheckAmount(amount)

	ok := contract.Call(tokenContract(ctx), "transfer", contract.All,
		runtime.GetExecutingScriptHash(), to, amount, nil).(bool)
	if !ok {
		panic("insufficient balance")
	}
}

// Token returns the address of Token contract.
func Token() interop.Hash160 {
	return tokenContract(storage.GetReadOnlyContext())
}

// Owner returns the owner of Content contract.
func Owner() interop.Hash160 {
	return common.Owner(storage.GetReadOnlyContext())
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func publicationFee(addrToken interop.Hash160, size, duration int) int {
	rate := contract.Call(addrToken, "megabyteMonthCost", contract.ReadOnly).(int)
	return common.AddAmount(common.StorageCost(size, duration, rate), cst.PublicationFee)
}

func transferFrom(addrToken, from, to interop.Hash160, amount int) {
	ok := contract.Call(addrToken, "transferFrom", contract.All,
		runtime.GetExecutingScriptHash(), from, to, amount).(bool)
	if !ok {
		panic("insufficient allowance")
	}
}

func tokenContract(ctx storage.Context) interop.Hash160 {
	return common.LinkedContract(ctx, tokenContractKey, "token")
}

func getPublication(ctx storage.Context, magnet []byte) Publication {
	data := storage.Get(ctx, append([]byte{publicationPrefix}, magnet...))
	if data == nil {
		panic(cst.ErrUnknownMagnet)
	}

	return std.Deserialize(data.([]byte)).(Publication)
}

func publisherKey(publisher interop.Hash160, magnet []byte) []byte {
	key := append([]byte{publisherPrefix}, publisher...)
	return append(key, magnet...)
}

// abuseKeyPrefix uses magnet digest so that reports of magnets sharing a
// common prefix are never mixed up.
func abuseKeyPrefix(magnet []byte) []byte {
	return append([]byte{abusePrefix}, crypto.Sha256(magnet)...)
}
