// Package peering contains RPC wrappers for Sarafan Peering contract.
package peering

import (
	"errors"
	"fmt"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
)

// Commitment is a contract-specific peering.Commitment type used by its methods.
type Commitment struct {
	Peer util.Uint160
	DataHash []byte
	Size *big.Int
	Duration *big.Int
	Committed *big.Int
	State *big.Int
	Resolver util.Uint160
	Resolved *big.Int
	ProvedSize *big.Int
	Paid bool
}

// RegisterEvent represents "Register" event emitted by the contract.
type RegisterEvent struct {
	Peer util.Uint160
	Host []byte
}

// CommitEvent represents "Commit" event emitted by the contract.
type CommitEvent struct {
	Peer util.Uint160
	DataHash []byte
	Size *big.Int
	Duration *big.Int
}

// VerifyEvent represents "Verify" event emitted by the contract.
type VerifyEvent struct {
	Verifier util.Uint160
	DataHash []byte
	ProvedSize *big.Int
}

// RejectEvent represents "Reject" event emitted by the contract.
type RejectEvent struct {
	Rejecter util.Uint160
	DataHash []byte
}

// PayoutEvent represents "Payout" event emitted by the contract.
type PayoutEvent struct {
	DataHash []byte
	To util.Uint160
	Amount *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Get invokes `get` method of contract.
func (c *ContractReader) Get(dataHash []byte) (*Commitment, error) {
	return itemToCommitment(unwrap.Item(c.invoker.Call(c.hash, "get", dataHash)))
}

// Host invokes `host` method of contract.
func (c *ContractReader) Host(peer util.Uint160) ([]byte, error) {
	return unwrap.Bytes(c.invoker.Call(c.hash, "host", peer))
}

// Owner invokes `owner` method of contract.
func (c *ContractReader) Owner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "owner"))
}

// Reward invokes `reward` method of contract.
func (c *ContractReader) Reward(dataHash []byte) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "reward", dataHash))
}

// Token invokes `token` method of contract.
func (c *ContractReader) Token() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "token"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// WaitPayout invokes `waitPayout` method of contract.
func (c *ContractReader) WaitPayout() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "waitPayout"))
}

// Commit creates a transaction invoking `commit` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Commit(peer util.Uint160, dataHash []byte, size *big.Int, duration *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "commit", peer, dataHash, size, duration)
}

// CommitTransaction creates a transaction invoking `commit` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CommitTransaction(peer util.Uint160, dataHash []byte, size *big.Int, duration *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "commit", peer, dataHash, size, duration)
}

// CommitUnsigned creates a transaction invoking `commit` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CommitUnsigned(peer util.Uint160, dataHash []byte, size *big.Int, duration *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "commit", nil, peer, dataHash, size, duration)
}

// Payout creates a transaction invoking `payout` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Payout(dataHash []byte, to util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "payout", dataHash, to)
}

// PayoutTransaction creates a transaction invoking `payout` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) PayoutTransaction(dataHash []byte, to util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "payout", dataHash, to)
}

// PayoutUnsigned creates a transaction invoking `payout` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) PayoutUnsigned(dataHash []byte, to util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "payout", nil, dataHash, to)
}

// Register creates a transaction invoking `register` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Register(peer util.Uint160, host []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "register", peer, host)
}

// RegisterTransaction creates a transaction invoking `register` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RegisterTransaction(peer util.Uint160, host []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "register", peer, host)
}

// RegisterUnsigned creates a transaction invoking `register` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RegisterUnsigned(peer util.Uint160, host []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "register", nil, peer, host)
}

// Reject creates a transaction invoking `reject` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Reject(rejecter util.Uint160, dataHash []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "reject", rejecter, dataHash)
}

// RejectTransaction creates a transaction invoking `reject` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RejectTransaction(rejecter util.Uint160, dataHash []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "reject", rejecter, dataHash)
}

// RejectUnsigned creates a transaction invoking `reject` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RejectUnsigned(rejecter util.Uint160, dataHash []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "reject", nil, rejecter, dataHash)
}

// SetWaitPayout creates a transaction invoking `setWaitPayout` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetWaitPayout(wait bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setWaitPayout", wait)
}

// SetWaitPayoutTransaction creates a transaction invoking `setWaitPayout` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetWaitPayoutTransaction(wait bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setWaitPayout", wait)
}

// SetWaitPayoutUnsigned creates a transaction invoking `setWaitPayout` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetWaitPayoutUnsigned(wait bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setWaitPayout", nil, wait)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// Verify creates a transaction invoking `verify` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Verify(verifier util.Uint160, dataHash []byte, provedSize *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "verify", verifier, dataHash, provedSize)
}

// VerifyTransaction creates a transaction invoking `verify` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) VerifyTransaction(verifier util.Uint160, dataHash []byte, provedSize *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "verify", verifier, dataHash, provedSize)
}

// VerifyUnsigned creates a transaction invoking `verify` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) VerifyUnsigned(verifier util.Uint160, dataHash []byte, provedSize *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "verify", nil, verifier, dataHash, provedSize)
}

// itemToCommitment converts stack item into *Commitment.
func itemToCommitment(item stackitem.Item, err error) (*Commitment, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Commitment)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Commitment from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Commitment) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 10 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Peer, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Peer: %w", err)
	}

	index++
	res.DataHash, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field DataHash: %w", err)
	}

	index++
	res.Size, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Size: %w", err)
	}

	index++
	res.Duration, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Duration: %w", err)
	}

	index++
	res.Committed, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Committed: %w", err)
	}

	index++
	res.State, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field State: %w", err)
	}

	index++
	// Pending commitments have no resolver.
	if _, null := arr[index].(stackitem.Null); !null {
		res.Resolver, err = itemToUint160(arr[index])
		if err != nil {
			return fmt.Errorf("field Resolver: %w", err)
		}
	}

	index++
	res.Resolved, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Resolved: %w", err)
	}

	index++
	res.ProvedSize, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ProvedSize: %w", err)
	}

	index++
	res.Paid, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Paid: %w", err)
	}

	return nil
}

// RegisterEventsFromApplicationLog retrieves a set of all emitted events
// with "Register" name from the provided [result.ApplicationLog].
func RegisterEventsFromApplicationLog(log *result.ApplicationLog) ([]*RegisterEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RegisterEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Register" {
				continue
			}
			event := new(RegisterEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RegisterEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RegisterEvent or
// returns an error if it's not possible to do to so.
func (e *RegisterEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Peer, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Peer: %w", err)
	}

	index++
	e.Host, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Host: %w", err)
	}

	return nil
}

// CommitEventsFromApplicationLog retrieves a set of all emitted events
// with "Commit" name from the provided [result.ApplicationLog].
func CommitEventsFromApplicationLog(log *result.ApplicationLog) ([]*CommitEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*CommitEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Commit" {
				continue
			}
			event := new(CommitEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize CommitEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to CommitEvent or
// returns an error if it's not possible to do to so.
func (e *CommitEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Peer, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Peer: %w", err)
	}

	index++
	e.DataHash, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field DataHash: %w", err)
	}

	index++
	e.Size, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Size: %w", err)
	}

	index++
	e.Duration, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Duration: %w", err)
	}

	return nil
}

// VerifyEventsFromApplicationLog retrieves a set of all emitted events
// with "Verify" name from the provided [result.ApplicationLog].
func VerifyEventsFromApplicationLog(log *result.ApplicationLog) ([]*VerifyEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*VerifyEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Verify" {
				continue
			}
			event := new(VerifyEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize VerifyEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to VerifyEvent or
// returns an error if it's not possible to do to so.
func (e *VerifyEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Verifier, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Verifier: %w", err)
	}

	index++
	e.DataHash, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field DataHash: %w", err)
	}

	index++
	e.ProvedSize, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ProvedSize: %w", err)
	}

	return nil
}

// RejectEventsFromApplicationLog retrieves a set of all emitted events
// with "Reject" name from the provided [result.ApplicationLog].
func RejectEventsFromApplicationLog(log *result.ApplicationLog) ([]*RejectEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RejectEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Reject" {
				continue
			}
			event := new(RejectEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RejectEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RejectEvent or
// returns an error if it's not possible to do to so.
func (e *RejectEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Rejecter, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Rejecter: %w", err)
	}

	index++
	e.DataHash, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field DataHash: %w", err)
	}

	return nil
}

// PayoutEventsFromApplicationLog retrieves a set of all emitted events
// with "Payout" name from the provided [result.ApplicationLog].
func PayoutEventsFromApplicationLog(log *result.ApplicationLog) ([]*PayoutEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*PayoutEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Payout" {
				continue
			}
			event := new(PayoutEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize PayoutEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to PayoutEvent or
// returns an error if it's not possible to do to so.
func (e *PayoutEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.DataHash, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field DataHash: %w", err)
	}

	index++
	e.To, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field To: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

func itemToUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	u, err := util.Uint160DecodeBytesBE(b)
	if err != nil {
		return util.Uint160{}, err
	}
	return u, nil
}
