// Package content contains RPC wrappers for Sarafan Content contract.
package content

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
)

// Publication is a contract-specific content.Publication type used by its methods.
type Publication struct {
	Publisher util.Uint160
	Magnet []byte
	Size *big.Int
	Created *big.Int
	Duration *big.Int
	Awards *big.Int
	Awarded *big.Int
	Abuses *big.Int
}

// AbuseReport is a contract-specific content.AbuseReport type used by its methods.
type AbuseReport struct {
	Reporter util.Uint160
	Tag []byte
}

// PostEvent represents "Post" event emitted by the contract.
type PostEvent struct {
	Publisher util.Uint160
	Magnet []byte
	Size *big.Int
	Duration *big.Int
	Fee *big.Int
}

// AwardEvent represents "Award" event emitted by the contract.
type AwardEvent struct {
	From util.Uint160
	Magnet []byte
	Amount *big.Int
}

// AbuseEvent represents "Abuse" event emitted by the contract.
type AbuseEvent struct {
	Reporter util.Uint160
	Magnet []byte
	Tag []byte
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
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

// AbuseReports invokes `abuseReports` method of contract.
func (c *ContractReader) AbuseReports(magnet []byte) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "abuseReports", magnet))
}

// AbuseReportsExpanded is similar to AbuseReports (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) AbuseReportsExpanded(magnet []byte, _numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "abuseReports", _numOfIteratorItems, magnet))
}

// Fee invokes `fee` method of contract.
func (c *ContractReader) Fee(size *big.Int, duration *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "fee", size, duration))
}

// Get invokes `get` method of contract.
func (c *ContractReader) Get(magnet []byte) (*Publication, error) {
	return itemToPublication(unwrap.Item(c.invoker.Call(c.hash, "get", magnet)))
}

// Owner invokes `owner` method of contract.
func (c *ContractReader) Owner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "owner"))
}

// PublicationsOf invokes `publicationsOf` method of contract.
func (c *ContractReader) PublicationsOf(publisher util.Uint160) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "publicationsOf", publisher))
}

// PublicationsOfExpanded is similar to PublicationsOf (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) PublicationsOfExpanded(publisher util.Uint160, _numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "publicationsOf", _numOfIteratorItems, publisher))
}

// Token invokes `token` method of contract.
func (c *ContractReader) Token() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "token"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Abuse creates a transaction invoking `abuse` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Abuse(reporter util.Uint160, magnet []byte, tag []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "abuse", reporter, magnet, tag)
}

// AbuseTransaction creates a transaction invoking `abuse` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AbuseTransaction(reporter util.Uint160, magnet []byte, tag []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "abuse", reporter, magnet, tag)
}

// AbuseUnsigned creates a transaction invoking `abuse` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AbuseUnsigned(reporter util.Uint160, magnet []byte, tag []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "abuse", nil, reporter, magnet, tag)
}

// Award creates a transaction invoking `award` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Award(from util.Uint160, magnet []byte, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "award", from, magnet, amount)
}

// AwardTransaction creates a transaction invoking `award` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AwardTransaction(from util.Uint160, magnet []byte, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "award", from, magnet, amount)
}

// AwardUnsigned creates a transaction invoking `award` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AwardUnsigned(from util.Uint160, magnet []byte, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "award", nil, from, magnet, amount)
}

// Post creates a transaction invoking `post` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Post(publisher util.Uint160, magnet []byte, size *big.Int, duration *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "post", publisher, magnet, size, duration)
}

// PostTransaction creates a transaction invoking `post` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) PostTransaction(publisher util.Uint160, magnet []byte, size *big.Int, duration *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "post", publisher, magnet, size, duration)
}

// PostUnsigned creates a transaction invoking `post` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) PostUnsigned(publisher util.Uint160, magnet []byte, size *big.Int, duration *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "post", nil, publisher, magnet, size, duration)
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

// Withdraw creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Withdraw(to util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdraw", to, amount)
}

// WithdrawTransaction creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawTransaction(to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdraw", to, amount)
}

// WithdrawUnsigned creates a transaction invoking `withdraw` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) WithdrawUnsigned(to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdraw", nil, to, amount)
}

// itemToPublication converts stack item into *Publication.
func itemToPublication(item stackitem.Item, err error) (*Publication, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Publication)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Publication from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Publication) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 8 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Publisher, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Publisher: %w", err)
	}

	index++
	res.Magnet, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Magnet: %w", err)
	}

	index++
	res.Size, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Size: %w", err)
	}

	index++
	res.Created, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Created: %w", err)
	}

	index++
	res.Duration, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Duration: %w", err)
	}

	index++
	res.Awards, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Awards: %w", err)
	}

	index++
	res.Awarded, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Awarded: %w", err)
	}

	index++
	res.Abuses, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Abuses: %w", err)
	}

	return nil
}

// FromStackItem retrieves fields of AbuseReport from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *AbuseReport) FromStackItem(item stackitem.Item) error {
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
	res.Reporter, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Reporter: %w", err)
	}

	index++
	res.Tag, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Tag: %w", err)
	}

	return nil
}

// PostEventsFromApplicationLog retrieves a set of all emitted events
// with "Post" name from the provided [result.ApplicationLog].
func PostEventsFromApplicationLog(log *result.ApplicationLog) ([]*PostEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*PostEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Post" {
				continue
			}
			event := new(PostEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize PostEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to PostEvent or
// returns an error if it's not possible to do to so.
func (e *PostEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Publisher, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Publisher: %w", err)
	}

	index++
	e.Magnet, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Magnet: %w", err)
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

	index++
	e.Fee, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Fee: %w", err)
	}

	return nil
}

// AwardEventsFromApplicationLog retrieves a set of all emitted events
// with "Award" name from the provided [result.ApplicationLog].
func AwardEventsFromApplicationLog(log *result.ApplicationLog) ([]*AwardEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AwardEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Award" {
				continue
			}
			event := new(AwardEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AwardEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AwardEvent or
// returns an error if it's not possible to do to so.
func (e *AwardEvent) FromStackItem(item *stackitem.Array) error {
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
	e.From, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field From: %w", err)
	}

	index++
	e.Magnet, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Magnet: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// AbuseEventsFromApplicationLog retrieves a set of all emitted events
// with "Abuse" name from the provided [result.ApplicationLog].
func AbuseEventsFromApplicationLog(log *result.ApplicationLog) ([]*AbuseEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AbuseEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Abuse" {
				continue
			}
			event := new(AbuseEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AbuseEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AbuseEvent or
// returns an error if it's not possible to do to so.
func (e *AbuseEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Reporter, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Reporter: %w", err)
	}

	index++
	e.Magnet, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Magnet: %w", err)
	}

	index++
	e.Tag, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Tag: %w", err)
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
