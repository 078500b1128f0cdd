// Package auction contains RPC wrappers for Auction contract.
package auction

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
	"unicode/utf8"
)

// AuctionContractStatus is a contract-specific auction.ContractStatus type used by its methods.
type AuctionContractStatus struct {
	State *big.Int
	Reason string
	NewAddress util.Uint160
}

// AuctionPaginatedBids is a contract-specific auction.PaginatedBids type used by its methods.
type AuctionPaginatedBids struct {
	Balances []*big.Int
	Total *big.Int
}

// AuctionSaleState is a contract-specific auction.SaleState type used by its methods.
type AuctionSaleState struct {
	Info *CommonSaleInfo
	CurrentHighest *big.Int
	IsFinished bool
}

// CommonSaleInfo is a contract-specific common.SaleInfo type used by its methods.
type CommonSaleInfo struct {
	Name string
	EndBlock *big.Int
}

// BidEvent represents "Bid" event emitted by the contract.
type BidEvent struct {
	Bidder util.Uint160
	Amount *big.Int
	Total *big.Int
}

// BidRetractedEvent represents "BidRetracted" event emitted by the contract.
type BidRetractedEvent struct {
	Bidder util.Uint160
	Amount *big.Int
}

// ProceedsClaimedEvent represents "ProceedsClaimed" event emitted by the contract.
type ProceedsClaimedEvent struct {
	Winner util.Uint160
	Admin util.Uint160
	Amount *big.Int
}

// StatusChangedEvent represents "StatusChanged" event emitted by the contract.
type StatusChangedEvent struct {
	State *big.Int
}

// AdminChangedEvent represents "AdminChanged" event emitted by the contract.
type AdminChangedEvent struct {
	Admin util.Uint160
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

// ActiveBids invokes `activeBids` method of contract.
func (c *ContractReader) ActiveBids(start *big.Int, limit *big.Int) (*AuctionPaginatedBids, error) {
	return itemToAuctionPaginatedBids(unwrap.Item(c.invoker.Call(c.hash, "activeBids", start, limit)))
}

// Admin invokes `admin` method of contract.
func (c *ContractReader) Admin() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "admin"))
}

// IterateBids invokes `iterateBids` method of contract.
func (c *ContractReader) IterateBids() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "iterateBids"))
}

// IterateBidsExpanded is similar to IterateBids (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) IterateBidsExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "iterateBids", _numOfIteratorItems))
}

// SaleStatus invokes `saleStatus` method of contract.
func (c *ContractReader) SaleStatus() (*AuctionSaleState, error) {
	return itemToAuctionSaleState(unwrap.Item(c.invoker.Call(c.hash, "saleStatus")))
}

// Status invokes `status` method of contract.
func (c *ContractReader) Status() (*AuctionContractStatus, error) {
	return itemToAuctionContractStatus(unwrap.Item(c.invoker.Call(c.hash, "status")))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// ViewBid invokes `viewBid` method of contract.
func (c *ContractReader) ViewBid(owner util.Uint160, key string) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "viewBid", owner, key))
}

// Bid creates a transaction invoking `bid` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Bid(bidder util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "bid", bidder, amount)
}

// BidTransaction creates a transaction invoking `bid` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) BidTransaction(bidder util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "bid", bidder, amount)
}

// BidUnsigned creates a transaction invoking `bid` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) BidUnsigned(bidder util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "bid", nil, bidder, amount)
}

// ChangeAdmin creates a transaction invoking `changeAdmin` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ChangeAdmin(newAdmin util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "changeAdmin", newAdmin)
}

// ChangeAdminTransaction creates a transaction invoking `changeAdmin` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ChangeAdminTransaction(newAdmin util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "changeAdmin", newAdmin)
}

// ChangeAdminUnsigned creates a transaction invoking `changeAdmin` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ChangeAdminUnsigned(newAdmin util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "changeAdmin", nil, newAdmin)
}

// ClaimProceeds creates a transaction invoking `claimProceeds` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ClaimProceeds() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "claimProceeds")
}

// ClaimProceedsTransaction creates a transaction invoking `claimProceeds` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ClaimProceedsTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "claimProceeds")
}

// ClaimProceedsUnsigned creates a transaction invoking `claimProceeds` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ClaimProceedsUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "claimProceeds", nil)
}

// CreateViewingKey creates a transaction invoking `createViewingKey` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CreateViewingKey(owner util.Uint160, entropy []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createViewingKey", owner, entropy)
}

// CreateViewingKeyTransaction creates a transaction invoking `createViewingKey` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateViewingKeyTransaction(owner util.Uint160, entropy []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "createViewingKey", owner, entropy)
}

// CreateViewingKeyUnsigned creates a transaction invoking `createViewingKey` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateViewingKeyUnsigned(owner util.Uint160, entropy []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "createViewingKey", nil, owner, entropy)
}

// RetractBid creates a transaction invoking `retractBid` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RetractBid(bidder util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "retractBid", bidder)
}

// RetractBidTransaction creates a transaction invoking `retractBid` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RetractBidTransaction(bidder util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "retractBid", bidder)
}

// RetractBidUnsigned creates a transaction invoking `retractBid` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RetractBidUnsigned(bidder util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "retractBid", nil, bidder)
}

// SetStatus creates a transaction invoking `setStatus` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetStatus(state *big.Int, reason string, newAddress util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setStatus", state, reason, newAddress)
}

// SetStatusTransaction creates a transaction invoking `setStatus` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetStatusTransaction(state *big.Int, reason string, newAddress util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setStatus", state, reason, newAddress)
}

// SetStatusUnsigned creates a transaction invoking `setStatus` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetStatusUnsigned(state *big.Int, reason string, newAddress util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setStatus", nil, state, reason, newAddress)
}

// SetViewingKey creates a transaction invoking `setViewingKey` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetViewingKey(owner util.Uint160, key string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setViewingKey", owner, key)
}

// SetViewingKeyTransaction creates a transaction invoking `setViewingKey` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetViewingKeyTransaction(owner util.Uint160, key string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setViewingKey", owner, key)
}

// SetViewingKeyUnsigned creates a transaction invoking `setViewingKey` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetViewingKeyUnsigned(owner util.Uint160, key string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setViewingKey", nil, owner, key)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// itemToAuctionContractStatus converts stack item into *AuctionContractStatus.
func itemToAuctionContractStatus(item stackitem.Item, err error) (*AuctionContractStatus, error) {
	if err != nil {
		return nil, err
	}
	var res = new(AuctionContractStatus)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of AuctionContractStatus from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *AuctionContractStatus) FromStackItem(item stackitem.Item) error {
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
	res.State, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field State: %w", err)
	}

	index++
	res.Reason, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Reason: %w", err)
	}

	index++
	res.NewAddress, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field NewAddress: %w", err)
	}

	return nil
}

// itemToAuctionPaginatedBids converts stack item into *AuctionPaginatedBids.
func itemToAuctionPaginatedBids(item stackitem.Item, err error) (*AuctionPaginatedBids, error) {
	if err != nil {
		return nil, err
	}
	var res = new(AuctionPaginatedBids)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of AuctionPaginatedBids from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *AuctionPaginatedBids) FromStackItem(item stackitem.Item) error {
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
	res.Balances, err = func (item stackitem.Item) ([]*big.Int, error) {
		arr, ok := item.Value().([]stackitem.Item)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([]*big.Int, len(arr))
		for i := range res {
			res[i], err = arr[i].TryInteger()
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return res, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Balances: %w", err)
	}

	index++
	res.Total, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Total: %w", err)
	}

	return nil
}

// itemToAuctionSaleState converts stack item into *AuctionSaleState.
func itemToAuctionSaleState(item stackitem.Item, err error) (*AuctionSaleState, error) {
	if err != nil {
		return nil, err
	}
	var res = new(AuctionSaleState)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of AuctionSaleState from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *AuctionSaleState) FromStackItem(item stackitem.Item) error {
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
	res.Info, err = itemToCommonSaleInfo(arr[index], nil)
	if err != nil {
		return fmt.Errorf("field Info: %w", err)
	}

	index++
	res.CurrentHighest, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CurrentHighest: %w", err)
	}

	index++
	res.IsFinished, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field IsFinished: %w", err)
	}

	return nil
}

// itemToCommonSaleInfo converts stack item into *CommonSaleInfo.
func itemToCommonSaleInfo(item stackitem.Item, err error) (*CommonSaleInfo, error) {
	if err != nil {
		return nil, err
	}
	var res = new(CommonSaleInfo)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of CommonSaleInfo from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *CommonSaleInfo) FromStackItem(item stackitem.Item) error {
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
	res.Name, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Name: %w", err)
	}

	index++
	res.EndBlock, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field EndBlock: %w", err)
	}

	return nil
}

// BidEventsFromApplicationLog retrieves a set of all emitted events
// with "Bid" name from the provided [result.ApplicationLog].
func BidEventsFromApplicationLog(log *result.ApplicationLog) ([]*BidEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*BidEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Bid" {
				continue
			}
			event := new(BidEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize BidEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to BidEvent or
// returns an error if it's not possible to do to so.
func (e *BidEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Bidder, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Bidder: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	e.Total, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Total: %w", err)
	}

	return nil
}

// BidRetractedEventsFromApplicationLog retrieves a set of all emitted events
// with "BidRetracted" name from the provided [result.ApplicationLog].
func BidRetractedEventsFromApplicationLog(log *result.ApplicationLog) ([]*BidRetractedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*BidRetractedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "BidRetracted" {
				continue
			}
			event := new(BidRetractedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize BidRetractedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to BidRetractedEvent or
// returns an error if it's not possible to do to so.
func (e *BidRetractedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Bidder, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Bidder: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// ProceedsClaimedEventsFromApplicationLog retrieves a set of all emitted events
// with "ProceedsClaimed" name from the provided [result.ApplicationLog].
func ProceedsClaimedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ProceedsClaimedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ProceedsClaimedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ProceedsClaimed" {
				continue
			}
			event := new(ProceedsClaimedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ProceedsClaimedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ProceedsClaimedEvent or
// returns an error if it's not possible to do to so.
func (e *ProceedsClaimedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Winner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Winner: %w", err)
	}

	index++
	e.Admin, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Admin: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// StatusChangedEventsFromApplicationLog retrieves a set of all emitted events
// with "StatusChanged" name from the provided [result.ApplicationLog].
func StatusChangedEventsFromApplicationLog(log *result.ApplicationLog) ([]*StatusChangedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*StatusChangedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "StatusChanged" {
				continue
			}
			event := new(StatusChangedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize StatusChangedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to StatusChangedEvent or
// returns an error if it's not possible to do to so.
func (e *StatusChangedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.State, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field State: %w", err)
	}

	return nil
}

// AdminChangedEventsFromApplicationLog retrieves a set of all emitted events
// with "AdminChanged" name from the provided [result.ApplicationLog].
func AdminChangedEventsFromApplicationLog(log *result.ApplicationLog) ([]*AdminChangedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AdminChangedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AdminChanged" {
				continue
			}
			event := new(AdminChangedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AdminChangedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AdminChangedEvent or
// returns an error if it's not possible to do to so.
func (e *AdminChangedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Admin, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Admin: %w", err)
	}

	return nil
}
