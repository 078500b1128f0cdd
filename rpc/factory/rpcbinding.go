// Package factory contains RPC wrappers for Auction Factory contract.
package factory

import (
	"errors"
	"fmt"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
	"unicode/utf8"
)

// CommonSaleInfo is a contract-specific common.SaleInfo type used by its methods.
type CommonSaleInfo struct {
	Name string
	EndBlock *big.Int
}

// FactoryAuctionEntry is a contract-specific factory.AuctionEntry type used by its methods.
type FactoryAuctionEntry struct {
	Address util.Uint160
	CodeHash util.Uint256
	Info *CommonSaleInfo
}

// FactoryPaginatedAuctions is a contract-specific factory.PaginatedAuctions type used by its methods.
type FactoryPaginatedAuctions struct {
	Entries []*FactoryAuctionEntry
	Total *big.Int
}

// AuctionCreatedEvent represents "AuctionCreated" event emitted by the contract.
type AuctionCreatedEvent struct {
	Index *big.Int
	Name string
	EndBlock *big.Int
}

// AuctionDeployedEvent represents "AuctionDeployed" event emitted by the contract.
type AuctionDeployedEvent struct {
	Index *big.Int
	Auction util.Uint160
}

// AdminChangedEvent represents "AdminChanged" event emitted by the contract.
type AdminChangedEvent struct {
	Admin util.Uint160
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

// Admin invokes `admin` method of contract.
func (c *ContractReader) Admin() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "admin"))
}

// ListAuctions invokes `listAuctions` method of contract.
func (c *ContractReader) ListAuctions(start *big.Int, limit *big.Int) (*FactoryPaginatedAuctions, error) {
	return itemToFactoryPaginatedAuctions(unwrap.Item(c.invoker.Call(c.hash, "listAuctions", start, limit)))
}

// TemplateChecksum invokes `templateChecksum` method of contract.
func (c *ContractReader) TemplateChecksum() (util.Uint256, error) {
	return unwrap.Uint256(c.invoker.Call(c.hash, "templateChecksum"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
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

// CreateAuction creates a transaction invoking `createAuction` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CreateAuction(admin util.Uint160, name string, endBlock *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createAuction", admin, name, endBlock)
}

// CreateAuctionTransaction creates a transaction invoking `createAuction` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateAuctionTransaction(admin util.Uint160, name string, endBlock *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "createAuction", admin, name, endBlock)
}

// CreateAuctionUnsigned creates a transaction invoking `createAuction` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateAuctionUnsigned(admin util.Uint160, name string, endBlock *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "createAuction", nil, admin, name, endBlock)
}

// OnAuctionDeployed creates a transaction invoking `onAuctionDeployed` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) OnAuctionDeployed(replyID *big.Int, auction util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "onAuctionDeployed", replyID, auction)
}

// OnAuctionDeployedTransaction creates a transaction invoking `onAuctionDeployed` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) OnAuctionDeployedTransaction(replyID *big.Int, auction util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "onAuctionDeployed", replyID, auction)
}

// OnAuctionDeployedUnsigned creates a transaction invoking `onAuctionDeployed` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) OnAuctionDeployedUnsigned(replyID *big.Int, auction util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "onAuctionDeployed", nil, replyID, auction)
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

// itemToFactoryAuctionEntry converts stack item into *FactoryAuctionEntry.
func itemToFactoryAuctionEntry(item stackitem.Item, err error) (*FactoryAuctionEntry, error) {
	if err != nil {
		return nil, err
	}
	var res = new(FactoryAuctionEntry)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of FactoryAuctionEntry from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *FactoryAuctionEntry) FromStackItem(item stackitem.Item) error {
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
	res.Address, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Address: %w", err)
	}

	index++
	res.CodeHash, err = func (item stackitem.Item) (util.Uint256, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint256{}, err
		}
		u, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return util.Uint256{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field CodeHash: %w", err)
	}

	index++
	res.Info, err = itemToCommonSaleInfo(arr[index], nil)
	if err != nil {
		return fmt.Errorf("field Info: %w", err)
	}

	return nil
}

// itemToFactoryPaginatedAuctions converts stack item into *FactoryPaginatedAuctions.
func itemToFactoryPaginatedAuctions(item stackitem.Item, err error) (*FactoryPaginatedAuctions, error) {
	if err != nil {
		return nil, err
	}
	var res = new(FactoryPaginatedAuctions)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of FactoryPaginatedAuctions from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *FactoryPaginatedAuctions) FromStackItem(item stackitem.Item) error {
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
	res.Entries, err = func (item stackitem.Item) ([]*FactoryAuctionEntry, error) {
		arr, ok := item.Value().([]stackitem.Item)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([]*FactoryAuctionEntry, len(arr))
		for i := range res {
			res[i], err = itemToFactoryAuctionEntry(arr[i], nil)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return res, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Entries: %w", err)
	}

	index++
	res.Total, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Total: %w", err)
	}

	return nil
}

// AuctionCreatedEventsFromApplicationLog retrieves a set of all emitted events
// with "AuctionCreated" name from the provided [result.ApplicationLog].
func AuctionCreatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*AuctionCreatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AuctionCreatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AuctionCreated" {
				continue
			}
			event := new(AuctionCreatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AuctionCreatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AuctionCreatedEvent or
// returns an error if it's not possible to do to so.
func (e *AuctionCreatedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Index, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Index: %w", err)
	}

	index++
	e.Name, err = func (item stackitem.Item) (string, error) {
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
	e.EndBlock, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field EndBlock: %w", err)
	}

	return nil
}

// AuctionDeployedEventsFromApplicationLog retrieves a set of all emitted events
// with "AuctionDeployed" name from the provided [result.ApplicationLog].
func AuctionDeployedEventsFromApplicationLog(log *result.ApplicationLog) ([]*AuctionDeployedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AuctionDeployedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AuctionDeployed" {
				continue
			}
			event := new(AuctionDeployedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AuctionDeployedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AuctionDeployedEvent or
// returns an error if it's not possible to do to so.
func (e *AuctionDeployedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Index, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Index: %w", err)
	}

	index++
	e.Auction, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Auction: %w", err)
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
