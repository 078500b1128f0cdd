package auction

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/ledger"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"

	"github.com/hackbg/auction-contracts/common"
)

type (
	// ContractStatus is the killswitch state of the contract.
	ContractStatus struct {
		// State is one of StateOperational, StatePaused, StateMigrating.
		State int
		// Reason is an optional operator-supplied explanation.
		Reason string
		// NewAddress is the migration target, if known.
		NewAddress interop.Hash160
	}

	// SaleState is a public snapshot of the sale.
	SaleState struct {
		Info           common.SaleInfo
		CurrentHighest int
		IsFinished     bool
	}

	// PaginatedBids is a window over the bid ledger.
	PaginatedBids struct {
		Balances []int
		Total    int
	}
)

const (
	// StateOperational allows all operations.
	StateOperational = 0
	// StatePaused blocks state-changing operations until lifted.
	StatePaused = 1
	// StateMigrating permanently deprecates the contract in favor of
	// Status.NewAddress.
	StateMigrating = 2
)

const (
	adminKey      = "contractAdmin"
	saleInfoKey   = "saleInfo"
	statusKey     = "contractStatus"
	highestBidKey = "highestBid"

	bidderKeyPrefix     = 'b'
	viewingKeyKeyPrefix = 'v'

	// maxBalanceAmount caps a single bid ledger entry, NEP-17 amounts
	// must fit into int64.
	maxBalanceAmount = 0x7FFF_FFFF_FFFF_FFFF

	// ignoreBidNotification is passed as data to gas.Transfer when the
	// contract pulls funds itself, so that OnNEP17Payment does not credit
	// them a second time.
	ignoreBidNotification = "ignore"

	// replyMethod is the factory method invoked right after deployment to
	// report this contract's address.
	replyMethod = "onAuctionDeployed"
)

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		admin    interop.Hash160
		name     string
		endBlock int
		factory  interop.Hash160
		replyID  int
	})

	if len(args.admin) != interop.Hash160Len {
		panic("incorrect length of admin script hash")
	}
	if len(args.name) == 0 {
		panic("sale name is empty")
	}
	if args.endBlock <= ledger.CurrentIndex() {
		panic("end block has already passed")
	}

	storage.Put(ctx, adminKey, args.admin)
	common.SetSerialized(ctx, saleInfoKey, common.SaleInfo{
		Name:     args.name,
		EndBlock: args.endBlock,
	})
	common.SetSerialized(ctx, statusKey, ContractStatus{State: StateOperational})

	if len(args.factory) == interop.Hash160Len {
		contract.Call(args.factory, replyMethod, contract.All,
			args.replyID, runtime.GetExecutingScriptHash())
	}

	runtime.Log("auction contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// by the contract admin only.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	common.CheckAdminWitness(getAdmin(ctx))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("auction contract updated")
}

// Bid credits amount of GAS to the bidder's cumulative bid. The funds are
// pulled from the bidder's account, so the bidder must have a signature with
// enough scope for a transfer. A bid with zero amount is accepted: it creates
// the ledger entry and can seed the highest bid. The first bid ever placed
// becomes the highest one, afterwards only a strictly larger cumulative
// balance displaces the current leader.
func Bid(bidder interop.Hash160, amount int) {
	ctx := storage.GetContext()
	requireOperational(ctx)
	common.CheckOwnerWitness(bidder)

	if amount < 0 {
		panic("bid: negative amount")
	}
	if amount > 0 {
		transferred := gas.Transfer(bidder, runtime.GetExecutingScriptHash(),
			amount, []byte(ignoreBidNotification))
		if !transferred {
			panic("bid: failed to transfer funds, aborting")
		}
	}

	placeBid(ctx, bidder, amount)
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// A direct GAS transfer to the contract is a funded bid from the sender.
func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	caller := runtime.GetCallingScriptHash()
	if !common.BytesEqual(caller, interop.Hash160(gas.Hash)) {
		common.AbortWithMessage("onNEP17Payment: only GAS is accepted")
	}

	marker := data.([]byte)
	if common.BytesEqual(marker, []byte(ignoreBidNotification)) {
		return
	}
	if len(marker) != 0 {
		panic("onNEP17Payment: invalid data argument")
	}

	ctx := storage.GetContext()
	requireOperational(ctx)
	placeBid(ctx, from, amount)
}

func placeBid(ctx storage.Context, bidder interop.Hash160, amount int) {
	if len(bidder) != interop.Hash160Len {
		panic("bid: incorrect length of bidder script hash")
	}

	info := getSaleInfo(ctx)
	if saleFinished(info) {
		panic("bid: sale has finished")
	}

	balance := getBalance(ctx, bidder) + amount
	if balance > maxBalanceAmount {
		panic("bid: out of max balance limit")
	}
	storage.Put(ctx, bidderKey(bidder), balance)

	leader := storage.Get(ctx, highestBidKey)
	if leader == nil {
		storage.Put(ctx, highestBidKey, bidder)
	} else if !common.BytesEqual(leader.(interop.Hash160), bidder) {
		if balance > getBalance(ctx, leader.(interop.Hash160)) {
			storage.Put(ctx, highestBidKey, bidder)
		}
	}

	runtime.Notify("Bid", bidder, amount, balance)
}

// RetractBid returns the bidder's accumulated funds after the sale has
// finished. The winning bid cannot be retracted. Repeated calls are no-ops.
func RetractBid(bidder interop.Hash160) {
	ctx := storage.GetContext()
	requireOperational(ctx)
	common.CheckOwnerWitness(bidder)

	info := getSaleInfo(ctx)
	if !saleFinished(info) {
		panic("retractBid: sale has not finished yet")
	}

	leader := storage.Get(ctx, highestBidKey)
	if leader != nil && common.BytesEqual(leader.(interop.Hash160), bidder) {
		panic("retractBid: winning bid cannot be retracted")
	}

	balance := getBalance(ctx, bidder)
	if balance == 0 {
		return
	}

	storage.Put(ctx, bidderKey(bidder), 0)
	tx := runtime.GetScriptContainer()
	transferred := gas.Transfer(runtime.GetExecutingScriptHash(), bidder,
		balance, common.RefundTransferDetails([]byte(tx.Hash)))
	if !transferred {
		panic("retractBid: failed to transfer funds, aborting")
	}

	runtime.Notify("BidRetracted", bidder, balance)
}

// ClaimProceeds transfers the winning bid to the contract admin after the
// sale has finished. It can be invoked by the admin only. Sales without bids
// and repeated claims are no-ops.
func ClaimProceeds() {
	ctx := storage.GetContext()
	requireOperational(ctx)
	admin := getAdmin(ctx)
	common.CheckAdminWitness(admin)

	info := getSaleInfo(ctx)
	if !saleFinished(info) {
		panic("claimProceeds: sale has not finished yet")
	}

	leader := storage.Get(ctx, highestBidKey)
	if leader == nil {
		return
	}

	winner := leader.(interop.Hash160)
	balance := getBalance(ctx, winner)
	if balance == 0 {
		return
	}

	storage.Put(ctx, bidderKey(winner), 0)
	tx := runtime.GetScriptContainer()
	transferred := gas.Transfer(runtime.GetExecutingScriptHash(), admin,
		balance, common.ProceedsTransferDetails([]byte(tx.Hash)))
	if !transferred {
		panic("claimProceeds: failed to transfer funds, aborting")
	}

	runtime.Notify("ProceedsClaimed", winner, admin, balance)
}

// CreateViewingKey derives a fresh viewing key for the owner from the carrier
// transaction hash and the supplied entropy, stores its hash and returns the
// key. The previous key, if any, is invalidated.
func CreateViewingKey(owner interop.Hash160, entropy []byte) string {
	ctx := storage.GetContext()
	requireOperational(ctx)
	common.CheckOwnerWitness(owner)

	tx := runtime.GetScriptContainer()
	seed := append([]byte{}, []byte(tx.Hash)...)
	seed = append(seed, owner...)
	seed = append(seed, entropy...)
	key := std.Base58Encode([]byte(crypto.Sha256(seed)))

	storage.Put(ctx, viewingKeyKey(owner), crypto.Sha256([]byte(key)))
	return key
}

// SetViewingKey stores the hash of a caller-chosen viewing key for the owner.
func SetViewingKey(owner interop.Hash160, key string) {
	ctx := storage.GetContext()
	requireOperational(ctx)
	common.CheckOwnerWitness(owner)

	if len(key) == 0 {
		panic("setViewingKey: empty key")
	}
	storage.Put(ctx, viewingKeyKey(owner), crypto.Sha256([]byte(key)))
}

// ViewBid returns the owner's accumulated bid. The key must match the one
// registered via CreateViewingKey or SetViewingKey; the method fails closed
// when no key is registered.
func ViewBid(owner interop.Hash160, key string) int {
	ctx := storage.GetReadOnlyContext()

	stored := storage.Get(ctx, viewingKeyKey(owner))
	if stored == nil || !common.BytesEqual(stored.([]byte), []byte(crypto.Sha256([]byte(key)))) {
		panic("viewBid: invalid viewing key")
	}
	return getBalance(ctx, owner)
}

// ActiveBids returns a window of bid balances in storage order together with
// the total number of ledger entries. The limit is clamped to
// common.MaxPageSize.
func ActiveBids(start int, limit int) PaginatedBids {
	ctx := storage.GetReadOnlyContext()
	limit = common.CheckPagination(start, limit)

	balances := []int{}
	total := 0
	it := storage.Find(ctx, []byte{bidderKeyPrefix}, storage.KeysOnly)
	for iterator.Next(it) {
		if total >= start && len(balances) < limit {
			key := iterator.Value(it).([]byte)
			balances = append(balances, storage.Get(ctx, key).(int))
		}
		total++
	}
	return PaginatedBids{Balances: balances, Total: total}
}

// IterateBids returns an iterator over (bidder, balance) pairs of the bid
// ledger, including zeroed entries.
func IterateBids() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{bidderKeyPrefix}, storage.RemovePrefix)
}

// SaleStatus returns the sale descriptor, the current highest cumulative bid
// and whether the sale has finished.
func SaleStatus() SaleState {
	ctx := storage.GetReadOnlyContext()
	info := getSaleInfo(ctx)

	highest := 0
	leader := storage.Get(ctx, highestBidKey)
	if leader != nil {
		highest = getBalance(ctx, leader.(interop.Hash160))
	}
	return SaleState{
		Info:           info,
		CurrentHighest: highest,
		IsFinished:     saleFinished(info),
	}
}

// SetStatus switches the killswitch state. It can be invoked by the contract
// admin only. StateMigrating is terminal.
func SetStatus(state int, reason string, newAddress interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckAdminWitness(getAdmin(ctx))

	current := getStatus(ctx)
	if current.State == StateMigrating {
		panic("setStatus: migration cannot be reversed")
	}
	if state < StateOperational || state > StateMigrating {
		panic("setStatus: invalid status")
	}
	if len(newAddress) != 0 && len(newAddress) != interop.Hash160Len {
		panic("setStatus: incorrect length of new address script hash")
	}

	common.SetSerialized(ctx, statusKey, ContractStatus{
		State:      state,
		Reason:     reason,
		NewAddress: newAddress,
	})
	runtime.Notify("StatusChanged", state)
}

// Status returns the current killswitch state.
func Status() ContractStatus {
	ctx := storage.GetReadOnlyContext()
	return getStatus(ctx)
}

// ChangeAdmin transfers the administrative role to a new account. It can be
// invoked by the current admin only.
func ChangeAdmin(newAdmin interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckAdminWitness(getAdmin(ctx))

	if len(newAdmin) != interop.Hash160Len {
		panic("changeAdmin: incorrect length of admin script hash")
	}
	storage.Put(ctx, adminKey, newAdmin)
	runtime.Notify("AdminChanged", newAdmin)
}

// Admin returns the script hash of the administrative role holder.
func Admin() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getAdmin(ctx)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func requireOperational(ctx storage.Context) {
	st := getStatus(ctx)
	switch st.State {
	case StatePaused:
		panic("contract is paused: " + st.Reason)
	case StateMigrating:
		panic("contract is migrating: " + st.Reason)
	}
}

func saleFinished(info common.SaleInfo) bool {
	return ledger.CurrentIndex() > info.EndBlock
}

func getSaleInfo(ctx storage.Context) common.SaleInfo {
	data := storage.Get(ctx, saleInfoKey).([]byte)
	return std.Deserialize(data).(common.SaleInfo)
}

func getStatus(ctx storage.Context) ContractStatus {
	data := storage.Get(ctx, statusKey).([]byte)
	return std.Deserialize(data).(ContractStatus)
}

func getAdmin(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, adminKey).(interop.Hash160)
}

func getBalance(ctx storage.Context, bidder interop.Hash160) int {
	balance := storage.Get(ctx, bidderKey(bidder))
	if balance == nil {
		return 0
	}
	return balance.(int)
}

func bidderKey(bidder interop.Hash160) []byte {
	return append([]byte{bidderKeyPrefix}, bidder...)
}

func viewingKeyKey(owner interop.Hash160) []byte {
	return append([]byte{viewingKeyKeyPrefix}, owner...)
}
