package factory

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"

	"github.com/hackbg/auction-contracts/common"
)

type (
	// AuctionEntry is a registry record of one launched auction. Address
	// is empty between the registry append and the deployment callback,
	// which both happen within a single CreateAuction transaction, so
	// externally visible entries are always resolved.
	AuctionEntry struct {
		Address  interop.Hash160
		CodeHash interop.Hash256
		Info     common.SaleInfo
	}

	// PaginatedAuctions is a window over the registry.
	PaginatedAuctions struct {
		Entries []AuctionEntry
		Total   int
	}
)

const (
	adminKey            = "contractAdmin"
	templateNEFKey      = "templateNEF"
	templateManifestKey = "templateManifest"
	templateChecksumKey = "templateChecksum"
	auctionsCountKey    = "auctionsCount"
	pendingReplyKey     = "pendingReply"

	registryKeyPrefix = 'r'

	// createAuctionReplyID tags the deployment callback of CreateAuction.
	createAuctionReplyID = 0
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
		nef      []byte
		manifest []byte
	})

	if len(args.admin) != interop.Hash160Len {
		panic("incorrect length of admin script hash")
	}
	if len(args.nef) == 0 || len(args.manifest) == 0 {
		panic("empty auction contract template")
	}

	storage.Put(ctx, adminKey, args.admin)
	storage.Put(ctx, templateNEFKey, args.nef)
	storage.Put(ctx, templateManifestKey, args.manifest)
	storage.Put(ctx, templateChecksumKey, crypto.Sha256(args.nef))
	storage.Put(ctx, auctionsCountKey, 0)

	runtime.Log("auction factory contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// by the contract admin only.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	common.CheckAdminWitness(getAdmin(ctx))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("auction factory contract updated")
}

// CreateAuction deploys a new auction contract from the stored template and
// registers it. The registry entry is appended before the deployment and
// resolved by the new contract reporting its address back via
// OnAuctionDeployed, all within this call. Any failure on the way, including
// an already passed end block, rolls the registry back. The manifest name of
// every instance gets the registry index appended, instances of one template
// must not collide on contract hash.
func CreateAuction(admin interop.Hash160, name string, endBlock int) {
	ctx := storage.GetContext()

	nef := storage.Get(ctx, templateNEFKey).([]byte)
	manifest := storage.Get(ctx, templateManifestKey).([]byte)
	index := storage.Get(ctx, auctionsCountKey).(int)

	entry := AuctionEntry{
		Address:  []byte{},
		CodeHash: storage.Get(ctx, templateChecksumKey).(interop.Hash256),
		Info: common.SaleInfo{
			Name:     name,
			EndBlock: endBlock,
		},
	}
	common.SetSerialized(ctx, registryKey(index), entry)
	storage.Put(ctx, auctionsCountKey, index+1)
	storage.Put(ctx, pendingReplyKey, createAuctionReplyID)

	management.DeployWithData(nef, instanceManifest(manifest, index), []interface{}{
		admin, name, endBlock, runtime.GetExecutingScriptHash(), createAuctionReplyID,
	})

	if storage.Get(ctx, pendingReplyKey) != nil {
		panic("createAuction: auction instantiation reply is missing")
	}

	runtime.Notify("AuctionCreated", index, name, endBlock)
}

// OnAuctionDeployed resolves the latest registry entry with the address of
// the just deployed auction contract. It must be invoked by that contract
// itself during CreateAuction, any other invocation is a protocol violation.
func OnAuctionDeployed(id int, auction interop.Hash160) {
	ctx := storage.GetContext()

	pending := storage.Get(ctx, pendingReplyKey)
	if pending == nil {
		panic("onAuctionDeployed: unexpected reply")
	}
	if id != pending.(int) {
		panic("onAuctionDeployed: unexpected reply id")
	}
	if len(auction) != interop.Hash160Len {
		panic("onAuctionDeployed: incorrect length of auction script hash")
	}
	if !common.BytesEqual(runtime.GetCallingScriptHash(), auction) {
		panic("onAuctionDeployed: reply is not from the auction contract")
	}

	index := storage.Get(ctx, auctionsCountKey).(int) - 1
	entry := getEntry(ctx, index)
	if len(entry.Address) != 0 {
		panic("onAuctionDeployed: registry entry is already resolved")
	}

	entry.Address = auction
	common.SetSerialized(ctx, registryKey(index), entry)
	storage.Delete(ctx, pendingReplyKey)

	runtime.Notify("AuctionDeployed", index, auction)
}

// ListAuctions returns a window of registry entries in creation order
// together with the total number of launched auctions. The limit is clamped
// to common.MaxPageSize.
func ListAuctions(start int, limit int) PaginatedAuctions {
	ctx := storage.GetReadOnlyContext()
	limit = common.CheckPagination(start, limit)

	total := storage.Get(ctx, auctionsCountKey).(int)
	entries := []AuctionEntry{}
	for i := start; i < total && i < start+limit; i++ {
		entries = append(entries, getEntry(ctx, i))
	}
	return PaginatedAuctions{Entries: entries, Total: total}
}

// TemplateChecksum returns the sha256 hash of the auction template NEF.
func TemplateChecksum() interop.Hash256 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, templateChecksumKey).(interop.Hash256)
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

// instanceManifest patches the template manifest name with the registry
// index, the contract hash of an instance depends on it.
func instanceManifest(manifest []byte, index int) []byte {
	m := std.JSONDeserialize(manifest).(map[string]interface{})
	m["name"] = m["name"].(string) + "-" + std.Itoa(index, 10)
	return std.JSONSerialize(m)
}

func getEntry(ctx storage.Context, index int) AuctionEntry {
	data := storage.Get(ctx, registryKey(index))
	if data == nil {
		panic("auction is not found in the registry")
	}
	return std.Deserialize(data.([]byte)).(AuctionEntry)
}

func getAdmin(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, adminKey).(interop.Hash160)
}

func registryKey(index int) []byte {
	return append([]byte{registryKeyPrefix}, std.Itoa(index, 10)...)
}
