package tests

import (
	"crypto/sha256"
	"path"
	"strconv"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"

	"github.com/hackbg/auction-contracts/common"
)

func newFactoryInvoker(t *testing.T) (*neotest.Executor, *neotest.ContractInvoker, *neotest.Contract) {
	e := newExecutor(t)
	h, template := deployFactoryContract(t, e)
	return e, e.CommitteeInvoker(h), template
}

// expectedAuctionHash returns the contract hash the factory-deployed instance
// with the given registry index must have.
func expectedAuctionHash(factory util.Uint160, template *neotest.Contract, index int) util.Uint160 {
	return state.CreateContractHash(factory, template.NEF.Checksum,
		template.Manifest.Name+"-"+strconv.Itoa(index))
}

func TestFactory_Version(t *testing.T) {
	_, c, _ := newFactoryInvoker(t)
	c.Invoke(t, common.Version, "version")
}

func TestFactory_DeployValidation(t *testing.T) {
	t.Run("empty template", func(t *testing.T) {
		e := newExecutor(t)
		c := neotest.CompileFile(t, e.CommitteeHash, factoryPath, path.Join(factoryPath, "config.yml"))
		e.DeployContractCheckFAULT(t, c,
			[]interface{}{e.CommitteeHash, []byte{}, []byte{}},
			"empty auction contract template")
	})

	t.Run("bad admin", func(t *testing.T) {
		e := newExecutor(t)
		template := compileAuctionContract(t, e)
		neb, rawManifest := rawTemplate(t, template)
		c := neotest.CompileFile(t, e.CommitteeHash, factoryPath, path.Join(factoryPath, "config.yml"))
		e.DeployContractCheckFAULT(t, c,
			[]interface{}{[]byte{1, 2, 3}, neb, rawManifest},
			"incorrect length of admin script hash")
	})
}

func TestFactory_TemplateChecksum(t *testing.T) {
	_, c, template := newFactoryInvoker(t)

	neb, _ := rawTemplate(t, template)
	sum := sha256.Sum256(neb)

	s, err := c.TestInvoke(t, "templateChecksum")
	require.NoError(t, err)
	require.Equal(t, sum[:], itemToBytes(t, s.Pop().Item()))
}

func TestFactory_CreateAuction(t *testing.T) {
	e, c, template := newFactoryInvoker(t)

	neb, _ := rawTemplate(t, template)
	sum := sha256.Sum256(neb)

	saleAdmin := c.NewAccount(t)
	endBlock := endBlockAfter(e, 100)
	c.Invoke(t, stackitem.Null{}, "createAuction", saleAdmin.ScriptHash(), "sale-0", endBlock)
	c.Invoke(t, stackitem.Null{}, "createAuction", saleAdmin.ScriptHash(), "sale-1", endBlock)

	entries, total := listAuctions(t, c, 0, 10)
	require.EqualValues(t, 2, total)
	require.Len(t, entries, 2)

	for i, entry := range entries {
		require.Equal(t, expectedAuctionHash(c.Hash, template, i), entry.address)
		require.Equal(t, sum[:], entry.codeHash)
		require.Equal(t, "sale-"+strconv.Itoa(i), entry.name)
		require.Equal(t, endBlock, entry.endBlock)
	}
	require.NotEqual(t, entries[0].address, entries[1].address)

	// The launched contracts are live auctions with their own state.
	for i, entry := range entries {
		auction := e.CommitteeInvoker(entry.address)

		st := saleStatus(t, auction)
		require.Equal(t, "sale-"+strconv.Itoa(i), st.name)
		require.Equal(t, endBlock, st.endBlock)
		require.False(t, st.finished)

		s, err := auction.TestInvoke(t, "admin")
		require.NoError(t, err)
		require.Equal(t, saleAdmin.ScriptHash().BytesBE(), itemToBytes(t, s.Pop().Item()))
	}

	// Bids flow into the instance, not the factory.
	bidder := c.NewAccount(t)
	inst := e.NewInvoker(entries[0].address, bidder)
	inst.Invoke(t, stackitem.Null{}, "bid", bidder.ScriptHash(), int64(2_0000_0000))
	require.EqualValues(t, 2_0000_0000, gasBalance(t, e, entries[0].address))
	require.EqualValues(t, 0, gasBalance(t, e, c.Hash))
}

func TestFactory_CreateAuctionRollback(t *testing.T) {
	e, c, _ := newFactoryInvoker(t)

	// The instance rejects an already passed end block during its _deploy,
	// which must fault the whole call and roll the registry back.
	c.InvokeFail(t, "end block has already passed", "createAuction",
		e.CommitteeHash, "stillborn", int64(e.Chain.BlockHeight()))

	_, total := listAuctions(t, c, 0, 10)
	require.EqualValues(t, 0, total)

	// The registry is intact for subsequent launches.
	c.Invoke(t, stackitem.Null{}, "createAuction",
		e.CommitteeHash, "sale-after-rollback", endBlockAfter(e, 100))
	entries, total := listAuctions(t, c, 0, 10)
	require.EqualValues(t, 1, total)
	require.Equal(t, "sale-after-rollback", entries[0].name)
}

func TestFactory_UnsolicitedReply(t *testing.T) {
	_, c, _ := newFactoryInvoker(t)

	c.InvokeFail(t, "onAuctionDeployed: unexpected reply",
		"onAuctionDeployed", int64(0), randomBytes(20))
}

func TestFactory_NoReplyTemplate(t *testing.T) {
	e := newExecutor(t)

	stub := neotest.CompileFile(t, e.CommitteeHash, noreplyPath, path.Join(noreplyPath, "config.yml"))
	neb, rawManifest := rawTemplate(t, stub)

	ctr := neotest.CompileFile(t, e.CommitteeHash, factoryPath, path.Join(factoryPath, "config.yml"))
	e.DeployContract(t, ctr, []interface{}{e.CommitteeHash, neb, rawManifest})
	c := e.CommitteeInvoker(ctr.Hash)

	c.InvokeFail(t, "createAuction: auction instantiation reply is missing",
		"createAuction", e.CommitteeHash, "silent", endBlockAfter(e, 100))

	_, total := listAuctions(t, c, 0, 10)
	require.EqualValues(t, 0, total)
}

func TestFactory_ListAuctionsPagination(t *testing.T) {
	e, c, _ := newFactoryInvoker(t)

	endBlock := endBlockAfter(e, 200)
	for i := 0; i < 3; i++ {
		c.Invoke(t, stackitem.Null{}, "createAuction",
			e.CommitteeHash, "sale-"+strconv.Itoa(i), endBlock)
	}

	entries, total := listAuctions(t, c, 1, 1)
	require.EqualValues(t, 3, total)
	require.Len(t, entries, 1)
	require.Equal(t, "sale-1", entries[0].name)

	t.Run("offset beyond total", func(t *testing.T) {
		entries, total = listAuctions(t, c, 10, 10)
		require.EqualValues(t, 3, total)
		require.Empty(t, entries)
	})

	t.Run("negative arguments", func(t *testing.T) {
		_, err := c.TestInvoke(t, "listAuctions", int64(0), int64(-1))
		require.Error(t, err)
	})
}

func TestFactory_ChangeAdmin(t *testing.T) {
	_, c, _ := newFactoryInvoker(t)

	newAdmin := c.NewAccount(t)
	cNewAdmin := c.WithSigners(newAdmin)

	cNewAdmin.InvokeFail(t, common.ErrAdminWitnessFailed, "changeAdmin", newAdmin.ScriptHash())
	c.Invoke(t, stackitem.Null{}, "changeAdmin", newAdmin.ScriptHash())

	s, err := c.TestInvoke(t, "admin")
	require.NoError(t, err)
	require.Equal(t, newAdmin.ScriptHash().BytesBE(), itemToBytes(t, s.Pop().Item()))
}

func TestFactory_Update(t *testing.T) {
	e, c, _ := newFactoryInvoker(t)

	ctr := neotest.CompileFile(t, e.CommitteeHash, factoryPath, path.Join(factoryPath, "config.yml"))
	neb, rawManifest := rawTemplate(t, ctr)

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrAdminWitnessFailed,
		"update", neb, rawManifest, nil)

	c.InvokeFail(t, common.ErrAlreadyUpdated, "update", neb, rawManifest, nil)
}
