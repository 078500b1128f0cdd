package tests

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"

	"github.com/hackbg/auction-contracts/common"
)

const saleName = "rare-item-sale"

func newAuctionInvoker(t *testing.T, openFor uint32) (*neotest.Executor, *neotest.ContractInvoker, int64) {
	e := newExecutor(t)
	endBlock := endBlockAfter(e, openFor)
	h := deployAuctionContract(t, e, saleName, endBlock)
	return e, e.CommitteeInvoker(h), endBlock
}

func TestAuction_Version(t *testing.T) {
	_, c, _ := newAuctionInvoker(t, 10)
	c.Invoke(t, common.Version, "version")
}

func TestAuction_DeployValidation(t *testing.T) {
	t.Run("end block already passed", func(t *testing.T) {
		e := newExecutor(t)
		c := compileAuctionContract(t, e)
		args := []interface{}{e.CommitteeHash, saleName, int64(e.Chain.BlockHeight()), []byte{}, int64(0)}
		e.DeployContractCheckFAULT(t, c, args, "end block has already passed")
	})

	t.Run("empty name", func(t *testing.T) {
		e := newExecutor(t)
		c := compileAuctionContract(t, e)
		args := []interface{}{e.CommitteeHash, "", endBlockAfter(e, 10), []byte{}, int64(0)}
		e.DeployContractCheckFAULT(t, c, args, "sale name is empty")
	})

	t.Run("bad admin", func(t *testing.T) {
		e := newExecutor(t)
		c := compileAuctionContract(t, e)
		args := []interface{}{[]byte{1, 2, 3}, saleName, endBlockAfter(e, 10), []byte{}, int64(0)}
		e.DeployContractCheckFAULT(t, c, args, "incorrect length of admin script hash")
	})
}

func TestAuction_SaleStatus(t *testing.T) {
	e, c, endBlock := newAuctionInvoker(t, 10)

	st := saleStatus(t, c)
	require.Equal(t, saleName, st.name)
	require.Equal(t, endBlock, st.endBlock)
	require.EqualValues(t, 0, st.highest)
	require.False(t, st.finished)

	finishSale(t, e, endBlock)
	e.GenerateNewBlocks(t, 1)

	st = saleStatus(t, c)
	require.True(t, st.finished)
}

func TestAuction_Bid(t *testing.T) {
	e, c, _ := newAuctionInvoker(t, 100)

	acc1 := c.NewAccount(t)
	acc2 := c.NewAccount(t)
	cAcc1 := c.WithSigners(acc1)
	cAcc2 := c.WithSigners(acc2)

	t.Run("witness check", func(t *testing.T) {
		cAcc1.InvokeFail(t, common.ErrOwnerWitnessFailed, "bid", acc2.ScriptHash(), int64(100))
	})

	t.Run("negative amount", func(t *testing.T) {
		cAcc1.InvokeFail(t, "bid: negative amount", "bid", acc1.ScriptHash(), int64(-1))
	})

	// The first bid leads regardless of amount.
	cAcc1.Invoke(t, stackitem.Null{}, "bid", acc1.ScriptHash(), int64(0))
	st := saleStatus(t, c)
	require.EqualValues(t, 0, st.highest)

	// A tie does not displace the leader.
	cAcc2.Invoke(t, stackitem.Null{}, "bid", acc2.ScriptHash(), int64(0))
	require.EqualValues(t, 0, saleStatus(t, c).highest)

	// Bids accumulate and a strictly larger total takes over.
	cAcc2.Invoke(t, stackitem.Null{}, "bid", acc2.ScriptHash(), int64(3_0000_0000))
	require.EqualValues(t, 3_0000_0000, saleStatus(t, c).highest)

	cAcc1.Invoke(t, stackitem.Null{}, "bid", acc1.ScriptHash(), int64(2_0000_0000))
	require.EqualValues(t, 3_0000_0000, saleStatus(t, c).highest)

	cAcc1.Invoke(t, stackitem.Null{}, "bid", acc1.ScriptHash(), int64(1_0000_0000))
	require.EqualValues(t, 3_0000_0000, saleStatus(t, c).highest)

	cAcc1.Invoke(t, stackitem.Null{}, "bid", acc1.ScriptHash(), int64(1_0000_0000))
	require.EqualValues(t, 4_0000_0000, saleStatus(t, c).highest)

	// Locked funds match the sum of ledger entries.
	balances, total := activeBids(t, c, 0, 10)
	require.EqualValues(t, 2, total)
	var sum int64
	for _, b := range balances {
		sum += b
	}
	require.Equal(t, sum, gasBalance(t, e, c.Hash))
}

func TestAuction_DirectTransferBid(t *testing.T) {
	e, c, _ := newAuctionInvoker(t, 100)

	acc := c.NewAccount(t)
	transferGas(t, e, acc, c.Hash, 5_0000_0000)

	require.EqualValues(t, 5_0000_0000, saleStatus(t, c).highest)
	require.EqualValues(t, 5_0000_0000, gasBalance(t, e, c.Hash))

	t.Run("invalid data argument", func(t *testing.T) {
		gasInv := e.NewInvoker(e.NativeHash(t, nativenames.Gas), acc)
		gasInv.InvokeFail(t, "onNEP17Payment: invalid data argument",
			"transfer", acc.ScriptHash(), c.Hash, int64(100), []byte("garbage"))
	})
}

func TestAuction_PhaseGating(t *testing.T) {
	e, c, endBlock := newAuctionInvoker(t, 10)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)

	cAcc.InvokeFail(t, "retractBid: sale has not finished yet", "retractBid", acc.ScriptHash())
	c.InvokeFail(t, "claimProceeds: sale has not finished yet", "claimProceeds")

	cAcc.Invoke(t, stackitem.Null{}, "bid", acc.ScriptHash(), int64(1_0000_0000))

	finishSale(t, e, endBlock)
	cAcc.InvokeFail(t, "bid: sale has finished", "bid", acc.ScriptHash(), int64(1_0000_0000))
}

func TestAuction_Settlement(t *testing.T) {
	e, c, endBlock := newAuctionInvoker(t, 100)

	winner := c.NewAccount(t)
	loser := c.NewAccount(t)
	cWinner := c.WithSigners(winner)
	cLoser := c.WithSigners(loser)

	cLoser.Invoke(t, stackitem.Null{}, "bid", loser.ScriptHash(), int64(15_0000_0000))
	cWinner.Invoke(t, stackitem.Null{}, "bid", winner.ScriptHash(), int64(10_0000_0000))
	cWinner.Invoke(t, stackitem.Null{}, "bid", winner.ScriptHash(), int64(10_0000_0000))
	require.EqualValues(t, 20_0000_0000, saleStatus(t, c).highest)

	finishSale(t, e, endBlock)

	t.Run("winner cannot retract", func(t *testing.T) {
		cWinner.InvokeFail(t, "retractBid: winning bid cannot be retracted",
			"retractBid", winner.ScriptHash())
	})

	loserBefore := gasBalance(t, e, loser.ScriptHash())
	cLoser.Invoke(t, stackitem.Null{}, "retractBid", loser.ScriptHash())
	require.Less(t, loserBefore, gasBalance(t, e, loser.ScriptHash()))
	require.EqualValues(t, 20_0000_0000, gasBalance(t, e, c.Hash))

	// Repeated retract is a no-op.
	cLoser.Invoke(t, stackitem.Null{}, "retractBid", loser.ScriptHash())
	require.EqualValues(t, 20_0000_0000, gasBalance(t, e, c.Hash))

	t.Run("claim requires admin", func(t *testing.T) {
		cLoser.InvokeFail(t, common.ErrAdminWitnessFailed, "claimProceeds")
	})

	c.Invoke(t, stackitem.Null{}, "claimProceeds")
	require.EqualValues(t, 0, gasBalance(t, e, c.Hash))

	// Repeated claim is a no-op, the winning entry was zeroed exactly once.
	c.Invoke(t, stackitem.Null{}, "claimProceeds")
	require.EqualValues(t, 0, gasBalance(t, e, c.Hash))

	// Ledger entries survive settlement zeroed, not deleted.
	balances, total := activeBids(t, c, 0, 10)
	require.EqualValues(t, 2, total)
	for _, b := range balances {
		require.EqualValues(t, 0, b)
	}
}

func TestAuction_ClaimWithoutBids(t *testing.T) {
	e, c, endBlock := newAuctionInvoker(t, 2)
	finishSale(t, e, endBlock)
	c.Invoke(t, stackitem.Null{}, "claimProceeds")
}

func TestAuction_ViewingKeys(t *testing.T) {
	_, c, _ := newAuctionInvoker(t, 100)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)
	cAcc.Invoke(t, stackitem.Null{}, "bid", acc.ScriptHash(), int64(7_0000_0000))

	t.Run("no key registered", func(t *testing.T) {
		_, err := c.TestInvoke(t, "viewBid", acc.ScriptHash(), "whatever")
		require.Error(t, err)
	})

	key := invokeGetString(t, cAcc, "createViewingKey", acc.ScriptHash(), randomBytes(16))
	raw, err := base58.Decode(key)
	require.NoError(t, err)
	require.Len(t, raw, 32)

	s, err := c.TestInvoke(t, "viewBid", acc.ScriptHash(), key)
	require.NoError(t, err)
	require.EqualValues(t, 7_0000_0000, itemToInt64(t, s.Pop().Item()))

	t.Run("wrong key", func(t *testing.T) {
		_, err := c.TestInvoke(t, "viewBid", acc.ScriptHash(), key+"x")
		require.Error(t, err)
	})

	t.Run("witness check", func(t *testing.T) {
		c.InvokeFail(t, common.ErrOwnerWitnessFailed, "createViewingKey",
			acc.ScriptHash(), randomBytes(16))
	})

	t.Run("custom key", func(t *testing.T) {
		cAcc.Invoke(t, stackitem.Null{}, "setViewingKey", acc.ScriptHash(), "my-key")

		// The previous key is invalidated.
		_, err := c.TestInvoke(t, "viewBid", acc.ScriptHash(), key)
		require.Error(t, err)

		s, err := c.TestInvoke(t, "viewBid", acc.ScriptHash(), "my-key")
		require.NoError(t, err)
		require.EqualValues(t, 7_0000_0000, itemToInt64(t, s.Pop().Item()))
	})
}

func TestAuction_ActiveBidsPagination(t *testing.T) {
	const bidders = 31

	_, c, _ := newAuctionInvoker(t, 300)

	for i := 0; i < bidders; i++ {
		acc := c.NewAccount(t)
		c.WithSigners(acc).Invoke(t, stackitem.Null{}, "bid", acc.ScriptHash(), int64(0))
	}

	// The limit is clamped to 30 entries per page.
	balances, total := activeBids(t, c, 0, 100)
	require.EqualValues(t, bidders, total)
	require.Len(t, balances, 30)

	balances, total = activeBids(t, c, 30, 100)
	require.EqualValues(t, bidders, total)
	require.Len(t, balances, 1)

	t.Run("offset beyond total", func(t *testing.T) {
		balances, total = activeBids(t, c, bidders+10, 10)
		require.EqualValues(t, bidders, total)
		require.Empty(t, balances)
	})

	t.Run("negative arguments", func(t *testing.T) {
		_, err := c.TestInvoke(t, "activeBids", int64(-1), int64(10))
		require.Error(t, err)
	})
}

func TestAuction_IterateBids(t *testing.T) {
	_, c, _ := newAuctionInvoker(t, 100)

	for i := 0; i < 3; i++ {
		acc := c.NewAccount(t)
		c.WithSigners(acc).Invoke(t, stackitem.Null{}, "bid", acc.ScriptHash(), int64(1_0000_0000))
	}

	s, err := c.TestInvoke(t, "iterateBids")
	require.NoError(t, err)
	iter, ok := s.Pop().Value().(*storage.Iterator)
	require.True(t, ok)

	count := 0
	for iter.Next() {
		pair, ok := iter.Value().Value().([]stackitem.Item)
		require.True(t, ok)
		require.Len(t, pair, 2)
		require.Len(t, itemToBytes(t, pair[0]), 20)
		require.EqualValues(t, 1_0000_0000, itemToInt64(t, pair[1]))
		count++
	}
	require.Equal(t, 3, count)
}

func TestAuction_Killswitch(t *testing.T) {
	_, c, _ := newAuctionInvoker(t, 100)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)

	t.Run("admin only", func(t *testing.T) {
		cAcc.InvokeFail(t, common.ErrAdminWitnessFailed, "setStatus",
			int64(1), "maintenance", []byte{})
	})

	c.Invoke(t, stackitem.Null{}, "setStatus", int64(1), "maintenance", []byte{})
	cAcc.InvokeFail(t, "contract is paused: maintenance", "bid", acc.ScriptHash(), int64(100))

	// Status stays readable and setStatus callable while paused.
	s, err := c.TestInvoke(t, "status")
	require.NoError(t, err)
	st, ok := s.Pop().Item().Value().([]stackitem.Item)
	require.True(t, ok)
	require.EqualValues(t, 1, itemToInt64(t, st[0]))
	require.Equal(t, "maintenance", string(itemToBytes(t, st[1])))

	c.Invoke(t, stackitem.Null{}, "setStatus", int64(0), "", []byte{})
	cAcc.Invoke(t, stackitem.Null{}, "bid", acc.ScriptHash(), int64(100))

	t.Run("invalid state", func(t *testing.T) {
		c.InvokeFail(t, "setStatus: invalid status", "setStatus", int64(5), "", []byte{})
	})

	newAddr := randomBytes(20)
	c.Invoke(t, stackitem.Null{}, "setStatus", int64(2), "moved", newAddr)
	cAcc.InvokeFail(t, "contract is migrating: moved", "bid", acc.ScriptHash(), int64(100))

	// Migration is terminal.
	c.InvokeFail(t, "setStatus: migration cannot be reversed", "setStatus",
		int64(0), "", []byte{})
}

func TestAuction_ChangeAdmin(t *testing.T) {
	e, c, endBlock := newAuctionInvoker(t, 20)

	newAdmin := c.NewAccount(t)
	cNewAdmin := c.WithSigners(newAdmin)

	cNewAdmin.InvokeFail(t, common.ErrAdminWitnessFailed, "changeAdmin", newAdmin.ScriptHash())
	c.Invoke(t, stackitem.Null{}, "changeAdmin", newAdmin.ScriptHash())

	s, err := c.TestInvoke(t, "admin")
	require.NoError(t, err)
	require.Equal(t, newAdmin.ScriptHash().BytesBE(), itemToBytes(t, s.Pop().Item()))

	finishSale(t, e, endBlock)
	c.InvokeFail(t, common.ErrAdminWitnessFailed, "claimProceeds")
	cNewAdmin.Invoke(t, stackitem.Null{}, "claimProceeds")
}

func TestAuction_Update(t *testing.T) {
	e, c, _ := newAuctionInvoker(t, 100)

	ctr := compileAuctionContract(t, e)
	neb, rawManifest := rawTemplate(t, ctr)

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrAdminWitnessFailed,
		"update", neb, rawManifest, nil)

	// Redeploying the same version must be rejected by the migration check.
	c.InvokeFail(t, common.ErrAlreadyUpdated, "update", neb, rawManifest, nil)
}
