package tests

import (
	"encoding/json"
	"math/rand"
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	auctionPath = "../auction"
	factoryPath = "../factory"
	noreplyPath = "../internal/testcontracts/noreply"
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func randomBytes(n int) []byte {
	a := make([]byte, n)
	rand.Read(a) //nolint:staticcheck // SA1019: rand.Read has been deprecated since Go 1.20
	return a
}

func compileAuctionContract(t *testing.T, e *neotest.Executor) *neotest.Contract {
	return neotest.CompileFile(t, e.CommitteeHash, auctionPath, path.Join(auctionPath, "config.yml"))
}

// deployAuctionContract deploys a standalone auction (no factory link) with
// the committee as the sale admin.
func deployAuctionContract(t *testing.T, e *neotest.Executor, name string, endBlock int64) util.Uint160 {
	c := compileAuctionContract(t, e)
	args := []interface{}{e.CommitteeHash, name, endBlock, []byte{}, int64(0)}
	e.DeployContract(t, c, args)
	return c.Hash
}

// rawTemplate returns the auction contract template the way the factory
// stores it: NEF and manifest bytes.
func rawTemplate(t *testing.T, c *neotest.Contract) ([]byte, []byte) {
	neb, err := c.NEF.Bytes()
	require.NoError(t, err)
	rawManifest, err := json.Marshal(c.Manifest)
	require.NoError(t, err)
	return neb, rawManifest
}

// deployFactoryContract deploys the factory with the auction contract as the
// template and the committee as the factory admin. The compiled template is
// returned for contract hash calculations.
func deployFactoryContract(t *testing.T, e *neotest.Executor) (util.Uint160, *neotest.Contract) {
	template := compileAuctionContract(t, e)
	neb, rawManifest := rawTemplate(t, template)

	c := neotest.CompileFile(t, e.CommitteeHash, factoryPath, path.Join(factoryPath, "config.yml"))
	e.DeployContract(t, c, []interface{}{e.CommitteeHash, neb, rawManifest})
	return c.Hash, template
}

// endBlockAfter returns an end block n blocks above the current chain height.
// The next transaction executes at height+1, so n >= 1 keeps the sale open
// for it.
func endBlockAfter(e *neotest.Executor, n uint32) int64 {
	return int64(e.Chain.BlockHeight() + n)
}

// finishSale advances the chain so that the next transaction executes after
// endBlock.
func finishSale(t *testing.T, e *neotest.Executor, endBlock int64) {
	for int64(e.Chain.BlockHeight()) < endBlock {
		e.GenerateNewBlocks(t, 1)
	}
}

// transferGas sends GAS directly to the given contract, which the auction
// treats as a funded bid.
func transferGas(t *testing.T, e *neotest.Executor, from neotest.Signer, to util.Uint160, amount int64) {
	gasInv := e.NewInvoker(e.NativeHash(t, nativenames.Gas), from)
	gasInv.Invoke(t, true, "transfer", from.ScriptHash(), to, amount, nil)
}

func gasBalance(t *testing.T, e *neotest.Executor, h util.Uint160) int64 {
	return e.Chain.GetUtilityTokenBalance(h).Int64()
}

func itemToInt64(t *testing.T, itm stackitem.Item) int64 {
	bi, err := itm.TryInteger()
	require.NoError(t, err)
	return bi.Int64()
}

func itemToBool(t *testing.T, itm stackitem.Item) bool {
	b, err := itm.TryBool()
	require.NoError(t, err)
	return b
}

func itemToBytes(t *testing.T, itm stackitem.Item) []byte {
	b, err := itm.TryBytes()
	require.NoError(t, err)
	return b
}

type saleState struct {
	name     string
	endBlock int64
	highest  int64
	finished bool
}

func saleStatus(t *testing.T, c *neotest.ContractInvoker) saleState {
	s, err := c.TestInvoke(t, "saleStatus")
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	arr, ok := s.Pop().Item().Value().([]stackitem.Item)
	require.True(t, ok)
	require.Len(t, arr, 3)
	info, ok := arr[0].Value().([]stackitem.Item)
	require.True(t, ok)
	require.Len(t, info, 2)

	return saleState{
		name:     string(itemToBytes(t, info[0])),
		endBlock: itemToInt64(t, info[1]),
		highest:  itemToInt64(t, arr[1]),
		finished: itemToBool(t, arr[2]),
	}
}

func activeBids(t *testing.T, c *neotest.ContractInvoker, start, limit int64) ([]int64, int64) {
	s, err := c.TestInvoke(t, "activeBids", start, limit)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	arr, ok := s.Pop().Item().Value().([]stackitem.Item)
	require.True(t, ok)
	require.Len(t, arr, 2)
	items, ok := arr[0].Value().([]stackitem.Item)
	require.True(t, ok)

	balances := make([]int64, 0, len(items))
	for _, itm := range items {
		balances = append(balances, itemToInt64(t, itm))
	}
	return balances, itemToInt64(t, arr[1])
}

type auctionEntry struct {
	address  util.Uint160
	codeHash []byte
	name     string
	endBlock int64
}

func listAuctions(t *testing.T, c *neotest.ContractInvoker, start, limit int64) ([]auctionEntry, int64) {
	s, err := c.TestInvoke(t, "listAuctions", start, limit)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	arr, ok := s.Pop().Item().Value().([]stackitem.Item)
	require.True(t, ok)
	require.Len(t, arr, 2)
	items, ok := arr[0].Value().([]stackitem.Item)
	require.True(t, ok)

	entries := make([]auctionEntry, 0, len(items))
	for _, itm := range items {
		fields, ok := itm.Value().([]stackitem.Item)
		require.True(t, ok)
		require.Len(t, fields, 3)
		info, ok := fields[2].Value().([]stackitem.Item)
		require.True(t, ok)
		require.Len(t, info, 2)

		addr, err := util.Uint160DecodeBytesBE(itemToBytes(t, fields[0]))
		require.NoError(t, err)
		entries = append(entries, auctionEntry{
			address:  addr,
			codeHash: itemToBytes(t, fields[1]),
			name:     string(itemToBytes(t, info[0])),
			endBlock: itemToInt64(t, info[1]),
		})
	}
	return entries, itemToInt64(t, arr[1])
}

// invokeGetString persists a state-changing invocation and returns its
// single string result.
func invokeGetString(t *testing.T, c *neotest.ContractInvoker, method string, args ...interface{}) string {
	var res string
	c.InvokeAndCheck(t, func(t testing.TB, stack []stackitem.Item) {
		require.Len(t, stack, 1)
		b, err := stack[0].TryBytes()
		require.NoError(t, err)
		res = string(b)
	}, method, args...)
	return res
}
