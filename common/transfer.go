package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

var (
	refundPrefix   = []byte{0x01}
	proceedsPrefix = []byte{0x02}
)

// RefundTransferDetails marks an outgoing GAS transfer as a bid refund.
func RefundTransferDetails(txDetails []byte) []byte {
	return append(refundPrefix, txDetails...)
}

// ProceedsTransferDetails marks an outgoing GAS transfer as a proceeds payout.
func ProceedsTransferDetails(txDetails []byte) []byte {
	return append(proceedsPrefix, txDetails...)
}

// AbortWithMessage calls `runtime.Log` with passed message
// and calls `ABORT` opcode.
func AbortWithMessage(msg string) {
	runtime.Log(msg)
	util.Abort()
}
