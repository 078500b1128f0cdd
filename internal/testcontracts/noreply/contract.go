// Package noreply is an auction template look-alike that accepts the factory
// deployment arguments but never reports its address back. It exists to test
// the factory's handling of templates violating the launch protocol.
package noreply

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

func _deploy(data interface{}, isUpdate bool) {
	if isUpdate {
		return
	}
	args := data.(struct {
		admin    interop.Hash160
		name     string
		endBlock int
		factory  interop.Hash160
		replyID  int
	})
	storage.Put(storage.GetContext(), "name", args.name)
}

func Name() string {
	val := storage.Get(storage.GetReadOnlyContext(), "name")
	if val == nil {
		return ""
	}
	return val.(string)
}
