package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key any, value any) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}

// GetInt returns integer stored by key or zero if there is none.
func GetInt(ctx storage.Context, key any) int {
	v := storage.Get(ctx, key)
	if v != nil {
		return v.(int)
	}

	return 0
}

// LinkedContract returns the address of the related contract stored by key.
// It panics if the contract has not been linked yet.
func LinkedContract(ctx storage.Context, key any, name string) interop.Hash160 {
	h := storage.Get(ctx, key)
	if h == nil {
		panic(name + " contract is not linked")
	}

	addr := h.(interop.Hash160)
	if len(addr) != interop.Hash160Len {
		panic(name + " contract is not linked")
	}

	return addr
}
