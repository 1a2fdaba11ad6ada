package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// OwnerKey is a storage key of the contract owner shared by all Sarafan
// contracts.
const OwnerKey = 'o'

// Owner returns the owner of the executing contract.
func Owner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, OwnerKey).(interop.Hash160)
}

// HasUpdateAccess returns true if contract can be updated.
func HasUpdateAccess(ctx storage.Context) bool {
	return runtime.CheckWitness(Owner(ctx))
}

// DeployOwner returns owner passed to the _deploy method or the sender of
// the deploying transaction if none was passed.
func DeployOwner(owner interop.Hash160) interop.Hash160 {
	if len(owner) == interop.Hash160Len {
		return owner
	}
	if len(owner) != 0 {
		panic("invalid owner")
	}

	return runtime.GetScriptContainer().Sender
}
