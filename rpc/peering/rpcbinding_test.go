package peering

import (
	"errors"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

type testInv struct {
	err error
	res *result.Invoke
}

func (t *testInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	return t.res, t.err
}

func commitmentItem(resolver stackitem.Item, state int64, paid bool) stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(util.Uint160{1}.BytesBE()),
		stackitem.Make([]byte("data hash")),
		stackitem.Make(720_000_000),
		stackitem.Make(1),
		stackitem.Make(1700000000000),
		stackitem.Make(state),
		resolver,
		stackitem.Make(1700000001000),
		stackitem.Make(100_000),
		stackitem.Make(paid),
	})
}

func TestGet(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.err = errors.New("bad")
	_, err := r.Get([]byte("data hash"))
	require.Error(t, err)

	ti.err = nil
	ti.res = &result.Invoke{
		State: "HALT",
		Stack: []stackitem.Item{commitmentItem(stackitem.Null{}, ResolutionPending.Int64(), false)},
	}
	c, err := r.Get([]byte("data hash"))
	require.NoError(t, err)
	require.Equal(t, util.Uint160{1}, c.Peer)
	require.Equal(t, util.Uint160{}, c.Resolver)
	require.False(t, c.IsVerified())
	require.False(t, c.Paid)

	verifier := util.Uint160{5}
	ti.res.Stack = []stackitem.Item{
		commitmentItem(stackitem.Make(verifier.BytesBE()), ResolutionVerified.Int64(), true),
	}
	c, err = r.Get([]byte("data hash"))
	require.NoError(t, err)
	require.Equal(t, verifier, c.Resolver)
	require.True(t, c.IsVerified())
	require.True(t, c.Paid)
	require.EqualValues(t, 100_000, c.ProvedSize.Int64())

	ti.res.Stack = []stackitem.Item{
		commitmentItem(stackitem.Make(verifier.BytesBE()), ResolutionRejected.Int64(), false),
	}
	c, err = r.Get([]byte("data hash"))
	require.NoError(t, err)
	require.False(t, c.IsVerified())

	ti.res.Stack = []stackitem.Item{
		commitmentItem(stackitem.Make([]byte{1, 2}), ResolutionVerified.Int64(), false),
	}
	_, err = r.Get([]byte("data hash"))
	require.ErrorContains(t, err, "field Resolver")
}

func TestIsVerified(t *testing.T) {
	var c Commitment
	require.False(t, c.IsVerified())

	c.State = ResolutionVerified
	require.True(t, c.IsVerified())
}
