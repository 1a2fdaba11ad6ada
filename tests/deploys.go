package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

const (
	tokenPath   = "../contracts/token"
	contentPath = "../contracts/content"
	peeringPath = "../contracts/peering"
)

// sarafan groups addresses of the deployed Sarafan contracts.
type sarafan struct {
	token, content, peering util.Uint160
}

func compileContract(t testing.TB, e *neotest.Executor, p string) *neotest.Contract {
	return neotest.CompileFile(t, e.CommitteeHash, p, path.Join(p, "config.yml"))
}

// deployToken deploys Token contract owned by the committee.
func deployToken(t testing.TB, e *neotest.Executor, saleEnd int64) util.Uint160 {
	c := compileContract(t, e, tokenPath)
	e.DeployContract(t, c, []any{e.CommitteeHash, saleEnd})
	return c.Hash
}

// deploySarafan deploys all Sarafan contracts owned by the committee and
// links Content and Peering contracts in Token contract.
func deploySarafan(t testing.TB, e *neotest.Executor) sarafan {
	var res sarafan

	res.token = deployToken(t, e, 0)

	ctrContent := compileContract(t, e, contentPath)
	e.DeployContract(t, ctrContent, []any{res.token, e.CommitteeHash})
	res.content = ctrContent.Hash

	ctrPeering := compileContract(t, e, peeringPath)
	e.DeployContract(t, ctrPeering, []any{res.token, e.CommitteeHash})
	res.peering = ctrPeering.Hash

	tokenInv := e.CommitteeInvoker(res.token)
	tokenInv.Invoke(t, stackitem.Null{}, "setContentContract", res.content)
	tokenInv.Invoke(t, stackitem.Null{}, "setPeeringContract", res.peering)

	return res
}
