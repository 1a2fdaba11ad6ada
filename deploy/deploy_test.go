package deploy

import (
	"context"
	"encoding/hex"
	"fmt"
	"path"
	"path/filepath"
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/config"
	"github.com/nspcc-dev/neo-go/pkg/config/netmode"
	"github.com/nspcc-dev/neo-go/pkg/consensus"
	"github.com/nspcc-dev/neo-go/pkg/core"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/network"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/services/rpcsrv"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/sarafan-network/sarafan-contract/contracts/token/tokenconst"
	"github.com/sarafan-network/sarafan-contract/rpc/peering"
	"github.com/sarafan-network/sarafan-contract/rpc/token"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const contractsDir = "../contracts"

func compileContract(t testing.TB, name string) CommonDeployPrm {
	p := path.Join(contractsDir, name)
	c := neotest.CompileFile(t, util.Uint160{}, p, path.Join(p, "config.yml"))

	return CommonDeployPrm{
		NEF:      *c.NEF,
		Manifest: *c.Manifest,
	}
}

func TestContractAddress(t *testing.T) {
	acc, err := wallet.NewAccount()
	require.NoError(t, err)

	sender := acc.ScriptHash()

	for _, name := range []string{"token", "content", "peering"} {
		prm := compileContract(t, name)

		require.Equal(t, state.CreateContractHash(sender, prm.NEF.Checksum, prm.Manifest.Name),
			contractAddress(sender, prm), name)
	}

	require.NotEqual(t,
		contractAddress(sender, compileContract(t, "content")),
		contractAddress(util.Uint160{1}, compileContract(t, "content")))
}

func TestIsErrContractNotFound(t *testing.T) {
	require.True(t, isErrContractNotFound(fmt.Errorf("RPC error: Unknown contract")))
	require.False(t, isErrContractNotFound(fmt.Errorf("connection refused")))
}

func TestContractAutodeploy(t *testing.T) {
	validatorAcc, err := wallet.NewAccount()
	require.NoError(t, err)

	// Genesis GAS is minted to the multi-signature account of the validators.
	var validatorMulti = new(wallet.Account)
	*validatorMulti = *validatorAcc
	err = validatorMulti.ConvertMultisig(1, []*keys.PublicKey{validatorAcc.PublicKey()})
	require.NoError(t, err)

	var (
		tmpDir     = t.TempDir()
		walletPath = filepath.Join(tmpDir, "wallet.json")
		wlt        = wallet.NewInMemoryWallet()
	)

	err = validatorAcc.Encrypt("", keys.NEP2ScryptParams())
	require.NoError(t, err)
	wlt.Accounts = append(wlt.Accounts, validatorAcc)
	wlt.SetPath(walletPath)
	require.NoError(t, wlt.Save())

	var (
		cfg = config.Config{
			ApplicationConfiguration: config.ApplicationConfiguration{
				RPC: config.RPC{
					BasicService: config.BasicService{
						Enabled: true,
					},
					MaxGasInvoke: fixedn.Fixed8FromInt64(50),
				},
				Consensus: config.Consensus{
					Enabled: true,
					UnlockWallet: config.Wallet{
						Path:     walletPath,
						Password: "",
					},
				},
			},
			ProtocolConfiguration: config.ProtocolConfiguration{
				Magic:           netmode.UnitTestNet,
				MaxTimePerBlock: 20 * time.Second,
				Genesis: config.Genesis{
					MaxTraceableBlocks:          1000,
					MaxValidUntilBlockIncrement: 1000 / 2,
					TimePerBlock:                50 * time.Millisecond,
				},
				StandbyCommittee:   []string{hex.EncodeToString(validatorAcc.PublicKey().Bytes())},
				ValidatorsCount:    1,
				VerifyTransactions: true,
			},
		}
		logger = zaptest.NewLogger(t)
		store  = storage.NewMemoryStore()
	)

	bc, err := core.NewBlockchain(store, config.Blockchain{ProtocolConfiguration: cfg.ProtocolConfiguration}, logger)
	require.NoError(t, err)
	go bc.Run()
	t.Cleanup(bc.Close)

	serverConfig, err := network.NewServerConfig(config.Config{ProtocolConfiguration: cfg.ProtocolConfiguration})
	require.NoError(t, err)
	serverConfig.UserAgent = fmt.Sprintf(config.UserAgentFormat, "something")
	netSrv, err := network.NewServer(serverConfig, bc, bc.GetStateSyncModule(), logger)
	require.NoError(t, err)
	cons, err := consensus.NewService(consensus.Config{
		Logger:                logger,
		Broadcast:             netSrv.BroadcastExtensible,
		Chain:                 bc,
		BlockQueue:            netSrv.GetBlockQueue(),
		ProtocolConfiguration: cfg.ProtocolConfiguration,
		RequestTx:             netSrv.RequestTx,
		StopTxFlow:            netSrv.StopTxFlow,
		Wallet:                cfg.ApplicationConfiguration.Consensus.UnlockWallet,
	})
	require.NoError(t, err)
	netSrv.AddConsensusService(cons, cons.OnPayload, cons.OnTransaction)
	netSrv.Start()

	errCh := make(chan error, 2)
	rpcServer := rpcsrv.New(bc, cfg.ApplicationConfiguration.RPC, netSrv, nil, logger, errCh)
	rpcServer.Start()
	t.Cleanup(rpcServer.Shutdown)

	rpcClient, err := rpcclient.NewInternal(context.TODO(), rpcServer.RegisterLocal)
	require.NoError(t, err)
	require.NoError(t, rpcClient.Init())

	deployPrm := Prm{
		Logger:       logger,
		Blockchain:   rpcClient,
		LocalAccount: validatorMulti,
		TokenContract: TokenContractPrm{
			Common:            compileContract(t, "token"),
			MegabyteMonthCost: 2,
		},
		ContentContract: ContentContractPrm{
			Common: compileContract(t, "content"),
		},
		PeeringContract: PeeringContractPrm{
			Common:            compileContract(t, "peering"),
			DisablePayoutWait: true,
		},
	}

	ctx, cancel := context.WithTimeout(context.TODO(), 2*time.Minute)
	res, err := Deploy(ctx, deployPrm)
	cancel()
	require.NoError(t, err)

	owner := validatorMulti.ScriptHash()
	require.Equal(t, contractAddress(owner, deployPrm.TokenContract.Common), res.Token)
	require.Equal(t, contractAddress(owner, deployPrm.ContentContract.Common), res.Content)
	require.Equal(t, contractAddress(owner, deployPrm.PeeringContract.Common), res.Peering)

	inv := invoker.New(rpcClient, nil)
	tokenReader := token.NewReader(inv, res.Token)

	linked, err := tokenReader.ContentContract()
	require.NoError(t, err)
	require.Equal(t, res.Content, linked)

	linked, err = tokenReader.PeeringContract()
	require.NoError(t, err)
	require.Equal(t, res.Peering, linked)

	reserve, err := tokenReader.BalanceOf(res.Peering)
	require.NoError(t, err)
	require.EqualValues(t, tokenconst.PeeringReserve, reserve.Int64())

	ownerBalance, err := tokenReader.BalanceOf(owner)
	require.NoError(t, err)
	require.EqualValues(t, tokenconst.InitialSupply-tokenconst.PeeringReserve, ownerBalance.Int64())

	rate, err := tokenReader.MegabyteMonthCost()
	require.NoError(t, err)
	require.EqualValues(t, 2, rate.Int64())

	wait, err := peering.NewReader(inv, res.Peering).WaitPayout()
	require.NoError(t, err)
	require.False(t, wait)

	// Repeated deployment finds everything in place.
	ctx, cancel = context.WithTimeout(context.TODO(), 2*time.Minute)
	again, err := Deploy(ctx, deployPrm)
	cancel()
	require.NoError(t, err)
	require.Equal(t, res, again)

	reserve, err = tokenReader.BalanceOf(res.Peering)
	require.NoError(t, err)
	require.EqualValues(t, tokenconst.PeeringReserve, reserve.Int64())
}
