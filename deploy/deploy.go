package deploy

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/sarafan-network/sarafan-contract/rpc/peering"
	"github.com/sarafan-network/sarafan-contract/rpc/token"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for Sarafan contracts deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to the
	// blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of the smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// TokenContractPrm groups deployment parameters of the Sarafan Token contract.
type TokenContractPrm struct {
	Common CommonDeployPrm

	// Millisecond timestamp of the sale end, zero keeps the sale open.
	SaleEnd int64

	// Price of storing one megabyte for one month. Zero keeps the contract
	// default.
	MegabyteMonthCost int64
}

// ContentContractPrm groups deployment parameters of the Sarafan Content contract.
type ContentContractPrm struct {
	Common CommonDeployPrm
}

// PeeringContractPrm groups deployment parameters of the Sarafan Peering contract.
type PeeringContractPrm struct {
	Common CommonDeployPrm

	// Disables waiting for the commitment duration before reward payout.
	DisablePayoutWait bool
}

// Prm groups all parameters of the Sarafan contracts deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance the contracts are deployed to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	// It becomes the owner of all deployed contracts.
	LocalAccount *wallet.Account

	TokenContract   TokenContractPrm
	ContentContract ContentContractPrm
	PeeringContract PeeringContractPrm
}

// Result groups addresses of the deployed contracts.
type Result struct {
	Token   util.Uint160
	Content util.Uint160
	Peering util.Uint160
}

// Deploy deploys Sarafan Token, Content and Peering contracts to the
// blockchain and links them together.
//
// Contract addresses depend only on the local account, NEF checksum and the
// contract name, so already deployed contracts are detected and reused, and
// Deploy can be safely repeated after a failure. Summary of stages:
//  1. Token contract deployment
//  2. Content and Peering contracts deployment with Token address
//  3. linking of Content and Peering contracts in Token contract
//  4. initial configuration of the megabyte-month rate and payout wait
//
// Every transaction is awaited, Deploy aborts on the first failed one.
func Deploy(ctx context.Context, prm Prm) (Result, error) {
	var res Result

	act, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return res, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	d := deployer{
		logger:     prm.Logger,
		blockchain: prm.Blockchain,
		actor:      act,
		owner:      act.Sender(),
	}

	prm.Logger.Info("synchronizing Token contract with the chain...")

	res.Token, err = d.sync(ctx, prm.TokenContract.Common, []any{d.owner, prm.TokenContract.SaleEnd})
	if err != nil {
		return res, fmt.Errorf("sync Token contract with the chain: %w", err)
	}

	prm.Logger.Info("Token contract successfully synchronized", zap.Stringer("address", res.Token))

	prm.Logger.Info("synchronizing Content contract with the chain...")

	res.Content, err = d.sync(ctx, prm.ContentContract.Common, []any{res.Token, d.owner})
	if err != nil {
		return res, fmt.Errorf("sync Content contract with the chain: %w", err)
	}

	prm.Logger.Info("Content contract successfully synchronized", zap.Stringer("address", res.Content))

	prm.Logger.Info("synchronizing Peering contract with the chain...")

	res.Peering, err = d.sync(ctx, prm.PeeringContract.Common, []any{res.Token, d.owner})
	if err != nil {
		return res, fmt.Errorf("sync Peering contract with the chain: %w", err)
	}

	prm.Logger.Info("Peering contract successfully synchronized", zap.Stringer("address", res.Peering))

	tokenContract := token.New(act, res.Token)

	err = d.link(ctx, "content", res.Content, tokenContract.ContentContract, tokenContract.SetContentContract)
	if err != nil {
		return res, fmt.Errorf("link Content contract: %w", err)
	}

	err = d.link(ctx, "peering", res.Peering, tokenContract.PeeringContract, tokenContract.SetPeeringContract)
	if err != nil {
		return res, fmt.Errorf("link Peering contract: %w", err)
	}

	if cost := prm.TokenContract.MegabyteMonthCost; cost > 0 {
		err = d.setMegabyteMonthCost(ctx, tokenContract, big.NewInt(cost))
		if err != nil {
			return res, fmt.Errorf("set megabyte-month cost: %w", err)
		}
	}

	if prm.PeeringContract.DisablePayoutWait {
		err = d.disablePayoutWait(ctx, peering.New(act, res.Peering))
		if err != nil {
			return res, fmt.Errorf("disable payout wait: %w", err)
		}
	}

	prm.Logger.Info("Sarafan contracts successfully deployed")

	return res, nil
}

type deployer struct {
	logger     *zap.Logger
	blockchain Blockchain
	actor      *actor.Actor
	owner      util.Uint160
}

// contractAddress returns the address the contract gets when it is deployed by
// sender.
func contractAddress(sender util.Uint160, prm CommonDeployPrm) util.Uint160 {
	return state.CreateContractHash(sender, prm.NEF.Checksum, prm.Manifest.Name)
}

// sync deploys the contract unless it is already on the chain and returns its
// address.
func (d deployer) sync(ctx context.Context, prm CommonDeployPrm, data []any) (util.Uint160, error) {
	addr := contractAddress(d.owner, prm)
	l := d.logger.With(zap.String("contract", prm.Manifest.Name), zap.Stringer("address", addr))

	_, err := d.blockchain.GetContractStateByHash(addr)
	if err == nil {
		l.Info("contract is already deployed, skip")
		return addr, nil
	}

	if !isErrContractNotFound(err) {
		return addr, fmt.Errorf("get contract state: %w", err)
	}

	l.Info("contract is missing on the chain, deploying...")

	txHash, vub, err := management.New(d.actor).Deploy(&prm.NEF, &prm.Manifest, data)
	err = d.await(ctx, txHash, vub, err)
	if err != nil {
		return addr, fmt.Errorf("deploy contract: %w", err)
	}

	l.Info("contract successfully deployed")

	return addr, nil
}

func (d deployer) link(ctx context.Context, name string, addr util.Uint160,
	get func() (util.Uint160, error), set func(util.Uint160) (util.Uint256, uint32, error)) error {
	l := d.logger.With(zap.String("link", name), zap.Stringer("address", addr))

	linked, err := get()
	if err == nil && linked.Equals(addr) {
		l.Info("contract is already linked, skip")
		return nil
	}

	l.Info("linking contract...")

	txHash, vub, err := set(addr)
	err = d.await(ctx, txHash, vub, err)
	if err != nil {
		return err
	}

	l.Info("contract successfully linked")

	return nil
}

func (d deployer) setMegabyteMonthCost(ctx context.Context, c *token.Contract, cost *big.Int) error {
	current, err := c.MegabyteMonthCost()
	if err != nil {
		return fmt.Errorf("read current cost: %w", err)
	}

	if current.Cmp(cost) == 0 {
		d.logger.Info("megabyte-month cost is already set, skip", zap.Stringer("cost", cost))
		return nil
	}

	d.logger.Info("setting megabyte-month cost...", zap.Stringer("cost", cost))

	txHash, vub, err := c.SetMegabyteMonthCost(cost)
	return d.await(ctx, txHash, vub, err)
}

func (d deployer) disablePayoutWait(ctx context.Context, c *peering.Contract) error {
	wait, err := c.WaitPayout()
	if err != nil {
		return fmt.Errorf("read payout wait flag: %w", err)
	}

	if !wait {
		d.logger.Info("payout wait is already disabled, skip")
		return nil
	}

	d.logger.Info("disabling payout wait...")

	txHash, vub, err := c.SetWaitPayout(false)
	return d.await(ctx, txHash, vub, err)
}

// await waits for the transaction to be accepted and checks that it has been
// executed successfully.
func (d deployer) await(ctx context.Context, txHash util.Uint256, vub uint32, err error) error {
	if err != nil {
		return fmt.Errorf("send transaction: %w", err)
	}

	d.logger.Debug("transaction sent, waiting...", zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	type waitResult struct {
		res *state.AppExecResult
		err error
	}

	ch := make(chan waitResult, 1)
	go func() {
		res, err := d.actor.Wait(txHash, vub, nil)
		ch <- waitResult{res, err}
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), r.err)
		}

		if r.res.VMState != vmstate.Halt {
			return fmt.Errorf("transaction %s failed with %s: %w", txHash.StringLE(), r.res.VMState, errors.New(r.res.FaultException))
		}
	}

	return nil
}

func isErrContractNotFound(err error) bool {
	return strings.Contains(err.Error(), "Unknown contract")
}
