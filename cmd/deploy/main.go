package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/sarafan-network/sarafan-contract/contracts"
	"github.com/sarafan-network/sarafan-contract/deploy"
	"go.uber.org/zap"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	walletPath := flag.String("wallet", "", "Path to the wallet with the owner account")
	accAddress := flag.String("address", "", "Address of the owner account (default account of the wallet if empty)")
	password := flag.String("password", "", "Password of the owner account")
	contractsDir := flag.String("contracts", "contracts", "Directory with compiled contracts")
	saleEnd := flag.String("sale-end", "", "RFC3339 time of the token sale end (open sale if empty)")
	rate := flag.Int64("rate", 0, "Price of storing one megabyte for one month (contract default if zero)")
	noWait := flag.Bool("no-wait", false, "Pay peering rewards without waiting for the commitment duration")
	timeout := flag.Duration("timeout", 5*time.Minute, "Deployment timeout")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *walletPath == "":
		log.Fatal("missing wallet path")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(fmt.Errorf("init logger: %w", err))
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, *timeout)
	defer cancelTimeout()

	prm := deploy.Prm{
		Logger: logger,
		PeeringContract: deploy.PeeringContractPrm{
			DisablePayoutWait: *noWait,
		},
	}
	prm.TokenContract.MegabyteMonthCost = *rate

	if *saleEnd != "" {
		end, err := time.Parse(time.RFC3339, *saleEnd)
		if err != nil {
			log.Fatal(fmt.Errorf("parse sale end: %w", err))
		}
		prm.TokenContract.SaleEnd = end.UnixMilli()
	}

	cs, err := contracts.Read(os.DirFS(*contractsDir))
	if err != nil {
		log.Fatal(fmt.Errorf("read compiled contracts: %w", err))
	}

	prm.TokenContract.Common = deploy.CommonDeployPrm{NEF: cs.Token.NEF, Manifest: cs.Token.Manifest}
	prm.ContentContract.Common = deploy.CommonDeployPrm{NEF: cs.Content.NEF, Manifest: cs.Content.Manifest}
	prm.PeeringContract.Common = deploy.CommonDeployPrm{NEF: cs.Peering.NEF, Manifest: cs.Peering.Manifest}

	prm.LocalAccount, err = openAccount(*walletPath, *accAddress, *password)
	if err != nil {
		log.Fatal(err)
	}

	c, err := rpcclient.New(ctx, *neoRPCEndpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		log.Fatal(fmt.Errorf("RPC client dial: %w", err))
	}
	defer c.Close()

	err = c.Init()
	if err != nil {
		log.Fatal(fmt.Errorf("RPC client init: %w", err))
	}

	prm.Blockchain = c

	res, err := deploy.Deploy(ctx, prm)
	if err != nil {
		logger.Fatal("deployment failed", zap.Error(err))
	}

	logger.Info("Sarafan contracts are ready",
		zap.String("token", address.Uint160ToString(res.Token)),
		zap.String("content", address.Uint160ToString(res.Content)),
		zap.String("peering", address.Uint160ToString(res.Peering)),
	)
}

// openAccount reads the wallet and decrypts the account with the given
// address or the default one.
func openAccount(walletPath, addr, password string) (*wallet.Account, error) {
	w, err := wallet.NewWalletFromFile(walletPath)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}
	defer w.Close()

	var acc *wallet.Account

	if addr != "" {
		h, err := address.StringToUint160(addr)
		if err != nil {
			return nil, fmt.Errorf("decode account address: %w", err)
		}

		acc = w.GetAccount(h)
		if acc == nil {
			return nil, fmt.Errorf("account %s is missing in the wallet", addr)
		}
	} else {
		if len(w.Accounts) == 0 {
			return nil, fmt.Errorf("wallet %s has no accounts", walletPath)
		}

		acc = w.Accounts[0]
		for i := range w.Accounts {
			if w.Accounts[i].Default {
				acc = w.Accounts[i]
				break
			}
		}
	}

	err = acc.Decrypt(password, w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypt account: %w", err)
	}

	return acc, nil
}
