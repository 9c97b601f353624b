package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lightningnetwork/lnd/signal"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/parastake/compound-checker/devchain"
	"github.com/parastake/compound-checker/keyring"
)

var devNodeCommand = cli.Command{
	Name:  "devnode",
	Usage: "Serve an in-memory development parachain with manual sealing.",
	Flags: []cli.Flag{
		homeCliFlag,
		cli.StringFlag{
			Name:  listenFlag,
			Usage: "Override the address to serve JSON-RPC on",
		},
	},
	Action: devNode,
}

func devNode(ctx *cli.Context) error {
	_, cfg, logger, err := loadHome(ctx)
	if err != nil {
		return err
	}
	if addr := ctx.String(listenFlag); addr != "" {
		cfg.DevNodeConfig.ListenAddr = addr
	}

	kc, err := keyring.CreateDevKeyring()
	if err != nil {
		return err
	}
	sudo, err := kc.ResolveKey(cfg.ScenarioConfig.SudoKey)
	if err != nil {
		return fmt.Errorf("sudo key: %w", err)
	}
	collator, err := kc.ResolveKey(cfg.ScenarioConfig.CollatorKey)
	if err != nil {
		return fmt.Errorf("collator key: %w", err)
	}

	var endowed []common.Address
	for _, info := range kc.List() {
		endowed = append(endowed, info.Address)
	}

	genesis := devchain.GenesisFromConfig(cfg.DevNodeConfig, sudo.Address, collator.Address, endowed...)
	chain, err := devchain.NewChain(genesis, logger)
	if err != nil {
		return err
	}

	srv, err := devchain.NewServer(chain, cfg.DevNodeConfig.ListenAddr, logger)
	if err != nil {
		return err
	}

	shutdownInterceptor, err := signal.Intercept()
	if err != nil {
		return err
	}

	if err := srv.Start(); err != nil {
		return err
	}
	defer func() {
		if err := srv.Stop(); err != nil {
			logger.Error("failed to stop the development node", zap.Error(err))
		}
	}()

	logger.Info("development node is ready",
		zap.String("url", srv.URL()),
		zap.String("sudo", sudo.Address.Hex()),
		zap.String("collator", collator.Address.Hex()),
	)

	<-shutdownInterceptor.ShutdownChannel()

	return nil
}
