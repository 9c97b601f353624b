package main

import (
	"fmt"

	"github.com/lightningnetwork/lnd/signal"
	"github.com/urfave/cli"

	"github.com/parastake/compound-checker/checker"
	"github.com/parastake/compound-checker/checker/service"
)

var startCommand = cli.Command{
	Name:        "start",
	Usage:       "Start the compound auditor daemon.",
	Description: "Follow the best block of the node and check every Compounded event against its reward.",
	Flags: []cli.Flag{
		homeCliFlag,
		cli.StringFlag{
			Name:  chainNameFlag,
			Usage: "The kind of chain to audit",
			Value: defaultChainName,
		},
		cli.UintFlag{
			Name:  waitFlag,
			Usage: "Number of one second attempts to reach the node",
			Value: 30,
		},
	},
	Action: start,
}

func start(ctx *cli.Context) error {
	_, cfg, logger, err := loadHome(ctx)
	if err != nil {
		return err
	}

	cc, err := connect(ctx.String(chainNameFlag), cfg.ChainConfig, ctx.Uint(waitFlag), logger)
	if err != nil {
		return err
	}
	defer cc.Close()

	ca := checker.NewCompoundAuditor(cfg, cc, logger)

	// Hook interceptor for os signals.
	shutdownInterceptor, err := signal.Intercept()
	if err != nil {
		return err
	}

	srv := service.NewCheckerServer(logger, ca, shutdownInterceptor)
	if err := srv.RunUntilShutdown(); err != nil {
		return fmt.Errorf("the checker server stopped: %w", err)
	}

	return nil
}
