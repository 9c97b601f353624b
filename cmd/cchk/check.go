package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/parastake/compound-checker/checker"
	"github.com/parastake/compound-checker/keyring"
	"github.com/parastake/compound-checker/types"
)

var checkCommand = cli.Command{
	Name:  "check",
	Usage: "Run the auto-compound scenario once against a node.",
	Description: "Set the round length through sudo, delegate with auto-compound, " +
		"advance past the reward payment delay and check the compounded amount.",
	Flags: []cli.Flag{
		homeCliFlag,
		cli.StringFlag{
			Name:  chainNameFlag,
			Usage: "The kind of chain to check",
			Value: defaultChainName,
		},
		cli.StringFlag{
			Name:  rpcAddrFlag,
			Usage: "Override the JSON-RPC endpoint of the node",
		},
		cli.IntFlag{
			Name:  percentFlag,
			Usage: "Override the auto-compound percentage (0-100)",
			Value: -1,
		},
		cli.UintFlag{
			Name:  waitFlag,
			Usage: "Number of one second attempts to reach the node",
			Value: 30,
		},
	},
	Action: check,
}

func check(ctx *cli.Context) error {
	_, cfg, logger, err := loadHome(ctx)
	if err != nil {
		return err
	}

	if addr := ctx.String(rpcAddrFlag); addr != "" {
		cfg.ChainConfig.RPCAddr = addr
	}
	if p := ctx.Int(percentFlag); p >= 0 {
		percent, err := types.NewPercent(uint64(p))
		if err != nil {
			return err
		}
		cfg.ScenarioConfig.AutoCompoundPercent = uint8(percent)
	}

	cc, err := connect(ctx.String(chainNameFlag), cfg.ChainConfig, ctx.Uint(waitFlag), logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := cc.Close(); err != nil {
			logger.Error("failed to close the rpc client", zap.Error(err))
		}
	}()

	kc, err := keyring.CreateDevKeyring()
	if err != nil {
		return err
	}

	scenario, err := checker.NewCompoundScenario(cfg.ScenarioConfig, cc, kc, logger)
	if err != nil {
		return err
	}

	report, err := scenario.Execute()
	if err != nil {
		color.Red("FAIL %s", scenario.RunID())
		return fmt.Errorf("auto-compound check failed: %w", err)
	}

	color.Green("PASS %s", scenario.RunID())
	printRespJSON(report)

	return nil
}
