package main

import (
	"fmt"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/parastake/compound-checker/config"
	"github.com/parastake/compound-checker/types"
	"github.com/parastake/compound-checker/util"
)

var initCommand = cli.Command{
	Name:  "init",
	Usage: "Initialize a checker home directory.",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  homeFlag,
			Usage: "Path to where the home directory will be initialized",
			Value: config.DefaultCheckerDir,
		},
		cli.BoolFlag{
			Name:     forceFlag,
			Usage:    "Override existing configuration",
			Required: false,
		},
		cli.StringFlag{
			Name:  rpcAddrFlag,
			Usage: "JSON-RPC endpoint of the node to check",
		},
		cli.IntFlag{
			Name:  percentFlag,
			Usage: "Auto-compound percentage of the scenario (0-100)",
			Value: -1,
		},
	},
	Action: initHome,
}

func initHome(c *cli.Context) error {
	homePath, err := filepath.Abs(c.String(homeFlag))
	if err != nil {
		return err
	}
	homePath = util.CleanAndExpandPath(homePath)
	force := c.Bool(forceFlag)

	if util.FileExists(homePath) && !force {
		return fmt.Errorf("home path %s already exists", homePath)
	}

	if err := util.MakeDirectory(homePath); err != nil {
		return err
	}
	if err := util.MakeDirectory(config.LogDir(homePath)); err != nil {
		return err
	}

	cfg := config.DefaultConfigWithHomePath(homePath)
	if addr := c.String(rpcAddrFlag); addr != "" {
		cfg.ChainConfig.RPCAddr = addr
	}
	if p := c.Int(percentFlag); p >= 0 {
		percent, err := types.NewPercent(uint64(p))
		if err != nil {
			return err
		}
		cfg.ScenarioConfig.AutoCompoundPercent = uint8(percent)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := config.WriteConfig(&cfg, homePath); err != nil {
		return err
	}
	fmt.Printf("initialized checker home at %s\n", homePath)

	return nil
}
