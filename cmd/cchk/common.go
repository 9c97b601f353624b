package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/parastake/compound-checker/clientcontroller"
	"github.com/parastake/compound-checker/config"
	"github.com/parastake/compound-checker/log"
	"github.com/parastake/compound-checker/util"
)

var homeCliFlag = cli.StringFlag{
	Name:  homeFlag,
	Usage: "The path to the checker home directory",
	Value: config.DefaultCheckerDir,
}

func loadHome(ctx *cli.Context) (string, *config.Config, *zap.Logger, error) {
	homePath, err := filepath.Abs(ctx.String(homeFlag))
	if err != nil {
		return "", nil, nil, err
	}
	homePath = util.CleanAndExpandPath(homePath)

	cfg, err := config.LoadConfig(homePath)
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to load config at %s: %w", homePath, err)
	}

	logger, err := log.NewRootLoggerWithFile(config.LogFile(homePath), cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to load the logger: %w", err)
	}

	return homePath, cfg, logger, nil
}

// connect dials the node and waits until it answers
func connect(chainName string, cfg *config.ChainConfig, attempts uint, logger *zap.Logger) (clientcontroller.ClientController, error) {
	cc, err := clientcontroller.NewClientController(chainName, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create rpc client for the chain: %w", err)
	}

	// zero attempts means unlimited to retry-go
	if attempts == 0 {
		attempts = 1
	}

	if err := retry.Do(func() error {
		_, err := cc.QueryBestBlock()
		return err
	},
		retry.Attempts(attempts),
		retry.Delay(time.Second),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Debug("waiting for the node",
				zap.String("rpc_addr", cfg.RPCAddr),
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	); err != nil {
		_ = cc.Close()
		return nil, fmt.Errorf("the node at %s is not reachable: %w", cfg.RPCAddr, err)
	}

	return cc, nil
}

func printRespJSON(resp interface{}) {
	jsonBytes, err := json.MarshalIndent(resp, "", "    ")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Printf("%s\n", jsonBytes)
}
