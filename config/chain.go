package config

import (
	"fmt"
	"net/url"
	"time"
)

const (
	defaultRPCAddr        = "http://127.0.0.1:9944"
	defaultRPCTimeout     = 20 * time.Second
	defaultEventCacheSize = 256
)

// ChainConfig defines how to reach the node under test
type ChainConfig struct {
	RPCAddr        string        `long:"rpcaddr" description:"JSON-RPC endpoint of the node (http, ws or ipc path)"`
	Timeout        time.Duration `long:"timeout" description:"Timeout of a single RPC request"`
	EventCacheSize int           `long:"eventcachesize" description:"Number of blocks whose events are kept in memory"`
}

func (cfg *ChainConfig) Validate() error {
	if cfg.RPCAddr == "" {
		return fmt.Errorf("the rpc address should not be empty")
	}
	if u, err := url.Parse(cfg.RPCAddr); err != nil || u.Scheme == "" && u.Path == "" {
		return fmt.Errorf("invalid rpc address: %s", cfg.RPCAddr)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("the rpc timeout should be positive")
	}
	if cfg.EventCacheSize <= 0 {
		return fmt.Errorf("the event cache size should be positive")
	}

	return nil
}

func DefaultChainConfig() ChainConfig {
	return ChainConfig{
		RPCAddr:        defaultRPCAddr,
		Timeout:        defaultRPCTimeout,
		EventCacheSize: defaultEventCacheSize,
	}
}
