package config

import (
	"fmt"
	"net"

	sdkmath "cosmossdk.io/math"
)

const (
	defaultDevNodeListenAddr  = "127.0.0.1:9944"
	defaultDevBlocksPerRound  = uint32(100)
	defaultRewardPaymentDelay = uint32(2)
	// 1 token has 18 decimals
	defaultRoundReward   = "10000000000000000000"
	defaultMinDelegation = "1000000000000000000"
	defaultCollatorBond  = "1000000000000000000000"
)

// DevNodeConfig defines the development chain served by `cchk devnode`
type DevNodeConfig struct {
	ListenAddr         string `long:"listenaddr" description:"Address the development node serves JSON-RPC on"`
	BlocksPerRound     uint32 `long:"blocksperround" description:"Genesis round length in blocks"`
	RewardPaymentDelay uint32 `long:"rewardpaymentdelay" description:"Number of rounds between reward accrual and payment"`
	RoundReward        string `long:"roundreward" description:"Amount distributed to each collator and its delegators per round"`
	MinDelegation      string `long:"mindelegation" description:"Minimum amount of a single delegation"`
	CollatorBond       string `long:"collatorbond" description:"Self bond of the genesis collator"`
}

func (cfg *DevNodeConfig) Validate() error {
	if _, _, err := net.SplitHostPort(cfg.ListenAddr); err != nil {
		return fmt.Errorf("invalid listen address %s: %w", cfg.ListenAddr, err)
	}
	if cfg.BlocksPerRound == 0 {
		return fmt.Errorf("blocks per round should be positive")
	}
	for name, v := range map[string]string{
		"round reward":   cfg.RoundReward,
		"min delegation": cfg.MinDelegation,
		"collator bond":  cfg.CollatorBond,
	} {
		if _, err := parseAmount(v); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	return nil
}

func (cfg *DevNodeConfig) RoundRewardAmount() sdkmath.Int {
	return mustParseAmount(cfg.RoundReward)
}

func (cfg *DevNodeConfig) MinDelegationAmount() sdkmath.Int {
	return mustParseAmount(cfg.MinDelegation)
}

func (cfg *DevNodeConfig) CollatorBondAmount() sdkmath.Int {
	return mustParseAmount(cfg.CollatorBond)
}

func parseAmount(s string) (sdkmath.Int, error) {
	amt, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("%q is not an integer", s)
	}
	if amt.IsNegative() {
		return sdkmath.Int{}, fmt.Errorf("%q is negative", s)
	}
	return amt, nil
}

// mustParseAmount panics on values rejected by Validate
func mustParseAmount(s string) sdkmath.Int {
	amt, err := parseAmount(s)
	if err != nil {
		panic(err)
	}
	return amt
}

func DefaultDevNodeConfig() DevNodeConfig {
	return DevNodeConfig{
		ListenAddr:         defaultDevNodeListenAddr,
		BlocksPerRound:     defaultDevBlocksPerRound,
		RewardPaymentDelay: defaultRewardPaymentDelay,
		RoundReward:        defaultRoundReward,
		MinDelegation:      defaultMinDelegation,
		CollatorBond:       defaultCollatorBond,
	}
}
