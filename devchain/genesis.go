package devchain

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/parastake/compound-checker/config"
	"github.com/parastake/compound-checker/types"
)

const (
	defaultMinBlocksPerRound          = uint32(2)
	defaultMaxDelegationsPerCandidate = uint32(300)
	defaultCollatorCommission         = types.Percent(20)
)

// 1 million tokens of 18 decimals
var defaultEndowment = sdkmath.NewIntWithDecimal(1_000_000, 18)

type GenesisCandidate struct {
	Address  common.Address
	SelfBond sdkmath.Int
}

type GenesisConfig struct {
	SudoKey    common.Address
	Candidates []GenesisCandidate
	Balances   map[common.Address]sdkmath.Int

	BlocksPerRound             uint32
	MinBlocksPerRound          uint32
	RewardPaymentDelay         uint32
	MaxDelegationsPerCandidate uint32

	// RoundReward is split between a collator and its delegators for every
	// round the collator was selected in
	RoundReward        sdkmath.Int
	MinDelegation      sdkmath.Int
	CollatorCommission types.Percent
}

func (g *GenesisConfig) Validate() error {
	if len(g.Candidates) == 0 {
		return fmt.Errorf("at least one genesis candidate is required")
	}
	seen := make(map[common.Address]struct{}, len(g.Candidates))
	for _, c := range g.Candidates {
		if _, ok := seen[c.Address]; ok {
			return fmt.Errorf("duplicated candidate %s", c.Address.Hex())
		}
		seen[c.Address] = struct{}{}
		if c.SelfBond.IsNil() || !c.SelfBond.IsPositive() {
			return fmt.Errorf("candidate %s has no self bond", c.Address.Hex())
		}
	}
	if g.MinBlocksPerRound == 0 {
		return fmt.Errorf("the minimum round length should be positive")
	}
	if g.BlocksPerRound < g.MinBlocksPerRound {
		return fmt.Errorf("round length %d is below the minimum %d", g.BlocksPerRound, g.MinBlocksPerRound)
	}
	if g.MaxDelegationsPerCandidate == 0 {
		return fmt.Errorf("the maximum number of delegations should be positive")
	}
	if g.RoundReward.IsNil() || g.RoundReward.IsNegative() {
		return fmt.Errorf("invalid round reward")
	}
	if g.MinDelegation.IsNil() || !g.MinDelegation.IsPositive() {
		return fmt.Errorf("the minimum delegation should be positive")
	}
	return g.CollatorCommission.Validate()
}

// DefaultGenesisConfig returns a single collator chain in which sudo and
// every endowed account hold one million tokens
func DefaultGenesisConfig(sudo, collator common.Address, endowed ...common.Address) *GenesisConfig {
	balances := map[common.Address]sdkmath.Int{
		sudo:     defaultEndowment,
		collator: defaultEndowment,
	}
	for _, addr := range endowed {
		balances[addr] = defaultEndowment
	}

	devCfg := config.DefaultDevNodeConfig()

	return &GenesisConfig{
		SudoKey: sudo,
		Candidates: []GenesisCandidate{
			{Address: collator, SelfBond: devCfg.CollatorBondAmount()},
		},
		Balances:                   balances,
		BlocksPerRound:             devCfg.BlocksPerRound,
		MinBlocksPerRound:          defaultMinBlocksPerRound,
		RewardPaymentDelay:         devCfg.RewardPaymentDelay,
		MaxDelegationsPerCandidate: defaultMaxDelegationsPerCandidate,
		RoundReward:                devCfg.RoundRewardAmount(),
		MinDelegation:              devCfg.MinDelegationAmount(),
		CollatorCommission:         defaultCollatorCommission,
	}
}

// GenesisFromConfig applies the devnode settings on top of DefaultGenesisConfig
func GenesisFromConfig(cfg *config.DevNodeConfig, sudo, collator common.Address, endowed ...common.Address) *GenesisConfig {
	g := DefaultGenesisConfig(sudo, collator, endowed...)
	g.BlocksPerRound = cfg.BlocksPerRound
	g.RewardPaymentDelay = cfg.RewardPaymentDelay
	g.RoundReward = cfg.RoundRewardAmount()
	g.MinDelegation = cfg.MinDelegationAmount()
	g.Candidates[0].SelfBond = cfg.CollatorBondAmount()
	if g.BlocksPerRound < g.MinBlocksPerRound {
		g.MinBlocksPerRound = g.BlocksPerRound
	}
	return g
}
