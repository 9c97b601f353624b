package config

import (
	"fmt"

	"github.com/parastake/compound-checker/types"
)

const (
	defaultBlocksPerRound      = uint32(10)
	defaultAutoCompoundPercent = uint8(50)
	defaultSudoKey             = "alith"
	defaultCollatorKey         = "alith"
	defaultDelegatorKey        = "ethan"
)

// ScenarioConfig parametrizes the auto-compound check
type ScenarioConfig struct {
	BlocksPerRound      uint32 `long:"blocksperround" description:"Round length set through sudo before delegating"`
	AutoCompoundPercent uint8  `long:"autocompoundpercent" description:"Share of the rewards the delegator auto-compounds (0-100)"`
	SudoKey             string `long:"sudokey" description:"Development account name or 0x-prefixed private key of the sudo account"`
	CollatorKey         string `long:"collatorkey" description:"Development account name or 0x-prefixed private key of the collator to delegate to"`
	DelegatorKey        string `long:"delegatorkey" description:"Development account name or 0x-prefixed private key of the delegator"`
}

func (cfg *ScenarioConfig) Validate() error {
	if cfg.BlocksPerRound == 0 {
		return fmt.Errorf("blocks per round should be positive")
	}
	if err := cfg.Percent().Validate(); err != nil {
		return err
	}
	if cfg.SudoKey == "" || cfg.CollatorKey == "" || cfg.DelegatorKey == "" {
		return fmt.Errorf("the sudo, collator and delegator keys should not be empty")
	}
	if cfg.CollatorKey == cfg.DelegatorKey {
		return fmt.Errorf("the collator cannot delegate to itself")
	}

	return nil
}

func (cfg *ScenarioConfig) Percent() types.Percent {
	return types.Percent(cfg.AutoCompoundPercent)
}

func DefaultScenarioConfig() ScenarioConfig {
	return ScenarioConfig{
		BlocksPerRound:      defaultBlocksPerRound,
		AutoCompoundPercent: defaultAutoCompoundPercent,
		SudoKey:             defaultSudoKey,
		CollatorKey:         defaultCollatorKey,
		DelegatorKey:        defaultDelegatorKey,
	}
}
