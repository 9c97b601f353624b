package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/parastake/compound-checker/config"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, uint32(10), cfg.ScenarioConfig.BlocksPerRound)
	require.Equal(t, uint8(50), cfg.ScenarioConfig.AutoCompoundPercent)
	require.True(t, cfg.DevNodeConfig.MinDelegationAmount().IsPositive())
}

func TestWriteAndLoadConfig(t *testing.T) {
	homePath := t.TempDir()

	_, err := config.LoadConfig(homePath)
	require.Error(t, err)

	cfg := config.DefaultConfigWithHomePath(homePath)
	cfg.ScenarioConfig.AutoCompoundPercent = 33
	cfg.ChainConfig.RPCAddr = "ws://127.0.0.1:9945"
	cfg.QueryInterval = 2 * time.Second
	require.NoError(t, config.WriteConfig(&cfg, homePath))

	loaded, err := config.LoadConfig(homePath)
	require.NoError(t, err)
	require.Equal(t, uint8(33), loaded.ScenarioConfig.AutoCompoundPercent)
	require.Equal(t, "ws://127.0.0.1:9945", loaded.ChainConfig.RPCAddr)
	require.Equal(t, 2*time.Second, loaded.QueryInterval)
	require.Equal(t, cfg.DevNodeConfig.RoundReward, loaded.DevNodeConfig.RoundReward)
}

func TestInvalidConfigs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
	}{
		{"percent above 100", func(cfg *config.Config) { cfg.ScenarioConfig.AutoCompoundPercent = 101 }},
		{"zero round length", func(cfg *config.Config) { cfg.ScenarioConfig.BlocksPerRound = 0 }},
		{"self delegation", func(cfg *config.Config) { cfg.ScenarioConfig.DelegatorKey = cfg.ScenarioConfig.CollatorKey }},
		{"empty rpc address", func(cfg *config.Config) { cfg.ChainConfig.RPCAddr = "" }},
		{"zero timeout", func(cfg *config.Config) { cfg.ChainConfig.Timeout = 0 }},
		{"zero cache", func(cfg *config.Config) { cfg.ChainConfig.EventCacheSize = 0 }},
		{"bad metrics host", func(cfg *config.Config) { cfg.Metrics.Host = "localhost:1" }},
		{"bad listen address", func(cfg *config.Config) { cfg.DevNodeConfig.ListenAddr = "nowhere" }},
		{"negative reward", func(cfg *config.Config) { cfg.DevNodeConfig.RoundReward = "-1" }},
		{"non numeric delegation", func(cfg *config.Config) { cfg.DevNodeConfig.MinDelegation = "one" }},
		{"zero query interval", func(cfg *config.Config) { cfg.QueryInterval = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tc.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
