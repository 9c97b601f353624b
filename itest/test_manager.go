package e2etest

import (
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parastake/compound-checker/checker"
	"github.com/parastake/compound-checker/clientcontroller"
	"github.com/parastake/compound-checker/config"
	"github.com/parastake/compound-checker/harness"
	"github.com/parastake/compound-checker/keyring"
	"github.com/parastake/compound-checker/types"
)

var (
	eventuallyWaitTimeOut = 1 * time.Minute
	eventuallyPollTime    = 100 * time.Millisecond

	chainName = "parachain-staking"
)

type TestManager struct {
	DevNodeHandler *DevNodeHandler
	Config         *config.Config
	CC             clientcontroller.ClientController
	Harness        *harness.Harness
	Auditor        *checker.CompoundAuditor
	KC             *keyring.ChainKeyringController
	logger         *zap.Logger
	baseDir        string
}

func StartManager(t *testing.T) *TestManager {
	testDir, err := baseDir("cchke2etest")
	require.NoError(t, err)

	logger := zap.NewNop()

	// 1. prepare the development node on a random local port
	kc, err := keyring.CreateDevKeyring()
	require.NoError(t, err)
	cfg := defaultCheckerConfig(testDir)
	dh := NewDevNodeHandler(t, cfg.DevNodeConfig, kc, logger)
	err = dh.Start()
	require.NoError(t, err)

	// 2. persist the checker config pointing at the node and load it back
	cfg.ChainConfig.RPCAddr = dh.RPCAddr()
	err = config.WriteConfig(cfg, testDir)
	require.NoError(t, err)
	cfg, err = config.LoadConfig(testDir)
	require.NoError(t, err)

	// 3. prepare the checker
	cc, err := clientcontroller.NewClientController(chainName, cfg.ChainConfig, logger)
	require.NoError(t, err)
	ca := checker.NewCompoundAuditor(cfg, cc, logger)
	err = ca.Start()
	require.NoError(t, err)

	tm := &TestManager{
		DevNodeHandler: dh,
		Config:         cfg,
		CC:             cc,
		Harness:        harness.New(cc, logger),
		Auditor:        ca,
		KC:             kc,
		logger:         logger,
		baseDir:        testDir,
	}

	tm.WaitForServicesStart(t)

	return tm
}

func (tm *TestManager) WaitForServicesStart(t *testing.T) {
	require.Eventually(t, func() bool {
		_, err := tm.CC.QueryStakingParams()

		return err == nil
	}, eventuallyWaitTimeOut, eventuallyPollTime)

	t.Logf("development node is started")
}

func (tm *TestManager) Stop(t *testing.T) {
	err := tm.Auditor.Stop()
	require.NoError(t, err)
	err = tm.CC.Close()
	require.NoError(t, err)
	tm.DevNodeHandler.Stop(t)
	err = os.RemoveAll(tm.baseDir)
	require.NoError(t, err)
}

// NewScenario builds a scenario from the loaded config, edited by mutate
// when given
func (tm *TestManager) NewScenario(t *testing.T, mutate func(cfg *config.ScenarioConfig)) *checker.CompoundScenario {
	cfg := *tm.Config.ScenarioConfig
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := checker.NewCompoundScenario(&cfg, tm.CC, tm.KC, tm.logger)
	require.NoError(t, err)
	return s
}

func (tm *TestManager) GetParams(t *testing.T) *types.StakingParams {
	p, err := tm.CC.QueryStakingParams()
	require.NoError(t, err)
	return p
}

func (tm *TestManager) Address(t *testing.T, name string) common.Address {
	addr, err := tm.KC.Address(name)
	require.NoError(t, err)
	return addr
}

// SignCall signs call by the named account with its next nonce
func (tm *TestManager) SignCall(t *testing.T, name string, call types.Call) *types.SignedExtrinsic {
	nonce, err := tm.CC.QueryAccountNonce(tm.Address(t, name))
	require.NoError(t, err)
	ext, err := tm.KC.Sign(name, call, nonce)
	require.NoError(t, err)
	return ext
}

func (tm *TestManager) WaitForBlockAudited(t *testing.T, number uint64) {
	require.Eventually(t, func() bool {
		last, ok := tm.Auditor.LastAuditedBlock()
		return ok && last >= number
	}, eventuallyWaitTimeOut, eventuallyPollTime)

	t.Logf("block %d is audited", number)
}

func defaultCheckerConfig(homeDir string) *config.Config {
	cfg := config.DefaultConfigWithHomePath(homeDir)
	cfg.DevNodeConfig.ListenAddr = "127.0.0.1:0"
	cfg.QueryInterval = 200 * time.Millisecond
	cfg.Metrics.UpdateInterval = 200 * time.Millisecond
	return &cfg
}
