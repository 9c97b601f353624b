package checker

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parastake/compound-checker/clientcontroller"
	"github.com/parastake/compound-checker/config"
	"github.com/parastake/compound-checker/harness"
	"github.com/parastake/compound-checker/keyring"
	"github.com/parastake/compound-checker/types"
)

// Report is the outcome of a passing scenario run
type Report struct {
	RunID       string         `json:"run_id"`
	BlockHash   common.Hash    `json:"block_hash"`
	BlockNumber uint64         `json:"block_number"`
	Round       uint32         `json:"round"`
	Delegator   common.Address `json:"delegator"`
	Collator    common.Address `json:"collator"`
	Percent     types.Percent  `json:"auto_compound_percent"`
	Reward      sdkmath.Int    `json:"reward"`
	Compounded  sdkmath.Int    `json:"compounded"`
	Expected    sdkmath.Int    `json:"expected"`
}

// CompoundScenario delegates with auto-compound, waits for the reward
// payment and checks the compounded part of it
type CompoundScenario struct {
	runID uuid.UUID

	cfg *config.ScenarioConfig
	h   *harness.Harness
	cc  clientcontroller.ClientController
	kc  *keyring.ChainKeyringController

	sudo      *types.ChainKeyInfo
	collator  *types.ChainKeyInfo
	delegator *types.ChainKeyInfo

	params *types.StakingParams

	logger *zap.Logger
}

func NewCompoundScenario(
	cfg *config.ScenarioConfig,
	cc clientcontroller.ClientController,
	kc *keyring.ChainKeyringController,
	logger *zap.Logger,
) (*CompoundScenario, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario config: %w", err)
	}

	sudo, err := kc.ResolveKey(cfg.SudoKey)
	if err != nil {
		return nil, fmt.Errorf("sudo key: %w", err)
	}
	collator, err := kc.ResolveKey(cfg.CollatorKey)
	if err != nil {
		return nil, fmt.Errorf("collator key: %w", err)
	}
	delegator, err := kc.ResolveKey(cfg.DelegatorKey)
	if err != nil {
		return nil, fmt.Errorf("delegator key: %w", err)
	}
	if collator.Address == delegator.Address {
		return nil, fmt.Errorf("the collator %s cannot delegate to itself", collator.Address.Hex())
	}

	runID := uuid.New()

	return &CompoundScenario{
		runID:     runID,
		cfg:       cfg,
		h:         harness.New(cc, logger),
		cc:        cc,
		kc:        kc,
		sudo:      sudo,
		collator:  collator,
		delegator: delegator,
		logger:    logger.With(zap.String("run_id", runID.String())),
	}, nil
}

func (s *CompoundScenario) RunID() string {
	return s.runID.String()
}

// Setup sets the round length through sudo and delegates the minimum
// amount with auto-compound in a single block. Any failure aborts.
func (s *CompoundScenario) Setup() error {
	params, err := s.cc.QueryStakingParams()
	if err != nil {
		return err
	}
	s.params = params

	round, err := s.cc.QueryCurrentRound()
	if err != nil {
		return fmt.Errorf("failed to query the current round: %w", err)
	}

	calls := make([]signedCall, 0, 2)
	// the pallet refuses to write the same round length twice
	if round.Length != s.cfg.BlocksPerRound {
		setRound, err := types.NewSetBlocksPerRoundCall(s.cfg.BlocksPerRound)
		if err != nil {
			return err
		}
		sudoCall, err := types.NewSudoCall(setRound)
		if err != nil {
			return err
		}
		calls = append(calls, signedCall{key: s.sudo, call: sudoCall})
	}

	delegate, err := types.NewDelegateWithAutoCompoundCall(
		s.collator.Address,
		params.MinDelegation,
		s.cfg.Percent(),
		0, 0, 0,
	)
	if err != nil {
		return err
	}
	calls = append(calls, signedCall{key: s.delegator, call: delegate})

	exts, err := s.signAll(calls)
	if err != nil {
		return err
	}

	res, err := s.h.CreateBlock(harness.BlockOptions{AllowFailures: false}, exts...)
	if err != nil {
		return fmt.Errorf("setup block: %w", err)
	}

	// sudo succeeds even when the call it wraps does not
	round, err = s.cc.QueryCurrentRound()
	if err != nil {
		return fmt.Errorf("failed to query the current round: %w", err)
	}
	if round.Length != s.cfg.BlocksPerRound {
		return fmt.Errorf("round length is %d after setup, expected %d", round.Length, s.cfg.BlocksPerRound)
	}

	p, err := s.cc.QueryAutoCompound(s.collator.Address, s.delegator.Address)
	if err != nil {
		return fmt.Errorf("failed to query the auto-compound config: %w", err)
	}
	if p != s.cfg.Percent() {
		return fmt.Errorf("auto-compound is %s after setup, expected %s", p, s.cfg.Percent())
	}

	s.logger.Info("scenario is set up",
		zap.Uint64("block", res.Block.Number),
		zap.Uint32("blocks_per_round", round.Length),
		zap.String("delegator", s.delegator.Address.Hex()),
		zap.String("collator", s.collator.Address.Hex()),
		zap.String("amount", params.MinDelegation.String()),
		zap.Stringer("auto_compound", s.cfg.Percent()),
	)

	return nil
}

// Run skips past the reward payment delay, produces the payout block and
// checks its Rewarded and Compounded events
func (s *CompoundScenario) Run() (*Report, error) {
	report, err := s.run()
	recordScenarioRun(err == nil)
	return report, err
}

func (s *CompoundScenario) run() (*Report, error) {
	if s.params == nil {
		return nil, fmt.Errorf("the scenario is not set up")
	}

	round, err := s.h.JumpRounds(int(s.params.RewardPaymentDelay) + 1)
	if err != nil {
		return nil, err
	}

	res, err := s.h.CreateBlock(harness.BlockOptions{})
	if err != nil {
		return nil, err
	}

	events, err := s.h.GetRewardedAndCompoundedEvents(res.Block.Hash)
	if err != nil {
		return nil, err
	}

	check, err := harness.VerifyCompounded(events, s.delegator.Address, s.cfg.Percent())
	if err != nil {
		s.logger.Error("auto-compound check failed",
			zap.Uint64("block", res.Block.Number),
			zap.Error(err),
		)
		return nil, err
	}
	if check.Reward.IsZero() {
		return nil, fmt.Errorf("%w: reward of %s is zero", types.ErrNotRewarded, s.delegator.Address.Hex())
	}

	report := &Report{
		RunID:       s.runID.String(),
		BlockHash:   res.Block.Hash,
		BlockNumber: res.Block.Number,
		Round:       round.Current,
		Delegator:   s.delegator.Address,
		Collator:    s.collator.Address,
		Percent:     check.Percent,
		Reward:      check.Reward,
		Compounded:  check.Compounded,
		Expected:    check.Expected,
	}

	s.logger.Info("auto-compound check passed",
		zap.Uint64("block", report.BlockNumber),
		zap.Uint32("round", report.Round),
		zap.String("reward", report.Reward.String()),
		zap.String("compounded", report.Compounded.String()),
	)

	return report, nil
}

// Execute runs Setup then Run
func (s *CompoundScenario) Execute() (*Report, error) {
	if err := s.Setup(); err != nil {
		recordScenarioRun(false)
		return nil, err
	}
	return s.Run()
}

type signedCall struct {
	key  *types.ChainKeyInfo
	call types.Call
}

// signAll signs the calls in order, giving consecutive nonces to calls of
// the same account
func (s *CompoundScenario) signAll(calls []signedCall) ([]*types.SignedExtrinsic, error) {
	nonces := make(map[common.Address]uint64)
	exts := make([]*types.SignedExtrinsic, 0, len(calls))
	for _, c := range calls {
		nonce, ok := nonces[c.key.Address]
		if !ok {
			n, err := s.cc.QueryAccountNonce(c.key.Address)
			if err != nil {
				return nil, fmt.Errorf("failed to query the nonce of %s: %w", c.key.Name, err)
			}
			nonce = n
		}
		nonces[c.key.Address] = nonce + 1

		ext, err := s.kc.Sign(c.key.Name, c.call, nonce)
		if err != nil {
			return nil, err
		}
		exts = append(exts, ext)
	}
	return exts, nil
}
