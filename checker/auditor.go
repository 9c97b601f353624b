package checker

import (
	"errors"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/parastake/compound-checker/clientcontroller"
	"github.com/parastake/compound-checker/config"
	"github.com/parastake/compound-checker/harness"
	"github.com/parastake/compound-checker/types"
)

var (
	RtyAttNum = uint(5)
	RtyAtt    = retry.Attempts(RtyAttNum)
	RtyDel    = retry.Delay(time.Millisecond * 400)
	RtyErr    = retry.LastErrorOnly(true)
)

// Violation is a Compounded event that does not match its reward
type Violation struct {
	Delegator common.Address `json:"delegator"`
	Candidate common.Address `json:"candidate"`
	Reason    string         `json:"reason"`
	Err       error          `json:"-"`
}

type AuditResult struct {
	BlockHash  common.Hash  `json:"block_hash"`
	Checked    int          `json:"checked"`
	Violations []*Violation `json:"violations"`
}

// CompoundAuditor follows the best block and checks every Compounded event
// against the reward of the same delegator in that block and the
// auto-compound percentage configured on chain
type CompoundAuditor struct {
	startOnce sync.Once
	stopOnce  sync.Once

	wg   sync.WaitGroup
	quit chan struct{}

	cc clientcontroller.ClientController
	h  *harness.Harness

	mu sync.Mutex
	// number of the last audited block, nil until the first poll
	lastAudited *uint64

	config *config.Config
	logger *zap.Logger
}

func NewCompoundAuditor(
	config *config.Config,
	cc clientcontroller.ClientController,
	logger *zap.Logger,
) *CompoundAuditor {
	return &CompoundAuditor{
		cc:     cc,
		h:      harness.New(cc, logger),
		config: config,
		logger: logger,
		quit:   make(chan struct{}),
	}
}

func (ca *CompoundAuditor) Config() *config.Config {
	return ca.config
}

// LastAuditedBlock returns the number of the last audited block and false
// if no block was audited yet
func (ca *CompoundAuditor) LastAuditedBlock() (uint64, bool) {
	ca.mu.Lock()
	defer ca.mu.Unlock()
	if ca.lastAudited == nil {
		return 0, false
	}
	return *ca.lastAudited, true
}

func (ca *CompoundAuditor) setLastAudited(n uint64) {
	ca.mu.Lock()
	defer ca.mu.Unlock()
	ca.lastAudited = &n
}

// AuditBlock checks the Compounded events of one block
func (ca *CompoundAuditor) AuditBlock(hash common.Hash) (*AuditResult, error) {
	var events *harness.RewardedAndCompounded
	if err := ca.withRetry("block events", func() error {
		var err error
		events, err = ca.h.GetRewardedAndCompoundedEvents(hash)
		return err
	}); err != nil {
		return nil, err
	}

	res := &AuditResult{
		BlockHash:  hash,
		Violations: []*Violation{},
	}
	for _, compounded := range events.Compounded {
		res.Checked++

		var p types.Percent
		if err := ca.withRetry("auto-compound config", func() error {
			var err error
			p, err = ca.cc.QueryAutoCompound(compounded.Candidate, compounded.Delegator)
			return err
		}); err != nil {
			return nil, err
		}

		pair := &harness.RewardedAndCompounded{
			BlockHash:  hash,
			Rewarded:   events.Rewarded,
			Compounded: sameDelegation(events.Compounded, compounded),
		}
		if _, err := harness.VerifyCompounded(pair, compounded.Delegator, p); err != nil {
			res.Violations = append(res.Violations, &Violation{
				Delegator: compounded.Delegator,
				Candidate: compounded.Candidate,
				Reason:    violationReason(err),
				Err:       err,
			})
		}
	}

	return res, nil
}

// sameDelegation keeps the Compounded events of the delegation of ev
func sameDelegation(events []types.CompoundedEvent, ev types.CompoundedEvent) []types.CompoundedEvent {
	var res []types.CompoundedEvent
	for _, e := range events {
		if e.Candidate == ev.Candidate && e.Delegator == ev.Delegator {
			res = append(res, e)
		}
	}
	return res
}

func violationReason(err error) string {
	for _, known := range []*errorsmod.Error{
		types.ErrNotRewarded,
		types.ErrDuplicateReward,
		types.ErrNotCompounded,
		types.ErrCompoundMismatch,
		types.ErrUnexpectedCompound,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "unknown"
}

func (ca *CompoundAuditor) withRetry(what string, f func() error) error {
	return retry.Do(f,
		RtyAtt, RtyDel, RtyErr,
		retry.RetryIf(clientcontroller.IsTransientError),
		retry.OnRetry(func(n uint, err error) {
			ca.logger.Debug(
				"failed to query the chain",
				zap.String("query", what),
				zap.Uint("attempt", n+1),
				zap.Uint("max_attempts", RtyAttNum),
				zap.Error(err),
			)
		}))
}

// auditNewBlocks audits every block between the last audited one and the
// best block. The first poll only audits the best block.
func (ca *CompoundAuditor) auditNewBlocks() {
	best, err := ca.cc.QueryBestBlock()
	if err != nil {
		ca.logger.Debug("failed to get the best block", zap.Error(err))
		return
	}

	from := best.Number
	if last, ok := ca.LastAuditedBlock(); ok {
		from = last + 1
	}

	for n := from; n <= best.Number; n++ {
		hash := best.Hash
		if n != best.Number {
			hash, err = ca.cc.QueryBlockHash(n)
			if err != nil {
				ca.logger.Debug("failed to get the block hash", zap.Uint64("number", n), zap.Error(err))
				return
			}
		}

		start := time.Now()
		res, err := ca.AuditBlock(hash)
		if err != nil {
			failedBlockAudits.Inc()
			ca.logger.Error("failed to audit block",
				zap.Uint64("number", n),
				zap.String("hash", hash.Hex()),
				zap.Error(err),
			)
			// the block is retried on the next poll only if the node may
			// answer differently, other failures are skipped
			if clientcontroller.IsTransientError(err) {
				return
			}
			ca.setLastAudited(n)
			continue
		}
		finish := time.Now()
		ca.recordAudit(n, res, start, finish)

		ca.setLastAudited(n)
	}
}

func (ca *CompoundAuditor) recordAudit(number uint64, res *AuditResult, start, finish time.Time) {
	totalBlocksAudited.Inc()
	totalCompoundsChecked.Add(float64(res.Checked))
	lastAuditedBlock.Set(float64(number))
	timedBlockAuditLag.Observe(finish.Sub(start).Seconds())
	metricsTimeKeeper.SetPreviousAudit(&finish)

	for _, v := range res.Violations {
		totalCompoundViolations.WithLabelValues(v.Reason).Inc()
		ca.logger.Error("compound violation",
			zap.Uint64("block", number),
			zap.String("delegator", v.Delegator.Hex()),
			zap.String("candidate", v.Candidate.Hex()),
			zap.Error(v.Err),
		)
	}

	if res.Checked > 0 {
		ca.logger.Info("audited block",
			zap.Uint64("number", number),
			zap.Int("compounds", res.Checked),
			zap.Int("violations", len(res.Violations)),
		)
	}
}

// auditLoop polls the chain for new blocks
func (ca *CompoundAuditor) auditLoop() {
	defer ca.wg.Done()

	interval := ca.config.QueryInterval
	auditTicker := time.NewTicker(interval)

	ca.logger.Info("starting compound audit loop",
		zap.Float64("interval seconds", interval.Seconds()))

	for {
		select {
		case <-auditTicker.C:
			ca.auditNewBlocks()
		case <-ca.quit:
			auditTicker.Stop()
			ca.logger.Debug("exiting compound audit loop")
			return
		}
	}
}

func (ca *CompoundAuditor) metricsUpdateLoop() {
	defer ca.wg.Done()

	interval := ca.config.Metrics.UpdateInterval
	ca.logger.Info("starting metrics update loop",
		zap.Float64("interval seconds", interval.Seconds()))
	updateTicker := time.NewTicker(interval)

	for {
		select {
		case <-updateTicker.C:
			metricsTimeKeeper.UpdatePrometheusMetrics()
		case <-ca.quit:
			updateTicker.Stop()
			ca.logger.Info("exiting metrics update loop")
			return
		}
	}
}

func (ca *CompoundAuditor) Start() error {
	var startErr error
	ca.startOnce.Do(func() {
		ca.logger.Info("Starting Compound Auditor")

		ca.wg.Add(2)
		go ca.auditLoop()
		go ca.metricsUpdateLoop()
	})

	return startErr
}

func (ca *CompoundAuditor) Stop() error {
	var stopErr error
	ca.stopOnce.Do(func() {
		ca.logger.Info("Stopping Compound Auditor")

		close(ca.quit)
		ca.wg.Wait()

		ca.logger.Debug("Compound Auditor successfully stopped")
	})
	return stopErr
}
