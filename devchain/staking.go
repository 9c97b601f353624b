package devchain

import (
	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/parastake/compound-checker/types"
)

type delegationState struct {
	delegator    common.Address
	amount       sdkmath.Int
	autoCompound types.Percent
}

type candidateState struct {
	address     common.Address
	bond        sdkmath.Int
	delegations []*delegationState
}

func (c *candidateState) total() sdkmath.Int {
	total := c.bond
	for _, d := range c.delegations {
		total = total.Add(d.amount)
	}
	return total
}

func (c *candidateState) autoCompoundingCount() uint32 {
	var n uint32
	for _, d := range c.delegations {
		if !d.autoCompound.IsZero() {
			n++
		}
	}
	return n
}

// stakeSnapshot is the stake of one collator frozen at the start of a round
type stakeSnapshot struct {
	candidate   common.Address
	bond        sdkmath.Int
	total       sdkmath.Int
	delegations []delegationState
}

type stakingState struct {
	genesis *GenesisConfig

	round      types.RoundInfo
	candidates []*candidateState

	// atStake holds the snapshots of every round not paid yet
	atStake map[uint32][]*stakeSnapshot
	// payouts are the snapshots of the round being paid, one per block
	payouts []*stakeSnapshot
}

func newStakingState(genesis *GenesisConfig) *stakingState {
	return &stakingState{
		genesis: genesis,
		atStake: make(map[uint32][]*stakeSnapshot),
	}
}

// clone copies the live candidate state. Snapshots are never modified
// once taken and are shared.
func (s *stakingState) clone() *stakingState {
	cp := &stakingState{
		genesis:    s.genesis,
		round:      s.round,
		candidates: make([]*candidateState, 0, len(s.candidates)),
		atStake:    make(map[uint32][]*stakeSnapshot, len(s.atStake)),
		payouts:    append([]*stakeSnapshot(nil), s.payouts...),
	}
	for _, c := range s.candidates {
		cc := &candidateState{
			address:     c.address,
			bond:        c.bond,
			delegations: make([]*delegationState, 0, len(c.delegations)),
		}
		for _, d := range c.delegations {
			dc := *d
			cc.delegations = append(cc.delegations, &dc)
		}
		cp.candidates = append(cp.candidates, cc)
	}
	for round, snaps := range s.atStake {
		cp.atStake[round] = snaps
	}
	return cp
}

func (s *stakingState) addCandidate(addr common.Address, bond sdkmath.Int) {
	s.candidates = append(s.candidates, &candidateState{address: addr, bond: bond})
}

func (s *stakingState) candidate(addr common.Address) *candidateState {
	for _, c := range s.candidates {
		if c.address == addr {
			return c
		}
	}
	return nil
}

func (s *stakingState) delegation(candidate, delegator common.Address) *delegationState {
	c := s.candidate(candidate)
	if c == nil {
		return nil
	}
	for _, d := range c.delegations {
		if d.delegator == delegator {
			return d
		}
	}
	return nil
}

func (s *stakingState) delegationCount(delegator common.Address) uint32 {
	var n uint32
	for _, c := range s.candidates {
		for _, d := range c.delegations {
			if d.delegator == delegator {
				n++
			}
		}
	}
	return n
}

// startRound moves to round index starting at block first and freezes the
// stake every candidate will be rewarded for in that round
func (s *stakingState) startRound(index uint32, first uint64, length uint32) {
	s.round = types.RoundInfo{
		Current: index,
		First:   first,
		Length:  length,
	}

	snapshots := make([]*stakeSnapshot, 0, len(s.candidates))
	for _, c := range s.candidates {
		snap := &stakeSnapshot{
			candidate:   c.address,
			bond:        c.bond,
			total:       c.total(),
			delegations: make([]delegationState, 0, len(c.delegations)),
		}
		for _, d := range c.delegations {
			snap.delegations = append(snap.delegations, *d)
		}
		snapshots = append(snapshots, snap)
	}
	s.atStake[index] = snapshots
}

// onInitialize either starts a new round or pays one collator of the
// round being paid out
func (c *Chain) onInitialize(number uint64, rec *eventRecorder) {
	s := c.staking
	if number < s.round.NextRoundStart() {
		c.payOneCollator(rec)
		return
	}

	next := s.round.Current + 1
	s.startRound(next, number, s.round.Length)

	totalStake := sdkmath.ZeroInt()
	for _, snap := range s.atStake[next] {
		totalStake = totalStake.Add(snap.total)
	}
	rec.emit(types.NewRoundEvent{
		StartingBlock:           number,
		Round:                   next,
		SelectedCollatorsNumber: uint32(len(s.atStake[next])),
		TotalBalance:            totalStake,
	})

	if next > c.genesis.RewardPaymentDelay {
		paid := next - c.genesis.RewardPaymentDelay
		s.payouts = append(s.payouts, s.atStake[paid]...)
		delete(s.atStake, paid)
	}

	c.logger.Debug("new round",
		zap.Uint32("round", next),
		zap.Uint64("first_block", number),
		zap.Int("pending_payouts", len(s.payouts)),
	)
}

func (c *Chain) payOneCollator(rec *eventRecorder) {
	s := c.staking
	if len(s.payouts) == 0 {
		return
	}
	snap := s.payouts[0]
	s.payouts = s.payouts[1:]

	reward := c.genesis.RoundReward
	if reward.IsZero() || !snap.total.IsPositive() {
		return
	}

	commission := c.genesis.CollatorCommission.Of(reward)
	shared := reward.Sub(commission)

	collatorReward := commission.Add(shared.Mul(snap.bond).Quo(snap.total))
	c.credit(snap.candidate, collatorReward)
	rec.emit(types.RewardedEvent{Account: snap.candidate, Amount: collatorReward})

	for _, d := range snap.delegations {
		amt := shared.Mul(d.amount).Quo(snap.total)
		if amt.IsZero() {
			continue
		}
		c.credit(d.delegator, amt)
		rec.emit(types.RewardedEvent{Account: d.delegator, Amount: amt})

		compound := compoundAmount(amt, d.autoCompound)
		if compound.IsZero() {
			continue
		}
		// the delegation may have been removed since the snapshot
		live := s.delegation(snap.candidate, d.delegator)
		if live == nil {
			continue
		}
		c.debit(d.delegator, compound)
		live.amount = live.amount.Add(compound)
		rec.emit(types.CompoundedEvent{
			Candidate: snap.candidate,
			Delegator: d.delegator,
			Amount:    compound,
		})
	}
}

// compoundAmount rounds p% of the reward up
func compoundAmount(reward sdkmath.Int, p types.Percent) sdkmath.Int {
	return sdkmath.LegacyNewDecFromInt(reward).
		MulInt64(int64(p)).
		QuoInt64(100).
		Ceil().
		TruncateInt()
}
