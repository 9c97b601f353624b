package harness

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/parastake/compound-checker/types"
)

// RewardedAndCompounded holds the staking payout events of one block in
// emission order
type RewardedAndCompounded struct {
	BlockHash  common.Hash
	Rewarded   []types.RewardedEvent
	Compounded []types.CompoundedEvent
}

// GetRewardedAndCompoundedEvents reads the events of exactly one block and
// keeps the Rewarded and Compounded ones
func (h *Harness) GetRewardedAndCompoundedEvents(blockHash common.Hash) (*RewardedAndCompounded, error) {
	raws, err := h.cc.QueryBlockEvents(blockHash)
	if err != nil {
		return nil, fmt.Errorf("failed to get events of block %s: %w", blockHash.Hex(), err)
	}

	return PartitionEvents(blockHash, raws)
}

// PartitionEvents splits raw events by kind. Other kinds are ignored and
// nothing is deduplicated.
func PartitionEvents(blockHash common.Hash, raws []*types.RawEvent) (*RewardedAndCompounded, error) {
	res := &RewardedAndCompounded{
		BlockHash:  blockHash,
		Rewarded:   []types.RewardedEvent{},
		Compounded: []types.CompoundedEvent{},
	}

	for _, raw := range raws {
		kind := raw.Kind()
		if kind != types.EventRewarded && kind != types.EventCompounded {
			continue
		}

		ev, err := types.DecodeEvent(raw)
		if err != nil {
			return nil, err
		}
		switch e := ev.(type) {
		case types.RewardedEvent:
			res.Rewarded = append(res.Rewarded, e)
		case types.CompoundedEvent:
			res.Compounded = append(res.Compounded, e)
		}
	}

	return res, nil
}

// FindRewarded returns the first Rewarded event paid to account
func FindRewarded(events []types.RewardedEvent, account common.Address) (types.RewardedEvent, bool) {
	for _, ev := range events {
		if ev.Account == account {
			return ev, true
		}
	}
	return types.RewardedEvent{}, false
}

// FindCompounded returns the first Compounded event of delegator
func FindCompounded(events []types.CompoundedEvent, delegator common.Address) (types.CompoundedEvent, bool) {
	for _, ev := range events {
		if ev.Delegator == delegator {
			return ev, true
		}
	}
	return types.CompoundedEvent{}, false
}

func filterRewarded(events []types.RewardedEvent, account common.Address) []types.RewardedEvent {
	var res []types.RewardedEvent
	for _, ev := range events {
		if ev.Account == account {
			res = append(res, ev)
		}
	}
	return res
}

func filterCompounded(events []types.CompoundedEvent, delegator common.Address) []types.CompoundedEvent {
	var res []types.CompoundedEvent
	for _, ev := range events {
		if ev.Delegator == delegator {
			res = append(res, ev)
		}
	}
	return res
}
