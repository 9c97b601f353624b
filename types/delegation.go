package types

import (
	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

type Delegation struct {
	// The account staking behind the candidate
	Delegator common.Address `json:"delegator"`
	// The collator candidate the stake is bonded to
	Candidate common.Address `json:"candidate"`
	// The bonded amount, in the smallest unit of the native token
	Amount sdkmath.Int `json:"amount"`
	// The share of every reward that is re-staked instead of paid out
	AutoCompound Percent `json:"autoCompound"`
}

// CompoundsRewards returns whether any portion of the rewards
// of this delegation is reinvested
func (d *Delegation) CompoundsRewards() bool {
	return !d.AutoCompound.IsZero()
}

// RoundInfo is the round counter as reported by the chain
type RoundInfo struct {
	// Index of the current round
	Current uint32 `json:"current"`
	// The block number the current round started at
	First uint64 `json:"first"`
	// Length of the current round in blocks
	Length uint32 `json:"length"`
}

// NextRoundStart returns the first block number of the next round
func (r *RoundInfo) NextRoundStart() uint64 {
	return r.First + uint64(r.Length)
}
