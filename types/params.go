package types

import (
	sdkmath "cosmossdk.io/math"
)

type StakingParams struct {
	// Number of rounds between reward accrual and payment
	RewardPaymentDelay uint32 `json:"rewardPaymentDelay"`

	// Minimum stake a single delegation must bond
	MinDelegation sdkmath.Int `json:"minDelegation"`

	// Lower bound accepted by setBlocksPerRound
	MinBlocksPerRound uint32 `json:"minBlocksPerRound"`

	// Maximum number of delegations a candidate can hold
	MaxDelegationsPerCandidate uint32 `json:"maxDelegationsPerCandidate"`
}
