package types

import (
	errorsmod "cosmossdk.io/errors"
)

const ModuleName = "cchk"

var (
	ErrBlockProduction    = errorsmod.Register(ModuleName, 2, "block production failed")
	ErrExtrinsicFailed    = errorsmod.Register(ModuleName, 3, "extrinsic failed")
	ErrInvalidRoundCount  = errorsmod.Register(ModuleName, 4, "invalid number of rounds")
	ErrNotRewarded        = errorsmod.Register(ModuleName, 5, "delegator was not rewarded")
	ErrNotCompounded      = errorsmod.Register(ModuleName, 6, "delegator was not compounded")
	ErrCompoundMismatch   = errorsmod.Register(ModuleName, 7, "compounded amount does not match the auto-compound percentage of the reward")
	ErrUnexpectedCompound = errorsmod.Register(ModuleName, 8, "delegator without auto-compound was compounded")
	ErrInvalidPercent     = errorsmod.Register(ModuleName, 9, "invalid percentage")
	ErrEventDecode        = errorsmod.Register(ModuleName, 10, "failed to decode chain event")
	ErrDuplicateReward    = errorsmod.Register(ModuleName, 11, "delegator was rewarded more than once")
)
