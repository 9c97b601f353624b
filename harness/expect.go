package harness

import (
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/parastake/compound-checker/types"
)

// CompoundCheck is the outcome of a successful VerifyCompounded
type CompoundCheck struct {
	Delegator  common.Address
	Candidate  common.Address
	Percent    types.Percent
	Reward     sdkmath.Int
	Compounded sdkmath.Int
	Expected   sdkmath.Int
}

// VerifyCompounded checks that the reward of delegator in the block was
// compounded at percent p. Every expected event is checked for presence
// before any of its fields is read.
//
// A compound that rounds to zero is not emitted by the chain, so zero
// expected amounts are handled like p = 0.
func VerifyCompounded(events *RewardedAndCompounded, delegator common.Address, p types.Percent) (*CompoundCheck, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rewards := filterRewarded(events.Rewarded, delegator)
	if len(rewards) == 0 {
		return nil, errorsmod.Wrapf(types.ErrNotRewarded, "%s in block %s",
			delegator.Hex(), events.BlockHash.Hex())
	}
	if len(rewards) > 1 {
		return nil, errorsmod.Wrapf(types.ErrDuplicateReward, "%s was rewarded %d times in block %s",
			delegator.Hex(), len(rewards), events.BlockHash.Hex())
	}
	rewarded := rewards[0]

	check := &CompoundCheck{
		Delegator:  delegator,
		Percent:    p,
		Reward:     rewarded.Amount,
		Compounded: sdkmath.ZeroInt(),
		Expected:   p.OfCeil(rewarded.Amount),
	}

	compounded := filterCompounded(events.Compounded, delegator)
	if check.Expected.IsZero() {
		if len(compounded) != 0 {
			return nil, errorsmod.Wrapf(types.ErrUnexpectedCompound, "%s compounded %s at %s of %s",
				delegator.Hex(), compounded[0].Amount, p, rewarded.Amount)
		}
		return check, nil
	}

	if len(compounded) == 0 {
		return nil, errorsmod.Wrapf(types.ErrNotCompounded, "%s in block %s, expected %s",
			delegator.Hex(), events.BlockHash.Hex(), check.Expected)
	}
	if len(compounded) > 1 {
		return nil, errorsmod.Wrapf(types.ErrCompoundMismatch, "%s was compounded %d times in block %s",
			delegator.Hex(), len(compounded), events.BlockHash.Hex())
	}

	check.Candidate = compounded[0].Candidate
	check.Compounded = compounded[0].Amount
	if !check.Compounded.Equal(check.Expected) {
		return nil, errorsmod.Wrapf(types.ErrCompoundMismatch, "%s: got %s, expected %s (%s of %s)",
			delegator.Hex(), check.Compounded, check.Expected, p, rewarded.Amount)
	}

	return check, nil
}
