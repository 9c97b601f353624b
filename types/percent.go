package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

// Percent is an integer percentage in [0, 100]
type Percent uint8

const MaxPercent Percent = 100

func NewPercent(p uint64) (Percent, error) {
	if p > uint64(MaxPercent) {
		return 0, errorsmod.Wrapf(ErrInvalidPercent, "%d is larger than %d", p, MaxPercent)
	}
	return Percent(p), nil
}

func (p Percent) Validate() error {
	if p > MaxPercent {
		return errorsmod.Wrapf(ErrInvalidPercent, "%d is larger than %d", p, MaxPercent)
	}
	return nil
}

func (p Percent) IsZero() bool {
	return p == 0
}

// Of returns floor(p * amount / 100)
func (p Percent) Of(amount sdkmath.Int) sdkmath.Int {
	return amount.MulRaw(int64(p)).QuoRaw(100)
}

// OfCeil returns ceil(p * amount / 100). The rounding matches the
// mul_ceil used by the staking pallet when it splits a reward into the
// compounded part, so results can be compared for exact equality.
func (p Percent) OfCeil(amount sdkmath.Int) sdkmath.Int {
	num := amount.MulRaw(int64(p))
	q := num.QuoRaw(100)
	// Quo truncates toward zero, which is already the ceiling for negative values
	if num.IsPositive() && !num.ModRaw(100).IsZero() {
		q = q.AddRaw(1)
	}
	return q
}

func (p Percent) String() string {
	return fmt.Sprintf("%d%%", uint8(p))
}
