package harness_test

import (
	"errors"
	"math/rand"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/parastake/compound-checker/harness"
	"github.com/parastake/compound-checker/testutil"
	"github.com/parastake/compound-checker/types"
)

func TestVerifyCompounded(t *testing.T) {
	r := rand.New(rand.NewSource(20))
	delegator := testutil.GenRandomAddress(r)
	candidate := testutil.GenRandomAddress(r)
	reward := sdkmath.NewInt(1001)

	rewarded := []types.RewardedEvent{{Account: delegator, Amount: reward}}
	compounded := func(amt int64) []types.CompoundedEvent {
		return []types.CompoundedEvent{{Candidate: candidate, Delegator: delegator, Amount: sdkmath.NewInt(amt)}}
	}

	tests := []struct {
		name        string
		events      *harness.RewardedAndCompounded
		p           types.Percent
		expectedErr error
	}{
		{
			name:   "half is rounded up",
			events: &harness.RewardedAndCompounded{Rewarded: rewarded, Compounded: compounded(501)},
			p:      50,
		},
		{
			name:        "not rewarded",
			events:      &harness.RewardedAndCompounded{Compounded: compounded(501)},
			p:           50,
			expectedErr: types.ErrNotRewarded,
		},
		{
			name: "rewarded twice",
			events: &harness.RewardedAndCompounded{
				Rewarded:   append(rewarded, types.RewardedEvent{Account: delegator, Amount: sdkmath.NewInt(7)}),
				Compounded: compounded(501),
			},
			p:           50,
			expectedErr: types.ErrDuplicateReward,
		},
		{
			name:        "not compounded",
			events:      &harness.RewardedAndCompounded{Rewarded: rewarded},
			p:           50,
			expectedErr: types.ErrNotCompounded,
		},
		{
			name:        "floor instead of ceil",
			events:      &harness.RewardedAndCompounded{Rewarded: rewarded, Compounded: compounded(500)},
			p:           50,
			expectedErr: types.ErrCompoundMismatch,
		},
		{
			name: "compounded twice",
			events: &harness.RewardedAndCompounded{
				Rewarded:   rewarded,
				Compounded: append(compounded(501), compounded(501)...),
			},
			p:           50,
			expectedErr: types.ErrCompoundMismatch,
		},
		{
			name:   "zero percent without compound",
			events: &harness.RewardedAndCompounded{Rewarded: rewarded},
			p:      0,
		},
		{
			name:        "zero percent with compound",
			events:      &harness.RewardedAndCompounded{Rewarded: rewarded, Compounded: compounded(1)},
			p:           0,
			expectedErr: types.ErrUnexpectedCompound,
		},
		{
			name:        "invalid percent",
			events:      &harness.RewardedAndCompounded{Rewarded: rewarded},
			p:           101,
			expectedErr: types.ErrInvalidPercent,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			check, err := harness.VerifyCompounded(tc.events, delegator, tc.p)
			if tc.expectedErr != nil {
				require.True(t, errors.Is(err, tc.expectedErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.True(t, check.Reward.Equal(reward))
			require.True(t, check.Compounded.Equal(check.Expected))
		})
	}
}

func FuzzVerifyCompounded(f *testing.F) {
	testutil.AddRandomSeedsToFuzzer(f, 10)

	f.Fuzz(func(t *testing.T, seed int64) {
		r := rand.New(rand.NewSource(seed))
		candidate := testutil.GenRandomAddress(r)
		delegator := testutil.GenRandomAddress(r)
		p := testutil.GenRandomPercent(r)

		raws := testutil.GenRewardAndCompound(t, r, candidate, delegator, p)
		events, err := harness.PartitionEvents(testutil.GenRandomHash(r), raws)
		require.NoError(t, err)

		check, err := harness.VerifyCompounded(events, delegator, p)
		require.NoError(t, err)
		require.True(t, check.Compounded.Equal(p.OfCeil(check.Reward)))
	})
}
