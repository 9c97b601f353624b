package harness_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parastake/compound-checker/clientcontroller"
	"github.com/parastake/compound-checker/harness"
	"github.com/parastake/compound-checker/testutil"
	"github.com/parastake/compound-checker/testutil/mocks"
	"github.com/parastake/compound-checker/types"
)

// roundChain mimics the round counter of a chain with fixed length rounds
type roundChain struct {
	number uint64
	length uint32
	sealed int
}

func (rc *roundChain) round() *types.RoundInfo {
	current := uint32(rc.number/uint64(rc.length)) + 1
	return &types.RoundInfo{
		Current: current,
		First:   uint64(current-1) * uint64(rc.length),
		Length:  rc.length,
	}
}

func (rc *roundChain) expect(mockCC *mocks.MockClientController) {
	mockCC.EXPECT().QueryCurrentRound().DoAndReturn(func() (*types.RoundInfo, error) {
		return rc.round(), nil
	}).AnyTimes()
	mockCC.EXPECT().SealBlock().DoAndReturn(func() (*types.SealedBlock, error) {
		rc.number++
		rc.sealed++
		return &types.SealedBlock{Number: rc.number}, nil
	}).AnyTimes()
}

func TestJumpRounds(t *testing.T) {
	r := rand.New(rand.NewSource(10))

	for i := 0; i < 20; i++ {
		length := uint32(r.Intn(20) + 1)
		rc := &roundChain{number: uint64(r.Intn(1000)), length: length}
		mockCC := testutil.PrepareMockedClientController(t, nil)
		rc.expect(mockCC)
		h := harness.New(mockCC, zap.NewNop())

		start := rc.round()
		n := r.Intn(5) + 1
		round, err := h.JumpRounds(n)
		require.NoError(t, err)
		require.Equal(t, start.Current+uint32(n), round.Current)
		// lands on the first block of the target round
		require.Equal(t, round.First, rc.number)
		require.Equal(t, rc.round().Current, round.Current)
		require.LessOrEqual(t, rc.sealed, n*int(length))
	}
}

func TestJumpZeroRoundsSealsNothing(t *testing.T) {
	ctl := gomock.NewController(t)
	mockCC := mocks.NewMockClientController(ctl)
	round := &types.RoundInfo{Current: 4, First: 30, Length: 10}
	mockCC.EXPECT().QueryCurrentRound().Return(round, nil).Times(1)
	mockCC.EXPECT().SealBlock().Times(0)

	h := harness.New(mockCC, zap.NewNop())
	got, err := h.JumpRounds(0)
	require.NoError(t, err)
	require.Equal(t, round, got)
}

func TestJumpNegativeRoundsIsRejected(t *testing.T) {
	ctl := gomock.NewController(t)
	mockCC := mocks.NewMockClientController(ctl)

	h := harness.New(mockCC, zap.NewNop())
	_, err := h.JumpRounds(-1)
	require.True(t, errors.Is(err, types.ErrInvalidRoundCount))
}

func TestJumpRoundsStopsOnSealError(t *testing.T) {
	ctl := gomock.NewController(t)
	mockCC := mocks.NewMockClientController(ctl)
	mockCC.EXPECT().QueryCurrentRound().Return(&types.RoundInfo{Current: 1, Length: 10}, nil).Times(2)
	gomock.InOrder(
		mockCC.EXPECT().SealBlock().Return(&types.SealedBlock{Number: 1}, nil),
		mockCC.EXPECT().SealBlock().Return(nil, context.DeadlineExceeded),
	)

	h := harness.New(mockCC, zap.NewNop())
	_, err := h.JumpRounds(2)
	require.True(t, errors.Is(err, types.ErrBlockProduction))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.True(t, clientcontroller.IsTransientError(err))
}

func TestJumpBlocks(t *testing.T) {
	rc := &roundChain{length: 5}
	mockCC := testutil.PrepareMockedClientController(t, nil)
	rc.expect(mockCC)
	h := harness.New(mockCC, zap.NewNop())

	last, err := h.JumpBlocks(0)
	require.NoError(t, err)
	require.Nil(t, last)
	require.Zero(t, rc.sealed)

	last, err = h.JumpBlocks(7)
	require.NoError(t, err)
	require.Equal(t, uint64(7), last.Number)
	require.Equal(t, 7, rc.sealed)
}

func TestCreateBlock(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	sealed := &types.SealedBlock{Hash: testutil.GenRandomHash(r), Number: 9}
	okHash := testutil.GenRandomHash(r)
	failHash := testutil.GenRandomHash(r)
	okExt := &types.SignedExtrinsic{Call: types.Call{Pallet: "sudo", Method: "sudo"}}
	failExt := &types.SignedExtrinsic{Call: types.Call{Pallet: "parachainStaking", Method: "delegateWithAutoCompound"}}

	events := []*types.RawEvent{
		testutil.NewRawEvent(t, types.ApplyExtrinsicPhase(0), types.SudidEvent{}),
		testutil.NewRawEvent(t, types.ApplyExtrinsicPhase(0), types.ExtrinsicSuccessEvent{}),
		testutil.NewRawEvent(t, types.ApplyExtrinsicPhase(1), types.ExtrinsicFailedEvent{DispatchError: "DelegationBelowMin"}),
	}

	newMock := func() *mocks.MockClientController {
		ctl := gomock.NewController(t)
		mockCC := mocks.NewMockClientController(ctl)
		gomock.InOrder(
			mockCC.EXPECT().SubmitExtrinsic(okExt).Return(okHash, nil),
			mockCC.EXPECT().SubmitExtrinsic(failExt).Return(failHash, nil),
		)
		mockCC.EXPECT().SealBlock().Return(sealed, nil)
		mockCC.EXPECT().QueryBlockEvents(sealed.Hash).Return(events, nil)
		mockCC.EXPECT().QueryBlock(sealed.Hash).Return(&types.Block{
			Header:     types.Header{Number: 9, Hash: sealed.Hash},
			Extrinsics: []common.Hash{okHash, failHash},
		}, nil)
		return mockCC
	}

	t.Run("failures abort", func(t *testing.T) {
		h := harness.New(newMock(), zap.NewNop())
		_, err := h.CreateBlock(harness.BlockOptions{}, okExt, failExt)
		require.True(t, errors.Is(err, types.ErrExtrinsicFailed))
		require.Contains(t, err.Error(), "DelegationBelowMin")
	})

	t.Run("failures allowed", func(t *testing.T) {
		h := harness.New(newMock(), zap.NewNop())
		res, err := h.CreateBlock(harness.BlockOptions{AllowFailures: true}, okExt, failExt)
		require.NoError(t, err)
		require.Len(t, res.Results, 2)
		require.True(t, res.Results[0].Successful)
		require.Equal(t, uint32(1), res.Results[1].Index)
		require.True(t, res.Results[1].Included)
		require.False(t, res.Results[1].Successful)
		require.Equal(t, "DelegationBelowMin", res.Results[1].Error)
		require.Len(t, res.FailedResults(), 1)
	})
}

func TestCreateBlockSubmitFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	mockCC := mocks.NewMockClientController(ctl)
	mockCC.EXPECT().SubmitExtrinsic(gomock.Any()).Return(common.Hash{}, errors.New("stale nonce"))
	mockCC.EXPECT().SealBlock().Times(0)

	h := harness.New(mockCC, zap.NewNop())
	_, err := h.CreateBlock(harness.BlockOptions{AllowFailures: true}, &types.SignedExtrinsic{})
	require.True(t, errors.Is(err, types.ErrBlockProduction))
}

func TestCreateBlockKeepsClientError(t *testing.T) {
	errRejected := errors.New("block rejected")
	ctl := gomock.NewController(t)
	mockCC := mocks.NewMockClientController(ctl)
	mockCC.EXPECT().SealBlock().Return(nil, errRejected)

	h := harness.New(mockCC, zap.NewNop())
	_, err := h.CreateBlock(harness.BlockOptions{})
	require.ErrorIs(t, err, types.ErrBlockProduction)
	require.ErrorIs(t, err, errRejected)
	require.False(t, clientcontroller.IsTransientError(err))

	mockCC.EXPECT().SealBlock().Return(nil, context.DeadlineExceeded)
	_, err = h.JumpBlocks(3)
	require.ErrorIs(t, err, types.ErrBlockProduction)
	require.True(t, clientcontroller.IsTransientError(err))
}

func TestCreateEmptyBlock(t *testing.T) {
	ctl := gomock.NewController(t)
	mockCC := mocks.NewMockClientController(ctl)
	sealed := &types.SealedBlock{Number: 3}
	mockCC.EXPECT().SealBlock().Return(sealed, nil)
	mockCC.EXPECT().QueryBlockEvents(sealed.Hash).Return(nil, nil)

	h := harness.New(mockCC, zap.NewNop())
	res, err := h.CreateBlock(harness.BlockOptions{})
	require.NoError(t, err)
	require.Equal(t, *sealed, res.Block)
	require.Empty(t, res.Results)
}

func TestGetRewardedAndCompoundedEventsIsIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(12))
	blockHash := testutil.GenRandomHash(r)
	candidate := testutil.GenRandomAddress(r)

	var raws []*types.RawEvent
	raws = append(raws, testutil.NewRawEvent(t, types.InitializationPhase(), types.RewardedEvent{
		Account: candidate, Amount: sdkmath.NewInt(500),
	}))
	for i := 0; i < 5; i++ {
		raws = append(raws, testutil.GenRewardAndCompound(t, r, candidate, testutil.GenRandomAddress(r), 50)...)
		raws = append(raws, testutil.GenUnknownRawEvent(r))
	}

	ctl := gomock.NewController(t)
	mockCC := mocks.NewMockClientController(ctl)
	mockCC.EXPECT().QueryBlockEvents(blockHash).Return(raws, nil).Times(2)

	h := harness.New(mockCC, zap.NewNop())
	first, err := h.GetRewardedAndCompoundedEvents(blockHash)
	require.NoError(t, err)
	second, err := h.GetRewardedAndCompoundedEvents(blockHash)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Len(t, first.Rewarded, 6)
	require.Len(t, first.Compounded, 5)
	require.Equal(t, candidate, first.Rewarded[0].Account)
	for i, c := range first.Compounded {
		// emission order is kept
		require.Equal(t, first.Rewarded[i+1].Account, c.Delegator)
	}
}

func TestFindEvents(t *testing.T) {
	r := rand.New(rand.NewSource(13))
	a, b := testutil.GenRandomAddress(r), testutil.GenRandomAddress(r)
	rewarded := []types.RewardedEvent{
		{Account: a, Amount: sdkmath.NewInt(1)},
		{Account: a, Amount: sdkmath.NewInt(2)},
	}

	ev, ok := harness.FindRewarded(rewarded, a)
	require.True(t, ok)
	require.Equal(t, int64(1), ev.Amount.Int64())

	_, ok = harness.FindRewarded(rewarded, b)
	require.False(t, ok)
	_, ok = harness.FindCompounded(nil, b)
	require.False(t, ok)
}
