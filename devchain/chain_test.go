package devchain_test

import (
	"errors"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parastake/compound-checker/codec"
	"github.com/parastake/compound-checker/devchain"
	"github.com/parastake/compound-checker/harness"
	"github.com/parastake/compound-checker/keyring"
	"github.com/parastake/compound-checker/types"
)

type testChain struct {
	t     *testing.T
	chain *devchain.Chain
	kc    *keyring.ChainKeyringController
}

func newTestChain(t *testing.T) *testChain {
	kc, err := keyring.CreateDevKeyring()
	require.NoError(t, err)
	alith, err := kc.Address("alith")
	require.NoError(t, err)

	var endowed []common.Address
	for _, info := range kc.List() {
		endowed = append(endowed, info.Address)
	}

	chain, err := devchain.NewChain(devchain.DefaultGenesisConfig(alith, alith, endowed...), zap.NewNop())
	require.NoError(t, err)

	return &testChain{t: t, chain: chain, kc: kc}
}

func (tc *testChain) addr(name string) common.Address {
	addr, err := tc.kc.Address(name)
	require.NoError(tc.t, err)
	return addr
}

func (tc *testChain) submit(name string, call types.Call) common.Hash {
	ext, err := tc.kc.Sign(name, call, tc.chain.AccountNextIndex(tc.addr(name)))
	require.NoError(tc.t, err)
	bz, err := codec.EncodeExtrinsic(ext)
	require.NoError(tc.t, err)
	hash, err := tc.chain.SubmitExtrinsic(bz)
	require.NoError(tc.t, err)
	return hash
}

func (tc *testChain) seal() (*types.SealedBlock, []types.ChainEvent) {
	sealed, err := tc.chain.Seal(true, nil)
	require.NoError(tc.t, err)
	raws, ok := tc.chain.Events(sealed.Hash)
	require.True(tc.t, ok)

	events := make([]types.ChainEvent, 0, len(raws))
	for _, raw := range raws {
		ev, err := types.DecodeEvent(raw)
		require.NoError(tc.t, err)
		events = append(events, ev)
	}
	return sealed, events
}

func (tc *testChain) setBlocksPerRoundCall(n uint32) types.Call {
	inner, err := types.NewSetBlocksPerRoundCall(n)
	require.NoError(tc.t, err)
	call, err := types.NewSudoCall(inner)
	require.NoError(tc.t, err)
	return call
}

func (tc *testChain) delegateCall(candidate common.Address, amount sdkmath.Int, p types.Percent) types.Call {
	call, err := types.NewDelegateWithAutoCompoundCall(candidate, amount, p, 0, 0, 0)
	require.NoError(tc.t, err)
	return call
}

func dispatchErrors(events []types.ChainEvent) []string {
	var errs []string
	for _, ev := range events {
		if failed, ok := ev.(types.ExtrinsicFailedEvent); ok {
			errs = append(errs, failed.DispatchError)
		}
	}
	return errs
}

func TestSubmitChecksNonceAndSignature(t *testing.T) {
	tc := newTestChain(t)
	call := tc.setBlocksPerRoundCall(10)

	stale, err := tc.kc.Sign("alith", call, 0)
	require.NoError(t, err)
	future, err := tc.kc.Sign("alith", call, 5)
	require.NoError(t, err)

	tc.submit("alith", call)
	require.Equal(t, uint64(1), tc.chain.AccountNextIndex(tc.addr("alith")))

	bz, err := codec.EncodeExtrinsic(stale)
	require.NoError(t, err)
	_, err = tc.chain.SubmitExtrinsic(bz)
	require.True(t, errors.Is(err, devchain.ErrStaleNonce) || errors.Is(err, devchain.ErrAlreadyImported))

	bz, err = codec.EncodeExtrinsic(future)
	require.NoError(t, err)
	_, err = tc.chain.SubmitExtrinsic(bz)
	require.True(t, errors.Is(err, devchain.ErrFutureNonce))

	forged, err := tc.kc.Sign("ethan", call, 0)
	require.NoError(t, err)
	forged.Signer = tc.addr("baltathar")
	bz, err = codec.EncodeExtrinsic(forged)
	require.NoError(t, err)
	_, err = tc.chain.SubmitExtrinsic(bz)
	require.True(t, errors.Is(err, devchain.ErrBadSignature))
}

func TestSealOptions(t *testing.T) {
	tc := newTestChain(t)

	_, err := tc.chain.Seal(false, nil)
	require.True(t, errors.Is(err, devchain.ErrNoPendingExtrinsics))

	wrong := common.HexToHash("0x01")
	_, err = tc.chain.Seal(true, &wrong)
	require.True(t, errors.Is(err, devchain.ErrUnknownParent))

	genesis := tc.chain.BestHeader()
	sealed, err := tc.chain.Seal(true, &genesis.Hash)
	require.NoError(t, err)
	require.Equal(t, uint64(1), sealed.Number)

	block, ok := tc.chain.Block(sealed.Hash)
	require.True(t, ok)
	require.Equal(t, genesis.Hash, block.Header.ParentHash)
	hash, ok := tc.chain.BlockHash(1)
	require.True(t, ok)
	require.Equal(t, sealed.Hash, hash)
	_, ok = tc.chain.BlockHash(2)
	require.False(t, ok)
}

func TestSetBlocksPerRoundRequiresSudo(t *testing.T) {
	tc := newTestChain(t)

	direct, err := types.NewSetBlocksPerRoundCall(10)
	require.NoError(t, err)
	tc.submit("alith", direct)
	tc.submit("ethan", tc.setBlocksPerRoundCall(10))
	_, events := tc.seal()
	require.Equal(t, []string{"BadOrigin", "RequireSudo"}, dispatchErrors(events))
	require.Equal(t, uint32(100), tc.chain.Round().Length)

	tc.submit("alith", tc.setBlocksPerRoundCall(10))
	_, events = tc.seal()
	require.Empty(t, dispatchErrors(events))
	require.Equal(t, uint32(10), tc.chain.Round().Length)

	// the wrapped call fails but the sudo extrinsic does not
	tc.submit("alith", tc.setBlocksPerRoundCall(10))
	_, events = tc.seal()
	require.Empty(t, dispatchErrors(events))
	var sudid *types.SudidEvent
	for _, ev := range events {
		if e, ok := ev.(types.SudidEvent); ok {
			sudid = &e
		}
	}
	require.NotNil(t, sudid)
	require.Equal(t, "NoWritingSameValue", sudid.SudoResult)
}

func TestDelegationChecks(t *testing.T) {
	tc := newTestChain(t)
	alith := tc.addr("alith")
	minDel := tc.chain.Params().MinDelegation

	tc.submit("ethan", tc.delegateCall(alith, minDel.SubRaw(1), 50))
	tc.submit("faith", tc.delegateCall(tc.addr("dorothy"), minDel, 50))
	tc.submit("alith", tc.delegateCall(alith, minDel, 50))
	tc.submit("dorothy", tc.delegateCall(alith, minDel, 50))
	tc.submit("dorothy", tc.delegateCall(alith, minDel, 50))
	_, events := tc.seal()
	require.Equal(t, []string{
		"DelegationBelowMin",
		"CandidateDNE",
		"CandidateExists",
		"AlreadyDelegatedCandidate",
	}, dispatchErrors(events))

	require.Equal(t, types.Percent(50), tc.chain.AutoCompound(alith, tc.addr("dorothy")))
	require.Equal(t, types.Percent(0), tc.chain.AutoCompound(alith, tc.addr("ethan")))

	// one delegation exists now, zero count hints are too low
	tc.submit("ethan", tc.delegateCall(alith, minDel, 50))
	_, events = tc.seal()
	require.Equal(t, []string{"TooLowCandidateDelegationCountToDelegate"}, dispatchErrors(events))
}

func TestRewardIsCompounded(t *testing.T) {
	tc := newTestChain(t)
	alith, ethan := tc.addr("alith"), tc.addr("ethan")
	params := tc.chain.Params()
	p := types.Percent(50)

	tc.submit("alith", tc.setBlocksPerRoundCall(10))
	tc.submit("ethan", tc.delegateCall(alith, params.MinDelegation, p))
	_, events := tc.seal()
	require.Empty(t, dispatchErrors(events))
	require.Equal(t, uint32(10), tc.chain.Round().Length)

	start := tc.chain.Round().Current
	for tc.chain.Round().Current < start+params.RewardPaymentDelay+1 {
		tc.seal()
	}
	before, ok := tc.chain.Delegation(alith, ethan)
	require.True(t, ok)

	sealed, _ := tc.seal()
	raws, ok := tc.chain.Events(sealed.Hash)
	require.True(t, ok)
	payout, err := harness.PartitionEvents(sealed.Hash, raws)
	require.NoError(t, err)
	require.Len(t, payout.Rewarded, 2)
	require.Len(t, payout.Compounded, 1)

	check, err := harness.VerifyCompounded(payout, ethan, p)
	require.NoError(t, err)
	require.True(t, check.Reward.IsPositive())
	require.Equal(t, alith, check.Candidate)

	after, ok := tc.chain.Delegation(alith, ethan)
	require.True(t, ok)
	require.True(t, after.Amount.Equal(before.Amount.Add(check.Compounded)))
}

func TestNoCompoundWithoutAutoCompound(t *testing.T) {
	tc := newTestChain(t)
	alith, ethan := tc.addr("alith"), tc.addr("ethan")
	params := tc.chain.Params()

	tc.submit("alith", tc.setBlocksPerRoundCall(5))
	tc.submit("ethan", tc.delegateCall(alith, params.MinDelegation, 0))
	tc.seal()

	start := tc.chain.Round().Current
	for tc.chain.Round().Current < start+params.RewardPaymentDelay+1 {
		tc.seal()
	}
	balance := tc.chain.Balance(ethan)
	sealed, _ := tc.seal()

	raws, _ := tc.chain.Events(sealed.Hash)
	payout, err := harness.PartitionEvents(sealed.Hash, raws)
	require.NoError(t, err)
	require.Empty(t, payout.Compounded)

	check, err := harness.VerifyCompounded(payout, ethan, 0)
	require.NoError(t, err)
	require.True(t, tc.chain.Balance(ethan).Equal(balance.Add(check.Reward)))
}

func TestGenesisValidation(t *testing.T) {
	g := devchain.DefaultGenesisConfig(common.HexToAddress("0x01"), common.HexToAddress("0x02"))
	require.NoError(t, g.Validate())

	g.BlocksPerRound = 1
	_, err := devchain.NewChain(g, zap.NewNop())
	require.Error(t, err)

	g = devchain.DefaultGenesisConfig(common.HexToAddress("0x01"), common.HexToAddress("0x02"))
	g.Candidates = nil
	require.Error(t, g.Validate())
}
