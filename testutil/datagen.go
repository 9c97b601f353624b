package testutil

import (
	"crypto/ecdsa"
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/parastake/compound-checker/types"
)

func AddRandomSeedsToFuzzer(f *testing.F, num uint) {
	// Seed based on the current time
	r := rand.New(rand.NewSource(time.Now().Unix()))
	var idx uint
	for idx = 0; idx < num; idx++ {
		f.Add(r.Int63())
	}
}

func GenRandomByteArray(r *rand.Rand, length uint64) []byte {
	newHeaderBytes := make([]byte, length)
	r.Read(newHeaderBytes)
	return newHeaderBytes
}

func GenRandomAddress(r *rand.Rand) common.Address {
	return common.BytesToAddress(GenRandomByteArray(r, common.AddressLength))
}

func GenRandomHash(r *rand.Rand) common.Hash {
	return common.BytesToHash(GenRandomByteArray(r, common.HashLength))
}

// GenRandomAmount returns an amount below 10^24, the order of magnitude of
// round rewards with 18 decimals
func GenRandomAmount(r *rand.Rand) sdkmath.Int {
	hi := sdkmath.NewInt(r.Int63n(1_000_000))
	lo := sdkmath.NewInt(r.Int63n(1_000_000_000_000_000_000))
	return hi.Mul(sdkmath.NewIntWithDecimal(1, 18)).Add(lo)
}

func GenRandomPercent(r *rand.Rand) types.Percent {
	return types.Percent(r.Intn(int(types.MaxPercent) + 1))
}

func GenRandomPrivateKey(t *testing.T) *ecdsa.PrivateKey {
	sk, err := crypto.GenerateKey()
	require.NoError(t, err)
	return sk
}

func GenRandomRoundInfo(r *rand.Rand) *types.RoundInfo {
	length := uint32(r.Intn(100) + 1)
	current := uint32(r.Intn(1000) + 1)
	return &types.RoundInfo{
		Current: current,
		First:   uint64(current) * uint64(length),
		Length:  length,
	}
}

// NewRawEvent encodes ev into the form returned by the node
func NewRawEvent(t *testing.T, phase types.Phase, ev types.ChainEvent) *types.RawEvent {
	raw, err := types.EncodeEvent(phase, ev)
	require.NoError(t, err)
	return raw
}

// GenRewardAndCompound builds a Rewarded event of delegator and, unless
// the compounded part is zero, the matching Compounded event
func GenRewardAndCompound(t *testing.T, r *rand.Rand, candidate, delegator common.Address, p types.Percent) []*types.RawEvent {
	reward := GenRandomAmount(r)
	events := []*types.RawEvent{
		NewRawEvent(t, types.InitializationPhase(), types.RewardedEvent{Account: delegator, Amount: reward}),
	}
	if compound := p.OfCeil(reward); !compound.IsZero() {
		events = append(events, NewRawEvent(t, types.InitializationPhase(), types.CompoundedEvent{
			Candidate: candidate,
			Delegator: delegator,
			Amount:    compound,
		}))
	}
	return events
}

func GenUnknownRawEvent(r *rand.Rand) *types.RawEvent {
	data, _ := json.Marshal(map[string]string{"who": GenRandomAddress(r).Hex()})
	return &types.RawEvent{
		Section: "balances",
		Method:  "Transfer",
		Data:    data,
	}
}
