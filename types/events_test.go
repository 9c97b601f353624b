package types_test

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/parastake/compound-checker/testutil"
	"github.com/parastake/compound-checker/types"
)

func TestDecodeEventByKind(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	delegator := testutil.GenRandomAddress(r)
	candidate := testutil.GenRandomAddress(r)

	raw := testutil.NewRawEvent(t, types.ApplyExtrinsicPhase(2), types.CompoundedEvent{
		Candidate: candidate,
		Delegator: delegator,
		Amount:    sdkmath.NewInt(42),
	})
	require.Equal(t, types.PalletParachainStaking, raw.Section)
	require.Equal(t, "Compounded", raw.Method)
	require.True(t, raw.Phase.IsApplyExtrinsic(2))
	require.False(t, raw.Phase.IsApplyExtrinsic(1))

	ev, err := types.DecodeEvent(raw)
	require.NoError(t, err)
	compounded, ok := ev.(types.CompoundedEvent)
	require.True(t, ok)
	require.Equal(t, delegator, compounded.Delegator)
	require.Equal(t, candidate, compounded.Candidate)
	require.True(t, compounded.Amount.Equal(sdkmath.NewInt(42)))
}

func TestDecodeRewardedFromNodeJSON(t *testing.T) {
	bz := []byte(`{
		"phase": {},
		"section": "parachainStaking",
		"method": "Rewarded",
		"data": {"account": "0x3cd0a705a2dc65e5b1e1205896baa2be8a07c6e0", "rewards": "1000000000000000000001"}
	}`)
	var raw types.RawEvent
	require.NoError(t, json.Unmarshal(bz, &raw))
	require.Nil(t, raw.Phase.ApplyExtrinsic)

	ev, err := types.DecodeEvent(&raw)
	require.NoError(t, err)
	rewarded := ev.(types.RewardedEvent)
	require.Equal(t, common.HexToAddress("0x3cd0a705a2dc65e5b1e1205896baa2be8a07c6e0"), rewarded.Account)
	require.Equal(t, "1000000000000000000001", rewarded.Amount.String())
}

func TestDecodeUnknownAndMalformedEvents(t *testing.T) {
	r := rand.New(rand.NewSource(2))

	unknown := testutil.GenUnknownRawEvent(r)
	ev, err := types.DecodeEvent(unknown)
	require.NoError(t, err)
	require.Equal(t, types.EventKind("balances.Transfer"), ev.Kind())
	_, ok := ev.(types.UnknownEvent)
	require.True(t, ok)

	malformed := &types.RawEvent{
		Section: types.PalletParachainStaking,
		Method:  "Rewarded",
		Data:    []byte(`{"rewards": "not a number"}`),
	}
	_, err = types.DecodeEvent(malformed)
	require.True(t, errors.Is(err, types.ErrEventDecode))

	empty := &types.RawEvent{Section: types.PalletParachainStaking, Method: "Compounded"}
	_, err = types.DecodeEvent(empty)
	require.True(t, errors.Is(err, types.ErrEventDecode))

	badAmounts := []struct {
		name   string
		method string
		data   string
	}{
		{"rewarded without rewards", "Rewarded", `{"account": "0x0000000000000000000000000000000000000001"}`},
		{"negative rewards", "Rewarded", `{"account": "0x0000000000000000000000000000000000000001", "rewards": "-10"}`},
		{"compounded without amount", "Compounded", `{"candidate": "0x0000000000000000000000000000000000000001", "delegator": "0x0000000000000000000000000000000000000002"}`},
		{"negative compounded amount", "Compounded", `{"candidate": "0x0000000000000000000000000000000000000001", "delegator": "0x0000000000000000000000000000000000000002", "amount": "-1"}`},
		{"new round without balance", "NewRound", `{"startingBlock": 10, "round": 2, "selectedCollatorsNumber": 1}`},
	}
	for _, tc := range badAmounts {
		raw := &types.RawEvent{
			Section: types.PalletParachainStaking,
			Method:  tc.method,
			Data:    []byte(tc.data),
		}
		_, err = types.DecodeEvent(raw)
		require.True(t, errors.Is(err, types.ErrEventDecode), tc.name)
	}
}

func TestSudidEventWithoutResult(t *testing.T) {
	raw := testutil.NewRawEvent(t, types.ApplyExtrinsicPhase(0), types.SudidEvent{})
	require.JSONEq(t, `{}`, string(raw.Data))

	ev, err := types.DecodeEvent(raw)
	require.NoError(t, err)
	require.Empty(t, ev.(types.SudidEvent).SudoResult)
}
