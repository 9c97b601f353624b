package types

import (
	"encoding/json"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

const (
	PalletParachainStaking = "parachainStaking"
	PalletSudo             = "sudo"
	PalletSystem           = "system"

	MethodSetBlocksPerRound        = "setBlocksPerRound"
	MethodDelegateWithAutoCompound = "delegateWithAutoCompound"
	MethodSudo                     = "sudo"
)

// Call is a pallet dispatchable together with its JSON encoded arguments
type Call struct {
	Pallet string          `json:"pallet"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

func (c *Call) Name() string {
	return c.Pallet + "." + c.Method
}

// DecodeParams unmarshals the call arguments into v
func (c *Call) DecodeParams(v interface{}) error {
	if err := json.Unmarshal(c.Params, v); err != nil {
		return fmt.Errorf("invalid params for %s: %w", c.Name(), err)
	}
	return nil
}

type SignedExtrinsic struct {
	Call      Call
	Signer    common.Address
	Nonce     uint64
	Signature []byte
}

type SetBlocksPerRoundParams struct {
	New uint32 `json:"new"`
}

type SudoParams struct {
	Call Call `json:"call"`
}

type DelegateWithAutoCompoundParams struct {
	Candidate    common.Address `json:"candidate"`
	Amount       sdkmath.Int    `json:"amount"`
	AutoCompound Percent        `json:"autoCompound"`
	// weight hints, they must not be lower than the on-chain counts
	CandidateDelegationCount                uint32 `json:"candidateDelegationCount"`
	CandidateAutoCompoundingDelegationCount uint32 `json:"candidateAutoCompoundingDelegationCount"`
	DelegationCount                         uint32 `json:"delegationCount"`
}

func NewCall(pallet, method string, params interface{}) (Call, error) {
	bz, err := json.Marshal(params)
	if err != nil {
		return Call{}, fmt.Errorf("failed to encode params of %s.%s: %w", pallet, method, err)
	}
	return Call{Pallet: pallet, Method: method, Params: bz}, nil
}

func NewSetBlocksPerRoundCall(blocks uint32) (Call, error) {
	return NewCall(PalletParachainStaking, MethodSetBlocksPerRound, &SetBlocksPerRoundParams{New: blocks})
}

func NewSudoCall(inner Call) (Call, error) {
	return NewCall(PalletSudo, MethodSudo, &SudoParams{Call: inner})
}

func NewDelegateWithAutoCompoundCall(
	candidate common.Address,
	amount sdkmath.Int,
	autoCompound Percent,
	candidateDelegationCount uint32,
	candidateAutoCompoundingDelegationCount uint32,
	delegationCount uint32,
) (Call, error) {
	if err := autoCompound.Validate(); err != nil {
		return Call{}, err
	}
	return NewCall(PalletParachainStaking, MethodDelegateWithAutoCompound, &DelegateWithAutoCompoundParams{
		Candidate:                               candidate,
		Amount:                                  amount,
		AutoCompound:                            autoCompound,
		CandidateDelegationCount:                candidateDelegationCount,
		CandidateAutoCompoundingDelegationCount: candidateAutoCompoundingDelegationCount,
		DelegationCount:                         delegationCount,
	})
}
