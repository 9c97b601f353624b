package devchain

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"

	"github.com/parastake/compound-checker/types"
)

// dispatch errors, named after the pallet errors they stand for
const (
	errBadOrigin                        = "BadOrigin"
	errRequireSudo                      = "RequireSudo"
	errCallNotFound                     = "CallNotFound"
	errInvalidParams                    = "InvalidParams"
	errCannotSetBelowMin                = "CannotSetBelowMin"
	errNoWritingSameValue               = "NoWritingSameValue"
	errCandidateDNE                     = "CandidateDNE"
	errCandidateExists                  = "CandidateExists"
	errDelegationBelowMin               = "DelegationBelowMin"
	errAlreadyDelegatedCandidate        = "AlreadyDelegatedCandidate"
	errCannotDelegateIfFull             = "CannotDelegateIfFull"
	errInsufficientBalance              = "InsufficientBalance"
	errTooLowCandidateDelegationCount   = "TooLowCandidateDelegationCountToDelegate"
	errTooLowCandidateAutoCompoundCount = "TooLowCandidateAutoCompoundingDelegationCountToDelegate"
	errTooLowDelegationCount            = "TooLowDelegationCountToDelegate"
)

// delegationEvent is emitted on a new delegation, it is not decoded by
// the checker
type delegationEvent struct {
	Delegator    common.Address `json:"delegator"`
	Candidate    common.Address `json:"candidate"`
	Amount       string         `json:"lockedAmount"`
	AutoCompound types.Percent  `json:"autoCompound"`
}

func (c *Chain) applyExtrinsic(ext *types.SignedExtrinsic, rec *eventRecorder) {
	signer := ext.Signer
	if dispatchErr := c.dispatch(&signer, ext.Call, rec); dispatchErr != "" {
		rec.emit(types.ExtrinsicFailedEvent{DispatchError: dispatchErr})
		return
	}
	rec.emit(types.ExtrinsicSuccessEvent{})
}

// dispatch runs the call and returns the name of the dispatch error, or an
// empty string on success. A nil origin is root.
func (c *Chain) dispatch(from *common.Address, call types.Call, rec *eventRecorder) string {
	switch call.Name() {
	case types.PalletSudo + "." + types.MethodSudo:
		return c.sudo(from, call, rec)
	case types.PalletParachainStaking + "." + types.MethodSetBlocksPerRound:
		return c.setBlocksPerRound(from, call)
	case types.PalletParachainStaking + "." + types.MethodDelegateWithAutoCompound:
		return c.delegateWithAutoCompound(from, call, rec)
	default:
		return errCallNotFound
	}
}

func (c *Chain) sudo(from *common.Address, call types.Call, rec *eventRecorder) string {
	if from == nil || *from != c.genesis.SudoKey {
		return errRequireSudo
	}
	var params types.SudoParams
	if err := call.DecodeParams(&params); err != nil {
		return errInvalidParams
	}

	// the inner result does not fail the extrinsic
	rec.emit(types.SudidEvent{SudoResult: c.dispatch(nil, params.Call, rec)})
	return ""
}

func (c *Chain) setBlocksPerRound(from *common.Address, call types.Call) string {
	if from != nil {
		return errBadOrigin
	}
	var params types.SetBlocksPerRoundParams
	if err := call.DecodeParams(&params); err != nil {
		return errInvalidParams
	}
	if params.New < c.genesis.MinBlocksPerRound {
		return errCannotSetBelowMin
	}
	if params.New == c.staking.round.Length {
		return errNoWritingSameValue
	}

	c.staking.round.Length = params.New
	return ""
}

func (c *Chain) delegateWithAutoCompound(from *common.Address, call types.Call, rec *eventRecorder) string {
	if from == nil {
		return errBadOrigin
	}
	delegator := *from

	var params types.DelegateWithAutoCompoundParams
	if err := call.DecodeParams(&params); err != nil {
		return errInvalidParams
	}
	if params.AutoCompound.Validate() != nil || params.Amount.IsNil() {
		return errInvalidParams
	}

	s := c.staking
	cand := s.candidate(params.Candidate)
	switch {
	case cand == nil:
		return errCandidateDNE
	case s.candidate(delegator) != nil:
		return errCandidateExists
	case params.Amount.LT(c.genesis.MinDelegation):
		return errDelegationBelowMin
	case s.delegation(params.Candidate, delegator) != nil:
		return errAlreadyDelegatedCandidate
	case params.CandidateDelegationCount < uint32(len(cand.delegations)):
		return errTooLowCandidateDelegationCount
	case params.CandidateAutoCompoundingDelegationCount < cand.autoCompoundingCount():
		return errTooLowCandidateAutoCompoundCount
	case params.DelegationCount < s.delegationCount(delegator):
		return errTooLowDelegationCount
	case uint32(len(cand.delegations)) >= c.genesis.MaxDelegationsPerCandidate:
		return errCannotDelegateIfFull
	case c.balanceOf(delegator).LT(params.Amount):
		return errInsufficientBalance
	}

	c.debit(delegator, params.Amount)
	cand.delegations = append(cand.delegations, &delegationState{
		delegator:    delegator,
		amount:       params.Amount,
		autoCompound: params.AutoCompound,
	})

	data, err := json.Marshal(&delegationEvent{
		Delegator:    delegator,
		Candidate:    params.Candidate,
		Amount:       params.Amount.String(),
		AutoCompound: params.AutoCompound,
	})
	if err == nil {
		rec.emit(types.UnknownEvent{Raw: &types.RawEvent{
			Section: types.PalletParachainStaking,
			Method:  "Delegation",
			Data:    data,
		}})
	}
	return ""
}
