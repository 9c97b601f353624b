package types

import (
	"encoding/json"
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

// EventKind is the "<section>.<method>" tag of a chain event
type EventKind string

const (
	EventRewarded         EventKind = "parachainStaking.Rewarded"
	EventCompounded       EventKind = "parachainStaking.Compounded"
	EventNewRound         EventKind = "parachainStaking.NewRound"
	EventExtrinsicSuccess EventKind = "system.ExtrinsicSuccess"
	EventExtrinsicFailed  EventKind = "system.ExtrinsicFailed"
	EventSudid            EventKind = "sudo.Sudid"
)

// Phase tells which part of block execution emitted an event.
// ApplyExtrinsic is the index of the extrinsic in the block body and is
// nil for events emitted while initializing the block.
type Phase struct {
	ApplyExtrinsic *uint32 `json:"applyExtrinsic,omitempty"`
}

func InitializationPhase() Phase {
	return Phase{}
}

func ApplyExtrinsicPhase(idx uint32) Phase {
	return Phase{ApplyExtrinsic: &idx}
}

func (p Phase) IsApplyExtrinsic(idx uint32) bool {
	return p.ApplyExtrinsic != nil && *p.ApplyExtrinsic == idx
}

// RawEvent is an event as returned by the node, before decoding
type RawEvent struct {
	Phase   Phase           `json:"phase"`
	Section string          `json:"section"`
	Method  string          `json:"method"`
	Data    json.RawMessage `json:"data"`
}

func (e *RawEvent) Kind() EventKind {
	return EventKind(e.Section + "." + e.Method)
}

// ChainEvent is implemented by every decoded event variant
type ChainEvent interface {
	Kind() EventKind
	isChainEvent()
}

type RewardedEvent struct {
	Account common.Address `json:"account"`
	Amount  sdkmath.Int    `json:"rewards"`
}

type CompoundedEvent struct {
	Candidate common.Address `json:"candidate"`
	Delegator common.Address `json:"delegator"`
	Amount    sdkmath.Int    `json:"amount"`
}

type NewRoundEvent struct {
	StartingBlock           uint64      `json:"startingBlock"`
	Round                   uint32      `json:"round"`
	SelectedCollatorsNumber uint32      `json:"selectedCollatorsNumber"`
	TotalBalance            sdkmath.Int `json:"totalBalance"`
}

type ExtrinsicSuccessEvent struct{}

type ExtrinsicFailedEvent struct {
	DispatchError string `json:"dispatchError"`
}

// SudidEvent carries the result of the call dispatched by sudo. The
// wrapping extrinsic succeeds even when the inner call fails.
type SudidEvent struct {
	SudoResult string `json:"sudoResult,omitempty"`
}

// UnknownEvent keeps the raw form of events this package does not model
type UnknownEvent struct {
	Raw *RawEvent
}

func (RewardedEvent) Kind() EventKind         { return EventRewarded }
func (CompoundedEvent) Kind() EventKind       { return EventCompounded }
func (NewRoundEvent) Kind() EventKind         { return EventNewRound }
func (ExtrinsicSuccessEvent) Kind() EventKind { return EventExtrinsicSuccess }
func (ExtrinsicFailedEvent) Kind() EventKind  { return EventExtrinsicFailed }
func (SudidEvent) Kind() EventKind            { return EventSudid }
func (e UnknownEvent) Kind() EventKind        { return e.Raw.Kind() }

func (e RewardedEvent) Validate() error   { return validateAmount("rewards", e.Amount) }
func (e CompoundedEvent) Validate() error { return validateAmount("amount", e.Amount) }
func (e NewRoundEvent) Validate() error   { return validateAmount("totalBalance", e.TotalBalance) }

// validateAmount rejects missing and negative balances
func validateAmount(field string, amt sdkmath.Int) error {
	if amt.IsNil() {
		return fmt.Errorf("missing %s", field)
	}
	if amt.IsNegative() {
		return fmt.Errorf("negative %s %s", field, amt)
	}
	return nil
}

func (RewardedEvent) isChainEvent()         {}
func (CompoundedEvent) isChainEvent()       {}
func (NewRoundEvent) isChainEvent()         {}
func (ExtrinsicSuccessEvent) isChainEvent() {}
func (ExtrinsicFailedEvent) isChainEvent()  {}
func (SudidEvent) isChainEvent()            {}
func (UnknownEvent) isChainEvent()          {}

// DecodeEvent turns a raw event into its typed variant selected by the
// kind tag. Events of unmodelled kinds are returned as UnknownEvent.
func DecodeEvent(raw *RawEvent) (ChainEvent, error) {
	var (
		ev  ChainEvent
		err error
	)
	switch raw.Kind() {
	case EventRewarded:
		var e RewardedEvent
		err = decodeEventData(raw, &e)
		ev = e
	case EventCompounded:
		var e CompoundedEvent
		err = decodeEventData(raw, &e)
		ev = e
	case EventNewRound:
		var e NewRoundEvent
		err = decodeEventData(raw, &e)
		ev = e
	case EventExtrinsicSuccess:
		ev = ExtrinsicSuccessEvent{}
	case EventExtrinsicFailed:
		var e ExtrinsicFailedEvent
		err = decodeEventData(raw, &e)
		ev = e
	case EventSudid:
		var e SudidEvent
		err = decodeEventData(raw, &e)
		ev = e
	default:
		ev = UnknownEvent{Raw: raw}
	}
	if err != nil {
		return nil, err
	}

	return ev, nil
}

func decodeEventData(raw *RawEvent, v interface{}) error {
	if len(raw.Data) == 0 {
		return errorsmod.Wrapf(ErrEventDecode, "%s has no data", raw.Kind())
	}
	if err := json.Unmarshal(raw.Data, v); err != nil {
		return errorsmod.Wrapf(ErrEventDecode, "%s: %v", raw.Kind(), err)
	}
	if val, ok := v.(interface{ Validate() error }); ok {
		if err := val.Validate(); err != nil {
			return errorsmod.Wrapf(ErrEventDecode, "%s: %v", raw.Kind(), err)
		}
	}
	return nil
}

// EncodeEvent builds the raw form of a typed event
func EncodeEvent(phase Phase, ev ChainEvent) (*RawEvent, error) {
	if u, ok := ev.(UnknownEvent); ok {
		raw := *u.Raw
		raw.Phase = phase
		return &raw, nil
	}

	section, method, ok := strings.Cut(string(ev.Kind()), ".")
	if !ok {
		return nil, fmt.Errorf("malformed event kind %q", ev.Kind())
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", ev.Kind(), err)
	}

	return &RawEvent{
		Phase:   phase,
		Section: section,
		Method:  method,
		Data:    data,
	}, nil
}
