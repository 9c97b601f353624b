package harness

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/parastake/compound-checker/clientcontroller"
	"github.com/parastake/compound-checker/types"
)

// Harness drives a chain through block production and reads back what
// happened. All calls are sequential and block until the chain answers.
type Harness struct {
	cc     clientcontroller.ClientController
	logger *zap.Logger
}

func New(cc clientcontroller.ClientController, logger *zap.Logger) *Harness {
	return &Harness{
		cc:     cc,
		logger: logger,
	}
}

func (h *Harness) ClientController() clientcontroller.ClientController {
	return h.cc
}

type BlockOptions struct {
	// AllowFailures makes CreateBlock return the block result instead of
	// ErrExtrinsicFailed when an extrinsic is not successful
	AllowFailures bool
}

// CreateBlock submits the given extrinsics, seals one block and reports the
// outcome of each extrinsic as read from the block events
func (h *Harness) CreateBlock(opts BlockOptions, exts ...*types.SignedExtrinsic) (*types.BlockResult, error) {
	submitted := make([]*types.ExtrinsicResult, 0, len(exts))
	for _, ext := range exts {
		hash, err := h.cc.SubmitExtrinsic(ext)
		if err != nil {
			return nil, productionError(err, "submit %s", ext.Call.Name())
		}
		submitted = append(submitted, &types.ExtrinsicResult{
			Hash: hash,
			Call: ext.Call.Name(),
		})
	}

	sealed, err := h.cc.SealBlock()
	if err != nil {
		return nil, productionError(err, "seal")
	}

	events, err := h.cc.QueryBlockEvents(sealed.Hash)
	if err != nil {
		return nil, productionError(err, "events of block %d", sealed.Number)
	}

	res := &types.BlockResult{
		Block:   *sealed,
		Results: submitted,
		Events:  events,
	}
	if len(submitted) == 0 {
		return res, nil
	}

	block, err := h.cc.QueryBlock(sealed.Hash)
	if err != nil {
		return nil, productionError(err, "body of block %d", sealed.Number)
	}
	fillResults(submitted, block.Extrinsics, events)

	h.logger.Debug("created block",
		zap.Uint64("number", sealed.Number),
		zap.String("hash", sealed.Hash.Hex()),
		zap.Int("extrinsics", len(submitted)),
	)

	if opts.AllowFailures {
		return res, nil
	}
	for _, r := range res.FailedResults() {
		if !r.Included {
			return res, errorsmod.Wrapf(types.ErrExtrinsicFailed, "%s (%s) was not included in block %d",
				r.Call, r.Hash.Hex(), sealed.Number)
		}
		return res, errorsmod.Wrapf(types.ErrExtrinsicFailed, "%s (%s) in block %d: %s",
			r.Call, r.Hash.Hex(), sealed.Number, r.Error)
	}

	return res, nil
}

// productionError keeps both ErrBlockProduction and the client error in the
// chain so callers can still tell transient failures apart
func productionError(cause error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w: %w", fmt.Sprintf(format, args...), cause, types.ErrBlockProduction)
}

// fillResults locates each submitted extrinsic in the block body and sets
// its outcome from the events emitted in its apply phase
func fillResults(results []*types.ExtrinsicResult, body []common.Hash, events []*types.RawEvent) {
	index := make(map[common.Hash]uint32, len(body))
	for i, h := range body {
		index[h] = uint32(i)
	}

	for _, r := range results {
		idx, ok := index[r.Hash]
		if !ok {
			r.Error = "not included"
			continue
		}
		r.Index = idx
		r.Included = true

		for _, ev := range events {
			if !ev.Phase.IsApplyExtrinsic(idx) {
				continue
			}
			switch ev.Kind() {
			case types.EventExtrinsicSuccess:
				r.Successful = true
			case types.EventExtrinsicFailed:
				r.Successful = false
				decoded, err := types.DecodeEvent(ev)
				if err != nil {
					r.Error = err.Error()
					continue
				}
				r.Error = decoded.(types.ExtrinsicFailedEvent).DispatchError
			}
		}
		if !r.Successful && r.Error == "" {
			r.Error = "no dispatch outcome event"
		}
	}
}

// JumpBlocks seals exactly n empty blocks
func (h *Harness) JumpBlocks(n int) (*types.SealedBlock, error) {
	if n < 0 {
		return nil, errorsmod.Wrapf(types.ErrInvalidRoundCount, "cannot jump %d blocks", n)
	}

	var last *types.SealedBlock
	for i := 0; i < n; i++ {
		sealed, err := h.cc.SealBlock()
		if err != nil {
			return nil, productionError(err, "block %d of %d", i+1, n)
		}
		last = sealed
	}

	return last, nil
}
