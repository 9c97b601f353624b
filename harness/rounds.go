package harness

import (
	errorsmod "cosmossdk.io/errors"
	"go.uber.org/zap"

	"github.com/parastake/compound-checker/types"
)

// JumpRounds seals blocks one at a time until the round reported by the
// chain has advanced by numRounds from the round observed on entry. It
// returns the round info after the last sealed block. Zero rounds seal
// nothing.
func (h *Harness) JumpRounds(numRounds int) (*types.RoundInfo, error) {
	if numRounds < 0 {
		return nil, errorsmod.Wrapf(types.ErrInvalidRoundCount, "cannot jump %d rounds", numRounds)
	}

	round, err := h.cc.QueryCurrentRound()
	if err != nil {
		return nil, productionError(err, "query round")
	}
	if numRounds == 0 {
		return round, nil
	}

	target := round.Current + uint32(numRounds)
	h.logger.Debug("jumping rounds",
		zap.Uint32("from", round.Current),
		zap.Uint32("to", target),
	)

	var sealed uint64
	for round.Current < target {
		if _, err := h.cc.SealBlock(); err != nil {
			return nil, productionError(err, "round %d, block %d", round.Current, sealed+1)
		}
		sealed++

		round, err = h.cc.QueryCurrentRound()
		if err != nil {
			return nil, productionError(err, "query round")
		}
	}

	h.logger.Debug("jumped rounds",
		zap.Uint32("round", round.Current),
		zap.Uint64("blocks", sealed),
	)

	return round, nil
}
