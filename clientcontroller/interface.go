package clientcontroller

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/parastake/compound-checker/config"
	"github.com/parastake/compound-checker/types"
)

const (
	parachainStakingChainName = "parachain-staking"
)

type ClientController interface {
	// SubmitExtrinsic puts a signed extrinsic into the transaction pool of
	// the node, it returns the extrinsic hash
	SubmitExtrinsic(ext *types.SignedExtrinsic) (common.Hash, error)

	// SealBlock asks the node to author and finalize one block on top of
	// the best block, including whatever is in the pool
	SealBlock() (*types.SealedBlock, error)

	QueryCurrentRound() (*types.RoundInfo, error)

	QueryStakingParams() (*types.StakingParams, error)

	// QueryAccountNonce returns the next nonce of the account, pending
	// pool extrinsics included
	QueryAccountNonce(addr common.Address) (uint64, error)

	// QueryBlockEvents returns every event emitted while executing the block
	QueryBlockEvents(hash common.Hash) ([]*types.RawEvent, error)

	QueryBlock(hash common.Hash) (*types.Block, error)

	QueryBlockHash(number uint64) (common.Hash, error)

	QueryBestBlock() (*types.Header, error)

	// QueryAutoCompound returns the auto-compound percentage the delegator
	// has set for its delegation to candidate
	QueryAutoCompound(candidate, delegator common.Address) (types.Percent, error)

	Close() error
}

func NewClientController(chainName string, cfg *config.ChainConfig, logger *zap.Logger) (ClientController, error) {
	var (
		cc  ClientController
		err error
	)
	switch chainName {
	case parachainStakingChainName:
		cc, err = NewRPCController(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create parachain rpc client: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported chain %s", chainName)
	}

	return cc, err
}

// NewParachainController is a shorthand for the only supported chain
func NewParachainController(cfg *config.ChainConfig, logger *zap.Logger) (ClientController, error) {
	return NewClientController(parachainStakingChainName, cfg, logger)
}
