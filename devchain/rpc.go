package devchain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/parastake/compound-checker/types"
)

// NewRPCServer exposes the chain under the engine, author, chain, system
// and parachainStaking namespaces
func NewRPCServer(c *Chain) (*rpc.Server, error) {
	srv := rpc.NewServer()
	apis := map[string]interface{}{
		"engine":           &engineAPI{c},
		"author":           &authorAPI{c},
		"chain":            &chainAPI{c},
		"system":           &systemAPI{c},
		"parachainStaking": &stakingAPI{c},
	}
	for namespace, api := range apis {
		if err := srv.RegisterName(namespace, api); err != nil {
			srv.Stop()
			return nil, fmt.Errorf("failed to register the %s api: %w", namespace, err)
		}
	}
	return srv, nil
}

type engineAPI struct {
	chain *Chain
}

// CreateBlock seals a block. Blocks are always final so finalize is
// accepted for compatibility only.
func (api *engineAPI) CreateBlock(createEmpty bool, finalize bool, parentHash *common.Hash) (*types.SealedBlock, error) {
	return api.chain.Seal(createEmpty, parentHash)
}

type authorAPI struct {
	chain *Chain
}

func (api *authorAPI) SubmitExtrinsic(ext hexutil.Bytes) (common.Hash, error) {
	return api.chain.SubmitExtrinsic(ext)
}

type chainAPI struct {
	chain *Chain
}

func (api *chainAPI) GetHeader() types.Header {
	return api.chain.BestHeader()
}

func (api *chainAPI) GetBlockHash(number uint64) *common.Hash {
	hash, ok := api.chain.BlockHash(number)
	if !ok {
		return nil
	}
	return &hash
}

func (api *chainAPI) GetBlock(hash common.Hash) *types.Block {
	block, ok := api.chain.Block(hash)
	if !ok {
		return nil
	}
	return block
}

func (api *chainAPI) GetEvents(hash common.Hash) ([]*types.RawEvent, error) {
	events, ok := api.chain.Events(hash)
	if !ok {
		return nil, fmt.Errorf("block %s is not found", hash.Hex())
	}
	return events, nil
}

type systemAPI struct {
	chain *Chain
}

func (api *systemAPI) AccountNextIndex(addr common.Address) uint64 {
	return api.chain.AccountNextIndex(addr)
}

type stakingAPI struct {
	chain *Chain
}

func (api *stakingAPI) Round() types.RoundInfo {
	return api.chain.Round()
}

func (api *stakingAPI) Params() types.StakingParams {
	return api.chain.Params()
}

func (api *stakingAPI) AutoCompound(candidate, delegator common.Address) types.Percent {
	return api.chain.AutoCompound(candidate, delegator)
}
