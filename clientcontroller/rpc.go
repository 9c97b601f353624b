package clientcontroller

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/parastake/compound-checker/codec"
	"github.com/parastake/compound-checker/config"
	"github.com/parastake/compound-checker/types"
)

var _ ClientController = &RPCController{}

// RPCController talks to a parachain node over JSON-RPC
type RPCController struct {
	rpcClient  *rpc.Client
	cfg        *config.ChainConfig
	eventCache *lru.Cache
	logger     *zap.Logger
}

func NewRPCController(
	cfg *config.ChainConfig,
	logger *zap.Logger,
) (*RPCController, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config for parachain client: %w", err)
	}

	ctx, cancel := getContextWithCancel(cfg.Timeout)
	defer cancel()

	client, err := rpc.DialContext(ctx, cfg.RPCAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", cfg.RPCAddr, err)
	}

	return NewRPCControllerWithClient(client, cfg, logger)
}

// NewRPCControllerWithClient wraps an already connected client, e.g. an
// in-process one
func NewRPCControllerWithClient(
	client *rpc.Client,
	cfg *config.ChainConfig,
	logger *zap.Logger,
) (*RPCController, error) {
	cache, err := lru.New(cfg.EventCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create the event cache: %w", err)
	}

	return &RPCController{
		rpcClient:  client,
		cfg:        cfg,
		eventCache: cache,
		logger:     logger,
	}, nil
}

func (rc *RPCController) call(result interface{}, method string, args ...interface{}) error {
	ctx, cancel := getContextWithCancel(rc.cfg.Timeout)
	defer cancel()

	if err := rc.rpcClient.CallContext(ctx, result, method, args...); err != nil {
		rc.logger.Debug("rpc request failed",
			zap.String("method", method),
			zap.Error(err),
		)
		return fmt.Errorf("%s: %w", method, err)
	}

	return nil
}

func (rc *RPCController) SubmitExtrinsic(ext *types.SignedExtrinsic) (common.Hash, error) {
	bz, err := codec.EncodeExtrinsic(ext)
	if err != nil {
		return common.Hash{}, err
	}

	var hash common.Hash
	if err := rc.call(&hash, "author_submitExtrinsic", hexutil.Bytes(bz)); err != nil {
		return common.Hash{}, fmt.Errorf("failed to submit %s: %w", ext.Call.Name(), err)
	}

	rc.logger.Debug("submitted extrinsic",
		zap.String("call", ext.Call.Name()),
		zap.String("signer", ext.Signer.Hex()),
		zap.Uint64("nonce", ext.Nonce),
		zap.String("hash", hash.Hex()),
	)

	return hash, nil
}

func (rc *RPCController) SealBlock() (*types.SealedBlock, error) {
	var sealed types.SealedBlock
	// createEmpty, finalize, parentHash
	if err := rc.call(&sealed, "engine_createBlock", true, true, nil); err != nil {
		return nil, err
	}

	rc.logger.Debug("sealed block",
		zap.Uint64("number", sealed.Number),
		zap.String("hash", sealed.Hash.Hex()),
	)

	return &sealed, nil
}

func (rc *RPCController) QueryCurrentRound() (*types.RoundInfo, error) {
	var round types.RoundInfo
	if err := rc.call(&round, "parachainStaking_round"); err != nil {
		return nil, err
	}
	return &round, nil
}

func (rc *RPCController) QueryStakingParams() (*types.StakingParams, error) {
	var params types.StakingParams
	if err := rc.call(&params, "parachainStaking_params"); err != nil {
		return nil, fmt.Errorf("failed to query staking params: %w", err)
	}
	return &params, nil
}

func (rc *RPCController) QueryAccountNonce(addr common.Address) (uint64, error) {
	var nonce uint64
	if err := rc.call(&nonce, "system_accountNextIndex", addr); err != nil {
		return 0, err
	}
	return nonce, nil
}

func (rc *RPCController) QueryBlockEvents(hash common.Hash) ([]*types.RawEvent, error) {
	if cached, ok := rc.eventCache.Get(hash); ok {
		return copyEvents(cached.([]*types.RawEvent)), nil
	}

	var events []*types.RawEvent
	if err := rc.call(&events, "chain_getEvents", hash); err != nil {
		return nil, fmt.Errorf("failed to query events of block %s: %w", hash.Hex(), err)
	}
	rc.eventCache.Add(hash, events)

	return copyEvents(events), nil
}

func (rc *RPCController) QueryBlock(hash common.Hash) (*types.Block, error) {
	var block *types.Block
	if err := rc.call(&block, "chain_getBlock", hash); err != nil {
		return nil, err
	}
	if block == nil {
		return nil, fmt.Errorf("block %s is not found", hash.Hex())
	}
	return block, nil
}

func (rc *RPCController) QueryBlockHash(number uint64) (common.Hash, error) {
	var hash *common.Hash
	if err := rc.call(&hash, "chain_getBlockHash", number); err != nil {
		return common.Hash{}, err
	}
	if hash == nil {
		return common.Hash{}, fmt.Errorf("block %d is not found", number)
	}
	return *hash, nil
}

func (rc *RPCController) QueryBestBlock() (*types.Header, error) {
	var header types.Header
	if err := rc.call(&header, "chain_getHeader"); err != nil {
		return nil, err
	}
	return &header, nil
}

func (rc *RPCController) QueryAutoCompound(candidate, delegator common.Address) (types.Percent, error) {
	var p types.Percent
	if err := rc.call(&p, "parachainStaking_autoCompound", candidate, delegator); err != nil {
		return 0, err
	}
	return p, nil
}

func (rc *RPCController) Close() error {
	rc.rpcClient.Close()
	rc.eventCache.Purge()
	return nil
}

// copyEvents returns a fresh slice so callers cannot alter cached entries
func copyEvents(events []*types.RawEvent) []*types.RawEvent {
	res := make([]*types.RawEvent, len(events))
	for i, ev := range events {
		cp := *ev
		res[i] = &cp
	}
	return res
}

func getContextWithCancel(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
