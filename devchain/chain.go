package devchain

import (
	"errors"
	"fmt"
	"sync"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"go.uber.org/zap"

	"github.com/parastake/compound-checker/codec"
	"github.com/parastake/compound-checker/types"
)

var (
	ErrNoPendingExtrinsics = errors.New("no pending extrinsics and empty blocks are not requested")
	ErrUnknownParent       = errors.New("sealing on top of a block other than the best one is not supported")
	ErrBadSignature        = errors.New("extrinsic signature does not match the signer")
	ErrStaleNonce          = errors.New("nonce is already used")
	ErrFutureNonce         = errors.New("nonce is ahead of the next account index")
	ErrAlreadyImported     = errors.New("extrinsic is already in the pool")
)

type storedBlock struct {
	header     types.Header
	extrinsics []common.Hash
	events     []*types.RawEvent
}

type pooledExtrinsic struct {
	hash common.Hash
	ext  *types.SignedExtrinsic
}

// Chain is an in-memory parachain with manual sealing. Every block is
// final once sealed.
type Chain struct {
	mu sync.Mutex

	genesis *GenesisConfig

	blocks  []*storedBlock
	byHash  map[common.Hash]*storedBlock
	pool    []*pooledExtrinsic
	inPool  map[common.Hash]struct{}
	nonces  map[common.Address]uint64
	balance map[common.Address]sdkmath.Int

	staking *stakingState

	encodeEvent func(types.Phase, types.ChainEvent) (*types.RawEvent, error)

	logger *zap.Logger
}

func NewChain(genesis *GenesisConfig, logger *zap.Logger) (*Chain, error) {
	if err := genesis.Validate(); err != nil {
		return nil, fmt.Errorf("invalid genesis: %w", err)
	}

	c := &Chain{
		genesis: genesis,
		byHash:  make(map[common.Hash]*storedBlock),
		inPool:  make(map[common.Hash]struct{}),
		nonces:  make(map[common.Address]uint64),
		balance: make(map[common.Address]sdkmath.Int),
		logger:  logger,

		encodeEvent: types.EncodeEvent,
	}
	for addr, amt := range genesis.Balances {
		c.balance[addr] = amt
	}

	c.staking = newStakingState(genesis)
	for _, cand := range genesis.Candidates {
		c.staking.addCandidate(cand.Address, cand.SelfBond)
		c.debit(cand.Address, cand.SelfBond)
	}
	c.staking.startRound(1, 0, genesis.BlocksPerRound)

	genesisBlock := &storedBlock{
		header: types.Header{Number: 0},
	}
	genesisBlock.header.Hash = blockHash(&genesisBlock.header, nil)
	c.appendBlock(genesisBlock)

	return c, nil
}

func (c *Chain) appendBlock(b *storedBlock) {
	c.blocks = append(c.blocks, b)
	c.byHash[b.header.Hash] = b
}

func (c *Chain) best() *storedBlock {
	return c.blocks[len(c.blocks)-1]
}

// SubmitExtrinsic checks the signature and nonce of an encoded extrinsic
// and puts it into the pool
func (c *Chain) SubmitExtrinsic(bz []byte) (common.Hash, error) {
	ext, err := codec.DecodeExtrinsic(bz)
	if err != nil {
		return common.Hash{}, err
	}
	signer, err := codec.RecoverSigner(ext)
	if err != nil {
		return common.Hash{}, err
	}
	if signer != ext.Signer {
		return common.Hash{}, ErrBadSignature
	}
	hash := crypto.Keccak256Hash(bz)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.inPool[hash]; ok {
		return common.Hash{}, ErrAlreadyImported
	}
	next := c.nextIndex(ext.Signer)
	switch {
	case ext.Nonce < next:
		return common.Hash{}, fmt.Errorf("%w: got %d, next is %d", ErrStaleNonce, ext.Nonce, next)
	case ext.Nonce > next:
		return common.Hash{}, fmt.Errorf("%w: got %d, next is %d", ErrFutureNonce, ext.Nonce, next)
	}

	c.pool = append(c.pool, &pooledExtrinsic{hash: hash, ext: ext})
	c.inPool[hash] = struct{}{}

	c.logger.Debug("extrinsic imported into the pool",
		zap.String("hash", hash.Hex()),
		zap.String("call", ext.Call.Name()),
		zap.String("signer", ext.Signer.Hex()),
	)

	return hash, nil
}

// AccountNextIndex returns the nonce the next extrinsic of addr must carry
func (c *Chain) AccountNextIndex(addr common.Address) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nextIndex(addr)
}

func (c *Chain) nextIndex(addr common.Address) uint64 {
	next := c.nonces[addr]
	for _, p := range c.pool {
		if p.ext.Signer == addr {
			next++
		}
	}
	return next
}

// Seal authors one block on top of the best block, applying every pooled
// extrinsic in submission order
func (c *Chain) Seal(createEmpty bool, parent *common.Hash) (*types.SealedBlock, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	best := c.best()
	if parent != nil && *parent != best.header.Hash {
		return nil, ErrUnknownParent
	}
	if !createEmpty && len(c.pool) == 0 {
		return nil, ErrNoPendingExtrinsics
	}

	number := best.header.Number + 1
	rec := &eventRecorder{encode: c.encodeEvent}
	saved := c.saveState()

	rec.phase = types.InitializationPhase()
	c.onInitialize(number, rec)

	body := make([]common.Hash, 0, len(c.pool))
	for i, p := range c.pool {
		rec.phase = types.ApplyExtrinsicPhase(uint32(i))
		c.nonces[p.ext.Signer] = p.ext.Nonce + 1
		c.applyExtrinsic(p.ext, rec)
		body = append(body, p.hash)
	}
	c.pool = nil
	c.inPool = make(map[common.Hash]struct{})

	if rec.err != nil {
		c.restoreState(saved)
		return nil, fmt.Errorf("failed to record events of block %d: %w", number, rec.err)
	}

	block := &storedBlock{
		header: types.Header{
			Number:     number,
			ParentHash: best.header.Hash,
		},
		extrinsics: body,
		events:     rec.events,
	}
	block.header.Hash = blockHash(&block.header, body)
	c.appendBlock(block)

	c.logger.Debug("sealed block",
		zap.Uint64("number", number),
		zap.String("hash", block.header.Hash.Hex()),
		zap.Int("extrinsics", len(body)),
		zap.Int("events", len(rec.events)),
	)

	return &types.SealedBlock{Hash: block.header.Hash, Number: number}, nil
}

func (c *Chain) BestHeader() types.Header {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.best().header
}

func (c *Chain) BlockHash(number uint64) (common.Hash, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if number >= uint64(len(c.blocks)) {
		return common.Hash{}, false
	}
	return c.blocks[number].header.Hash, true
}

func (c *Chain) Block(hash common.Hash) (*types.Block, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.byHash[hash]
	if !ok {
		return nil, false
	}
	return &types.Block{
		Header:     b.header,
		Extrinsics: append([]common.Hash{}, b.extrinsics...),
	}, true
}

// Events returns copies of the events of the block
func (c *Chain) Events(hash common.Hash) ([]*types.RawEvent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.byHash[hash]
	if !ok {
		return nil, false
	}
	res := make([]*types.RawEvent, len(b.events))
	for i, ev := range b.events {
		cp := *ev
		res[i] = &cp
	}
	return res, true
}

func (c *Chain) Round() types.RoundInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.staking.round
}

func (c *Chain) Params() types.StakingParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	return types.StakingParams{
		RewardPaymentDelay:         c.genesis.RewardPaymentDelay,
		MinDelegation:              c.genesis.MinDelegation,
		MinBlocksPerRound:          c.genesis.MinBlocksPerRound,
		MaxDelegationsPerCandidate: c.genesis.MaxDelegationsPerCandidate,
	}
}

func (c *Chain) AutoCompound(candidate, delegator common.Address) types.Percent {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d := c.staking.delegation(candidate, delegator); d != nil {
		return d.autoCompound
	}
	return 0
}

// Delegation returns the current stake of delegator behind candidate
func (c *Chain) Delegation(candidate, delegator common.Address) (*types.Delegation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.staking.delegation(candidate, delegator)
	if d == nil {
		return nil, false
	}
	return &types.Delegation{
		Delegator:    delegator,
		Candidate:    candidate,
		Amount:       d.amount,
		AutoCompound: d.autoCompound,
	}, true
}

func (c *Chain) Balance(addr common.Address) sdkmath.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balanceOf(addr)
}

func (c *Chain) balanceOf(addr common.Address) sdkmath.Int {
	if b, ok := c.balance[addr]; ok {
		return b
	}
	return sdkmath.ZeroInt()
}

func (c *Chain) credit(addr common.Address, amt sdkmath.Int) {
	c.balance[addr] = c.balanceOf(addr).Add(amt)
}

func (c *Chain) debit(addr common.Address, amt sdkmath.Int) {
	c.balance[addr] = c.balanceOf(addr).Sub(amt)
}

type headerPayload struct {
	Number     uint64
	ParentHash common.Hash
	Extrinsics []common.Hash
}

func blockHash(h *types.Header, body []common.Hash) common.Hash {
	bz, err := rlp.EncodeToBytes(&headerPayload{
		Number:     h.Number,
		ParentHash: h.ParentHash,
		Extrinsics: body,
	})
	if err != nil {
		panic(err)
	}
	return crypto.Keccak256Hash(bz)
}

type eventRecorder struct {
	encode func(types.Phase, types.ChainEvent) (*types.RawEvent, error)
	phase  types.Phase
	events []*types.RawEvent
	err    error
}

func (r *eventRecorder) emit(ev types.ChainEvent) {
	raw, err := r.encode(r.phase, ev)
	if err != nil {
		if r.err == nil {
			r.err = err
		}
		return
	}
	r.events = append(r.events, raw)
}

// chainState is everything a sealed block may change besides the block list
type chainState struct {
	pool    []*pooledExtrinsic
	inPool  map[common.Hash]struct{}
	nonces  map[common.Address]uint64
	balance map[common.Address]sdkmath.Int
	staking *stakingState
}

func (c *Chain) saveState() *chainState {
	st := &chainState{
		pool:    append([]*pooledExtrinsic(nil), c.pool...),
		inPool:  make(map[common.Hash]struct{}, len(c.inPool)),
		nonces:  make(map[common.Address]uint64, len(c.nonces)),
		balance: make(map[common.Address]sdkmath.Int, len(c.balance)),
		staking: c.staking.clone(),
	}
	for h := range c.inPool {
		st.inPool[h] = struct{}{}
	}
	for addr, n := range c.nonces {
		st.nonces[addr] = n
	}
	for addr, amt := range c.balance {
		st.balance[addr] = amt
	}
	return st
}

func (c *Chain) restoreState(st *chainState) {
	c.pool = st.pool
	c.inPool = st.inPool
	c.nonces = st.nonces
	c.balance = st.balance
	c.staking = st.staking
}
