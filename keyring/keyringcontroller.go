package keyring

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/parastake/compound-checker/codec"
	"github.com/parastake/compound-checker/types"
)

// ChainKeyringController holds named secp256k1 keys and signs extrinsics
type ChainKeyringController struct {
	mu   sync.RWMutex
	keys map[string]*types.ChainKeyInfo
}

func NewChainKeyringController() *ChainKeyringController {
	return &ChainKeyringController{
		keys: make(map[string]*types.ChainKeyInfo),
	}
}

func (kc *ChainKeyringController) ImportKey(name, hexKey string) (*types.ChainKeyInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("the key name should not be empty")
	}

	info, err := parseKey(name, hexKey)
	if err != nil {
		return nil, err
	}

	kc.mu.Lock()
	defer kc.mu.Unlock()
	if _, exists := kc.keys[name]; exists {
		return nil, fmt.Errorf("key %s already exists", name)
	}
	kc.keys[name] = info

	return info, nil
}

// ResolveKey returns the key stored under nameOrKey. A 0x-prefixed hex
// private key that is not a known name is imported under its address.
func (kc *ChainKeyringController) ResolveKey(nameOrKey string) (*types.ChainKeyInfo, error) {
	if info, err := kc.GetKey(nameOrKey); err == nil {
		return info, nil
	}
	if !strings.HasPrefix(nameOrKey, "0x") {
		return nil, fmt.Errorf("key %s is not found", nameOrKey)
	}

	info, err := parseKey("", nameOrKey)
	if err != nil {
		return nil, err
	}
	info.Name = info.Address.Hex()

	kc.mu.Lock()
	defer kc.mu.Unlock()
	if existing, ok := kc.keys[info.Name]; ok {
		return existing, nil
	}
	kc.keys[info.Name] = info

	return info, nil
}

func (kc *ChainKeyringController) GetKey(name string) (*types.ChainKeyInfo, error) {
	kc.mu.RLock()
	defer kc.mu.RUnlock()

	info, ok := kc.keys[name]
	if !ok {
		return nil, fmt.Errorf("key %s is not found", name)
	}
	return info, nil
}

func (kc *ChainKeyringController) Address(name string) (common.Address, error) {
	info, err := kc.GetKey(name)
	if err != nil {
		return common.Address{}, err
	}
	return info.Address, nil
}

func (kc *ChainKeyringController) List() []*types.ChainKeyInfo {
	kc.mu.RLock()
	defer kc.mu.RUnlock()

	infos := make([]*types.ChainKeyInfo, 0, len(kc.keys))
	for _, info := range kc.keys {
		infos = append(infos, info)
	}
	return infos
}

// Sign signs the call with the named key at the given account nonce
func (kc *ChainKeyringController) Sign(name string, call types.Call, nonce uint64) (*types.SignedExtrinsic, error) {
	info, err := kc.GetKey(name)
	if err != nil {
		return nil, err
	}

	hash, err := codec.SigningHash(call, info.Address, nonce)
	if err != nil {
		return nil, err
	}

	sig, err := crypto.Sign(hash.Bytes(), info.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign %s with %s: %w", call.Name(), name, err)
	}

	return &types.SignedExtrinsic{
		Call:      call,
		Signer:    info.Address,
		Nonce:     nonce,
		Signature: sig,
	}, nil
}
