package codec

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/parastake/compound-checker/types"
)

type signingPayload struct {
	Pallet string
	Method string
	Params []byte
	Signer common.Address
	Nonce  uint64
}

// SigningHash is the digest a signer commits to for the given call
func SigningHash(call types.Call, signer common.Address, nonce uint64) (common.Hash, error) {
	bz, err := rlp.EncodeToBytes(&signingPayload{
		Pallet: call.Pallet,
		Method: call.Method,
		Params: call.Params,
		Signer: signer,
		Nonce:  nonce,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode signing payload of %s: %w", call.Name(), err)
	}

	return crypto.Keccak256Hash(bz), nil
}

func EncodeExtrinsic(ext *types.SignedExtrinsic) ([]byte, error) {
	bz, err := rlp.EncodeToBytes(ext)
	if err != nil {
		return nil, fmt.Errorf("failed to encode extrinsic %s: %w", ext.Call.Name(), err)
	}
	return bz, nil
}

func DecodeExtrinsic(bz []byte) (*types.SignedExtrinsic, error) {
	var ext types.SignedExtrinsic
	if err := rlp.DecodeBytes(bz, &ext); err != nil {
		return nil, fmt.Errorf("failed to decode extrinsic: %w", err)
	}
	return &ext, nil
}

// ExtrinsicHash identifies a signed extrinsic, it is the hash the node
// returns on submission and lists in the block body
func ExtrinsicHash(ext *types.SignedExtrinsic) (common.Hash, error) {
	bz, err := EncodeExtrinsic(ext)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(bz), nil
}

// RecoverSigner returns the address whose key produced the extrinsic signature
func RecoverSigner(ext *types.SignedExtrinsic) (common.Address, error) {
	hash, err := SigningHash(ext.Call, ext.Signer, ext.Nonce)
	if err != nil {
		return common.Address{}, err
	}
	pub, err := crypto.SigToPub(hash.Bytes(), ext.Signature)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid signature: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
