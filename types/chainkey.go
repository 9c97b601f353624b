package types

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
)

type ChainKeyInfo struct {
	Name       string
	Address    common.Address
	PrivateKey *ecdsa.PrivateKey
}
