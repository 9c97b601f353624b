package keyring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/parastake/compound-checker/types"
)

// well-known development accounts of a dev-mode node, their balances are
// endowed at genesis
var devAccountKeys = map[string]string{
	"alith":     "5fb92d6e98884f76de468fa3f6278f8807c48bebc13595d45af5bdc4da702133",
	"baltathar": "8075991ce870b93a8870eca0c0f91913d12f47948ca0fd25b49c6fa7cdbeee8b",
	"charleth":  "0b6e18cafb6ed99687ec547bd28139cafdd2bffe70e6b688025de6b445aa5c5b",
	"dorothy":   "39539ab1876910bbf3a223d84a29e28f1cb4e2e456503e7e91ed39b2e7223d68",
	"ethan":     "7dce9bc8babb68fec1409be38c8e1a52650206a7ed90ff956ae8a6d15eeaaef4",
	"faith":     "b9d2ea9a615f3165812e8d44de0d24da9bbd164b65c4f0573e1ce2c8dbd9c8df",
}

// DevAccountNames returns the names of the development accounts in a stable order
func DevAccountNames() []string {
	names := make([]string, 0, len(devAccountKeys))
	for name := range devAccountKeys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateDevKeyring returns a keyring holding every development account
func CreateDevKeyring() (*ChainKeyringController, error) {
	kc := NewChainKeyringController()
	for _, name := range DevAccountNames() {
		if _, err := kc.ImportKey(name, devAccountKeys[name]); err != nil {
			return nil, fmt.Errorf("failed to import development account %s: %w", name, err)
		}
	}

	return kc, nil
}

func parseKey(name, hexKey string) (*types.ChainKeyInfo, error) {
	sk, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key for %s: %w", name, err)
	}

	return &types.ChainKeyInfo{
		Name:       name,
		Address:    crypto.PubkeyToAddress(sk.PublicKey),
		PrivateKey: sk,
	}, nil
}
