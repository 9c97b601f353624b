package checker_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parastake/compound-checker/clientcontroller"
	"github.com/parastake/compound-checker/config"
	"github.com/parastake/compound-checker/devchain"
	"github.com/parastake/compound-checker/keyring"
)

// newDevController starts an in-process development chain endowing every
// dev account and returns a controller connected to it
func newDevController(t *testing.T) (clientcontroller.ClientController, *keyring.ChainKeyringController) {
	kc, err := keyring.CreateDevKeyring()
	require.NoError(t, err)
	alith, err := kc.Address("alith")
	require.NoError(t, err)
	endowed := make([]common.Address, 0)
	for _, info := range kc.List() {
		endowed = append(endowed, info.Address)
	}

	chain, err := devchain.NewChain(devchain.DefaultGenesisConfig(alith, alith, endowed...), zap.NewNop())
	require.NoError(t, err)
	srv, err := devchain.NewRPCServer(chain)
	require.NoError(t, err)
	t.Cleanup(srv.Stop)

	cfg := config.DefaultChainConfig()
	cc, err := clientcontroller.NewRPCControllerWithClient(rpc.DialInProc(srv), &cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cc.Close() })

	return cc, kc
}
