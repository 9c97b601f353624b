package e2etest

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parastake/compound-checker/config"
	"github.com/parastake/compound-checker/devchain"
	"github.com/parastake/compound-checker/keyring"
)

// DevNodeHandler runs a development chain on a local port for the duration
// of a test
type DevNodeHandler struct {
	chain  *devchain.Chain
	server *devchain.Server
}

func NewDevNodeHandler(t *testing.T, cfg *config.DevNodeConfig, kc *keyring.ChainKeyringController, logger *zap.Logger) *DevNodeHandler {
	alith, err := kc.Address("alith")
	require.NoError(t, err)
	endowed := make([]common.Address, 0)
	for _, info := range kc.List() {
		endowed = append(endowed, info.Address)
	}

	genesis := devchain.GenesisFromConfig(cfg, alith, alith, endowed...)
	chain, err := devchain.NewChain(genesis, logger)
	require.NoError(t, err)
	server, err := devchain.NewServer(chain, cfg.ListenAddr, logger)
	require.NoError(t, err)

	return &DevNodeHandler{
		chain:  chain,
		server: server,
	}
}

func (h *DevNodeHandler) Start() error {
	return h.server.Start()
}

func (h *DevNodeHandler) Stop(t *testing.T) {
	err := h.server.Stop()
	require.NoError(t, err)
}

// RPCAddr is the endpoint the checker dials
func (h *DevNodeHandler) RPCAddr() string {
	return h.server.URL()
}

func (h *DevNodeHandler) Chain() *devchain.Chain {
	return h.chain
}
