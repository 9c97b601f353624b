package devchain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const readHeaderTimeout = 5 * time.Second

// Server serves a Chain over JSON-RPC on HTTP and websocket
type Server struct {
	startOnce sync.Once
	stopOnce  sync.Once

	chain      *Chain
	rpcServer  *rpc.Server
	httpServer *http.Server
	listener   net.Listener

	listenAddr string
	logger     *zap.Logger
}

func NewServer(chain *Chain, listenAddr string, logger *zap.Logger) (*Server, error) {
	rpcServer, err := NewRPCServer(chain)
	if err != nil {
		return nil, err
	}

	s := &Server{
		chain:      chain,
		rpcServer:  rpcServer,
		listenAddr: listenAddr,
		logger:     logger,
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/ws", rpcServer.WebsocketHandler([]string{"*"}))
	router.PathPrefix("/").Handler(rpcServer)

	s.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return s, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	header := s.chain.BestHeader()
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "ok %d\n", header.Number)
}

func (s *Server) Start() error {
	var startErr error
	s.startOnce.Do(func() {
		l, err := net.Listen("tcp", s.listenAddr)
		if err != nil {
			startErr = fmt.Errorf("failed to listen on %s: %w", s.listenAddr, err)
			return
		}
		s.listener = l

		s.logger.Info("development node is serving",
			zap.String("addr", l.Addr().String()),
		)

		go func() {
			if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("development node server stopped", zap.Error(err))
			}
		}()
	})
	return startErr
}

// Addr is the bound address, it differs from the configured one when
// listening on port 0
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.listenAddr
	}
	return s.listener.Addr().String()
}

// URL is the HTTP endpoint clients dial
func (s *Server) URL() string {
	return "http://" + s.Addr()
}

func (s *Server) Stop() error {
	var stopErr error
	s.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		stopErr = s.httpServer.Shutdown(ctx)
		s.rpcServer.Stop()
		s.logger.Info("development node is stopped")
	})
	return stopErr
}
