package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// StatusFunc reports the state served on /status
type StatusFunc func() interface{}

// MetricsServer serves Prometheus metrics and the auditor status
type MetricsServer struct {
	svr *http.Server

	logger *zap.Logger
}

func NewMetricsServer(addr string, status StatusFunc, logger *zap.Logger) *MetricsServer {
	return &MetricsServer{
		svr: &http.Server{
			Handler:           newRouter(status, logger),
			Addr:              addr,
			ReadTimeout:       1 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       30 * time.Second,
			ReadHeaderTimeout: 2 * time.Second,
		},
		logger: logger,
	}
}

func newRouter(status StatusFunc, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/status", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status()); err != nil {
			logger.Debug("failed to write the status", zap.Error(err))
		}
	}).Methods(http.MethodGet)
	return router
}

func (ms *MetricsServer) Handler() http.Handler {
	return ms.svr.Handler
}

func (ms *MetricsServer) Start() {
	ms.logger.Info("Starting metrics server",
		zap.String("address", ms.svr.Addr))

	if err := ms.svr.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return
		}
		ms.logger.Error("the metrics server stopped unexpectedly",
			zap.Error(err))
	}
}

func (ms *MetricsServer) Stop() {
	ms.logger.Info("Stopping metrics server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ms.svr.Shutdown(ctx); err != nil {
		ms.logger.Error("failed to stop the metrics server",
			zap.Error(err))
		if err = ms.svr.Close(); err != nil {
			ms.logger.Error("failed to force stopping the metrics server",
				zap.Error(err))
		}
	}
}
