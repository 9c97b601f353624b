package service

import (
	"fmt"
	"sync/atomic"

	"github.com/lightningnetwork/lnd/signal"
	"go.uber.org/zap"

	"github.com/parastake/compound-checker/checker"
)

// CheckerServer is the main daemon construct for the compound auditor.
type CheckerServer struct {
	started int32

	ca *checker.CompoundAuditor

	logger *zap.Logger

	interceptor signal.Interceptor
}

// NewCheckerServer creates a new server around the given auditor.
func NewCheckerServer(l *zap.Logger, ca *checker.CompoundAuditor, sig signal.Interceptor) *CheckerServer {
	return &CheckerServer{
		logger:      l,
		ca:          ca,
		interceptor: sig,
	}
}

// Status is served on /status
type Status struct {
	LastAuditedBlock *uint64 `json:"last_audited_block"`
}

func (s *CheckerServer) status() interface{} {
	st := Status{}
	if n, ok := s.ca.LastAuditedBlock(); ok {
		st.LastAuditedBlock = &n
	}
	return st
}

// RunUntilShutdown runs the auditor and the Prometheus server until a
// signal is received to shut down the process.
func (s *CheckerServer) RunUntilShutdown() error {
	if atomic.AddInt32(&s.started, 1) != 1 {
		return nil
	}

	metricsCfg := s.ca.Config().Metrics
	promAddr, err := metricsCfg.Address()
	if err != nil {
		return err
	}

	ms := NewMetricsServer(promAddr, s.status, s.logger)

	defer func() {
		ms.Stop()
		s.logger.Info("Shutdown metrics server complete")
		_ = s.ca.Stop()
		s.logger.Info("Shutdown compound auditor complete")
	}()

	go ms.Start()

	if err := s.ca.Start(); err != nil {
		return fmt.Errorf("failed to start compound auditor: %w", err)
	}

	s.logger.Info("Compound Checker Daemon is fully active!")

	<-s.interceptor.ShutdownChannel()

	return nil
}
