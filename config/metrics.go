package config

import (
	"fmt"
	"net"
	"time"
)

const (
	defaultMetricsPort           = 2113
	defaultMetricsHost           = "127.0.0.1"
	defaultMetricsUpdateInterval = 500 * time.Millisecond
)

// MetricsConfig defines the Prometheus server of the auditor
type MetricsConfig struct {
	Host           string        `long:"host" description:"IP of the Prometheus server"`
	Port           int           `long:"port" description:"Port of the Prometheus server"`
	UpdateInterval time.Duration `long:"updateinterval" description:"The interval of Prometheus metrics updated"`
}

func (cfg *MetricsConfig) Validate() error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}

	if ip := net.ParseIP(cfg.Host); ip == nil {
		return fmt.Errorf("invalid host: %v", cfg.Host)
	}

	if cfg.UpdateInterval <= 0 {
		return fmt.Errorf("the update interval should be positive")
	}

	return nil
}

func (cfg *MetricsConfig) Address() (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	return net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port)), nil
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Port:           defaultMetricsPort,
		Host:           defaultMetricsHost,
		UpdateInterval: defaultMetricsUpdateInterval,
	}
}
