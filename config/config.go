package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/jessevdk/go-flags"

	"github.com/parastake/compound-checker/util"
)

const (
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
	defaultLogFilename    = "cchk.log"
	defaultConfigFileName = "cchk.conf"
	defaultQueryInterval  = 6 * time.Second
	defaultLogDirname     = "logs"
)

var (
	// DefaultCheckerDir specifies the default home directory for the checker:
	//   C:\Users\<username>\AppData\Local\ on Windows
	//   ~/.cchk on Linux
	//   ~/Library/Application Support/Cchk on MacOS
	DefaultCheckerDir = btcutil.AppDataDir("cchk", false)
)

type Config struct {
	LogLevel      string        `long:"loglevel" description:"Logging level for all subsystems" choice:"debug" choice:"info" choice:"warn" choice:"error" choice:"fatal"`
	LogFormat     string        `long:"logformat" description:"Format of the log lines" choice:"console" choice:"json" choice:"logfmt"`
	QueryInterval time.Duration `long:"queryinterval" description:"The interval between each poll for new blocks while auditing"`

	ChainConfig *ChainConfig `group:"chain" namespace:"chain"`

	ScenarioConfig *ScenarioConfig `group:"scenario" namespace:"scenario"`

	Metrics *MetricsConfig `group:"metrics" namespace:"metrics"`

	DevNodeConfig *DevNodeConfig `group:"devnode" namespace:"devnode"`
}

// LoadConfig initializes and parses the config using a config file.
//
// The configuration proceeds as follows:
//  1. Start with an empty config
//  2. Load the configuration file from the home directory
//  3. Validate the loaded values
func LoadConfig(homePath string) (*Config, error) {
	cfgFile := ConfigFile(homePath)
	if !util.FileExists(cfgFile) {
		return nil, fmt.Errorf("specified config file does "+
			"not exist in %s", cfgFile)
	}

	var cfg Config
	fileParser := flags.NewParser(&cfg, flags.Default)
	err := flags.NewIniParser(fileParser).ParseFile(cfgFile)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// WriteConfig writes the given configuration into the config file under
// the home directory, including comments and defaults
func WriteConfig(cfg *Config, homePath string) error {
	fileParser := flags.NewParser(cfg, flags.Default)
	return flags.NewIniParser(fileParser).WriteFile(ConfigFile(homePath), flags.IniIncludeComments|flags.IniIncludeDefaults)
}

// Validate check the given configuration to be sane. This makes sure no
// illegal values or combination of values are set.
func (cfg *Config) Validate() error {
	if cfg.QueryInterval <= 0 {
		return fmt.Errorf("the query interval should be positive")
	}

	if cfg.ChainConfig == nil {
		return fmt.Errorf("empty chain config")
	}
	if err := cfg.ChainConfig.Validate(); err != nil {
		return fmt.Errorf("invalid chain config: %w", err)
	}

	if cfg.ScenarioConfig == nil {
		return fmt.Errorf("empty scenario config")
	}
	if err := cfg.ScenarioConfig.Validate(); err != nil {
		return fmt.Errorf("invalid scenario config: %w", err)
	}

	if cfg.Metrics == nil {
		return fmt.Errorf("empty metrics config")
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("invalid metrics config: %w", err)
	}

	if cfg.DevNodeConfig == nil {
		return fmt.Errorf("empty devnode config")
	}
	if err := cfg.DevNodeConfig.Validate(); err != nil {
		return fmt.Errorf("invalid devnode config: %w", err)
	}

	return nil
}

func ConfigFile(homePath string) string {
	return filepath.Join(homePath, defaultConfigFileName)
}

func LogFile(homePath string) string {
	return filepath.Join(LogDir(homePath), defaultLogFilename)
}

func LogDir(homePath string) string {
	return filepath.Join(homePath, defaultLogDirname)
}

func DefaultConfigWithHomePath(homePath string) Config {
	chainCfg := DefaultChainConfig()
	scenarioCfg := DefaultScenarioConfig()
	metricsCfg := DefaultMetricsConfig()
	devNodeCfg := DefaultDevNodeConfig()
	cfg := Config{
		LogLevel:       defaultLogLevel,
		LogFormat:      defaultLogFormat,
		QueryInterval:  defaultQueryInterval,
		ChainConfig:    &chainCfg,
		ScenarioConfig: &scenarioCfg,
		Metrics:        &metricsCfg,
		DevNodeConfig:  &devNodeCfg,
	}

	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	return cfg
}

func DefaultConfig() Config {
	return DefaultConfigWithHomePath(DefaultCheckerDir)
}
