// Package config resolves the CLI configuration from the config file, the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".sensor-access"
	envPrefix  = "SA"
)

const (
	KeyDescriptorSource      = "descriptor.source"
	KeyLedgerRPCURL          = "ledger.rpc_url"
	KeyLedgerTokenRef        = "ledger.token_ref"
	KeyLedgerPollInterval    = "ledger.poll_interval"
	KeyLedgerRequestTimeout  = "ledger.request_timeout"
	KeyVerifyBaseURL         = "verify.base_url"
	KeyVerifyTimeout         = "verify.timeout"
	KeyVerifyAutoRetries     = "verify.auto_retries"
	KeyStreamURL             = "stream.url"
	KeyStreamHandshakeTimout = "stream.handshake_timeout"
	KeyHistoryPath           = "history.path"
	KeyCredentialsDir        = "credentials.dir"
	KeyLogLevel              = "log.level"
	KeyLogFormat             = "log.format"
	KeyMetricsListen         = "metrics.listen"
)

type Config struct {
	DescriptorSource string
	Ledger           LedgerConfig
	Verify           VerifyConfig
	Stream           StreamConfig
	HistoryPath      string
	CredentialsDir   string
	Log              LogConfig
	MetricsListen    string
}

type LedgerConfig struct {
	RPCURL         string
	TokenRef       string
	PollInterval   time.Duration
	RequestTimeout time.Duration
}

type VerifyConfig struct {
	BaseURL     string
	Timeout     time.Duration
	AutoRetries int
}

type StreamConfig struct {
	URL              string
	HandshakeTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type Options struct {
	HomeDir string
	// DotEnvPath is loaded before reading the environment when it exists.
	// Variables already set in the process win.
	DotEnvPath string
}

func Dir(homeDir string) string {
	return filepath.Join(homeDir, configDir)
}

func Load(v *viper.Viper, opts Options) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	if opts.HomeDir == "" {
		return Config{}, errors.New("home directory is required")
	}

	if opts.DotEnvPath != "" {
		if err := godotenv.Load(opts.DotEnvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
	}

	dir := Dir(opts.HomeDir)
	setDefaults(v, dir)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		DescriptorSource: strings.TrimSpace(v.GetString(KeyDescriptorSource)),
		Ledger: LedgerConfig{
			RPCURL:         strings.TrimSpace(v.GetString(KeyLedgerRPCURL)),
			TokenRef:       strings.TrimSpace(v.GetString(KeyLedgerTokenRef)),
			PollInterval:   v.GetDuration(KeyLedgerPollInterval),
			RequestTimeout: v.GetDuration(KeyLedgerRequestTimeout),
		},
		Verify: VerifyConfig{
			BaseURL:     strings.TrimSpace(v.GetString(KeyVerifyBaseURL)),
			Timeout:     v.GetDuration(KeyVerifyTimeout),
			AutoRetries: v.GetInt(KeyVerifyAutoRetries),
		},
		Stream: StreamConfig{
			URL:              strings.TrimSpace(v.GetString(KeyStreamURL)),
			HandshakeTimeout: v.GetDuration(KeyStreamHandshakeTimout),
		},
		HistoryPath:    v.GetString(KeyHistoryPath),
		CredentialsDir: v.GetString(KeyCredentialsDir),
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		MetricsListen: strings.TrimSpace(v.GetString(KeyMetricsListen)),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault(KeyDescriptorSource, "deployedAddress.json")
	v.SetDefault(KeyLedgerRPCURL, "http://127.0.0.1:8545")
	v.SetDefault(KeyLedgerTokenRef, "")
	v.SetDefault(KeyLedgerPollInterval, time.Second)
	v.SetDefault(KeyLedgerRequestTimeout, 30*time.Second)
	v.SetDefault(KeyVerifyBaseURL, "http://localhost:8000")
	v.SetDefault(KeyVerifyTimeout, 10*time.Second)
	v.SetDefault(KeyVerifyAutoRetries, 1)
	v.SetDefault(KeyStreamURL, "ws://localhost:8000/ws")
	v.SetDefault(KeyStreamHandshakeTimout, 10*time.Second)
	v.SetDefault(KeyHistoryPath, filepath.Join(dir, "purchases.toml"))
	v.SetDefault(KeyCredentialsDir, filepath.Join(dir, "credentials"))
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyMetricsListen, "")
}

func (c Config) validate() error {
	if c.DescriptorSource == "" {
		return fmt.Errorf("%s is empty", KeyDescriptorSource)
	}
	if c.Ledger.RPCURL == "" {
		return fmt.Errorf("%s is empty", KeyLedgerRPCURL)
	}
	if c.Verify.BaseURL == "" {
		return fmt.Errorf("%s is empty", KeyVerifyBaseURL)
	}
	if c.Stream.URL == "" {
		return fmt.Errorf("%s is empty", KeyStreamURL)
	}
	if c.Verify.AutoRetries < 0 {
		return fmt.Errorf("%s must not be negative", KeyVerifyAutoRetries)
	}
	if c.HistoryPath == "" {
		return fmt.Errorf("%s is empty", KeyHistoryPath)
	}

	return nil
}
