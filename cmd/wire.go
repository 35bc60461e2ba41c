package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/bnema/sensor-access-cli/internal/adapters/descriptor"
	"github.com/bnema/sensor-access-cli/internal/adapters/ledger/evm"
	tomlrepo "github.com/bnema/sensor-access-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/sensor-access-cli/internal/adapters/secrets/chain"
	"github.com/bnema/sensor-access-cli/internal/adapters/stream/websocket"
	"github.com/bnema/sensor-access-cli/internal/adapters/verify/httpapi"
	"github.com/bnema/sensor-access-cli/internal/application"
	"github.com/bnema/sensor-access-cli/internal/config"
	"github.com/bnema/sensor-access-cli/internal/logging"
	"github.com/bnema/sensor-access-cli/internal/metrics"
	"github.com/bnema/sensor-access-cli/internal/ports"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	dotEnvFile      = ".env"
	defaultTokenKey = "sensor-access/rpc-token"
)

type app struct {
	cfg         config.Config
	logger      *logrus.Logger
	metrics     *metrics.Collectors
	secretStore ports.SecretStore
	history     *application.PurchaseHistory
	clock       ports.Clock

	mu      sync.Mutex
	closers []func()
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, err := config.Load(viper.New(), config.Options{HomeDir: homeDir, DotEnvPath: dotEnvFile})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	entry := logrus.NewEntry(logger)

	secretStore, err := chainstore.NewPassFirstWithFileFallback(cfg.CredentialsDir, logging.Component(entry, "credentials"))
	if err != nil {
		return nil, fmt.Errorf("wire credential store chain: %w", err)
	}

	purchaseLog, err := tomlrepo.NewPurchaseLog(cfg.HistoryPath)
	if err != nil {
		return nil, fmt.Errorf("wire purchase log: %w", err)
	}

	clock := ports.SystemClock{}

	return &app{
		cfg:         cfg,
		logger:      logger,
		metrics:     metrics.New(),
		secretStore: secretStore,
		history:     application.NewPurchaseHistory(purchaseLog, clock),
		clock:       clock,
	}, nil
}

func (a *app) log() *logrus.Entry {
	return logrus.NewEntry(a.logger)
}

func (a *app) tokenKey() string {
	if a.cfg.Ledger.TokenRef != "" {
		return a.cfg.Ledger.TokenRef
	}
	return defaultTokenKey
}

func (a *app) configLoader() *application.ConfigLoader {
	source := descriptor.NewSource(a.cfg.DescriptorSource, a.cfg.Ledger.RequestTimeout)
	return application.NewConfigLoader(source, a.log())
}

func (a *app) rpcClient(ctx context.Context) (*evm.Client, error) {
	token, err := chainstore.ResolveToken(ctx, a.secretStore, a.cfg.Ledger.TokenRef)
	if err != nil {
		return nil, fmt.Errorf("ledger token: %w", err)
	}

	client, err := evm.NewClient(ctx, a.cfg.Ledger.RPCURL, token, a.cfg.Ledger.RequestTimeout)
	if err != nil {
		return nil, err
	}
	a.onClose(client.Close)

	return client, nil
}

func (a *app) onClose(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closers = append(a.closers, fn)
}

// close releases clients opened by the command, newest first.
func (a *app) close() {
	a.mu.Lock()
	closers := a.closers
	a.closers = nil
	a.mu.Unlock()

	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}

func (a *app) verifier() *application.AccessVerifier {
	client := httpapi.Client{
		BaseURL:        a.cfg.Verify.BaseURL,
		RequestTimeout: a.cfg.Verify.Timeout,
	}
	return application.NewAccessVerifier(client, a.cfg.Verify.AutoRetries, a.metrics, a.log())
}

func (a *app) components(ctx context.Context) (application.Components, error) {
	client, err := a.rpcClient(ctx)
	if err != nil {
		return application.Components{}, err
	}

	dialer := websocket.Dialer{
		URL:              a.cfg.Stream.URL,
		HandshakeTimeout: a.cfg.Stream.HandshakeTimeout,
	}

	return application.Components{
		Config:   a.configLoader(),
		Wallet:   application.NewWalletSession(evm.NewWalletProvider(client), a.log()),
		Purchase: application.NewPurchaseFlow(evm.NewLedger(client, a.cfg.Ledger.PollInterval), a.clock, a.metrics, a.log()),
		Verifier: a.verifier(),
		Stream:   application.NewStreamSession(dialer, a.metrics, a.log()),
	}, nil
}

func (a *app) newOrchestrator(ctx context.Context, onChange func(application.SessionView)) (*application.AccessOrchestrator, error) {
	components, err := a.components(ctx)
	if err != nil {
		return nil, err
	}

	opts := []application.Option{
		application.WithHistory(a.history),
		application.WithMetrics(a.metrics),
		application.WithLogger(a.log()),
	}
	if onChange != nil {
		opts = append(opts, application.WithOnChange(onChange))
	}

	return application.NewAccessOrchestrator(components, opts...), nil
}
