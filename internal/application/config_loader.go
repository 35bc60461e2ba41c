package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/bnema/sensor-access-cli/internal/logging"
	"github.com/bnema/sensor-access-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

type descriptorArtifact struct {
	Address string          `json:"address"`
	ABI     json.RawMessage `json:"abi"`
}

// ConfigLoader fetches the contract descriptor once and caches the outcome,
// failures included, for the lifetime of the process.
type ConfigLoader struct {
	source ports.DescriptorSource
	log    *logrus.Entry

	once       sync.Once
	descriptor domain.ContractDescriptor
	err        error
}

func NewConfigLoader(source ports.DescriptorSource, log *logrus.Entry) *ConfigLoader {
	return &ConfigLoader{source: source, log: logging.Component(log, "config_loader")}
}

func (l *ConfigLoader) Load(ctx context.Context) (domain.ContractDescriptor, error) {
	l.once.Do(func() {
		l.descriptor, l.err = l.load(ctx)
		if l.err != nil {
			l.log.WithError(l.err).Error("contract descriptor unavailable")
			return
		}
		l.log.WithField("address", l.descriptor.Address).Info("contract descriptor loaded")
	})

	return l.descriptor, l.err
}

func (l *ConfigLoader) load(ctx context.Context) (domain.ContractDescriptor, error) {
	if l.source == nil {
		return domain.ContractDescriptor{}, fmt.Errorf("%w: no descriptor source", domain.ErrConfigUnavailable)
	}

	raw, err := l.source.FetchDescriptor(ctx)
	if err != nil {
		return domain.ContractDescriptor{}, fmt.Errorf("%w: fetch descriptor: %w", domain.ErrConfigUnavailable, err)
	}

	var artifact descriptorArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return domain.ContractDescriptor{}, fmt.Errorf("%w: decode descriptor: %w", domain.ErrConfigUnavailable, err)
	}

	descriptor := domain.ContractDescriptor{
		Address: domain.Address(artifact.Address),
		ABI:     artifact.ABI,
	}
	if err := descriptor.Validate(); err != nil {
		return domain.ContractDescriptor{}, fmt.Errorf("%w: %w", domain.ErrConfigUnavailable, err)
	}

	return descriptor, nil
}
