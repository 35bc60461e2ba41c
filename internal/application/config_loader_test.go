package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/bnema/sensor-access-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoaderLoadsOnceAndCaches(t *testing.T) {
	source := mocks.NewMockDescriptorSource(t)
	source.EXPECT().FetchDescriptor(mockAnyContext()).Return(testDescriptorJSON("0xABC"), nil).Once()
	loader := NewConfigLoader(source, nil)

	first, err := loader.Load(context.Background())
	require.NoError(t, err)
	second, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.Address("0xABC"), first.Address)
	assert.Equal(t, first, second)
	assert.True(t, first.HasFunction("accessPrice"))
}

func TestConfigLoaderFailuresAreCachedAndClassified(t *testing.T) {
	tests := []struct {
		name    string
		raw     []byte
		err     error
		message string
	}{
		{name: "fetch fails", err: errors.New("404 Not Found"), message: "fetch descriptor"},
		{name: "not json", raw: []byte(`<html>`), message: "decode descriptor"},
		{name: "missing address", raw: []byte(`{"abi":[{"type":"function","name":"accessPrice"}]}`), message: "contract address is required"},
		{name: "missing abi", raw: []byte(`{"address":"0xABC"}`), message: "contract abi is not valid json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := mocks.NewMockDescriptorSource(t)
			source.EXPECT().FetchDescriptor(mockAnyContext()).Return(tt.raw, tt.err).Once()
			loader := NewConfigLoader(source, nil)

			_, err := loader.Load(context.Background())
			require.ErrorIs(t, err, domain.ErrConfigUnavailable)
			assert.Contains(t, err.Error(), tt.message)

			_, again := loader.Load(context.Background())
			assert.Equal(t, err, again)
		})
	}
}

func TestConfigLoaderWithoutSource(t *testing.T) {
	_, err := NewConfigLoader(nil, nil).Load(context.Background())
	require.ErrorIs(t, err, domain.ErrConfigUnavailable)
}
