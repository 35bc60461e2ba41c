// Package descriptor loads the deployed contract artifact from a local file
// or an HTTP(S) URL.
package descriptor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/bnema/sensor-access-cli/internal/ports"
)

const (
	maxDescriptorBytes       = 4 << 20
	defaultDescriptorTimeout = 15 * time.Second
)

// FileSource reads the artifact written by the deployment script.
type FileSource struct {
	Path string
}

func (s FileSource) FetchDescriptor(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Path == "" {
		return nil, errors.New("descriptor path is required")
	}

	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open descriptor: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxDescriptorBytes))
	if err != nil {
		return nil, fmt.Errorf("read descriptor: %w", err)
	}
	return data, nil
}

// HTTPSource fetches the artifact as served next to the frontend.
type HTTPSource struct {
	URL            string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

func (s HTTPSource) FetchDescriptor(ctx context.Context) ([]byte, error) {
	if s.URL == "" {
		return nil, errors.New("descriptor url is required")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		timeout := s.RequestTimeout
		if timeout <= 0 {
			timeout = defaultDescriptorTimeout
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create descriptor request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch descriptor: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch descriptor: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDescriptorBytes))
	if err != nil {
		return nil, fmt.Errorf("read descriptor response: %w", err)
	}
	return data, nil
}

// NewSource picks an HTTP source for http(s) locations and a file source
// otherwise.
func NewSource(location string, timeout time.Duration) ports.DescriptorSource {
	if parsed, err := url.Parse(location); err == nil {
		scheme := strings.ToLower(parsed.Scheme)
		if (scheme == "http" || scheme == "https") && parsed.Host != "" {
			return HTTPSource{URL: location, RequestTimeout: timeout}
		}
	}
	return FileSource{Path: location}
}
