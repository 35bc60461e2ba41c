package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bnema/sensor-access-cli/internal/domain"
)

const (
	verifyAccessPath        = "/verify-access"
	maxVerifyResponseBytes  = 1 << 16
	defaultVerifyReqTimeout = 10 * time.Second
)

// Client calls the backend verification endpoint.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

type verifyResponse struct {
	Message string `json:"message"`
}

// VerifyAccess asks the backend whether hash proves a purchase. A non-2xx
// status is a denial carrying the backend message; only a failure to get an
// answer at all is reported as unreachable.
func (c Client) VerifyAccess(ctx context.Context, hash domain.TxHash) (domain.AccessGrant, error) {
	if hash == "" {
		return domain.AccessGrant{}, errors.New("transaction hash is required")
	}

	endpoint, err := buildVerifyURL(c.BaseURL, hash)
	if err != nil {
		return domain.AccessGrant{}, err
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.AccessGrant{}, fmt.Errorf("create verify request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return domain.AccessGrant{}, fmt.Errorf("%w: %w", domain.ErrVerificationUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	message := decodeMessage(resp)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if message == "" {
			message = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return domain.AccessGrant{TxHash: hash, Granted: false, Reason: message}, nil
	}

	return domain.AccessGrant{TxHash: hash, Granted: true, Reason: message}, nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	timeout := c.RequestTimeout
	if timeout <= 0 {
		timeout = defaultVerifyReqTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func decodeMessage(resp *http.Response) string {
	var payload verifyResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxVerifyResponseBytes)).Decode(&payload); err != nil {
		return ""
	}
	return payload.Message
}

func buildVerifyURL(baseURL string, hash domain.TxHash) (string, error) {
	if baseURL == "" {
		return "", errors.New("verification base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse verification base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("verification base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("verification base url host is required")
	}

	endpoint, err := parsed.Parse(verifyAccessPath)
	if err != nil {
		return "", fmt.Errorf("parse verification path: %w", err)
	}
	query := endpoint.Query()
	query.Set("tx_hash", string(hash))
	endpoint.RawQuery = query.Encode()

	return endpoint.String(), nil
}
