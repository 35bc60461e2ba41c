// Package evm talks to an Ethereum-compatible JSON-RPC node. The node acts as
// the wallet provider (its managed accounts sign) and as the ledger.
package evm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/filecoin-project/go-jsonrpc"
)

const (
	defaultRPCReqTimeout = 30 * time.Second
	ethNamespace         = "eth"
)

// EIP-1193 provider error codes and the JSON-RPC method-not-found code.
const (
	codeUserRejected      = 4001
	codeUnauthorized      = 4100
	codeUnsupportedMethod = 4200
	codeMethodNotFound    = -32601
)

var rpcErrors = jsonrpc.NewErrors()

func init() {
	rpcErrors.Register(codeUserRejected, new(*ErrUserRejectedRequest))
	rpcErrors.Register(codeUnauthorized, new(*ErrUnauthorized))
	rpcErrors.Register(codeUnsupportedMethod, new(*ErrUnsupportedMethod))
	rpcErrors.Register(codeMethodNotFound, new(*ErrMethodNotFound))
}

// ErrUserRejectedRequest signals that the account holder declined the request.
type ErrUserRejectedRequest struct{}

func (ErrUserRejectedRequest) Error() string { return "user rejected the request" }

// ErrUnauthorized signals that the node refused access to its accounts.
type ErrUnauthorized struct{}

func (ErrUnauthorized) Error() string { return "account access unauthorized" }

type ErrUnsupportedMethod struct{}

func (ErrUnsupportedMethod) Error() string { return "method not supported by provider" }

type ErrMethodNotFound struct{}

func (ErrMethodNotFound) Error() string { return "method not found" }

// ethAPI is the part of the eth namespace the client calls.
type ethAPI struct {
	RequestAccounts       func(ctx context.Context) ([]string, error)                            `rpc_method:"eth_requestAccounts"`
	Accounts              func(ctx context.Context) ([]string, error)                            `rpc_method:"eth_accounts"`
	Call                  func(ctx context.Context, call callArgs, block string) (string, error) `rpc_method:"eth_call"`
	SendTransaction       func(ctx context.Context, tx sendTransactionArgs) (string, error)      `rpc_method:"eth_sendTransaction"`
	GetTransactionReceipt func(ctx context.Context, hash string) (json.RawMessage, error)        `rpc_method:"eth_getTransactionReceipt"`
}

type callArgs struct {
	To   string `json:"to"`
	Data string `json:"data"`
}

type sendTransactionArgs struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value"`
	Data  string `json:"data,omitempty"`
}

// Client holds a JSON-RPC connection to the node.
type Client struct {
	eth            ethAPI
	closer         jsonrpc.ClientCloser
	requestTimeout time.Duration
}

// NewClient builds a client for the node at url. A non-empty token is sent
// as a bearer credential on every request.
func NewClient(ctx context.Context, url string, token string, timeout time.Duration) (*Client, error) {
	if url == "" {
		return nil, errors.New("rpc url is required")
	}

	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	c := &Client{requestTimeout: timeout}
	closer, err := jsonrpc.NewMergeClient(ctx, url, ethNamespace,
		[]interface{}{
			&c.eth,
		},
		header,
		jsonrpc.WithErrors(rpcErrors),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to rpc node: %w", err)
	}
	c.closer = closer

	return c, nil
}

func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
	}
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	timeout := c.requestTimeout
	if timeout <= 0 {
		timeout = defaultRPCReqTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (c *Client) requestAccounts(ctx context.Context) ([]string, error) {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	accounts, err := c.eth.RequestAccounts(ctx)
	if isUnsupported(err) {
		accounts, err = c.eth.Accounts(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("eth_requestAccounts: %w", err)
	}
	return accounts, nil
}

func (c *Client) call(ctx context.Context, args callArgs) (string, error) {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	result, err := c.eth.Call(ctx, args, "latest")
	if err != nil {
		return "", fmt.Errorf("eth_call: %w", err)
	}
	return result, nil
}

func (c *Client) sendTransaction(ctx context.Context, args sendTransactionArgs) (string, error) {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	hash, err := c.eth.SendTransaction(ctx, args)
	if err != nil {
		return "", fmt.Errorf("eth_sendTransaction: %w", err)
	}
	return hash, nil
}

func (c *Client) transactionReceipt(ctx context.Context, hash string) (json.RawMessage, error) {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	raw, err := c.eth.GetTransactionReceipt(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("eth_getTransactionReceipt: %w", err)
	}
	return raw, nil
}

func isUnsupported(err error) bool {
	return errors.As(err, new(*ErrMethodNotFound)) || errors.As(err, new(*ErrUnsupportedMethod))
}

func isUserRejection(err error) bool {
	return errors.As(err, new(*ErrUserRejectedRequest)) || errors.As(err, new(*ErrUnauthorized))
}

func isConnectionError(err error) bool {
	return errors.As(err, new(*jsonrpc.RPCConnectionError))
}
