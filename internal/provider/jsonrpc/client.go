package jsonrpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrRateLimited marks an HTTP 429 from the endpoint; callers translate it
// into their provider error taxonomy.
var ErrRateLimited = errors.New("rate limited by endpoint")

// ErrMalformed marks a response body that could not be decoded.
var ErrMalformed = errors.New("malformed response")

// RPCError is a JSON-RPC level error returned by the node.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type request struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      int         `json:"id"`
}

type response struct {
	Result jsoniter.RawMessage `json:"result"`
	Error  *RPCError           `json:"error"`
}

// Client is a minimal JSON-RPC 2.0 client over fasthttp, shared by the
// Solana, Sui, NEAR and Starknet providers.
type Client struct {
	client   *fasthttp.Client
	endpoint string
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates a JSON-RPC client for one node endpoint.
func New(endpoint string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		client:   &fasthttp.Client{},
		endpoint: endpoint,
		timeout:  timeout,
		logger:   logger.Named("JSONRPCClient"),
	}
}

// Endpoint returns the node URL this client talks to.
func (c *Client) Endpoint() string { return c.endpoint }

// Call executes one JSON-RPC method and decodes its result. A node-level
// error is returned as *RPCError; transport and decode failures wrap
// ErrRateLimited / ErrMalformed where they can be classified.
func (c *Client) Call(ctx context.Context, method string, params interface{}, result interface{}) error {
	body, err := json.Marshal(request{JSONRPC: "2.0", Method: method, Params: params, ID: 1})
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(c.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			if errors.Is(err, fasthttp.ErrTimeout) {
				return fmt.Errorf("%s to %s: %w", method, c.endpoint, context.DeadlineExceeded)
			}
			return fmt.Errorf("failed to execute %s against %s: %w", method, c.endpoint, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			return fmt.Errorf("failed to execute %s against %s: %w", method, c.endpoint, err)
		}
	}

	statusCode := resp.StatusCode()
	if statusCode == fasthttp.StatusTooManyRequests {
		return fmt.Errorf("%s to %s: %w", method, c.endpoint, ErrRateLimited)
	}
	if statusCode != fasthttp.StatusOK {
		return fmt.Errorf("%s to %s returned status %d", method, c.endpoint, statusCode)
	}

	var rpcResp response
	if err := json.Unmarshal(resp.Body(), &rpcResp); err != nil {
		c.logger.Debug("Failed to decode JSON-RPC envelope",
			zap.String("method", method), zap.Error(err))
		return fmt.Errorf("decoding %s response: %w: %v", method, ErrMalformed, err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if rpcResp.Result == nil {
		return fmt.Errorf("%s response: %w: no result", method, ErrMalformed)
	}
	if result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("decoding %s result: %w: %v", method, ErrMalformed, err)
		}
	}
	return nil
}
