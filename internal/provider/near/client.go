package near

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/oakencore/gringotts/internal/domain/entity"
	"github.com/oakencore/gringotts/internal/pkg/utils"
	"github.com/oakencore/gringotts/internal/provider/jsonrpc"
)

// DefaultRPCURL is the public NEAR mainnet endpoint.
const DefaultRPCURL = "https://rpc.mainnet.near.org"

// 1 NEAR = 10^24 yoctoNEAR.
const yoctoDecimals = 24

// Client fetches the native NEAR balance of an account over JSON-RPC.
// NEP-141 token balances would require per-contract calls and are not
// tracked.
type Client struct {
	rpc    *jsonrpc.Client
	logger *zap.Logger
}

// NewClient creates a NEAR client against the given endpoint, or the public
// mainnet endpoint when rpcURL is empty.
func NewClient(rpcURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if rpcURL == "" {
		rpcURL = DefaultRPCURL
	}
	return &Client{
		rpc:    jsonrpc.New(rpcURL, timeout, logger),
		logger: logger.Named("NearClient"),
	}
}

// Kind returns the NEAR provider tag.
func (c *Client) Kind() entity.ProviderKind { return entity.KindNear }

type viewAccountResult struct {
	Amount string `json:"amount"`
}

// FetchBalances returns the account's NEAR balance.
func (c *Client) FetchBalances(ctx context.Context, identifier string) ([]entity.RawBalance, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, entity.InvalidIdentifier(entity.KindNear, "empty NEAR account id")
	}

	params := map[string]string{
		"request_type": "view_account",
		"finality":     "final",
		"account_id":   identifier,
	}
	var result viewAccountResult
	if err := c.rpc.Call(ctx, "query", params, &result); err != nil {
		return nil, jsonrpc.Classify(entity.KindNear, err)
	}

	amount, err := utils.DecimalFromRawString(result.Amount, yoctoDecimals)
	if err != nil {
		return nil, entity.NewProviderError(entity.ProviderErrMalformedResponse, entity.KindNear, err)
	}
	return []entity.RawBalance{{
		Symbol:   "NEAR",
		Quantity: amount,
		Kind:     entity.KindNear,
	}}, nil
}
