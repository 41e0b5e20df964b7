package sui

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/oakencore/gringotts/internal/domain/entity"
	"github.com/oakencore/gringotts/internal/pkg/utils"
	"github.com/oakencore/gringotts/internal/provider/jsonrpc"
)

// DefaultRPCURL is the public Sui mainnet fullnode.
const DefaultRPCURL = "https://fullnode.mainnet.sui.io"

// suiCoinType identifies the native SUI coin on chain.
const suiCoinType = "0x2::sui::SUI"

// 1 SUI = 10^9 MIST.
const mistDecimals = 9

// Client fetches native SUI balances via the suix_getBalance RPC.
type Client struct {
	rpc    *jsonrpc.Client
	logger *zap.Logger
}

// NewClient creates a Sui client against the given fullnode, or the public
// mainnet fullnode when rpcURL is empty.
func NewClient(rpcURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if rpcURL == "" {
		rpcURL = DefaultRPCURL
	}
	return &Client{
		rpc:    jsonrpc.New(rpcURL, timeout, logger),
		logger: logger.Named("SuiClient"),
	}
}

// Kind returns the Sui provider tag.
func (c *Client) Kind() entity.ProviderKind { return entity.KindSui }

type balanceResult struct {
	CoinType     string `json:"coinType"`
	TotalBalance string `json:"totalBalance"`
}

// FetchBalances returns the address's SUI balance.
func (c *Client) FetchBalances(ctx context.Context, identifier string) ([]entity.RawBalance, error) {
	if !strings.HasPrefix(identifier, "0x") {
		return nil, entity.InvalidIdentifier(entity.KindSui, "Sui address must start with 0x: %s", identifier)
	}

	var result balanceResult
	if err := c.rpc.Call(ctx, "suix_getBalance", []any{identifier, suiCoinType}, &result); err != nil {
		return nil, jsonrpc.Classify(entity.KindSui, err)
	}

	amount, err := utils.DecimalFromRawString(result.TotalBalance, mistDecimals)
	if err != nil {
		return nil, entity.NewProviderError(entity.ProviderErrMalformedResponse, entity.KindSui, err)
	}
	return []entity.RawBalance{{
		Symbol:   "SUI",
		Quantity: amount,
		Kind:     entity.KindSui,
	}}, nil
}
