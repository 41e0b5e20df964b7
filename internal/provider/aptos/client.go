package aptos

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/oakencore/gringotts/internal/domain/entity"
	"github.com/oakencore/gringotts/internal/pkg/utils"
)

// DefaultBaseURL is the public Aptos mainnet fullnode API.
const DefaultBaseURL = "https://fullnode.mainnet.aptoslabs.com"

const (
	coinBalanceFunction = "0x1::coin::balance"
	aptosCoinType       = "0x1::aptos_coin::AptosCoin"
)

// 1 APT = 10^8 octas.
const octaDecimals = 8

// Client fetches APT balances through the fullnode view API.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates an Aptos client against the given fullnode, or the
// public mainnet fullnode when baseURL is empty.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
		logger: logger.Named("AptosClient"),
	}
}

// Kind returns the Aptos provider tag.
func (c *Client) Kind() entity.ProviderKind { return entity.KindAptos }

type viewRequest struct {
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []string `json:"arguments"`
}

// FetchBalances returns the address's APT balance. Accounts that have never
// registered the coin store make the view call fail with a 4xx; those are
// reported as a zero balance rather than an error.
func (c *Client) FetchBalances(ctx context.Context, identifier string) ([]entity.RawBalance, error) {
	if !strings.HasPrefix(identifier, "0x") {
		identifier = "0x" + identifier
	}

	var octas []string
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(viewRequest{
			Function:      coinBalanceFunction,
			TypeArguments: []string{aptosCoinType},
			Arguments:     []string{identifier},
		}).
		SetResult(&octas).
		Post("/v1/view")
	if err != nil {
		return nil, entity.ClassifyProviderError(entity.KindAptos, err)
	}
	if resp.StatusCode() == http.StatusTooManyRequests {
		return nil, entity.NewProviderError(entity.ProviderErrRateLimited, entity.KindAptos,
			fmt.Errorf("fullnode returned status %d", resp.StatusCode()))
	}
	if resp.IsError() || len(octas) == 0 {
		c.logger.Debug("view call failed, reporting zero balance",
			zap.String("address", identifier),
			zap.Int("status", resp.StatusCode()))
		return []entity.RawBalance{{Symbol: "APT", Quantity: decimal.Zero, Kind: entity.KindAptos}}, nil
	}

	amount, err := utils.DecimalFromRawString(octas[0], octaDecimals)
	if err != nil {
		return nil, entity.NewProviderError(entity.ProviderErrMalformedResponse, entity.KindAptos, err)
	}
	return []entity.RawBalance{{
		Symbol:   "APT",
		Quantity: amount,
		Kind:     entity.KindAptos,
	}}, nil
}
