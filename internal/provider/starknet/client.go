package starknet

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/oakencore/gringotts/internal/domain/entity"
	"github.com/oakencore/gringotts/internal/pkg/utils"
	"github.com/oakencore/gringotts/internal/provider/jsonrpc"
)

// DefaultRPCURL is a public Starknet mainnet JSON-RPC endpoint.
const DefaultRPCURL = "https://free-rpc.nethermind.io/mainnet-juno"

const (
	// ethContractAddress is the canonical ETH token contract on Starknet.
	ethContractAddress = "0x049d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7"
	// balanceOfSelector is the starknet_keccak of "balanceOf".
	balanceOfSelector = "0x2e4263afad30923c891518314c3c95dbe830a16874e8abc5777a9a20b54c76e"
)

const ethDecimals = 18

// Client fetches ETH balances on Starknet by calling balanceOf on the ETH
// token contract.
type Client struct {
	rpc    *jsonrpc.Client
	logger *zap.Logger
}

// NewClient creates a Starknet client against the given endpoint, or a
// public mainnet endpoint when rpcURL is empty.
func NewClient(rpcURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if rpcURL == "" {
		rpcURL = DefaultRPCURL
	}
	return &Client{
		rpc:    jsonrpc.New(rpcURL, timeout, logger),
		logger: logger.Named("StarknetClient"),
	}
}

// Kind returns the Starknet provider tag.
func (c *Client) Kind() entity.ProviderKind { return entity.KindStarknet }

type callRequest struct {
	ContractAddress    string   `json:"contract_address"`
	EntryPointSelector string   `json:"entry_point_selector"`
	Calldata           []string `json:"calldata"`
}

// FetchBalances returns the address's ETH balance on Starknet. Uint256
// return values are split across two felts; holdings fit in the low felt
// so only the first element is read.
func (c *Client) FetchBalances(ctx context.Context, identifier string) ([]entity.RawBalance, error) {
	if !strings.HasPrefix(identifier, "0x") {
		return nil, entity.InvalidIdentifier(entity.KindStarknet, "Starknet address must start with 0x: %s", identifier)
	}

	params := []any{
		callRequest{
			ContractAddress:    ethContractAddress,
			EntryPointSelector: balanceOfSelector,
			Calldata:           []string{identifier},
		},
		"latest",
	}
	var felts []string
	if err := c.rpc.Call(ctx, "starknet_call", params, &felts); err != nil {
		return nil, jsonrpc.Classify(entity.KindStarknet, err)
	}
	if len(felts) == 0 {
		return nil, entity.NewProviderError(entity.ProviderErrMalformedResponse, entity.KindStarknet,
			errors.New("starknet_call returned no felts"))
	}

	amount, err := utils.DecimalFromHex(felts[0], ethDecimals)
	if err != nil {
		return nil, entity.NewProviderError(entity.ProviderErrMalformedResponse, entity.KindStarknet, err)
	}
	return []entity.RawBalance{{
		Symbol:   "ETH",
		Quantity: amount,
		Kind:     entity.KindStarknet,
	}}, nil
}
