package evm

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/oakencore/gringotts/internal/domain/entity"
	"github.com/oakencore/gringotts/internal/pkg/utils"
)

// ERC20 ABI minimal part for balanceOf
const erc20ABI = `[{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}]`

var (
	parsedERC20ABI  abi.ABI
	parsedERC20Once sync.Once
	erc20MethodID   []byte
)

func initParsedERC20ABI() {
	parsedERC20Once.Do(func() {
		var err error
		parsedERC20ABI, err = abi.JSON(strings.NewReader(erc20ABI))
		if err != nil {
			panic(fmt.Sprintf("failed to parse ERC20 ABI: %v", err))
		}
		balanceOfMethod, ok := parsedERC20ABI.Methods["balanceOf"]
		if !ok {
			panic("balanceOf method not found in parsed ERC20 ABI")
		}
		erc20MethodID = balanceOfMethod.ID
	})
}

// Client queries native and ERC20 balances on one EVM-compatible chain
// through a single JSON-RPC batch call.
type Client struct {
	ethClient *ethclient.Client
	def       ChainDefinition
	logger    *zap.Logger
}

// NewClient dials the chain's RPC endpoints in order, preferring an
// override URL when configured, and returns a client for the first
// endpoint that connects.
func NewClient(def ChainDefinition, overrideRPCURL string, connectTimeout time.Duration, logger *zap.Logger) (*Client, error) {
	initParsedERC20ABI()

	rpcURLs := append([]string{def.PrimaryRPCURL}, def.FallbackRPCURLs...)
	if overrideRPCURL != "" {
		rpcURLs = append([]string{overrideRPCURL}, rpcURLs...)
	}

	var lastErr error
	for _, rpcURL := range rpcURLs {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		client, err := ethclient.DialContext(ctx, rpcURL)
		cancel()
		if err == nil {
			return &Client{
				ethClient: client,
				def:       def,
				logger:    logger.Named("EVMClient").With(zap.String("chain", string(def.Kind))),
			}, nil
		}
		lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}
	return nil, fmt.Errorf("all RPC connection attempts failed for %s: %w", def.Name, lastErr)
}

// Kind returns the chain kind this client serves.
func (c *Client) Kind() entity.ProviderKind { return c.def.Kind }

// FetchBalances returns the native balance plus the chain's common token
// balances for a wallet. The native balance is always reported, zero token
// balances are skipped.
func (c *Client) FetchBalances(ctx context.Context, identifier string) ([]entity.RawBalance, error) {
	if !common.IsHexAddress(identifier) {
		return nil, entity.InvalidIdentifier(c.def.Kind, "not a valid EVM address: %q", identifier)
	}
	wallet := common.HexToAddress(identifier)

	batchElems := make([]rpc.BatchElem, 0, 1+len(c.def.Tokens))
	batchElems = append(batchElems, rpc.BatchElem{
		Method: "eth_getBalance",
		Args:   []interface{}{wallet, "latest"},
		Result: new(*hexutil.Big),
	})
	for _, token := range c.def.Tokens {
		callData := append(append([]byte{}, erc20MethodID...), common.LeftPadBytes(wallet.Bytes(), 32)...)
		callArgs := map[string]interface{}{
			"to":   common.HexToAddress(token.Address),
			"data": hexutil.Bytes(callData),
		}
		batchElems = append(batchElems, rpc.BatchElem{
			Method: "eth_call",
			Args:   []interface{}{callArgs, "latest"},
			Result: new(hexutil.Bytes),
		})
	}

	if err := c.ethClient.Client().BatchCallContext(ctx, batchElems); err != nil {
		return nil, entity.ClassifyProviderError(c.def.Kind, fmt.Errorf("RPC batch call failed: %w", err))
	}

	if batchElems[0].Error != nil {
		return nil, entity.ClassifyProviderError(c.def.Kind,
			fmt.Errorf("failed to fetch native balance for %s: %w", identifier, batchElems[0].Error))
	}
	nativeResult, ok := batchElems[0].Result.(**hexutil.Big)
	if !ok || nativeResult == nil || *nativeResult == nil {
		return nil, entity.NewProviderError(entity.ProviderErrMalformedResponse, c.def.Kind,
			fmt.Errorf("unexpected native balance result for %s", identifier))
	}

	balances := []entity.RawBalance{{
		Symbol:   c.def.NativeSymbol,
		Quantity: utils.DecimalFromBigInt((*big.Int)(*nativeResult), c.def.NativeDecimals),
		Kind:     c.def.Kind,
	}}

	for i, token := range c.def.Tokens {
		elem := batchElems[i+1]
		if elem.Error != nil {
			c.logger.Warn("Token balance sub-request failed",
				zap.String("token", token.Symbol),
				zap.String("wallet", identifier),
				zap.Error(elem.Error))
			continue
		}
		raw, ok := elem.Result.(*hexutil.Bytes)
		if !ok || raw == nil || len(*raw) == 0 {
			continue
		}
		unpacked, err := parsedERC20ABI.Unpack("balanceOf", *raw)
		if err != nil || len(unpacked) == 0 {
			c.logger.Warn("Failed to unpack balanceOf result",
				zap.String("token", token.Symbol), zap.Error(err))
			continue
		}
		amount, ok := unpacked[0].(*big.Int)
		if !ok || amount.Sign() == 0 {
			continue
		}
		balances = append(balances, entity.RawBalance{
			Symbol:   token.Symbol,
			Quantity: utils.DecimalFromBigInt(amount, token.Decimals),
			Kind:     c.def.Kind,
		})
	}
	return balances, nil
}
