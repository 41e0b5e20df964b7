package solana

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/oakencore/gringotts/internal/domain/entity"
	"github.com/oakencore/gringotts/internal/pkg/utils"
	"github.com/oakencore/gringotts/internal/provider/jsonrpc"
)

// DefaultRPCURL is the public Solana mainnet endpoint.
const DefaultRPCURL = "https://api.mainnet-beta.solana.com"

const tokenProgramID = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

const lamportDecimals = 9

// knownMints maps well-known SPL mints to their trading symbols. Balances
// on unknown mints are reported under the mint address and simply fail
// pricing.
var knownMints = map[string]string{
	"So11111111111111111111111111111111111111112":  "SOL",
	"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v": "USDC",
	"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB": "USDT",
	"mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So":  "MSOL",
	"7dHbWXmci3dT8UFYWYZweBLXgycu7Y3iL6trKn1Y7ARj": "stSOL",
	"SW1TCHLmRGTfW5xZknqQdpdarB8PD95sJYWpNp9TbFx":  "SWTCH",
	"jtojtomepa8beP8AuQc6eXt5FriJwfFMwQx2v2f9mCL":  "JTO",
	"GP2vH92rxSHWm2VzttZBZdeFnv9LyfFJYvPrAet6pump": "RAT",
}

// Client fetches SOL and SPL token balances over Solana JSON-RPC.
type Client struct {
	rpc    *jsonrpc.Client
	logger *zap.Logger
}

// NewClient creates a Solana client against the given endpoint, or the
// public mainnet endpoint when rpcURL is empty.
func NewClient(rpcURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if rpcURL == "" {
		rpcURL = DefaultRPCURL
	}
	return &Client{
		rpc:    jsonrpc.New(rpcURL, timeout, logger),
		logger: logger.Named("SolanaClient"),
	}
}

// Kind returns the Solana provider tag.
func (c *Client) Kind() entity.ProviderKind { return entity.KindSolana }

type balanceResult struct {
	Value uint64 `json:"value"`
}

type tokenAccountsResult struct {
	Value []struct {
		Account struct {
			Data struct {
				Parsed struct {
					Type string `json:"type"`
					Info struct {
						Mint        string `json:"mint"`
						TokenAmount struct {
							Amount   string `json:"amount"`
							Decimals int32  `json:"decimals"`
						} `json:"tokenAmount"`
					} `json:"info"`
				} `json:"parsed"`
			} `json:"data"`
		} `json:"account"`
	} `json:"value"`
}

// FetchBalances returns the SOL balance plus all non-zero SPL token
// balances held by the address.
func (c *Client) FetchBalances(ctx context.Context, identifier string) ([]entity.RawBalance, error) {
	if !looksLikeBase58Address(identifier) {
		return nil, entity.InvalidIdentifier(entity.KindSolana, "not a valid Solana address: %q", identifier)
	}

	var lamports balanceResult
	if err := c.rpc.Call(ctx, "getBalance", []interface{}{identifier}, &lamports); err != nil {
		return nil, classify(err)
	}

	balances := []entity.RawBalance{{
		Symbol:   "SOL",
		Quantity: utils.DecimalFromUint64(lamports.Value, lamportDecimals),
		Kind:     entity.KindSolana,
	}}

	var accounts tokenAccountsResult
	params := []interface{}{
		identifier,
		map[string]string{"programId": tokenProgramID},
		map[string]string{"encoding": "jsonParsed"},
	}
	if err := c.rpc.Call(ctx, "getTokenAccountsByOwner", params, &accounts); err != nil {
		return nil, classify(err)
	}

	for _, acct := range accounts.Value {
		parsed := acct.Account.Data.Parsed
		if parsed.Type != "account" {
			continue
		}
		amount, err := utils.DecimalFromRawString(parsed.Info.TokenAmount.Amount, parsed.Info.TokenAmount.Decimals)
		if err != nil {
			c.logger.Warn("Skipping token account with unparseable amount",
				zap.String("mint", parsed.Info.Mint), zap.Error(err))
			continue
		}
		if amount.IsZero() {
			continue
		}
		symbol, ok := knownMints[parsed.Info.Mint]
		if !ok {
			symbol = parsed.Info.Mint
		}
		balances = append(balances, entity.RawBalance{
			Symbol:   symbol,
			Quantity: amount,
			Kind:     entity.KindSolana,
		})
	}
	return balances, nil
}

func classify(err error) error {
	return jsonrpc.Classify(entity.KindSolana, err)
}

func looksLikeBase58Address(s string) bool {
	if len(s) < 32 || len(s) > 44 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '1' && c <= '9':
		case c >= 'A' && c <= 'H', c >= 'J' && c <= 'N', c >= 'P' && c <= 'Z':
		case c >= 'a' && c <= 'k', c >= 'm' && c <= 'z':
		default:
			return false
		}
	}
	return true
}
