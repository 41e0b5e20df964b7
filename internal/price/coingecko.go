package price

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/oakencore/gringotts/internal/domain/entity"
)

var geckoJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// geckoIDs maps the asset symbols we track to CoinGecko coin ids.
var geckoIDs = map[string]string{
	"SOL":   "solana",
	"ETH":   "ethereum",
	"MATIC": "matic-network",
	"POL":   "matic-network",
	"BNB":   "binancecoin",
	"AVAX":  "avalanche-2",
	"CORE":  "coredaoorg",
	"NEAR":  "near",
	"APT":   "aptos",
	"SUI":   "sui",
	"USDC":  "usd-coin",
	"USDT":  "tether",
	"DAI":   "dai",
	"MSOL":  "msol",
	"STSOL": "lido-staked-sol",
	"JTO":   "jito-governance-token",
}

// GeckoSource quotes symbols via the CoinGecko simple-price endpoint. It is
// the fallback behind Surge and only knows the symbols in its id map.
type GeckoSource struct {
	client     *fasthttp.Client
	baseURL    string
	vsCurrency string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewGeckoSource creates the fallback price source.
func NewGeckoSource(baseURL, vsCurrency string, timeout time.Duration, logger *zap.Logger) *GeckoSource {
	return &GeckoSource{
		client: &fasthttp.Client{
			MaxConnsPerHost:     64,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		baseURL:    baseURL,
		vsCurrency: vsCurrency,
		timeout:    timeout,
		logger:     logger.Named("GeckoSource"),
	}
}

// Name identifies this source in the configured provider order.
func (g *GeckoSource) Name() string { return "coingecko" }

// Quote returns the USD price of a symbol.
func (g *GeckoSource) Quote(ctx context.Context, symbol string) (entity.PriceQuote, error) {
	id, ok := geckoIDs[strings.ToUpper(symbol)]
	if !ok {
		return entity.PriceQuote{}, fmt.Errorf("coingecko has no id for symbol %s", symbol)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s", g.baseURL, id, g.vsCurrency))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(g.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := g.client.DoDeadline(req, resp, deadline); err != nil {
		if err == fasthttp.ErrTimeout {
			return entity.PriceQuote{}, context.DeadlineExceeded
		}
		return entity.PriceQuote{}, fmt.Errorf("coingecko request failed: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return entity.PriceQuote{}, fmt.Errorf("coingecko returned status %d", resp.StatusCode())
	}

	var body map[string]map[string]float64
	if err := geckoJSON.Unmarshal(resp.Body(), &body); err != nil {
		return entity.PriceQuote{}, fmt.Errorf("failed to decode coingecko response: %w", err)
	}
	value, ok := body[id][g.vsCurrency]
	if !ok || value <= 0 {
		return entity.PriceQuote{}, fmt.Errorf("coingecko returned no %s price for %s", g.vsCurrency, id)
	}

	return entity.PriceQuote{
		Symbol:    symbol,
		PriceUSD:  decimal.NewFromFloat(value),
		FetchedAt: time.Now(),
		Source:    g.Name(),
	}, nil
}
