package price

import (
	"context"
	"fmt"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/oakencore/gringotts/internal/domain/entity"
	"github.com/oakencore/gringotts/internal/pkg/utils"
)

// SurgeAPIKeyEnv names the environment variable holding the Surge API key
// (a Solana wallet address registered with Switchboard).
const SurgeAPIKeyEnv = "SURGE_API_KEY"

var surgeJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// SurgeSource quotes symbols against the Switchboard Surge feed. The USD
// pair is tried first; when the feed has no direct USD pair the USDT and
// USDC pairs are used instead, treated as 1:1 with USD.
type SurgeSource struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewSurgeSource creates the primary price source.
func NewSurgeSource(baseURL string, timeout time.Duration, logger *zap.Logger) *SurgeSource {
	return &SurgeSource{
		client: &fasthttp.Client{
			MaxConnsPerHost:     64,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		baseURL: baseURL,
		timeout: timeout,
		logger:  logger.Named("SurgeSource"),
	}
}

// Name identifies this source in the configured provider order.
func (s *SurgeSource) Name() string { return "surge" }

type surgePriceResponse struct {
	Pair  string  `json:"pair"`
	Value float64 `json:"value"`
}

// Quote returns the USD price of a symbol.
func (s *SurgeSource) Quote(ctx context.Context, symbol string) (entity.PriceQuote, error) {
	pairs := []string{symbol + "/USD", symbol + "/USDT", symbol + "/USDC"}

	var lastErr error
	for _, pair := range pairs {
		value, err := s.fetchPair(ctx, pair)
		if err != nil {
			lastErr = err
			continue
		}
		return entity.PriceQuote{
			Symbol:    symbol,
			PriceUSD:  decimal.NewFromFloat(value),
			FetchedAt: time.Now(),
			Source:    s.Name(),
		}, nil
	}
	return entity.PriceQuote{}, fmt.Errorf("surge has no pair for %s: %w", symbol, lastErr)
}

func (s *SurgeSource) fetchPair(ctx context.Context, pair string) (float64, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.baseURL + "/v1/price?pair=" + url.QueryEscape(pair))
	req.Header.SetMethod(fasthttp.MethodGet)
	if key := utils.GetEnv(SurgeAPIKeyEnv, ""); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	deadline := time.Now().Add(s.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := s.client.DoDeadline(req, resp, deadline); err != nil {
		if err == fasthttp.ErrTimeout {
			return 0, context.DeadlineExceeded
		}
		return 0, fmt.Errorf("surge request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return 0, fmt.Errorf("surge returned status %d for %s", resp.StatusCode(), pair)
	}

	var body surgePriceResponse
	if err := surgeJSON.Unmarshal(resp.Body(), &body); err != nil {
		return 0, fmt.Errorf("failed to decode surge response: %w", err)
	}
	if body.Value <= 0 {
		return 0, fmt.Errorf("surge returned non-positive price for %s", pair)
	}
	return body.Value, nil
}
