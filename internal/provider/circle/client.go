package circle

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

// DefaultBaseURL is the Circle business API root.
const DefaultBaseURL = "https://api.circle.com"

// APIKeyEnv names the environment variable holding the Circle API key.
const APIKeyEnv = "CIRCLE_API_KEY"

// Client fetches the business account balances of a Circle account. Circle
// scopes the API key to one business account, so the tracked identifier is
// only a label.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates a Circle client. The API key is read from the
// CIRCLE_API_KEY environment variable at call time.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
		logger: logger.Named("CircleClient"),
	}
}

// Kind returns the Circle provider tag.
func (c *Client) Kind() entity.ProviderKind { return entity.KindCircle }

type balancesResponse struct {
	Data struct {
		Available []struct {
			Amount   string `json:"amount"`
			Currency string `json:"currency"`
		} `json:"available"`
	} `json:"data"`
}

// FetchBalances returns one balance per available currency.
func (c *Client) FetchBalances(ctx context.Context, identifier string) ([]entity.RawBalance, error) {
	apiKey := utils.GetEnv(APIKeyEnv, "")
	if apiKey == "" {
		return nil, entity.NewProviderError(entity.ProviderErrUnreachable, entity.KindCircle,
			fmt.Errorf("%s is not set", APIKeyEnv))
	}

	var body balancesResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+apiKey).
		SetResult(&body).
		Get("/v1/businessAccount/balances")
	if err != nil {
		return nil, entity.ClassifyProviderError(entity.KindCircle, err)
	}
	switch {
	case resp.StatusCode() == http.StatusTooManyRequests:
		return nil, entity.NewProviderError(entity.ProviderErrRateLimited, entity.KindCircle,
			fmt.Errorf("api returned status %d", resp.StatusCode()))
	case resp.StatusCode() == http.StatusUnauthorized:
		return nil, entity.InvalidIdentifier(entity.KindCircle, "api key rejected")
	case resp.IsError():
		return nil, entity.NewProviderError(entity.ProviderErrUnreachable, entity.KindCircle,
			fmt.Errorf("api returned status %d", resp.StatusCode()))
	}

	balances := make([]entity.RawBalance, 0, len(body.Data.Available))
	for _, avail := range body.Data.Available {
		amount, err := decimal.NewFromString(avail.Amount)
		if err != nil {
			return nil, entity.NewProviderError(entity.ProviderErrMalformedResponse, entity.KindCircle, err)
		}
		balances = append(balances, entity.RawBalance{
			Symbol:   strings.ToUpper(avail.Currency),
			Quantity: amount,
			Kind:     entity.KindCircle,
		})
	}
	return balances, nil
}
