package mercury

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

// DefaultBaseURL is the Mercury banking API root.
const DefaultBaseURL = "https://api.mercury.com/api/v1"

// APIKeyEnv names the environment variable holding the Mercury API key.
const APIKeyEnv = "MERCURY_API_KEY"

// Client fetches available balances of Mercury bank accounts. The tracked
// identifier is the Mercury account id.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates a Mercury client. The API key is read from the
// MERCURY_API_KEY environment variable at call time so a key set after
// startup is still picked up.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
		logger: logger.Named("MercuryClient"),
	}
}

// Kind returns the Mercury provider tag.
func (c *Client) Kind() entity.ProviderKind { return entity.KindMercury }

type accountResponse struct {
	AvailableBalance float64 `json:"availableBalance"`
}

// Account is one Mercury bank account as returned by the accounts listing.
type Account struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Status           string  `json:"status"`
	Kind             string  `json:"kind"`
	AvailableBalance float64 `json:"availableBalance"`
	CurrentBalance   float64 `json:"currentBalance"`
}

type accountsResponse struct {
	Accounts []Account `json:"accounts"`
}

// ListAccounts returns every account visible to the configured API key.
// Used by the setup workflow to discover accounts worth tracking.
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	apiKey := utils.GetEnv(APIKeyEnv, "")
	if apiKey == "" {
		return nil, entity.NewProviderError(entity.ProviderErrUnreachable, entity.KindMercury,
			fmt.Errorf("%s is not set", APIKeyEnv))
	}

	var body accountsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer secret-token:"+apiKey).
		SetResult(&body).
		Get("/accounts")
	if err != nil {
		return nil, entity.ClassifyProviderError(entity.KindMercury, err)
	}
	switch {
	case resp.StatusCode() == http.StatusTooManyRequests:
		return nil, entity.NewProviderError(entity.ProviderErrRateLimited, entity.KindMercury,
			fmt.Errorf("api returned status %d", resp.StatusCode()))
	case resp.IsError():
		return nil, entity.NewProviderError(entity.ProviderErrUnreachable, entity.KindMercury,
			fmt.Errorf("api returned status %d", resp.StatusCode()))
	}
	return body.Accounts, nil
}

// FetchBalances returns the account's available USD balance.
func (c *Client) FetchBalances(ctx context.Context, identifier string) ([]entity.RawBalance, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, entity.InvalidIdentifier(entity.KindMercury, "empty Mercury account id")
	}
	apiKey := utils.GetEnv(APIKeyEnv, "")
	if apiKey == "" {
		return nil, entity.NewProviderError(entity.ProviderErrUnreachable, entity.KindMercury,
			fmt.Errorf("%s is not set", APIKeyEnv))
	}

	var account accountResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer secret-token:"+apiKey).
		SetResult(&account).
		Get("/account/" + identifier)
	if err != nil {
		return nil, entity.ClassifyProviderError(entity.KindMercury, err)
	}
	switch {
	case resp.StatusCode() == http.StatusTooManyRequests:
		return nil, entity.NewProviderError(entity.ProviderErrRateLimited, entity.KindMercury,
			fmt.Errorf("api returned status %d", resp.StatusCode()))
	case resp.StatusCode() == http.StatusNotFound:
		return nil, entity.InvalidIdentifier(entity.KindMercury, "unknown account id %s", identifier)
	case resp.IsError():
		return nil, entity.NewProviderError(entity.ProviderErrUnreachable, entity.KindMercury,
			fmt.Errorf("api returned status %d", resp.StatusCode()))
	}

	return []entity.RawBalance{{
		Symbol:   "USD",
		Quantity: decimal.NewFromFloat(account.AvailableBalance),
		Kind:     entity.KindMercury,
	}}, nil
}
