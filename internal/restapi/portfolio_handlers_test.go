package restapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oakencore/gringotts/internal/app/port"
	"github.com/oakencore/gringotts/internal/config"
	"github.com/oakencore/gringotts/internal/domain/entity"
	"github.com/oakencore/gringotts/internal/service"
)

type stubProvider struct{ kind entity.ProviderKind }

func (s *stubProvider) Kind() entity.ProviderKind { return s.kind }

func (s *stubProvider) FetchBalances(context.Context, string) ([]entity.RawBalance, error) {
	return []entity.RawBalance{{
		Symbol:   "SOL",
		Quantity: decimal.RequireFromString("2.5"),
		Kind:     s.kind,
	}}, nil
}

type stubRegistry struct{ provider port.ProviderClient }

func (s *stubRegistry) Client(kind entity.ProviderKind) (port.ProviderClient, error) {
	return s.provider, nil
}

type stubStore struct{ accounts []entity.TrackedAccount }

func (s *stubStore) LoadAll() ([]entity.TrackedAccount, error) { return s.accounts, nil }

type stubEnricher struct{}

func (stubEnricher) Enrich(_ context.Context, results []entity.AccountResult) []entity.AccountResult {
	return results
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Query.SkipPricing = true
	store := &stubStore{accounts: []entity.TrackedAccount{
		{Name: "Hot", Identifier: "addr", Kind: entity.KindSolana, Company: "Acme"},
	}}
	registry := &stubRegistry{provider: &stubProvider{kind: entity.KindSolana}}
	qs := service.NewQueryService(store, registry, stubEnricher{}, cfg, zap.NewNop())

	return SetupRouter(NewPortfolioHandler(qs), zap.NewNop())
}

func TestHealthz(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetPortfolio(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body APIPortfolioResponse
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Data.Portfolio)
	assert.Equal(t, 1, body.Data.Portfolio.Queried)
	assert.Equal(t, 1, body.Data.Portfolio.Succeeded)
	require.Len(t, body.Data.Portfolio.Groups, 1)
	assert.Equal(t, "Acme", body.Data.Portfolio.Groups[0].Company)
	assert.Equal(t, "Portfolio retrieved successfully.", body.StatusMessage)
}

func TestGetAccounts(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body APIAccountsResponse
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Accounts, 1)
	assert.Equal(t, "Hot", body.Data.Accounts[0].Name)
}
