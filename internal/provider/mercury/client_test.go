package mercury

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oakencore/gringotts/internal/domain/entity"
)

func TestClient_FetchBalances(t *testing.T) {
	t.Setenv(APIKeyEnv, "test-key")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/account/acc-1", r.URL.Path)
		assert.Equal(t, "Bearer secret-token:test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"availableBalance": 1234.56}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, zap.NewNop())
	balances, err := client.FetchBalances(context.Background(), "acc-1")

	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "USD", balances[0].Symbol)
	assert.Equal(t, "1234.56", balances[0].Quantity.String())
}

func TestClient_ListAccounts(t *testing.T) {
	t.Setenv(APIKeyEnv, "test-key")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts", r.URL.Path)
		assert.Equal(t, "Bearer secret-token:test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accounts": [
			{"id": "acc-1", "name": "Operating", "status": "active", "kind": "checking", "availableBalance": 100.5, "currentBalance": 120},
			{"id": "acc-2", "name": "Savings", "status": "active", "kind": "savings", "availableBalance": 5000, "currentBalance": 5000}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, zap.NewNop())
	accounts, err := client.ListAccounts(context.Background())

	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "acc-1", accounts[0].ID)
	assert.Equal(t, "Operating", accounts[0].Name)
	assert.Equal(t, "checking", accounts[0].Kind)
	assert.Equal(t, 120.0, accounts[0].CurrentBalance)
}

func TestClient_ListAccountsWithoutKey(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	client := NewClient("http://localhost:1", time.Second, zap.NewNop())
	_, err := client.ListAccounts(context.Background())

	var pe *entity.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, entity.ProviderErrUnreachable, pe.Kind)
}
