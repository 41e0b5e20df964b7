package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakencore/gringotts/internal/domain/entity"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "addresses.json"))
	require.NoError(t, err)
	return store
}

func TestFileStore_MissingFileIsEmptyBook(t *testing.T) {
	store := tempStore(t)

	accounts, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestFileStore_AddAndLoad(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, store.AddAddress("Acme", "Hot", "So11111111111111111111111111111111111111112", "solana"))
	require.NoError(t, store.AddBankingAccount("Acme", "Ops", "acct-123", "mercury"))

	accounts, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, "Hot", accounts[0].Name)
	assert.Equal(t, entity.KindSolana, accounts[0].Kind)
	assert.Equal(t, "Ops", accounts[1].Name)
	assert.Equal(t, entity.KindMercury, accounts[1].Kind)
	assert.Equal(t, "acct-123", accounts[1].Identifier)
}

func TestFileStore_DuplicateNamesRejectedAcrossBothLists(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, store.AddAddress("", "Treasury", "0x1111111111111111111111111111111111111111", "ethereum"))

	assert.Error(t, store.AddAddress("", "Treasury", "0x2222222222222222222222222222222222222222", "ethereum"))
	assert.Error(t, store.AddBankingAccount("", "Treasury", "acct-1", "mercury"))
}

func TestFileStore_ChainAutoDetection(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, store.AddAddress("", "EVM", "0x1111111111111111111111111111111111111111", ""))
	require.NoError(t, store.AddAddress("", "Sol", "4Nd1mYzfEXAMPLEexampleEXAMPLEexample12345", ""))

	accounts, err := store.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, entity.KindEthereum, accounts[0].Kind)
	assert.Equal(t, entity.KindSolana, accounts[1].Kind)
}

func TestFileStore_ChainAliases(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, store.AddAddress("", "Arb", "0x1111111111111111111111111111111111111111", "arb"))

	accounts, err := store.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, entity.KindArbitrum, accounts[0].Kind)
}

func TestFileStore_AddBankingAccountValidatesService(t *testing.T) {
	store := tempStore(t)

	assert.Error(t, store.AddBankingAccount("", "Bad", "acct-1", "solana"))
	assert.Error(t, store.AddBankingAccount("", "Worse", "acct-2", "monzo"))
}

func TestFileStore_RemoveByNameOrIdentifier(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, store.AddAddress("", "Hot", "addr-1", "solana"))
	require.NoError(t, store.AddBankingAccount("", "Ops", "acct-9", "circle"))

	require.NoError(t, store.RemoveByIdentifier("Hot"))
	require.NoError(t, store.RemoveByIdentifier("acct-9"))

	accounts, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, accounts)

	assert.Error(t, store.RemoveByIdentifier("Ghost"))
}

func TestFileStore_CorruptFileIsConfigurationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addresses.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.LoadAll()
	require.Error(t, err)
	var ce *entity.ConfigurationError
	assert.ErrorAs(t, err, &ce)
}

func TestFileStore_UnknownStoredChainIsConfigurationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addresses.json")
	body := `{"addresses":[{"company":"","name":"X","address":"abc","chain":"klingon"}],"banking_accounts":[]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.LoadAll()
	require.Error(t, err)
	var ce *entity.ConfigurationError
	assert.ErrorAs(t, err, &ce)
}
