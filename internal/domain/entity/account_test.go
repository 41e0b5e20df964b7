package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProviderKind(t *testing.T) {
	cases := map[string]ProviderKind{
		"solana":    KindSolana,
		"sol":       KindSolana,
		"ETH":       KindEthereum,
		"matic":     KindPolygon,
		"bnb":       KindBSC,
		"arb":       KindArbitrum,
		"op":        KindOptimism,
		"avax":      KindAvalanche,
		"base":      KindBase,
		"core":      KindCore,
		"near":      KindNear,
		"apt":       KindAptos,
		"sui":       KindSui,
		"stark":     KindStarknet,
		"Mercury":   KindMercury,
		"circle":    KindCircle,
		" solana ":  KindSolana,
	}
	for input, want := range cases {
		got, err := ParseProviderKind(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := ParseProviderKind("dogecoin")
	assert.Error(t, err)
}

func TestProviderKindPredicates(t *testing.T) {
	assert.True(t, KindEthereum.IsEVM())
	assert.True(t, KindCore.IsEVM())
	assert.False(t, KindSolana.IsEVM())
	assert.False(t, KindMercury.IsEVM())

	assert.True(t, KindMercury.IsBank())
	assert.True(t, KindCircle.IsBank())
	assert.False(t, KindEthereum.IsBank())
}

func TestNativeSymbol(t *testing.T) {
	assert.Equal(t, "SOL", KindSolana.NativeSymbol())
	assert.Equal(t, "ETH", KindArbitrum.NativeSymbol())
	assert.Equal(t, "", KindMercury.NativeSymbol())
}

func TestCompanyKey(t *testing.T) {
	tagged := TrackedAccount{Name: "A", Company: "Acme"}
	assert.Equal(t, "Acme", tagged.CompanyKey())

	untagged := TrackedAccount{Name: "B"}
	assert.Equal(t, DefaultCompany, untagged.CompanyKey())
}
