package evm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakencore/gringotts/internal/domain/entity"
)

func TestDefinitionsCoverEveryEVMKind(t *testing.T) {
	for _, kind := range entity.AllProviderKinds {
		if !kind.IsEVM() {
			continue
		}
		def, ok := Definitions[kind]
		require.True(t, ok, "missing definition for %s", kind)
		assert.Equal(t, kind, def.Kind)
		assert.NotEmpty(t, def.PrimaryRPCURL)
		assert.Equal(t, kind.NativeSymbol(), def.NativeSymbol)
		assert.Equal(t, int32(18), def.NativeDecimals)
	}
}

func TestDefinitionsTokenTables(t *testing.T) {
	for kind, def := range Definitions {
		for _, token := range def.Tokens {
			assert.True(t, strings.HasPrefix(token.Address, "0x"),
				"%s token %s has malformed address", kind, token.Symbol)
			assert.Len(t, token.Address, 42,
				"%s token %s has malformed address", kind, token.Symbol)
			assert.Positive(t, token.Decimals)
		}
	}

	// BSC bridged stablecoins use 18 decimals, unlike their mainnet
	// counterparts.
	for _, token := range Definitions[entity.KindBSC].Tokens {
		assert.Equal(t, int32(18), token.Decimals, "BSC token %s", token.Symbol)
	}
}
