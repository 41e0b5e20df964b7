package evm

import "github.com/oakencore/gringotts/internal/domain/entity"

// TokenInfo describes one ERC20 token tracked on a chain.
type TokenInfo struct {
	Address  string
	Symbol   string
	Decimals int32
}

// ChainDefinition describes one EVM-compatible network: its native asset,
// default RPC endpoints and the common stablecoins worth querying.
type ChainDefinition struct {
	Kind            entity.ProviderKind
	Name            string
	ChainID         uint64
	NativeSymbol    string
	NativeDecimals  int32
	PrimaryRPCURL   string
	FallbackRPCURLs []string
	Tokens          []TokenInfo
}

// Predefined chain definitions
var (
	Ethereum = ChainDefinition{
		Kind:            entity.KindEthereum,
		Name:            "Ethereum Mainnet",
		ChainID:         1,
		NativeSymbol:    "ETH",
		NativeDecimals:  18,
		PrimaryRPCURL:   "https://ethereum-rpc.publicnode.com",
		FallbackRPCURLs: []string{"https://rpc.ankr.com/eth", "https://eth.llamarpc.com"},
		Tokens: []TokenInfo{
			{Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Symbol: "USDC", Decimals: 6},
			{Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Symbol: "USDT", Decimals: 6},
			{Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F", Symbol: "DAI", Decimals: 18},
		},
	}
	Polygon = ChainDefinition{
		Kind:            entity.KindPolygon,
		Name:            "Polygon PoS",
		ChainID:         137,
		NativeSymbol:    "MATIC",
		NativeDecimals:  18,
		PrimaryRPCURL:   "https://polygon-rpc.com",
		FallbackRPCURLs: []string{"https://rpc.ankr.com/polygon", "https://polygon.publicnode.com"},
		Tokens: []TokenInfo{
			{Address: "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359", Symbol: "USDC", Decimals: 6},
			{Address: "0xc2132D05D31c914a87C6611C10748AEb04B58e8F", Symbol: "USDT", Decimals: 6},
			{Address: "0x8f3Cf7ad23Cd3CaDbD9735AFf958023239c6A063", Symbol: "DAI", Decimals: 18},
		},
	}
	BSC = ChainDefinition{
		Kind:            entity.KindBSC,
		Name:            "BNB Smart Chain",
		ChainID:         56,
		NativeSymbol:    "BNB",
		NativeDecimals:  18,
		PrimaryRPCURL:   "https://1rpc.io/bnb",
		FallbackRPCURLs: []string{"https://bsc-dataseed2.binance.org", "https://bsc.publicnode.com"},
		Tokens: []TokenInfo{
			{Address: "0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d", Symbol: "USDC", Decimals: 18},
			{Address: "0x55d398326f99059fF775485246999027B3197955", Symbol: "USDT", Decimals: 18},
			{Address: "0x1AF3F329e8BE154074D8769D1FFa4eE058B1DBc3", Symbol: "DAI", Decimals: 18},
		},
	}
	Arbitrum = ChainDefinition{
		Kind:            entity.KindArbitrum,
		Name:            "Arbitrum One",
		ChainID:         42161,
		NativeSymbol:    "ETH",
		NativeDecimals:  18,
		PrimaryRPCURL:   "https://arb1.arbitrum.io/rpc",
		FallbackRPCURLs: []string{"https://arbitrum.llamarpc.com", "https://arbitrum.publicnode.com"},
		Tokens: []TokenInfo{
			{Address: "0xaf88d065e77c8cC2239327C5EDb3A432268e5831", Symbol: "USDC", Decimals: 6},
			{Address: "0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9", Symbol: "USDT", Decimals: 6},
			{Address: "0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1", Symbol: "DAI", Decimals: 18},
		},
	}
	Optimism = ChainDefinition{
		Kind:            entity.KindOptimism,
		Name:            "OP Mainnet",
		ChainID:         10,
		NativeSymbol:    "ETH",
		NativeDecimals:  18,
		PrimaryRPCURL:   "https://mainnet.optimism.io",
		FallbackRPCURLs: []string{"https://optimism.publicnode.com"},
		Tokens: []TokenInfo{
			{Address: "0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85", Symbol: "USDC", Decimals: 6},
			{Address: "0x94b008aA00579c1307B0EF2c499aD98a8ce58e58", Symbol: "USDT", Decimals: 6},
			{Address: "0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1", Symbol: "DAI", Decimals: 18},
		},
	}
	Avalanche = ChainDefinition{
		Kind:            entity.KindAvalanche,
		Name:            "Avalanche C-Chain",
		ChainID:         43114,
		NativeSymbol:    "AVAX",
		NativeDecimals:  18,
		PrimaryRPCURL:   "https://api.avax.network/ext/bc/C/rpc",
		FallbackRPCURLs: []string{"https://rpc.ankr.com/avalanche", "https://avalanche.public-rpc.com"},
		Tokens: []TokenInfo{
			{Address: "0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E", Symbol: "USDC", Decimals: 6},
			{Address: "0x9702230A8Ea53601f5cD2dc00fDBc13d4dF4A8c7", Symbol: "USDT", Decimals: 6},
			{Address: "0xd586E7F844cEa2F87f50152665BCbc2C279D8d70", Symbol: "DAI", Decimals: 18},
		},
	}
	Base = ChainDefinition{
		Kind:            entity.KindBase,
		Name:            "Base",
		ChainID:         8453,
		NativeSymbol:    "ETH",
		NativeDecimals:  18,
		PrimaryRPCURL:   "https://mainnet.base.org",
		FallbackRPCURLs: []string{"https://base.publicnode.com"},
		Tokens: []TokenInfo{
			{Address: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", Symbol: "USDC", Decimals: 6},
			{Address: "0x50c5725949A6F0c72E6C4a641F24049A917DB0Cb", Symbol: "DAI", Decimals: 18},
		},
	}
	Core = ChainDefinition{
		Kind:            entity.KindCore,
		Name:            "Core",
		ChainID:         1116,
		NativeSymbol:    "CORE",
		NativeDecimals:  18,
		PrimaryRPCURL:   "https://rpc.coredao.org",
		FallbackRPCURLs: []string{"https://rpc.ankr.com/core"},
		Tokens: []TokenInfo{
			{Address: "0xa4151B2B3e269645181dCcF2D426cE75fcbDeca9", Symbol: "USDT", Decimals: 6},
			{Address: "0x900101d06A7426441Ae63e9AB3B9b0F63Be145F1", Symbol: "USDC", Decimals: 6},
		},
	}
)

// Definitions maps every EVM kind to its chain definition.
var Definitions = map[entity.ProviderKind]ChainDefinition{
	entity.KindEthereum:  Ethereum,
	entity.KindPolygon:   Polygon,
	entity.KindBSC:       BSC,
	entity.KindArbitrum:  Arbitrum,
	entity.KindOptimism:  Optimism,
	entity.KindAvalanche: Avalanche,
	entity.KindBase:      Base,
	entity.KindCore:      Core,
}
