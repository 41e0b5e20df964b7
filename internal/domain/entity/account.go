package entity

import "fmt"

// ProviderKind identifies the chain or banking service an account lives on.
type ProviderKind string

const (
	KindSolana    ProviderKind = "solana"
	KindEthereum  ProviderKind = "ethereum"
	KindPolygon   ProviderKind = "polygon"
	KindBSC       ProviderKind = "bsc"
	KindArbitrum  ProviderKind = "arbitrum"
	KindOptimism  ProviderKind = "optimism"
	KindAvalanche ProviderKind = "avalanche"
	KindBase      ProviderKind = "base"
	KindCore      ProviderKind = "core"
	KindNear      ProviderKind = "near"
	KindAptos     ProviderKind = "aptos"
	KindSui       ProviderKind = "sui"
	KindStarknet  ProviderKind = "starknet"
	KindMercury   ProviderKind = "mercury"
	KindCircle    ProviderKind = "circle"
)

// DefaultCompany is the group tag used for accounts without a company.
const DefaultCompany = "Uncategorized"

// AllProviderKinds lists every kind the registry must resolve.
var AllProviderKinds = []ProviderKind{
	KindSolana, KindEthereum, KindPolygon, KindBSC, KindArbitrum,
	KindOptimism, KindAvalanche, KindBase, KindCore, KindNear,
	KindAptos, KindSui, KindStarknet, KindMercury, KindCircle,
}

var providerKindAliases = map[string]ProviderKind{
	"solana": KindSolana, "sol": KindSolana,
	"ethereum": KindEthereum, "eth": KindEthereum,
	"polygon": KindPolygon, "matic": KindPolygon,
	"bsc": KindBSC, "binance": KindBSC, "bnb": KindBSC,
	"arbitrum": KindArbitrum, "arb": KindArbitrum,
	"optimism": KindOptimism, "op": KindOptimism,
	"avalanche": KindAvalanche, "avax": KindAvalanche,
	"base": KindBase,
	"core": KindCore,
	"near": KindNear,
	"aptos": KindAptos, "apt": KindAptos,
	"sui": KindSui,
	"starknet": KindStarknet, "stark": KindStarknet,
	"mercury": KindMercury,
	"circle":  KindCircle,
}

// ParseProviderKind resolves a user-supplied chain or service name,
// accepting the common short aliases.
func ParseProviderKind(s string) (ProviderKind, error) {
	if kind, ok := providerKindAliases[normalizeKind(s)]; ok {
		return kind, nil
	}
	return "", fmt.Errorf("unknown provider kind: %q", s)
}

func normalizeKind(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c == ' ' || c == '\t' {
			continue
		}
		b = append(b, c)
	}
	return string(b)
}

// IsEVM reports whether the kind is an EVM-compatible chain sharing the
// generic EVM client.
func (k ProviderKind) IsEVM() bool {
	switch k {
	case KindEthereum, KindPolygon, KindBSC, KindArbitrum,
		KindOptimism, KindAvalanche, KindBase, KindCore:
		return true
	}
	return false
}

// IsBank reports whether the kind is a banking service rather than a chain.
func (k ProviderKind) IsBank() bool {
	return k == KindMercury || k == KindCircle
}

// DisplayName returns the human-readable provider name.
func (k ProviderKind) DisplayName() string {
	switch k {
	case KindSolana:
		return "Solana"
	case KindEthereum:
		return "Ethereum"
	case KindPolygon:
		return "Polygon"
	case KindBSC:
		return "Binance Smart Chain"
	case KindArbitrum:
		return "Arbitrum"
	case KindOptimism:
		return "Optimism"
	case KindAvalanche:
		return "Avalanche C-Chain"
	case KindBase:
		return "Base"
	case KindCore:
		return "Core"
	case KindNear:
		return "NEAR Protocol"
	case KindAptos:
		return "Aptos"
	case KindSui:
		return "Sui"
	case KindStarknet:
		return "Starknet"
	case KindMercury:
		return "Mercury Banking"
	case KindCircle:
		return "Circle"
	}
	return string(k)
}

// NativeSymbol returns the native asset symbol for chain kinds; banking
// kinds report in fiat and have no native asset.
func (k ProviderKind) NativeSymbol() string {
	switch k {
	case KindSolana:
		return "SOL"
	case KindEthereum, KindArbitrum, KindOptimism, KindBase, KindStarknet:
		return "ETH"
	case KindPolygon:
		return "MATIC"
	case KindBSC:
		return "BNB"
	case KindAvalanche:
		return "AVAX"
	case KindCore:
		return "CORE"
	case KindNear:
		return "NEAR"
	case KindAptos:
		return "APT"
	case KindSui:
		return "SUI"
	}
	return ""
}

// TrackedAccount is one address-book entry: a wallet address or banking
// account id tracked under a user-facing name, optionally grouped by
// company. Immutable during a query cycle.
type TrackedAccount struct {
	Name       string       `json:"name"`
	Identifier string       `json:"identifier"`
	Kind       ProviderKind `json:"kind"`
	Company    string       `json:"company,omitempty"`
}

// CompanyKey returns the grouping tag, defaulting untagged accounts.
func (a TrackedAccount) CompanyKey() string {
	if a.Company == "" {
		return DefaultCompany
	}
	return a.Company
}
