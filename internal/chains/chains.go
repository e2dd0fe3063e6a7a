// Package chains contains the closed set of network configurations the
// Yelay action provider supports and the resolver that selects one.
package chains

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Resolver errors. Both are returned wrapped with the offending chain id.
var (
	// ErrUnsupportedChain is returned when a chain id is outside the
	// enumerated supported set.
	ErrUnsupportedChain = errors.New("unsupported chain")

	// ErrInvalidConfiguration is returned when test mode is requested for
	// a chain that carries no test configuration.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Supported chain ids, as decimal strings
const (
	ChainEthereum = "1"
	ChainSonic    = "146"
	ChainBase     = "8453"
)

// Config holds the fixed contract addresses and backend base URL for one
// chain. One instance exists per supported chain id; instances are
// selected per request and never mutated.
type Config struct {
	// ChainID is the decimal chain id string this config belongs to
	ChainID string

	// Name is the human-readable network name
	Name string

	// BackendBaseURL is the base URL of the Yelay yield backend for this chain
	BackendBaseURL string

	// VaultWrapper is the address of the vault-wrapper contract that
	// deposit and redeem calls are sent to
	VaultWrapper common.Address

	// YieldExtractor is the address of the yield-extractor contract that
	// claim calls and yieldSharesClaimed reads go to
	YieldExtractor common.Address

	// RPCEndpoint is the default JSON-RPC endpoint used by the bundled
	// wallet implementation; overridable through configuration
	RPCEndpoint string
}

// mainnet enumerates the production configuration per supported chain.
var mainnet = map[string]Config{
	ChainEthereum: {
		ChainID:        ChainEthereum,
		Name:           "ethereum",
		BackendBaseURL: "https://lite.api.yelay.io",
		VaultWrapper:   common.HexToAddress("0x271e3c54FD7a4d5bA9b064EC0f44F0532BF0b1dD"),
		YieldExtractor: common.HexToAddress("0x92e2c43CcAb7d2f7e4bB47aE79b2e806A1d9b828"),
		RPCEndpoint:    "https://eth.llamarpc.com",
	},
	ChainSonic: {
		ChainID:        ChainSonic,
		Name:           "sonic",
		BackendBaseURL: "https://lite.api.yelay.io",
		VaultWrapper:   common.HexToAddress("0x4b1E6a4C632Bd9fF646306Df7b63c1A1c4a0cB05"),
		YieldExtractor: common.HexToAddress("0xC8d26b7BdfE39E8c5FE7c264b27B1153dF7dC0cE"),
		RPCEndpoint:    "https://rpc.soniclabs.com",
	},
	ChainBase: {
		ChainID:        ChainBase,
		Name:           "base",
		BackendBaseURL: "https://lite.api.yelay.io",
		VaultWrapper:   common.HexToAddress("0x8a5bF35a7E1Cfb43F32e8bD15a1637C1b1a2eB3e"),
		YieldExtractor: common.HexToAddress("0x5D4a9fC31cE76aD2a51a8C8C85e98D6e3B74E4f0"),
		RPCEndpoint:    "https://mainnet.base.org",
	},
}

// testnet enumerates the test configurations. Only Ethereum carries one.
var testnet = map[string]Config{
	ChainEthereum: {
		ChainID:        ChainEthereum,
		Name:           "ethereum-test",
		BackendBaseURL: "https://lite.api.test.yelay.io",
		VaultWrapper:   common.HexToAddress("0xDbA35d27cFA5a0B6a9aA3C87fEf774f4B7498fF2"),
		YieldExtractor: common.HexToAddress("0x13fA6EeA41bCe0c5Ae5b8e4fD53b1E2B0d9cC1E4"),
		RPCEndpoint:    "https://ethereum-sepolia-rpc.publicnode.com",
	},
}

// Resolve returns the configuration for the given chain id. With testMode
// set it returns the chain's test configuration instead; requesting test
// mode for a supported chain without one fails with ErrInvalidConfiguration.
// Pure lookup, no side effects.
func Resolve(chainID string, testMode bool) (Config, error) {
	cfg, ok := mainnet[chainID]
	if !ok {
		return Config{}, fmt.Errorf("%w: chain id %q", ErrUnsupportedChain, chainID)
	}

	if !testMode {
		return cfg, nil
	}

	testCfg, ok := testnet[chainID]
	if !ok {
		return Config{}, fmt.Errorf("%w: chain %q has no test configuration", ErrInvalidConfiguration, chainID)
	}
	return testCfg, nil
}

// Supported returns the enumerated supported chain ids in a fixed order.
func Supported() []string {
	return []string{ChainEthereum, ChainSonic, ChainBase}
}

// IsSupported reports whether the given chain id string is in the
// enumerated supported set.
func IsSupported(chainID string) bool {
	_, ok := mainnet[chainID]
	return ok
}
