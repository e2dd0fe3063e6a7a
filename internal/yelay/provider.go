// Package yelay implements the Yelay vault action provider: listing
// vaults with their APY, depositing, redeeming, claiming yield, and
// reading balances on EVM chains.
package yelay

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/Traf333/agentkit/internal/actions"
	"github.com/Traf333/agentkit/internal/backend"
	"github.com/Traf333/agentkit/internal/chains"
	"github.com/Traf333/agentkit/internal/wallet"
)

// ProviderName is the identifier the provider registers under.
const ProviderName = "yelay"

// DefaultPoolID is the fixed retail yield-distribution cohort used
// throughout the protocol.
const DefaultPoolID uint64 = 0

// protocolFamilyEVM is the only protocol family this provider serves.
const protocolFamilyEVM = "evm"

// Provider is the Yelay action provider: a name, a resolved chain
// configuration, a backend client, and an explicit action registry.
type Provider struct {
	chain    chains.Config
	backend  *backend.Client
	poolID   uint64
	registry *actions.Registry
}

type options struct {
	poolID     uint64
	backendURL string
}

// Option customizes provider construction.
type Option func(*options)

// WithPoolID overrides the yield-distribution pool id.
func WithPoolID(id uint64) Option {
	return func(o *options) { o.poolID = id }
}

// WithBackendURL overrides the chain's backend base URL.
func WithBackendURL(u string) Option {
	return func(o *options) { o.backendURL = u }
}

// New resolves the chain configuration and builds the provider with its
// action registry. Fails fast for unsupported chains and for test mode on
// chains without a test configuration.
func New(chainID string, testMode bool, opts ...Option) (*Provider, error) {
	cfg, err := chains.Resolve(chainID, testMode)
	if err != nil {
		return nil, err
	}

	o := options{poolID: DefaultPoolID}
	for _, opt := range opts {
		opt(&o)
	}

	baseURL := cfg.BackendBaseURL
	if o.backendURL != "" {
		baseURL = o.backendURL
	}

	p := &Provider{
		chain:   cfg,
		backend: backend.New(baseURL),
		poolID:  o.poolID,
	}
	p.registry = p.buildRegistry()
	return p, nil
}

// Name returns the provider's identifier.
func (p *Provider) Name() string {
	return ProviderName
}

// Chain returns the resolved chain configuration.
func (p *Provider) Chain() chains.Config {
	return p.chain
}

// SupportsNetwork reports whether the provider can serve the given
// network: the protocol family must be EVM and the chain id must be in
// the enumerated supported set. Pure, never fails.
func (p *Provider) SupportsNetwork(network actions.Network) bool {
	return network.ProtocolFamily == protocolFamilyEVM && chains.IsSupported(network.ChainID)
}

// Actions returns the provider's actions in declaration order.
func (p *Provider) Actions() []actions.Action {
	return p.registry.List()
}

// Registry exposes the action registry for hosts that dispatch by name.
func (p *Provider) Registry() *actions.Registry {
	return p.registry
}

// buildRegistry declares the five actions. Handlers decode the raw input,
// run validation, and render every failure into the returned string.
func (p *Provider) buildRegistry() *actions.Registry {
	r := actions.NewRegistry()

	r.MustRegister(actions.Action{
		Name:        "get_vaults",
		Description: "List Yelay vaults on the configured chain together with their current APY.",
		Schema:      actions.ObjectSchema(map[string]interface{}{}),
		Handler: func(ctx context.Context, _ wallet.Provider, _ json.RawMessage) string {
			return p.ListVaults(ctx)
		},
	})

	r.MustRegister(actions.Action{
		Name:        "deposit",
		Description: "Deposit assets into a Yelay vault. Assets are whole units of the vault's underlying token.",
		Schema: actions.ObjectSchema(map[string]interface{}{
			"assets":   actions.PatternProperty("Amount to deposit in whole units, as a decimal integer string", amountPatternString),
			"receiver": actions.PatternProperty("Address of the vault receiving the deposit", addressPatternString),
		}, "assets", "receiver"),
		Handler: func(ctx context.Context, w wallet.Provider, input json.RawMessage) string {
			var in DepositInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "Invalid deposit input: " + err.Error()
			}
			return p.Deposit(ctx, w, in)
		},
	})

	r.MustRegister(actions.Action{
		Name:        "redeem",
		Description: "Redeem shares from a Yelay vault. Assets are atomic units; no decimal scaling is applied.",
		Schema: actions.ObjectSchema(map[string]interface{}{
			"assets":   actions.PatternProperty("Amount to redeem in atomic units, as a decimal integer string", amountPatternString),
			"receiver": actions.PatternProperty("Address of the vault being redeemed from", addressPatternString),
		}, "assets", "receiver"),
		Handler: func(ctx context.Context, w wallet.Provider, input json.RawMessage) string {
			var in RedeemInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "Invalid redeem input: " + err.Error()
			}
			return p.Redeem(ctx, w, in)
		},
	})

	r.MustRegister(actions.Action{
		Name:        "claim",
		Description: "Claim accrued yield from a Yelay vault using a backend-issued claim proof.",
		Schema: actions.ObjectSchema(map[string]interface{}{
			"vaultAddress": actions.PatternProperty("Address of the vault to claim yield from", addressPatternString),
		}, "vaultAddress"),
		Handler: func(ctx context.Context, w wallet.Provider, input json.RawMessage) string {
			var in ClaimInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "Invalid claim input: " + err.Error()
			}
			return p.Claim(ctx, w, in)
		},
	})

	r.MustRegister(actions.Action{
		Name:        "get_balance",
		Description: "Read the caller's share balance in a Yelay vault, with generated vs claimed yield shares when available.",
		Schema: actions.ObjectSchema(map[string]interface{}{
			"vaultAddress": actions.PatternProperty("Address of the vault to read the balance from", addressPatternString),
		}, "vaultAddress"),
		Handler: func(ctx context.Context, w wallet.Provider, input json.RawMessage) string {
			var in BalanceInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "Invalid balance input: " + err.Error()
			}
			return p.GetBalance(ctx, w, in)
		},
	})

	return r
}

// poolIDBig returns the pool id in contract-call representation.
func (p *Provider) poolIDBig() *big.Int {
	return new(big.Int).SetUint64(p.poolID)
}

// renderReceipt renders a mined receipt for inclusion in result strings.
func renderReceipt(r *types.Receipt) string {
	if r == nil {
		return "<no receipt>"
	}
	block := "<pending>"
	if r.BlockNumber != nil {
		block = r.BlockNumber.String()
	}
	return fmt.Sprintf("status=%d block=%s gasUsed=%d", r.Status, block, r.GasUsed)
}
