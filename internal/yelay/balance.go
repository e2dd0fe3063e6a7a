package yelay

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/Traf333/agentkit/internal/wallet"
)

const balanceErrPrefix = "Error getting balance from Yelay Vault: "

// GetBalance reads the caller's share balance in a vault. When the
// backend has a claim proof for the caller, the report also carries
// generated vs claimed yield shares read from the yield extractor.
func (p *Provider) GetBalance(ctx context.Context, w wallet.Provider, in BalanceInput) string {
	if err := in.Validate(); err != nil {
		return "Invalid balance input: " + err.Error()
	}
	if w == nil {
		return balanceErrPrefix + "no wallet configured"
	}

	vault := common.HexToAddress(in.VaultAddress)

	out, err := w.ReadContract(ctx, vault, VaultABI, "balanceOf", w.Address(), p.poolIDBig())
	if err != nil {
		return balanceErrPrefix + err.Error()
	}
	balance, err := toBigInt(out)
	if err != nil {
		return balanceErrPrefix + err.Error()
	}

	entries, err := p.backend.ClaimProof(ctx, p.chain.ChainID, w.Address().Hex(), p.poolID, in.VaultAddress)
	if err != nil {
		return balanceErrPrefix + err.Error()
	}

	report := fmt.Sprintf("Balance in Yelay Vault %s: %s shares.", in.VaultAddress, balance.String())
	if len(entries) == 0 {
		return report
	}

	out, err = w.ReadContract(ctx, p.chain.YieldExtractor, YieldExtractorABI, "yieldSharesClaimed", w.Address(), vault, p.poolIDBig())
	if err != nil {
		return balanceErrPrefix + err.Error()
	}
	claimed, err := toBigInt(out)
	if err != nil {
		return balanceErrPrefix + err.Error()
	}

	// yieldSharesTotal is cumulative per cycle; the highest cycle carries
	// the up-to-date generated total.
	latest := entries[0]
	for _, e := range entries[1:] {
		if e.Cycle > latest.Cycle {
			latest = e
		}
	}

	logrus.WithFields(logrus.Fields{
		"vault":   in.VaultAddress,
		"balance": balance.String(),
		"claimed": claimed.String(),
	}).Debug("Balance read")

	return report + fmt.Sprintf("\nGenerated yield shares: %s\nClaimed yield shares: %s",
		latest.YieldSharesTotal, claimed.String())
}
