package yelay

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/Traf333/agentkit/internal/wallet"
)

// The two claim failure domains carry distinct prefixes so the rendered
// message tells proof fetching apart from the on-chain claim itself.
const (
	claimProofErrPrefix = "Error obtaining proof for yield to claim from Yelay Vault: "
	claimErrPrefix      = "Error claiming yield from Yelay Vault: "
)

// ClaimRequest mirrors the yield extractor's claim tuple. Field names
// line up with the ABI component names for encoding.
type ClaimRequest struct {
	YelayVault       common.Address
	ProjectId        *big.Int
	Cycle            *big.Int
	YieldSharesTotal *big.Int
	Proof            [][32]byte
}

// Claim fetches a claim proof for the caller and submits claim(entries[])
// to the yield-extractor contract. Phase 1 (proof fetch) and phase 2
// (contract call) fail with distinguishable prefixes.
func (p *Provider) Claim(ctx context.Context, w wallet.Provider, in ClaimInput) string {
	if err := in.Validate(); err != nil {
		return "Invalid claim input: " + err.Error()
	}
	if w == nil {
		return claimErrPrefix + "no wallet configured"
	}

	entries, err := p.backend.ClaimProof(ctx, p.chain.ChainID, w.Address().Hex(), p.poolID, in.VaultAddress)
	if err != nil {
		return claimProofErrPrefix + err.Error()
	}
	if len(entries) == 0 {
		return fmt.Sprintf("No claimable yield found for Yelay Vault %s.", in.VaultAddress)
	}

	requests := make([]ClaimRequest, len(entries))
	for i, e := range entries {
		total, ok := new(big.Int).SetString(e.YieldSharesTotal, 10)
		if !ok {
			return claimProofErrPrefix + fmt.Sprintf("invalid yieldSharesTotal %q in proof entry %d", e.YieldSharesTotal, i)
		}
		proof := make([][32]byte, len(e.Proof))
		for j, h := range e.Proof {
			proof[j] = common.HexToHash(h)
		}
		requests[i] = ClaimRequest{
			YelayVault:       common.HexToAddress(e.VaultAddress),
			ProjectId:        new(big.Int).SetUint64(e.PoolID),
			Cycle:            new(big.Int).SetUint64(e.Cycle),
			YieldSharesTotal: total,
			Proof:            proof,
		}
	}

	data, err := YieldExtractorABI.Pack("claim", requests)
	if err != nil {
		return claimErrPrefix + err.Error()
	}

	hash, err := w.SendTransaction(ctx, p.chain.YieldExtractor, data)
	if err != nil {
		return claimErrPrefix + err.Error()
	}
	receipt, err := w.WaitForReceipt(ctx, hash)
	if err != nil {
		return claimErrPrefix + err.Error()
	}

	logrus.WithFields(logrus.Fields{
		"vault":   in.VaultAddress,
		"entries": len(entries),
		"hash":    hash.Hex(),
	}).Info("Yield claim confirmed")

	// One line per claimed entry in response order; the transaction covers
	// all entries and is reported once.
	lines := make([]string, 0, len(entries)+2)
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("Claimed %s yield shares from Yelay Vault %s in cycle %d.",
			e.YieldSharesTotal, e.VaultAddress, e.Cycle))
	}
	lines = append(lines,
		"Transaction hash: "+hash.Hex(),
		"Receipt: "+renderReceipt(receipt))
	return strings.Join(lines, "\n")
}
