// Package model defines the core data structures exchanged between the
// Yelay yield backend and the action provider.
package model

// VaultDetails is a single vault record as returned by the yield backend.
// It is an immutable snapshot per fetch, keyed by the vault address.
type VaultDetails struct {
	// Address is the on-chain address of the vault contract
	Address string `json:"address"`

	// Name is the human-readable vault name
	Name string `json:"name"`

	// Symbol is the vault share token symbol
	Symbol string `json:"symbol"`

	// Balance is the vault's total balance in atomic units, decimal-encoded
	Balance string `json:"balance"`

	// Decimals is the decimal precision of the vault's underlying asset
	Decimals uint8 `json:"decimals"`
}

// ApyRecord is one APY measurement window for a vault. Records are joined
// to VaultDetails by exact address string equality; the backend's casing
// is preserved and never normalized.
type ApyRecord struct {
	// Vault is the address of the vault this record belongs to
	Vault string `json:"vault"`

	// StartBlock and FinishBlock bound the measurement window on chain
	StartBlock  uint64 `json:"startBlock"`
	FinishBlock uint64 `json:"finishBlock"`

	// StartTimestamp and FinishTimestamp bound the window in Unix seconds
	StartTimestamp  int64 `json:"startTimestamp"`
	FinishTimestamp int64 `json:"finishTimestamp"`

	// Yield is the absolute yield generated over the window, decimal-encoded
	Yield string `json:"yield"`

	// APY is the annualized percentage yield for the window as reported
	// by the backend, e.g. "3.4"
	APY string `json:"apy"`
}

// ClaimProofEntry authorizes an on-chain yield claim for one
// user/vault/pool/cycle. Entries are fetched fresh per claim request and
// never persisted; the proof is opaque input to a single contract call.
type ClaimProofEntry struct {
	// VaultAddress is the vault the yield was generated in
	VaultAddress string `json:"vaultAddress"`

	// PoolID identifies the yield-distribution cohort
	PoolID uint64 `json:"poolId"`

	// Cycle is the distribution cycle the proof was issued for
	Cycle uint64 `json:"cycle"`

	// YieldSharesTotal is the total claimable yield shares, decimal-encoded
	YieldSharesTotal string `json:"yieldSharesTotal"`

	// BlockNumber is the block the distribution root was committed at
	BlockNumber uint64 `json:"blockNumber"`

	// Proof is the ordered Merkle proof, one 0x-prefixed hash per element
	Proof []string `json:"proof"`
}
