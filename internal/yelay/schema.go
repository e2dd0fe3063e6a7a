package yelay

import (
	"fmt"
	"math/big"
	"regexp"
)

// Input shape constraints shared between the declared schemas and the
// explicit validation run before any network or contract call.
const (
	addressPatternString = `^0x[0-9a-fA-F]{40}$`
	amountPatternString  = `^[0-9]+$`
)

var (
	addressPattern = regexp.MustCompile(addressPatternString)
	amountPattern  = regexp.MustCompile(amountPatternString)
)

// DepositInput is the input for the deposit action. Assets are whole
// units of the vault's underlying asset, decimal-encoded.
type DepositInput struct {
	Assets   string `json:"assets"`
	Receiver string `json:"receiver"`
}

// Validate checks field shapes. The positive-amount rule is enforced
// separately by parsePositiveAmount so zero is reported precisely.
func (in DepositInput) Validate() error {
	if !amountPattern.MatchString(in.Assets) {
		return fmt.Errorf("assets must be a decimal integer string, got %q", in.Assets)
	}
	if !addressPattern.MatchString(in.Receiver) {
		return fmt.Errorf("receiver must be a 0x-prefixed 40-hex-digit address, got %q", in.Receiver)
	}
	return nil
}

// RedeemInput is the input for the redeem action. Assets are already
// atomic units; no decimal scaling is applied.
type RedeemInput struct {
	Assets   string `json:"assets"`
	Receiver string `json:"receiver"`
}

// Validate checks field shapes.
func (in RedeemInput) Validate() error {
	if !amountPattern.MatchString(in.Assets) {
		return fmt.Errorf("assets must be a decimal integer string, got %q", in.Assets)
	}
	if !addressPattern.MatchString(in.Receiver) {
		return fmt.Errorf("receiver must be a 0x-prefixed 40-hex-digit address, got %q", in.Receiver)
	}
	return nil
}

// ClaimInput is the input for the claim action.
type ClaimInput struct {
	VaultAddress string `json:"vaultAddress"`
}

// Validate checks field shapes.
func (in ClaimInput) Validate() error {
	if !addressPattern.MatchString(in.VaultAddress) {
		return fmt.Errorf("vaultAddress must be a 0x-prefixed 40-hex-digit address, got %q", in.VaultAddress)
	}
	return nil
}

// BalanceInput is the input for the get_balance action.
type BalanceInput struct {
	VaultAddress string `json:"vaultAddress"`
}

// Validate checks field shapes.
func (in BalanceInput) Validate() error {
	if !addressPattern.MatchString(in.VaultAddress) {
		return fmt.Errorf("vaultAddress must be a 0x-prefixed 40-hex-digit address, got %q", in.VaultAddress)
	}
	return nil
}

// parsePositiveAmount parses a decimal-string amount into a big integer,
// rejecting anything that is not a strictly positive integer. Amounts
// never pass through floating point.
func parsePositiveAmount(s string) (*big.Int, error) {
	if !amountPattern.MatchString(s) {
		return nil, fmt.Errorf("amount must be a decimal integer string, got %q", s)
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("amount %q is not a valid integer", s)
	}
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be greater than zero, got %s", s)
	}
	return n, nil
}
