package yelay

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Contract ABI fragments for the three Yelay contracts the provider
// touches. These are fixed external constants; encoding against them is
// the only place amounts leave their decimal-string representation.
const (
	vaultWrapperABIJSON = `[
		{"type":"function","name":"deposit","stateMutability":"nonpayable",
		 "inputs":[{"name":"amount","type":"uint256"},{"name":"poolId","type":"uint256"},{"name":"receiver","type":"address"}],
		 "outputs":[{"name":"shares","type":"uint256"}]},
		{"type":"function","name":"redeem","stateMutability":"nonpayable",
		 "inputs":[{"name":"amount","type":"uint256"},{"name":"poolId","type":"uint256"},{"name":"receiver","type":"address"}],
		 "outputs":[{"name":"assets","type":"uint256"}]}
	]`

	yieldExtractorABIJSON = `[
		{"type":"function","name":"claim","stateMutability":"nonpayable",
		 "inputs":[{"name":"data","type":"tuple[]","components":[
			{"name":"yelayVault","type":"address"},
			{"name":"projectId","type":"uint256"},
			{"name":"cycle","type":"uint256"},
			{"name":"yieldSharesTotal","type":"uint256"},
			{"name":"proof","type":"bytes32[]"}]}],
		 "outputs":[]},
		{"type":"function","name":"yieldSharesClaimed","stateMutability":"view",
		 "inputs":[{"name":"user","type":"address"},{"name":"vault","type":"address"},{"name":"poolId","type":"uint256"}],
		 "outputs":[{"name":"","type":"uint256"}]}
	]`

	vaultABIJSON = `[
		{"type":"function","name":"decimals","stateMutability":"view",
		 "inputs":[],"outputs":[{"name":"","type":"uint8"}]},
		{"type":"function","name":"balanceOf","stateMutability":"view",
		 "inputs":[{"name":"user","type":"address"},{"name":"poolId","type":"uint256"}],
		 "outputs":[{"name":"","type":"uint256"}]}
	]`
)

// Parsed ABIs, built once at package init.
var (
	VaultWrapperABI   = mustParseABI(vaultWrapperABIJSON)
	YieldExtractorABI = mustParseABI(yieldExtractorABIJSON)
	VaultABI          = mustParseABI(vaultABIJSON)
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic("yelay: invalid contract ABI: " + err.Error())
	}
	return parsed
}
