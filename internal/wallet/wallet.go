// Package wallet defines the wallet collaborator the action handlers
// submit transactions through, and ships a go-ethereum-backed
// implementation of it.
package wallet

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Provider abstracts signing, sending, and reading against an EVM chain.
// Handlers treat it as opaque: encoding is done against fixed contract
// ABIs, and every call is attempted exactly once per invocation.
type Provider interface {
	// Address returns the wallet's account address.
	Address() common.Address

	// ChainID returns the chain id the wallet is connected to.
	ChainID() *big.Int

	// ReadContract performs an eth_call of the named method against the
	// contract at to, returning the unpacked outputs.
	ReadContract(ctx context.Context, to common.Address, contract abi.ABI, method string, args ...interface{}) ([]interface{}, error)

	// SendTransaction signs and broadcasts a transaction carrying data to
	// the contract at to, returning the transaction hash.
	SendTransaction(ctx context.Context, to common.Address, data []byte) (common.Hash, error)

	// WaitForReceipt blocks until the transaction is mined or the context
	// is cancelled.
	WaitForReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}
