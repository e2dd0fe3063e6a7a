package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"
)

// receiptPollInterval is how often WaitForReceipt checks for inclusion.
const receiptPollInterval = 2 * time.Second

// EthWallet is a Provider backed by a JSON-RPC node and a local signing key.
type EthWallet struct {
	client  *ethclient.Client
	key     *ecdsa.PrivateKey
	address common.Address
	chainID *big.Int
}

// NewEthWallet dials the given RPC endpoint and derives the account from
// the hex-encoded private key.
func NewEthWallet(ctx context.Context, rpcURL, hexKey string) (*EthWallet, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("error dialing RPC endpoint: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("error parsing private key: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching chain id: %w", err)
	}

	address := crypto.PubkeyToAddress(key.PublicKey)
	logrus.WithFields(logrus.Fields{
		"address": address.Hex(),
		"chainId": chainID.String(),
	}).Info("Wallet initialized")

	return &EthWallet{
		client:  client,
		key:     key,
		address: address,
		chainID: chainID,
	}, nil
}

// Address returns the wallet's account address.
func (w *EthWallet) Address() common.Address {
	return w.address
}

// ChainID returns the chain id the wallet is connected to.
func (w *EthWallet) ChainID() *big.Int {
	return new(big.Int).Set(w.chainID)
}

// ReadContract performs an eth_call against the latest block.
func (w *EthWallet) ReadContract(ctx context.Context, to common.Address, contract abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("error encoding %s call: %w", method, err)
	}

	out, err := w.client.CallContract(ctx, ethereum.CallMsg{
		From: w.address,
		To:   &to,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("error calling %s on %s: %w", method, to.Hex(), err)
	}

	values, err := contract.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s result: %w", method, err)
	}
	return values, nil
}

// SendTransaction signs and broadcasts a legacy transaction carrying data.
func (w *EthWallet) SendTransaction(ctx context.Context, to common.Address, data []byte) (common.Hash, error) {
	nonce, err := w.client.PendingNonceAt(ctx, w.address)
	if err != nil {
		return common.Hash{}, fmt.Errorf("error fetching nonce: %w", err)
	}

	gasPrice, err := w.client.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("error fetching gas price: %w", err)
	}

	gasLimit, err := w.client.EstimateGas(ctx, ethereum.CallMsg{
		From: w.address,
		To:   &to,
		Data: data,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("error estimating gas: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Gas:      gasLimit + gasLimit/5, // headroom over the estimate
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(w.chainID), w.key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("error signing transaction: %w", err)
	}

	if err := w.client.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("error broadcasting transaction: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"hash":  signed.Hash().Hex(),
		"to":    to.Hex(),
		"nonce": nonce,
	}).Debug("Transaction broadcast")

	return signed.Hash(), nil
}

// WaitForReceipt polls for the transaction receipt until the context is
// cancelled.
func (w *EthWallet) WaitForReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := w.client.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("error fetching receipt for %s: %w", hash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for receipt %s: %w", hash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}
