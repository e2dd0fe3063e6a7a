package yelay

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/Traf333/agentkit/internal/wallet"
)

// Error prefixes for the transaction handlers. Failures are rendered into
// the result string, never thrown past the action boundary.
const (
	depositErrPrefix = "Error depositing to Yelay Vault: "
	redeemErrPrefix  = "Error redeeming from Yelay Vault: "
)

// Deposit scales a whole-unit asset amount by the vault's decimal
// precision and submits deposit(amount, poolId, receiver) to the
// vault-wrapper contract. The positive-amount precheck runs before any
// network or contract call.
func (p *Provider) Deposit(ctx context.Context, w wallet.Provider, in DepositInput) string {
	if err := in.Validate(); err != nil {
		return "Invalid deposit input: " + err.Error()
	}
	amount, err := parsePositiveAmount(in.Assets)
	if err != nil {
		return "Invalid deposit input: " + err.Error()
	}
	if w == nil {
		return depositErrPrefix + "no wallet configured"
	}

	receiver := common.HexToAddress(in.Receiver)

	out, err := w.ReadContract(ctx, receiver, VaultABI, "decimals")
	if err != nil {
		return depositErrPrefix + err.Error()
	}
	decimals, err := toUint8(out)
	if err != nil {
		return depositErrPrefix + err.Error()
	}

	atomic := scaleToAtomic(amount, decimals)
	data, err := VaultWrapperABI.Pack("deposit", atomic, p.poolIDBig(), receiver)
	if err != nil {
		return depositErrPrefix + err.Error()
	}

	hash, err := w.SendTransaction(ctx, p.chain.VaultWrapper, data)
	if err != nil {
		return depositErrPrefix + err.Error()
	}
	receipt, err := w.WaitForReceipt(ctx, hash)
	if err != nil {
		return depositErrPrefix + err.Error()
	}

	logrus.WithFields(logrus.Fields{
		"vault":  in.Receiver,
		"assets": in.Assets,
		"hash":   hash.Hex(),
	}).Info("Deposit confirmed")

	return fmt.Sprintf("Deposited %s to Yelay Vault %s.\nTransaction hash: %s\nReceipt: %s",
		in.Assets, in.Receiver, hash.Hex(), renderReceipt(receipt))
}

// Redeem submits redeem(amount, poolId, receiver) to the vault-wrapper
// contract. Amounts are already atomic units; no decimals read and no
// scaling happens here.
func (p *Provider) Redeem(ctx context.Context, w wallet.Provider, in RedeemInput) string {
	if err := in.Validate(); err != nil {
		return "Invalid redeem input: " + err.Error()
	}
	amount, err := parsePositiveAmount(in.Assets)
	if err != nil {
		return "Invalid redeem input: " + err.Error()
	}
	if w == nil {
		return redeemErrPrefix + "no wallet configured"
	}

	receiver := common.HexToAddress(in.Receiver)

	data, err := VaultWrapperABI.Pack("redeem", amount, p.poolIDBig(), receiver)
	if err != nil {
		return redeemErrPrefix + err.Error()
	}

	hash, err := w.SendTransaction(ctx, p.chain.VaultWrapper, data)
	if err != nil {
		return redeemErrPrefix + err.Error()
	}
	receipt, err := w.WaitForReceipt(ctx, hash)
	if err != nil {
		return redeemErrPrefix + err.Error()
	}

	logrus.WithFields(logrus.Fields{
		"vault":  in.Receiver,
		"assets": in.Assets,
		"hash":   hash.Hex(),
	}).Info("Redeem confirmed")

	return fmt.Sprintf("Redeemed %s from Yelay Vault %s.\nTransaction hash: %s\nReceipt: %s",
		in.Assets, in.Receiver, hash.Hex(), renderReceipt(receipt))
}

// scaleToAtomic converts a whole-unit amount to atomic units by the
// token's decimal precision. Integer arithmetic only.
func scaleToAtomic(amount *big.Int, decimals uint8) *big.Int {
	factor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return new(big.Int).Mul(amount, factor)
}

// toUint8 extracts a single uint8 from unpacked contract-call outputs.
func toUint8(out []interface{}) (uint8, error) {
	if len(out) == 0 {
		return 0, fmt.Errorf("empty contract call result")
	}
	v, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("unexpected contract call result type %T", out[0])
	}
	return v, nil
}

// toBigInt extracts a single uint256 from unpacked contract-call outputs.
func toBigInt(out []interface{}) (*big.Int, error) {
	if len(out) == 0 {
		return nil, fmt.Errorf("empty contract call result")
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected contract call result type %T", out[0])
	}
	return v, nil
}
