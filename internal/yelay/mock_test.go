package yelay

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type sentTx struct {
	to   common.Address
	data []byte
}

// mockWallet implements wallet.Provider for handler tests. Contract reads
// are dispatched through readFn; sends and waits are recorded and answer
// with the configured hash, receipt, and errors.
type mockWallet struct {
	address common.Address
	chainID *big.Int

	readFn  func(to common.Address, method string, args []interface{}) ([]interface{}, error)
	readErr error

	hash    common.Hash
	sendErr error
	receipt *types.Receipt
	waitErr error

	sent  []sentTx
	reads []string
}

func newMockWallet() *mockWallet {
	return &mockWallet{
		address: common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		chainID: big.NewInt(1),
		hash:    common.HexToHash("0xabc1"),
		receipt: &types.Receipt{
			Status:      types.ReceiptStatusSuccessful,
			BlockNumber: big.NewInt(123),
			GasUsed:     21000,
		},
	}
}

func (m *mockWallet) Address() common.Address { return m.address }

func (m *mockWallet) ChainID() *big.Int { return m.chainID }

func (m *mockWallet) ReadContract(_ context.Context, to common.Address, _ abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	m.reads = append(m.reads, method)
	if m.readErr != nil {
		return nil, m.readErr
	}
	if m.readFn != nil {
		return m.readFn(to, method, args)
	}
	return nil, nil
}

func (m *mockWallet) SendTransaction(_ context.Context, to common.Address, data []byte) (common.Hash, error) {
	m.sent = append(m.sent, sentTx{to: to, data: data})
	if m.sendErr != nil {
		return common.Hash{}, m.sendErr
	}
	return m.hash, nil
}

func (m *mockWallet) WaitForReceipt(_ context.Context, _ common.Hash) (*types.Receipt, error) {
	if m.waitErr != nil {
		return nil, m.waitErr
	}
	return m.receipt, nil
}
