package yelay

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/Traf333/agentkit/internal/model"
)

func TestGetBalance(t *testing.T) {
	p := newClaimProvider(t, func(rw http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(rw).Encode([]model.ClaimProofEntry{})
	})

	w := newMockWallet()
	w.readFn = func(to common.Address, method string, args []interface{}) ([]interface{}, error) {
		assert.Equal(t, "balanceOf", method)
		assert.Equal(t, common.HexToAddress(testVaultHex), to)
		assert.Equal(t, w.address, args[0])
		return []interface{}{big.NewInt(5000)}, nil
	}

	got := p.GetBalance(context.Background(), w, BalanceInput{VaultAddress: testVaultHex})

	assert.Equal(t, "Balance in Yelay Vault "+testVaultHex+": 5000 shares.", got)
	assert.Equal(t, []string{"balanceOf"}, w.reads, "no yield read without a claim proof")
}

func TestGetBalanceWithYield(t *testing.T) {
	// Entries arrive out of cycle order; the highest cycle carries the
	// cumulative generated total.
	p := newClaimProvider(t, func(rw http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(rw).Encode([]model.ClaimProofEntry{
			{VaultAddress: testVaultHex, Cycle: 3, YieldSharesTotal: "900"},
			{VaultAddress: testVaultHex, Cycle: 5, YieldSharesTotal: "1400"},
			{VaultAddress: testVaultHex, Cycle: 4, YieldSharesTotal: "1100"},
		})
	})

	w := newMockWallet()
	w.readFn = func(to common.Address, method string, _ []interface{}) ([]interface{}, error) {
		switch method {
		case "balanceOf":
			return []interface{}{big.NewInt(5000)}, nil
		case "yieldSharesClaimed":
			assert.Equal(t, p.Chain().YieldExtractor, to)
			return []interface{}{big.NewInt(120)}, nil
		default:
			return nil, errors.New("unexpected method " + method)
		}
	}

	got := p.GetBalance(context.Background(), w, BalanceInput{VaultAddress: testVaultHex})

	assert.Equal(t,
		"Balance in Yelay Vault "+testVaultHex+": 5000 shares.\n"+
			"Generated yield shares: 1400\n"+
			"Claimed yield shares: 120",
		got)
	assert.Equal(t, []string{"balanceOf", "yieldSharesClaimed"}, w.reads)
}

func TestGetBalanceFailures(t *testing.T) {
	t.Run("invalid input", func(t *testing.T) {
		p := newClaimProvider(t, func(http.ResponseWriter, *http.Request) {
			t.Error("backend must not be called for invalid input")
		})
		got := p.GetBalance(context.Background(), newMockWallet(), BalanceInput{VaultAddress: "0x123"})
		assert.Contains(t, got, "Invalid balance input: ")
	})

	t.Run("no wallet", func(t *testing.T) {
		p := newClaimProvider(t, func(http.ResponseWriter, *http.Request) {})
		got := p.GetBalance(context.Background(), nil, BalanceInput{VaultAddress: testVaultHex})
		assert.True(t, strings.HasPrefix(got, balanceErrPrefix), "got %q", got)
	})

	t.Run("balance read fails", func(t *testing.T) {
		p := newClaimProvider(t, func(http.ResponseWriter, *http.Request) {})
		w := newMockWallet()
		w.readErr = errors.New("rpc down")
		got := p.GetBalance(context.Background(), w, BalanceInput{VaultAddress: testVaultHex})
		assert.Equal(t, balanceErrPrefix+"rpc down", got)
	})

	t.Run("proof fetch fails", func(t *testing.T) {
		p := newClaimProvider(t, func(rw http.ResponseWriter, _ *http.Request) {
			rw.WriteHeader(http.StatusBadGateway)
		})
		w := newMockWallet()
		w.readFn = func(common.Address, string, []interface{}) ([]interface{}, error) {
			return []interface{}{big.NewInt(1)}, nil
		}
		got := p.GetBalance(context.Background(), w, BalanceInput{VaultAddress: testVaultHex})
		assert.True(t, strings.HasPrefix(got, balanceErrPrefix), "got %q", got)
	})
}
