package yelay

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Traf333/agentkit/internal/chains"
	"github.com/Traf333/agentkit/internal/model"
)

func newClaimProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := New(chains.ChainEthereum, false, WithBackendURL(srv.URL))
	require.NoError(t, err)
	return p
}

func TestClaim(t *testing.T) {
	entries := []model.ClaimProofEntry{
		{
			VaultAddress:     testVaultHex,
			PoolID:           0,
			Cycle:            12,
			YieldSharesTotal: "1000",
			Proof: []string{
				"0x0000000000000000000000000000000000000000000000000000000000000001",
				"0x0000000000000000000000000000000000000000000000000000000000000002",
			},
		},
		{
			VaultAddress:     testVaultHex,
			PoolID:           0,
			Cycle:            13,
			YieldSharesTotal: "250",
			Proof:            []string{"0x0000000000000000000000000000000000000000000000000000000000000003"},
		},
	}

	w := newMockWallet()
	p := newClaimProvider(t, func(rw http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/claim-proof", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("chainId"))
		assert.Equal(t, w.address.Hex(), r.URL.Query().Get("u"))
		assert.Equal(t, "0", r.URL.Query().Get("p"))
		assert.Equal(t, testVaultHex, r.URL.Query().Get("v"))
		json.NewEncoder(rw).Encode(entries)
	})

	got := p.Claim(context.Background(), w, ClaimInput{VaultAddress: testVaultHex})

	require.Len(t, w.sent, 1)
	assert.Equal(t, p.Chain().YieldExtractor, w.sent[0].to)

	method := YieldExtractorABI.Methods["claim"]
	require.Equal(t, method.ID, w.sent[0].data[:4])
	args, err := method.Inputs.Unpack(w.sent[0].data[4:])
	require.NoError(t, err)
	requests := args[0].([]struct {
		YelayVault       common.Address `json:"yelayVault"`
		ProjectId        *big.Int       `json:"projectId"`
		Cycle            *big.Int       `json:"cycle"`
		YieldSharesTotal *big.Int       `json:"yieldSharesTotal"`
		Proof            [][32]byte     `json:"proof"`
	})
	require.Len(t, requests, 2)
	assert.Equal(t, common.HexToAddress(testVaultHex), requests[0].YelayVault)
	assert.Equal(t, "12", requests[0].Cycle.String())
	assert.Equal(t, "1000", requests[0].YieldSharesTotal.String())
	assert.Len(t, requests[0].Proof, 2)
	assert.Equal(t, "13", requests[1].Cycle.String())
	assert.Equal(t, "250", requests[1].YieldSharesTotal.String())

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 4, "one line per proof entry plus the transaction trailer")
	assert.Equal(t, "Claimed 1000 yield shares from Yelay Vault "+testVaultHex+" in cycle 12.", lines[0])
	assert.Equal(t, "Claimed 250 yield shares from Yelay Vault "+testVaultHex+" in cycle 13.", lines[1])
	assert.Equal(t, "Transaction hash: "+w.hash.Hex(), lines[2])
	assert.Contains(t, lines[3], "Receipt: status=1")
}

func TestClaimNoYield(t *testing.T) {
	p := newClaimProvider(t, func(rw http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(rw).Encode([]model.ClaimProofEntry{})
	})

	w := newMockWallet()
	got := p.Claim(context.Background(), w, ClaimInput{VaultAddress: testVaultHex})

	assert.Equal(t, "No claimable yield found for Yelay Vault "+testVaultHex+".", got)
	assert.Empty(t, w.sent)
}

func TestClaimFailures(t *testing.T) {
	t.Run("invalid input", func(t *testing.T) {
		p := newClaimProvider(t, func(rw http.ResponseWriter, _ *http.Request) {
			t.Error("backend must not be called for invalid input")
		})
		got := p.Claim(context.Background(), newMockWallet(), ClaimInput{VaultAddress: "bogus"})
		assert.Contains(t, got, "Invalid claim input: ")
	})

	t.Run("proof fetch fails", func(t *testing.T) {
		p := newClaimProvider(t, func(rw http.ResponseWriter, _ *http.Request) {
			rw.WriteHeader(http.StatusInternalServerError)
		})
		w := newMockWallet()
		got := p.Claim(context.Background(), w, ClaimInput{VaultAddress: testVaultHex})
		assert.True(t, strings.HasPrefix(got, claimProofErrPrefix), "got %q", got)
		assert.Empty(t, w.sent)
	})

	t.Run("malformed proof entry", func(t *testing.T) {
		p := newClaimProvider(t, func(rw http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(rw).Encode([]model.ClaimProofEntry{
				{VaultAddress: testVaultHex, YieldSharesTotal: "not-a-number"},
			})
		})
		w := newMockWallet()
		got := p.Claim(context.Background(), w, ClaimInput{VaultAddress: testVaultHex})
		assert.True(t, strings.HasPrefix(got, claimProofErrPrefix), "got %q", got)
		assert.Empty(t, w.sent)
	})

	t.Run("send fails", func(t *testing.T) {
		p := newClaimProvider(t, func(rw http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(rw).Encode([]model.ClaimProofEntry{
				{VaultAddress: testVaultHex, Cycle: 1, YieldSharesTotal: "10"},
			})
		})
		w := newMockWallet()
		w.sendErr = errors.New("gas estimation failed")
		got := p.Claim(context.Background(), w, ClaimInput{VaultAddress: testVaultHex})
		assert.True(t, strings.HasPrefix(got, claimErrPrefix), "got %q", got)
		assert.Contains(t, got, "gas estimation failed")
	})
}
