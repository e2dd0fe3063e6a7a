package yelay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Traf333/agentkit/internal/actions"
	"github.com/Traf333/agentkit/internal/chains"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		chainID  string
		testMode bool
		wantErr  bool
	}{
		{name: "ethereum mainnet", chainID: chains.ChainEthereum, testMode: false, wantErr: false},
		{name: "ethereum test mode", chainID: chains.ChainEthereum, testMode: true, wantErr: false},
		{name: "sonic mainnet", chainID: chains.ChainSonic, testMode: false, wantErr: false},
		{name: "base mainnet", chainID: chains.ChainBase, testMode: false, wantErr: false},
		{name: "sonic test mode unsupported", chainID: chains.ChainSonic, testMode: true, wantErr: true},
		{name: "unknown chain", chainID: "137", testMode: false, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.chainID, tt.testMode)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ProviderName, p.Name())
			assert.Equal(t, tt.chainID, p.Chain().ChainID)
		})
	}
}

func TestSupportsNetwork(t *testing.T) {
	p, err := New(chains.ChainEthereum, false)
	require.NoError(t, err)

	tests := []struct {
		name    string
		network actions.Network
		want    bool
	}{
		{name: "evm ethereum", network: actions.Network{ProtocolFamily: "evm", ChainID: "1"}, want: true},
		{name: "evm sonic", network: actions.Network{ProtocolFamily: "evm", ChainID: "146"}, want: true},
		{name: "evm base", network: actions.Network{ProtocolFamily: "evm", ChainID: "8453"}, want: true},
		{name: "evm unsupported chain", network: actions.Network{ProtocolFamily: "evm", ChainID: "137"}, want: false},
		{name: "non-evm family", network: actions.Network{ProtocolFamily: "svm", ChainID: "1"}, want: false},
		{name: "empty network", network: actions.Network{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.SupportsNetwork(tt.network))
		})
	}
}

func TestActionsDeclarationOrder(t *testing.T) {
	p, err := New(chains.ChainEthereum, false)
	require.NoError(t, err)

	acts := p.Actions()
	names := make([]string, len(acts))
	for i, a := range acts {
		names[i] = a.Name
	}
	assert.Equal(t, []string{"get_vaults", "deposit", "redeem", "claim", "get_balance"}, names)

	for _, a := range acts {
		assert.NotEmpty(t, a.Description, "action %s has no description", a.Name)
		assert.NotNil(t, a.Handler, "action %s has no handler", a.Name)
		assert.Equal(t, "object", a.Schema["type"], "action %s schema is not an object", a.Name)
	}
}

func TestWithPoolID(t *testing.T) {
	p, err := New(chains.ChainEthereum, false, WithPoolID(7))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), p.poolID)
	assert.Equal(t, "7", p.poolIDBig().String())
}
