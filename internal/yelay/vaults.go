package yelay

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Traf333/agentkit/internal/model"
)

// BackendUnavailableMessage is the constant user-facing message returned
// whenever the vault listing cannot be produced. The underlying cause is
// logged, never surfaced to the agent.
const BackendUnavailableMessage = "Yield backend is currently unavailable. Please try again later."

// ListVaults fetches the vault list and the APY list concurrently, left
// joins them by vault address, and renders one line per vault in the
// original vault-list order. Any fetch or decode failure collapses to
// BackendUnavailableMessage.
func (p *Provider) ListVaults(ctx context.Context) string {
	var (
		wg        sync.WaitGroup
		vaults    []model.VaultDetails
		records   []model.ApyRecord
		vaultsErr error
		apysErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		vaults, vaultsErr = p.backend.Vaults(ctx, p.chain.ChainID)
	}()
	go func() {
		defer wg.Done()
		records, apysErr = p.backend.VaultAPYs(ctx, p.chain.ChainID)
	}()
	wg.Wait()

	if vaultsErr != nil || apysErr != nil {
		logrus.WithFields(logrus.Fields{
			"chainId":   p.chain.ChainID,
			"vaultsErr": vaultsErr,
			"apysErr":   apysErr,
		}).Warn("Yield backend fetch failed")
		return BackendUnavailableMessage
	}

	// Join key is the exact address string; first matching record wins.
	apyByVault := make(map[string]string, len(records))
	for _, r := range records {
		if _, seen := apyByVault[r.Vault]; !seen {
			apyByVault[r.Vault] = r.APY
		}
	}

	lines := make([]string, len(vaults))
	for i, v := range vaults {
		lines[i] = fmt.Sprintf("%s: APY %s%%", v.Name, apyByVault[v.Address])
	}
	return strings.Join(lines, "\n")
}
