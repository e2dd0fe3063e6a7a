// Package backend provides the REST client for the Yelay yield backend,
// covering the vault list, APY, and claim-proof endpoints.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/Traf333/agentkit/internal/model"
)

// Client talks to one chain's yield backend. All calls take a context and
// perform exactly one logical request; retries below are transport-level
// connection retries only.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a backend client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: StandardClient(newRetryClient()),
	}
}

// newRetryClient creates a new HTTP client with retry capabilities
func newRetryClient() *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 3
	c.RetryWaitMin = 500 * time.Millisecond
	c.RetryWaitMax = 3 * time.Second
	c.Logger = nil
	// Retry connection-level failures only. Once the backend produced a
	// response, that was the one attempt; error statuses are reported,
	// not retried.
	c.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return resp == nil && err != nil, nil
	}
	return c
}

// StandardClient converts a retryablehttp.Client to a standard http.Client
func StandardClient(retryClient *retryablehttp.Client) *http.Client {
	return retryClient.StandardClient()
}

// Vaults retrieves the vault list for a chain.
func (c *Client) Vaults(ctx context.Context, chainID string) ([]model.VaultDetails, error) {
	q := url.Values{"chainId": {chainID}}

	var vaults []model.VaultDetails
	if err := c.get(ctx, "/vaults", q, &vaults); err != nil {
		return nil, fmt.Errorf("fetching vaults: %w", err)
	}

	logrus.Debugf("Received %d vaults for chain %s", len(vaults), chainID)
	return vaults, nil
}

// VaultAPYs retrieves the APY records for a chain, one per vault per
// measurement window.
func (c *Client) VaultAPYs(ctx context.Context, chainID string) ([]model.ApyRecord, error) {
	q := url.Values{"chainId": {chainID}}

	var records []model.ApyRecord
	if err := c.get(ctx, "/interest/vaults", q, &records); err != nil {
		return nil, fmt.Errorf("fetching vault APYs: %w", err)
	}

	logrus.Debugf("Received %d APY records for chain %s", len(records), chainID)
	return records, nil
}

// ClaimProof retrieves the claim-proof entries authorizing a yield claim
// for the given user, pool, and vault.
func (c *Client) ClaimProof(ctx context.Context, chainID, user string, poolID uint64, vault string) ([]model.ClaimProofEntry, error) {
	q := url.Values{
		"chainId": {chainID},
		"u":       {user},
		"p":       {strconv.FormatUint(poolID, 10)},
		"v":       {vault},
	}

	var entries []model.ClaimProofEntry
	if err := c.get(ctx, "/claim-proof", q, &entries); err != nil {
		return nil, fmt.Errorf("fetching claim proof: %w", err)
	}

	logrus.Debugf("Received %d claim-proof entries for user %s vault %s", len(entries), user, vault)
	return entries, nil
}

// get issues a GET request and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logrus.Debugf("Fetching %s from yield backend: %s", path, c.baseURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error fetching data from yield backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("yield backend error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}
