// Package coingecko resolves USD spot prices for token identifiers. It
// implements gateways.PriceGateway.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/finlens/finlens_backend/internal/apperrors"
	"github.com/finlens/finlens_backend/internal/core/ports/gateways"
	"github.com/shopspring/decimal"
)

const requestTimeout = 15 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a price gateway with a bounded request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Ensure Client implements gateways.PriceGateway
var _ gateways.PriceGateway = (*Client)(nil)

// USDPrices resolves the USD spot price for each id. Unknown ids are simply
// absent from the returned map.
func (c *Client) USDPrices(ctx context.Context, ids []string) (map[string]decimal.Decimal, error) {
	if len(ids) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("vs_currencies", "usd")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/simple/price?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build price request: %v", apperrors.ErrProvider, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrProvider, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read price response: %v", apperrors.ErrProvider, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d from price API", apperrors.ErrProvider, resp.StatusCode)
	}

	var priced map[string]struct {
		USD decimal.Decimal `json:"usd"`
	}
	if err := json.Unmarshal(raw, &priced); err != nil {
		return nil, fmt.Errorf("%w: failed to decode price response: %v", apperrors.ErrProvider, err)
	}

	prices := make(map[string]decimal.Decimal, len(priced))
	for id, entry := range priced {
		prices[id] = entry.USD
	}
	return prices, nil
}
