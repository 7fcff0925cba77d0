// Package alchemy reads on-chain balances over the provider's JSON-RPC API.
// It implements gateways.ChainGateway.
package alchemy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/finlens/finlens_backend/internal/apperrors"
	"github.com/finlens/finlens_backend/internal/core/domain"
	"github.com/finlens/finlens_backend/internal/core/ports/gateways"
	"github.com/shopspring/decimal"
)

const requestTimeout = 30 * time.Second

// RPC hosts per chain; the API key is appended as the path.
var chainHosts = map[domain.Chain]string{
	domain.ChainEthereum: "https://eth-mainnet.g.alchemy.com/v2/",
	domain.ChainPolygon:  "https://polygon-mainnet.g.alchemy.com/v2/",
	domain.ChainBase:     "https://base-mainnet.g.alchemy.com/v2/",
	domain.ChainArbitrum: "https://arb-mainnet.g.alchemy.com/v2/",
	domain.ChainOptimism: "https://opt-mainnet.g.alchemy.com/v2/",
}

type Client struct {
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a chain gateway with a bounded request timeout.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Ensure Client implements gateways.ChainGateway
var _ gateways.ChainGateway = (*Client)(nil)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Client) call(ctx context.Context, chain domain.Chain, method string, params any, result any) error {
	host, ok := chainHosts[chain]
	if !ok {
		return fmt.Errorf("%w: unsupported chain %s", apperrors.ErrProvider, chain)
	}

	payload, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("%w: failed to encode rpc request: %v", apperrors.ErrProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, host+c.apiKey, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to build rpc request: %v", apperrors.ErrProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrProvider, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read rpc response: %v", apperrors.ErrProvider, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d from %s", apperrors.ErrProvider, resp.StatusCode, method)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  *rpcError       `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%w: failed to decode rpc response: %v", apperrors.ErrProvider, err)
	}
	if envelope.Error != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrProvider, envelope.Error.Message)
	}
	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return fmt.Errorf("%w: failed to decode rpc result: %v", apperrors.ErrProvider, err)
	}
	return nil
}

// NativeBalance returns the chain's gas token balance in whole units.
func (c *Client) NativeBalance(ctx context.Context, chain domain.Chain, address string) (decimal.Decimal, error) {
	var hexBalance string
	if err := c.call(ctx, chain, "eth_getBalance", []any{address, "latest"}, &hexBalance); err != nil {
		return decimal.Zero, err
	}
	wei, err := parseHexAmount(hexBalance)
	if err != nil {
		return decimal.Zero, err
	}
	// 18 decimals for all supported chains' native tokens.
	return wei.Shift(-18), nil
}

// TokenBalances returns the ERC-20 positions held by the address. Token
// metadata (symbol, name, decimals) is resolved per non-zero balance.
func (c *Client) TokenBalances(ctx context.Context, chain domain.Chain, address string) ([]gateways.TokenBalance, error) {
	var resp struct {
		TokenBalances []struct {
			ContractAddress string `json:"contractAddress"`
			TokenBalance    string `json:"tokenBalance"`
		} `json:"tokenBalances"`
	}
	if err := c.call(ctx, chain, "alchemy_getTokenBalances", []any{address, "erc20"}, &resp); err != nil {
		return nil, err
	}

	var balances []gateways.TokenBalance
	for _, tb := range resp.TokenBalances {
		raw, err := parseHexAmount(tb.TokenBalance)
		if err != nil || raw.IsZero() {
			continue
		}

		var meta struct {
			Symbol   string `json:"symbol"`
			Name     string `json:"name"`
			Decimals int32  `json:"decimals"`
		}
		if err := c.call(ctx, chain, "alchemy_getTokenMetadata", []any{tb.ContractAddress}, &meta); err != nil {
			return nil, err
		}
		if meta.Symbol == "" {
			continue
		}

		balances = append(balances, gateways.TokenBalance{
			ContractAddress: tb.ContractAddress,
			Symbol:          meta.Symbol,
			Name:            meta.Name,
			Balance:         raw.Shift(-meta.Decimals),
		})
	}
	return balances, nil
}

// parseHexAmount converts a 0x-prefixed hex quantity into a decimal.
func parseHexAmount(hex string) (decimal.Decimal, error) {
	trimmed := strings.TrimPrefix(hex, "0x")
	if trimmed == "" {
		return decimal.Zero, nil
	}
	value, ok := new(big.Int).SetString(trimmed, 16)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: invalid hex amount %q", apperrors.ErrProvider, hex)
	}
	return decimal.NewFromBigInt(value, 0), nil
}
