// Package plaid is the HTTP adapter for the bank-aggregation provider. It
// implements gateways.BankGateway; every failure, timeouts included, comes
// back wrapped in apperrors.ErrProvider with the provider's message kept.
package plaid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/finlens/finlens_backend/internal/apperrors"
	"github.com/finlens/finlens_backend/internal/core/ports/gateways"
	"github.com/shopspring/decimal"
)

const requestTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	clientID   string
	secret     string
	httpClient *http.Client
}

// NewClient builds a provider client with a bounded request timeout.
func NewClient(baseURL, clientID, secret string) *Client {
	return &Client{
		baseURL:    baseURL,
		clientID:   clientID,
		secret:     secret,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Ensure Client implements gateways.BankGateway
var _ gateways.BankGateway = (*Client)(nil)

type apiError struct {
	ErrorType    string `json:"error_type"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// post sends one provider RPC call and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body map[string]any, out any) error {
	body["client_id"] = c.clientID
	body["secret"] = c.secret

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", apperrors.ErrProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to build request: %v", apperrors.ErrProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrProvider, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", apperrors.ErrProvider, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.ErrorMessage != "" {
			return fmt.Errorf("%w: %s (%s)", apperrors.ErrProvider, apiErr.ErrorMessage, apiErr.ErrorCode)
		}
		return fmt.Errorf("%w: unexpected status %d from %s", apperrors.ErrProvider, resp.StatusCode, path)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", apperrors.ErrProvider, err)
	}
	return nil
}

type accountsGetResponse struct {
	Accounts []struct {
		AccountID    string `json:"account_id"`
		Name         string `json:"name"`
		OfficialName string `json:"official_name"`
		Mask         string `json:"mask"`
		Type         string `json:"type"`
		Subtype      string `json:"subtype"`
		Balances     struct {
			Current        *float64 `json:"current"`
			Available      *float64 `json:"available"`
			IsoCurrencyCode string  `json:"iso_currency_code"`
		} `json:"balances"`
	} `json:"accounts"`
}

func (c *Client) FetchAccounts(ctx context.Context, accessToken string) ([]gateways.BankAccount, error) {
	var resp accountsGetResponse
	err := c.post(ctx, "/accounts/get", map[string]any{"access_token": accessToken}, &resp)
	if err != nil {
		return nil, err
	}

	accounts := make([]gateways.BankAccount, 0, len(resp.Accounts))
	for _, a := range resp.Accounts {
		acct := gateways.BankAccount{
			AccountID:    a.AccountID,
			Name:         a.Name,
			OfficialName: a.OfficialName,
			Mask:         a.Mask,
			Type:         a.Type,
			Subtype:      a.Subtype,
			CurrencyCode: a.Balances.IsoCurrencyCode,
		}
		if a.Balances.Current != nil {
			acct.CurrentBalance = decimal.NewNullDecimal(decimal.NewFromFloat(*a.Balances.Current))
		}
		if a.Balances.Available != nil {
			acct.AvailableBalance = decimal.NewNullDecimal(decimal.NewFromFloat(*a.Balances.Available))
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

type transactionsGetResponse struct {
	Transactions []struct {
		TransactionID   string   `json:"transaction_id"`
		AccountID       string   `json:"account_id"`
		Date            string   `json:"date"`
		AuthorizedDate  *string  `json:"authorized_date"`
		Name            string   `json:"name"`
		MerchantName    string   `json:"merchant_name"`
		Category        []string `json:"category"`
		Amount          float64  `json:"amount"`
		IsoCurrencyCode string   `json:"iso_currency_code"`
		Pending         bool     `json:"pending"`
	} `json:"transactions"`
}

func (c *Client) FetchTransactions(ctx context.Context, accessToken string, startDate, endDate time.Time) ([]gateways.BankTransaction, error) {
	var resp transactionsGetResponse
	err := c.post(ctx, "/transactions/get", map[string]any{
		"access_token": accessToken,
		"start_date":   startDate.Format("2006-01-02"),
		"end_date":     endDate.Format("2006-01-02"),
		"options":      map[string]any{"count": 500, "offset": 0},
	}, &resp)
	if err != nil {
		return nil, err
	}

	txns := make([]gateways.BankTransaction, 0, len(resp.Transactions))
	for _, t := range resp.Transactions {
		date, err := time.Parse("2006-01-02", t.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid transaction date %q: %v", apperrors.ErrProvider, t.Date, err)
		}
		txn := gateways.BankTransaction{
			TransactionID: t.TransactionID,
			AccountID:     t.AccountID,
			Date:          date,
			Name:          t.Name,
			MerchantName:  t.MerchantName,
			Category:      t.Category,
			Amount:        decimal.NewFromFloat(t.Amount),
			CurrencyCode:  t.IsoCurrencyCode,
			Pending:       t.Pending,
		}
		if t.AuthorizedDate != nil {
			if auth, err := time.Parse("2006-01-02", *t.AuthorizedDate); err == nil {
				txn.AuthorizedDate = &auth
			}
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (string, string, error) {
	var resp struct {
		ItemID      string `json:"item_id"`
		AccessToken string `json:"access_token"`
	}
	err := c.post(ctx, "/item/public_token/exchange", map[string]any{"public_token": publicToken}, &resp)
	if err != nil {
		return "", "", err
	}
	return resp.ItemID, resp.AccessToken, nil
}

func (c *Client) CreateLinkToken(ctx context.Context, userID string) (string, error) {
	var resp struct {
		LinkToken string `json:"link_token"`
	}
	err := c.post(ctx, "/link/token/create", map[string]any{
		"user":          map[string]any{"client_user_id": userID},
		"client_name":   "FinLens",
		"products":      []string{"transactions"},
		"country_codes": []string{"US"},
		"language":      "en",
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.LinkToken, nil
}
