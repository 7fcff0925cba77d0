package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/finlens/finlens_backend/internal/apperrors"
	"github.com/finlens/finlens_backend/internal/core/domain"
	"github.com/finlens/finlens_backend/internal/core/ports/gateways"
	portsrepo "github.com/finlens/finlens_backend/internal/core/ports/repositories"
	"github.com/finlens/finlens_backend/internal/dto"
)

const defaultTransactionLookbackDays = 90

// SyncService drives the pull path: it consults the SyncGate, calls the bank
// gateway, persists results through the repositories and keeps item status
// current. Multi-item syncs continue past per-item failures.
type SyncService struct {
	BaseService
	itemRepo    portsrepo.ItemRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	gate        *SyncGate
	bank        gateways.BankGateway
}

func NewSyncService(itemRepo portsrepo.ItemRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, gate *SyncGate, bank gateways.BankGateway) *SyncService {
	return &SyncService{
		itemRepo:    itemRepo,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		gate:        gate,
		bank:        bank,
	}
}

// SyncAccounts refreshes balances and metadata for one item. Fresh items are
// served from the store without touching the provider or the quota; a real
// refresh consumes one quota unit before any provider I/O.
func (s *SyncService) SyncAccounts(ctx context.Context, userID string, req dto.SyncAccountsRequest) (*dto.SyncAccountsResponse, error) {
	if err := s.gate.EnsurePremium(ctx, userID); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.FindItemByID(ctx, userID, req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve item for account sync: %w", err)
	}

	now := time.Now()
	if !s.gate.ShouldSync(item, req.Force, now) {
		count, err := s.accountRepo.CountAccountsForItem(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count accounts for cached response: %w", err)
		}
		s.LogDebug(ctx, "account sync served from cache", slog.Int64("item_id", item.ID))
		return &dto.SyncAccountsResponse{
			Success:        true,
			Cached:         true,
			AccountsSynced: count,
			LastSyncAt:     item.LastSuccessfulSyncAt,
		}, nil
	}

	if err := s.gate.ConsumeQuota(ctx, userID); err != nil {
		return nil, err
	}

	synced, err := s.refreshAccounts(ctx, item)
	if err != nil {
		// The status transition to error is part of the contract and is not
		// rolled back by the surfaced failure.
		if stErr := s.itemRepo.UpdateStatus(ctx, item.ID, domain.SyncStatusError, err.Error()); stErr != nil {
			s.LogError(ctx, stErr, "failed to record item error status", slog.Int64("item_id", item.ID))
		}
		return nil, fmt.Errorf("failed to sync accounts: %w", err)
	}

	if err := s.itemRepo.MarkSyncSuccess(ctx, item.ID, now); err != nil {
		return nil, fmt.Errorf("failed to mark item sync success: %w", err)
	}

	s.LogInfo(ctx, "account sync completed", slog.Int64("item_id", item.ID), slog.Int("accounts_synced", synced))
	return &dto.SyncAccountsResponse{
		Success:        true,
		Cached:         false,
		AccountsSynced: synced,
		LastSyncAt:     &now,
	}, nil
}

// SyncTransactions pulls transactions for one item or every active item. A
// failing item contributes zero and flips to error status, but never aborts
// the loop.
func (s *SyncService) SyncTransactions(ctx context.Context, userID string, req dto.SyncTransactionsRequest) (*dto.SyncTransactionsResponse, error) {
	if err := s.gate.EnsurePremium(ctx, userID); err != nil {
		return nil, err
	}

	days := defaultTransactionLookbackDays
	if req.Days != nil {
		days = *req.Days
	}

	var items []domain.LinkedItem
	if req.ItemID != nil {
		item, err := s.itemRepo.FindItemByID(ctx, userID, *req.ItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve item for transaction sync: %w", err)
		}
		items = []domain.LinkedItem{*item}
	} else {
		var err error
		items, err = s.itemRepo.ListActiveItems(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list active items: %w", err)
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no active items", apperrors.ErrNotFound)
	}

	now := time.Now()
	resp := &dto.SyncTransactionsResponse{Success: true}
	for i := range items {
		item := &items[i]
		resp.ItemsProcessed++

		if !s.gate.ShouldSync(item, req.Force, now) {
			resp.CachedItems++
			continue
		}

		count, err := s.syncItemTransactions(ctx, item, days)
		if err != nil {
			s.LogError(ctx, err, "transaction sync failed for item", slog.Int64("item_id", item.ID))
			if stErr := s.itemRepo.UpdateStatus(ctx, item.ID, domain.SyncStatusError, err.Error()); stErr != nil {
				s.LogError(ctx, stErr, "failed to record item error status", slog.Int64("item_id", item.ID))
			}
			continue
		}
		resp.TransactionsSynced += count

		if err := s.itemRepo.MarkSyncSuccess(ctx, item.ID, now); err != nil {
			s.LogError(ctx, err, "failed to mark item sync success", slog.Int64("item_id", item.ID))
		}
	}

	return resp, nil
}

// ListAccounts returns the user's linked accounts.
func (s *SyncService) ListAccounts(ctx context.Context, userID string) (*dto.ListAccountsResponse, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	resp := &dto.ListAccountsResponse{Accounts: make([]dto.AccountResponse, 0, len(accounts))}
	for i := range accounts {
		resp.Accounts = append(resp.Accounts, dto.ToAccountResponse(&accounts[i]))
	}
	return resp, nil
}

// ListTransactions returns a page of the user's non-hidden transactions.
func (s *SyncService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if params.Limit <= 0 {
		params.Limit = 50
	}
	txns, err := s.txnRepo.ListByUser(ctx, userID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	resp := &dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(txns)),
		Limit:        params.Limit,
		Offset:       params.Offset,
	}
	for i := range txns {
		resp.Transactions = append(resp.Transactions, dto.ToTransactionResponse(&txns[i]))
	}
	return resp, nil
}

// refreshAccounts fetches the item's accounts from the provider and upserts
// each by its natural key.
func (s *SyncService) refreshAccounts(ctx context.Context, item *domain.LinkedItem) (int, error) {
	accounts, err := s.bank.FetchAccounts(ctx, item.AccessToken)
	if err != nil {
		return 0, err
	}
	now := time.Now()
	for _, acct := range accounts {
		linked := domain.LinkedAccount{
			PlaidItemID:      item.ID,
			UserID:           item.UserID,
			AccountID:        acct.AccountID,
			Name:             acct.Name,
			OfficialName:     acct.OfficialName,
			Mask:             acct.Mask,
			AccountType:      mapAccountType(acct.Type),
			AccountSubtype:   acct.Subtype,
			CurrentBalance:   acct.CurrentBalance,
			AvailableBalance: acct.AvailableBalance,
			CurrencyCode:     acct.CurrencyCode,
			IsActive:         true,
			Timestamps:       domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		}
		if err := s.accountRepo.UpsertAccount(ctx, linked); err != nil {
			return 0, fmt.Errorf("failed to upsert account %s: %w", acct.AccountID, err)
		}
	}
	return len(accounts), nil
}

// syncItemTransactions fetches the look-back window for one item and upserts
// the batch. Transactions referencing accounts not yet stored are skipped.
func (s *SyncService) syncItemTransactions(ctx context.Context, item *domain.LinkedItem, days int) (int, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	providerTxns, err := s.bank.FetchTransactions(ctx, item.AccessToken, startDate, endDate)
	if err != nil {
		return 0, err
	}

	accountIDs, err := s.accountRepo.AccountIDMapForItem(ctx, item.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to map provider account ids: %w", err)
	}

	now := time.Now()
	txns := make([]domain.Transaction, 0, len(providerTxns))
	for _, pt := range providerTxns {
		accountID, ok := accountIDs[pt.AccountID]
		if !ok {
			s.LogDebug(ctx, "skipping transaction for unknown account", slog.String("provider_account_id", pt.AccountID))
			continue
		}
		merchant := pt.MerchantName
		if merchant == "" {
			merchant = pt.Name
		}
		currency := pt.CurrencyCode
		if currency == "" {
			currency = "USD"
		}
		txns = append(txns, domain.Transaction{
			UserID:         item.UserID,
			PlaidAccountID: accountID,
			TransactionID:  pt.TransactionID,
			Name:           pt.Name,
			Date:           pt.Date,
			AuthorizedDate: pt.AuthorizedDate,
			MerchantName:   merchant,
			Category:       pt.Category,
			Amount:         pt.Amount,
			CurrencyCode:   currency,
			Pending:        pt.Pending,
			IsHidden:       false,
			Timestamps:     domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		})
	}

	count, err := s.txnRepo.UpsertTransactions(ctx, txns)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert transactions: %w", err)
	}
	return count, nil
}

// mapAccountType normalizes the provider's account type string.
func mapAccountType(providerType string) domain.AccountType {
	switch strings.ToLower(providerType) {
	case "depository":
		return domain.AccountTypeDepository
	case "credit":
		return domain.AccountTypeCredit
	case "loan":
		return domain.AccountTypeLoan
	case "investment", "brokerage":
		return domain.AccountTypeInvestment
	default:
		return domain.AccountTypeOther
	}
}
