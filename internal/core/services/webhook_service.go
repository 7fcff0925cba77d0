package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finlens/finlens_backend/internal/core/domain"
	"github.com/finlens/finlens_backend/internal/core/ports/gateways"
	portsrepo "github.com/finlens/finlens_backend/internal/core/ports/repositories"
	"github.com/finlens/finlens_backend/internal/dto"
)

// WebhookService is the push path. Every delivery is logged, classified onto
// exactly one action and acknowledged with HTTP 200 regardless of processing
// outcome; the provider retries on non-200 and a retry storm helps nobody.
// The single exception is a failure to record the delivery itself, which is
// surfaced in the ack body so a broken logging pipe is detectable.
type WebhookService struct {
	BaseService
	itemRepo    portsrepo.ItemRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	eventRepo   portsrepo.WebhookEventRepositoryFacade
	bank        gateways.BankGateway
}

func NewWebhookService(itemRepo portsrepo.ItemRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, eventRepo portsrepo.WebhookEventRepositoryFacade, bank gateways.BankGateway) *WebhookService {
	return &WebhookService{
		itemRepo:    itemRepo,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		eventRepo:   eventRepo,
		bank:        bank,
	}
}

// Handle processes one delivery end to end. It never returns an error.
func (s *WebhookService) Handle(ctx context.Context, event domain.WebhookEvent) dto.WebhookAck {
	payload, err := json.Marshal(event)
	if err != nil {
		payload = nil
	}
	logID, err := s.eventRepo.LogEvent(ctx, domain.WebhookEventLog{
		Type:       event.Type,
		Code:       event.Code,
		ItemID:     event.ItemID,
		EventID:    event.EventID,
		Payload:    payload,
		Status:     domain.WebhookEventPending,
		ReceivedAt: time.Now(),
	})
	if err != nil {
		s.LogError(ctx, err, "failed to record webhook event",
			slog.String("webhook_type", event.Type), slog.String("webhook_code", event.Code))
		return dto.WebhookAck{Error: "failed to record webhook event"}
	}

	if event.ItemID != "" {
		if err := s.itemRepo.TouchWebhookReceived(ctx, event.ItemID, time.Now()); err != nil {
			s.LogWarn(ctx, "failed to stamp webhook receipt on item",
				slog.String("item_id", event.ItemID), slog.String("error", err.Error()))
		}
	}

	action := domain.ClassifyWebhook(event)
	if action == domain.ActionNone {
		s.LogInfo(ctx, "ignoring webhook", slog.String("webhook_type", event.Type), slog.String("webhook_code", event.Code))
		if err := s.eventRepo.MarkCompleted(ctx, logID); err != nil {
			s.LogWarn(ctx, "failed to complete webhook event log", slog.String("log_id", logID), slog.String("error", err.Error()))
		}
		return dto.WebhookAck{Received: true}
	}

	if err := s.eventRepo.MarkProcessing(ctx, logID); err != nil {
		s.LogWarn(ctx, "failed to mark webhook event processing", slog.String("log_id", logID), slog.String("error", err.Error()))
	}

	if err := s.apply(ctx, action, event); err != nil {
		s.LogError(ctx, err, "webhook processing failed",
			slog.String("webhook_type", event.Type), slog.String("webhook_code", event.Code), slog.String("item_id", event.ItemID))
		if mErr := s.eventRepo.MarkFailed(ctx, logID, err.Error()); mErr != nil {
			s.LogWarn(ctx, "failed to mark webhook event failed", slog.String("log_id", logID), slog.String("error", mErr.Error()))
		}
		return dto.WebhookAck{Received: true}
	}

	if err := s.eventRepo.MarkCompleted(ctx, logID); err != nil {
		s.LogWarn(ctx, "failed to complete webhook event log", slog.String("log_id", logID), slog.String("error", err.Error()))
	}
	return dto.WebhookAck{Received: true}
}

// apply executes the classified action's side effects.
func (s *WebhookService) apply(ctx context.Context, action domain.WebhookAction, event domain.WebhookEvent) error {
	switch action {
	case domain.ActionInitialBackfill:
		return s.backfill(ctx, event.ItemID, domain.InitialBackfillDays, true)
	case domain.ActionIncrementalSync:
		return s.backfill(ctx, event.ItemID, domain.IncrementalSyncDays, true)
	case domain.ActionHistoricalBackfill:
		return s.backfill(ctx, event.ItemID, domain.HistoricalBackfillDays, false)
	case domain.ActionRemoveTransactions:
		if len(event.RemovedTransactions) == 0 {
			return nil
		}
		if err := s.txnRepo.DeleteByProviderIDs(ctx, event.RemovedTransactions); err != nil {
			return fmt.Errorf("failed to delete removed transactions: %w", err)
		}
		return nil
	case domain.ActionItemError:
		return s.itemRepo.UpdateStatusByProviderItemID(ctx, event.ItemID, domain.SyncStatusError, event.ErrorMessageOrDefault())
	case domain.ActionPendingExpiration:
		return s.itemRepo.UpdateStatusByProviderItemID(ctx, event.ItemID, domain.SyncStatusPendingExpiration, "access consent is expiring, user must re-link")
	case domain.ActionPermissionRevoked:
		// Both mutations are attempted; a failed status update must not
		// leave the item's accounts counting toward net worth.
		statusErr := s.itemRepo.UpdateStatusByProviderItemID(ctx, event.ItemID, domain.SyncStatusDisconnected, "user revoked permissions")
		deactivateErr := s.accountRepo.DeactivateAccountsForProviderItemID(ctx, event.ItemID)
		return errors.Join(statusErr, deactivateErr)
	}
	return nil
}

// backfill pulls the given look-back window of transactions for the item and
// optionally refreshes its balances. Status only goes active on a successful
// transaction pull; a balance-refresh failure alone does not fail the
// backfill.
func (s *WebhookService) backfill(ctx context.Context, providerItemID string, days int, refreshBalances bool) error {
	item, err := s.itemRepo.FindItemByProviderItemID(ctx, providerItemID)
	if err != nil {
		return fmt.Errorf("failed to resolve item %s: %w", providerItemID, err)
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	providerTxns, err := s.bank.FetchTransactions(ctx, item.AccessToken, startDate, endDate)
	if err != nil {
		return fmt.Errorf("failed to fetch transactions: %w", err)
	}

	accountIDs, err := s.accountRepo.AccountIDMapForItem(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("failed to map provider account ids: %w", err)
	}

	now := time.Now()
	txns := make([]domain.Transaction, 0, len(providerTxns))
	for _, pt := range providerTxns {
		accountID, ok := accountIDs[pt.AccountID]
		if !ok {
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
			Timestamps:     domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		})
	}
	count, err := s.txnRepo.UpsertTransactions(ctx, txns)
	if err != nil {
		return fmt.Errorf("failed to upsert transactions: %w", err)
	}

	if refreshBalances {
		if err := s.refreshBalances(ctx, item); err != nil {
			s.LogWarn(ctx, "balance refresh failed during webhook backfill",
				slog.String("item_id", providerItemID), slog.String("error", err.Error()))
		}
	}

	if err := s.itemRepo.MarkSyncSuccess(ctx, item.ID, now); err != nil {
		return fmt.Errorf("failed to mark item sync success: %w", err)
	}

	s.LogInfo(ctx, "webhook backfill completed",
		slog.String("item_id", providerItemID), slog.Int("days", days), slog.Int("transactions_synced", count))
	return nil
}

func (s *WebhookService) refreshBalances(ctx context.Context, item *domain.LinkedItem) error {
	accounts, err := s.bank.FetchAccounts(ctx, item.AccessToken)
	if err != nil {
		return err
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
			return fmt.Errorf("failed to upsert account %s: %w", acct.AccountID, err)
		}
	}
	return nil
}
