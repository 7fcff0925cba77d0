package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finlens/finlens_backend/internal/core/domain"
	"github.com/finlens/finlens_backend/internal/core/ports/gateways"
	portsrepo "github.com/finlens/finlens_backend/internal/core/ports/repositories"
	"github.com/finlens/finlens_backend/internal/dto"
)

// LinkService runs the provider link flow.
type LinkService struct {
	BaseService
	itemRepo    portsrepo.ItemRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	bank        gateways.BankGateway
}

func NewLinkService(itemRepo portsrepo.ItemRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, bank gateways.BankGateway) *LinkService {
	return &LinkService{
		itemRepo:    itemRepo,
		accountRepo: accountRepo,
		bank:        bank,
	}
}

// CreateLinkToken issues a short-lived token for the provider's link widget.
func (s *LinkService) CreateLinkToken(ctx context.Context, userID string) (*dto.CreateLinkTokenResponse, error) {
	token, err := s.bank.CreateLinkToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create link token: %w", err)
	}
	return &dto.CreateLinkTokenResponse{LinkToken: token}, nil
}

// ExchangeToken swaps the public token for a persistent item and pulls its
// initial accounts.
func (s *LinkService) ExchangeToken(ctx context.Context, userID string, req dto.ExchangeTokenRequest) (*dto.ExchangeTokenResponse, error) {
	providerItemID, accessToken, err := s.bank.ExchangePublicToken(ctx, req.PublicToken)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange public token: %w", err)
	}

	now := time.Now()
	item := domain.LinkedItem{
		UserID:          userID,
		ProviderItemID:  providerItemID,
		AccessToken:     accessToken,
		InstitutionName: req.InstitutionName,
		SyncStatus:      domain.SyncStatusActive,
		Timestamps:      domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	itemID, err := s.itemRepo.SaveItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to save linked item: %w", err)
	}
	item.ID = itemID

	accounts, err := s.bank.FetchAccounts(ctx, accessToken)
	if err != nil {
		// The item is linked; the first sync will pick the accounts up.
		s.LogError(ctx, err, "failed to fetch initial accounts after token exchange", slog.Int64("item_id", itemID))
		return &dto.ExchangeTokenResponse{Success: true, ItemID: itemID}, nil
	}

	linked := 0
	for _, acct := range accounts {
		account := domain.LinkedAccount{
			PlaidItemID:      itemID,
			UserID:           userID,
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
		if err := s.accountRepo.UpsertAccount(ctx, account); err != nil {
			s.LogError(ctx, err, "failed to upsert initial account", slog.String("provider_account_id", acct.AccountID))
			continue
		}
		linked++
	}

	if err := s.itemRepo.MarkSyncSuccess(ctx, itemID, now); err != nil {
		s.LogError(ctx, err, "failed to stamp initial sync", slog.Int64("item_id", itemID))
	}

	s.LogInfo(ctx, "item linked", slog.Int64("item_id", itemID), slog.Int("accounts_linked", linked))
	return &dto.ExchangeTokenResponse{Success: true, ItemID: itemID, AccountsLinked: linked}, nil
}
