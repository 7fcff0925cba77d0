package services

import (
	"github.com/finlens/finlens_backend/internal/core/ports/gateways"
	portsrepo "github.com/finlens/finlens_backend/internal/core/ports/repositories"
	portssvc "github.com/finlens/finlens_backend/internal/core/ports/services"
	"github.com/finlens/finlens_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, bank gateways.BankGateway, chain gateways.ChainGateway, prices gateways.PriceGateway) *portssvc.ServiceContainer {
	gate := NewSyncGate(repos.QuotaRepo, repos.SettingsRepo, cfg.SyncFreshnessWindow, cfg.SyncQuotaPerDay, cfg.DeploymentMode)

	container := &portssvc.ServiceContainer{}
	container.Sync = NewSyncService(repos.ItemRepo, repos.AccountRepo, repos.TransactionRepo, gate, bank)
	container.Webhook = NewWebhookService(repos.ItemRepo, repos.AccountRepo, repos.TransactionRepo, repos.WebhookEventRepo, bank)
	container.NetWorth = NewNetWorthService(repos.AccountRepo, repos.EntryRepo, repos.CryptoRepo)
	container.Entry = NewEntryService(repos.EntryRepo)
	container.Crypto = NewCryptoService(repos.CryptoRepo, repos.SettingsRepo, chain, prices)
	container.Link = NewLinkService(repos.ItemRepo, repos.AccountRepo, bank)
	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.SyncSvcFacade     = (*SyncService)(nil)
	_ portssvc.WebhookSvcFacade  = (*WebhookService)(nil)
	_ portssvc.NetWorthSvcFacade = (*NetWorthService)(nil)
	_ portssvc.EntrySvcFacade    = (*EntryService)(nil)
	_ portssvc.CryptoSvcFacade   = (*CryptoService)(nil)
	_ portssvc.LinkSvcFacade     = (*LinkService)(nil)
)
