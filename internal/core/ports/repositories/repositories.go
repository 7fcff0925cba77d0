package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ItemRepo         ItemRepositoryFacade
	AccountRepo      AccountRepositoryFacade
	TransactionRepo  TransactionRepositoryFacade
	EntryRepo        ManualEntryRepositoryFacade
	CryptoRepo       CryptoRepositoryFacade
	QuotaRepo        QuotaRepositoryFacade
	WebhookEventRepo WebhookEventRepositoryFacade
	SettingsRepo     SettingsRepositoryFacade
}
