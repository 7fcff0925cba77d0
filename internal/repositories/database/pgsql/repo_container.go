package pgsql

import (
	portsrepo "github.com/finlens/finlens_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ItemRepo:         newPgxItemRepository(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		EntryRepo:        newPgxManualEntryRepository(dbPool),
		CryptoRepo:       newPgxCryptoRepository(dbPool),
		QuotaRepo:        newPgxQuotaRepository(dbPool),
		WebhookEventRepo: newPgxWebhookEventRepository(dbPool),
		SettingsRepo:     newPgxSettingsRepository(dbPool),
	}
}
