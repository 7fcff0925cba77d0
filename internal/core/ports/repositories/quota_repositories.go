package repositories

import "context"

// QuotaRepositoryFacade is the per-user, per-day ledger of remote sync calls.
type QuotaRepositoryFacade interface {
	// ConsumeQuota atomically increments today's counter for the user unless it
	// is already at the ceiling, in which case it returns false without
	// mutating. The check and the increment are a single database-side step so
	// concurrent requests for the same user cannot both slip under the limit.
	// A missing row for (user, today) counts as zero.
	ConsumeQuota(ctx context.Context, userID string, ceiling int) (bool, error)

	// CurrentUsage returns today's counter, zero when no row exists.
	CurrentUsage(ctx context.Context, userID string) (int, error)
}
