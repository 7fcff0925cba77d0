package domain

// SubscriptionTier gates access to premium features such as provider sync.
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPremium SubscriptionTier = "premium"
)

// UserSettings holds per-user account configuration relevant to the backend.
type UserSettings struct {
	UserID string           `json:"userID"`
	Tier   SubscriptionTier `json:"tier"`
}

// WalletLimit returns the maximum number of crypto wallets for the tier,
// or -1 for unlimited.
func (t SubscriptionTier) WalletLimit() int {
	if t == TierPremium {
		return -1
	}
	return 2
}
