package dto

// CreateLinkTokenResponse carries the short-lived token the client hands to
// the provider's link widget.
type CreateLinkTokenResponse struct {
	LinkToken string `json:"link_token"`
}

// ExchangeTokenRequest swaps a public token from the link flow for a
// persistent item.
type ExchangeTokenRequest struct {
	PublicToken     string `json:"public_token" binding:"required"`
	InstitutionName string `json:"institution_name"`
}

// ExchangeTokenResponse reports the newly linked item.
type ExchangeTokenResponse struct {
	Success        bool  `json:"success"`
	ItemID         int64 `json:"item_id"`
	AccountsLinked int   `json:"accounts_linked"`
}
