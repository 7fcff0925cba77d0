package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType distinguishes the side a manual entry contributes to.
type EntryType string

const (
	EntryTypeAsset     EntryType = "asset"
	EntryTypeLiability EntryType = "liability"
)

// EntryCategory classifies a manual entry. Asset and liability categories are
// disjoint sets; cross-assignment is rejected at validation time.
type EntryCategory string

const (
	CategoryRealEstate    EntryCategory = "real_estate"
	CategoryVehicle       EntryCategory = "vehicle"
	CategoryPrivateEquity EntryCategory = "private_equity"
	CategoryCollectibles  EntryCategory = "collectibles"
	CategoryCash          EntryCategory = "cash"
	CategoryInvestment    EntryCategory = "investment"
	CategoryPrivateStock  EntryCategory = "private_stock"
	CategoryBonds         EntryCategory = "bonds"
	CategoryP2PLending    EntryCategory = "p2p_lending"
	CategoryOther         EntryCategory = "other"

	CategoryMortgage     EntryCategory = "mortgage"
	CategoryPersonalLoan EntryCategory = "personal_loan"
	CategoryBusinessDebt EntryCategory = "business_debt"
	CategoryCreditDebt   EntryCategory = "credit_debt"
	CategoryOtherDebt    EntryCategory = "other_debt"
)

// AssetCategories is the canonical set of categories valid for asset entries.
// It is the single source of truth shared by input validation and the
// aggregation engine, so the two cannot drift apart.
var AssetCategories = []EntryCategory{
	CategoryRealEstate,
	CategoryVehicle,
	CategoryPrivateEquity,
	CategoryCollectibles,
	CategoryCash,
	CategoryInvestment,
	CategoryPrivateStock,
	CategoryBonds,
	CategoryP2PLending,
	CategoryOther,
}

// LiabilityCategories is the canonical set of categories valid for liability entries.
var LiabilityCategories = []EntryCategory{
	CategoryMortgage,
	CategoryPersonalLoan,
	CategoryBusinessDebt,
	CategoryCreditDebt,
	CategoryOtherDebt,
}

// CategoriesFor returns the valid category set for the given entry type.
func CategoriesFor(entryType EntryType) []EntryCategory {
	if entryType == EntryTypeLiability {
		return LiabilityCategories
	}
	return AssetCategories
}

// ValidCategory reports whether category belongs to the set for entryType.
func ValidCategory(entryType EntryType, category EntryCategory) bool {
	for _, c := range CategoriesFor(entryType) {
		if c == category {
			return true
		}
	}
	return false
}

// ManualEntry is a user-authored asset or liability. CurrentValue is always
// non-negative; the entry's side comes from EntryType, not the sign.
type ManualEntry struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	Category     EntryCategory   `json:"category"`
	EntryType    EntryType       `json:"entryType"`
	Notes        string          `json:"notes"`
	Timestamps
}

// ManualEntryHistory is one immutable record of a value change. The first
// record for an entry carries a nil OldValue.
type ManualEntryHistory struct {
	ID        string           `json:"id"`
	EntryID   string           `json:"entryID"`
	UserID    string           `json:"userID"`
	OldValue  *decimal.Decimal `json:"oldValue"`
	NewValue  decimal.Decimal  `json:"newValue"`
	ChangedAt time.Time        `json:"changedAt"`
}
