package domain_test

import (
	"testing"

	"github.com/finlens/finlens_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidCategory(t *testing.T) {
	tests := []struct {
		name      string
		entryType domain.EntryType
		category  domain.EntryCategory
		want      bool
	}{
		{"asset category on asset", domain.EntryTypeAsset, domain.CategoryRealEstate, true},
		{"liability category on liability", domain.EntryTypeLiability, domain.CategoryMortgage, true},
		{"liability category on asset", domain.EntryTypeAsset, domain.CategoryMortgage, false},
		{"asset category on liability", domain.EntryTypeLiability, domain.CategoryCash, false},
		{"unknown category", domain.EntryTypeAsset, domain.EntryCategory("yacht"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ValidCategory(tt.entryType, tt.category))
		})
	}
}

func TestCategoriesFor(t *testing.T) {
	assert.Equal(t, domain.AssetCategories, domain.CategoriesFor(domain.EntryTypeAsset))
	assert.Equal(t, domain.LiabilityCategories, domain.CategoriesFor(domain.EntryTypeLiability))
}

func TestSubscriptionTier_WalletLimit(t *testing.T) {
	assert.Equal(t, 2, domain.TierFree.WalletLimit())
	assert.Equal(t, -1, domain.TierPremium.WalletLimit())
}

func TestChain_Valid(t *testing.T) {
	for _, c := range domain.Chains {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, domain.Chain("solana").Valid())
}

func TestChain_NativeSymbol(t *testing.T) {
	assert.Equal(t, "MATIC", domain.ChainPolygon.NativeSymbol())
	assert.Equal(t, "ETH", domain.ChainEthereum.NativeSymbol())
	assert.Equal(t, "ETH", domain.ChainBase.NativeSymbol())
}
