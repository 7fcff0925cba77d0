package services

import (
	"context"
	"strings"

	"github.com/finlens/finlens_backend/internal/core/domain"
	portsrepo "github.com/finlens/finlens_backend/internal/core/ports/repositories"
	"github.com/finlens/finlens_backend/internal/dto"
)

// NetWorthService is the aggregation engine. It folds linked accounts,
// manual entries and crypto holdings into one categorized breakdown. A
// failing source degrades to a zero contribution instead of failing the
// whole computation; values accumulate as exact decimals and are rounded
// once at the response boundary.
type NetWorthService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	entryRepo   portsrepo.ManualEntryRepositoryFacade
	cryptoRepo  portsrepo.CryptoRepositoryFacade
}

func NewNetWorthService(accountRepo portsrepo.AccountRepositoryFacade, entryRepo portsrepo.ManualEntryRepositoryFacade, cryptoRepo portsrepo.CryptoRepositoryFacade) *NetWorthService {
	return &NetWorthService{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		cryptoRepo:  cryptoRepo,
	}
}

// GetNetWorth aggregates the user's current position across all sources.
func (s *NetWorthService) GetNetWorth(ctx context.Context, userID string) (*dto.NetWorthResponse, error) {
	var n domain.NetWorth

	accounts, err := s.accountRepo.ListActiveAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "net worth: failed to load linked accounts, contributing zero")
		accounts = nil
	}
	for i := range accounts {
		s.addAccount(&n, &accounts[i])
	}

	entries, err := s.entryRepo.ListEntries(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "net worth: failed to load manual entries, contributing zero")
		entries = nil
	}
	for i := range entries {
		s.addEntry(&n, &entries[i])
	}

	holdings, err := s.cryptoRepo.ListHoldingsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "net worth: failed to load crypto holdings, contributing zero")
		holdings = nil
	}
	for i := range holdings {
		if holdings[i].USDValue.Valid {
			n.Breakdown.Crypto = n.Breakdown.Crypto.Add(holdings[i].USDValue.Decimal)
			n.TotalAssets = n.TotalAssets.Add(holdings[i].USDValue.Decimal)
		}
	}

	n.NetWorth = n.TotalAssets.Sub(n.TotalLiabilities)
	resp := dto.ToNetWorthResponse(n)
	return &resp, nil
}

// addAccount folds one linked account into the breakdown. Accounts without a
// current balance, and accounts of a type we don't recognize, contribute
// nothing. Providers report credit and loan balances with inconsistent sign
// (an overpaid card comes back negative), so debt contributions use the
// absolute value.
func (s *NetWorthService) addAccount(n *domain.NetWorth, acct *domain.LinkedAccount) {
	if !acct.CurrentBalance.Valid {
		return
	}
	balance := acct.CurrentBalance.Decimal

	switch acct.AccountType {
	case domain.AccountTypeDepository:
		n.Breakdown.Cash = n.Breakdown.Cash.Add(balance)
		n.TotalAssets = n.TotalAssets.Add(balance)
	case domain.AccountTypeInvestment:
		n.Breakdown.Investments = n.Breakdown.Investments.Add(balance)
		n.TotalAssets = n.TotalAssets.Add(balance)
	case domain.AccountTypeCredit:
		owed := balance.Abs()
		n.Breakdown.CreditDebt = n.Breakdown.CreditDebt.Add(owed)
		n.TotalLiabilities = n.TotalLiabilities.Add(owed)
	case domain.AccountTypeLoan:
		// Loans always count toward total liabilities; only recognized
		// subtypes land in a named bucket.
		owed := balance.Abs()
		n.TotalLiabilities = n.TotalLiabilities.Add(owed)
		switch {
		case isMortgageSubtype(acct.AccountSubtype):
			n.Breakdown.Mortgage = n.Breakdown.Mortgage.Add(owed)
		case isPersonalLoanSubtype(acct.AccountSubtype):
			n.Breakdown.PersonalLoan = n.Breakdown.PersonalLoan.Add(owed)
		}
	}
}

// addEntry folds one manual entry into the breakdown.
func (s *NetWorthService) addEntry(n *domain.NetWorth, entry *domain.ManualEntry) {
	value := entry.CurrentValue
	if entry.EntryType == domain.EntryTypeLiability {
		n.TotalLiabilities = n.TotalLiabilities.Add(value)
		switch entry.Category {
		case domain.CategoryMortgage:
			n.Breakdown.Mortgage = n.Breakdown.Mortgage.Add(value)
		case domain.CategoryCreditDebt:
			n.Breakdown.CreditDebt = n.Breakdown.CreditDebt.Add(value)
		case domain.CategoryPersonalLoan:
			n.Breakdown.PersonalLoan = n.Breakdown.PersonalLoan.Add(value)
		default:
			n.Breakdown.OtherDebt = n.Breakdown.OtherDebt.Add(value)
		}
		return
	}

	n.TotalAssets = n.TotalAssets.Add(value)
	switch entry.Category {
	case domain.CategoryCash:
		n.Breakdown.Cash = n.Breakdown.Cash.Add(value)
	case domain.CategoryInvestment, domain.CategoryPrivateEquity, domain.CategoryPrivateStock, domain.CategoryBonds, domain.CategoryP2PLending:
		n.Breakdown.Investments = n.Breakdown.Investments.Add(value)
	case domain.CategoryRealEstate:
		n.Breakdown.RealEstate = n.Breakdown.RealEstate.Add(value)
	default:
		n.Breakdown.Other = n.Breakdown.Other.Add(value)
	}
}

func isMortgageSubtype(subtype string) bool {
	s := strings.ToLower(subtype)
	return strings.Contains(s, "mortgage") || strings.Contains(s, "home equity")
}

func isPersonalLoanSubtype(subtype string) bool {
	s := strings.ToLower(subtype)
	return strings.Contains(s, "student") || strings.Contains(s, "personal")
}
