package dto

import (
	"github.com/finlens/finlens_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NetWorthBreakdownResponse mirrors domain.NetWorthBreakdown with values
// rounded to whole currency units.
type NetWorthBreakdownResponse struct {
	Cash         decimal.Decimal `json:"cash"`
	Investments  decimal.Decimal `json:"investments"`
	Crypto       decimal.Decimal `json:"crypto"`
	RealEstate   decimal.Decimal `json:"real_estate"`
	Other        decimal.Decimal `json:"other"`
	Mortgage     decimal.Decimal `json:"mortgage"`
	CreditDebt   decimal.Decimal `json:"credit_debt"`
	PersonalLoan decimal.Decimal `json:"personal_loan"`
	OtherDebt    decimal.Decimal `json:"other_debt"`
}

// NetWorthResponse is the aggregated net-worth figure for a user.
type NetWorthResponse struct {
	TotalAssets      decimal.Decimal           `json:"total_assets"`
	TotalLiabilities decimal.Decimal           `json:"total_liabilities"`
	NetWorth         decimal.Decimal           `json:"net_worth"`
	Breakdown        NetWorthBreakdownResponse `json:"breakdown"`
}

// ToNetWorthResponse rounds and converts an aggregation result.
func ToNetWorthResponse(n domain.NetWorth) NetWorthResponse {
	r := n.Rounded()
	return NetWorthResponse{
		TotalAssets:      r.TotalAssets,
		TotalLiabilities: r.TotalLiabilities,
		NetWorth:         r.NetWorth,
		Breakdown: NetWorthBreakdownResponse{
			Cash:         r.Breakdown.Cash,
			Investments:  r.Breakdown.Investments,
			Crypto:       r.Breakdown.Crypto,
			RealEstate:   r.Breakdown.RealEstate,
			Other:        r.Breakdown.Other,
			Mortgage:     r.Breakdown.Mortgage,
			CreditDebt:   r.Breakdown.CreditDebt,
			PersonalLoan: r.Breakdown.PersonalLoan,
			OtherDebt:    r.Breakdown.OtherDebt,
		},
	}
}
