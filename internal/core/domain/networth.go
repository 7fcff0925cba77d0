package domain

import "github.com/shopspring/decimal"

// NetWorthBreakdown buckets asset and liability value by category. Values
// accumulate as exact decimals; rounding to whole currency units happens once
// at the response boundary via Rounded, never per input row.
type NetWorthBreakdown struct {
	// Asset buckets
	Cash        decimal.Decimal `json:"cash"`
	Investments decimal.Decimal `json:"investments"`
	Crypto      decimal.Decimal `json:"crypto"`
	RealEstate  decimal.Decimal `json:"real_estate"`
	Other       decimal.Decimal `json:"other"`
	// Liability buckets
	Mortgage     decimal.Decimal `json:"mortgage"`
	CreditDebt   decimal.Decimal `json:"credit_debt"`
	PersonalLoan decimal.Decimal `json:"personal_loan"`
	OtherDebt    decimal.Decimal `json:"other_debt"`
}

// NetWorth is the aggregation result across all sources.
type NetWorth struct {
	TotalAssets      decimal.Decimal   `json:"total_assets"`
	TotalLiabilities decimal.Decimal   `json:"total_liabilities"`
	NetWorth         decimal.Decimal   `json:"net_worth"`
	Breakdown        NetWorthBreakdown `json:"breakdown"`
}

// Rounded returns a copy with every bucket and total rounded to whole
// currency units.
func (n NetWorth) Rounded() NetWorth {
	return NetWorth{
		TotalAssets:      n.TotalAssets.Round(0),
		TotalLiabilities: n.TotalLiabilities.Round(0),
		NetWorth:         n.NetWorth.Round(0),
		Breakdown: NetWorthBreakdown{
			Cash:         n.Breakdown.Cash.Round(0),
			Investments:  n.Breakdown.Investments.Round(0),
			Crypto:       n.Breakdown.Crypto.Round(0),
			RealEstate:   n.Breakdown.RealEstate.Round(0),
			Other:        n.Breakdown.Other.Round(0),
			Mortgage:     n.Breakdown.Mortgage.Round(0),
			CreditDebt:   n.Breakdown.CreditDebt.Round(0),
			PersonalLoan: n.Breakdown.PersonalLoan.Round(0),
			OtherDebt:    n.Breakdown.OtherDebt.Round(0),
		},
	}
}
