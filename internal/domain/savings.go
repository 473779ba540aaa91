package domain

import (
	"github.com/shopspring/decimal"

	"github.com/vinod-lakhani/planengine/pkg/money"
)

// SavingsCategory identifies one bucket of the monthly savings budget.
type SavingsCategory string

const (
	CategoryMatch401k        SavingsCategory = "match_401k"
	CategoryHSA              SavingsCategory = "hsa"
	CategoryEmergencyFund    SavingsCategory = "emergency_fund"
	CategoryHighAPRDebt      SavingsCategory = "high_apr_debt"
	CategoryRetirementTaxAdv SavingsCategory = "retirement_tax_adv"
	CategoryBrokerage        SavingsCategory = "brokerage"
)

// FundingPriority lists categories from highest to lowest financial
// priority: employer match, HSA, emergency fund, high-APR debt,
// tax-advantaged retirement, brokerage.
var FundingPriority = []SavingsCategory{
	CategoryMatch401k,
	CategoryHSA,
	CategoryEmergencyFund,
	CategoryHighAPRDebt,
	CategoryRetirementTaxAdv,
	CategoryBrokerage,
}

// ReductionOrder lists the categories eligible for automatic shrinking,
// lowest financial priority first. Match and HSA never appear here; they
// change only by explicit absolute set.
var ReductionOrder = []SavingsCategory{
	CategoryBrokerage,
	CategoryRetirementTaxAdv,
	CategoryEmergencyFund,
	CategoryHighAPRDebt,
}

// SavingsSnapshot is the full vector of monthly category amounts plus the
// derived total. Snapshots are values: every transform returns a new one,
// nothing mutates in place.
type SavingsSnapshot struct {
	Match401k        decimal.Decimal `yaml:"match_401k" json:"match_401k"`
	HSA              decimal.Decimal `yaml:"hsa" json:"hsa"`
	EmergencyFund    decimal.Decimal `yaml:"emergency_fund" json:"emergency_fund"`
	HighAPRDebt      decimal.Decimal `yaml:"high_apr_debt" json:"high_apr_debt"`
	RetirementTaxAdv decimal.Decimal `yaml:"retirement_tax_adv" json:"retirement_tax_adv"`
	Brokerage        decimal.Decimal `yaml:"brokerage" json:"brokerage"`

	// MonthlySavings is the derived sum of the six categories.
	MonthlySavings decimal.Decimal `yaml:"monthly_savings" json:"monthly_savings"`
}

// Amount returns the current amount for a category. Unknown categories
// read as zero.
func (s SavingsSnapshot) Amount(c SavingsCategory) decimal.Decimal {
	switch c {
	case CategoryMatch401k:
		return s.Match401k
	case CategoryHSA:
		return s.HSA
	case CategoryEmergencyFund:
		return s.EmergencyFund
	case CategoryHighAPRDebt:
		return s.HighAPRDebt
	case CategoryRetirementTaxAdv:
		return s.RetirementTaxAdv
	case CategoryBrokerage:
		return s.Brokerage
	}
	return decimal.Zero
}

// WithAmount returns a copy with one category set to the given amount,
// rounded to cents and floored at zero, and the derived total refreshed.
func (s SavingsSnapshot) WithAmount(c SavingsCategory, amount decimal.Decimal) SavingsSnapshot {
	amount = money.RoundCents(money.ClampZero(amount))
	out := s
	switch c {
	case CategoryMatch401k:
		out.Match401k = amount
	case CategoryHSA:
		out.HSA = amount
	case CategoryEmergencyFund:
		out.EmergencyFund = amount
	case CategoryHighAPRDebt:
		out.HighAPRDebt = amount
	case CategoryRetirementTaxAdv:
		out.RetirementTaxAdv = amount
	case CategoryBrokerage:
		out.Brokerage = amount
	}
	out.MonthlySavings = out.Total()
	return out
}

// Total sums the six category amounts.
func (s SavingsSnapshot) Total() decimal.Decimal {
	return s.Match401k.Add(s.HSA).
		Add(s.EmergencyFund).Add(s.HighAPRDebt).
		Add(s.RetirementTaxAdv).Add(s.Brokerage)
}

// Normalized returns a copy with every amount rounded to cents and the
// derived total recomputed.
func (s SavingsSnapshot) Normalized() SavingsSnapshot {
	out := s
	for _, c := range FundingPriority {
		out = out.WithAmount(c, s.Amount(c))
	}
	return out
}

// Equal reports whether two snapshots carry the same amounts, including
// the derived total.
func (s SavingsSnapshot) Equal(other SavingsSnapshot) bool {
	for _, c := range FundingPriority {
		if !s.Amount(c).Equal(other.Amount(c)) {
			return false
		}
	}
	return s.MonthlySavings.Equal(other.MonthlySavings)
}

// IntentKind tags a structured savings edit arriving from the chat or UI
// boundary. The engine never sees free text; the parser in
// internal/intent produces these.
type IntentKind string

const (
	IntentReset     IntentKind = "reset"
	IntentSetTarget IntentKind = "set_target"
	IntentDelta     IntentKind = "delta"
	IntentEliminate IntentKind = "eliminate"
)

// SavingsIntent is a tagged edit to one savings category. Amount is the
// absolute target for set_target, the signed change for delta, and unused
// for reset and eliminate.
type SavingsIntent struct {
	Kind     IntentKind      `json:"kind"`
	Category SavingsCategory `json:"category,omitempty"`
	Amount   decimal.Decimal `json:"amount,omitempty"`
}
