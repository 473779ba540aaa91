package domain

import (
	"github.com/shopspring/decimal"
)

// AllocationTargets is a needs/wants/savings split expressed as fractions
// of net income. The same shape carries both the long-run policy
// ("targets") and the trailing 3-month realized average ("actuals");
// callers distinguish the two by parameter name.
type AllocationTargets struct {
	NeedsPct   decimal.Decimal `yaml:"needs_pct" json:"needs_pct"`
	WantsPct   decimal.Decimal `yaml:"wants_pct" json:"wants_pct"`
	SavingsPct decimal.Decimal `yaml:"savings_pct" json:"savings_pct"`
}

// Sum returns the total of the three fractions. A valid split sums to 1.0
// within a tolerance of 0.001.
func (t AllocationTargets) Sum() decimal.Decimal {
	return t.NeedsPct.Add(t.WantsPct).Add(t.SavingsPct)
}

// AdjustmentRule identifies which allocation rule fired for a period.
// Tests and downstream messaging branch on this, because the three capped
// outcomes are economically distinct: a shift-limit cap clears next month,
// a wants-floor cap is structural.
type AdjustmentRule string

const (
	// RuleAtTarget: realized savings already meet or exceed the target.
	RuleAtTarget AdjustmentRule = "savings_at_target"
	// RuleGapClosed: the transfer from wants fully closed the savings gap.
	RuleGapClosed AdjustmentRule = "gap_closed"
	// RuleFloorLimited: the wants floor stopped the transfer short.
	RuleFloorLimited AdjustmentRule = "wants_floor_limited"
	// RuleShiftLimited: the per-period shift limit stopped the transfer short.
	RuleShiftLimited AdjustmentRule = "shift_limit_capped"
)

// IncomeAllocation is one pay period's dollar split. Needs + Wants +
// Savings equals Income exactly after reconciliation; any rounding
// residual is absorbed by Savings.
type IncomeAllocation struct {
	Income  decimal.Decimal `json:"income"`
	Needs   decimal.Decimal `json:"needs"`
	Wants   decimal.Decimal `json:"wants"`
	Savings decimal.Decimal `json:"savings"`
	Rule    AdjustmentRule  `json:"rule"`
	Notes   []string        `json:"notes"`
}

// Total returns the sum of the three dollar buckets.
func (a IncomeAllocation) Total() decimal.Decimal {
	return a.Needs.Add(a.Wants).Add(a.Savings)
}
