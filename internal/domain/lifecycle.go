package domain

import (
	"github.com/shopspring/decimal"
)

// LifecycleMode selects which check-in flow produced a snapshot.
type LifecycleMode string

const (
	// ModeCalibration runs when no prior plan exists.
	ModeCalibration LifecycleMode = "calibration"
	// ModeMonthlyCheckin runs against an existing plan.
	ModeMonthlyCheckin LifecycleMode = "monthly_checkin"
)

// LifecycleState classifies the user's trajectory for one check-in cycle.
type LifecycleState string

const (
	StateFirstTime  LifecycleState = "first_time"
	StateOnTrack    LifecycleState = "on_track"
	StateOversaved  LifecycleState = "oversaved"
	StateUndersaved LifecycleState = "undersaved"
)

// PlanSummary is the per-month dollar shape a lifecycle cycle compares
// and recommends: income in, spending out, savings kept.
type PlanSummary struct {
	NetIncome decimal.Decimal `yaml:"net_income" json:"net_income"`
	Spending  decimal.Decimal `yaml:"spending" json:"spending"`
	Savings   decimal.Decimal `yaml:"savings" json:"savings"`
}

// LifecycleInput feeds one check-in cycle. CurrentPlan nil selects
// calibration mode; otherwise the monthly check-in compares last month's
// realized savings against the plan.
type LifecycleInput struct {
	NetIncomeMonthly decimal.Decimal   `yaml:"net_income_monthly" json:"net_income_monthly"`
	Trailing3moSpend decimal.Decimal   `yaml:"trailing_3mo_spend" json:"trailing_3mo_spend"`
	Actuals          AllocationTargets `yaml:"actuals" json:"actuals"`
	ActualSavings    decimal.Decimal   `yaml:"actual_savings" json:"actual_savings"`
	CurrentPlan      *PlanSummary      `yaml:"current_plan,omitempty" json:"current_plan,omitempty"`
}

// LifecycleSnapshot is the immutable result of one check-in cycle. It is
// rebuilt fresh every cycle, never patched. Headline and Detail are
// derived from the numeric fields on every build; the dollar figure
// quoted in the headline always equals AppliedChange.
type LifecycleSnapshot struct {
	Mode    LifecycleMode     `json:"mode"`
	State   LifecycleState    `json:"state"`
	Actuals AllocationTargets `json:"actuals"`

	Current     *PlanSummary `json:"current,omitempty"`
	Recommended PlanSummary  `json:"recommended"`

	// SavingsVsPlan is realized minus planned savings for the cycle;
	// zero in calibration mode.
	SavingsVsPlan decimal.Decimal `json:"savings_vs_plan"`
	Tolerance     decimal.Decimal `json:"tolerance"`
	// AppliedChange is the signed adjustment to planned savings the
	// recommendation carries.
	AppliedChange decimal.Decimal `json:"applied_change"`
	ShiftLimit    decimal.Decimal `json:"shift_limit"`

	Headline string `json:"headline"`
	Detail   string `json:"detail"`
}
