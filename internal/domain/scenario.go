package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Liability is a debt being paid down by the simulator. APR is an annual
// rate expressed as a fraction (0.22 for 22%). A liability is terminal
// once its balance falls to one cent or less; after that its minimum
// payment is redirected to brokerage for the rest of the horizon.
type Liability struct {
	Name       string          `yaml:"name" json:"name"`
	Balance    decimal.Decimal `yaml:"balance" json:"balance"`
	APR        decimal.Decimal `yaml:"apr" json:"apr"`
	MinPayment decimal.Decimal `yaml:"min_payment" json:"min_payment"`
}

// OpeningBalances are the account positions at the start of a simulation.
// Other covers holdings the simulator carries at face value with no
// growth or inflows.
type OpeningBalances struct {
	Cash        decimal.Decimal `yaml:"cash" json:"cash"`
	Brokerage   decimal.Decimal `yaml:"brokerage" json:"brokerage"`
	Retirement  decimal.Decimal `yaml:"retirement" json:"retirement"`
	HSA         decimal.Decimal `yaml:"hsa,omitempty" json:"hsa,omitempty"`
	Other       decimal.Decimal `yaml:"other,omitempty" json:"other,omitempty"`
	Liabilities []Liability     `yaml:"liabilities,omitempty" json:"liabilities,omitempty"`
}

// GrowthAssumptions hold annual rates as fractions. Compounding is
// monthly at rate/12: cash grows at CashYield, brokerage at NominalReturn
// minus TaxDrag, retirement and HSA at NominalReturn.
type GrowthAssumptions struct {
	CashYield     decimal.Decimal `yaml:"cash_yield" json:"cash_yield"`
	NominalReturn decimal.Decimal `yaml:"nominal_return" json:"nominal_return"`
	TaxDrag       decimal.Decimal `yaml:"tax_drag" json:"tax_drag"`
}

// MonthlyPlan describes one month's cash flows. NetIncome is take-home
// pay; the brokerage, match, retirement-extra and HSA contributions are
// deposited directly to their accounts, and the remainder (needs, wants,
// emergency fund, unallocated, extra debt payment) lands in cash.
type MonthlyPlan struct {
	NetIncome       decimal.Decimal `yaml:"net_income" json:"net_income"`
	Needs           decimal.Decimal `yaml:"needs" json:"needs"`
	Wants           decimal.Decimal `yaml:"wants" json:"wants"`
	EmergencyFund   decimal.Decimal `yaml:"emergency_fund" json:"emergency_fund"`
	Unallocated     decimal.Decimal `yaml:"unallocated" json:"unallocated"`
	Brokerage       decimal.Decimal `yaml:"brokerage" json:"brokerage"`
	Match401k       decimal.Decimal `yaml:"match_401k" json:"match_401k"`
	RetirementExtra decimal.Decimal `yaml:"retirement_extra" json:"retirement_extra"`
	HSAContribution decimal.Decimal `yaml:"hsa_contribution" json:"hsa_contribution"`
	ExtraDebt       decimal.Decimal `yaml:"extra_debt" json:"extra_debt"`
}

// CashDeposit is the portion of the month's income that settles in cash:
// everything except the contributions deposited directly to investment
// accounts.
func (p MonthlyPlan) CashDeposit() decimal.Decimal {
	return p.NetIncome.Sub(p.Brokerage).Sub(p.Match401k).
		Sub(p.RetirementExtra).Sub(p.HSAContribution)
}

// AllocationInput carries the income-allocation inputs for one period.
// When present on a ScenarioInput, the engine derives the monthly plan
// from it instead of using an explicit plan.
type AllocationInput struct {
	NetIncomeMonthly decimal.Decimal   `yaml:"net_income_monthly" json:"net_income_monthly"`
	Targets          AllocationTargets `yaml:"targets" json:"targets"`
	Actuals          AllocationTargets `yaml:"actuals" json:"actuals"`
	ShiftLimitPct    decimal.Decimal   `yaml:"shift_limit_pct,omitempty" json:"shift_limit_pct,omitempty"`
}

// ScenarioInput is everything the simulator consumes. Plan may hold a
// single repeating entry or one entry per month; when it is shorter than
// the horizon the last entry repeats.
type ScenarioInput struct {
	StartDate           time.Time         `yaml:"start_date" json:"start_date"`
	Months              int               `yaml:"months,omitempty" json:"months,omitempty"`
	Opening             OpeningBalances   `yaml:"opening" json:"opening"`
	Growth              GrowthAssumptions `yaml:"growth" json:"growth"`
	Allocation          *AllocationInput  `yaml:"allocation,omitempty" json:"allocation,omitempty"`
	Savings             *SavingsSnapshot  `yaml:"savings,omitempty" json:"savings,omitempty"`
	Plan                []MonthlyPlan     `yaml:"plan,omitempty" json:"plan,omitempty"`
	EmergencyFundTarget decimal.Decimal   `yaml:"emergency_fund_target,omitempty" json:"emergency_fund_target,omitempty"`
}

// PlanFor returns the plan entry covering the given month index.
func (in *ScenarioInput) PlanFor(month int) MonthlyPlan {
	if len(in.Plan) == 0 {
		return MonthlyPlan{}
	}
	if month >= len(in.Plan) {
		return in.Plan[len(in.Plan)-1]
	}
	return in.Plan[month]
}

// SimWarning records a non-fatal event during simulation, such as a cash
// shortfall. The run continues; warnings surface on the output.
type SimWarning struct {
	Month   int    `json:"month"`
	Message string `json:"message"`
}

// ScenarioKPIs are milestone metrics derived from a finished series.
// Pointer fields are nil when the milestone was not reached or cannot be
// computed within the horizon.
type ScenarioKPIs struct {
	EmergencyFundedMonth *int             `json:"emergency_funded_month,omitempty"`
	DebtFreeMonth        *int             `json:"debt_free_month,omitempty"`
	NetWorth5y           *decimal.Decimal `json:"net_worth_5y,omitempty"`
	NetWorth10y          *decimal.Decimal `json:"net_worth_10y,omitempty"`
	NetWorth20y          *decimal.Decimal `json:"net_worth_20y,omitempty"`
	NetWorth40y          *decimal.Decimal `json:"net_worth_40y,omitempty"`
	CAGR                 *decimal.Decimal `json:"cagr,omitempty"`
}

// ScenarioSeries is the simulator output: six parallel monthly series of
// equal length plus labels, warnings and KPIs.
type ScenarioSeries struct {
	Labels      []string          `json:"labels"`
	Assets      []decimal.Decimal `json:"assets"`
	Liabilities []decimal.Decimal `json:"liabilities"`
	NetWorth    []decimal.Decimal `json:"net_worth"`
	Cash        []decimal.Decimal `json:"cash"`
	Brokerage   []decimal.Decimal `json:"brokerage"`
	Retirement  []decimal.Decimal `json:"retirement"`
	Warnings    []SimWarning      `json:"warnings,omitempty"`
	KPIs        ScenarioKPIs      `json:"kpis"`
}

// Horizon returns the simulated length in months.
func (s *ScenarioSeries) Horizon() int {
	return len(s.NetWorth)
}

// ScenarioResult bundles everything one engine run produced: the period
// allocation (when derived), the savings split backing the plan, the
// plan itself, and the projected series.
type ScenarioResult struct {
	Allocation *IncomeAllocation `json:"allocation,omitempty"`
	Savings    *SavingsSnapshot  `json:"savings,omitempty"`
	Plan       MonthlyPlan       `json:"plan"`
	Series     ScenarioSeries    `json:"series"`
}
