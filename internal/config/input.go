package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vinod-lakhani/planengine/internal/calculation"
	"github.com/vinod-lakhani/planengine/internal/domain"
)

// MaxHorizonMonths bounds a scenario file's requested projection length.
const MaxHorizonMonths = 600

// InputParser handles parsing of scenario input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario input from a YAML file and validates it.
func (ip *InputParser) LoadFromFile(filename string) (*domain.ScenarioInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file %s", filename)
	}

	var input domain.ScenarioInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}

	if err := ip.ValidateInput(&input); err != nil {
		return nil, errors.Wrap(err, "scenario validation failed")
	}
	return &input, nil
}

// ValidateInput validates a loaded scenario input.
func (ip *InputParser) ValidateInput(input *domain.ScenarioInput) error {
	if input.Months < 0 || input.Months > MaxHorizonMonths {
		return errors.Errorf("months must be between 0 and %d (0 selects the default horizon)", MaxHorizonMonths)
	}
	if input.StartDate.IsZero() {
		return errors.New("start_date is required")
	}

	if err := validateOpening(&input.Opening); err != nil {
		return errors.Wrap(err, "opening balances")
	}
	if err := validateGrowth(&input.Growth); err != nil {
		return errors.Wrap(err, "growth assumptions")
	}

	if input.Allocation == nil && len(input.Plan) == 0 {
		return errors.New("either allocation inputs or at least one plan entry is required")
	}
	if input.Allocation != nil {
		if err := validateAllocation(input.Allocation); err != nil {
			return errors.Wrap(err, "allocation")
		}
	}
	for i, p := range input.Plan {
		if err := validatePlanEntry(&p); err != nil {
			return errors.Wrapf(err, "plan entry %d", i)
		}
	}

	if input.Savings != nil {
		for _, c := range domain.FundingPriority {
			if input.Savings.Amount(c).IsNegative() {
				return errors.Errorf("savings category %s cannot be negative", c)
			}
		}
	}
	if input.EmergencyFundTarget.IsNegative() {
		return errors.New("emergency_fund_target cannot be negative")
	}
	return nil
}

func validateOpening(opening *domain.OpeningBalances) error {
	if opening.Cash.IsNegative() || opening.Brokerage.IsNegative() ||
		opening.Retirement.IsNegative() || opening.HSA.IsNegative() ||
		opening.Other.IsNegative() {
		return errors.New("account balances cannot be negative")
	}
	for i, l := range opening.Liabilities {
		if l.Name == "" {
			return errors.Errorf("liability %d: name is required", i)
		}
		if l.Balance.IsNegative() {
			return errors.Errorf("liability %q: balance cannot be negative", l.Name)
		}
		if l.APR.IsNegative() || l.APR.GreaterThan(decimal.NewFromInt(2)) {
			return errors.Errorf("liability %q: apr must be a fraction between 0 and 2", l.Name)
		}
		if l.MinPayment.IsNegative() {
			return errors.Errorf("liability %q: min_payment cannot be negative", l.Name)
		}
	}
	return nil
}

func validateGrowth(growth *domain.GrowthAssumptions) error {
	lo := decimal.NewFromInt(-1)
	hi := decimal.NewFromInt(1)
	for _, r := range []decimal.Decimal{growth.CashYield, growth.NominalReturn, growth.TaxDrag} {
		if r.LessThan(lo) || r.GreaterThan(hi) {
			return errors.Errorf("rates must be fractions between -1 and 1, got %s", r)
		}
	}
	if growth.TaxDrag.IsNegative() {
		return errors.New("tax_drag cannot be negative")
	}
	return nil
}

func validateAllocation(a *domain.AllocationInput) error {
	if !a.NetIncomeMonthly.IsPositive() {
		return errors.New("net_income_monthly must be positive")
	}
	if err := calculation.ValidateShares("targets", a.Targets); err != nil {
		return err
	}
	if err := calculation.ValidateShares("actuals", a.Actuals); err != nil {
		return err
	}
	if a.ShiftLimitPct.IsNegative() || a.ShiftLimitPct.GreaterThan(decimal.NewFromInt(1)) {
		return errors.New("shift_limit_pct must be a fraction between 0 and 1")
	}
	return nil
}

func validatePlanEntry(p *domain.MonthlyPlan) error {
	fields := map[string]decimal.Decimal{
		"net_income":       p.NetIncome,
		"needs":            p.Needs,
		"wants":            p.Wants,
		"emergency_fund":   p.EmergencyFund,
		"unallocated":      p.Unallocated,
		"brokerage":        p.Brokerage,
		"match_401k":       p.Match401k,
		"retirement_extra": p.RetirementExtra,
		"hsa_contribution": p.HSAContribution,
		"extra_debt":       p.ExtraDebt,
	}
	for name, v := range fields {
		if v.IsNegative() {
			return errors.Errorf("%s cannot be negative", name)
		}
	}
	return nil
}

// NormalizeTargets rescales a percentage triple so it sums to exactly
// 1.0. This is the opt-in sanitization layer for callers holding
// malformed inputs; the engine itself always validates and rejects.
func NormalizeTargets(t domain.AllocationTargets) (domain.AllocationTargets, error) {
	sum := t.Sum()
	if !sum.IsPositive() {
		return domain.AllocationTargets{}, errors.Errorf("cannot normalize shares summing to %s", sum)
	}
	needs := t.NeedsPct.Div(sum)
	wants := t.WantsPct.Div(sum)
	return domain.AllocationTargets{
		NeedsPct:   needs,
		WantsPct:   wants,
		SavingsPct: decimal.NewFromInt(1).Sub(needs).Sub(wants),
	}, nil
}

// CreateExampleInput returns a complete scenario input suitable for
// writing out as a starter file.
func (ip *InputParser) CreateExampleInput() *domain.ScenarioInput {
	return &domain.ScenarioInput{
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Months:    480,
		Opening: domain.OpeningBalances{
			Cash:       decimal.NewFromInt(8000),
			Brokerage:  decimal.NewFromInt(15000),
			Retirement: decimal.NewFromInt(42000),
			HSA:        decimal.NewFromInt(3500),
			Liabilities: []domain.Liability{
				{
					Name:       "Credit card",
					Balance:    decimal.NewFromInt(4200),
					APR:        decimal.NewFromFloat(0.229),
					MinPayment: decimal.NewFromInt(95),
				},
				{
					Name:       "Car loan",
					Balance:    decimal.NewFromInt(11800),
					APR:        decimal.NewFromFloat(0.064),
					MinPayment: decimal.NewFromInt(310),
				},
			},
		},
		Growth: domain.GrowthAssumptions{
			CashYield:     decimal.NewFromFloat(0.035),
			NominalReturn: decimal.NewFromFloat(0.07),
			TaxDrag:       decimal.NewFromFloat(0.005),
		},
		Allocation: &domain.AllocationInput{
			NetIncomeMonthly: decimal.NewFromInt(5400),
			Targets: domain.AllocationTargets{
				NeedsPct:   decimal.NewFromFloat(0.50),
				WantsPct:   decimal.NewFromFloat(0.30),
				SavingsPct: decimal.NewFromFloat(0.20),
			},
			Actuals: domain.AllocationTargets{
				NeedsPct:   decimal.NewFromFloat(0.52),
				WantsPct:   decimal.NewFromFloat(0.34),
				SavingsPct: decimal.NewFromFloat(0.14),
			},
		},
		Savings: &domain.SavingsSnapshot{
			Match401k:     decimal.NewFromInt(200),
			HSA:           decimal.NewFromInt(100),
			EmergencyFund: decimal.NewFromInt(250),
			HighAPRDebt:   decimal.NewFromInt(150),
			Brokerage:     decimal.NewFromInt(56),
		},
		EmergencyFundTarget: decimal.NewFromInt(15000),
	}
}
