package calculation

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vinod-lakhani/planengine/internal/domain"
	"github.com/vinod-lakhani/planengine/pkg/money"
)

// Engine orchestrates the allocation and projection pipeline: period
// allocation, savings rebalancing, plan construction, and the net-worth
// simulation. It holds no mutable state between calls; concurrent use
// needs no coordination.
type Engine struct {
	Logger Logger
}

// NewEngine creates an engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the engine logger. A nil logger restores the no-op.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// RunScenario runs one complete scenario. When the input carries
// allocation inputs, the monthly plan is derived: the allocator splits
// the period income, the rebalancer fits the savings categories to the
// resulting budget, and the plan feeds the simulator. Otherwise the
// explicit plan entries are simulated as given.
func (e *Engine) RunScenario(ctx context.Context, input *domain.ScenarioInput) (*domain.ScenarioResult, error) {
	if input == nil {
		return nil, errors.New("scenario input is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input.Months < 0 {
		return nil, errors.Errorf("months must be non-negative, got %d", input.Months)
	}

	result := &domain.ScenarioResult{}
	simInput := *input

	if input.Allocation != nil {
		a := input.Allocation
		alloc, err := Allocate(a.NetIncomeMonthly, a.Targets, a.Actuals,
			AllocateOptions{ShiftLimitPct: a.ShiftLimitPct})
		if err != nil {
			return nil, errors.Wrap(err, "income allocation failed")
		}
		e.Logger.Debugf("allocated %s: needs %s, wants %s, savings %s (%s)",
			money.Format(alloc.Income), money.Format(alloc.Needs),
			money.Format(alloc.Wants), money.Format(alloc.Savings), alloc.Rule)

		base := domain.SavingsSnapshot{}
		if input.Savings != nil {
			base = *input.Savings
		}
		rebalanced := ApplyOverridesAndRebalance(base, nil, alloc.Savings, false)
		snapshot := rebalanced.Snapshot

		plan := BuildMonthlyPlan(alloc, snapshot)
		result.Allocation = &alloc
		result.Savings = &snapshot
		result.Plan = plan
		simInput.Plan = []domain.MonthlyPlan{plan}
	} else {
		if len(input.Plan) == 0 {
			return nil, errors.New("either allocation inputs or an explicit plan is required")
		}
		result.Plan = input.Plan[0]
		if input.Savings != nil {
			snapshot := input.Savings.Normalized()
			result.Savings = &snapshot
		}
	}

	result.Series = Simulate(simInput)
	if n := len(result.Series.Warnings); n > 0 {
		e.Logger.Warnf("simulation finished with %d warning(s); first: %s",
			n, result.Series.Warnings[0].Message)
	}
	return result, nil
}

// BuildMonthlyPlan converts a period allocation and its savings split
// into the simulator's monthly plan shape. Any part of the savings
// budget the snapshot does not commit stays in cash as unallocated.
func BuildMonthlyPlan(alloc domain.IncomeAllocation, snap domain.SavingsSnapshot) domain.MonthlyPlan {
	unallocated := money.ClampZero(money.RoundCents(alloc.Savings.Sub(snap.Total())))
	return domain.MonthlyPlan{
		NetIncome:       alloc.Income,
		Needs:           alloc.Needs,
		Wants:           alloc.Wants,
		EmergencyFund:   snap.EmergencyFund,
		Unallocated:     unallocated,
		Brokerage:       snap.Brokerage,
		Match401k:       snap.Match401k,
		RetirementExtra: snap.RetirementTaxAdv,
		HSAContribution: snap.HSA,
		ExtraDebt:       snap.HighAPRDebt,
	}
}

// ErrResetIntent signals that a reset cannot be applied to a snapshot in
// place; the caller must recompute the plan from inputs.
var ErrResetIntent = errors.New("reset intent requires recomputing the plan from inputs")

// ApplyIntent maps a structured savings edit onto the rebalancer. Deltas
// and absolute sets route through the stepper path so the caller learns
// which bucket absorbed the change; eliminations free the whole category
// and let the rebalancer redistribute.
func ApplyIntent(current domain.SavingsSnapshot, in domain.SavingsIntent, pool decimal.Decimal) (StepperResult, error) {
	switch in.Kind {
	case domain.IntentReset:
		return StepperResult{}, ErrResetIntent
	case domain.IntentDelta:
		return ApplyPostTaxStepperChange(current, in.Category, in.Amount, pool), nil
	case domain.IntentSetTarget:
		delta := in.Amount.Sub(current.Amount(in.Category))
		return ApplyPostTaxStepperChange(current, in.Category, delta, pool), nil
	case domain.IntentEliminate:
		// Freed money goes back to brokerage unless brokerage itself is
		// being eliminated, in which case it stays unallocated.
		allowCashLeft := in.Category == domain.CategoryBrokerage
		deltas := map[domain.SavingsCategory]decimal.Decimal{
			in.Category: current.Amount(in.Category).Neg(),
		}
		res := ApplyOverridesAndRebalance(current, deltas, pool, allowCashLeft)
		return StepperResult{Snapshot: res.Snapshot}, nil
	}
	return StepperResult{}, errors.Errorf("unknown intent kind %q", in.Kind)
}
