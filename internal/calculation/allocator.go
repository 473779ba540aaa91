package calculation

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vinod-lakhani/planengine/internal/domain"
	"github.com/vinod-lakhani/planengine/pkg/money"
)

// DefaultShiftLimitPct caps how much of one period's income may move from
// wants to savings in a single period.
var DefaultShiftLimitPct = decimal.NewFromFloat(0.04)

// shareTolerance is the allowed deviation of a percentage triple from 1.0.
var shareTolerance = decimal.NewFromFloat(0.001)

// wantsFloorPct is the share of income wants can never be pushed below,
// unless the caller explicitly bypasses the floor.
var wantsFloorPct = decimal.NewFromFloat(0.25)

// AllocateOptions tune a single Allocate call. The zero value selects the
// default shift limit with the wants floor active.
type AllocateOptions struct {
	// ShiftLimitPct overrides DefaultShiftLimitPct when positive.
	ShiftLimitPct decimal.Decimal
	// BypassWantsFloor disables the wants floor; used by manual override
	// flows where the user accepts cutting wants below 25% of income.
	BypassWantsFloor bool
}

// ValidateShares checks that a percentage triple sums to 1.0 within
// tolerance. Malformed shares are a caller programming error; the engine
// never normalizes on the caller's behalf.
func ValidateShares(name string, t domain.AllocationTargets) error {
	sum := t.Sum()
	if sum.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(shareTolerance) {
		return errors.Errorf("%s percentages must sum to 1.0 within %s, got %s",
			name, shareTolerance.String(), sum.String())
	}
	return nil
}

// Allocate splits one period's net income into needs, wants and savings
// dollars. The baseline is the trailing actuals, so needs is never pushed
// below its realized level; at most the shift limit's worth of income
// moves from wants toward the savings target, bounded by the wants floor.
// The returned allocation always sums to income exactly; any rounding
// residual is absorbed by savings.
func Allocate(income decimal.Decimal, targets, actuals domain.AllocationTargets, opts AllocateOptions) (domain.IncomeAllocation, error) {
	if err := ValidateShares("targets", targets); err != nil {
		return domain.IncomeAllocation{}, err
	}
	if err := ValidateShares("actuals", actuals); err != nil {
		return domain.IncomeAllocation{}, err
	}

	needs := money.RoundCents(income.Mul(actuals.NeedsPct))
	wants := money.RoundCents(income.Mul(actuals.WantsPct))
	savings := money.RoundCents(income.Mul(actuals.SavingsPct))

	targetSavings := money.RoundCents(income.Mul(targets.SavingsPct))
	gap := targetSavings.Sub(savings)

	alloc := domain.IncomeAllocation{Income: money.RoundCents(income)}

	if money.AtMostCent(gap) {
		alloc.Rule = domain.RuleAtTarget
		alloc.Notes = append(alloc.Notes,
			"savings at/above target; no adjustment made")
	} else {
		shiftLimit := opts.ShiftLimitPct
		if !shiftLimit.IsPositive() {
			shiftLimit = DefaultShiftLimitPct
		}

		shiftPct := shiftLimit
		if income.IsPositive() {
			shiftPct = money.Min(gap.Div(income), shiftLimit)
		}
		shiftAmount := money.RoundCents(income.Mul(shiftPct))

		wantsFloor := decimal.Zero
		if !opts.BypassWantsFloor {
			wantsFloor = money.Min(
				money.RoundCents(income.Mul(wantsFloorPct)),
				money.RoundCents(income.Mul(targets.WantsPct)),
			)
		}
		available := money.ClampZero(wants.Sub(wantsFloor))
		transfer := money.ClampZero(money.Min(shiftAmount, available))

		wants = money.RoundCents(wants.Sub(transfer))
		savings = money.RoundCents(savings.Add(transfer))

		residualGap := gap.Sub(transfer)
		switch {
		case money.AtMostCent(residualGap):
			alloc.Rule = domain.RuleGapClosed
			alloc.Notes = append(alloc.Notes,
				"moved "+money.Format(transfer)+" from wants to savings; target reached")
		case transfer.LessThan(shiftAmount):
			alloc.Rule = domain.RuleFloorLimited
			alloc.Notes = append(alloc.Notes,
				"moved "+money.Format(transfer)+" from wants to savings; wants floor blocks the remaining "+money.Format(residualGap))
		default:
			alloc.Rule = domain.RuleShiftLimited
			alloc.Notes = append(alloc.Notes,
				"moved "+money.Format(transfer)+" from wants to savings; shift limit leaves "+money.Format(residualGap)+" for future periods")
		}
	}

	// Savings absorbs the rounding residual; needs and wants never do.
	residual := alloc.Income.Sub(needs).Sub(wants).Sub(savings)
	if !residual.IsZero() {
		savings = money.RoundCents(savings.Add(residual))
	}

	alloc.Needs = needs
	alloc.Wants = wants
	alloc.Savings = savings
	return alloc, nil
}

// ComputePreservingSavingsPlan derives a target policy from realized
// actuals that keeps the savings share exactly as realized, rescaling
// needs and wants so the triple sums to 1.0.
func ComputePreservingSavingsPlan(actuals domain.AllocationTargets) (domain.AllocationTargets, error) {
	if err := ValidateShares("actuals", actuals); err != nil {
		return domain.AllocationTargets{}, err
	}

	spend := actuals.NeedsPct.Add(actuals.WantsPct)
	remainder := decimal.NewFromInt(1).Sub(actuals.SavingsPct)

	out := domain.AllocationTargets{SavingsPct: actuals.SavingsPct}
	if spend.IsPositive() {
		scale := remainder.Div(spend)
		out.NeedsPct = actuals.NeedsPct.Mul(scale)
		out.WantsPct = remainder.Sub(out.NeedsPct)
	} else {
		// Everything saved; park the remainder (if any) in needs.
		out.NeedsPct = remainder
	}
	return out, nil
}
