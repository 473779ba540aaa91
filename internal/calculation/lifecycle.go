package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vinod-lakhani/planengine/internal/domain"
	"github.com/vinod-lakhani/planengine/pkg/money"
)

var (
	toleranceFloor = decimal.NewFromInt(50)
	tolerancePct   = decimal.NewFromFloat(0.05)
)

// BuildLifecycleSnapshot classifies one check-in cycle and produces the
// recommended next-period plan. The mode is chosen solely by whether a
// prior plan exists: without one, calibration seeds a floor-based plan;
// with one, the monthly check-in compares realized savings against the
// plan inside a tolerance band and recommends a bounded adjustment. The
// per-period shift limit caps every adjustment, so recovery from a bad
// month is always gradual.
//
// Snapshots are rebuilt fresh each cycle. The narrative fields are
// derived from the numeric fields on every build; the dollar figure in
// the headline always equals AppliedChange.
func BuildLifecycleSnapshot(input domain.LifecycleInput) domain.LifecycleSnapshot {
	shiftLimit := money.RoundCents(DefaultShiftLimitPct.Mul(input.NetIncomeMonthly))

	if input.CurrentPlan == nil {
		return buildCalibration(input, shiftLimit)
	}
	return buildMonthlyCheckin(input, shiftLimit)
}

// buildCalibration seeds a first plan from the spending floor: whatever
// trailing spend leaves of income is saved, the remainder spent. This is
// deliberately cruder than the income allocator; there is no plan yet to
// allocate against.
func buildCalibration(input domain.LifecycleInput, shiftLimit decimal.Decimal) domain.LifecycleSnapshot {
	income := money.RoundCents(input.NetIncomeMonthly)
	savings := money.ClampZero(money.RoundCents(income.Sub(input.Trailing3moSpend)))
	spending := income.Sub(savings)

	snap := domain.LifecycleSnapshot{
		Mode:    domain.ModeCalibration,
		State:   domain.StateFirstTime,
		Actuals: input.Actuals,
		Recommended: domain.PlanSummary{
			NetIncome: income,
			Spending:  spending,
			Savings:   savings,
		},
		AppliedChange: savings,
		ShiftLimit:    shiftLimit,
	}
	snap.Headline, snap.Detail = narrative(snap)
	return snap
}

func buildMonthlyCheckin(input domain.LifecycleInput, shiftLimit decimal.Decimal) domain.LifecycleSnapshot {
	current := *input.CurrentPlan
	planned := money.RoundCents(current.Savings)
	actual := money.RoundCents(input.ActualSavings)

	savingsVsPlan := actual.Sub(planned)
	tolerance := money.Max(toleranceFloor, money.RoundCents(planned.Mul(tolerancePct)))

	snap := domain.LifecycleSnapshot{
		Mode:          domain.ModeMonthlyCheckin,
		Actuals:       input.Actuals,
		Current:       &current,
		SavingsVsPlan: savingsVsPlan,
		Tolerance:     tolerance,
		ShiftLimit:    shiftLimit,
	}

	recommendedSavings := planned
	switch {
	case savingsVsPlan.Abs().LessThanOrEqual(tolerance):
		snap.State = domain.StateOnTrack
	case savingsVsPlan.IsPositive():
		// Saved more than planned; lock in as much of the surplus as the
		// shift limit allows.
		snap.State = domain.StateOversaved
		recommendedSavings = planned.Add(money.Min(shiftLimit, savingsVsPlan))
	default:
		// Saved less than planned; climb back from the realized level
		// toward the plan, at most one shift limit per period.
		snap.State = domain.StateUndersaved
		gap := savingsVsPlan.Neg()
		recommendedSavings = actual.Add(money.Min(shiftLimit, gap))
	}

	income := money.RoundCents(current.NetIncome)
	snap.Recommended = domain.PlanSummary{
		NetIncome: income,
		Spending:  income.Sub(recommendedSavings),
		Savings:   recommendedSavings,
	}
	snap.AppliedChange = recommendedSavings.Sub(planned)
	snap.Headline, snap.Detail = narrative(snap)
	return snap
}

// narrative derives the human-readable fields from the numeric ones.
// Never stored independently: recomputed on every build so the copy can
// never drift from the numbers.
func narrative(snap domain.LifecycleSnapshot) (headline, detail string) {
	switch snap.State {
	case domain.StateFirstTime:
		headline = fmt.Sprintf("Start by saving %s each month", money.Format(snap.AppliedChange))
		detail = fmt.Sprintf("Your income of %s minus your typical spending of %s leaves %s to put to work.",
			money.Format(snap.Recommended.NetIncome),
			money.Format(snap.Recommended.Spending),
			money.Format(snap.Recommended.Savings))
	case domain.StateOnTrack:
		headline = "You're on track; no change this month"
		detail = fmt.Sprintf("Savings landed within %s of plan (%s vs planned %s).",
			money.Format(snap.Tolerance),
			money.Format(snap.Current.Savings.Add(snap.SavingsVsPlan)),
			money.Format(snap.Current.Savings))
	case domain.StateOversaved:
		headline = fmt.Sprintf("Nice surplus: lock in %s more next month", money.Format(snap.AppliedChange))
		detail = fmt.Sprintf("You saved %s over plan. Raising the plan by %s keeps the gain without overcommitting; the per-month shift limit is %s.",
			money.Format(snap.SavingsVsPlan),
			money.Format(snap.AppliedChange),
			money.Format(snap.ShiftLimit))
	case domain.StateUndersaved:
		headline = fmt.Sprintf("Ease back toward plan: adjust savings by %s", money.Format(snap.AppliedChange.Abs()))
		detail = fmt.Sprintf("You saved %s under plan. Next month targets %s, recovering at most %s per month.",
			money.Format(snap.SavingsVsPlan.Abs()),
			money.Format(snap.Recommended.Savings),
			money.Format(snap.ShiftLimit))
	}
	return headline, detail
}
