package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/vinod-lakhani/planengine/internal/domain"
	"github.com/vinod-lakhani/planengine/pkg/money"
)

// RebalanceResult is the outcome of reconciling a savings snapshot
// against a budget. CashLeft is non-zero only when the caller allowed an
// under-budget plan to leave money unallocated; it is reported back,
// never silently absorbed.
type RebalanceResult struct {
	Snapshot domain.SavingsSnapshot
	CashLeft decimal.Decimal
}

// StepperResult is the outcome of a single-category nudge. ReducedFrom
// names the first bucket that was automatically shrunk to make room, if
// any; downstream messaging surfaces it to the user.
type StepperResult struct {
	Snapshot    domain.SavingsSnapshot
	ReducedFrom *domain.SavingsCategory
	ReducedBy   decimal.Decimal
}

// ApplyOverridesAndRebalance applies signed category deltas to a
// snapshot, clamps every category at zero, then reconciles the new total
// against budget. Over-budget totals are pulled back in strict
// lowest-priority-first order (brokerage, retirement, emergency fund,
// debt), each category drained before the next is touched. Under-budget
// totals push the surplus into brokerage unless allowCashLeft is set, in
// which case the surplus is reported as CashLeft.
//
// Out-of-range deltas clamp; this function never fails.
func ApplyOverridesAndRebalance(current domain.SavingsSnapshot, deltas map[domain.SavingsCategory]decimal.Decimal, budget decimal.Decimal, allowCashLeft bool) RebalanceResult {
	snap := current.Normalized()
	for _, c := range domain.FundingPriority {
		d, ok := deltas[c]
		if !ok {
			continue
		}
		snap = snap.WithAmount(c, snap.Amount(c).Add(d))
	}

	budget = money.RoundCents(budget)
	total := snap.Total()

	switch {
	case total.GreaterThan(budget):
		snap = reduceInOrder(snap, total.Sub(budget), nil)
	case total.LessThan(budget):
		surplus := budget.Sub(total)
		if allowCashLeft {
			return RebalanceResult{Snapshot: snap, CashLeft: surplus}
		}
		snap = snap.WithAmount(domain.CategoryBrokerage,
			snap.Amount(domain.CategoryBrokerage).Add(surplus))
	}
	return RebalanceResult{Snapshot: snap, CashLeft: decimal.Zero}
}

// TrimPostTaxToPool shrinks a plan in lowest-priority-first order until
// it fits the available pool. Calling it on a plan already within the
// pool is a no-op returning a value-equal snapshot; applying it twice
// yields the same result as once.
func TrimPostTaxToPool(plan domain.SavingsSnapshot, pool decimal.Decimal) domain.SavingsSnapshot {
	snap := plan.Normalized()
	pool = money.RoundCents(pool)
	excess := snap.Total().Sub(pool)
	if !excess.IsPositive() {
		return snap
	}
	return reduceInOrder(snap, excess, nil)
}

// ApplyPostTaxStepperChange applies a single-category delta (the UI
// "+/-" stepper case) and, when the new total exceeds the pool, claws the
// excess back from the other buckets in reduction order. The result
// reports which bucket gave up room so the caller can surface it.
func ApplyPostTaxStepperChange(base domain.SavingsSnapshot, bucket domain.SavingsCategory, delta, pool decimal.Decimal) StepperResult {
	snap := base.Normalized()
	snap = snap.WithAmount(bucket, snap.Amount(bucket).Add(delta))

	pool = money.RoundCents(pool)
	excess := snap.Total().Sub(pool)
	if !excess.IsPositive() {
		return StepperResult{Snapshot: snap}
	}

	var reducedFrom *domain.SavingsCategory
	var reducedBy decimal.Decimal
	snap = reduceInOrderSkipping(snap, excess, bucket, func(c domain.SavingsCategory, amount decimal.Decimal) {
		if reducedFrom == nil {
			cat := c
			reducedFrom = &cat
			reducedBy = amount
		}
	})
	return StepperResult{Snapshot: snap, ReducedFrom: reducedFrom, ReducedBy: reducedBy}
}

// reduceInOrder walks domain.ReductionOrder pulling excess out of each
// category in turn. Categories already at or below one cent are skipped
// rather than driven negative. onReduce, when non-nil, observes each
// reduction.
func reduceInOrder(snap domain.SavingsSnapshot, excess decimal.Decimal, onReduce func(domain.SavingsCategory, decimal.Decimal)) domain.SavingsSnapshot {
	return reduceInOrderSkipping(snap, excess, "", onReduce)
}

func reduceInOrderSkipping(snap domain.SavingsSnapshot, excess decimal.Decimal, skip domain.SavingsCategory, onReduce func(domain.SavingsCategory, decimal.Decimal)) domain.SavingsSnapshot {
	excess = money.RoundCents(excess)
	for _, c := range domain.ReductionOrder {
		if !excess.IsPositive() {
			break
		}
		if c == skip {
			continue
		}
		amount := snap.Amount(c)
		if money.AtMostCent(amount) {
			continue
		}
		take := money.Min(amount, excess)
		snap = snap.WithAmount(c, amount.Sub(take))
		excess = money.RoundCents(excess.Sub(take))
		if onReduce != nil {
			onReduce(c, take)
		}
	}
	return snap
}
