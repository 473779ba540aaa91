package calculation

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vinod-lakhani/planengine/internal/domain"
	"github.com/vinod-lakhani/planengine/pkg/dateutil"
	"github.com/vinod-lakhani/planengine/pkg/money"
)

// DefaultHorizonMonths is the projection length when the input does not
// request a shorter run.
const DefaultHorizonMonths = 480

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// liabilityState is the per-liability arena for one Simulate call.
// Liabilities are indexed by position in the input slice; the original
// minimum payment and the paid-off flag live here rather than in any
// identity-keyed structure.
type liabilityState struct {
	name    string
	balance decimal.Decimal
	apr     decimal.Decimal
	minPay  decimal.Decimal
	origMin decimal.Decimal
	paidOff bool
	order   int
}

// Simulate advances account balances and liabilities month by month over
// the input horizon and derives milestone KPIs from the finished series.
// It is a pure pass: identical inputs produce bit-identical output.
//
// Each month, in fixed order: growth compounds at annual rate / 12; plan
// inflows land (direct contributions to their accounts, the rest to
// cash); active liabilities accrue interest and receive their minimum
// payment; the plan's extra payment snowballs across active debts by
// descending APR (ties by input order), with any unused remainder
// invested in brokerage that same month; outflows leave cash, clamped at
// zero with a shortfall warning; the six balances are snapshotted.
//
// A liability whose balance reaches one cent or less is terminal. From
// the following month its former minimum payment is permanently
// redirected into brokerage, modeling freed cash flow being invested.
func Simulate(input domain.ScenarioInput) domain.ScenarioSeries {
	months := input.Months
	if months <= 0 {
		months = DefaultHorizonMonths
	}

	cash := money.RoundCents(input.Opening.Cash)
	brokerage := money.RoundCents(input.Opening.Brokerage)
	retirement := money.RoundCents(input.Opening.Retirement)
	hsa := money.RoundCents(input.Opening.HSA)
	other := money.RoundCents(input.Opening.Other)

	liabs := make([]liabilityState, len(input.Opening.Liabilities))
	for i, l := range input.Opening.Liabilities {
		liabs[i] = liabilityState{
			name:    l.Name,
			balance: money.RoundCents(l.Balance),
			apr:     l.APR,
			minPay:  money.RoundCents(l.MinPayment),
			origMin: money.RoundCents(l.MinPayment),
			order:   i,
		}
		if money.AtMostCent(liabs[i].balance) {
			liabs[i].balance = decimal.Zero
			liabs[i].paidOff = true
		}
	}

	cashRate := monthlyRate(input.Growth.CashYield)
	brokerageRate := monthlyRate(input.Growth.NominalReturn.Sub(input.Growth.TaxDrag))
	growthRate := monthlyRate(input.Growth.NominalReturn)

	series := domain.ScenarioSeries{
		Labels:      make([]string, 0, months),
		Assets:      make([]decimal.Decimal, 0, months),
		Liabilities: make([]decimal.Decimal, 0, months),
		NetWorth:    make([]decimal.Decimal, 0, months),
		Cash:        make([]decimal.Decimal, 0, months),
		Brokerage:   make([]decimal.Decimal, 0, months),
		Retirement:  make([]decimal.Decimal, 0, months),
	}

	// Freed minimum payments from retired debts; takes effect the month
	// after payoff because inflows land before debt service each month.
	redirected := decimal.Zero

	for m := 0; m < months; m++ {
		plan := input.PlanFor(m)

		// Payoffs recorded later this month start redirecting next month.
		redirectNow := redirected

		// 1. Growth, compounding monthly.
		cash = money.RoundCents(cash.Mul(one.Add(cashRate)))
		brokerage = money.RoundCents(brokerage.Mul(one.Add(brokerageRate)))
		retirement = money.RoundCents(retirement.Mul(one.Add(growthRate)))
		hsa = money.RoundCents(hsa.Mul(one.Add(growthRate)))

		// 2. Plan inflows plus redirected payments into brokerage.
		cash = money.RoundCents(cash.Add(plan.CashDeposit()))
		brokerage = money.RoundCents(brokerage.Add(plan.Brokerage).Add(redirectNow))
		retirement = money.RoundCents(retirement.Add(plan.Match401k).Add(plan.RetirementExtra))
		hsa = money.RoundCents(hsa.Add(plan.HSAContribution))

		// 3. Interest accrual and minimum payments.
		minPaid := decimal.Zero
		for i := range liabs {
			if liabs[i].paidOff {
				continue
			}
			liabs[i].balance = money.RoundCents(
				liabs[i].balance.Mul(one.Add(liabs[i].apr.Div(twelve))))
			pay := money.Min(liabs[i].minPay, liabs[i].balance)
			liabs[i].balance = money.RoundCents(liabs[i].balance.Sub(pay))
			minPaid = minPaid.Add(pay)
			if money.AtMostCent(liabs[i].balance) {
				liabs[i].balance = decimal.Zero
				liabs[i].paidOff = true
				redirected = money.RoundCents(redirected.Add(liabs[i].origMin))
			}
		}

		// 4. Extra payment, snowballed by highest APR first.
		extra := money.RoundCents(plan.ExtraDebt)
		remaining := extra
		if remaining.IsPositive() {
			for _, i := range activeByAPRDesc(liabs) {
				if !remaining.IsPositive() {
					break
				}
				pay := money.Min(remaining, liabs[i].balance)
				liabs[i].balance = money.RoundCents(liabs[i].balance.Sub(pay))
				remaining = money.RoundCents(remaining.Sub(pay))
				if money.AtMostCent(liabs[i].balance) {
					liabs[i].balance = decimal.Zero
					liabs[i].paidOff = true
					redirected = money.RoundCents(redirected.Add(liabs[i].origMin))
				}
			}
			if remaining.IsPositive() {
				// Debts exhausted before the payment was; invest the rest.
				brokerage = money.RoundCents(brokerage.Add(remaining))
			}
		}

		// 5. Outflows leave cash. The redirected amount is a cash-to-
		// brokerage transfer, so it leaves with them. Insufficient cash
		// clamps to zero and records a shortfall; the run continues.
		outflows := plan.Needs.Add(plan.Wants).Add(minPaid).Add(extra).Add(redirectNow)
		if cash.LessThan(outflows) {
			series.Warnings = append(series.Warnings, domain.SimWarning{
				Month: m,
				Message: fmt.Sprintf("cash shortfall: outflows %s exceed available %s",
					money.Format(outflows), money.Format(cash)),
			})
			cash = decimal.Zero
		} else {
			cash = money.RoundCents(cash.Sub(outflows))
		}

		// 6. Snapshot.
		liabTotal := decimal.Zero
		for i := range liabs {
			liabTotal = liabTotal.Add(liabs[i].balance)
		}
		assets := cash.Add(brokerage).Add(retirement).Add(hsa).Add(other)

		series.Labels = append(series.Labels, dateutil.MonthLabel(input.StartDate, m))
		series.Cash = append(series.Cash, cash)
		series.Brokerage = append(series.Brokerage, brokerage)
		series.Retirement = append(series.Retirement, retirement)
		series.Assets = append(series.Assets, assets)
		series.Liabilities = append(series.Liabilities, liabTotal)
		series.NetWorth = append(series.NetWorth, assets.Sub(liabTotal))
	}

	series.KPIs = computeKPIs(&series, input.EmergencyFundTarget)
	return series
}

// activeByAPRDesc returns indexes of active liabilities ordered by APR
// descending, ties broken by original input order. The counts involved
// are single digits; a plain sort each month keeps the ordering rule
// explicit and reproducible.
func activeByAPRDesc(liabs []liabilityState) []int {
	idx := make([]int, 0, len(liabs))
	for i := range liabs {
		if !liabs[i].paidOff {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ai, bi := liabs[idx[a]], liabs[idx[b]]
		if !ai.apr.Equal(bi.apr) {
			return ai.apr.GreaterThan(bi.apr)
		}
		return ai.order < bi.order
	})
	return idx
}

func monthlyRate(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve)
}

// computeKPIs makes a single pass over a finished series.
func computeKPIs(series *domain.ScenarioSeries, efTarget decimal.Decimal) domain.ScenarioKPIs {
	kpis := domain.ScenarioKPIs{}
	months := series.Horizon()
	if months == 0 {
		return kpis
	}

	if efTarget.IsPositive() {
		for m, c := range series.Cash {
			if c.GreaterThanOrEqual(efTarget) {
				month := m
				kpis.EmergencyFundedMonth = &month
				break
			}
		}
	}

	for m, l := range series.Liabilities {
		if money.AtMostCent(l) {
			month := m
			kpis.DebtFreeMonth = &month
			break
		}
	}

	kpis.NetWorth5y = netWorthAtYearMark(series, 5)
	kpis.NetWorth10y = netWorthAtYearMark(series, 10)
	kpis.NetWorth20y = netWorthAtYearMark(series, 20)
	kpis.NetWorth40y = netWorthAtYearMark(series, 40)

	kpis.CAGR = compoundAnnualGrowth(series.NetWorth[0], series.NetWorth[months-1], months)
	return kpis
}

func netWorthAtYearMark(series *domain.ScenarioSeries, years int) *decimal.Decimal {
	idx := dateutil.YearMarkIndex(years, series.Horizon())
	if idx < 0 {
		return nil
	}
	v := series.NetWorth[idx]
	return &v
}

// compoundAnnualGrowth derives the annualized growth rate between the
// first and last net-worth samples. A non-positive starting or ending
// value has no meaningful growth rate and yields nil. The fractional
// exponent forces a float round trip; the result is truncated to four
// decimal places, which is as much precision as a multi-decade rate
// estimate carries anyway.
func compoundAnnualGrowth(first, last decimal.Decimal, months int) *decimal.Decimal {
	if months < 2 || !first.IsPositive() || !last.IsPositive() {
		return nil
	}
	years := float64(months) / 12.0
	ratio, _ := last.Div(first).Float64()
	rate := math.Pow(ratio, 1.0/years) - 1.0
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil
	}
	v := decimal.NewFromFloat(rate).Round(4)
	return &v
}
