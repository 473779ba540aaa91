package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinod-lakhani/planengine/internal/domain"
)

// flatGrowth keeps every balance arithmetic by hand-checkable amounts.
var flatGrowth = domain.GrowthAssumptions{}

func singlePlan(p domain.MonthlyPlan) []domain.MonthlyPlan {
	return []domain.MonthlyPlan{p}
}

func TestSimulatePayoffRedirectsMinimumIntoBrokerage(t *testing.T) {
	// A $500 card at 22% APR with a $50 minimum retires in month 11.
	// From month 12 the freed $50 flows into brokerage every month.
	debt := domain.ScenarioInput{
		Months: 24,
		Opening: domain.OpeningBalances{
			Cash: decimal.NewFromInt(1000),
			Liabilities: []domain.Liability{
				{Name: "Card", Balance: decimal.NewFromInt(500), APR: decimal.NewFromFloat(0.22), MinPayment: decimal.NewFromInt(50)},
			},
		},
		Growth: flatGrowth,
		Plan: singlePlan(domain.MonthlyPlan{
			NetIncome: decimal.NewFromInt(5000),
			Brokerage: decimal.NewFromInt(100),
		}),
	}
	noDebt := debt
	noDebt.Opening.Liabilities = nil

	with := Simulate(debt)
	without := Simulate(noDebt)

	require.NotNil(t, with.KPIs.DebtFreeMonth)
	assert.Equal(t, 11, *with.KPIs.DebtFreeMonth)

	// Identical brokerage paths until the redirect starts.
	for m := 0; m <= 11; m++ {
		assert.True(t, with.Brokerage[m].Equal(without.Brokerage[m]), "month %d", m)
	}
	// Then the gap widens by exactly $50 per month.
	fifty := decimal.NewFromInt(50)
	for m := 12; m < 24; m++ {
		gap := with.Brokerage[m].Sub(without.Brokerage[m])
		want := fifty.Mul(decimal.NewFromInt(int64(m - 11)))
		assert.True(t, gap.Equal(want), "month %d: gap %s want %s", m, gap, want)
	}
	assert.Empty(t, with.Warnings)
}

func TestSimulateLiabilitiesMonotonicUnderPaydown(t *testing.T) {
	input := domain.ScenarioInput{
		Months: 24,
		Opening: domain.OpeningBalances{
			Cash: decimal.NewFromInt(5000),
			Liabilities: []domain.Liability{
				{Name: "Card", Balance: decimal.NewFromInt(500), APR: decimal.NewFromFloat(0.22), MinPayment: decimal.NewFromInt(50)},
			},
		},
		Growth: flatGrowth,
		Plan:   singlePlan(domain.MonthlyPlan{NetIncome: decimal.NewFromInt(2000)}),
	}

	series := Simulate(input)
	for m := 1; m < series.Horizon(); m++ {
		assert.False(t, series.Liabilities[m].GreaterThan(series.Liabilities[m-1]),
			"liabilities grew from month %d to %d", m-1, m)
	}
}

func TestSimulateSnowballTargetsHighestAPRFirst(t *testing.T) {
	// The big low-rate loan is listed first, but the extra payment must
	// hit the 25% card. The card dies in month 0, so its $20 minimum is
	// redirected to brokerage from month 1, which is only observable if
	// the snowball ignored input order.
	input := domain.ScenarioInput{
		Months: 4,
		Opening: domain.OpeningBalances{
			Cash: decimal.NewFromInt(10000),
			Liabilities: []domain.Liability{
				{Name: "Loan", Balance: decimal.NewFromInt(1000), APR: decimal.NewFromFloat(0.10), MinPayment: decimal.NewFromInt(10)},
				{Name: "Card", Balance: decimal.NewFromInt(90), APR: decimal.NewFromFloat(0.25), MinPayment: decimal.NewFromInt(20)},
			},
		},
		Growth: flatGrowth,
		Plan: singlePlan(domain.MonthlyPlan{
			NetIncome: decimal.NewFromInt(3000),
			ExtraDebt: decimal.NewFromInt(100),
		}),
	}

	series := Simulate(input)

	// Month 0: card accrues to 91.87, minimum leaves 71.87, the extra
	// clears it and the $28.13 remainder prepays the loan.
	assert.Equal(t, "970.2", series.Liabilities[0].String())
	assert.Equal(t, "0", series.Brokerage[0].String())
	assert.Equal(t, "20", series.Brokerage[1].String())
	assert.Equal(t, "40", series.Brokerage[2].String())
}

func TestSimulateUnusedExtraIsInvested(t *testing.T) {
	input := domain.ScenarioInput{
		Months: 2,
		Opening: domain.OpeningBalances{
			Cash: decimal.NewFromInt(1000),
			Liabilities: []domain.Liability{
				{Name: "Tail", Balance: decimal.NewFromInt(30)},
			},
		},
		Growth: flatGrowth,
		Plan: singlePlan(domain.MonthlyPlan{
			NetIncome: decimal.NewFromInt(100),
			ExtraDebt: decimal.NewFromInt(100),
		}),
	}

	series := Simulate(input)

	assert.Equal(t, "70", series.Brokerage[0].String())
	assert.Equal(t, "0", series.Liabilities[0].String())
	require.NotNil(t, series.KPIs.DebtFreeMonth)
	assert.Equal(t, 0, *series.KPIs.DebtFreeMonth)
}

func TestSimulateCashShortfallWarnsAndClamps(t *testing.T) {
	input := domain.ScenarioInput{
		Months: 3,
		Growth: flatGrowth,
		Plan: singlePlan(domain.MonthlyPlan{
			Needs: decimal.NewFromInt(100),
		}),
	}

	series := Simulate(input)

	require.NotEmpty(t, series.Warnings)
	assert.Equal(t, 0, series.Warnings[0].Month)
	assert.Contains(t, series.Warnings[0].Message, "cash shortfall")
	assert.True(t, series.Cash[0].IsZero())
}

func TestSimulateSeriesShapes(t *testing.T) {
	input := domain.ScenarioInput{
		Months:    6,
		StartDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		Opening:   domain.OpeningBalances{Cash: decimal.NewFromInt(100)},
		Growth:    flatGrowth,
		Plan:      singlePlan(domain.MonthlyPlan{NetIncome: decimal.NewFromInt(50)}),
	}

	series := Simulate(input)

	assert.Equal(t, 6, series.Horizon())
	assert.Len(t, series.Labels, 6)
	assert.Len(t, series.Assets, 6)
	assert.Len(t, series.Liabilities, 6)
	assert.Len(t, series.Cash, 6)
	assert.Len(t, series.Brokerage, 6)
	assert.Len(t, series.Retirement, 6)
	assert.Equal(t, "Jan 2026", series.Labels[0])
	assert.Equal(t, "Jun 2026", series.Labels[5])
}

func TestSimulateDefaultHorizon(t *testing.T) {
	input := domain.ScenarioInput{
		Opening: domain.OpeningBalances{Cash: decimal.NewFromInt(100)},
		Growth:  flatGrowth,
		Plan:    singlePlan(domain.MonthlyPlan{NetIncome: decimal.NewFromInt(10)}),
	}

	series := Simulate(input)
	assert.Equal(t, DefaultHorizonMonths, series.Horizon())
}

func TestSimulateKPIs(t *testing.T) {
	input := domain.ScenarioInput{
		Months:              60,
		Growth:              flatGrowth,
		EmergencyFundTarget: decimal.NewFromInt(2500),
		Plan: singlePlan(domain.MonthlyPlan{
			NetIncome: decimal.NewFromInt(1000),
		}),
	}

	series := Simulate(input)

	require.NotNil(t, series.KPIs.EmergencyFundedMonth)
	assert.Equal(t, 2, *series.KPIs.EmergencyFundedMonth)

	require.NotNil(t, series.KPIs.DebtFreeMonth)
	assert.Equal(t, 0, *series.KPIs.DebtFreeMonth)

	require.NotNil(t, series.KPIs.NetWorth5y)
	assert.Equal(t, "60000", series.KPIs.NetWorth5y.String())
	assert.Nil(t, series.KPIs.NetWorth10y)
	assert.Nil(t, series.KPIs.NetWorth20y)
	assert.Nil(t, series.KPIs.NetWorth40y)

	require.NotNil(t, series.KPIs.CAGR)
	f, _ := series.KPIs.CAGR.Float64()
	assert.InDelta(t, 1.2679, f, 0.0002)
}

func TestSimulateCAGRNilForNonPositiveStart(t *testing.T) {
	input := domain.ScenarioInput{
		Months: 12,
		Opening: domain.OpeningBalances{
			Liabilities: []domain.Liability{
				{Name: "Loan", Balance: decimal.NewFromInt(5000)},
			},
		},
		Growth: flatGrowth,
		Plan:   singlePlan(domain.MonthlyPlan{NetIncome: decimal.NewFromInt(100)}),
	}

	series := Simulate(input)
	assert.True(t, series.NetWorth[0].IsNegative())
	assert.Nil(t, series.KPIs.CAGR)
}

func TestSimulateDeterministic(t *testing.T) {
	input := domain.ScenarioInput{
		Months: 36,
		Opening: domain.OpeningBalances{
			Cash:      decimal.NewFromInt(8000),
			Brokerage: decimal.NewFromInt(15000),
			Liabilities: []domain.Liability{
				{Name: "Card", Balance: decimal.NewFromInt(4200), APR: decimal.NewFromFloat(0.229), MinPayment: decimal.NewFromInt(95)},
			},
		},
		Growth: domain.GrowthAssumptions{
			CashYield:     decimal.NewFromFloat(0.035),
			NominalReturn: decimal.NewFromFloat(0.07),
			TaxDrag:       decimal.NewFromFloat(0.005),
		},
		Plan: singlePlan(domain.MonthlyPlan{
			NetIncome: decimal.NewFromInt(5400),
			Needs:     decimal.NewFromInt(2808),
			Wants:     decimal.NewFromInt(1620),
			Brokerage: decimal.NewFromInt(272),
			ExtraDebt: decimal.NewFromInt(150),
		}),
	}

	a := Simulate(input)
	b := Simulate(input)

	require.Equal(t, a.Horizon(), b.Horizon())
	for m := 0; m < a.Horizon(); m++ {
		assert.True(t, a.NetWorth[m].Equal(b.NetWorth[m]), "net worth diverged at month %d", m)
		assert.True(t, a.Cash[m].Equal(b.Cash[m]), "cash diverged at month %d", m)
	}
	assert.Equal(t, a.Warnings, b.Warnings)
}
