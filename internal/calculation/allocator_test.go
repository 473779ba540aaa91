package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinod-lakhani/planengine/internal/domain"
)

func shares(needs, wants, savings float64) domain.AllocationTargets {
	return domain.AllocationTargets{
		NeedsPct:   decimal.NewFromFloat(needs),
		WantsPct:   decimal.NewFromFloat(wants),
		SavingsPct: decimal.NewFromFloat(savings),
	}
}

func TestAllocateShiftLimitBinds(t *testing.T) {
	// Gap is $200 and wants has $200 of room above the floor, but the 4%
	// shift limit caps the transfer at $160.
	alloc, err := Allocate(
		decimal.NewFromInt(4000),
		shares(0.50, 0.30, 0.20),
		shares(0.50, 0.35, 0.15),
		AllocateOptions{},
	)
	require.NoError(t, err)

	assert.Equal(t, "2000", alloc.Needs.String())
	assert.Equal(t, "1240", alloc.Wants.String())
	assert.Equal(t, "760", alloc.Savings.String())
	assert.Equal(t, domain.RuleShiftLimited, alloc.Rule)
	require.Len(t, alloc.Notes, 1)
	assert.Contains(t, alloc.Notes[0], "$40.00", "note should carry the residual gap")
}

func TestAllocateTighterShiftLimitLeavesResidual(t *testing.T) {
	alloc, err := Allocate(
		decimal.NewFromInt(4000),
		shares(0.50, 0.30, 0.20),
		shares(0.50, 0.35, 0.15),
		AllocateOptions{ShiftLimitPct: decimal.NewFromFloat(0.03)},
	)
	require.NoError(t, err)

	assert.Equal(t, "720", alloc.Savings.String())
	assert.Equal(t, "1280", alloc.Wants.String())
	assert.Equal(t, domain.RuleShiftLimited, alloc.Rule)
	require.Len(t, alloc.Notes, 1)
	assert.Contains(t, alloc.Notes[0], "$80.00", "note should carry the residual gap")
}

func TestAllocateRules(t *testing.T) {
	income := decimal.NewFromInt(4000)
	targets := shares(0.50, 0.30, 0.20)

	tests := []struct {
		name        string
		actuals     domain.AllocationTargets
		opts        AllocateOptions
		wantRule    domain.AdjustmentRule
		wantWants   string
		wantSavings string
	}{
		{
			name:        "savings already above target",
			actuals:     shares(0.50, 0.28, 0.22),
			wantRule:    domain.RuleAtTarget,
			wantWants:   "1120",
			wantSavings: "880",
		},
		{
			name:        "savings exactly at target",
			actuals:     shares(0.50, 0.30, 0.20),
			wantRule:    domain.RuleAtTarget,
			wantWants:   "1200",
			wantSavings: "800",
		},
		{
			name:        "small gap fully closed",
			actuals:     shares(0.50, 0.32, 0.18),
			wantRule:    domain.RuleGapClosed,
			wantWants:   "1200",
			wantSavings: "800",
		},
		{
			name:        "wants floor blocks the shift",
			actuals:     shares(0.63, 0.27, 0.10),
			wantRule:    domain.RuleFloorLimited,
			wantWants:   "1000",
			wantSavings: "480",
		},
		{
			name:        "bypassed floor lets the full shift through",
			actuals:     shares(0.63, 0.27, 0.10),
			opts:        AllocateOptions{BypassWantsFloor: true},
			wantRule:    domain.RuleShiftLimited,
			wantWants:   "920",
			wantSavings: "560",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc, err := Allocate(income, targets, tt.actuals, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRule, alloc.Rule)
			assert.Equal(t, tt.wantWants, alloc.Wants.String())
			assert.Equal(t, tt.wantSavings, alloc.Savings.String())
			require.Len(t, alloc.Notes, 1)
		})
	}
}

func TestAllocateConservation(t *testing.T) {
	incomes := []decimal.Decimal{
		decimal.NewFromInt(1),
		decimal.NewFromFloat(1234.56),
		decimal.NewFromFloat(4000.01),
		decimal.NewFromFloat(9137.77),
	}
	actuals := []domain.AllocationTargets{
		shares(0.50, 0.35, 0.15),
		shares(0.61, 0.29, 0.10),
		shares(0.333, 0.333, 0.334),
	}
	targets := shares(0.50, 0.30, 0.20)

	for _, income := range incomes {
		for _, a := range actuals {
			alloc, err := Allocate(income, targets, a, AllocateOptions{})
			require.NoError(t, err)
			assert.True(t, alloc.Total().Equal(alloc.Income),
				"income %s actuals %v: total %s != income %s",
				income, a, alloc.Total(), alloc.Income)
		}
	}
}

func TestAllocateShiftLimitBound(t *testing.T) {
	// The amount moved from wants never exceeds shiftLimit * income.
	income := decimal.NewFromInt(4000)
	targets := shares(0.40, 0.25, 0.35)

	for _, limit := range []float64{0.01, 0.04, 0.10} {
		actuals := shares(0.50, 0.40, 0.10)
		alloc, err := Allocate(income, targets, actuals,
			AllocateOptions{ShiftLimitPct: decimal.NewFromFloat(limit)})
		require.NoError(t, err)

		baselineWants := income.Mul(actuals.WantsPct)
		moved := baselineWants.Sub(alloc.Wants)
		maxShift := income.Mul(decimal.NewFromFloat(limit))
		assert.True(t, moved.LessThanOrEqual(maxShift),
			"limit %v: moved %s exceeds cap %s", limit, moved, maxShift)
	}
}

func TestAllocateValidation(t *testing.T) {
	income := decimal.NewFromInt(4000)
	good := shares(0.50, 0.30, 0.20)
	bad := shares(0.50, 0.30, 0.10)

	_, err := Allocate(income, bad, good, AllocateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "targets")

	_, err = Allocate(income, good, bad, AllocateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "actuals")

	// Within tolerance passes.
	almost := shares(0.50, 0.30, 0.2009)
	_, err = Allocate(income, almost, good, AllocateOptions{})
	assert.NoError(t, err)
}

func TestAllocateDeterminism(t *testing.T) {
	income := decimal.NewFromFloat(5432.10)
	targets := shares(0.50, 0.30, 0.20)
	actuals := shares(0.55, 0.33, 0.12)

	first, err := Allocate(income, targets, actuals, AllocateOptions{})
	require.NoError(t, err)
	second, err := Allocate(income, targets, actuals, AllocateOptions{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputePreservingSavingsPlan(t *testing.T) {
	actuals := shares(0.50, 0.35, 0.15)
	plan, err := ComputePreservingSavingsPlan(actuals)
	require.NoError(t, err)

	assert.True(t, plan.SavingsPct.Equal(actuals.SavingsPct), "savings share must be preserved exactly")
	assert.True(t, plan.NeedsPct.Equal(actuals.NeedsPct))
	assert.True(t, plan.WantsPct.Equal(actuals.WantsPct))

	tolerance := decimal.NewFromFloat(0.0001)
	assert.True(t, plan.Sum().Sub(decimal.NewFromInt(1)).Abs().LessThanOrEqual(tolerance))
}

func TestComputePreservingSavingsPlanAllSaved(t *testing.T) {
	plan, err := ComputePreservingSavingsPlan(shares(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, plan.SavingsPct.Equal(decimal.NewFromInt(1)))
	assert.True(t, plan.Sum().Equal(decimal.NewFromInt(1)))
}

func TestComputePreservingSavingsPlanRejectsBadShares(t *testing.T) {
	_, err := ComputePreservingSavingsPlan(shares(0.2, 0.2, 0.2))
	require.Error(t, err)
}
