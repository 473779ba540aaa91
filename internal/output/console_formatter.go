package output

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vinod-lakhani/planengine/internal/domain"
	"github.com/vinod-lakhani/planengine/pkg/money"
)

// ConsoleFormatter renders a human-readable summary of a scenario run.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(result *domain.ScenarioResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	series := &result.Series
	months := series.Horizon()

	fmt.Fprintf(buf, "NET WORTH PROJECTION (%d months)\n", months)
	fmt.Fprintf(buf, "================================\n\n")

	if result.Allocation != nil {
		a := result.Allocation
		fmt.Fprintf(buf, "Monthly allocation of %s\n", money.Format(a.Income))
		fmt.Fprintf(buf, "  Needs:   %s\n", money.Format(a.Needs))
		fmt.Fprintf(buf, "  Wants:   %s\n", money.Format(a.Wants))
		fmt.Fprintf(buf, "  Savings: %s\n", money.Format(a.Savings))
		for _, n := range a.Notes {
			fmt.Fprintf(buf, "  note: %s\n", n)
		}
		fmt.Fprintln(buf)
	}

	if result.Savings != nil {
		s := result.Savings
		fmt.Fprintf(buf, "Savings plan (%s/month)\n", money.Format(s.MonthlySavings))
		fmt.Fprintf(buf, "  401k match:     %s\n", money.Format(s.Match401k))
		fmt.Fprintf(buf, "  HSA:            %s\n", money.Format(s.HSA))
		fmt.Fprintf(buf, "  Emergency fund: %s\n", money.Format(s.EmergencyFund))
		fmt.Fprintf(buf, "  Extra debt:     %s\n", money.Format(s.HighAPRDebt))
		fmt.Fprintf(buf, "  Retirement:     %s\n", money.Format(s.RetirementTaxAdv))
		fmt.Fprintf(buf, "  Brokerage:      %s\n", money.Format(s.Brokerage))
		fmt.Fprintln(buf)
	}

	if months > 0 {
		last := months - 1
		fmt.Fprintf(buf, "Ending position (%s)\n", series.Labels[last])
		fmt.Fprintf(buf, "  Assets:      %s\n", money.Format(series.Assets[last]))
		fmt.Fprintf(buf, "  Liabilities: %s\n", money.Format(series.Liabilities[last]))
		fmt.Fprintf(buf, "  Net worth:   %s\n", money.Format(series.NetWorth[last]))
		fmt.Fprintln(buf)
	}

	fmt.Fprintf(buf, "Milestones\n")
	writeMonthKPI(buf, series, "Emergency fund funded", series.KPIs.EmergencyFundedMonth)
	writeMonthKPI(buf, series, "Debt free", series.KPIs.DebtFreeMonth)
	writeMoneyKPI(buf, "Net worth at 5y", series.KPIs.NetWorth5y)
	writeMoneyKPI(buf, "Net worth at 10y", series.KPIs.NetWorth10y)
	writeMoneyKPI(buf, "Net worth at 20y", series.KPIs.NetWorth20y)
	writeMoneyKPI(buf, "Net worth at 40y", series.KPIs.NetWorth40y)
	if series.KPIs.CAGR != nil {
		fmt.Fprintf(buf, "  Net worth CAGR:        %s%%\n",
			series.KPIs.CAGR.Mul(decimal.NewFromInt(100)).StringFixed(2))
	}

	if len(series.Warnings) > 0 {
		fmt.Fprintf(buf, "\nWarnings (%d)\n", len(series.Warnings))
		for i, w := range series.Warnings {
			if i >= 5 {
				fmt.Fprintf(buf, "  ... and %d more\n", len(series.Warnings)-i)
				break
			}
			fmt.Fprintf(buf, "  month %d: %s\n", w.Month+1, w.Message)
		}
	}

	return buf.Bytes(), nil
}

func writeMonthKPI(buf *bytes.Buffer, series *domain.ScenarioSeries, label string, month *int) {
	if month == nil {
		fmt.Fprintf(buf, "  %-22s not reached\n", label+":")
		return
	}
	fmt.Fprintf(buf, "  %-22s %s (month %d)\n", label+":", series.Labels[*month], *month+1)
}

func writeMoneyKPI(buf *bytes.Buffer, label string, v *decimal.Decimal) {
	if v == nil {
		return
	}
	fmt.Fprintf(buf, "  %-22s %s\n", label+":", money.Format(*v))
}
