package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vinod-lakhani/planengine/internal/calculation"
	"github.com/vinod-lakhani/planengine/internal/config"
	"github.com/vinod-lakhani/planengine/internal/domain"
	"github.com/vinod-lakhani/planengine/internal/output"
	"github.com/vinod-lakhani/planengine/pkg/money"
)

func simulateCmd() *cobra.Command {
	var (
		inputFile string
		format    string
		toFile    bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a net-worth projection from a scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			input, err := parser.LoadFromFile(inputFile)
			if err != nil {
				return err
			}

			engine := calculation.NewEngine()
			engine.SetLogger(calculation.SlogLogger{L: newLogger()})

			result, err := engine.RunScenario(cmd.Context(), input)
			if err != nil {
				return err
			}

			f := output.GetFormatterByName(format)
			if f == nil {
				return errors.Errorf("unknown format %q (available: %v)", format, output.FormatterNames())
			}
			if toFile {
				name, err := output.WriteFormatted(f, result, f.Name())
				if err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", name)
				return nil
			}
			data, err := f.Format(result)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "scenario.yaml", "scenario input file")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, json, csv)")
	cmd.Flags().BoolVar(&toFile, "write", false, "write output to a timestamped file")
	return cmd
}

func allocateCmd() *cobra.Command {
	var (
		income     float64
		targets    []float64
		actuals    []float64
		shiftLimit float64
	)

	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Split one period's net income into needs/wants/savings",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := sharesFromFlags("targets", targets)
			if err != nil {
				return err
			}
			a, err := sharesFromFlags("actuals", actuals)
			if err != nil {
				return err
			}

			alloc, err := calculation.Allocate(
				decimal.NewFromFloat(income), t, a,
				calculation.AllocateOptions{ShiftLimitPct: decimal.NewFromFloat(shiftLimit)},
			)
			if err != nil {
				return err
			}

			fmt.Printf("Income:  %s\n", money.Format(alloc.Income))
			fmt.Printf("Needs:   %s\n", money.Format(alloc.Needs))
			fmt.Printf("Wants:   %s\n", money.Format(alloc.Wants))
			fmt.Printf("Savings: %s\n", money.Format(alloc.Savings))
			for _, n := range alloc.Notes {
				fmt.Printf("Note: %s\n", n)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&income, "income", 0, "net income for the period")
	cmd.Flags().Float64SliceVar(&targets, "targets", nil, "target needs,wants,savings fractions")
	cmd.Flags().Float64SliceVar(&actuals, "actuals", nil, "actual needs,wants,savings fractions")
	cmd.Flags().Float64Var(&shiftLimit, "shift-limit", 0.04, "per-period shift limit as a fraction of income")
	_ = cmd.MarkFlagRequired("income")
	_ = cmd.MarkFlagRequired("targets")
	_ = cmd.MarkFlagRequired("actuals")
	return cmd
}

func checkinCmd() *cobra.Command {
	var (
		income        float64
		trailingSpend float64
		actualSavings float64
		plannedSaving float64
		hasPlan       bool
	)

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Run a lifecycle check-in cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := domain.LifecycleInput{
				NetIncomeMonthly: decimal.NewFromFloat(income),
				Trailing3moSpend: decimal.NewFromFloat(trailingSpend),
				ActualSavings:    decimal.NewFromFloat(actualSavings),
			}
			if hasPlan {
				inc := decimal.NewFromFloat(income)
				planned := decimal.NewFromFloat(plannedSaving)
				input.CurrentPlan = &domain.PlanSummary{
					NetIncome: inc,
					Spending:  inc.Sub(planned),
					Savings:   planned,
				}
			}

			snap := calculation.BuildLifecycleSnapshot(input)
			fmt.Printf("Mode:  %s\n", snap.Mode)
			fmt.Printf("State: %s\n", snap.State)
			fmt.Printf("%s\n", snap.Headline)
			fmt.Printf("%s\n", snap.Detail)
			fmt.Printf("Recommended savings: %s/month (change %s, limit %s)\n",
				money.Format(snap.Recommended.Savings),
				money.Format(snap.AppliedChange),
				money.Format(snap.ShiftLimit))
			return nil
		},
	}

	cmd.Flags().Float64Var(&income, "income", 0, "net monthly income")
	cmd.Flags().Float64Var(&trailingSpend, "trailing-spend", 0, "trailing 3-month average spend")
	cmd.Flags().Float64Var(&actualSavings, "actual-savings", 0, "last month's realized savings")
	cmd.Flags().Float64Var(&plannedSaving, "planned-savings", 0, "current plan's monthly savings")
	cmd.Flags().BoolVar(&hasPlan, "has-plan", false, "a prior plan exists (monthly check-in mode)")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

func exampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print an example scenario input file",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := config.NewInputParser().CreateExampleInput()
			data, err := yaml.Marshal(input)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
}

func sharesFromFlags(name string, vals []float64) (domain.AllocationTargets, error) {
	if len(vals) != 3 {
		return domain.AllocationTargets{}, errors.Errorf("%s requires exactly three values: needs,wants,savings", name)
	}
	return domain.AllocationTargets{
		NeedsPct:   decimal.NewFromFloat(vals[0]),
		WantsPct:   decimal.NewFromFloat(vals[1]),
		SavingsPct: decimal.NewFromFloat(vals[2]),
	}, nil
}
