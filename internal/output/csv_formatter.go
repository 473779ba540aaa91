package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/vinod-lakhani/planengine/internal/domain"
)

// CSVFormatter emits one row per simulated month across the six series.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(result *domain.ScenarioResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Month", "Label", "Cash", "Brokerage", "Retirement", "Assets", "Liabilities", "NetWorth"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	series := &result.Series
	for m := 0; m < series.Horizon(); m++ {
		row := []string{
			strconv.Itoa(m + 1),
			series.Labels[m],
			series.Cash[m].StringFixed(2),
			series.Brokerage[m].StringFixed(2),
			series.Retirement[m].StringFixed(2),
			series.Assets[m].StringFixed(2),
			series.Liabilities[m].StringFixed(2),
			series.NetWorth[m].StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
