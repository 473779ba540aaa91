// Package dateutil provides month arithmetic for projection series.
package dateutil

import (
	"fmt"
	"time"
)

// AddMonths returns the date offset by the given number of calendar months.
func AddMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}

// MonthLabel renders a human-readable label for the month at the given
// offset from the series start date. A zero start date falls back to a
// plain one-based month number so library callers without a calendar
// anchor still get stable labels.
func MonthLabel(start time.Time, offset int) string {
	if start.IsZero() {
		return fmt.Sprintf("Month %d", offset+1)
	}
	return AddMonths(start, offset).Format("Jan 2006")
}

// YearMarkIndex returns the series index of the last month of the given
// projection year (year 1 ends at index 11). Returns -1 when the mark
// falls outside the horizon.
func YearMarkIndex(years, horizonMonths int) int {
	idx := years*12 - 1
	if idx < 0 || idx >= horizonMonths {
		return -1
	}
	return idx
}
