package dimension

import "github.com/username/calendar-dimension/pkg/dateutil"

// YearProgress is day_of_year / days_in_year: 1/N on Jan 1 and exactly 1 on Dec 31
func YearProgress(d dateutil.Date) float64 {
	return float64(dateutil.DayOfYear(d)) / float64(dateutil.DaysInYear(d.Year))
}

// MonthProgress is day / days_in_month, in (0, 1]
func MonthProgress(d dateutil.Date) float64 {
	return float64(d.Day) / float64(dateutil.DaysInMonth(d.Year, d.Month))
}
