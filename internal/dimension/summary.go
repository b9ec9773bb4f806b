package dimension

import (
	"time"

	"github.com/username/calendar-dimension/internal/calendar"
)

// MonthSummary aggregates the records of one month
type MonthSummary struct {
	Year             int
	Month            time.Month
	Days             int
	BusinessDays     int
	Weekends         int
	NationalHolidays int
	HolidaysByRegion [calendar.NumRegions]int
}

// Summarize groups records by month, in the order months first appear
func Summarize(records []DayRecord) []MonthSummary {
	var summaries []MonthSummary
	index := make(map[[2]int]int)

	for i := range records {
		r := &records[i]
		key := [2]int{r.Year, r.Month}
		idx, ok := index[key]
		if !ok {
			idx = len(summaries)
			index[key] = idx
			summaries = append(summaries, MonthSummary{Year: r.Year, Month: time.Month(r.Month)})
		}

		s := &summaries[idx]
		s.Days++
		if r.IsBusinessDay {
			s.BusinessDays++
		}
		if r.IsWeekend {
			s.Weekends++
		}
		if r.IsNationalHoliday() {
			s.NationalHolidays++
		}
		for j, flag := range r.Holidays {
			if flag.IsHoliday {
				s.HolidaysByRegion[j]++
			}
		}
	}
	return summaries
}
