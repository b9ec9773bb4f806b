package dimension

import (
	"time"

	"github.com/username/calendar-dimension/pkg/dateutil"
)

// Boundaries holds the period start/end predicates and anchor dates of a day
type Boundaries struct {
	IsMonthStart   bool
	IsMonthEnd     bool
	IsQuarterStart bool
	IsQuarterEnd   bool
	IsYearStart    bool
	IsYearEnd      bool

	MonthStart dateutil.Date
	MonthEnd   dateutil.Date
	WeekStart  dateutil.Date // Monday
	WeekEnd    dateutil.Date // Sunday
}

// BoundariesOf computes the boundary flags and anchors for d
func BoundariesOf(d dateutil.Date) Boundaries {
	monthStart := dateutil.StartOfMonth(d)
	monthEnd := dateutil.EndOfMonth(d)
	isMonthStart := d == monthStart
	isMonthEnd := d == monthEnd

	return Boundaries{
		IsMonthStart:   isMonthStart,
		IsMonthEnd:     isMonthEnd,
		IsQuarterStart: isMonthStart && (d.Month-time.January)%3 == 0,
		IsQuarterEnd:   isMonthEnd && d.Month%3 == 0,
		IsYearStart:    isMonthStart && d.Month == time.January,
		IsYearEnd:      isMonthEnd && d.Month == time.December,
		MonthStart:     monthStart,
		MonthEnd:       monthEnd,
		WeekStart:      dateutil.StartOfWeek(d),
		WeekEnd:        dateutil.EndOfWeek(d),
	}
}
