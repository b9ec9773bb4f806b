package dateutil

import (
	"fmt"
	"time"

	"cloudeng.io/datetime"
)

// Date is a civil calendar date without a time of day or location.
// It is comparable and safe to use as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the civil date of t in t's own location
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Of returns the Date for year, month and day, normalizing out-of-range values
// the same way time.Date does (e.g. Jan 32 becomes Feb 1).
func Of(year int, month time.Month, day int) Date {
	return NewDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// In returns the first instant of the date in loc: midnight, or the end of
// the daylight saving gap in zones where midnight is skipped.
func (d Date) In(loc *time.Location) time.Time {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
	if NewDate(t) != d {
		t = time.Date(d.Year, d.Month, d.Day, 1, 0, 0, 0, loc)
	}
	return t
}

func (d Date) utc() time.Time {
	return d.In(time.UTC)
}

// AddDays returns the date n days after d (n may be negative)
func (d Date) AddDays(n int) Date {
	return NewDate(d.utc().AddDate(0, 0, n))
}

// Weekday returns the day of the week
func (d Date) Weekday() time.Weekday {
	return d.utc().Weekday()
}

// WeekdayIndex returns the 0-based weekday with Monday = 0 and Sunday = 6
func (d Date) WeekdayIndex() int {
	return (int(d.Weekday()) + 6) % 7
}

// Before reports whether d is strictly earlier than other
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// DaysUntil returns the number of days from d to other (negative if other is earlier)
func (d Date) DaysUntil(other Date) int {
	return int((other.utc().Unix() - d.utc().Unix()) / 86400)
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsLeapYear reports whether year is a Gregorian leap year
func IsLeapYear(year int) bool {
	return datetime.IsLeap(year)
}

// DaysInYear returns 366 for leap years and 365 otherwise
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days in month of year
func DaysInMonth(year int, month time.Month) int {
	return int(datetime.DaysInMonth(year, datetime.Month(month)))
}

// DayOfYear returns the 1-based ordinal day of d within its year
func DayOfYear(d Date) int {
	doy := d.Day
	for m := time.January; m < d.Month; m++ {
		doy += DaysInMonth(d.Year, m)
	}
	return doy
}

// ISOWeek returns the ISO 8601 week number and the ISO year it belongs to.
// Early January dates may belong to the last week of the previous ISO year
// and late December dates to week 1 of the next.
func ISOWeek(d Date) (week int, isoYear int) {
	isoYear, week = d.utc().ISOWeek()
	return week, isoYear
}

// WeekOfMonth returns the 1-based week of the month for d, counting weeks
// Monday through Sunday. The first day of the month is always week 1.
func WeekOfMonth(d Date) int {
	offset := Date{Year: d.Year, Month: d.Month, Day: 1}.WeekdayIndex()
	return (d.Day + offset + 6) / 7
}

// Quarter returns 1-4
func Quarter(month time.Month) int {
	return (int(month)-1)/3 + 1
}

// Semester returns 1 or 2
func Semester(month time.Month) int {
	return (int(month)-1)/6 + 1
}

// Quadrimester returns 1-3 for four-month periods
func Quadrimester(month time.Month) int {
	return (int(month)-1)/4 + 1
}

// Fortnight returns 1 for days 1-15 and 2 for the rest of the month
func Fortnight(day int) int {
	if day <= 15 {
		return 1
	}
	return 2
}

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// StartOfWeek returns the Monday of the ISO week containing d
func StartOfWeek(d Date) Date {
	return d.AddDays(-d.WeekdayIndex())
}

// EndOfWeek returns the Sunday of the ISO week containing d
func EndOfWeek(d Date) Date {
	return StartOfWeek(d).AddDays(6)
}

// StartOfMonth returns the first day of d's month
func StartOfMonth(d Date) Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// EndOfMonth returns the last day of d's month
func EndOfMonth(d Date) Date {
	return Date{Year: d.Year, Month: d.Month, Day: DaysInMonth(d.Year, d.Month)}
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(d Date) bool {
	weekday := d.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (Date, error) {
	formats := []string{
		"2006-01-02",
		"02.01.2006",
		"02/01/2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z07:00",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return NewDate(t), nil
		}
	}

	return Date{}, fmt.Errorf("unrecognized date format: %q", dateStr)
}
