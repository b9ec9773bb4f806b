package dimension

import (
	"time"

	"github.com/username/calendar-dimension/internal/calendar"
	"github.com/username/calendar-dimension/pkg/dateutil"
)

// HolidayFlag is the holiday status of a day in one region
type HolidayFlag struct {
	IsHoliday bool
	Name      string // empty when IsHoliday is false
}

// DayRecord is one row of the calendar dimension. Records are built once and
// passed by value; no field is shared with another record.
type DayRecord struct {
	// Identity
	Date      time.Time // local midnight in the requested timezone
	Civil     dateutil.Date
	Year      int
	Month     int
	Day       int
	DayOfYear int

	// Weekday
	WeekdayIndex int // 0=Monday .. 6=Sunday
	WeekdayName  string
	IsWeekend    bool

	// Grouping
	MonthName    string
	Quarter      int
	Semester     int
	Quadrimester int
	Fortnight    int
	DaysInMonth  int

	// ISO calendar
	ISOWeek int
	ISOYear int

	// Month relative
	WeekOfMonth         int
	DaysSinceMonthStart int
	DaysUntilMonthEnd   int

	// Boundary flags
	IsMonthStart   bool
	IsMonthEnd     bool
	IsQuarterStart bool
	IsQuarterEnd   bool
	IsYearStart    bool
	IsYearEnd      bool

	// Period anchors, local midnight in the requested timezone
	MonthStartDate time.Time
	MonthEndDate   time.Time
	WeekStartDate  time.Time
	WeekEndDate    time.Time

	// Progress
	YearProgress  float64
	MonthProgress float64

	Season     Season
	SeasonName string

	IsLeapYear       bool
	DaysUntilYearEnd int

	Holidays [calendar.NumRegions]HolidayFlag

	IsBusinessDay bool

	TimezoneID     string
	UTCOffsetHours float64
}

// Holiday returns the flag for region; unknown regions report no holiday
func (r *DayRecord) Holiday(region calendar.Region) HolidayFlag {
	idx := region.Index()
	if idx < 0 {
		return HolidayFlag{}
	}
	return r.Holidays[idx]
}

// IsHoliday reports whether the day is a holiday in region
func (r *DayRecord) IsHoliday(region calendar.Region) bool {
	return r.Holiday(region).IsHoliday
}

// HolidayName returns the holiday name in region, or "" if none
func (r *DayRecord) HolidayName(region calendar.Region) string {
	return r.Holiday(region).Name
}

// IsNationalHoliday reports whether the day is a national holiday
func (r *DayRecord) IsNationalHoliday() bool {
	return r.IsHoliday(calendar.RegionNational)
}
