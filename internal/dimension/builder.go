package dimension

import (
	"context"
	"fmt"
	"iter"
	"runtime"
	"time"

	"github.com/username/calendar-dimension/internal/calendar"
	"github.com/username/calendar-dimension/pkg/dateutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Builder assembles the calendar dimension for a year
type Builder struct {
	provider calendar.Provider
	locale   *Locale
	workers  int
	logger   *zap.Logger
}

// Option configures a Builder
type Option func(*Builder)

// WithLocale sets the locale used for weekday, month and season names
func WithLocale(locale *Locale) Option {
	return func(b *Builder) {
		if locale != nil {
			b.locale = locale
		}
	}
}

// WithWorkers bounds the number of months materialized concurrently by Year.Records
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// NewBuilder creates a new Builder
func NewBuilder(provider calendar.Provider, logger *zap.Logger, opts ...Option) *Builder {
	b := &Builder{
		provider: provider,
		locale:   PortugueseBR,
		workers:  runtime.GOMAXPROCS(0),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build validates the inputs and resolves holiday data for every region.
// Either all of it succeeds or no Year is returned.
func (b *Builder) Build(year int, timezoneID string) (*Year, error) {
	if year < 1 {
		return nil, &InvalidYearError{Year: year}
	}
	if timezoneID == "" {
		return nil, &InvalidTimezoneError{TimezoneID: timezoneID}
	}
	loc, err := time.LoadLocation(timezoneID)
	if err != nil {
		return nil, &InvalidTimezoneError{TimezoneID: timezoneID, Err: err}
	}

	y := &Year{
		year:       year,
		loc:        loc,
		timezoneID: timezoneID,
		locale:     b.locale,
		workers:    b.workers,
	}
	for i, region := range calendar.Regions() {
		set, err := b.provider.Holidays(region, year)
		if err != nil {
			return nil, &HolidayDataUnavailableError{Region: region, Year: year, Err: err}
		}
		if set == nil {
			set = calendar.NewHolidaySet(region, year, calendar.CollisionJoin)
		}
		y.holidays[i] = set
	}

	b.logger.Info("Calendar year prepared",
		zap.Int("year", year),
		zap.String("timezone", timezoneID),
		zap.String("locale", b.locale.Tag().String()),
		zap.Int("days", y.Len()),
		zap.Int("national_holidays", y.holidays[0].Len()))

	return y, nil
}

// Year is a validated calendar year ready to produce DayRecords
type Year struct {
	year       int
	loc        *time.Location
	timezoneID string
	locale     *Locale
	workers    int
	holidays   [calendar.NumRegions]*calendar.HolidaySet
}

// Year returns the calendar year
func (y *Year) Year() int {
	return y.year
}

// Location returns the timezone records are qualified with
func (y *Year) Location() *time.Location {
	return y.loc
}

// Len returns 366 for leap years and 365 otherwise
func (y *Year) Len() int {
	return dateutil.DaysInYear(y.year)
}

// HolidaySet returns the holidays resolved for region, or nil for an unknown region
func (y *Year) HolidaySet(region calendar.Region) *calendar.HolidaySet {
	idx := region.Index()
	if idx < 0 {
		return nil
	}
	return y.holidays[idx]
}

// All yields one record per day from Jan 1 to Dec 31, computing each lazily
func (y *Year) All() iter.Seq[DayRecord] {
	return func(yield func(DayRecord) bool) {
		first := dateutil.Date{Year: y.year, Month: time.January, Day: 1}
		for i := 0; i < y.Len(); i++ {
			if !yield(y.record(first.AddDays(i))) {
				return
			}
		}
	}
}

// Day returns the record for month/day, or false if the date is not in the year
func (y *Year) Day(month time.Month, day int) (DayRecord, bool) {
	if month < time.January || month > time.December || day < 1 || day > dateutil.DaysInMonth(y.year, month) {
		return DayRecord{}, false
	}
	return y.record(dateutil.Date{Year: y.year, Month: month, Day: day}), true
}

// Records materializes the whole year in ascending date order. Months are
// computed concurrently; each writes only its own slice range.
func (y *Year) Records(ctx context.Context) ([]DayRecord, error) {
	records := make([]DayRecord, y.Len())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(y.workers)
	for month := time.January; month <= time.December; month++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			first := dateutil.Date{Year: y.year, Month: month, Day: 1}
			offset := dateutil.DayOfYear(first) - 1
			for day := 1; day <= dateutil.DaysInMonth(y.year, month); day++ {
				records[offset+day-1] = y.record(dateutil.Date{Year: y.year, Month: month, Day: day})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build records for %d: %w", y.year, err)
	}
	return records, nil
}

func (y *Year) record(d dateutil.Date) DayRecord {
	bounds := BoundariesOf(d)
	isoWeek, isoYear := dateutil.ISOWeek(d)
	weekday := d.WeekdayIndex()
	isWeekend := dateutil.IsWeekend(d)
	daysInMonth := dateutil.DaysInMonth(d.Year, d.Month)
	season := ClassifySeason(d)

	date := d.In(y.loc)
	_, offset := date.Zone()

	rec := DayRecord{
		Date:      date,
		Civil:     d,
		Year:      d.Year,
		Month:     int(d.Month),
		Day:       d.Day,
		DayOfYear: dateutil.DayOfYear(d),

		WeekdayIndex: weekday,
		WeekdayName:  y.locale.WeekdayName(weekday),
		IsWeekend:    isWeekend,

		MonthName:    y.locale.MonthName(d.Month),
		Quarter:      dateutil.Quarter(d.Month),
		Semester:     dateutil.Semester(d.Month),
		Quadrimester: dateutil.Quadrimester(d.Month),
		Fortnight:    dateutil.Fortnight(d.Day),
		DaysInMonth:  daysInMonth,

		ISOWeek: isoWeek,
		ISOYear: isoYear,

		WeekOfMonth:         dateutil.WeekOfMonth(d),
		DaysSinceMonthStart: d.Day - 1,
		DaysUntilMonthEnd:   daysInMonth - d.Day,

		IsMonthStart:   bounds.IsMonthStart,
		IsMonthEnd:     bounds.IsMonthEnd,
		IsQuarterStart: bounds.IsQuarterStart,
		IsQuarterEnd:   bounds.IsQuarterEnd,
		IsYearStart:    bounds.IsYearStart,
		IsYearEnd:      bounds.IsYearEnd,

		MonthStartDate: bounds.MonthStart.In(y.loc),
		MonthEndDate:   bounds.MonthEnd.In(y.loc),
		WeekStartDate:  bounds.WeekStart.In(y.loc),
		WeekEndDate:    bounds.WeekEnd.In(y.loc),

		YearProgress:  YearProgress(d),
		MonthProgress: MonthProgress(d),

		Season:     season,
		SeasonName: y.locale.SeasonName(season),

		IsLeapYear:       dateutil.IsLeapYear(d.Year),
		DaysUntilYearEnd: d.DaysUntil(dateutil.Date{Year: d.Year, Month: time.December, Day: 31}),

		TimezoneID:     y.timezoneID,
		UTCOffsetHours: float64(offset) / 3600,
	}

	for i, set := range y.holidays {
		if name, ok := set.Lookup(d).Get(); ok {
			rec.Holidays[i] = HolidayFlag{IsHoliday: true, Name: name}
		}
	}
	rec.IsBusinessDay = IsBusinessDay(isWeekend, rec.IsNationalHoliday())

	return rec
}
